// Package quiz loads the quiz question set from disk and validates it.
package quiz

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Question is a single quiz entry. Answer must match one option verbatim.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Load reads and validates the question file. The set is immutable after load;
// a file that fails validation is rejected as a whole.
func Load(path string) ([]Question, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz file: %w", err)
	}
	var questions []Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("parse quiz file %s: %w", path, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz file %s: no questions", path)
	}
	for i, q := range questions {
		if err := validate(q); err != nil {
			return nil, fmt.Errorf("quiz file %s: question %d: %w", path, i, err)
		}
	}
	return questions, nil
}

func validate(q Question) error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("empty question text")
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("no options")
	}
	matches := 0
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("empty option")
		}
		if opt == q.Answer {
			matches++
		}
	}
	if matches != 1 {
		return fmt.Errorf("answer %q must match exactly one option, matched %d", q.Answer, matches)
	}
	return nil
}
