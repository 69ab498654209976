package quiz

import (
	"os"
	"path/filepath"
	"testing"
)

func writeQuizFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "question.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write quiz file: %v", err)
	}
	return path
}

func TestLoadValidSet(t *testing.T) {
	path := writeQuizFile(t, `[
		{"question": "2+2?", "options": ["3", "4"], "answer": "4"},
		{"question": "Capital of France?", "options": ["Paris", "Lyon", "Nice"], "answer": "Paris"}
	]`)
	questions, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Answer != "4" || questions[1].Question != "Capital of France?" {
		t.Fatalf("unexpected content: %+v", questions)
	}
}

func TestLoadRejectsAnswerNotInOptions(t *testing.T) {
	path := writeQuizFile(t, `[{"question": "q", "options": ["a", "b"], "answer": "c"}]`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for answer outside options")
	}
}

func TestLoadRejectsAnswerMatchingTwice(t *testing.T) {
	path := writeQuizFile(t, `[{"question": "q", "options": ["a", "a"], "answer": "a"}]`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for duplicate option match")
	}
}

func TestLoadRejectsEmptySet(t *testing.T) {
	path := writeQuizFile(t, `[]`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty question set")
	}
}

func TestLoadRejectsNoOptions(t *testing.T) {
	path := writeQuizFile(t, `[{"question": "q", "options": [], "answer": "a"}]`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for question without options")
	}
}

func TestLoadAcceptsSingleOption(t *testing.T) {
	path := writeQuizFile(t, `[{"question": "q", "options": ["a"], "answer": "a"}]`)
	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
