package bootstrap

import (
	"errors"
	"testing"

	coreconfig "funbot/core/config"
	"funbot/internal/quiz"
)

func TestRunPipeline(t *testing.T) {
	cfg := &coreconfig.Config{}
	cfg.Quiz.File = "questions.json"

	inits := 0
	loadedPath := ""
	res, err := Run(Options{
		Config:     cfg,
		LoggerInit: func(*coreconfig.Config) error { inits++; return nil },
		LoadQuestions: func(path string) ([]quiz.Question, error) {
			loadedPath = path
			return []quiz.Question{{Question: "q", Options: []string{"a", "b"}, Answer: "a"}}, nil
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if inits != 1 {
		t.Fatalf("expected one logger init, got %d", inits)
	}
	if loadedPath != "questions.json" {
		t.Fatalf("quiz loaded from %q", loadedPath)
	}
	if len(res.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(res.Questions))
	}
}

func TestRunNilConfig(t *testing.T) {
	if _, err := Run(Options{}); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestRunQuizLoadFailure(t *testing.T) {
	cfg := &coreconfig.Config{}
	_, err := Run(Options{
		Config:     cfg,
		LoggerInit: func(*coreconfig.Config) error { return nil },
		LoadQuestions: func(string) ([]quiz.Question, error) {
			return nil, errors.New("corrupt file")
		},
	})
	if err == nil {
		t.Fatal("expected quiz load error to propagate")
	}
}
