package bootstrap

import (
	"fmt"
	"log/slog"

	coreconfig "funbot/core/config"
	"funbot/core/logger"
	"funbot/internal/quiz"
)

// Options control the bootstrap pipeline shared between bot entrypoints.
type Options struct {
	Config *coreconfig.Config

	LoggerInit    func(*coreconfig.Config) error
	LoadQuestions func(string) ([]quiz.Question, error)
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	Questions []quiz.Question
}

// Run initializes the logger and loads the quiz question set.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	loadQuestions := opts.LoadQuestions
	if loadQuestions == nil {
		loadQuestions = quiz.Load
	}
	questions, err := loadQuestions(opts.Config.Quiz.File)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: quiz load failed: %w", err)
	}
	if logger.QUIZ != nil {
		logger.QUIZ.Info("questions loaded",
			slog.String("event", "quiz.loaded"),
			slog.String("file", opts.Config.Quiz.File),
			slog.Int("questions", len(questions)),
		)
	}

	return &Result{Questions: questions}, nil
}
