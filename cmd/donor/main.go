package main

import (
	"log/slog"
	"os"

	"github.com/MikeSquared-Agency/donor/internal/chatgpt"
	"github.com/MikeSquared-Agency/donor/internal/config"
	"github.com/MikeSquared-Agency/donor/internal/donation"
	"github.com/MikeSquared-Agency/donor/internal/questionnaire"
	"github.com/MikeSquared-Agency/donor/internal/sample"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	// stdout carries command output, so logs go to stderr.
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

// schemaFor resolves the configured questionnaire version, falling back to
// the newest schema when the version is unknown.
func schemaFor(cfg config.Config) questionnaire.Schema {
	if s, ok := questionnaire.Lookup(cfg.QuestionnaireVersion); ok {
		return s
	}
	versions := questionnaire.Versions()
	latest := versions[len(versions)-1]
	slog.Warn("unknown questionnaire version, using latest",
		"version", cfg.QuestionnaireVersion,
		"latest", latest,
	)
	s, _ := questionnaire.Lookup(latest)
	return s
}

func newFlow(cfg config.Config) *donation.Flow {
	logger := slog.Default()
	return donation.NewFlow(
		chatgpt.New(logger, cfg.ConversationsFile),
		sample.New(logger),
		schemaFor(cfg),
		logger,
	)
}
