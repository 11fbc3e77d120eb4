package core

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the console logger for development and the JSON logger
// otherwise. level overrides the environment's default level when set.
func NewLogger(environment, level string) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if environment == "development" {
		cfg = zap.NewDevelopmentConfig()
	}

	if level != "" {
		atomic, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = atomic
	}

	cfg.InitialFields = map[string]interface{}{"service": "company-data"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}
