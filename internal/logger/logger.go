package logger

import (
	"go.uber.org/zap"

	"github.com/yerkanat/wordorder-bot/internal/config"
)

// New builds the application logger for the configured environment.
// "production" and "prod" get the JSON production profile; everything
// else gets the human-readable development profile.
func New(cfg *config.Config) (*zap.Logger, error) {
	switch cfg.Env {
	case "production", "prod":
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
