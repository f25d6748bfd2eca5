// Package logger builds the application's zerolog logger from config.LogConfig.
package logger

import (
	"github.com/bensonrodney/homeassistant-discord/internal/config"
	"github.com/rs/zerolog"
)

// New creates a new logger instance from the log section of the global config.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	return NewLoggerBuilder().WithConfig(cfg).Build()
}
