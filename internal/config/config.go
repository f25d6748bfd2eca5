// Package config loads and validates the bridge's configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bensonrodney/homeassistant-discord/internal/common/errorwrapper"
	"github.com/bensonrodney/homeassistant-discord/internal/webhook"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type GlobalConfig struct {
	BroadcastConcurrency int              `json:"broadcast_concurrency,omitempty" yaml:"broadcast_concurrency,omitempty" validate:"omitempty,min=1"`
	Defaults             DefaultsConfig   `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	DiscordWebhook       webhook.Block    `json:"discord_webhook,omitempty" yaml:"discord_webhook,omitempty"`
	HTTPClientConfig     HTTPClientConfig `json:"http_client_config,omitempty" yaml:"http_client_config,omitempty"`
	LogConfig            LogConfig        `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	StorageConfig        StorageConfig    `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
}

func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		BroadcastConcurrency: DefaultBroadcastConcurrent,
		Defaults:             NewDefaultDefaultsConfig(),
		HTTPClientConfig:     NewDefaultHTTPClientConfig(),
		LogConfig:            NewDefaultLogConfig(),
		StorageConfig:        NewDefaultStorageConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// YAML is used when the extension is .yaml or .yml, JSON otherwise.
// Values missing from the file keep their defaults.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		logger.Debug().Msg("No config file found, using defaults")
		return cfg, nil
	}

	if !fileExists(filePath) {
		return nil, errorwrapper.NewValidationError("config_file", filePath, "config file does not exist")
	}

	data, err := readConfigFile(filePath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse config content")
	}

	logger.Info().Str("path", filePath).Msg("Configuration loaded")
	return cfg, nil
}

func readConfigFile(filePath string) ([]byte, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", filePath, maxConfigFileSize)
	}
	return data, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	if isYAMLFile(filepath.Ext(filePath)) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}
