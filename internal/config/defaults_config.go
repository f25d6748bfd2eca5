package config

import "github.com/bensonrodney/homeassistant-discord/internal/webhook"

// DefaultsConfig overrides the values applied to webhooks that omit a name or tts.
type DefaultsConfig struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	TTS  bool   `json:"tts,omitempty" yaml:"tts,omitempty"`
}

// NewDefaultDefaultsConfig creates the built-in webhook defaults
func NewDefaultDefaultsConfig() DefaultsConfig {
	d := webhook.NewDefaults()
	return DefaultsConfig{Name: d.Name, TTS: d.TTS}
}

// WebhookDefaults converts the configured values for the resolver.
// An empty name falls back to the built-in default.
func (c DefaultsConfig) WebhookDefaults() webhook.Defaults {
	d := webhook.NewDefaults()
	if c.Name != "" {
		d.Name = c.Name
	}
	d.TTS = c.TTS
	return d
}
