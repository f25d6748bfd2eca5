// Package webhook resolves raw Discord webhook configuration into
// normalized WebhookConfig values.
package webhook

const (
	// DefaultName is the display name used when a webhook has none configured.
	DefaultName = "Discord Webhook"
	// DefaultTTS is the text-to-speech default used when a webhook leaves it unset.
	DefaultTTS = false
)

// Defaults carries the values applied to fields a raw webhook leaves empty.
type Defaults struct {
	Name string
	TTS  bool
}

// NewDefaults returns the stock defaults.
func NewDefaults() Defaults {
	return Defaults{Name: DefaultName, TTS: DefaultTTS}
}

// WebhookConfig is one registered notification target. WebhookURL is the
// natural key of a target and must not be changed after the config is created.
type WebhookConfig struct {
	WebhookURL  string  `json:"webhook_url" yaml:"webhook_url"`
	DisplayName string  `json:"name" yaml:"name"`
	Username    *string `json:"username,omitempty" yaml:"username,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
	TTSDefault  bool    `json:"tts" yaml:"tts"`
}

// HasUsername reports whether a username override is configured.
func (c WebhookConfig) HasUsername() bool {
	return c.Username != nil && *c.Username != ""
}

// HasAvatarURL reports whether an avatar override is configured.
func (c WebhookConfig) HasAvatarURL() bool {
	return c.AvatarURL != nil && *c.AvatarURL != ""
}

// RawWebhook is a single webhook as it appears in configuration input,
// before defaults and validation are applied.
type RawWebhook struct {
	WebhookURL string `json:"webhook_url" yaml:"webhook_url"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Username   string `json:"username,omitempty" yaml:"username,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
	TTS        *bool  `json:"tts,omitempty" yaml:"tts,omitempty"`
}
