package webhook

import (
	"errors"
	"strings"
)

// Normalize applies defaults to raw and validates it.
//
// Strings are trimmed, an empty name falls back to d.Name, empty username and
// avatar overrides become absent, and an unset tts falls back to d.TTS. A
// missing or non-http(s) URL yields a ConfigError of kind invalid_url.
func Normalize(raw RawWebhook, d Defaults) (WebhookConfig, error) {
	return normalizeAt(raw, d, -1)
}

func normalizeAt(raw RawWebhook, d Defaults, index int) (WebhookConfig, error) {
	webhookURL := strings.TrimSpace(raw.WebhookURL)
	if err := ValidateURL(webhookURL); err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			cfgErr.Index = index
		}
		return WebhookConfig{}, err
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = d.Name
	}
	if name == "" {
		name = DefaultName
	}

	tts := d.TTS
	if raw.TTS != nil {
		tts = *raw.TTS
	}

	return WebhookConfig{
		WebhookURL:  webhookURL,
		DisplayName: name,
		Username:    optionalString(raw.Username),
		AvatarURL:   optionalString(raw.AvatarURL),
		TTSDefault:  tts,
	}, nil
}

// Resolve turns a block into normalized configs. Every item is handled on
// its own: invalid items and repeats of an earlier URL are reported in the
// returned errors and skipped, the rest are returned in input order.
func Resolve(b Block, d Defaults) ([]WebhookConfig, []error) {
	configs := make([]WebhookConfig, 0, len(b.Webhooks))
	var errs []error
	seen := make(map[string]struct{}, len(b.Webhooks))

	for i, raw := range b.Webhooks {
		cfg, err := normalizeAt(raw, d, i)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := seen[cfg.WebhookURL]; dup {
			errs = append(errs, NewDuplicateError(cfg.WebhookURL, i))
			continue
		}
		seen[cfg.WebhookURL] = struct{}{}
		configs = append(configs, cfg)
	}

	return configs, errs
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
