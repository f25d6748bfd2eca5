package webhook

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://discord.example/api/webhooks/1/abc"

func boolPtr(b bool) *bool { return &b }

func TestNormalize_AppliesDefaults(t *testing.T) {
	cfg, err := Normalize(RawWebhook{WebhookURL: "  " + testURL + " "}, NewDefaults())
	require.NoError(t, err)

	assert.Equal(t, testURL, cfg.WebhookURL)
	assert.Equal(t, DefaultName, cfg.DisplayName)
	assert.Nil(t, cfg.Username)
	assert.Nil(t, cfg.AvatarURL)
	assert.False(t, cfg.TTSDefault)
}

func TestNormalize_EmptyOptionalStringsBecomeAbsent(t *testing.T) {
	cfg, err := Normalize(RawWebhook{
		WebhookURL: testURL,
		Name:       "   ",
		Username:   " ",
		AvatarURL:  "",
	}, NewDefaults())
	require.NoError(t, err)

	assert.Equal(t, DefaultName, cfg.DisplayName)
	assert.Nil(t, cfg.Username)
	assert.Nil(t, cfg.AvatarURL)
	assert.False(t, cfg.HasUsername())
	assert.False(t, cfg.HasAvatarURL())
}

func TestNormalize_KeepsOverrides(t *testing.T) {
	cfg, err := Normalize(RawWebhook{
		WebhookURL: testURL,
		Name:       "Alerts",
		Username:   "Home",
		AvatarURL:  "https://example.com/a.png",
		TTS:        boolPtr(true),
	}, NewDefaults())
	require.NoError(t, err)

	assert.Equal(t, "Alerts", cfg.DisplayName)
	require.NotNil(t, cfg.Username)
	assert.Equal(t, "Home", *cfg.Username)
	require.NotNil(t, cfg.AvatarURL)
	assert.Equal(t, "https://example.com/a.png", *cfg.AvatarURL)
	assert.True(t, cfg.TTSDefault)
}

func TestNormalize_UsesProvidedDefaults(t *testing.T) {
	cfg, err := Normalize(RawWebhook{WebhookURL: testURL}, Defaults{Name: "House", TTS: true})
	require.NoError(t, err)

	assert.Equal(t, "House", cfg.DisplayName)
	assert.True(t, cfg.TTSDefault)

	cfg, err = Normalize(RawWebhook{WebhookURL: testURL, TTS: boolPtr(false)}, Defaults{Name: "House", TTS: true})
	require.NoError(t, err)
	assert.False(t, cfg.TTSDefault)
}

func TestNormalize_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://bad", "discord.com/api/webhooks/1/abc", "https://", "not a url"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Normalize(RawWebhook{WebhookURL: raw}, NewDefaults())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidURL))

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, KindInvalidURL, cfgErr.Kind)
			assert.Equal(t, -1, cfgErr.Index)
		})
	}
}

func TestNormalize_AcceptsPlainHTTP(t *testing.T) {
	_, err := Normalize(RawWebhook{WebhookURL: "http://localhost:8123/hook"}, NewDefaults())
	assert.NoError(t, err)
}

func TestResolve_LegacyMatchesList(t *testing.T) {
	raw := RawWebhook{WebhookURL: testURL, Name: "Alerts", Username: "Bot", TTS: boolPtr(true)}

	legacy, legacyErrs := Resolve(LegacyBlock(raw), NewDefaults())
	list, listErrs := Resolve(ListBlock(raw), NewDefaults())

	assert.Empty(t, legacyErrs)
	assert.Empty(t, listErrs)
	require.Len(t, legacy, 1)
	assert.Equal(t, list, legacy)
}

func TestResolve_PerItemErrors(t *testing.T) {
	block := ListBlock(
		RawWebhook{WebhookURL: "ftp://bad"},
		RawWebhook{WebhookURL: testURL},
		RawWebhook{WebhookURL: "https://discord.example/api/webhooks/2/def"},
	)

	configs, errs := Resolve(block, NewDefaults())

	require.Len(t, configs, 2)
	assert.Equal(t, testURL, configs[0].WebhookURL)
	require.Len(t, errs, 1)
	var cfgErr *ConfigError
	require.True(t, errors.As(errs[0], &cfgErr))
	assert.Equal(t, 0, cfgErr.Index)
	assert.ErrorIs(t, errs[0], ErrInvalidURL)
}

func TestResolve_DuplicatesWithinBlock(t *testing.T) {
	block := ListBlock(
		RawWebhook{WebhookURL: testURL, Name: "first"},
		RawWebhook{WebhookURL: testURL + " ", Name: "second"},
	)

	configs, errs := Resolve(block, NewDefaults())

	require.Len(t, configs, 1)
	assert.Equal(t, "first", configs[0].DisplayName)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrDuplicate)
	assert.NotErrorIs(t, errs[0], ErrInvalidURL)
}

func TestResolve_EmptyBlock(t *testing.T) {
	configs, errs := Resolve(Block{}, NewDefaults())
	assert.Empty(t, configs)
	assert.Empty(t, errs)
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "https://discord.example/api/webhooks/1/***", RedactURL(testURL))
	assert.Equal(t, "https://discord.example", RedactURL("https://discord.example"))
	assert.Equal(t, "***", RedactURL("::not-a-url"))
}

func TestConfigError_MessageIsRedacted(t *testing.T) {
	err := NewDuplicateError(testURL, 3)
	assert.NotContains(t, err.Error(), "abc")
	assert.Contains(t, err.Error(), "item 3")
	assert.Contains(t, err.Error(), "duplicate")
}
