package discord

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/bensonrodney/homeassistant-discord/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://discord.example/api/webhooks/1/abc"

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestBuildPayload_MinimalJSON(t *testing.T) {
	payload := BuildPayload(webhook.WebhookConfig{WebhookURL: testURL}, SendRequest{Message: "hello"})

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Equal(t, `{"content":"hello","tts":false}`, string(out))
}

func TestBuildPayload_Title(t *testing.T) {
	payload := BuildPayload(webhook.WebhookConfig{}, SendRequest{Message: "body", Title: strPtr("Alert")})
	assert.Equal(t, "**Alert**\nbody", payload.Content)

	payload = BuildPayload(webhook.WebhookConfig{}, SendRequest{Message: "body", Title: strPtr("")})
	assert.Equal(t, "body", payload.Content)
}

func TestBuildPayload_TruncatesContent(t *testing.T) {
	message := strings.Repeat("a", 2500)
	payload := BuildPayload(webhook.WebhookConfig{}, SendRequest{Message: message})

	assert.Len(t, payload.Content, MaxContentLength)
	assert.True(t, strings.HasPrefix(message, payload.Content))
}

func TestBuildPayload_TruncatesAfterTitle(t *testing.T) {
	message := strings.Repeat("b", 2000)
	payload := BuildPayload(webhook.WebhookConfig{}, SendRequest{Message: message, Title: strPtr("T")})

	full := "**T**\n" + message
	assert.Equal(t, full[:MaxContentLength], payload.Content)
}

func TestBuildPayload_TruncatesByCharacter(t *testing.T) {
	message := strings.Repeat("é", 2001)
	payload := BuildPayload(webhook.WebhookConfig{}, SendRequest{Message: message})

	assert.Equal(t, strings.Repeat("é", 2000), payload.Content)
}

func TestBuildPayload_ExactLimitUntouched(t *testing.T) {
	message := strings.Repeat("c", MaxContentLength)
	payload := BuildPayload(webhook.WebhookConfig{}, SendRequest{Message: message})
	assert.Equal(t, message, payload.Content)
}

func TestBuildPayload_TTS(t *testing.T) {
	cfg := webhook.WebhookConfig{TTSDefault: true}

	assert.True(t, BuildPayload(cfg, SendRequest{Message: "m"}).TTS)
	assert.False(t, BuildPayload(cfg, SendRequest{Message: "m", TTS: boolPtr(false)}).TTS)
	assert.True(t, BuildPayload(webhook.WebhookConfig{}, SendRequest{Message: "m", TTS: boolPtr(true)}).TTS)
}

func TestBuildPayload_OptionalOverrides(t *testing.T) {
	cfg := webhook.WebhookConfig{Username: strPtr("Home"), AvatarURL: strPtr("https://example.com/a.png")}
	out, err := json.Marshal(BuildPayload(cfg, SendRequest{Message: "m"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":"m","tts":false,"username":"Home","avatar_url":"https://example.com/a.png"}`, string(out))

	for _, cfg := range []webhook.WebhookConfig{{}, {Username: strPtr(""), AvatarURL: strPtr("")}} {
		out, err := json.Marshal(BuildPayload(cfg, SendRequest{Message: "m"}))
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(out, &fields))
		assert.NotContains(t, fields, "username")
		assert.NotContains(t, fields, "avatar_url")
	}
}

func TestBuildPayload_EmbedsAndImages(t *testing.T) {
	req := SendRequest{
		Message:   "m",
		Embeds:    []Embed{{"title": "one", "color": 5814783}},
		ImageURLs: []string{"https://example.com/cam.jpg"},
	}
	out, err := json.Marshal(BuildPayload(webhook.WebhookConfig{}, req))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"content": "m",
		"tts": false,
		"embeds": [
			{"title": "one", "color": 5814783},
			{"image": {"url": "https://example.com/cam.jpg"}}
		]
	}`, string(out))
}

func TestBuildPayload_ImagesOnly(t *testing.T) {
	payload := BuildPayload(webhook.WebhookConfig{}, SendRequest{Message: "m", ImageURLs: []string{"a", "b"}})

	require.Len(t, payload.Embeds, 2)
	assert.Equal(t, NewImageEmbed("a"), payload.Embeds[0])
	assert.Equal(t, NewImageEmbed("b"), payload.Embeds[1])
}

func TestBuildPayload_EmbedCap(t *testing.T) {
	var embeds []Embed
	for i := 0; i < 7; i++ {
		embeds = append(embeds, Embed{"title": i})
	}
	var images []string
	for i := 0; i < 6; i++ {
		images = append(images, "https://example.com/"+string(rune('a'+i))+".png")
	}

	payload := BuildPayload(webhook.WebhookConfig{}, SendRequest{Message: "m", Embeds: embeds, ImageURLs: images})

	require.Len(t, payload.Embeds, MaxEmbeds)
	for i := 0; i < 7; i++ {
		assert.Equal(t, embeds[i], payload.Embeds[i])
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, NewImageEmbed(images[i]), payload.Embeds[7+i])
	}
}

func TestBuildPayload_TooManyExplicitEmbeds(t *testing.T) {
	var embeds []Embed
	for i := 0; i < 12; i++ {
		embeds = append(embeds, Embed{"title": i})
	}

	payload := BuildPayload(webhook.WebhookConfig{}, SendRequest{Message: "m", Embeds: embeds, ImageURLs: []string{"x"}})

	require.Len(t, payload.Embeds, MaxEmbeds)
	assert.Equal(t, embeds[:MaxEmbeds], payload.Embeds)
}

func TestBuildPayload_NoEmbedsField(t *testing.T) {
	out, err := json.Marshal(BuildPayload(webhook.WebhookConfig{}, SendRequest{Message: "m", Embeds: []Embed{}, ImageURLs: []string{}}))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "embeds")
}

func TestMessagePayloadBuilder(t *testing.T) {
	payload := NewMessagePayloadBuilder().
		WithContent("hi").
		WithUsername("bot").
		WithAvatarURL("https://example.com/a.png").
		WithTTS(true).
		AddEmbed(Embed{"title": "x"}).
		Build()

	assert.Equal(t, "hi", payload.Content)
	assert.Equal(t, "bot", payload.Username)
	assert.Equal(t, "https://example.com/a.png", payload.AvatarURL)
	assert.True(t, payload.TTS)
	assert.Len(t, payload.Embeds, 1)
}

func TestBuildPayload_RequestOverridesIdentity(t *testing.T) {
	cfg := webhook.WebhookConfig{WebhookURL: testURL, Username: strPtr("configured"), AvatarURL: strPtr("https://example.com/c.png")}

	payload := BuildPayload(cfg, SendRequest{Message: "m", Username: strPtr("per-call")})
	assert.Equal(t, "per-call", payload.Username)
	assert.Equal(t, "https://example.com/c.png", payload.AvatarURL)

	payload = BuildPayload(cfg, SendRequest{Message: "m", Username: strPtr(""), AvatarURL: strPtr("https://example.com/p.png")})
	assert.Equal(t, "configured", payload.Username)
	assert.Equal(t, "https://example.com/p.png", payload.AvatarURL)
}
