package discord

import (
	"unicode/utf8"

	"github.com/bensonrodney/homeassistant-discord/internal/webhook"
)

// BuildPayload assembles the webhook payload for req sent through cfg.
//
// A non-empty title is prepended in bold, content is cut to
// MaxContentLength characters, the request's tts wins over the config
// default, and explicit embeds come before image embeds with the combined
// list capped at MaxEmbeds.
func BuildPayload(cfg webhook.WebhookConfig, req SendRequest) MessagePayload {
	b := NewMessagePayloadBuilder().
		WithContent(formatContent(req.Title, req.Message)).
		WithTTS(cfg.TTSDefault)

	if req.TTS != nil {
		b.WithTTS(*req.TTS)
	}
	if username := firstPresent(req.Username, cfg.Username); username != "" {
		b.WithUsername(username)
	}
	if avatarURL := firstPresent(req.AvatarURL, cfg.AvatarURL); avatarURL != "" {
		b.WithAvatarURL(avatarURL)
	}
	for _, embed := range req.Embeds {
		b.AddEmbed(embed)
	}
	for _, imageURL := range req.ImageURLs {
		b.AddEmbed(NewImageEmbed(imageURL))
	}

	return b.Build()
}

func firstPresent(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func formatContent(title *string, message string) string {
	if title != nil && *title != "" {
		return "**" + *title + "**\n" + message
	}
	return message
}

// MessagePayloadBuilder helps in constructing MessagePayload objects while
// keeping them inside Discord's limits.
type MessagePayloadBuilder struct {
	payload MessagePayload
}

// NewMessagePayloadBuilder creates a new instance of MessagePayloadBuilder.
func NewMessagePayloadBuilder() *MessagePayloadBuilder {
	return &MessagePayloadBuilder{}
}

// WithContent sets the content, truncated to MaxContentLength characters.
func (b *MessagePayloadBuilder) WithContent(content string) *MessagePayloadBuilder {
	b.payload.Content = truncate(content, MaxContentLength)
	return b
}

// WithTTS sets the text-to-speech flag.
func (b *MessagePayloadBuilder) WithTTS(tts bool) *MessagePayloadBuilder {
	b.payload.TTS = tts
	return b
}

// WithUsername sets the username override.
func (b *MessagePayloadBuilder) WithUsername(username string) *MessagePayloadBuilder {
	b.payload.Username = username
	return b
}

// WithAvatarURL sets the avatar override.
func (b *MessagePayloadBuilder) WithAvatarURL(avatarURL string) *MessagePayloadBuilder {
	b.payload.AvatarURL = avatarURL
	return b
}

// AddEmbed appends an embed. Embeds past MaxEmbeds are dropped.
func (b *MessagePayloadBuilder) AddEmbed(embed Embed) *MessagePayloadBuilder {
	if len(b.payload.Embeds) < MaxEmbeds {
		b.payload.Embeds = append(b.payload.Embeds, embed)
	}
	return b
}

// Build returns the constructed MessagePayload.
func (b *MessagePayloadBuilder) Build() MessagePayload {
	return b.payload
}

// truncate keeps the first limit characters (runes) of s.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
