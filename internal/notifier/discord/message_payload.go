package discord

const (
	// MaxContentLength is Discord's limit on message content, in characters.
	MaxContentLength = 2000
	// MaxEmbeds is Discord's limit on embeds per message.
	MaxEmbeds = 10
)

// MessagePayload represents the JSON payload sent to a Discord webhook.
type MessagePayload struct {
	Content   string  `json:"content"`
	TTS       bool    `json:"tts"`
	Username  string  `json:"username,omitempty"`   // Override the default webhook username
	AvatarURL string  `json:"avatar_url,omitempty"` // Override the default webhook avatar
	Embeds    []Embed `json:"embeds,omitempty"`
}

// SendRequest is a single notification to deliver. Nil pointer fields are absent.
type SendRequest struct {
	Message   string
	Title     *string
	TTS       *bool
	Embeds    []Embed
	ImageURLs []string
	// Username and AvatarURL replace the webhook's configured overrides for
	// this message only.
	Username  *string
	AvatarURL *string
}
