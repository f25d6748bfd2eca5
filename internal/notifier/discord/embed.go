package discord

// Embed is a Discord embed object. Its fields are not interpreted here and
// are sent to Discord as given.
type Embed map[string]any

// NewImageEmbed returns an embed holding only an image reference.
func NewImageEmbed(url string) Embed {
	return Embed{"image": map[string]any{"url": url}}
}
