package service

import "github.com/bensonrodney/homeassistant-discord/internal/notifier/discord"

// Keys recognised in the data mapping of a send call.
const (
	DataKeyTTS       = "tts"
	DataKeyEmbeds    = "embeds"
	DataKeyImages    = "images"
	DataKeyUsername  = "username"
	DataKeyAvatarURL = "avatar_url"
)

// SendData is the typed form of the optional data mapping of a send call.
type SendData struct {
	TTS       *bool
	Embeds    []discord.Embed
	ImageURLs []string
	Username  *string
	AvatarURL *string
}

// DataFromMap reads the recognised keys of an untyped data mapping, as it
// arrives from a decoded JSON or YAML document. Values of the wrong type are
// ignored, as are embed items that are not objects (null included) and image
// items that are not strings. Unknown keys are ignored.
func DataFromMap(data map[string]any) SendData {
	var out SendData
	if data == nil {
		return out
	}

	if tts, ok := data[DataKeyTTS].(bool); ok {
		out.TTS = &tts
	}

	switch embeds := data[DataKeyEmbeds].(type) {
	case []any:
		for _, item := range embeds {
			if embed := asEmbed(item); embed != nil {
				out.Embeds = append(out.Embeds, embed)
			}
		}
	case []map[string]any:
		for _, item := range embeds {
			if item != nil {
				out.Embeds = append(out.Embeds, discord.Embed(item))
			}
		}
	case []discord.Embed:
		for _, item := range embeds {
			if item != nil {
				out.Embeds = append(out.Embeds, item)
			}
		}
	}

	switch images := data[DataKeyImages].(type) {
	case []any:
		for _, item := range images {
			if s, ok := item.(string); ok {
				out.ImageURLs = append(out.ImageURLs, s)
			}
		}
	case []string:
		out.ImageURLs = append(out.ImageURLs, images...)
	}

	if username, ok := data[DataKeyUsername].(string); ok {
		out.Username = &username
	}
	if avatarURL, ok := data[DataKeyAvatarURL].(string); ok {
		out.AvatarURL = &avatarURL
	}

	return out
}

func asEmbed(item any) discord.Embed {
	switch v := item.(type) {
	case map[string]any:
		return discord.Embed(v)
	case discord.Embed:
		return v
	}
	return nil
}

// Request combines a message and its data into a discord.SendRequest.
// A nil or empty title is absent.
func (d SendData) Request(message string, title *string) discord.SendRequest {
	return discord.SendRequest{
		Message:   message,
		Title:     title,
		TTS:       d.TTS,
		Embeds:    d.Embeds,
		ImageURLs: d.ImageURLs,
		Username:  d.Username,
		AvatarURL: d.AvatarURL,
	}
}
