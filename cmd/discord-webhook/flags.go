package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bensonrodney/homeassistant-discord/internal/notifier/discord"
)

// Modes accepted by -mode.
const (
	ModeImport    = "import"
	ModeSend      = "send"
	ModeList      = "list"
	ModeRemove    = "remove"
	ModeBroadcast = "broadcast"
)

type AppFlags struct {
	GlobalConfigFile string
	Mode             string
	Target           string
	Message          string
	Title            string
	TTS              string
	Images           []string
	EmbedsFile       string
	Data             string
}

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func ParseFlags(args []string, errOut io.Writer) (AppFlags, error) {
	fs := flag.NewFlagSet("discord-webhook", flag.ContinueOnError)
	fs.SetOutput(errOut)

	globalConfigFile := fs.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := fs.String("c", "", "Alias for -config")

	modeFlag := fs.String("mode", "", "What to do: import, send, list, remove or broadcast")
	modeFlagAlias := fs.String("m", "", "Alias for -mode")

	target := fs.String("target", "", "Entry ID or webhook name to send to or remove")
	targetAlias := fs.String("t", "", "Alias for -target")

	message := fs.String("message", "", "Message text (send and broadcast)")
	title := fs.String("title", "", "Optional title, shown in bold above the message")
	tts := fs.String("tts", "", "Override text-to-speech for this message: true or false")
	embedsFile := fs.String("embeds", "", "Path to a JSON file holding a list of Discord embed objects")
	data := fs.String("data", "", "JSON object with send data (tts, embeds, images, username, avatar_url)")

	var images stringList
	fs.Var(&images, "image", "Image URL to attach as an embed (repeatable)")

	if err := fs.Parse(args); err != nil {
		return AppFlags{}, err
	}

	flags := AppFlags{
		GlobalConfigFile: firstNonEmpty(*globalConfigFile, *globalConfigFileAlias),
		Mode:             strings.ToLower(firstNonEmpty(*modeFlag, *modeFlagAlias)),
		Target:           firstNonEmpty(*target, *targetAlias),
		Message:          *message,
		Title:            *title,
		TTS:              *tts,
		Images:           images,
		EmbedsFile:       *embedsFile,
		Data:             *data,
	}

	switch flags.Mode {
	case "":
		return flags, fmt.Errorf("-mode is required (import, send, list, remove or broadcast)")
	case ModeImport, ModeList:
	case ModeSend:
		if flags.Target == "" || flags.Message == "" {
			return flags, fmt.Errorf("-mode send requires -target and -message")
		}
	case ModeBroadcast:
		if flags.Message == "" {
			return flags, fmt.Errorf("-mode broadcast requires -message")
		}
	case ModeRemove:
		if flags.Target == "" {
			return flags, fmt.Errorf("-mode remove requires -target")
		}
	default:
		return flags, fmt.Errorf("unknown mode %q", flags.Mode)
	}

	if flags.TTS != "" && flags.TTS != "true" && flags.TTS != "false" {
		return flags, fmt.Errorf("-tts must be true or false, got %q", flags.TTS)
	}

	return flags, nil
}

// SendData merges -data, -embeds, -image and -tts into one data mapping.
// The dedicated flags win over keys of -data.
func (f AppFlags) SendData() (map[string]any, error) {
	data := make(map[string]any)
	if f.Data != "" {
		if err := json.Unmarshal([]byte(f.Data), &data); err != nil {
			return nil, fmt.Errorf("-data must be a JSON object: %w", err)
		}
	}

	if f.EmbedsFile != "" {
		raw, err := os.ReadFile(f.EmbedsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read embeds file: %w", err)
		}
		var embeds []discord.Embed
		if err := json.Unmarshal(raw, &embeds); err != nil {
			return nil, fmt.Errorf("embeds file must hold a JSON list of objects: %w", err)
		}
		data["embeds"] = embeds
	}

	if len(f.Images) > 0 {
		data["images"] = []string(f.Images)
	}

	if f.TTS != "" {
		data["tts"] = f.TTS == "true"
	}

	return data, nil
}

// TitlePtr returns the title, or nil when none was given.
func (f AppFlags) TitlePtr() *string {
	if f.Title == "" {
		return nil
	}
	title := f.Title
	return &title
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
