package webhook

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBlock_UnmarshalYAML_Legacy(t *testing.T) {
	data := `
webhook_url: https://discord.example/api/webhooks/1/abc
name: Alerts
tts: true
`
	var b Block
	require.NoError(t, yaml.Unmarshal([]byte(data), &b))

	assert.True(t, b.Legacy)
	require.Len(t, b.Webhooks, 1)
	assert.Equal(t, "Alerts", b.Webhooks[0].Name)
	require.NotNil(t, b.Webhooks[0].TTS)
	assert.True(t, *b.Webhooks[0].TTS)
}

func TestBlock_UnmarshalYAML_List(t *testing.T) {
	data := `
webhooks:
  - webhook_url: https://discord.example/api/webhooks/1/abc
    username: Home
  - webhook_url: https://discord.example/api/webhooks/2/def
    avatar_url: https://example.com/a.png
`
	var b Block
	require.NoError(t, yaml.Unmarshal([]byte(data), &b))

	assert.False(t, b.Legacy)
	require.Len(t, b.Webhooks, 2)
	assert.Equal(t, "Home", b.Webhooks[0].Username)
	assert.Equal(t, "https://example.com/a.png", b.Webhooks[1].AvatarURL)
	assert.Nil(t, b.Webhooks[1].TTS)
}

func TestBlock_UnmarshalYAML_RejectsSequence(t *testing.T) {
	var b Block
	err := yaml.Unmarshal([]byte("- a\n- b\n"), &b)
	assert.Error(t, err)
}

func TestBlock_UnmarshalJSON(t *testing.T) {
	var legacy Block
	require.NoError(t, json.Unmarshal([]byte(`{"webhook_url":"https://discord.example/api/webhooks/1/abc"}`), &legacy))
	assert.True(t, legacy.Legacy)
	require.Len(t, legacy.Webhooks, 1)

	var list Block
	require.NoError(t, json.Unmarshal([]byte(`{"webhooks":[{"webhook_url":"https://a.example/x"},{"webhook_url":"https://b.example/y"}]}`), &list))
	assert.False(t, list.Legacy)
	assert.Len(t, list.Webhooks, 2)

	var empty Block
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.True(t, empty.IsZero())

	var bad Block
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &bad))
}

func TestBlock_MarshalWritesListShape(t *testing.T) {
	b := LegacyBlock(RawWebhook{WebhookURL: "https://discord.example/api/webhooks/1/abc"})

	out, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"webhooks":[{"webhook_url":"https://discord.example/api/webhooks/1/abc"}]}`, string(out))

	var back Block
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, b.Webhooks, back.Webhooks)
}
