package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

const webhooksKey = "webhooks"

// Block is a configuration block in either of its two accepted shapes: a
// single inline webhook (legacy) or a mapping holding a "webhooks" list.
// Both decode into the same list so nothing downstream sees the difference.
type Block struct {
	Webhooks []RawWebhook
	Legacy   bool
}

// LegacyBlock wraps a single inline webhook.
func LegacyBlock(raw RawWebhook) Block {
	return Block{Webhooks: []RawWebhook{raw}, Legacy: true}
}

// ListBlock wraps a list of webhooks.
func ListBlock(raws ...RawWebhook) Block {
	return Block{Webhooks: raws}
}

// IsZero reports whether the block holds no webhooks.
func (b Block) IsZero() bool {
	return len(b.Webhooks) == 0
}

type listShape struct {
	Webhooks []RawWebhook `json:"webhooks" yaml:"webhooks"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Block) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*b = Block{}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("webhook block must be a mapping, got line %d", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == webhooksKey {
			var list listShape
			if err := node.Decode(&list); err != nil {
				return fmt.Errorf("failed to decode webhooks list: %w", err)
			}
			*b = ListBlock(list.Webhooks...)
			return nil
		}
	}

	var single RawWebhook
	if err := node.Decode(&single); err != nil {
		return fmt.Errorf("failed to decode webhook: %w", err)
	}
	*b = LegacyBlock(single)
	return nil
}

// MarshalYAML implements yaml.Marshaler, writing the list shape.
func (b Block) MarshalYAML() (interface{}, error) {
	return listShape{Webhooks: b.Webhooks}, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Block) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*b = Block{}
		return nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("webhook block must be an object: %w", err)
	}

	if _, ok := probe[webhooksKey]; ok {
		var list listShape
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("failed to decode webhooks list: %w", err)
		}
		*b = ListBlock(list.Webhooks...)
		return nil
	}

	var single RawWebhook
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("failed to decode webhook: %w", err)
	}
	*b = LegacyBlock(single)
	return nil
}

// MarshalJSON implements json.Marshaler, writing the list shape.
func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(listShape{Webhooks: b.Webhooks})
}
