// Package registry stores the webhook targets that have been registered,
// keyed by an opaque ID and deduplicated by webhook URL.
package registry

import (
	"context"
	"errors"
	"time"

	"github.com/bensonrodney/homeassistant-discord/internal/webhook"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no entry matches the given ID or URL.
	ErrNotFound = errors.New("webhook entry not found")
	// ErrAlreadyRegistered is returned when the webhook URL is already registered.
	ErrAlreadyRegistered = errors.New("webhook url already registered")
)

// Entry is one registered webhook target.
type Entry struct {
	ID        string
	Config    webhook.WebhookConfig
	CreatedAt time.Time
}

// Registry persists registered webhook targets.
type Registry interface {
	Register(ctx context.Context, cfg webhook.WebhookConfig) (Entry, error)
	Deregister(ctx context.Context, id string) error
	List(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, id string) (Entry, error)
	FindByURL(ctx context.Context, webhookURL string) (Entry, error)
	Close() error
}

func newEntryID() string {
	return uuid.NewString()
}
