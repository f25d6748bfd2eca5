package registry

import (
	"context"
	"sync"
	"time"

	"github.com/bensonrodney/homeassistant-discord/internal/webhook"
)

// MemoryRegistry keeps entries in process memory. It is safe for concurrent use.
type MemoryRegistry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	byURL   map[string]string
	order   []string
	now     func() time.Time
}

// NewMemoryRegistry creates an empty MemoryRegistry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		entries: make(map[string]Entry),
		byURL:   make(map[string]string),
		now:     time.Now,
	}
}

func (r *MemoryRegistry) Register(ctx context.Context, cfg webhook.WebhookConfig) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byURL[cfg.WebhookURL]; exists {
		return Entry{}, ErrAlreadyRegistered
	}

	entry := Entry{ID: newEntryID(), Config: cfg, CreatedAt: r.now().UTC()}
	r.entries[entry.ID] = entry
	r.byURL[cfg.WebhookURL] = entry.ID
	r.order = append(r.order, entry.ID)
	return entry, nil
}

func (r *MemoryRegistry) Deregister(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.entries, id)
	delete(r.byURL, entry.Config.WebhookURL)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRegistry) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		entries = append(entries, r.entries[id])
	}
	return entries, nil
}

func (r *MemoryRegistry) Get(ctx context.Context, id string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

func (r *MemoryRegistry) FindByURL(ctx context.Context, webhookURL string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byURL[webhookURL]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return r.entries[id], nil
}

// Close is a no-op.
func (r *MemoryRegistry) Close() error {
	return nil
}
