package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/bensonrodney/homeassistant-discord/internal/webhook"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ClientFactory creates the HTTP client owned by a newly registered notifier.
type ClientFactory func() (*http.Client, error)

// DefaultBroadcastConcurrency bounds how many webhooks Broadcast posts to at once.
const DefaultBroadcastConcurrency = 4

// Dispatcher routes sends to the notifier registered under a target ID.
// Targets are independent: a send to one never waits on another.
type Dispatcher struct {
	mu        sync.RWMutex
	notifiers map[string]*Notifier

	newClient   ClientFactory
	concurrency int
	logger      zerolog.Logger
}

// NewDispatcher creates an empty Dispatcher. A nil factory gives every
// notifier a plain client with the default timeout.
func NewDispatcher(newClient ClientFactory, logger zerolog.Logger) *Dispatcher {
	if newClient == nil {
		newClient = func() (*http.Client, error) { return nil, nil }
	}
	return &Dispatcher{
		notifiers:   make(map[string]*Notifier),
		newClient:   newClient,
		concurrency: DefaultBroadcastConcurrency,
		logger:      logger.With().Str("module", "DiscordDispatcher").Logger(),
	}
}

// SetBroadcastConcurrency changes how many webhooks Broadcast posts to at once.
func (d *Dispatcher) SetBroadcastConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	d.mu.Lock()
	d.concurrency = n
	d.mu.Unlock()
}

// Register creates a notifier for cfg under id.
func (d *Dispatcher) Register(id string, cfg webhook.WebhookConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.notifiers[id]; exists {
		return fmt.Errorf("%w: %s", ErrTargetExists, id)
	}

	client, err := d.newClient()
	if err != nil {
		return fmt.Errorf("failed to create http client for %s: %w", id, err)
	}

	d.notifiers[id] = NewNotifier(cfg, client, d.logger)
	d.logger.Info().Str("target_id", id).Str("webhook_name", cfg.DisplayName).Msg("Discord notification target registered")
	return nil
}

// Deregister removes the notifier under id and closes its HTTP client.
func (d *Dispatcher) Deregister(id string) error {
	d.mu.Lock()
	n, ok := d.notifiers[id]
	delete(d.notifiers, id)
	d.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTarget, id)
	}

	n.Close()
	d.logger.Info().Str("target_id", id).Msg("Discord notification target removed")
	return nil
}

// Targets returns the registered target IDs in sorted order.
func (d *Dispatcher) Targets() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]string, 0, len(d.notifiers))
	for id := range d.notifiers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Send delivers req to the target registered under id.
func (d *Dispatcher) Send(ctx context.Context, id string, req SendRequest) error {
	d.mu.RLock()
	n, ok := d.notifiers[id]
	d.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTarget, id)
	}
	return n.Send(ctx, req)
}

// Broadcast delivers req to every registered target. All targets are tried;
// the failures are joined into the returned error.
func (d *Dispatcher) Broadcast(ctx context.Context, req SendRequest) error {
	d.mu.RLock()
	ids := make([]string, 0, len(d.notifiers))
	notifiers := make([]*Notifier, 0, len(d.notifiers))
	for id, n := range d.notifiers {
		ids = append(ids, id)
		notifiers = append(notifiers, n)
	}
	limit := d.concurrency
	d.mu.RUnlock()

	errs := make([]error, len(notifiers))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, n := range notifiers {
		g.Go(func() error {
			if err := n.Send(ctx, req); err != nil {
				errs[i] = fmt.Errorf("target %s: %w", ids[i], err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// Close closes every notifier and empties the dispatcher.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	notifiers := d.notifiers
	d.notifiers = make(map[string]*Notifier)
	d.mu.Unlock()

	for _, n := range notifiers {
		n.Close()
	}
}
