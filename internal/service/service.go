// Package service is the notification call surface: it keeps the registry
// of webhook targets and the dispatcher that delivers to them in step.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bensonrodney/homeassistant-discord/internal/notifier/discord"
	"github.com/bensonrodney/homeassistant-discord/internal/registry"
	"github.com/bensonrodney/homeassistant-discord/internal/webhook"
	"github.com/rs/zerolog"
)

// ErrAmbiguousTarget is returned when a target name matches more than one webhook.
var ErrAmbiguousTarget = errors.New("target name matches more than one webhook")

// Service routes send calls to registered webhooks.
type Service struct {
	registry   registry.Registry
	dispatcher *discord.Dispatcher
	defaults   webhook.Defaults
	logger     zerolog.Logger
}

// NewService creates a Service over reg and dispatcher. Call Load to make
// entries already stored in reg reachable.
func NewService(reg registry.Registry, dispatcher *discord.Dispatcher, defaults webhook.Defaults, logger zerolog.Logger) *Service {
	return &Service{
		registry:   reg,
		dispatcher: dispatcher,
		defaults:   defaults,
		logger:     logger.With().Str("module", "NotificationService").Logger(),
	}
}

// Load registers every stored entry with the dispatcher.
func (s *Service) Load(ctx context.Context) error {
	entries, err := s.registry.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list registered webhooks: %w", err)
	}

	for _, entry := range entries {
		if err := s.dispatcher.Register(entry.ID, entry.Config); err != nil && !errors.Is(err, discord.ErrTargetExists) {
			return err
		}
	}

	s.logger.Info().Int("targets", len(entries)).Msg("Notification targets loaded")
	return nil
}

// ImportBlock imports a configuration block and makes the new entries reachable.
func (s *Service) ImportBlock(ctx context.Context, b webhook.Block) registry.ImportResult {
	result := registry.Import(ctx, s.registry, b, s.defaults, s.logger)

	for _, entry := range result.Imported {
		if err := s.dispatcher.Register(entry.ID, entry.Config); err != nil && !errors.Is(err, discord.ErrTargetExists) {
			result.Errors = append(result.Errors, err)
		}
	}
	return result
}

// AddWebhook normalizes raw, stores it and makes it reachable. A URL that is
// already registered fails with a ConfigError of kind duplicate that also
// matches registry.ErrAlreadyRegistered.
func (s *Service) AddWebhook(ctx context.Context, raw webhook.RawWebhook) (registry.Entry, error) {
	cfg, err := webhook.Normalize(raw, s.defaults)
	if err != nil {
		return registry.Entry{}, err
	}

	entry, err := s.registry.Register(ctx, cfg)
	if errors.Is(err, registry.ErrAlreadyRegistered) {
		dup := webhook.NewDuplicateError(cfg.WebhookURL, -1)
		dup.Err = err
		return registry.Entry{}, dup
	}
	if err != nil {
		return registry.Entry{}, err
	}

	if err := s.dispatcher.Register(entry.ID, entry.Config); err != nil {
		if derr := s.registry.Deregister(ctx, entry.ID); derr != nil {
			s.logger.Error().Err(derr).Str("entry_id", entry.ID).Msg("Failed to roll back webhook registration")
		}
		return registry.Entry{}, err
	}
	return entry, nil
}

// RemoveWebhook deletes the entry under id and releases its HTTP client.
func (s *Service) RemoveWebhook(ctx context.Context, id string) error {
	if err := s.registry.Deregister(ctx, id); err != nil {
		return err
	}
	if err := s.dispatcher.Deregister(id); err != nil && !errors.Is(err, discord.ErrUnknownTarget) {
		return err
	}
	return nil
}

// Targets lists the registered webhooks in creation order.
func (s *Service) Targets(ctx context.Context) ([]registry.Entry, error) {
	return s.registry.List(ctx)
}

// ResolveTarget finds an entry by ID, then by display name.
func (s *Service) ResolveTarget(ctx context.Context, ref string) (registry.Entry, error) {
	entry, err := s.registry.Get(ctx, ref)
	if err == nil || !errors.Is(err, registry.ErrNotFound) {
		return entry, err
	}

	entries, err := s.registry.List(ctx)
	if err != nil {
		return registry.Entry{}, err
	}

	var matches []registry.Entry
	for _, e := range entries {
		if e.Config.DisplayName == ref {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return registry.Entry{}, fmt.Errorf("%w: %s", registry.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return registry.Entry{}, fmt.Errorf("%w: %s", ErrAmbiguousTarget, ref)
	}
}

// Send delivers message to the target named by ref (an entry ID or a
// display name). Delivery failures are returned, never only logged.
func (s *Service) Send(ctx context.Context, ref, message string, title *string, data map[string]any) error {
	entry, err := s.ResolveTarget(ctx, ref)
	if err != nil {
		return err
	}
	return s.dispatcher.Send(ctx, entry.ID, DataFromMap(data).Request(message, title))
}

// SendAll delivers message to every registered target and joins the failures.
func (s *Service) SendAll(ctx context.Context, message string, title *string, data map[string]any) error {
	return s.dispatcher.Broadcast(ctx, DataFromMap(data).Request(message, title))
}

// Close releases every HTTP client and the registry.
func (s *Service) Close() error {
	s.dispatcher.Close()
	return s.registry.Close()
}
