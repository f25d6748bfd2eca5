package registry

import (
	"context"
	"errors"

	"github.com/bensonrodney/homeassistant-discord/internal/webhook"
	"github.com/rs/zerolog"
)

// ImportResult reports the outcome of importing a configuration block.
type ImportResult struct {
	Imported []Entry
	// Skipped holds the URLs that were already registered or repeated in the block.
	Skipped []string
	// Errors holds per-item failures; they never stop the remaining items.
	Errors []error
}

// Import resolves b and registers every resulting config that is not already
// present in reg. Importing the same block twice registers each URL once.
func Import(ctx context.Context, reg Registry, b webhook.Block, d webhook.Defaults, logger zerolog.Logger) ImportResult {
	logger = logger.With().Str("module", "Importer").Logger()
	var result ImportResult

	configs, resolveErrs := webhook.Resolve(b, d)
	for _, err := range resolveErrs {
		var cfgErr *webhook.ConfigError
		if errors.As(err, &cfgErr) && cfgErr.Kind == webhook.KindDuplicate {
			logger.Info().Int("item", cfgErr.Index).Str("target", webhook.RedactURL(cfgErr.URL)).Msg("Webhook repeated in configuration, skipping")
			result.Skipped = append(result.Skipped, cfgErr.URL)
			continue
		}
		logger.Error().Err(err).Msg("Invalid webhook configuration item")
		result.Errors = append(result.Errors, err)
	}

	for _, cfg := range configs {
		target := webhook.RedactURL(cfg.WebhookURL)

		if _, err := reg.FindByURL(ctx, cfg.WebhookURL); err == nil {
			logger.Info().Str("webhook_name", cfg.DisplayName).Str("target", target).Msg("Webhook already registered, skipping")
			result.Skipped = append(result.Skipped, cfg.WebhookURL)
			continue
		} else if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Str("target", target).Msg("Failed to look up webhook")
			result.Errors = append(result.Errors, err)
			continue
		}

		entry, err := reg.Register(ctx, cfg)
		if errors.Is(err, ErrAlreadyRegistered) {
			logger.Info().Str("webhook_name", cfg.DisplayName).Str("target", target).Msg("Webhook already registered, skipping")
			result.Skipped = append(result.Skipped, cfg.WebhookURL)
			continue
		}
		if err != nil {
			logger.Error().Err(err).Str("target", target).Msg("Failed to register webhook")
			result.Errors = append(result.Errors, err)
			continue
		}

		logger.Info().Str("entry_id", entry.ID).Str("webhook_name", cfg.DisplayName).Str("target", target).Msg("Webhook registered")
		result.Imported = append(result.Imported, entry)
	}

	return result
}
