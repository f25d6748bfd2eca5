// Package discord delivers notifications to Discord incoming webhooks.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/bensonrodney/homeassistant-discord/internal/httpclient"
	"github.com/bensonrodney/homeassistant-discord/internal/webhook"
	"github.com/rs/zerolog"
)

// maxErrorBodySize caps how much of a failed response is kept for diagnostics.
const maxErrorBodySize = 64 * 1024

// Notifier sends messages to a single webhook. It owns one *http.Client that
// is reused across sends; concurrent sends are allowed.
type Notifier struct {
	cfg        webhook.WebhookConfig
	httpClient *http.Client
	logger     zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewNotifier creates a Notifier for cfg. A nil client is replaced by one
// built from httpclient.DefaultHTTPClientConfig with its own transport.
func NewNotifier(cfg webhook.WebhookConfig, httpClient *http.Client, logger zerolog.Logger) *Notifier {
	if httpClient == nil {
		httpClient = newFallbackClient(logger)
	}

	return &Notifier{
		cfg:        cfg,
		httpClient: httpClient,
		logger: logger.With().
			Str("module", "DiscordNotifier").
			Str("webhook_name", cfg.DisplayName).
			Str("target", webhook.RedactURL(cfg.WebhookURL)).
			Logger(),
	}
}

// Send posts one message. It succeeds only on HTTP 204; any other status or
// a network failure is returned as a *DispatchError. Nothing is retried.
func (n *Notifier) Send(ctx context.Context, req SendRequest) error {
	if n.isClosed() {
		return ErrClosed
	}
	if req.Message == "" {
		return ErrEmptyMessage
	}

	payload := BuildPayload(n.cfg, req)
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal discord payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create discord request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	n.logger.Debug().
		Int("content_length", len(payload.Content)).
		Int("embeds", len(payload.Embeds)).
		Bool("tts", payload.TTS).
		Msg("Sending Discord notification")

	resp, err := n.httpClient.Do(httpReq)
	if err != nil {
		err = redactURLError(err)
		n.logger.Error().Err(err).Msg("Failed to reach Discord webhook")
		return &DispatchError{Kind: KindTransport, Target: n.cfg.DisplayName, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		n.logger.Error().
			Int("status_code", resp.StatusCode).
			Str("response_body", string(respBody)).
			Msg("Discord notification failed")
		return &DispatchError{
			Kind:       KindHTTPStatus,
			Target:     n.cfg.DisplayName,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	n.logger.Debug().Int("status_code", resp.StatusCode).Msg("Discord notification sent")
	return nil
}

// Close releases the notifier's idle connections. Sends already in flight
// finish; later sends fail with ErrClosed.
func (n *Notifier) Close() {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()

	n.httpClient.CloseIdleConnections()
}

// newFallbackClient never shares http.DefaultTransport, so closing one
// notifier leaves the idle connections of the others alone.
func newFallbackClient(logger zerolog.Logger) *http.Client {
	client, err := httpclient.NewHTTPClient(httpclient.DefaultHTTPClientConfig(), logger)
	if err != nil {
		return &http.Client{
			Timeout:   httpclient.DefaultTimeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		}
	}
	return client
}

func (n *Notifier) isClosed() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.closed
}

// redactURLError hides the webhook token that *url.Error carries in its message.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = webhook.RedactURL(urlErr.URL)
	}
	return err
}
