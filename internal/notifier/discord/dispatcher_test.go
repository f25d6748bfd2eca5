package discord

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/bensonrodney/homeassistant-discord/internal/webhook"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_SendRoutesByID(t *testing.T) {
	var hitsA, hitsB atomic.Int32
	serverA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hitsA.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer serverA.Close()
	serverB := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hitsB.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer serverB.Close()

	d := NewDispatcher(nil, zerolog.Nop())
	defer d.Close()
	require.NoError(t, d.Register("a", webhook.WebhookConfig{WebhookURL: serverA.URL}))
	require.NoError(t, d.Register("b", webhook.WebhookConfig{WebhookURL: serverB.URL}))

	require.NoError(t, d.Send(context.Background(), "b", SendRequest{Message: "m"}))

	assert.Equal(t, int32(0), hitsA.Load())
	assert.Equal(t, int32(1), hitsB.Load())
	assert.Equal(t, []string{"a", "b"}, d.Targets())
}

func TestDispatcher_UnknownTarget(t *testing.T) {
	d := NewDispatcher(nil, zerolog.Nop())

	err := d.Send(context.Background(), "missing", SendRequest{Message: "m"})
	assert.ErrorIs(t, err, ErrUnknownTarget)
	assert.ErrorIs(t, d.Deregister("missing"), ErrUnknownTarget)
}

func TestDispatcher_RegisterTwice(t *testing.T) {
	d := NewDispatcher(nil, zerolog.Nop())
	require.NoError(t, d.Register("a", webhook.WebhookConfig{WebhookURL: testURL}))

	assert.ErrorIs(t, d.Register("a", webhook.WebhookConfig{WebhookURL: testURL}), ErrTargetExists)
}

func TestDispatcher_ClientFactoryError(t *testing.T) {
	d := NewDispatcher(func() (*http.Client, error) { return nil, errors.New("no client") }, zerolog.Nop())

	err := d.Register("a", webhook.WebhookConfig{WebhookURL: testURL})
	assert.Error(t, err)
	assert.Empty(t, d.Targets())
}

func TestDispatcher_DeregisterClosesNotifier(t *testing.T) {
	d := NewDispatcher(nil, zerolog.Nop())
	require.NoError(t, d.Register("a", webhook.WebhookConfig{WebhookURL: testURL}))

	d.mu.RLock()
	n := d.notifiers["a"]
	d.mu.RUnlock()

	require.NoError(t, d.Deregister("a"))
	assert.True(t, n.isClosed())
	assert.ErrorIs(t, d.Send(context.Background(), "a", SendRequest{Message: "m"}), ErrUnknownTarget)
}

func TestDispatcher_BroadcastJoinsFailures(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ok.Close()
	rejected := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer rejected.Close()

	d := NewDispatcher(nil, zerolog.Nop())
	defer d.Close()
	d.SetBroadcastConcurrency(2)
	require.NoError(t, d.Register("ok", webhook.WebhookConfig{WebhookURL: ok.URL}))
	require.NoError(t, d.Register("rejected", webhook.WebhookConfig{WebhookURL: rejected.URL}))
	require.NoError(t, d.Register("rejected-too", webhook.WebhookConfig{WebhookURL: rejected.URL + "/2"}))

	err := d.Broadcast(context.Background(), SendRequest{Message: "m"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPStatus)
	assert.Contains(t, err.Error(), "target rejected:")
	assert.Contains(t, err.Error(), "target rejected-too:")
	assert.NotContains(t, err.Error(), "target ok:")
}

func TestDispatcher_BroadcastAllSucceed(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	d := NewDispatcher(nil, zerolog.Nop())
	defer d.Close()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, d.Register(id, webhook.WebhookConfig{WebhookURL: server.URL + "/" + id}))
	}

	require.NoError(t, d.Broadcast(context.Background(), SendRequest{Message: "m"}))
	assert.Equal(t, int32(5), hits.Load())
}

func TestDispatcher_BroadcastNoTargets(t *testing.T) {
	d := NewDispatcher(nil, zerolog.Nop())
	assert.NoError(t, d.Broadcast(context.Background(), SendRequest{Message: "m"}))
}
