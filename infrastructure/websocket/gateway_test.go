package websocket_test

import (
	"context"
	"direct-chat/auth"
	"direct-chat/domain"
	"direct-chat/domain/event"
	ws "direct-chat/infrastructure/websocket"
	"direct-chat/runtime"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type frame struct {
	Event   event.Name      `json:"event"`
	Payload json.RawMessage `json:"payload"`
	At      time.Time       `json:"at"`
}

func newGateway(t *testing.T, health ws.HealthCheck) (*httptest.Server, *runtime.Registry, *auth.TokenManager) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelError)
	tokens, err := auth.NewTokenManager("my_strong_and_long_secret_key_for_tests", "direct-chat", time.Hour)
	require.NoError(t, err)
	registry := runtime.NewRegistry()
	server := httptest.NewServer(ws.NewGateway(log, tokens, registry, health, 8).Router())
	t.Cleanup(server.Close)
	return server, registry, tokens
}

func wsURL(server *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=" + token
}

func TestGateway_PushesEvents(t *testing.T) {
	req := require.New(t)
	server, registry, tokens := newGateway(t, nil)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	notifier := runtime.NewNotifier(log, registry, time.Second)

	// Given bob connected through websocket
	token, err := tokens.GenerateToken("bob", nil)
	req.NoError(err)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, token), nil)
	req.NoError(err)
	req.Eventually(func() bool { return registry.ConnectionCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	// When a message is addressed to him
	payload := domain.MessageDto{Shape: domain.ShapeMessage, ID: "m1", Text: "hello"}
	notifier.NotifyAll(context.Background(), []string{"alice", "bob"}, event.MessageReceived, payload)

	// Then he receives it as a JSON frame
	req.NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var got frame
	req.NoError(conn.ReadJSON(&got))
	req.Equal(event.MessageReceived, got.Event)
	var message domain.MessageDto
	req.NoError(json.Unmarshal(got.Payload, &message))
	req.Equal("m1", message.ID)
	req.Equal("hello", message.Text)

	// When he leaves, the connection is released
	req.NoError(conn.Close())
	req.Eventually(func() bool { return registry.ConnectionCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestGateway_RejectsBadTokens(t *testing.T) {
	server, registry, _ := newGateway(t, nil)

	t.Run("should answer 401 without token", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL(server, ""), nil)
		require.ErrorIs(t, err, websocket.ErrBadHandshake)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("should answer 401 with a forged token", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "not.a.jwt"), nil)
		require.ErrorIs(t, err, websocket.ErrBadHandshake)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	require.Zero(t, registry.ConnectionCount())
}

func TestGateway_Health(t *testing.T) {
	t.Run("should report ok when the store answers", func(t *testing.T) {
		server, _, _ := newGateway(t, func(context.Context) error { return nil })
		resp, err := http.Get(server.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "ok", body["status"])
	})

	t.Run("should report unavailable when the store is down", func(t *testing.T) {
		server, _, _ := newGateway(t, func(context.Context) error { return errors.New("closed") })
		resp, err := http.Get(server.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}
