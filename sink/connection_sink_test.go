package sink

import (
	"context"
	"direct-chat/domain/event"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestConnectionSink_Consume(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelError)
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should buffer events in order", func(t *testing.T) {
		req := require.New(t)
		s := NewConnectionSink(log, "u1", 2)

		req.NoError(s.Consume(ctx, event.New(event.ChatCreated, "a", at)))
		req.NoError(s.Consume(ctx, event.New(event.MessageReceived, "b", at)))

		req.Equal(event.ChatCreated, (<-s.Events).Name)
		req.Equal(event.MessageReceived, (<-s.Events).Name)
	})

	t.Run("should drop when the buffer is full", func(t *testing.T) {
		req := require.New(t)
		s := NewConnectionSink(log, "u1", 1)

		req.NoError(s.Consume(ctx, event.New(event.ChatCreated, "a", at)))
		err := s.Consume(ctx, event.New(event.MessageReceived, "b", at))

		req.Error(err)
		req.Len(s.Events, 1)
	})

	t.Run("should fall back to the default buffer size", func(t *testing.T) {
		s := NewConnectionSink(log, "u1", 0)
		require.Equal(t, DefaultBufferSize, cap(s.Events))
	})
}
