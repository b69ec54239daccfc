package sink

import (
	"context"
	"direct-chat/domain/event"
	"fmt"
	"log/slog"
)

const DefaultBufferSize = 64

// ConnectionSink buffers the events of one live connection.
// The transport handler owning the connection drains Events.
type ConnectionSink struct {
	log    *slog.Logger
	userID string
	Events chan event.Event
}

func NewConnectionSink(log *slog.Logger, userID string, bufferSize int) *ConnectionSink {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &ConnectionSink{log: log, userID: userID, Events: make(chan event.Event, bufferSize)}
}

// Consume never blocks the caller for long: a full buffer means the client
// is not reading, and the event is dropped for that connection only.
func (s *ConnectionSink) Consume(ctx context.Context, e event.Event) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		s.log.Warn("Connection buffer full, event dropped", "user_id", s.userID, "event", e.Name)
		return fmt.Errorf("buffer full for user %s", s.userID)
	}
}
