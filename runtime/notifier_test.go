package runtime

import (
	"context"
	"direct-chat/contract"
	"direct-chat/domain/event"
	"direct-chat/mocks"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// recordingSink keeps every event it receives.
type recordingSink struct {
	mu     sync.Mutex
	events []event.Event
}

func (s *recordingSink) Consume(_ context.Context, e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *recordingSink) received() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event.Event(nil), s.events...)
}

// blockingSink waits until its context gives up.
type blockingSink struct{}

func (blockingSink) Consume(ctx context.Context, _ event.Event) error {
	<-ctx.Done()
	return ctx.Err()
}

func newTestNotifier(registry contract.IRegistry, timeout time.Duration) *Notifier {
	return NewNotifier(logs.GetLoggerFromLevel(slog.LevelError), registry, timeout)
}

func TestNotifier_NotifyAll(t *testing.T) {
	ctx := context.Background()

	t.Run("should deliver to both participants when both are online", func(t *testing.T) {
		req := require.New(t)
		registry := NewRegistry()
		alice, bob := &recordingSink{}, &recordingSink{}
		registry.Register("u1", alice)
		registry.Register("u2", bob)
		notifier := newTestNotifier(registry, time.Second)

		// When a chat-created event is sent to the pair
		notifier.NotifyAll(ctx, []string{"u1", "u2"}, event.ChatCreated, "payload")

		// Then each connection got exactly one copy
		req.Len(alice.received(), 1)
		req.Len(bob.received(), 1)
		req.Equal(event.ChatCreated, alice.received()[0].Name)
		req.Equal("payload", bob.received()[0].Payload)
		req.False(alice.received()[0].At.IsZero())
	})

	t.Run("should skip offline users without failing", func(t *testing.T) {
		req := require.New(t)
		registry := NewRegistry()
		bob := &recordingSink{}
		registry.Register("u2", bob)
		notifier := newTestNotifier(registry, time.Second)

		notifier.NotifyAll(ctx, []string{"u1", "u2"}, event.MessageReceived, nil)

		req.Len(bob.received(), 1)
	})

	t.Run("should do nothing when nobody is online", func(t *testing.T) {
		notifier := newTestNotifier(NewRegistry(), time.Second)
		require.NotPanics(t, func() {
			notifier.NotifyAll(ctx, []string{"u1", "u2"}, event.MessageReceived, nil)
		})
	})

	t.Run("should deliver once per connection even with duplicated ids", func(t *testing.T) {
		req := require.New(t)
		registry := NewRegistry()
		phone, laptop := &recordingSink{}, &recordingSink{}
		registry.Register("u1", phone)
		registry.Register("u1", laptop)
		notifier := newTestNotifier(registry, time.Second)

		notifier.NotifyAll(ctx, []string{"u1", "u1", ""}, event.MessageReceived, nil)

		req.Len(phone.received(), 1)
		req.Len(laptop.received(), 1)
	})
}

func TestNotifier_SinkFailuresAreIsolated(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewRegistry()
	broken := mocks.NewMockEventSink(ctrl)
	broken.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(fmt.Errorf("connection reset")).Times(1)
	panicking := mocks.NewMockEventSink(ctrl)
	panicking.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, event.Event) error {
		panic("boom")
	}).Times(1)
	healthy := &recordingSink{}

	registry.Register("u1", broken)
	registry.Register("u1", panicking)
	registry.Register("u2", healthy)
	registry.Register("u2", blockingSink{})
	notifier := newTestNotifier(registry, 50*time.Millisecond)

	// When one sink errors, one panics and one never answers
	start := time.Now()
	notifier.NotifyAll(context.Background(), []string{"u1", "u2"}, event.MessageReceived, nil)

	// Then the healthy one still got the event and the slow one was cut off
	req.Len(healthy.received(), 1)
	req.Less(time.Since(start), time.Second)
}
