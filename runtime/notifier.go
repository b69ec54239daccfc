package runtime

import (
	"context"
	"direct-chat/contract"
	"direct-chat/domain/event"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
)

const DefaultSinkTimeout = 2 * time.Second

// Notifier fans one event out to every live connection of a set of users.
//
// Delivery is best effort: no retry, no persistence, no ordering across users.
// A slow or broken sink only loses its own copy of the event.
type Notifier struct {
	log         *slog.Logger
	registry    contract.IRegistry
	sinkTimeout time.Duration
	now         func() time.Time
}

func NewNotifier(log *slog.Logger, registry contract.IRegistry, sinkTimeout time.Duration) *Notifier {
	if sinkTimeout <= 0 {
		sinkTimeout = DefaultSinkTimeout
	}
	return &Notifier{
		log:         log,
		registry:    registry,
		sinkTimeout: sinkTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// NotifyAll returns once every sink has accepted the event, failed or timed out.
func (n *Notifier) NotifyAll(ctx context.Context, userIDs []string, name event.Name, payload any) {
	e := event.New(name, payload, n.now())
	var wg sync.WaitGroup

	for _, userID := range lo.Uniq(lo.Compact(userIDs)) {
		sinks := n.registry.SinksFor(userID)
		if len(sinks) == 0 {
			n.log.Debug("User offline, event skipped", "user_id", userID, "event", name)
			continue
		}
		for _, sink := range sinks {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n.deliver(ctx, userID, sink, e)
			}()
		}
	}
	wg.Wait()
}

func (n *Notifier) deliver(ctx context.Context, userID string, sink contract.EventSink, e event.Event) {
	ctx, cancel := context.WithTimeout(ctx, n.sinkTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			n.log.Error("Sink panicked while consuming event", "user_id", userID, "event", e.Name, "panic", r)
		}
	}()

	if err := sink.Consume(ctx, e); err != nil {
		n.log.Warn("Failed to deliver event", "user_id", userID, "event", e.Name, "error", err)
	}
}
