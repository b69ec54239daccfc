package relay

import (
	"context"
	"direct-chat/contract"
	"direct-chat/domain/event"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "dm:notify"

// Envelope is what travels between instances: the recipients and the
// already encoded payload.
type Envelope struct {
	UserIDs []string        `json:"user_ids"`
	Event   event.Name      `json:"event"`
	Payload json.RawMessage `json:"payload"`
	SentAt  time.Time       `json:"sent_at"`
}

// RedisNotifier publishes notifications so that every instance, this one
// included, delivers them to the connections it holds.
type RedisNotifier struct {
	log      *slog.Logger
	client   redis.UniversalClient
	channel  string
	fallback contract.INotifier
}

// NewRedisNotifier delivers through fallback when Redis refuses the publish.
func NewRedisNotifier(log *slog.Logger, client redis.UniversalClient, channel string, fallback contract.INotifier) *RedisNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{log: log, client: client, channel: channel, fallback: fallback}
}

func (n *RedisNotifier) NotifyAll(ctx context.Context, userIDs []string, name event.Name, payload any) {
	if len(userIDs) == 0 {
		return
	}
	data, err := encode(userIDs, name, payload)
	if err != nil {
		n.log.Error("Failed to encode notification", "event", name, "error", err)
		return
	}
	if err = n.client.Publish(ctx, n.channel, data).Err(); err != nil {
		n.log.Warn("Relay publish failed, delivering locally", "event", name, "error", err)
		if n.fallback != nil {
			n.fallback.NotifyAll(ctx, userIDs, name, payload)
		}
	}
}

func encode(userIDs []string, name event.Name, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", name, err)
	}
	return json.Marshal(Envelope{UserIDs: userIDs, Event: name, Payload: raw, SentAt: time.Now().UTC()})
}

// Subscriber is a supervised worker: it hands every relayed envelope to the
// local notifier. A broken subscription returns an error and gets restarted.
type Subscriber struct {
	log     *slog.Logger
	client  redis.UniversalClient
	channel string
	local   contract.INotifier
}

func NewSubscriber(log *slog.Logger, client redis.UniversalClient, channel string, local contract.INotifier) *Subscriber {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Subscriber{log: log, client: client, channel: channel, local: local}
}

func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer func() { _ = pubsub.Close() }()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", s.channel, err)
	}
	s.log.Info("Relay subscribed", "channel", s.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("subscription to %s closed", s.channel)
			}
			s.handle(ctx, msg.Payload)
		}
	}
}

func (s *Subscriber) handle(ctx context.Context, data string) {
	var envelope Envelope
	if err := json.Unmarshal([]byte(data), &envelope); err != nil {
		s.log.Warn("Dropping malformed relay envelope", "error", err)
		return
	}
	s.local.NotifyAll(ctx, envelope.UserIDs, envelope.Event, envelope.Payload)
}
