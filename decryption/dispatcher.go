//go:generate go run go.uber.org/mock/mockgen -source=dispatcher.go -destination=../mocks/mock_dispatcher.go -package=mocks
package decryption

import (
	"context"
	"direct-chat/domain"
	"direct-chat/encryption"
	"direct-chat/errors"
	"fmt"
	"log/slog"
	goruntime "runtime"
	"slices"
	"sort"

	"golang.org/x/sync/semaphore"
)

type IDispatcher interface {
	Decrypt(ctx context.Context, v domain.Shaped) (domain.Shaped, error)
	DecryptRedacting(ctx context.Context, v domain.Shaped) (domain.Shaped, error)
}

// Dispatcher selects a Strategy from the shape declared by the response object.
// The registry is filled once at construction and only read afterwards.
//
// Each payload decryption derives a key with scrypt, so the number of
// decryptions in flight is bounded across every request sharing the dispatcher.
type Dispatcher struct {
	log        *slog.Logger
	cipher     encryption.ICipher
	strategies map[domain.Shape]Strategy
	slots      *semaphore.Weighted
}

func NewDispatcher(log *slog.Logger, cipher encryption.ICipher) *Dispatcher {
	d := &Dispatcher{
		log:        log,
		cipher:     cipher,
		strategies: make(map[domain.Shape]Strategy),
		slots:      semaphore.NewWeighted(int64(goruntime.GOMAXPROCS(0))),
	}
	d.register(ChatStrategy{}, MessageStrategy{})
	return d
}

// WithConcurrency caps the decryptions running at once. Zero or less keeps GOMAXPROCS.
func (d *Dispatcher) WithConcurrency(n int) *Dispatcher {
	if n > 0 {
		d.slots = semaphore.NewWeighted(int64(n))
	}
	return d
}

func (d *Dispatcher) register(strategies ...Strategy) {
	for _, s := range strategies {
		if _, ok := d.strategies[s.Shape()]; ok {
			panic(fmt.Sprintf("decryption strategy for %q registered twice", s.Shape()))
		}
		d.strategies[s.Shape()] = s
	}
}

// Shapes lists every registered shape, sorted.
func (d *Dispatcher) Shapes() []domain.Shape {
	shapes := make([]domain.Shape, 0, len(d.strategies))
	for shape := range d.strategies {
		shapes = append(shapes, shape)
	}
	sort.Slice(shapes, func(i, j int) bool { return shapes[i] < shapes[j] })
	return shapes
}

// Decrypt fails as soon as one message of the graph cannot be decrypted.
func (d *Dispatcher) Decrypt(ctx context.Context, v domain.Shaped) (domain.Shaped, error) {
	return d.dispatch(ctx, v, d.open)
}

// DecryptRedacting blanks messages whose payload is corrupted and flags them
// as undecryptable. A missing strategy is still an error.
func (d *Dispatcher) DecryptRedacting(ctx context.Context, v domain.Shaped) (domain.Shaped, error) {
	return d.dispatch(ctx, v, d.openOrRedact)
}

func (d *Dispatcher) dispatch(ctx context.Context, v domain.Shaped, open Opener) (domain.Shaped, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil response", errors.ErrNoDecryptionStrategy)
	}
	strategy, ok := d.strategies[v.ShapeOf()]
	if !ok {
		return nil, fmt.Errorf("%w: %q (%T)", errors.ErrNoDecryptionStrategy, v.ShapeOf(), v)
	}
	return strategy.Decrypt(ctx, v, open)
}

func (d *Dispatcher) open(ctx context.Context, msg *domain.MessageDto) error {
	if err := d.slots.Acquire(ctx, 1); err != nil {
		return err
	}
	defer d.slots.Release(1)
	text, err := d.cipher.Decrypt(msg.Text)
	if err != nil {
		return fmt.Errorf("message %s: %w", msg.ID, err)
	}
	msg.Text = text
	return nil
}

func (d *Dispatcher) openOrRedact(ctx context.Context, msg *domain.MessageDto) error {
	err := d.open(ctx, msg)
	if errors.IsCipherError(err) {
		d.log.Warn("Redacting undecryptable message", "message_id", msg.ID, "chat_id", msg.ChatID, "error", err)
		msg.Text = ""
		msg.Undecryptable = true
		return nil
	}
	return err
}

// As runs decrypt and hands back the result with the static type of v.
func As[T domain.Shaped](ctx context.Context,
	decrypt func(context.Context, domain.Shaped) (domain.Shaped, error), v T) (T, error) {
	var zero T
	out, err := decrypt(ctx, v)
	if err != nil {
		return zero, err
	}
	typed, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("%w: strategy for %q returned %T", errors.ErrNoDecryptionStrategy, v.ShapeOf(), out)
	}
	return typed, nil
}

// AsEach decrypts every item concurrently and keeps the input order.
func AsEach[T domain.Shaped](ctx context.Context,
	decrypt func(context.Context, domain.Shaped) (domain.Shaped, error), items []T) ([]T, error) {
	out := slices.Clone(items)
	err := forEach(ctx, len(out), func(ctx context.Context, i int) error {
		decrypted, err := As(ctx, decrypt, out[i])
		if err != nil {
			return err
		}
		out[i] = decrypted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
