package decryption

import (
	"context"
	"direct-chat/domain"
	"direct-chat/errors"
	"fmt"
	goruntime "runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Opener replaces the encrypted text of one message in place.
type Opener func(ctx context.Context, msg *domain.MessageDto) error

// Strategy knows which paths of one response shape hold ciphertext.
type Strategy interface {
	Shape() domain.Shape
	Decrypt(ctx context.Context, v domain.Shaped, open Opener) (domain.Shaped, error)
}

// ChatStrategy decrypts every message embedded in a chat.
type ChatStrategy struct{}

func (ChatStrategy) Shape() domain.Shape { return domain.ShapeChat }

func (ChatStrategy) Decrypt(ctx context.Context, v domain.Shaped, open Opener) (domain.Shaped, error) {
	switch chat := v.(type) {
	case domain.ChatDto:
		return decryptChat(ctx, chat, open)
	case *domain.ChatDto:
		if chat == nil {
			return nil, fmt.Errorf("%w: nil %T", errors.ErrNoDecryptionStrategy, chat)
		}
		out, err := decryptChat(ctx, *chat, open)
		if err != nil {
			return nil, err
		}
		return &out, nil
	default:
		return nil, fmt.Errorf("%w: shape %q carried by %T", errors.ErrNoDecryptionStrategy, v.ShapeOf(), v)
	}
}

// MessageStrategy decrypts a message and the messages of its chat, if loaded.
type MessageStrategy struct{}

func (MessageStrategy) Shape() domain.Shape { return domain.ShapeMessage }

func (MessageStrategy) Decrypt(ctx context.Context, v domain.Shaped, open Opener) (domain.Shaped, error) {
	switch msg := v.(type) {
	case domain.MessageDto:
		return decryptMessage(ctx, msg, open)
	case *domain.MessageDto:
		if msg == nil {
			return nil, fmt.Errorf("%w: nil %T", errors.ErrNoDecryptionStrategy, msg)
		}
		out, err := decryptMessage(ctx, *msg, open)
		if err != nil {
			return nil, err
		}
		return &out, nil
	default:
		return nil, fmt.Errorf("%w: shape %q carried by %T", errors.ErrNoDecryptionStrategy, v.ShapeOf(), v)
	}
}

// decryptChat works on a copy: the caller's slices are never written.
func decryptChat(ctx context.Context, chat domain.ChatDto, open Opener) (domain.ChatDto, error) {
	chat.Participants = slices.Clone(chat.Participants)
	chat.Messages = slices.Clone(chat.Messages)
	err := forEach(ctx, len(chat.Messages), func(ctx context.Context, i int) error {
		return open(ctx, &chat.Messages[i])
	})
	if err != nil {
		return domain.ChatDto{}, err
	}
	return chat, nil
}

func decryptMessage(ctx context.Context, msg domain.MessageDto, open Opener) (domain.MessageDto, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return open(gctx, &msg)
	})
	var chat *domain.ChatDto
	if msg.Chat != nil {
		g.Go(func() error {
			decrypted, err := decryptChat(gctx, *msg.Chat, open)
			if err != nil {
				return err
			}
			chat = &decrypted
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.MessageDto{}, err
	}
	if chat != nil {
		msg.Chat = chat
	}
	return msg, nil
}

// forEach runs fn for indexes [0, n) on at most GOMAXPROCS goroutines and
// waits for all of them. The first error cancels the context handed to the
// remaining calls.
func forEach(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(goruntime.GOMAXPROCS(0))
	for i := range n {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}
	return g.Wait()
}
