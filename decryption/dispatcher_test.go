package decryption

import (
	"context"
	"direct-chat/domain"
	"direct-chat/encryption"
	"direct-chat/errors"
	"direct-chat/mocks"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// reverseCipher stands for a real cipher: "sealed" text is the reversed plaintext
// prefixed with "enc:". Anything else is treated as a corrupted payload.
type reverseCipher struct{}

func (reverseCipher) Encrypt(plaintext string) (string, error) {
	return "enc:" + reverse(plaintext), nil
}

func (reverseCipher) Decrypt(payload string) (string, error) {
	if !strings.HasPrefix(payload, "enc:") {
		return "", errors.ErrPayloadIntegrity
	}
	return reverse(strings.TrimPrefix(payload, "enc:")), nil
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func sealed(text string) string {
	s, _ := reverseCipher{}.Encrypt(text)
	return s
}

func testLogger() *slog.Logger {
	return logs.GetLoggerFromLevel(slog.LevelError)
}

func sampleChat(texts ...string) domain.ChatDto {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	chat := domain.ChatDto{
		Shape:        domain.ShapeChat,
		ID:           "chat-1",
		Participants: []domain.UserDto{{ID: "u1", Username: "alice"}, {ID: "u2", Username: "bob"}},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i, text := range texts {
		chat.Messages = append(chat.Messages, domain.MessageDto{
			Shape:     domain.ShapeMessage,
			ID:        fmt.Sprintf("m%d", i+1),
			ChatID:    chat.ID,
			Sender:    domain.UserDto{ID: "u1", Username: "alice"},
			Text:      text,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return chat
}

type auditEntry struct{}

func (auditEntry) ShapeOf() domain.Shape { return "audit_entry" }

func TestDispatcher_Decrypt(t *testing.T) {
	d := NewDispatcher(testLogger(), reverseCipher{})
	ctx := context.Background()

	t.Run("should decrypt every message of a chat", func(t *testing.T) {
		req := require.New(t)
		// Given a chat holding two sealed messages
		chat := sampleChat(sealed("hi"), sealed("hello back"))

		// When it is decrypted
		out, err := As(ctx, d.Decrypt, chat)

		// Then both texts are readable and the rest is untouched
		req.NoError(err)
		req.Equal("hi", out.Messages[0].Text)
		req.Equal("hello back", out.Messages[1].Text)
		req.Equal(chat.ID, out.ID)
		req.Equal(chat.Participants, out.Participants)
		req.Equal(chat.Messages[0].Sender, out.Messages[0].Sender)
		req.Equal(chat.CreatedAt, out.CreatedAt)
	})

	t.Run("should leave the input untouched", func(t *testing.T) {
		req := require.New(t)
		chat := sampleChat(sealed("hi"))

		_, err := As(ctx, d.Decrypt, chat)

		req.NoError(err)
		req.Equal(sealed("hi"), chat.Messages[0].Text)
	})

	t.Run("should decrypt a message and the messages of its chat", func(t *testing.T) {
		req := require.New(t)
		chat := sampleChat(sealed("older"))
		msg := domain.MessageDto{
			Shape:  domain.ShapeMessage,
			ID:     "m9",
			ChatID: chat.ID,
			Sender: domain.UserDto{ID: "u2"},
			Chat:   &chat,
			Text:   sealed("newer"),
		}

		out, err := As(ctx, d.Decrypt, msg)

		req.NoError(err)
		req.Equal("newer", out.Text)
		req.Equal("older", out.Chat.Messages[0].Text)
		req.Equal(sealed("older"), chat.Messages[0].Text)
	})

	t.Run("should keep pointer shapes as pointers", func(t *testing.T) {
		req := require.New(t)
		chat := sampleChat(sealed("hi"))

		out, err := As(ctx, d.Decrypt, &chat)

		req.NoError(err)
		req.Equal("hi", out.Messages[0].Text)
		req.Equal(sealed("hi"), chat.Messages[0].Text)
	})

	t.Run("should accept a chat without messages", func(t *testing.T) {
		req := require.New(t)
		out, err := As(ctx, d.Decrypt, sampleChat())
		req.NoError(err)
		req.Empty(out.Messages)
	})

	t.Run("should fail when one message is corrupted", func(t *testing.T) {
		req := require.New(t)
		chat := sampleChat(sealed("hi"), "garbage", sealed("bye"))

		_, err := As(ctx, d.Decrypt, chat)

		req.ErrorIs(err, errors.ErrPayloadIntegrity)
		req.Contains(err.Error(), "m2")
	})
}

func TestDispatcher_UnregisteredShapes(t *testing.T) {
	d := NewDispatcher(testLogger(), reverseCipher{})
	ctx := context.Background()

	t.Run("should reject a shape without strategy", func(t *testing.T) {
		_, err := d.Decrypt(ctx, auditEntry{})
		require.ErrorIs(t, err, errors.ErrNoDecryptionStrategy)
	})

	t.Run("should reject an object that did not declare its shape", func(t *testing.T) {
		_, err := d.Decrypt(ctx, domain.ChatDto{ID: "chat-1"})
		require.ErrorIs(t, err, errors.ErrNoDecryptionStrategy)
	})

	t.Run("should reject nil", func(t *testing.T) {
		_, err := d.DecryptRedacting(ctx, nil)
		require.ErrorIs(t, err, errors.ErrNoDecryptionStrategy)
	})

	t.Run("should reject a shape carried by the wrong type", func(t *testing.T) {
		msg := domain.MessageDto{Shape: domain.ShapeChat, ID: "m1"}
		_, err := d.Decrypt(ctx, msg)
		require.ErrorIs(t, err, errors.ErrNoDecryptionStrategy)
	})
}

// Every shape produced by the read paths must have a strategy.
func TestDispatcher_CoversEveryResponseShape(t *testing.T) {
	req := require.New(t)
	d := NewDispatcher(testLogger(), reverseCipher{})
	chat := sampleChat(sealed("hi"))
	produced := []domain.Shaped{
		domain.NewChatDto(domain.DirectChat{ID: "chat-1"}),
		domain.NewMessageDto(domain.DirectChatMessage{ID: "m1", Text: sealed("hi")}),
		chat,
	}

	for _, v := range produced {
		_, err := d.Decrypt(context.Background(), v)
		req.NoError(err, "shape %q", v.ShapeOf())
	}
	req.Equal([]domain.Shape{domain.ShapeChat, domain.ShapeMessage}, d.Shapes())
}

func TestDispatcher_DecryptRedacting(t *testing.T) {
	req := require.New(t)
	d := NewDispatcher(testLogger(), reverseCipher{})
	chat := sampleChat(sealed("hi"), "garbage", sealed("bye"))

	out, err := As(context.Background(), d.DecryptRedacting, chat)

	req.NoError(err)
	req.Equal("hi", out.Messages[0].Text)
	req.Empty(out.Messages[1].Text)
	req.True(out.Messages[1].Undecryptable)
	req.Equal("bye", out.Messages[2].Text)
	req.False(out.Messages[2].Undecryptable)
}

func TestDispatcher_RedactingKeepsNonCipherErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cipher := mocks.NewMockICipher(ctrl)
	cipher.EXPECT().Decrypt(gomock.Any()).Return("", fmt.Errorf("hsm offline"))
	d := NewDispatcher(testLogger(), cipher)

	_, err := d.DecryptRedacting(context.Background(), sampleChat("anything"))
	require.EqualError(t, err, "message m1: hsm offline")
}

func TestDispatcher_RealCipher(t *testing.T) {
	req := require.New(t)
	c, err := encryption.NewMessageCipher("passphrase")
	req.NoError(err)
	payload, err := c.Encrypt("hi")
	req.NoError(err)

	d := NewDispatcher(testLogger(), c)
	out, err := As(context.Background(), d.Decrypt, sampleChat(payload))

	req.NoError(err)
	req.Equal("hi", out.Messages[0].Text)
}

func TestAsEach(t *testing.T) {
	req := require.New(t)
	d := NewDispatcher(testLogger(), reverseCipher{})
	first := sampleChat(sealed("one"))
	second := sampleChat(sealed("two"))
	second.ID = "chat-2"

	out, err := AsEach(context.Background(), d.Decrypt, []domain.ChatDto{first, second})

	req.NoError(err)
	req.Len(out, 2)
	req.Equal("chat-1", out[0].ID)
	req.Equal("one", out[0].Messages[0].Text)
	req.Equal("chat-2", out[1].ID)
	req.Equal("two", out[1].Messages[0].Text)
}

// countingCipher records how many Decrypt calls overlap.
type countingCipher struct {
	reverseCipher
	inFlight atomic.Int64
	peak     atomic.Int64
	calls    atomic.Int64
}

func (c *countingCipher) Decrypt(payload string) (string, error) {
	current := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	c.calls.Add(1)
	for {
		peak := c.peak.Load()
		if current <= peak || c.peak.CompareAndSwap(peak, current) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)
	return c.reverseCipher.Decrypt(payload)
}

func TestDispatcher_BoundsConcurrentDecryptions(t *testing.T) {
	req := require.New(t)
	cipher := &countingCipher{}
	d := NewDispatcher(testLogger(), cipher).WithConcurrency(2)

	// Given a page of chats holding many messages each
	chats := make([]domain.ChatDto, 10)
	for i := range chats {
		texts := make([]string, 10)
		for j := range texts {
			texts[j] = sealed(fmt.Sprintf("chat %d message %d", i, j))
		}
		chats[i] = sampleChat(texts...)
		chats[i].ID = fmt.Sprintf("chat-%d", i)
	}

	// When the whole page is decrypted
	out, err := AsEach(context.Background(), d.Decrypt, chats)

	// Then every message is decrypted but never more than two at once
	req.NoError(err)
	req.Len(out, 10)
	req.Equal("chat 9 message 9", out[9].Messages[9].Text)
	req.EqualValues(100, cipher.calls.Load())
	req.LessOrEqual(cipher.peak.Load(), int64(2))
}

func TestDispatcher_StopsWaitingWhenCancelled(t *testing.T) {
	req := require.New(t)
	d := NewDispatcher(testLogger(), reverseCipher{}).WithConcurrency(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When the request is gone before decryption starts
	_, err := d.Decrypt(ctx, sampleChat(sealed("late")))

	// Then no slot is awaited
	req.ErrorIs(err, context.Canceled)
}

func TestDispatcher_RegisterTwicePanics(t *testing.T) {
	d := NewDispatcher(testLogger(), reverseCipher{})
	require.Panics(t, func() {
		d.register(ChatStrategy{})
	})
}
