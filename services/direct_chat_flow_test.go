package services

import (
	"context"
	"direct-chat/decryption"
	"direct-chat/domain"
	"direct-chat/domain/event"
	"direct-chat/encryption"
	"direct-chat/errors"
	"direct-chat/repositories"
	"direct-chat/runtime"
	"direct-chat/sink"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// Two users, one conversation, everything real but the network.
func TestDirectChat_Conversation(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelError)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	users := repositories.NewUserRepository(db)
	chats := repositories.NewDirectChatRepository(db, log)
	cipher, err := encryption.NewMessageCipher("correct horse battery staple")
	req.NoError(err)
	registry := runtime.NewRegistry()
	service := NewDirectChatService(log, users, chats, cipher,
		decryption.NewDispatcher(log, cipher), runtime.NewNotifier(log, registry, time.Second))

	u1, err := users.CreateUser("alice")
	req.NoError(err)
	u2, err := users.CreateUser("bob")
	req.NoError(err)

	// Given u2 is online on one device
	u2Sink := sink.NewConnectionSink(log, u2.ID, 8)
	registry.Register(u2.ID, u2Sink)

	// When u1 opens the chat
	chat, err := service.CreateChat(ctx, u1.ID, u2.ID, "hi")
	req.NoError(err)
	req.Equal("hi", chat.Messages[0].Text)

	// Then u2 is told, in clear text
	created := <-u2Sink.Events
	req.Equal(event.ChatCreated, created.Name)
	req.Equal("hi", created.Payload.(domain.ChatDto).Messages[0].Text)

	// And the store only holds ciphertext
	raw, err := chats.FindLastMessagesByDirectChatID(chat.ID, 0, 10)
	req.NoError(err)
	req.Len(raw, 1)
	req.NotEqual("hi", raw[0].Text)

	// When u1 tries to open the same chat again, in any order
	_, err = service.CreateChat(ctx, u2.ID, u1.ID, "again")
	req.ErrorIs(err, errors.ErrChatAlreadyExists)

	// When u2 answers
	reply, err := service.SendMessage(ctx, u2.ID, chat.ID, "hello back")
	req.NoError(err)
	req.Equal("hello back", reply.Text)
	received := <-u2Sink.Events
	req.Equal(event.MessageReceived, received.Name)

	// Then u1 reads the conversation newest first
	messages, err := service.GetChatMessages(ctx, u1.ID, chat.ID, domain.NewPage(nil, nil))
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal("hello back", messages[0].Text)
	req.Equal("hi", messages[1].Text)

	// And u2's inbox shows the last message
	inbox, err := service.GetUserLastChats(ctx, u2.ID, domain.NewPage(nil, nil))
	req.NoError(err)
	req.Len(inbox, 1)
	req.Equal(chat.ID, inbox[0].ID)
	req.Equal("hello back", inbox[0].Messages[0].Text)

	// And a third user can neither read nor write
	u3, err := users.CreateUser("carol")
	req.NoError(err)
	_, err = service.GetChatMessages(ctx, u3.ID, chat.ID, domain.NewPage(nil, nil))
	req.ErrorIs(err, errors.ErrNotChatParticipant)
	_, err = service.SendMessage(ctx, u3.ID, chat.ID, "let me in")
	req.ErrorIs(err, errors.ErrNotChatParticipant)
}

// Messages written under another passphrase are redacted on read, not fatal.
func TestDirectChat_RedactsForeignPayloads(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelError)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	users := repositories.NewUserRepository(db)
	chats := repositories.NewDirectChatRepository(db, log)
	u1, err := users.CreateUser("alice")
	req.NoError(err)
	u2, err := users.CreateUser("bob")
	req.NoError(err)

	old, err := encryption.NewMessageCipher("rotated away")
	req.NoError(err)
	payload, err := old.Encrypt("lost")
	req.NoError(err)
	stored, err := chats.CreateChat(u1, u2, payload, time.Now().UTC())
	req.NoError(err)

	current, err := encryption.NewMessageCipher("current passphrase")
	req.NoError(err)
	service := NewDirectChatService(log, users, chats, current,
		decryption.NewDispatcher(log, current), runtime.NewNotifier(log, runtime.NewRegistry(), time.Second))

	messages, err := service.GetChatMessages(ctx, u1.ID, stored.ID, domain.NewPage(nil, nil))
	req.NoError(err)
	req.Len(messages, 1)
	req.True(messages[0].Undecryptable)
	req.Empty(messages[0].Text)

	_, err = service.SendMessage(ctx, u2.ID, stored.ID, "still works")
	req.NoError(err)
}
