//go:generate go run go.uber.org/mock/mockgen -source=direct_chat.go -destination=../mocks/mock_direct_chat_repository.go -package=mocks
package repositories

import (
	"direct-chat/domain"
	"direct-chat/errors"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const maxConflictRetries = 5

type IDirectChatRepository interface {
	FindByUsersIDs(userA, userB string) (*domain.DirectChat, error)
	CreateChat(sender, receiver domain.User, text string, at time.Time) (domain.DirectChat, error)
	FindByID(chatID string) (*domain.DirectChat, error)
	FindByIDWithUsers(chatID string) (*domain.DirectChat, error)
	FindLastChatsByUserID(userID string, skip, take int) ([]domain.DirectChat, error)
	CreateMessage(sender domain.User, chat domain.DirectChat, text string, at time.Time) (domain.DirectChatMessage, error)
	FindLastMessagesByDirectChatID(chatID string, skip, take int) ([]domain.DirectChatMessage, error)
}

type DirectChatRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewDirectChatRepository(db *badger.DB, log *slog.Logger) IDirectChatRepository {
	return &DirectChatRepository{db: db, log: log}
}

type chatRecord struct {
	ID             string    `json:"id"`
	ParticipantIDs [2]string `json:"participant_ids"`
	LastMessageKey string    `json:"last_message_key"`
	LastMessageAt  time.Time `json:"last_message_at"`
	Sequence       uint64    `json:"sequence"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type messageRecord struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FindByUsersIDs finds the chat of an unordered pair. Argument order doesn't matter.
func (r DirectChatRepository) FindByUsersIDs(userA, userB string) (*domain.DirectChat, error) {
	var chat *domain.DirectChat
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(pairKey(userA, userB))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		chatID, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		chat, err = loadChat(txn, string(chatID), false)
		return err
	})
	return chat, err
}

// CreateChat writes the chat, its pair index, both inbox entries and the
// first message in one transaction, then returns the stored graph.
//
// The pair key is read inside the transaction: if another creator commits the
// same pair first, Badger rejects this commit with ErrConflict.
func (r DirectChatRepository) CreateChat(sender, receiver domain.User, text string, at time.Time) (domain.DirectChat, error) {
	chat := chatRecord{
		ID:             uuid.NewString(),
		ParticipantIDs: domain.NewParticipantIDs(sender.ID, receiver.ID),
		CreatedAt:      at,
		UpdatedAt:      at,
	}
	message := messageRecord{
		ID:        uuid.NewString(),
		ChatID:    chat.ID,
		SenderID:  sender.ID,
		Text:      text,
		CreatedAt: at,
		UpdatedAt: at,
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		pair := pairKey(sender.ID, receiver.ID)
		_, err := txn.Get(pair)
		if err == nil {
			return errors.ErrChatAlreadyExists
		}
		if !goerrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err = txn.Set(pair, []byte(chat.ID)); err != nil {
			return err
		}
		return appendMessage(txn, &chat, message)
	})
	if goerrors.Is(err, badger.ErrConflict) {
		r.log.Debug("Concurrent creation of the same direct chat", "sender_id", sender.ID, "receiver_id", receiver.ID)
		return domain.DirectChat{}, errors.ErrChatAlreadyExists
	}
	if err != nil {
		return domain.DirectChat{}, err
	}

	var created *domain.DirectChat
	err = r.db.View(func(txn *badger.Txn) error {
		stored, err := loadChat(txn, chat.ID, true)
		if err != nil || stored == nil {
			return err
		}
		if stored.Messages, err = loadLastMessage(txn, chat.LastMessageKey); err != nil {
			return err
		}
		created = stored
		return nil
	})
	if err != nil {
		return domain.DirectChat{}, err
	}
	if created == nil {
		return domain.DirectChat{}, errors.ErrChatNotFound
	}
	return *created, nil
}

func (r DirectChatRepository) FindByID(chatID string) (*domain.DirectChat, error) {
	return r.findChat(chatID, false)
}

func (r DirectChatRepository) FindByIDWithUsers(chatID string) (*domain.DirectChat, error) {
	return r.findChat(chatID, true)
}

func (r DirectChatRepository) findChat(chatID string, withUsers bool) (*domain.DirectChat, error) {
	var chat *domain.DirectChat
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		chat, err = loadChat(txn, chatID, withUsers)
		return err
	})
	return chat, err
}

// FindLastChatsByUserID walks the user's inbox from the most recently active
// chat down. Each chat carries its participants and its last message only.
func (r DirectChatRepository) FindLastChatsByUserID(userID string, skip, take int) ([]domain.DirectChat, error) {
	var chats []domain.DirectChat
	err := r.db.View(func(txn *badger.Txn) error {
		var chatIDs []string
		err := scanReverse(txn, inboxPrefix(userID), skip, take, func(val []byte) error {
			chatIDs = append(chatIDs, string(val))
			return nil
		})
		if err != nil {
			return err
		}
		for _, chatID := range chatIDs {
			var record chatRecord
			found, err := getJSON(txn, chatKey(chatID), &record)
			if err != nil {
				return err
			}
			if !found {
				r.log.Warn("Inbox entry points to a missing chat", "user_id", userID, "chat_id", chatID)
				continue
			}
			if !lo.Contains(record.ParticipantIDs[:], userID) {
				r.log.Warn("Inbox entry points to a foreign chat", "user_id", userID, "chat_id", chatID)
				continue
			}
			chat, err := withParticipants(txn, record)
			if err != nil {
				return err
			}
			if chat.Messages, err = loadLastMessage(txn, record.LastMessageKey); err != nil {
				return err
			}
			chats = append(chats, chat)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chats, nil
}

// CreateMessage appends a message and moves the chat to the top of both inboxes.
// Concurrent messages in the same chat touch the same chat record, so a
// conflicting commit is retried on a fresh transaction.
func (r DirectChatRepository) CreateMessage(sender domain.User, chat domain.DirectChat, text string, at time.Time) (domain.DirectChatMessage, error) {
	message := messageRecord{
		ID:        uuid.NewString(),
		ChatID:    chat.ID,
		SenderID:  sender.ID,
		Text:      text,
		CreatedAt: at,
		UpdatedAt: at,
	}

	var err error
	for attempt := 1; attempt <= maxConflictRetries; attempt++ {
		err = r.db.Update(func(txn *badger.Txn) error {
			var record chatRecord
			found, err := getJSON(txn, chatKey(chat.ID), &record)
			if err != nil {
				return err
			}
			if !found {
				return errors.ErrChatNotFound
			}
			if !lo.Contains(record.ParticipantIDs[:], sender.ID) {
				return errors.ErrNotChatParticipant
			}
			return appendMessage(txn, &record, message)
		})
		if !goerrors.Is(err, badger.ErrConflict) {
			break
		}
		r.log.Debug("Conflict while appending message, retrying", "chat_id", chat.ID, "attempt", attempt)
	}
	if err != nil {
		return domain.DirectChatMessage{}, err
	}

	var created domain.DirectChatMessage
	err = r.db.View(func(txn *badger.Txn) error {
		stored, err := loadChat(txn, chat.ID, true)
		if err != nil {
			return err
		}
		if stored == nil {
			return errors.ErrChatNotFound
		}
		created = toDomainMessage(message)
		created.Chat = stored
		created.Sender, err = loadUser(txn, message.SenderID)
		return err
	})
	if err != nil {
		return domain.DirectChatMessage{}, err
	}
	return created, nil
}

// FindLastMessagesByDirectChatID pages through a chat newest first.
func (r DirectChatRepository) FindLastMessagesByDirectChatID(chatID string, skip, take int) ([]domain.DirectChatMessage, error) {
	var messages []domain.DirectChatMessage
	err := r.db.View(func(txn *badger.Txn) error {
		senders := make(map[string]*domain.User)
		return scanReverse(txn, messagePrefix(chatID), skip, take, func(val []byte) error {
			var record messageRecord
			if err := json.Unmarshal(val, &record); err != nil {
				return err
			}
			message := toDomainMessage(record)
			sender, ok := senders[record.SenderID]
			if !ok {
				var err error
				if sender, err = loadUser(txn, record.SenderID); err != nil {
					return err
				}
				senders[record.SenderID] = sender
			}
			message.Sender = sender
			messages = append(messages, message)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// appendMessage stores message and updates the chat record and inbox entries accordingly.
// Every message takes the next sequence of its chat. A message older than the
// current last one is stored without moving the chat.
func appendMessage(txn *badger.Txn, chat *chatRecord, message messageRecord) error {
	chat.Sequence++
	key := messageKey(chat.ID, message.CreatedAt, chat.Sequence, message.ID)
	if err := setJSON(txn, key, message); err != nil {
		return err
	}
	if chat.LastMessageKey != "" && message.UpdatedAt.Before(chat.LastMessageAt) {
		return setJSON(txn, chatKey(chat.ID), chat)
	}

	for _, participantID := range chat.ParticipantIDs {
		if chat.LastMessageKey != "" {
			if err := txn.Delete(inboxKey(participantID, chat.LastMessageAt, chat.ID)); err != nil {
				return err
			}
		}
		if err := txn.Set(inboxKey(participantID, message.UpdatedAt, chat.ID), []byte(chat.ID)); err != nil {
			return err
		}
	}

	chat.LastMessageKey = string(key)
	chat.LastMessageAt = message.UpdatedAt
	chat.UpdatedAt = message.UpdatedAt
	return setJSON(txn, chatKey(chat.ID), chat)
}

func loadChat(txn *badger.Txn, chatID string, withUsers bool) (*domain.DirectChat, error) {
	var record chatRecord
	found, err := getJSON(txn, chatKey(chatID), &record)
	if err != nil || !found {
		return nil, err
	}
	if !withUsers {
		return lo.ToPtr(toDomainChat(record)), nil
	}
	chat, err := withParticipants(txn, record)
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func withParticipants(txn *badger.Txn, record chatRecord) (domain.DirectChat, error) {
	chat := toDomainChat(record)
	for _, participantID := range record.ParticipantIDs {
		user, err := loadUser(txn, participantID)
		if err != nil {
			return domain.DirectChat{}, err
		}
		if user == nil {
			return domain.DirectChat{}, fmt.Errorf("participant %s of chat %s: %w", participantID, record.ID, errors.ErrUserNotFound)
		}
		chat.Participants = append(chat.Participants, *user)
	}
	return chat, nil
}

// loadLastMessage returns the message stored under key, with its sender, as a one element slice.
func loadLastMessage(txn *badger.Txn, key string) ([]domain.DirectChatMessage, error) {
	if key == "" {
		return nil, nil
	}
	var record messageRecord
	found, err := getJSON(txn, []byte(key), &record)
	if err != nil || !found {
		return nil, err
	}
	message := toDomainMessage(record)
	if message.Sender, err = loadUser(txn, record.SenderID); err != nil {
		return nil, err
	}
	return []domain.DirectChatMessage{message}, nil
}

func toDomainChat(record chatRecord) domain.DirectChat {
	return domain.DirectChat{
		ID:             record.ID,
		ParticipantIDs: record.ParticipantIDs,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
}

func toDomainMessage(record messageRecord) domain.DirectChatMessage {
	return domain.DirectChatMessage{
		ID:        record.ID,
		ChatID:    record.ChatID,
		SenderID:  record.SenderID,
		Text:      record.Text,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
