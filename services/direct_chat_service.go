//go:generate go run go.uber.org/mock/mockgen -source=direct_chat_service.go -destination=../mocks/mock_direct_chat_service.go -package=mocks
package services

import (
	"context"
	"direct-chat/contract"
	"direct-chat/decryption"
	"direct-chat/domain"
	"direct-chat/domain/event"
	"direct-chat/encryption"
	"direct-chat/errors"
	"direct-chat/repositories"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const MaxTextLength = 4096

var validate = validator.New()

type IDirectChatService interface {
	CreateChat(ctx context.Context, senderID, receiverID, text string) (domain.ChatDto, error)
	SendMessage(ctx context.Context, senderID, chatID, text string) (domain.MessageDto, error)
	GetUserLastChats(ctx context.Context, userID string, page domain.Page) ([]domain.ChatDto, error)
	GetChatMessages(ctx context.Context, userID, chatID string, page domain.Page) ([]domain.MessageDto, error)
}

type createChatCommand struct {
	SenderID   string `validate:"required,max=128"`
	ReceiverID string `validate:"required,max=128"`
	Text       string `validate:"required,max=4096"`
}

type sendMessageCommand struct {
	SenderID string `validate:"required,max=128"`
	ChatID   string `validate:"required,max=128"`
	Text     string `validate:"required,max=4096"`
}

type readCommand struct {
	UserID string `validate:"required,max=128"`
	ChatID string `validate:"omitempty,max=128"`
}

// DirectChatService owns the rules of one to one conversations.
// Text is encrypted before it reaches the repository and decrypted before it
// leaves the service. Participants are notified after every successful write.
type DirectChatService struct {
	log        *slog.Logger
	users      repositories.IUserRepository
	chats      repositories.IDirectChatRepository
	cipher     encryption.ICipher
	dispatcher decryption.IDispatcher
	notifier   contract.INotifier
	now        func() time.Time
}

func NewDirectChatService(
	log *slog.Logger,
	users repositories.IUserRepository,
	chats repositories.IDirectChatRepository,
	cipher encryption.ICipher,
	dispatcher decryption.IDispatcher,
	notifier contract.INotifier,
) *DirectChatService {
	return &DirectChatService{
		log:        log,
		users:      users,
		chats:      chats,
		cipher:     cipher,
		dispatcher: dispatcher,
		notifier:   notifier,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source stamped on new chats and messages.
func (s *DirectChatService) WithClock(now func() time.Time) *DirectChatService {
	s.now = now
	return s
}

// CreateChat opens the conversation between two users with its first message.
// A pair of users has at most one chat: a second attempt is a conflict.
func (s *DirectChatService) CreateChat(ctx context.Context, senderID, receiverID, text string) (domain.ChatDto, error) {
	// 1. Validate raw inputs
	if err := validateCommand(createChatCommand{SenderID: senderID, ReceiverID: receiverID, Text: text}); err != nil {
		return domain.ChatDto{}, err
	}
	if senderID == receiverID {
		return domain.ChatDto{}, fmt.Errorf("%w: cannot open a chat with yourself", errors.ErrInvalidParticipant)
	}

	// 2. Both participants must exist
	sender, err := s.participant(senderID)
	if err != nil {
		return domain.ChatDto{}, err
	}
	receiver, err := s.participant(receiverID)
	if err != nil {
		return domain.ChatDto{}, err
	}

	// 3. One chat per pair
	existing, err := s.chats.FindByUsersIDs(senderID, receiverID)
	if err != nil {
		return domain.ChatDto{}, err
	}
	if existing != nil {
		return domain.ChatDto{}, errors.ErrChatAlreadyExists
	}

	// 4. Encrypt and persist chat and first message together
	payload, err := s.cipher.Encrypt(text)
	if err != nil {
		return domain.ChatDto{}, err
	}
	chat, err := s.chats.CreateChat(*sender, *receiver, payload, s.now())
	if err != nil {
		return domain.ChatDto{}, err
	}

	// 5. Decrypt the stored graph
	dto, err := decryption.As(ctx, s.dispatcher.Decrypt, domain.NewChatDto(chat))
	if err != nil {
		return domain.ChatDto{}, err
	}
	s.log.Info("Direct chat created", "chat_id", dto.ID, "sender_id", senderID, "receiver_id", receiverID)

	// 6. Push to both participants
	s.notifier.NotifyAll(context.WithoutCancel(ctx), []string{senderID, receiverID}, event.ChatCreated, dto)
	return dto, nil
}

// SendMessage appends a message to an existing chat the sender belongs to.
func (s *DirectChatService) SendMessage(ctx context.Context, senderID, chatID, text string) (domain.MessageDto, error) {
	if err := validateCommand(sendMessageCommand{SenderID: senderID, ChatID: chatID, Text: text}); err != nil {
		return domain.MessageDto{}, err
	}

	sender, err := s.users.FindUserByID(senderID)
	if err != nil {
		return domain.MessageDto{}, err
	}
	if sender == nil {
		return domain.MessageDto{}, errors.ErrUserNotFound
	}

	chat, err := s.chats.FindByID(chatID)
	if err != nil {
		return domain.MessageDto{}, err
	}
	if chat == nil {
		return domain.MessageDto{}, errors.ErrChatNotFound
	}
	if !chat.HasParticipant(senderID) {
		return domain.MessageDto{}, errors.ErrNotChatParticipant
	}

	payload, err := s.cipher.Encrypt(text)
	if err != nil {
		return domain.MessageDto{}, err
	}
	message, err := s.chats.CreateMessage(*sender, *chat, payload, s.now())
	if err != nil {
		return domain.MessageDto{}, err
	}

	dto, err := decryption.As(ctx, s.dispatcher.Decrypt, domain.NewMessageDto(message))
	if err != nil {
		return domain.MessageDto{}, err
	}
	s.log.Debug("Direct message sent", "chat_id", chatID, "message_id", dto.ID, "sender_id", senderID)

	recipients := chat.Recipients()
	if message.Chat != nil {
		recipients = message.Chat.Recipients()
	}
	s.notifier.NotifyAll(context.WithoutCancel(ctx), recipients, event.MessageReceived, dto)
	return dto, nil
}

// GetUserLastChats lists the user's chats, most recently active first, each
// with its last message. A message that cannot be decrypted is redacted.
func (s *DirectChatService) GetUserLastChats(ctx context.Context, userID string, page domain.Page) ([]domain.ChatDto, error) {
	if err := validateCommand(readCommand{UserID: userID}); err != nil {
		return nil, err
	}

	chats, err := s.chats.FindLastChatsByUserID(userID, page.Skip(), page.Take)
	if err != nil {
		return nil, err
	}
	dtos := lo.Map(chats, func(c domain.DirectChat, _ int) domain.ChatDto { return domain.NewChatDto(c) })
	return decryption.AsEach(ctx, s.dispatcher.DecryptRedacting, dtos)
}

// GetChatMessages pages through a chat newest first. Only participants may read it.
func (s *DirectChatService) GetChatMessages(ctx context.Context, userID, chatID string, page domain.Page) ([]domain.MessageDto, error) {
	if err := validateCommand(readCommand{UserID: userID, ChatID: chatID}); err != nil {
		return nil, err
	}

	chat, err := s.chats.FindByIDWithUsers(chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, errors.ErrChatNotFound
	}
	if !chat.HasParticipant(userID) {
		return nil, errors.ErrNotChatParticipant
	}

	messages, err := s.chats.FindLastMessagesByDirectChatID(chatID, page.Skip(), page.Take)
	if err != nil {
		return nil, err
	}
	dtos := lo.Map(messages, func(m domain.DirectChatMessage, _ int) domain.MessageDto { return domain.NewMessageDto(m) })
	return decryption.AsEach(ctx, s.dispatcher.DecryptRedacting, dtos)
}

// participant loads a user taking part in a new chat. A missing user is a
// bad request here, not a missing resource.
func (s *DirectChatService) participant(userID string) (*domain.User, error) {
	user, err := s.users.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s does not exist", errors.ErrInvalidParticipant, userID)
	}
	return user, nil
}

func validateCommand(cmd any) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidArgument, err)
	}
	return nil
}
