package domain

import (
	"time"

	"github.com/samber/lo"
)

// Shape is the explicit discriminant used to pick a decryption strategy.
type Shape string

const (
	ShapeChat    Shape = "direct_chat"
	ShapeMessage Shape = "direct_chat_message"
)

// Shaped is any response object that declares its shape.
type Shaped interface {
	ShapeOf() Shape
}

type UserDto struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ChatDto is a chat with its participants and zero or more messages.
type ChatDto struct {
	Shape        Shape        `json:"shape"`
	ID           string       `json:"id"`
	Participants []UserDto    `json:"participants"`
	Messages     []MessageDto `json:"messages"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (c ChatDto) ShapeOf() Shape { return c.Shape }

// MessageDto is a message with its sender and, when loaded, its chat.
type MessageDto struct {
	Shape         Shape     `json:"shape"`
	ID            string    `json:"id"`
	ChatID        string    `json:"chat_id"`
	Sender        UserDto   `json:"sender"`
	Chat          *ChatDto  `json:"chat,omitempty"`
	Text          string    `json:"text"`
	Undecryptable bool      `json:"undecryptable,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (m MessageDto) ShapeOf() Shape { return m.Shape }

func NewUserDto(u User) UserDto {
	return UserDto{ID: u.ID, Username: u.Username}
}

func NewChatDto(c DirectChat) ChatDto {
	return ChatDto{
		Shape:        ShapeChat,
		ID:           c.ID,
		Participants: lo.Map(c.Participants, func(u User, _ int) UserDto { return NewUserDto(u) }),
		Messages: lo.Map(c.Messages, func(m DirectChatMessage, _ int) MessageDto {
			return NewMessageDto(m)
		}),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewMessageDto maps a stored message. Text is still the encrypted payload.
func NewMessageDto(m DirectChatMessage) MessageDto {
	dto := MessageDto{
		Shape:     ShapeMessage,
		ID:        m.ID,
		ChatID:    m.ChatID,
		Sender:    UserDto{ID: m.SenderID},
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Sender != nil {
		dto.Sender = NewUserDto(*m.Sender)
	}
	if m.Chat != nil {
		chat := NewChatDto(*m.Chat)
		dto.Chat = &chat
	}
	return dto
}

// ParticipantIDs lists the ids of the chat members carried by the dto.
func (c ChatDto) ParticipantIDs() []string {
	return lo.Map(c.Participants, func(u UserDto, _ int) string { return u.ID })
}
