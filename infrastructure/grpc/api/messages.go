package api

import (
	"direct-chat/domain"
	"direct-chat/domain/event"
	"encoding/json"
	"fmt"
	"time"
)

// The caller is never part of a request: it comes from the bearer token.

type CreateChatRequest struct {
	ReceiverID string `json:"receiver_id"`
	Text       string `json:"text"`
}

type CreateChatResponse struct {
	Chat domain.ChatDto `json:"chat"`
}

type SendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type SendMessageResponse struct {
	Message domain.MessageDto `json:"message"`
}

type GetUserLastChatsRequest struct {
	Page *int `json:"page,omitempty"`
	Take *int `json:"take,omitempty"`
}

type GetUserLastChatsResponse struct {
	Chats []domain.ChatDto `json:"chats"`
}

type GetChatMessagesRequest struct {
	ChatID string `json:"chat_id"`
	Page   *int   `json:"page,omitempty"`
	Take   *int   `json:"take,omitempty"`
}

type GetChatMessagesResponse struct {
	Messages []domain.MessageDto `json:"messages"`
}

type ConnectRequest struct{}

// ServerEvent is one pushed event. Payload is a ChatDto for chat-created
// and a MessageDto for message-received.
type ServerEvent struct {
	Event   event.Name      `json:"event"`
	Payload json.RawMessage `json:"payload"`
	At      time.Time       `json:"at"`
}

func NewServerEvent(e event.Event) (*ServerEvent, error) {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", e.Name, err)
	}
	return &ServerEvent{Event: e.Name, Payload: payload, At: e.At}, nil
}

func (e ServerEvent) Chat() (domain.ChatDto, error) {
	var chat domain.ChatDto
	return chat, e.decode(event.ChatCreated, &chat)
}

func (e ServerEvent) Message() (domain.MessageDto, error) {
	var message domain.MessageDto
	return message, e.decode(event.MessageReceived, &message)
}

func (e ServerEvent) decode(expected event.Name, v any) error {
	if e.Event != expected {
		return fmt.Errorf("event %s does not carry a %s payload", e.Event, expected)
	}
	return json.Unmarshal(e.Payload, v)
}
