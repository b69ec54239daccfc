package event

import "time"

type Name string

const (
	ChatCreated     Name = "chat-created"
	MessageReceived Name = "message-received"
)

// Event is what a live connection receives.
type Event struct {
	Name    Name      `json:"event"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

func New(name Name, payload any, at time.Time) Event {
	return Event{Name: name, Payload: payload, At: at}
}
