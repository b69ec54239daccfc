// Package domain contains core concepts of the direct chat system.
// This file defines DirectChat and DirectChatMessage and their invariants.
// No runtime, network, or storage logic should be added here.
package domain

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// DirectChat is a conversation between exactly two users.
// At most one DirectChat exists per unordered pair of participants.
type DirectChat struct {
	ID             string
	ParticipantIDs [2]string
	Participants   []User
	Messages       []DirectChatMessage
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DirectChatMessage is immutable once created.
// Text holds the encrypted payload while inside the store.
type DirectChatMessage struct {
	ID        string
	ChatID    string
	SenderID  string
	Sender    *User
	Chat      *DirectChat
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PairKey returns the same key for (a, b) and (b, a).
// The smaller id is length prefixed so ids containing ':' cannot collide.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%s:%s", len(a), a, b)
}

func NewParticipantIDs(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func (c DirectChat) HasParticipant(userID string) bool {
	return lo.Contains(c.ParticipantIDs[:], userID)
}

// Recipients lists every participant, the audience of a message-received event.
func (c DirectChat) Recipients() []string {
	return []string{c.ParticipantIDs[0], c.ParticipantIDs[1]}
}
