// Package domain contains core concepts of the direct chat system.
// This file defines the User identity referenced by chats and messages.
// The full profile lives outside this service.
package domain

import "time"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
