package auth

import "time"

// User represents a registered account. The password hash is never exposed
// through the JSON encoding.
type User struct {
	ID             int32     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Avatar         string    `json:"avatar"`
	CreatedAt      time.Time `json:"created_at"`
}
