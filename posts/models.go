// Package posts implements the post store: CRUD over posts plus like/dislike
// toggling and nested comments. Author name and avatar are snapshotted onto
// the post at creation time and are not kept in sync with later profile
// edits.
package posts

import (
	"time"

	"github.com/google/uuid"
)

// Comment is one entry of a post's comment sequence.
type Comment struct {
	ID     string    `json:"id"`
	User   int32     `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// Post is a single post with its like/dislike sets and comments. Likes and
// dislikes are ordered sequences of user ids.
type Post struct {
	ID       uuid.UUID `json:"id"`
	User     int32     `json:"user"`
	Text     string    `json:"text"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Likes    []int32   `json:"likes"`
	Dislikes []int32   `json:"dislikes"`
	Comments []Comment `json:"comments"`
	Date     time.Time `json:"date"`
}
