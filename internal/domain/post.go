package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Post. Each wraps ErrValidation so callers can
// match the whole class.
var (
	ErrEmptyPostID     = fmt.Errorf("%w: post ID cannot be empty", ErrValidation)
	ErrEmptyPostUserID = fmt.Errorf("%w: post user ID cannot be empty", ErrValidation)
	ErrEmptyPostText   = fmt.Errorf("%w: post text cannot be empty", ErrValidation)
)

// Post is a text entry authored by a user. Posts are owned exclusively by
// their author and are removed together with the account.
type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPost creates a new Post for the given author.
// Returns an error if validation fails.
func NewPost(userID uuid.UUID, text string) (*Post, error) {
	post := &Post{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid data.
func (p *Post) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPostID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyPostUserID
	}
	if p.Text == "" {
		return ErrEmptyPostText
	}
	return nil
}
