package store

import (
	"context"
	"database/sql"

	"github.com/devlinkhq/devlink-api/internal/domain"
	"github.com/google/uuid"
)

// PostStore defines the interface for post persistence. Posts surface here
// only as a cascade-delete target of account removal.
type PostStore interface {
	// Create saves a new post.
	Create(ctx context.Context, post *domain.Post) error

	// CountByUserID returns the number of posts authored by the given user.
	CountByUserID(ctx context.Context, userID uuid.UUID) (int, error)

	// DeleteAllByUserID removes every post authored by the given user.
	// Removing zero posts is not an error.
	DeleteAllByUserID(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a new PostStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) PostStore
}
