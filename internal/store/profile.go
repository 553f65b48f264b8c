package store

import (
	"context"
	"database/sql"

	"github.com/devlinkhq/devlink-api/internal/domain"
	"github.com/google/uuid"
)

// ProfileStore defines the interface for profile aggregate persistence.
// A profile row holds the whole aggregate (skills, social links and the
// nested experience/education lists), so every method reads or writes the
// aggregate as a single unit.
type ProfileStore interface {
	// Create saves a new profile.
	// Returns ErrProfileExists if the owning user already has one; the
	// one-profile-per-user invariant is enforced by a database uniqueness
	// constraint, so concurrent creates cannot slip through.
	Create(ctx context.Context, profile *domain.Profile) error

	// GetByUserID retrieves the profile owned by the given user, with the
	// owner's name and avatar populated.
	// Returns ErrProfileNotFound if the user has no profile.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// GetAll retrieves every profile in database iteration order, each with
	// its owner populated. Returns an empty slice when there are none.
	GetAll(ctx context.Context) ([]*domain.Profile, error)

	// Update replaces the stored aggregate with the given state.
	// Returns ErrProfileNotFound if the profile does not exist.
	Update(ctx context.Context, profile *domain.Profile) error

	// DeleteByUserID removes the profile owned by the given user.
	// Deleting an absent profile is not an error; the cascade delete must be
	// idempotent.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a new ProfileStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) ProfileStore
}
