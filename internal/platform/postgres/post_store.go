package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/devlinkhq/devlink-api/internal/domain"
	"github.com/devlinkhq/devlink-api/internal/platform/logger"
	"github.com/devlinkhq/devlink-api/internal/store"
	"github.com/google/uuid"
)

// PostgresPostStore implements the store.PostStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the
// PostStore interface. If logger is nil, a default logger will be used.
func NewPostgresPostStore(db store.DBTX, log *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresPostStore{
		db:     db,
		logger: log.With(slog.String("component", "post_store")),
	}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// Create implements store.PostStore.Create
// Returns store.ErrInvalidEntity if the author does not exist.
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	query := `
		INSERT INTO posts (id, user_id, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		post.ID,
		post.UserID,
		post.Text,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during post creation",
				slog.String("user_id", post.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, post.UserID)
		}

		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	log.Info("post created successfully",
		slog.String("post_id", post.ID.String()),
		slog.String("user_id", post.UserID.String()))
	return nil
}

// CountByUserID implements store.PostStore.CountByUserID
func (s *PostgresPostStore) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT count(*) FROM posts WHERE user_id = $1`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		log.Error("failed to count posts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, err
	}

	return count, nil
}

// DeleteAllByUserID implements store.PostStore.DeleteAllByUserID
// Removing zero posts is not an error.
func (s *PostgresPostStore) DeleteAllByUserID(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM posts WHERE user_id = $1`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to delete posts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	if rowsAffected, err := result.RowsAffected(); err == nil {
		log.Info("posts deleted",
			slog.String("user_id", userID.String()),
			slog.Int64("count", rowsAffected))
	}

	return nil
}

// WithTx implements store.PostStore.WithTx
func (s *PostgresPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return &PostgresPostStore{
		db:     tx,
		logger: s.logger,
	}
}
