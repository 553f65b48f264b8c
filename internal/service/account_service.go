package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/devlinkhq/devlink-api/internal/platform/logger"
	"github.com/devlinkhq/devlink-api/internal/store"
	"github.com/google/uuid"
)

// AccountService handles account-lifecycle operations that span multiple
// aggregates.
type AccountService struct {
	db           *sql.DB
	userStore    store.UserStore
	profileStore store.ProfileStore
	postStore    store.PostStore
	logger       *slog.Logger

	// runTx wraps the cascade in a transaction; overridable in tests where no
	// real database backs the stores.
	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewAccountService creates a new AccountService with the given dependencies.
// The *sql.DB is needed to open the transaction that ties the cascade
// together.
func NewAccountService(
	db *sql.DB,
	userStore store.UserStore,
	profileStore store.ProfileStore,
	postStore store.PostStore,
	log *slog.Logger,
) *AccountService {
	if log == nil {
		log = slog.Default()
	}
	return &AccountService{
		db:           db,
		userStore:    userStore,
		profileStore: profileStore,
		postStore:    postStore,
		logger:       log.With(slog.String("component", "account_service")),
		runTx:        store.RunInTransaction,
	}
}

// DeleteAccount removes the user's posts, profile and user record inside a
// single transaction. Either everything is deleted or nothing is, so a crash
// partway through cannot leave orphaned posts or profiles behind.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.postStore.WithTx(tx).DeleteAllByUserID(ctx, userID); err != nil {
			return err
		}
		if err := s.profileStore.WithTx(tx).DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		return s.userStore.WithTx(tx).Delete(ctx, userID)
	})
	if err != nil {
		log.Error("failed to delete account",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	log.Info("account deleted", slog.String("user_id", userID.String()))
	return nil
}
