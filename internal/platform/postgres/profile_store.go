package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/devlinkhq/devlink-api/internal/domain"
	"github.com/devlinkhq/devlink-api/internal/platform/logger"
	"github.com/devlinkhq/devlink-api/internal/store"
	"github.com/google/uuid"
)

// PostgresProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend.
//
// A profile is stored as a single row: scalar columns for the top-level
// fields and JSONB columns for skills, social links and the nested
// experience/education lists. Reading and writing whole rows keeps the
// aggregate a single consistency unit.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the
// ProfileStore interface. If logger is nil, a default logger will be used.
func NewPostgresProfileStore(db store.DBTX, log *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: log.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

const profileColumns = `
	p.id, p.user_id, p.company, p.website, p.location, p.bio, p.status,
	p.github_username, p.skills, p.social, p.experience, p.education,
	p.created_at, p.updated_at, u.name, u.avatar_url
`

// Create implements store.ProfileStore.Create
// Returns store.ErrProfileExists if the owning user already has a profile
// (unique constraint on user_id) and store.ErrInvalidEntity if the owning
// user does not exist.
func (s *PostgresProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	skills, social, experience, education, err := marshalAggregate(profile)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (
			id, user_id, company, website, location, bio, status,
			github_username, skills, social, experience, education,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.UserID,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Bio,
		profile.Status,
		profile.GithubUsername,
		skills,
		social,
		experience,
		education,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("user already has a profile",
				slog.String("user_id", profile.UserID.String()))
			return store.ErrProfileExists
		}
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during profile creation",
				slog.String("user_id", profile.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, profile.UserID)
		}

		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()),
			slog.String("user_id", profile.UserID.String()))
		return err
	}

	log.Info("profile created successfully",
		slog.String("profile_id", profile.ID.String()),
		slog.String("user_id", profile.UserID.String()))
	return nil
}

// GetByUserID implements store.ProfileStore.GetByUserID
// Returns store.ErrProfileNotFound if the user has no profile.
func (s *PostgresProfileStore) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`

	profile, err := scanProfile(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("profile not found", slog.String("user_id", userID.String()))
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile by user ID",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	return profile, nil
}

// GetAll implements store.ProfileStore.GetAll
// Profiles come back in database iteration order, each with its owner
// populated. Returns an empty slice if there are none.
func (s *PostgresProfileStore) GetAll(ctx context.Context) ([]*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.user_id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query profiles", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	profiles := []*domain.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			log.Error("failed to scan profile row", slog.String("error", err.Error()))
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed profiles", slog.Int("count", len(profiles)))
	return profiles, nil
}

// Update implements store.ProfileStore.Update
// It replaces the whole aggregate row with the given state.
// Returns store.ErrProfileNotFound if the profile does not exist.
func (s *PostgresProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during update",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	skills, social, experience, education, err := marshalAggregate(profile)
	if err != nil {
		return err
	}

	query := `
		UPDATE profiles
		SET company = $1, website = $2, location = $3, bio = $4, status = $5,
			github_username = $6, skills = $7, social = $8, experience = $9,
			education = $10, updated_at = $11
		WHERE user_id = $12
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Bio,
		profile.Status,
		profile.GithubUsername,
		skills,
		social,
		experience,
		education,
		profile.UpdatedAt,
		profile.UserID,
	)

	if err != nil {
		log.Error("failed to update profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("profile not found for update",
			slog.String("user_id", profile.UserID.String()))
		return store.ErrProfileNotFound
	}

	log.Info("profile updated successfully",
		slog.String("profile_id", profile.ID.String()),
		slog.String("user_id", profile.UserID.String()))
	return nil
}

// DeleteByUserID implements store.ProfileStore.DeleteByUserID
// Deleting an absent profile is a no-op so the account cascade stays
// idempotent.
func (s *PostgresProfileStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM profiles WHERE user_id = $1`

	if _, err := s.db.ExecContext(ctx, query, userID); err != nil {
		log.Error("failed to delete profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	log.Info("profile deleted", slog.String("user_id", userID.String()))
	return nil
}

// WithTx implements store.ProfileStore.WithTx
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProfile maps one joined profiles/users row onto a domain.Profile.
func scanProfile(row rowScanner) (*domain.Profile, error) {
	var (
		profile    domain.Profile
		owner      domain.ProfileOwner
		skills     []byte
		social     []byte
		experience []byte
		education  []byte
	)

	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Company,
		&profile.Website,
		&profile.Location,
		&profile.Bio,
		&profile.Status,
		&profile.GithubUsername,
		&skills,
		&social,
		&experience,
		&education,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&owner.Name,
		&owner.AvatarURL,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(skills, &profile.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	if err := json.Unmarshal(social, &profile.Social); err != nil {
		return nil, fmt.Errorf("failed to unmarshal social links: %w", err)
	}
	if err := json.Unmarshal(experience, &profile.Experience); err != nil {
		return nil, fmt.Errorf("failed to unmarshal experience: %w", err)
	}
	if err := json.Unmarshal(education, &profile.Education); err != nil {
		return nil, fmt.Errorf("failed to unmarshal education: %w", err)
	}

	profile.Owner = &owner
	return &profile, nil
}

// marshalAggregate serializes the JSONB-backed parts of the aggregate.
func marshalAggregate(profile *domain.Profile) (skills, social, experience, education []byte, err error) {
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if profile.Experience == nil {
		profile.Experience = []domain.Experience{}
	}
	if profile.Education == nil {
		profile.Education = []domain.Education{}
	}

	if skills, err = json.Marshal(profile.Skills); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	if social, err = json.Marshal(profile.Social); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal social links: %w", err)
	}
	if experience, err = json.Marshal(profile.Experience); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal experience: %w", err)
	}
	if education, err = json.Marshal(profile.Education); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal education: %w", err)
	}

	return skills, social, experience, education, nil
}
