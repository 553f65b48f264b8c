package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/devlinkhq/devlink-api/internal/domain"
	"github.com/devlinkhq/devlink-api/internal/platform/logger"
	"github.com/devlinkhq/devlink-api/internal/store"
	"github.com/google/uuid"
)

// ProfileUpdate is the sparse field set accepted by Upsert. Empty fields are
// treated as absent: they are never written over previously stored values.
// There is no unset path; a caller must resend a field to keep it current.
type ProfileUpdate struct {
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string

	// Skills is a comma-delimited string, split and trimmed into the stored
	// ordered list.
	Skills string

	// Social links, each under the same omission rule as the scalar fields.
	YouTube   string
	Twitter   string
	Facebook  string
	LinkedIn  string
	Instagram string
}

// ProfileService implements the profile aggregate use cases: upsert, reads,
// and nested experience/education list mutation.
type ProfileService struct {
	profileStore store.ProfileStore
	logger       *slog.Logger
}

// NewProfileService creates a new ProfileService with the given dependencies.
func NewProfileService(profileStore store.ProfileStore, log *slog.Logger) *ProfileService {
	if log == nil {
		log = slog.Default()
	}
	return &ProfileService{
		profileStore: profileStore,
		logger:       log.With(slog.String("component", "profile_service")),
	}
}

// GetOwnProfile returns the caller's profile with the owner populated.
// Returns store.ErrProfileNotFound if the caller has no profile yet.
func (s *ProfileService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return s.profileStore.GetByUserID(ctx, userID)
}

// Upsert creates the caller's profile if absent, otherwise updates it in
// place, and returns the post-update state.
//
// The one-profile-per-user invariant is backed by a uniqueness constraint on
// the owning user: when two concurrent upserts race for the same absent
// profile, the losing create surfaces as store.ErrProfileExists and is
// retried as an update against the winner's row.
func (s *ProfileService) Upsert(
	ctx context.Context,
	userID uuid.UUID,
	update ProfileUpdate,
) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrProfileNotFound) {
		return nil, err
	}

	if existing != nil {
		applyUpdate(existing, update)
		if err := s.profileStore.Update(ctx, existing); err != nil {
			return nil, err
		}
		return s.profileStore.GetByUserID(ctx, userID)
	}

	profile := domain.NewProfile(userID)
	applyUpdate(profile, update)

	if err := s.profileStore.Create(ctx, profile); err != nil {
		if errors.Is(err, store.ErrProfileExists) {
			// Lost a create race; fold the update into the winning row.
			log.Debug("profile create conflicted, retrying as update",
				slog.String("user_id", userID.String()))
			winner, getErr := s.profileStore.GetByUserID(ctx, userID)
			if getErr != nil {
				return nil, getErr
			}
			applyUpdate(winner, update)
			if updErr := s.profileStore.Update(ctx, winner); updErr != nil {
				return nil, updErr
			}
			return s.profileStore.GetByUserID(ctx, userID)
		}
		return nil, err
	}

	return s.profileStore.GetByUserID(ctx, userID)
}

// ListProfiles returns every profile, owners populated, in database iteration
// order. The listing is unranked.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]*domain.Profile, error) {
	return s.profileStore.GetAll(ctx)
}

// GetByUserID fetches a profile by the owning user's ID given as a string.
// A malformed ID is reported the same way as a well-formed but absent one, so
// the handler maps both onto the not-found response.
func (s *ProfileService) GetByUserID(ctx context.Context, rawUserID string) (*domain.Profile, error) {
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user ID", store.ErrProfileNotFound)
	}
	return s.profileStore.GetByUserID(ctx, userID)
}

// AddExperience validates and prepends a work-history entry so the list stays
// newest-first, then returns the updated profile.
// Returns store.ErrProfileNotFound if the caller has no profile yet.
func (s *ProfileService) AddExperience(
	ctx context.Context,
	userID uuid.UUID,
	entry domain.Experience,
) (*domain.Profile, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.AddExperience(entry)
	if err := s.profileStore.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveExperience deletes the entry with the given ID from the caller's
// profile. When the ID matches no entry the list is left unmodified and
// store.ErrEntryNotFound is returned.
func (s *ProfileService) RemoveExperience(
	ctx context.Context,
	userID uuid.UUID,
	entryID uuid.UUID,
) (*domain.Profile, error) {
	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !profile.RemoveExperience(entryID) {
		return nil, store.ErrEntryNotFound
	}

	if err := s.profileStore.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddEducation mirrors AddExperience for the education list.
func (s *ProfileService) AddEducation(
	ctx context.Context,
	userID uuid.UUID,
	entry domain.Education,
) (*domain.Profile, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.AddEducation(entry)
	if err := s.profileStore.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveEducation mirrors RemoveExperience for the education list.
func (s *ProfileService) RemoveEducation(
	ctx context.Context,
	userID uuid.UUID,
	entryID uuid.UUID,
) (*domain.Profile, error) {
	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !profile.RemoveEducation(entryID) {
		return nil, store.ErrEntryNotFound
	}

	if err := s.profileStore.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// applyUpdate copies the present (non-empty) update fields onto the profile.
// Absent fields keep their stored values; there is no unset path.
func applyUpdate(profile *domain.Profile, update ProfileUpdate) {
	if update.Company != "" {
		profile.Company = update.Company
	}
	if update.Website != "" {
		profile.Website = update.Website
	}
	if update.Location != "" {
		profile.Location = update.Location
	}
	if update.Bio != "" {
		profile.Bio = update.Bio
	}
	if update.Status != "" {
		profile.Status = update.Status
	}
	if update.GithubUsername != "" {
		profile.GithubUsername = update.GithubUsername
	}
	if update.Skills != "" {
		profile.Skills = domain.ParseSkills(update.Skills)
	}

	// Social links follow the same omission rule per platform: only the
	// provided ones are written, the rest keep their stored values.
	if update.YouTube != "" {
		profile.Social.YouTube = update.YouTube
	}
	if update.Twitter != "" {
		profile.Social.Twitter = update.Twitter
	}
	if update.Facebook != "" {
		profile.Social.Facebook = update.Facebook
	}
	if update.LinkedIn != "" {
		profile.Social.LinkedIn = update.LinkedIn
	}
	if update.Instagram != "" {
		profile.Social.Instagram = update.Instagram
	}
}
