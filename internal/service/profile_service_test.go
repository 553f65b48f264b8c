package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/devlinkhq/devlink-api/internal/domain"
	"github.com/devlinkhq/devlink-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProfileStore is an in-memory ProfileStore keyed by owning user.
type fakeProfileStore struct {
	profiles map[uuid.UUID]*domain.Profile

	// createErr, when set, is returned by the next Create call and cleared.
	// Used to simulate losing a create race.
	createErr error

	// missOnce makes the next GetByUserID miss even when the row exists,
	// simulating the read that happens before a concurrent writer commits.
	missOnce bool
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[uuid.UUID]*domain.Profile)}
}

func (f *fakeProfileStore) clone(p *domain.Profile) *domain.Profile {
	cp := *p
	cp.Skills = append([]string(nil), p.Skills...)
	cp.Experience = append([]domain.Experience(nil), p.Experience...)
	cp.Education = append([]domain.Education(nil), p.Education...)
	return &cp
}

func (f *fakeProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return err
	}
	if _, exists := f.profiles[profile.UserID]; exists {
		return store.ErrProfileExists
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	f.profiles[profile.UserID] = f.clone(profile)
	return nil
}

func (f *fakeProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if f.missOnce {
		f.missOnce = false
		return nil, store.ErrProfileNotFound
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return f.clone(profile), nil
}

func (f *fakeProfileStore) GetAll(ctx context.Context) ([]*domain.Profile, error) {
	all := []*domain.Profile{}
	for _, p := range f.profiles {
		all = append(all, f.clone(p))
	}
	return all, nil
}

func (f *fakeProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	if _, ok := f.profiles[profile.UserID]; !ok {
		return store.ErrProfileNotFound
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	f.profiles[profile.UserID] = f.clone(profile)
	return nil
}

func (f *fakeProfileStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	delete(f.profiles, userID)
	return nil
}

func (f *fakeProfileStore) WithTx(tx *sql.Tx) store.ProfileStore { return f }

func TestUpsertCreatesProfile(t *testing.T) {
	profileStore := newFakeProfileStore()
	svc := NewProfileService(profileStore, nil)
	userID := uuid.New()

	profile, err := svc.Upsert(context.Background(), userID, ProfileUpdate{
		Status:  "Developer",
		Skills:  "Go, SQL , Docker",
		Company: "Acme",
		Twitter: "https://twitter.com/jane",
	})
	require.NoError(t, err)

	assert.Equal(t, userID, profile.UserID)
	assert.Equal(t, "Developer", profile.Status)
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, profile.Skills,
		"Skills should be split, trimmed and order-preserving")
	assert.Equal(t, "https://twitter.com/jane", profile.Social.Twitter)
}

func TestUpsertPreservesOmittedFields(t *testing.T) {
	profileStore := newFakeProfileStore()
	svc := NewProfileService(profileStore, nil)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, ProfileUpdate{
		Status:   "Developer",
		Skills:   "Go",
		Company:  "Acme",
		Website:  "https://jane.dev",
		Twitter:  "https://twitter.com/jane",
		LinkedIn: "https://linkedin.com/in/jane",
	})
	require.NoError(t, err)

	// A second upsert that omits company, website and all but one social link
	// must leave the stored values intact.
	profile, err := svc.Upsert(context.Background(), userID, ProfileUpdate{
		Status:  "Senior Developer",
		Skills:  "Go,Kubernetes",
		Twitter: "https://twitter.com/janedev",
	})
	require.NoError(t, err)

	assert.Equal(t, "Senior Developer", profile.Status)
	assert.Equal(t, []string{"Go", "Kubernetes"}, profile.Skills)
	assert.Equal(t, "Acme", profile.Company, "Omitted company should persist")
	assert.Equal(t, "https://jane.dev", profile.Website, "Omitted website should persist")
	assert.Equal(t, "https://twitter.com/janedev", profile.Social.Twitter)
	assert.Equal(t, "https://linkedin.com/in/jane", profile.Social.LinkedIn,
		"Omitted social links should persist")
}

func TestUpsertRetriesLostCreateRace(t *testing.T) {
	profileStore := newFakeProfileStore()
	svc := NewProfileService(profileStore, nil)
	userID := uuid.New()

	// Simulate a concurrent winner: our initial read misses, our create hits
	// the uniqueness conflict, and the winner's row is there on re-read.
	winner := domain.NewProfile(userID)
	winner.Status = "Developer"
	winner.Company = "Acme"
	require.NoError(t, profileStore.Create(context.Background(), winner))
	profileStore.missOnce = true
	profileStore.createErr = store.ErrProfileExists

	profile, err := svc.Upsert(context.Background(), userID, ProfileUpdate{
		Status: "Senior Developer",
		Skills: "Go",
	})
	require.NoError(t, err)

	assert.Equal(t, "Senior Developer", profile.Status,
		"The losing create should fold its update into the winner's row")
	assert.Equal(t, "Acme", profile.Company)
}

func TestGetByUserIDMalformed(t *testing.T) {
	svc := NewProfileService(newFakeProfileStore(), nil)

	// A malformed ID reads the same as an absent profile.
	_, err := svc.GetByUserID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func TestAddExperience(t *testing.T) {
	profileStore := newFakeProfileStore()
	svc := NewProfileService(profileStore, nil)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, ProfileUpdate{Status: "Developer", Skills: "Go"})
	require.NoError(t, err)

	first := domain.Experience{
		Title:   "Engineer",
		Company: "Acme",
		From:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	profile, err := svc.AddExperience(context.Background(), userID, first)
	require.NoError(t, err)
	require.Len(t, profile.Experience, 1)
	assert.NotEqual(t, uuid.Nil, profile.Experience[0].ID,
		"An ID should be assigned when the entry has none")

	second := domain.Experience{
		Title:   "Senior Engineer",
		Company: "Acme",
		From:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	profile, err = svc.AddExperience(context.Background(), userID, second)
	require.NoError(t, err)
	require.Len(t, profile.Experience, 2)
	assert.Equal(t, "Senior Engineer", profile.Experience[0].Title,
		"The newest entry should be first")
}

func TestAddExperienceWithoutProfile(t *testing.T) {
	svc := NewProfileService(newFakeProfileStore(), nil)

	_, err := svc.AddExperience(context.Background(), uuid.New(), domain.Experience{
		Title:   "Engineer",
		Company: "Acme",
		From:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func TestRemoveExperience(t *testing.T) {
	profileStore := newFakeProfileStore()
	svc := NewProfileService(profileStore, nil)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, ProfileUpdate{Status: "Developer", Skills: "Go"})
	require.NoError(t, err)

	profile, err := svc.AddExperience(context.Background(), userID, domain.Experience{
		Title:   "Engineer",
		Company: "Acme",
		From:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	entryID := profile.Experience[0].ID

	// Unknown entry ID: error, list untouched.
	_, err = svc.RemoveExperience(context.Background(), userID, uuid.New())
	assert.ErrorIs(t, err, store.ErrEntryNotFound)

	stored, err := svc.GetOwnProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, stored.Experience, 1, "A failed removal must not modify the list")

	// Known entry ID: removed.
	profile, err = svc.RemoveExperience(context.Background(), userID, entryID)
	require.NoError(t, err)
	assert.Empty(t, profile.Experience)
}

func TestAddAndRemoveEducation(t *testing.T) {
	profileStore := newFakeProfileStore()
	svc := NewProfileService(profileStore, nil)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, ProfileUpdate{Status: "Developer", Skills: "Go"})
	require.NoError(t, err)

	profile, err := svc.AddEducation(context.Background(), userID, domain.Education{
		School:       "State University",
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, profile.Education, 1)

	_, err = svc.RemoveEducation(context.Background(), userID, uuid.New())
	assert.ErrorIs(t, err, store.ErrEntryNotFound)

	profile, err = svc.RemoveEducation(context.Background(), userID, profile.Education[0].ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Education)
}

func TestListProfiles(t *testing.T) {
	profileStore := newFakeProfileStore()
	svc := NewProfileService(profileStore, nil)

	profiles, err := svc.ListProfiles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profiles, "Listing with no profiles should return an empty slice")

	for i := 0; i < 3; i++ {
		_, err := svc.Upsert(context.Background(), uuid.New(), ProfileUpdate{
			Status: "Developer",
			Skills: "Go",
		})
		require.NoError(t, err)
	}

	profiles, err = svc.ListProfiles(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, 3)
}
