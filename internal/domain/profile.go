package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Profile and its nested entries. Each wraps
// ErrValidation so callers can match the whole class.
var (
	ErrEmptyProfileID     = fmt.Errorf("%w: profile ID cannot be empty", ErrValidation)
	ErrEmptyProfileUserID = fmt.Errorf("%w: profile user ID cannot be empty", ErrValidation)
	ErrEmptyStatus        = fmt.Errorf("%w: status cannot be empty", ErrValidation)
	ErrEmptyTitle         = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrEmptyCompany       = fmt.Errorf("%w: company cannot be empty", ErrValidation)
	ErrEmptySchool        = fmt.Errorf("%w: school cannot be empty", ErrValidation)
	ErrEmptyDegree        = fmt.Errorf("%w: degree cannot be empty", ErrValidation)
	ErrEmptyFieldOfStudy  = fmt.Errorf("%w: field of study cannot be empty", ErrValidation)
	ErrEmptyFromDate      = fmt.Errorf("%w: from date cannot be empty", ErrValidation)
)

// SocialLinks holds a member's social media URLs. Only platforms that were
// provided are stored; absent platforms are omitted from JSON entirely.
type SocialLinks struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// IsZero reports whether no social link is set.
func (s SocialLinks) IsZero() bool {
	return s == SocialLinks{}
}

// Experience is a single work-history entry nested inside a Profile.
// Entries have no identity outside their owning profile.
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// Validate checks the required experience fields.
func (e *Experience) Validate() error {
	if e.ID == uuid.Nil {
		return ErrInvalidID
	}
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(e.Company) == "" {
		return ErrEmptyCompany
	}
	if e.From.IsZero() {
		return ErrEmptyFromDate
	}
	return nil
}

// Education is a single education entry nested inside a Profile.
type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// Validate checks the required education fields.
func (e *Education) Validate() error {
	if e.ID == uuid.Nil {
		return ErrInvalidID
	}
	if strings.TrimSpace(e.School) == "" {
		return ErrEmptySchool
	}
	if strings.TrimSpace(e.Degree) == "" {
		return ErrEmptyDegree
	}
	if strings.TrimSpace(e.FieldOfStudy) == "" {
		return ErrEmptyFieldOfStudy
	}
	if e.From.IsZero() {
		return ErrEmptyFromDate
	}
	return nil
}

// ProfileOwner carries the display fields of the owning user that are
// populated into profile reads.
type ProfileOwner struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar"`
}

// Profile is the aggregate root for a member's public profile. The nested
// experience and education lists live inside the profile and are read and
// written as one consistency unit.
type Profile struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"user_id"`
	Company        string        `json:"company,omitempty"`
	Website        string        `json:"website,omitempty"`
	Location       string        `json:"location,omitempty"`
	Bio            string        `json:"bio,omitempty"`
	Status         string        `json:"status"`
	GithubUsername string        `json:"githubusername,omitempty"`
	Skills         []string      `json:"skills"`
	Social         SocialLinks   `json:"social"`
	Experience     []Experience  `json:"experience"`
	Education      []Education   `json:"education"`
	Owner          *ProfileOwner `json:"user,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// NewProfile creates an empty profile shell for the given owner.
// Field values are applied separately by the upsert path.
func NewProfile(userID uuid.UUID) *Profile {
	now := time.Now().UTC()
	return &Profile{
		ID:         uuid.New(),
		UserID:     userID,
		Skills:     []string{},
		Experience: []Experience{},
		Education:  []Education{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate checks if the Profile has valid data, including every nested entry.
func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProfileID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyProfileUserID
	}
	if strings.TrimSpace(p.Status) == "" {
		return ErrEmptyStatus
	}
	for i := range p.Experience {
		if err := p.Experience[i].Validate(); err != nil {
			return err
		}
	}
	for i := range p.Education {
		if err := p.Education[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AddExperience prepends the entry so the list stays newest-first by
// insertion order, and bumps the update timestamp.
func (p *Profile) AddExperience(entry Experience) {
	p.Experience = append([]Experience{entry}, p.Experience...)
	p.UpdatedAt = time.Now().UTC()
}

// RemoveExperience deletes the entry with the given ID. It reports whether an
// entry was actually removed; when the ID matches nothing the list is left
// untouched.
func (p *Profile) RemoveExperience(id uuid.UUID) bool {
	for i := range p.Experience {
		if p.Experience[i].ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			p.UpdatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// AddEducation prepends the entry, mirroring AddExperience.
func (p *Profile) AddEducation(entry Education) {
	p.Education = append([]Education{entry}, p.Education...)
	p.UpdatedAt = time.Now().UTC()
}

// RemoveEducation deletes the entry with the given ID, reporting whether it
// was found.
func (p *Profile) RemoveEducation(id uuid.UUID) bool {
	for i := range p.Education {
		if p.Education[i].ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			p.UpdatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// ParseSkills splits a comma-delimited skills string into an ordered list,
// trimming whitespace and dropping empty items.
func ParseSkills(csv string) []string {
	parts := strings.Split(csv, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
