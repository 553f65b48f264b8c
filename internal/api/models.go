package api

import (
	"fmt"
	"time"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// Token is the JWT presented as a bearer credential on protected routes.
	Token string `json:"token"`
}

// UpsertProfileRequest defines the payload for the profile upsert endpoint.
// Every field except status and skills is optional; omitted fields keep
// their stored values.
type UpsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status"         validate:"required"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"         validate:"required"`
	YouTube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// AddExperienceRequest defines the payload for adding a work-history entry.
// Dates arrive as strings ("2006-01-02" or RFC 3339).
type AddExperienceRequest struct {
	Title       string `json:"title"       validate:"required"`
	Company     string `json:"company"     validate:"required"`
	Location    string `json:"location"`
	From        string `json:"from"        validate:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// AddEducationRequest defines the payload for adding an education entry.
type AddEducationRequest struct {
	School       string `json:"school"       validate:"required"`
	Degree       string `json:"degree"       validate:"required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required"`
	From         string `json:"from"         validate:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// MessageResponse is a minimal success payload for operations with no entity
// to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// dateLayouts are the accepted wire formats for entry dates.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// parseDate parses a request date string.
func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
}

// parseOptionalDate parses a request date string that may be empty.
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
