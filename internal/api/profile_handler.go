package api

import (
	"net/http"

	"github.com/devlinkhq/devlink-api/internal/domain"
	"github.com/devlinkhq/devlink-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// ProfileHandler handles profile-aggregate API requests.
type ProfileHandler struct {
	profileService *service.ProfileService
	accountService *service.AccountService
	validator      *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler with the given dependencies.
func NewProfileHandler(
	profileService *service.ProfileService,
	accountService *service.AccountService,
) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		accountService: accountService,
		validator:      validator.New(),
	}
}

// Me handles GET /api/profile/me.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.profileService.GetOwnProfile(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	respondWithJSON(w, r, http.StatusOK, profile)
}

// Upsert handles POST /api/profile.
// It creates the caller's profile if absent, otherwise updates it, and
// returns the post-update state.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpsertProfileRequest
	if err := DecodeJSON(r, &req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.profileService.Upsert(r.Context(), userID, service.ProfileUpdate{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		YouTube:        req.YouTube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		LinkedIn:       req.LinkedIn,
		Instagram:      req.Instagram,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save profile")
		return
	}

	respondWithJSON(w, r, http.StatusOK, profile)
}

// List handles GET /api/profile.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.ListProfiles(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list profiles")
		return
	}

	respondWithJSON(w, r, http.StatusOK, profiles)
}

// GetByUserID handles GET /api/profile/user/{user_id}.
// A malformed ID gets the same response as an absent profile.
func (h *ProfileHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	rawUserID := chi.URLParam(r, "user_id")

	profile, err := h.profileService.GetByUserID(r.Context(), rawUserID)
	if err != nil {
		HandleAPIError(w, r, err, "Profile not found")
		return
	}

	respondWithJSON(w, r, http.StatusOK, profile)
}

// DeleteAccount handles DELETE /api/profile.
// It removes the caller's posts, profile and user record atomically.
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete account")
		return
	}

	respondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "User removed"})
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddExperienceRequest
	if err := DecodeJSON(r, &req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	from, err := parseDate(req.From)
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profileService.AddExperience(r.Context(), userID, domain.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	respondWithJSON(w, r, http.StatusOK, profile)
}

// RemoveExperience handles DELETE /api/profile/experience/{exp_id}.
// An unknown entry ID leaves the list unchanged and reports a client error.
func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	entryID, err := getPathUUID(r, "exp_id")
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profileService.RemoveExperience(r.Context(), userID, entryID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	respondWithJSON(w, r, http.StatusOK, profile)
}

// AddEducation handles PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddEducationRequest
	if err := DecodeJSON(r, &req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	from, err := parseDate(req.From)
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profileService.AddEducation(r.Context(), userID, domain.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	respondWithJSON(w, r, http.StatusOK, profile)
}

// RemoveEducation handles DELETE /api/profile/education/{edu_id}.
func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	entryID, err := getPathUUID(r, "edu_id")
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profileService.RemoveEducation(r.Context(), userID, entryID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	respondWithJSON(w, r, http.StatusOK, profile)
}
