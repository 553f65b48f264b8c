package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/devlinkhq/devlink-api/internal/domain"
	"github.com/devlinkhq/devlink-api/internal/platform/github"
	"github.com/devlinkhq/devlink-api/internal/service/auth"
	"github.com/devlinkhq/devlink-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// The original API reports a missing profile or nested entry as a
	// client error, and the handler surface keeps that contract.
	case errors.Is(err, store.ErrProfileNotFound),
		errors.Is(err, store.ErrEntryNotFound):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, github.ErrUserNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Domain validation failures are client errors: the input passed the
	// request DTO checks but was rejected by the entity (e.g., a
	// whitespace-only required field).
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	msg, _ := safeErrorMessage(err)
	return msg
}

// safeErrorMessage resolves the client-facing message for an error and
// reports whether the error type has a specific one.
func safeErrorMessage(err error) (string, bool) {
	if err == nil {
		return "An unexpected error occurred", false
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials", true

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token", true

	case errors.Is(err, auth.ErrMissingToken):
		return "Authentication token is missing", true

	case errors.Is(err, store.ErrProfileNotFound):
		return "No profile for this user", true

	case errors.Is(err, store.ErrEntryNotFound):
		return "Entry not found", true

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found", true

	case errors.Is(err, github.ErrUserNotFound):
		return "No github profile found", true

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists", true

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data", true

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return validationMessage(err), true

	default:
		return "An unexpected error occurred", false
	}
}

// validationMessage surfaces the field-level detail of a domain validation
// failure. The domain sentinels carry fixed messages, safe for clients.
func validationMessage(err error) string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	return strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
}

// HandleAPIError maps the error and writes the sanitized response, logging
// the underlying cause. Errors with a specific safe message use it; the
// caller's userMessage covers everything else.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	message, specific := safeErrorMessage(err)
	if !specific && userMessage != "" {
		message = userMessage
	}
	respondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LoginRequest.Email' Error:Field validation for
	// 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
