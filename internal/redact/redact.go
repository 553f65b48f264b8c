// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. The API handles credentials on every login
// and registration request, so raw errors must never carry connection
// strings, bearer tokens, passwords or email addresses into the logs.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedTokenPlaceholder      = "[REDACTED_TOKEN]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

// Precompiled patterns for the sensitive material this service handles.
var (
	// Database connection strings with inline credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres(ql)?|mysql)://[^@\s]+@`)

	// Password key/value fragments
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// Standard three-part base64url-encoded JWT tokens
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	patternPlaceholders = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{dbConnRegex, RedactedCredentialPlaceholder},
		{passwordRegex, RedactedCredentialPlaceholder},
		{jwtTokenRegex, RedactedTokenPlaceholder},
		{emailRegex, RedactedEmailPlaceholder},
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pp := range patternPlaceholders {
		result = pp.pattern.ReplaceAllString(result, pp.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
