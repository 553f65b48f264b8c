package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	// Entity-specific errors stay matchable against their generic class.
	for _, err := range []error{ErrUserNotFound, ErrProfileNotFound, ErrEntryNotFound} {
		assert.True(t, IsNotFoundError(err), "%v should be a not-found error", err)
		assert.False(t, IsDuplicateError(err))
	}

	for _, err := range []error{ErrEmailExists, ErrProfileExists} {
		assert.True(t, IsDuplicateError(err), "%v should be a duplicate error", err)
		assert.False(t, IsNotFoundError(err))
	}
}

func TestErrorTaxonomySurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("lookup failed: %w", ErrProfileNotFound)
	assert.True(t, IsNotFoundError(wrapped))
	assert.True(t, errors.Is(wrapped, ErrProfileNotFound))

	unrelated := errors.New("boom")
	assert.False(t, IsNotFoundError(unrelated))
	assert.False(t, IsDuplicateError(unrelated))
}
