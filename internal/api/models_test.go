package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("2020-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDate("2020-06-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 6, 15, 10, 30, 0, 0, time.UTC), got)

	_, err = parseDate("June 2020")
	assert.Error(t, err)

	_, err = parseDate("")
	assert.Error(t, err)
}

func TestParseOptionalDate(t *testing.T) {
	got, err := parseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, got, "An empty optional date means the entry is open-ended")

	got, err = parseOptionalDate("2022-01-31")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2022, 1, 31, 0, 0, 0, 0, time.UTC), *got)

	_, err = parseOptionalDate("31/01/2022")
	assert.Error(t, err)
}
