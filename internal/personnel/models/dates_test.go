package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "astrotrack/pkg/domain-errors"
)

func TestNormalizeDate(t *testing.T) {
	eastern := time.FixedZone("UTC-5", -5*60*60)

	t.Run("offset and time of day collapse to the UTC day", func(t *testing.T) {
		a := NormalizeDate(time.Date(2026, 3, 1, 23, 0, 0, 0, eastern))
		b := NormalizeDate(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, b, a)
		assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), a)
	})

	t.Run("strips time of day", func(t *testing.T) {
		got := NormalizeDate(time.Date(2026, 3, 1, 17, 45, 12, 999, time.UTC))
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("day before crosses month boundary", func(t *testing.T) {
		assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
			DayBefore(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			DayBefore(time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)))
	})
}

func TestParseDate(t *testing.T) {
	t.Run("accepts RFC 3339 with offset", func(t *testing.T) {
		got, err := ParseDate("2026-03-01T23:00:00-05:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), NormalizeDate(got))
	})

	t.Run("accepts bare date as UTC", func(t *testing.T) {
		got, err := ParseDate("2026-03-01")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseDate("03/01/2026")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects blank", func(t *testing.T) {
		_, err := ParseDate("  ")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestFormatDate(t *testing.T) {
	assert.Empty(t, FormatDate(nil))
	d := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-28", FormatDate(&d))
}
