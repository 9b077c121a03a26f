package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2025-01-15", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2025-13-01", false},
		{"2025-1-5", false},
		{"15/01/2025", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateDate(tt.in))
		})
	}
}

func TestValidateColor(t *testing.T) {
	assert.True(t, ValidateColor("#FF5733"))
	assert.True(t, ValidateColor("#abc"))
	assert.False(t, ValidateColor("FF5733"))
	assert.False(t, ValidateColor("#FF57"))
	assert.False(t, ValidateColor("#GGGGGG"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "", Sanitize(""))
	assert.Equal(t, "script", Sanitize("  <script>  "))
	// decomposed e + combining acute becomes a single rune
	assert.Equal(t, "M\u00e9ditation", Sanitize("Me\u0301ditation"))
}

func TestNewActivity(t *testing.T) {
	a, err := NewActivity("  Run ", 1, "2025-01-10", 30, " fast ")
	require.NoError(t, err)
	assert.Equal(t, Activity{Title: "Run", CategoryID: 1, Date: "2025-01-10", Duration: 30, Notes: "fast"}, a)

	_, err = NewActivity("<>", 1, "2025-01-10", 30, "")
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = NewActivity("Run", 1, "2025-01-10", 0, "")
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = NewActivity("Run", 1, "2025/01/10", 10, "")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = NewActivity("Run", 0, "2025-01-10", 10, "")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "category", verr.Field)
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory(" Yoga ", "#0f0")
	require.NoError(t, err)
	assert.Equal(t, Category{Name: "Yoga", Color: "#0f0"}, c)

	_, err = NewCategory("", "#0f0")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewCategory("Yoga", "green")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestSeedCategories(t *testing.T) {
	seed := SeedCategories()
	require.Len(t, seed, 4)
	for i, c := range seed {
		assert.Equal(t, i+1, c.ID)
		assert.True(t, ValidateColor(c.Color))
	}
}
