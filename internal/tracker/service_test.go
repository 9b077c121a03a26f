package tracker

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/activitycal/internal/model"
	"github.com/idilsaglam/activitycal/internal/store/jsonstore"
)

func newService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	st, err := jsonstore.Open(filepath.Join(dir, "acts.json"), filepath.Join(dir, "journal.json"))
	require.NoError(t, err)
	return New(st, nil)
}

func TestAddActivityValidates(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name     string
		title    string
		category int
		date     string
		duration int
		want     error
	}{
		{"empty title", "  ", 1, "2025-01-10", 10, model.ErrEmptyTitle},
		{"only brackets", "<>", 1, "2025-01-10", 10, model.ErrEmptyTitle},
		{"zero duration", "Run", 1, "2025-01-10", 0, model.ErrInvalidDuration},
		{"negative duration", "Run", 1, "2025-01-10", -5, model.ErrInvalidDuration},
		{"bad date", "Run", 1, "2025-02-30", 10, model.ErrInvalidDate},
		{"unknown category", "Run", 77, "2025-01-10", 10, model.ErrUnknownCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddActivity(tt.title, tt.category, tt.date, tt.duration, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}

	acts, err := svc.Activities(jsonstore.Filter{})
	require.NoError(t, err)
	assert.Empty(t, acts)
}

func TestAddActivitySanitizes(t *testing.T) {
	svc := newService(t)
	id, err := svc.AddActivity(" <b>Run</b> ", 1, "2025-01-10", 30, " note ")
	require.NoError(t, err)

	a, err := svc.Activity(id)
	require.NoError(t, err)
	assert.Equal(t, "bRun/b", a.Title)
	assert.Equal(t, "note", a.Notes)
}

func TestUpdateActivity(t *testing.T) {
	svc := newService(t)
	id, err := svc.AddActivity("Run", 1, "2025-01-10", 30, "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateActivity(id, "Read", 2, 60, "book"))
	a, err := svc.Activity(id)
	require.NoError(t, err)
	assert.Equal(t, model.Activity{ID: id, Title: "Read", CategoryID: 2, Date: "2025-01-10", Duration: 60, Notes: "book"}, a)

	assert.ErrorIs(t, svc.UpdateActivity(id, "Read", 2, 0, ""), model.ErrInvalidDuration)
	assert.ErrorIs(t, svc.UpdateActivity(id, "Read", 99, 10, ""), model.ErrUnknownCategory)

	// unknown id stays silent
	require.NoError(t, svc.UpdateActivity(1234, "Read", 2, 10, ""))
}

func TestDeleteCategoryBlockedWhileUsed(t *testing.T) {
	svc := newService(t)
	id, err := svc.AddActivity("Run", 1, "2025-01-10", 30, "")
	require.NoError(t, err)

	err = svc.DeleteCategory(1)
	assert.ErrorIs(t, err, ErrCategoryInUse)
	_, err = svc.Category(1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteActivity(id))
	require.NoError(t, svc.DeleteCategory(1))
	_, err = svc.Category(1)
	assert.ErrorIs(t, err, ErrNotFound)

	// unknown category deletes quietly
	require.NoError(t, svc.DeleteCategory(1))
}

func TestAddCategoryValidates(t *testing.T) {
	svc := newService(t)

	_, err := svc.AddCategory("", "#fff")
	assert.ErrorIs(t, err, model.ErrEmptyName)
	_, err = svc.AddCategory("Yoga", "#ffff")
	assert.ErrorIs(t, err, model.ErrInvalidColor)

	id, err := svc.AddCategory("Yoga", "#ABCDEF")
	require.NoError(t, err)
	c, err := svc.CategoryByName("Yoga")
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
}

func TestActivitiesRejectsBadBounds(t *testing.T) {
	svc := newService(t)
	_, err := svc.Activities(jsonstore.Filter{StartDate: "yesterday"})
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "start date", verr.Field)
}

func TestColorIndex(t *testing.T) {
	svc := newService(t)
	idx, err := svc.ColorIndex()
	require.NoError(t, err)
	assert.Equal(t, "#FF5733", idx[1])
	assert.Len(t, idx, 4)
}

func TestActivityNotFound(t *testing.T) {
	svc := newService(t)
	_, err := svc.Activity(5)
	assert.ErrorIs(t, err, ErrNotFound)
}
