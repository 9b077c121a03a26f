package jsonstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/activitycal/internal/model"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, DefaultActivitiesFile), filepath.Join(dir, DefaultJournalFile))
	require.NoError(t, err)
	return s
}

func addActivity(t *testing.T, s *Store, title string, cat int, date string) int {
	t.Helper()
	id, err := s.AddActivity(model.Activity{Title: title, CategoryID: cat, Date: date, Duration: 30})
	require.NoError(t, err)
	return id
}

func ids(acts []model.Activity) []int {
	out := make([]int, 0, len(acts))
	for _, a := range acts {
		out = append(out, a.ID)
	}
	return out
}

func TestOpenSeedsDocuments(t *testing.T) {
	s := newStore(t)

	cats, err := s.Categories()
	require.NoError(t, err)
	assert.Equal(t, model.SeedCategories(), cats)

	acts, err := s.Activities(Filter{})
	require.NoError(t, err)
	assert.Empty(t, acts)

	b, err := os.ReadFile(s.JournalPath())
	require.NoError(t, err)
	var journal map[string]any
	require.NoError(t, json.Unmarshal(b, &journal))
	assert.Equal(t, []any{}, journal["journal_entries"])
}

func TestOpenDoesNotReseed(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.DeleteCategory(1))

	again, err := Open(s.Path(), s.JournalPath())
	require.NoError(t, err)

	cats, err := again.Categories()
	require.NoError(t, err)
	assert.Len(t, cats, 3)
}

func TestOpenDefaultJournalPath(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "data", "acts.json"), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", DefaultJournalFile), s.JournalPath())
	assert.FileExists(t, s.JournalPath())
}

func TestDocumentEncoding(t *testing.T) {
	s := newStore(t)
	addActivity(t, s, "Lire <Proust> & co", 2, "2025-01-10")

	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	text := string(b)
	assert.Contains(t, text, "Méditation")
	assert.Contains(t, text, "Lire <Proust> & co")
	assert.Contains(t, text, "\n    \"categories\": [")
	assert.NoFileExists(t, s.Path()+tmpSuffix)
}

func TestCategoryIDsNeverReused(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"categories": [], "activities": []}`), 0o644))
	s, err := Open(path, "")
	require.NoError(t, err)

	a, err := s.AddCategory("A", "#111")
	require.NoError(t, err)
	b, err := s.AddCategory("B", "#222")
	require.NoError(t, err)
	require.NoError(t, s.DeleteCategory(a))
	c, err := s.AddCategory("C", "#333")
	require.NoError(t, err)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 3, c)
}

func TestAddCategoryAfterSeed(t *testing.T) {
	s := newStore(t)
	id, err := s.AddCategory("Yoga", "#00FF00")
	require.NoError(t, err)
	assert.Equal(t, 5, id)

	cats, err := s.Categories()
	require.NoError(t, err)
	assert.Equal(t, model.Category{ID: 5, Name: "Yoga", Color: "#00FF00"}, cats[len(cats)-1])
}

func TestDeleteCategoryMissingIsNoop(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.DeleteCategory(99))
	cats, err := s.Categories()
	require.NoError(t, err)
	assert.Len(t, cats, 4)
}

func TestDeleteCategoryLeavesActivities(t *testing.T) {
	s := newStore(t)
	id := addActivity(t, s, "Run", 1, "2025-01-10")
	require.NoError(t, s.DeleteCategory(1))

	acts, err := s.Activities(Filter{})
	require.NoError(t, err)
	assert.Equal(t, []int{id}, ids(acts))
}

func TestActivitiesDateRange(t *testing.T) {
	s := newStore(t)
	for _, d := range []string{"2025-01-05", "2025-01-10", "2025-01-15", "2025-01-20", "2025-01-25"} {
		addActivity(t, s, "x", 1, d)
	}

	acts, err := s.Activities(Filter{StartDate: "2025-01-10", EndDate: "2025-01-20"})
	require.NoError(t, err)
	var dates []string
	for _, a := range acts {
		dates = append(dates, a.Date)
	}
	assert.Equal(t, []string{"2025-01-10", "2025-01-15", "2025-01-20"}, dates)
}

func TestActivitiesSingleDay(t *testing.T) {
	s := newStore(t)
	addActivity(t, s, "a", 1, "2025-03-01")
	want := addActivity(t, s, "b", 2, "2025-03-02")
	also := addActivity(t, s, "c", 3, "2025-03-02")
	addActivity(t, s, "d", 1, "2025-03-03")

	acts, err := s.Activities(Day("2025-03-02"))
	require.NoError(t, err)
	assert.Equal(t, []int{want, also}, ids(acts))
}

func TestActivitiesCategoryFilter(t *testing.T) {
	s := newStore(t)
	a := addActivity(t, s, "a", 1, "2025-03-01")
	addActivity(t, s, "b", 2, "2025-03-01")
	c := addActivity(t, s, "c", 1, "2025-04-01")

	acts, err := s.Activities(Filter{}.InCategory(1))
	require.NoError(t, err)
	assert.Equal(t, []int{a, c}, ids(acts))

	acts, err = s.Activities(Filter{EndDate: "2025-03-31"}.InCategory(1))
	require.NoError(t, err)
	assert.Equal(t, []int{a}, ids(acts))

	// zero is a real filter value, not "no filter"
	acts, err = s.Activities(Filter{}.InCategory(0))
	require.NoError(t, err)
	assert.Empty(t, acts)
}

func TestAddActivityAssignsIDs(t *testing.T) {
	s := newStore(t)
	first, err := s.AddActivity(model.Activity{ID: 42, Title: "a", CategoryID: 1, Date: "2025-01-01", Duration: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second := addActivity(t, s, "b", 1, "2025-01-01")
	assert.Equal(t, 2, second)
}

func TestUpdateActivityKeepsDate(t *testing.T) {
	s := newStore(t)
	id := addActivity(t, s, "Run", 1, "2025-01-10")

	require.NoError(t, s.UpdateActivity(id, Update{Title: "Swim", CategoryID: 2, Duration: 45, Notes: "pool"}))

	acts, err := s.Activities(Filter{})
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, model.Activity{ID: id, Title: "Swim", CategoryID: 2, Date: "2025-01-10", Duration: 45, Notes: "pool"}, acts[0])
}

func TestUpdateActivityMissingIsNoop(t *testing.T) {
	s := newStore(t)
	addActivity(t, s, "Run", 1, "2025-01-10")
	before, err := s.Activities(Filter{})
	require.NoError(t, err)

	require.NoError(t, s.UpdateActivity(99, Update{Title: "ghost", CategoryID: 1, Duration: 1}))

	after, err := s.Activities(Filter{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeleteActivityIdempotent(t *testing.T) {
	s := newStore(t)
	keep := addActivity(t, s, "a", 1, "2025-01-10")
	gone := addActivity(t, s, "b", 1, "2025-01-10")

	require.NoError(t, s.DeleteActivity(gone))
	require.NoError(t, s.DeleteActivity(gone))

	acts, err := s.Activities(Filter{})
	require.NoError(t, err)
	assert.Equal(t, []int{keep}, ids(acts))
}

func TestMalformedDocument(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"categories": [`), 0o644))

	_, err := s.Categories()
	assert.Error(t, err)
	_, err = s.AddActivity(model.Activity{Title: "a"})
	assert.Error(t, err)
}

func TestMissingDocument(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.Remove(s.Path()))

	_, err := s.Activities(Filter{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("", "")
	assert.Error(t, err)
}
