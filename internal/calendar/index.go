package calendar

import (
	"time"

	"github.com/idilsaglam/activitycal/internal/model"
	"github.com/idilsaglam/activitycal/internal/store/jsonstore"
)

// Source is the read side of the store.
type Source interface {
	Categories() ([]model.Category, error)
	Activities(f jsonstore.Filter) ([]model.Activity, error)
}

// MonthIndex answers per-day lookups for one month from a single read, so
// building a grid costs two store reads instead of one per day.
type MonthIndex struct {
	byDate  map[string][]model.Activity
	colors  map[int]string
	ordered []model.Activity
}

// LoadMonth reads v's month and the category table from src.
func LoadMonth(src Source, v View) (*MonthIndex, error) {
	start, end := v.Normalize().Range()
	acts, err := src.Activities(jsonstore.Filter{StartDate: start, EndDate: end})
	if err != nil {
		return nil, err
	}
	cats, err := src.Categories()
	if err != nil {
		return nil, err
	}
	idx := &MonthIndex{
		byDate:  make(map[string][]model.Activity),
		colors:  make(map[int]string, len(cats)),
		ordered: acts,
	}
	for _, a := range acts {
		idx.byDate[a.Date] = append(idx.byDate[a.Date], a)
	}
	for _, c := range cats {
		idx.colors[c.ID] = c.Color
	}
	return idx, nil
}

// ActivitiesOn implements ActivityLookup.
func (m *MonthIndex) ActivitiesOn(date string) ([]model.Activity, error) {
	return m.byDate[date], nil
}

// ColorOf implements ColorLookup.
func (m *MonthIndex) ColorOf(categoryID int) (string, bool) {
	c, ok := m.colors[categoryID]
	return c, ok
}

// Activities returns every activity of the month in store order.
func (m *MonthIndex) Activities() []model.Activity { return m.ordered }

// BuildFrom loads v's month from src and lays it out.
func BuildFrom(src Source, v View, today time.Time) (Grid, *MonthIndex, error) {
	idx, err := LoadMonth(src, v)
	if err != nil {
		return Grid{}, nil, err
	}
	g, err := Build(v, today, idx.ActivitiesOn, idx.ColorOf)
	if err != nil {
		return Grid{}, nil, err
	}
	return g, idx, nil
}
