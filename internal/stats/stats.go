// Package stats aggregates activities per category for the summary view.
package stats

import (
	"fmt"

	"github.com/idilsaglam/activitycal/internal/model"
)

const (
	UnknownName  = "Unknown"
	UnknownColor = "#CCCCCC"
)

// Line is one category's share.
type Line struct {
	CategoryID int     `json:"category_id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Count      int     `json:"count"`
	Minutes    int     `json:"minutes"`
	Percent    float64 `json:"percent"` // of total minutes
}

// Summary covers a set of activities.
type Summary struct {
	Count   int    `json:"count"`
	Minutes int    `json:"minutes"`
	Lines   []Line `json:"categories"` // in order of first appearance
}

// Hours splits the total into whole hours and remaining minutes.
func (s Summary) Hours() (hours, minutes int) {
	return s.Minutes / 60, s.Minutes % 60
}

// Summarize groups acts by category. Categories missing from cats are
// reported as Unknown.
func Summarize(acts []model.Activity, cats []model.Category) Summary {
	byID := make(map[int]model.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}

	var s Summary
	pos := make(map[int]int)
	for _, a := range acts {
		s.Count++
		s.Minutes += a.Duration
		i, ok := pos[a.CategoryID]
		if !ok {
			line := Line{CategoryID: a.CategoryID, Name: UnknownName, Color: UnknownColor}
			if c, found := byID[a.CategoryID]; found {
				line.Name, line.Color = c.Name, c.Color
			}
			i = len(s.Lines)
			pos[a.CategoryID] = i
			s.Lines = append(s.Lines, line)
		}
		s.Lines[i].Count++
		s.Lines[i].Minutes += a.Duration
	}
	if s.Minutes > 0 {
		for i := range s.Lines {
			s.Lines[i].Percent = float64(s.Lines[i].Minutes) / float64(s.Minutes) * 100
		}
	}
	return s
}

// FormatMinutes renders 135 as "2h15".
func FormatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dmin", m)
	}
	return fmt.Sprintf("%dh%02d", m/60, m%60)
}
