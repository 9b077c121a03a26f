// Package calendar computes month grids. It holds no state of its own: a
// View goes in, a Grid comes out, and both can be rebuilt at any time from
// the store.
package calendar

import (
	"sort"
	"time"

	"github.com/idilsaglam/activitycal/internal/model"
)

const (
	Rows  = 6
	Cols  = 7
	Cells = Rows * Cols
)

// View is the displayed month plus the selected date ("" for none).
type View struct {
	Year     int
	Month    time.Month
	Selected string
}

// NewView shows the month containing t with nothing selected.
func NewView(t time.Time) View {
	return View{Year: t.Year(), Month: t.Month()}
}

// Normalize folds an out-of-range month into the neighbouring year, so
// month 0 is December of the previous year and month 13 is January of the
// next.
func (v View) Normalize() View {
	m := int(v.Month) - 1
	v.Year += m / 12
	m %= 12
	if m < 0 {
		m += 12
		v.Year--
	}
	v.Month = time.Month(m + 1)
	return v
}

func (v View) Prev() View {
	v.Month--
	return v.Normalize()
}

func (v View) Next() View {
	v.Month++
	return v.Normalize()
}

// Select marks date as selected. Selecting the same date again returns an
// equal View.
func (v View) Select(date string) View {
	v.Selected = date
	return v
}

// Show moves to the month of date and selects it.
func (v View) Show(date time.Time) View {
	return View{Year: date.Year(), Month: date.Month(), Selected: model.FormatDate(date)}
}

// First is midnight UTC on the first day of the month.
func (v View) First() time.Time {
	return time.Date(v.Year, v.Month, 1, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the length of the month.
func (v View) DaysIn() int {
	return v.First().AddDate(0, 1, -1).Day()
}

// Range returns the first and last dates of the month in store format.
func (v View) Range() (start, end string) {
	first := v.First()
	return model.FormatDate(first), model.FormatDate(first.AddDate(0, 1, -1))
}

// Cell is one square of the grid. Day is 0 for padding.
type Cell struct {
	Day      int
	Date     string
	Today    bool
	Selected bool
	Colors   []string // one per category present, ordered by category id
}

// Empty reports whether c is padding outside the month.
func (c Cell) Empty() bool { return c.Day == 0 }

// Grid is a Monday-first month laid out row by row.
type Grid struct {
	Year  int
	Month time.Month
	Cells [Cells]Cell
}

// Rows returns the grid as six weeks of seven cells.
func (g Grid) Rows() [][]Cell {
	out := make([][]Cell, Rows)
	for r := range out {
		out[r] = g.Cells[r*Cols : (r+1)*Cols]
	}
	return out
}

// Cell returns the cell for date and whether it is in this month.
func (g Grid) Cell(date string) (Cell, bool) {
	for _, c := range g.Cells {
		if !c.Empty() && c.Date == date {
			return c, true
		}
	}
	return Cell{}, false
}

// Index returns the position of date in Cells, or -1.
func (g Grid) Index(date string) int {
	for i, c := range g.Cells {
		if !c.Empty() && c.Date == date {
			return i
		}
	}
	return -1
}

// Populated counts the non-padding cells.
func (g Grid) Populated() int {
	n := 0
	for _, c := range g.Cells {
		if !c.Empty() {
			n++
		}
	}
	return n
}

// ActivityLookup returns the activities recorded on date.
type ActivityLookup func(date string) ([]model.Activity, error)

// ColorLookup returns the colour of a category, or false if it does not
// exist.
type ColorLookup func(categoryID int) (string, bool)

// Offset is the column of the first day of the month, Monday being 0.
func Offset(v View) int {
	return (int(v.First().Weekday()) + 6) % 7
}

// Build lays out v's month. today and v.Selected drive the flags; the
// lookups drive the colour indicators.
func Build(v View, today time.Time, activitiesOn ActivityLookup, colorOf ColorLookup) (Grid, error) {
	v = v.Normalize()
	g := Grid{Year: v.Year, Month: v.Month}
	offset := Offset(v)
	first := v.First()

	for day := 1; day <= v.DaysIn(); day++ {
		date := model.FormatDate(first.AddDate(0, 0, day-1))
		cell := Cell{
			Day:      day,
			Date:     date,
			Today:    today.Year() == v.Year && today.Month() == v.Month && today.Day() == day,
			Selected: v.Selected != "" && v.Selected == date,
		}
		if activitiesOn != nil {
			acts, err := activitiesOn(date)
			if err != nil {
				return Grid{}, err
			}
			cell.Colors = Indicators(acts, colorOf)
		}
		g.Cells[offset+day-1] = cell
	}
	return g, nil
}

// Indicators returns one colour per distinct category among acts. Unknown
// categories contribute nothing.
func Indicators(acts []model.Activity, colorOf ColorLookup) []string {
	if len(acts) == 0 || colorOf == nil {
		return nil
	}
	seen := make(map[int]bool, len(acts))
	var cats []int
	for _, a := range acts {
		if !seen[a.CategoryID] {
			seen[a.CategoryID] = true
			cats = append(cats, a.CategoryID)
		}
	}
	sort.Ints(cats)
	var out []string
	for _, id := range cats {
		if color, ok := colorOf(id); ok {
			out = append(out, color)
		}
	}
	return out
}
