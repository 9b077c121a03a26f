package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/activitycal/internal/calendar"
)

// ProgressBar renders a bar for pct (0..100) followed by the percentage.
func ProgressBar(pct float64, width int) string {
	if width < 5 {
		width = 5
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	t := Current()
	filled := int(pct / 100 * float64(width))
	bar := strings.Repeat(t.Bar, filled) + strings.Repeat(t.BarEmpty, width-filled)
	return fmt.Sprintf("%s %5.1f%%", bar, pct)
}

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if vis := lipgloss.Width(ln); vis > maxw {
			maxw = vis
		}
	}
	pad := func(s string) string {
		if vis := lipgloss.Width(s); vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Fprintln(w, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(w, t.V+" "+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}

const cellWidth = 6

// MonthLines renders g as a title, a weekday header and six week rows. Each
// day shows its number, a today marker and one dot per category colour.
func MonthLines(g calendar.Grid, lang string) []string {
	t := Current()
	v := calendar.View{Year: g.Year, Month: g.Month}
	lines := []string{C(t.Title, calendar.Title(v, lang)), ""}

	var head []string
	for _, d := range calendar.Weekdays(lang) {
		head = append(head, fmt.Sprintf("%-*s", cellWidth, d))
	}
	lines = append(lines, C(t.Accent, strings.TrimRight(strings.Join(head, " "), " ")))

	for _, week := range g.Rows() {
		var cells []string
		for _, c := range week {
			cells = append(cells, dayCell(c))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	return lines
}

func dayCell(c calendar.Cell) string {
	t := Current()
	if c.Empty() {
		return strings.Repeat(" ", cellWidth)
	}
	num := fmt.Sprintf("%2d", c.Day)
	mark := " "
	switch {
	case c.Selected:
		num = C(t.Selected, num)
	case c.Today:
		num = C(t.Today, num)
	}
	if c.Today {
		mark = "*"
	}
	dots := ""
	shown := 0
	for _, col := range c.Colors {
		if shown == cellWidth-3 {
			break
		}
		dots += Swatch(col, t.Dot)
		shown++
	}
	return num + mark + dots + strings.Repeat(" ", cellWidth-3-shown)
}
