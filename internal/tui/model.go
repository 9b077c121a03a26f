// Package tui is the interactive calendar: a month grid with colour
// indicators, the selected day's activities beside it, and inline
// add/edit/delete. Every change goes straight to the store.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/activitycal/internal/calendar"
	"github.com/idilsaglam/activitycal/internal/log"
	"github.com/idilsaglam/activitycal/internal/model"
	"github.com/idilsaglam/activitycal/internal/stats"
	"github.com/idilsaglam/activitycal/internal/tracker"
)

// Options configure the TUI.
type Options struct {
	Locale string
	Now    func() time.Time
	Logger *log.Logger
}

// Model implements tea.Model.
type Model struct {
	svc  *tracker.Service
	log  *log.Logger
	now  func() time.Time
	lang string
	keys keyMap
	help help.Model

	view   calendar.View
	grid   calendar.Grid
	names  map[int]string
	colors map[int]string
	day    []model.Activity // activities of view.Selected

	listFocus bool
	cursor    int // index into day when listFocus

	form *form

	undo   *model.Activity // last deleted, single level
	status string
	err    string

	width, height int
}

// New opens on the current month with today selected.
func New(svc *tracker.Service, opt Options) Model {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.Logger == nil {
		opt.Logger = log.Discard()
	}
	if !calendar.SupportedLocale(opt.Locale) {
		opt.Locale = "en"
	}
	now := opt.Now()
	m := Model{
		svc:  svc,
		log:  opt.Logger.WithComponent("tui"),
		now:  opt.Now,
		lang: opt.Locale,
		keys: defaultKeys(),
		help: help.New(),
		view: calendar.NewView(now).Select(model.FormatDate(now)),
	}
	m.reload()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(svc *tracker.Service, opt Options) error {
	p := tea.NewProgram(New(svc, opt), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// View state accessors, used by tests and the CLI.
func (m Model) CalendarView() calendar.View     { return m.view }
func (m Model) Grid() calendar.Grid             { return m.grid }
func (m Model) DayActivities() []model.Activity { return m.day }
func (m Model) Err() string                     { return m.err }
func (m Model) Status() string                  { return m.status }
func (m Model) Editing() bool                   { return m.form != nil }

// reload recomputes the grid and the day list from the store.
func (m *Model) reload() {
	grid, _, err := calendar.BuildFrom(m.svc, m.view, m.now())
	if err != nil {
		m.fail(err)
		return
	}
	m.grid = grid

	cats, err := m.svc.Categories()
	if err != nil {
		m.fail(err)
		return
	}
	m.names = make(map[int]string, len(cats))
	m.colors = make(map[int]string, len(cats))
	for _, c := range cats {
		m.names[c.ID] = c.Name
		m.colors[c.ID] = c.Color
	}

	m.day = nil
	if m.view.Selected != "" {
		day, err := m.svc.ActivitiesOn(m.view.Selected)
		if err != nil {
			m.fail(err)
			return
		}
		m.day = day
	}
	if m.cursor >= len(m.day) {
		m.cursor = len(m.day) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if len(m.day) == 0 {
		m.listFocus = false
	}
}

func (m *Model) fail(err error) {
	m.err = err.Error()
	m.status = ""
	m.log.Error("operation failed", "error", err)
}

func (m *Model) ok(msg string) {
	m.status = msg
	m.err = ""
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.updateNormal(msg)
	}
	if m.form != nil {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		return m, nil
	case "tab", "down":
		return m, m.form.move(1)
	case "shift+tab", "up":
		return m, m.form.move(-1)
	case "enter":
		editing := m.form.activityID != 0
		id, err := m.form.submit(m.svc)
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.form = nil
		if editing {
			m.ok(fmt.Sprintf("updated #%d", id))
		} else {
			m.ok(fmt.Sprintf("added #%d", id))
		}
		m.reload()
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, k.Focus):
		m.listFocus = !m.listFocus && len(m.day) > 0
	case key.Matches(msg, k.PrevMonth):
		m.view = m.view.Prev()
		m.reload()
	case key.Matches(msg, k.NextMonth):
		m.view = m.view.Next()
		m.reload()
	case key.Matches(msg, k.Today):
		m.view = m.view.Show(m.now())
		m.reload()
	case key.Matches(msg, k.Left):
		m.moveDay(-1)
	case key.Matches(msg, k.Right):
		m.moveDay(1)
	case key.Matches(msg, k.Up):
		if m.listFocus {
			if m.cursor > 0 {
				m.cursor--
			}
		} else {
			m.moveDay(-7)
		}
	case key.Matches(msg, k.Down):
		if m.listFocus {
			if m.cursor < len(m.day)-1 {
				m.cursor++
			}
		} else {
			m.moveDay(7)
		}
	case key.Matches(msg, k.Add):
		if m.view.Selected == "" {
			m.fail(fmt.Errorf("select a date first"))
			return m, nil
		}
		m.form = newForm(m.view.Selected)
		return m, textinput.Blink
	case key.Matches(msg, k.Edit):
		a, ok := m.current()
		if !ok {
			m.fail(fmt.Errorf("select an activity to edit"))
			return m, nil
		}
		m.form = editForm(a, m.categoryName(a.CategoryID))
		return m, textinput.Blink
	case key.Matches(msg, k.Delete):
		a, ok := m.current()
		if !ok {
			m.fail(fmt.Errorf("select an activity to delete"))
			return m, nil
		}
		if err := m.svc.DeleteActivity(a.ID); err != nil {
			m.fail(err)
			return m, nil
		}
		m.undo = &a
		m.ok(fmt.Sprintf("deleted %q (u to undo)", a.Title))
		m.reload()
	case key.Matches(msg, k.Undo):
		if m.undo == nil {
			return m, nil
		}
		a := *m.undo
		id, err := m.svc.AddActivity(a.Title, a.CategoryID, a.Date, a.Duration, a.Notes)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.undo = nil
		m.ok(fmt.Sprintf("restored as #%d", id))
		m.reload()
	}
	return m, nil
}

// current is the activity under the cursor. With the calendar focused it is
// the first activity of the day.
func (m Model) current() (model.Activity, bool) {
	if len(m.day) == 0 {
		return model.Activity{}, false
	}
	if !m.listFocus {
		return m.day[0], true
	}
	return m.day[m.cursor], true
}

func (m *Model) moveDay(delta int) {
	base := m.now()
	if m.view.Selected != "" {
		if t, err := model.ParseDate(m.view.Selected); err == nil {
			base = t
		}
	}
	m.view = m.view.Show(base.AddDate(0, 0, delta))
	m.cursor = 0
	m.reload()
}

func (m Model) categoryName(id int) string {
	if n, ok := m.names[id]; ok {
		return n
	}
	return stats.UnknownName
}

// -------------- rendering ----------------

func (m Model) View() string {
	left := m.calendarView()
	right := m.dayView()
	body := lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(left), " ", panelStyle.Render(right))

	var footer []string
	if m.form != nil {
		footer = append(footer, panelStyle.Render(m.form.view()))
	}
	switch {
	case m.err != "":
		footer = append(footer, errorStyle.Render("✖ "+m.err))
	case m.status != "":
		footer = append(footer, successStyle.Render("✔ "+m.status))
	}
	footer = append(footer, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{body}, footer...)...)
}

const cellWidth = 5

func (m Model) calendarView() string {
	lines := []string{titleStyle.Render(calendar.Title(m.view, m.lang)), ""}
	var head []string
	for _, d := range calendar.Weekdays(m.lang) {
		head = append(head, accentStyle.Render(fmt.Sprintf("%-*s", cellWidth, d)))
	}
	lines = append(lines, strings.Join(head, " "))

	for _, week := range m.grid.Rows() {
		var nums, dots []string
		for _, c := range week {
			n, d := m.cellView(c)
			nums = append(nums, n)
			dots = append(dots, d)
		}
		lines = append(lines, strings.Join(nums, " "), strings.Join(dots, " "))
	}
	return strings.Join(lines, "\n")
}

func (m Model) cellView(c calendar.Cell) (num, dots string) {
	blank := strings.Repeat(" ", cellWidth)
	if c.Empty() {
		return blank, blank
	}
	num = fmt.Sprintf("%-*d", cellWidth, c.Day)
	switch {
	case c.Selected:
		num = selectedStyle.Render(num)
	case c.Today:
		num = todayStyle.Render(num)
	}
	shown := 0
	for _, col := range c.Colors {
		if shown == cellWidth {
			break
		}
		dots += swatch(col)
		shown++
	}
	return num, dots + strings.Repeat(" ", cellWidth-shown)
}

func (m Model) dayView() string {
	if m.view.Selected == "" {
		return mutedStyle.Render("no date selected")
	}
	header := m.view.Selected
	if t, err := model.ParseDate(m.view.Selected); err == nil {
		header = calendar.LongDate(t, m.lang)
	}
	lines := []string{titleStyle.Render(header), ""}
	if len(m.day) == 0 {
		lines = append(lines, mutedStyle.Render("no activities"))
		return strings.Join(lines, "\n")
	}
	total := 0
	for i, a := range m.day {
		total += a.Duration
		prefix := "  "
		if m.listFocus && i == m.cursor {
			prefix = selectedStyle.Render("> ")
		}
		line := fmt.Sprintf("%s%s %s  %s  %s", prefix, swatch(m.colorOf(a.CategoryID)), a.Title,
			mutedStyle.Render(m.categoryName(a.CategoryID)), stats.FormatMinutes(a.Duration))
		lines = append(lines, line)
		if a.Notes != "" {
			lines = append(lines, "    "+mutedStyle.Render(a.Notes))
		}
	}
	lines = append(lines, "", mutedStyle.Render("total "+stats.FormatMinutes(total)))
	return strings.Join(lines, "\n")
}

func (m Model) colorOf(id int) string {
	if c, ok := m.colors[id]; ok {
		return c
	}
	return stats.UnknownColor
}
