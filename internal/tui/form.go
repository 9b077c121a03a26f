package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/activitycal/internal/model"
	"github.com/idilsaglam/activitycal/internal/tracker"
)

const (
	fieldTitle = iota
	fieldCategory
	fieldDuration
	fieldNotes
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Category", "Duration (min)", "Notes"}

// form is the inline add/edit dialog. activityID is 0 when adding.
type form struct {
	activityID int
	date       string
	inputs     [fieldCount]textinput.Model
	focus      int
	err        string
}

func newForm(date string) *form {
	f := &form{date: date}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	f.inputs[fieldTitle].Placeholder = "Morning run"
	f.inputs[fieldCategory].Placeholder = "name or id"
	f.inputs[fieldDuration].Placeholder = "30"
	f.inputs[fieldDuration].CharLimit = 5
	f.inputs[fieldNotes].Placeholder = "optional"
	f.inputs[fieldTitle].Focus()
	return f
}

func editForm(a model.Activity, categoryName string) *form {
	f := newForm(a.Date)
	f.activityID = a.ID
	f.inputs[fieldTitle].SetValue(a.Title)
	f.inputs[fieldCategory].SetValue(categoryName)
	f.inputs[fieldDuration].SetValue(strconv.Itoa(a.Duration))
	f.inputs[fieldNotes].SetValue(a.Notes)
	f.inputs[fieldTitle].CursorEnd()
	return f
}

func (f *form) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) value(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }

// submit validates through the service and saves. It returns the id of the
// saved activity.
func (f *form) submit(svc *tracker.Service) (int, error) {
	cat, err := resolveCategory(svc, f.value(fieldCategory))
	if err != nil {
		return 0, err
	}
	duration, err := strconv.Atoi(f.value(fieldDuration))
	if err != nil {
		return 0, model.Invalid("duration", model.ErrInvalidDuration)
	}
	if f.activityID == 0 {
		return svc.AddActivity(f.value(fieldTitle), cat, f.date, duration, f.value(fieldNotes))
	}
	if err := svc.UpdateActivity(f.activityID, f.value(fieldTitle), cat, duration, f.value(fieldNotes)); err != nil {
		return 0, err
	}
	return f.activityID, nil
}

// resolveCategory accepts an exact name or a numeric id.
func resolveCategory(svc *tracker.Service, s string) (int, error) {
	if s == "" {
		return 0, model.Invalid("category", model.ErrUnknownCategory)
	}
	c, err := svc.CategoryByName(s)
	if err == nil {
		return c.ID, nil
	}
	if !errors.Is(err, tracker.ErrNotFound) {
		return 0, err
	}
	id, convErr := strconv.Atoi(s)
	if convErr != nil {
		return 0, model.Invalid("category", model.ErrUnknownCategory)
	}
	return id, nil
}

func (f *form) view() string {
	title := "Add activity on " + f.date
	if f.activityID != 0 {
		title = "Edit activity on " + f.date
	}
	if f.err != "" {
		title += "  " + errorStyle.Render(f.err)
	}
	lines := []string{titleStyle.Render(title)}
	for i, in := range f.inputs {
		label := mutedStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = accentStyle.Render(fieldLabels[i])
		}
		lines = append(lines, label, in.View())
	}
	lines = append(lines, helpStyle.Render("tab next field • enter save • esc cancel"))
	return strings.Join(lines, "\n")
}
