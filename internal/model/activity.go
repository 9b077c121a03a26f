package model

import "strings"

// DateLayout is the on-disk date format. Zero padding makes lexicographic
// order equal to chronological order.
const DateLayout = "2006-01-02"

// Activity is a single dated entry.
type Activity struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	CategoryID int    `json:"category_id"`
	Date       string `json:"date"`
	Duration   int    `json:"duration"` // minutes
	Notes      string `json:"notes"`
}

// NewActivity builds an activity with a sanitised title and checks every
// field that can be checked without the category table.
func NewActivity(title string, categoryID int, date string, duration int, notes string) (Activity, error) {
	title = Sanitize(title)
	if title == "" {
		return Activity{}, invalid("title", ErrEmptyTitle)
	}
	if categoryID < 1 {
		return Activity{}, invalid("category", ErrUnknownCategory)
	}
	date = strings.TrimSpace(date)
	if !ValidateDate(date) {
		return Activity{}, invalid("date", ErrInvalidDate)
	}
	if !ValidateDuration(duration) {
		return Activity{}, invalid("duration", ErrInvalidDuration)
	}
	return Activity{
		Title:      title,
		CategoryID: categoryID,
		Date:       date,
		Duration:   duration,
		Notes:      strings.TrimSpace(notes),
	}, nil
}

// Document is the whole activities file.
type Document struct {
	Categories []Category `json:"categories"`
	Activities []Activity `json:"activities"`
}

// Journal is the journal file. Nothing reads or writes entries yet.
type Journal struct {
	JournalEntries []any `json:"journal_entries"`
}
