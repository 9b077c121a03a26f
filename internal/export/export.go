// Package export writes activities out as CSV or iCalendar.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/activitycal/internal/model"
	"github.com/idilsaglam/activitycal/internal/stats"
)

const (
	FormatCSV = "csv"
	FormatICS = "ics"

	icsProductID = "-//activitycal//Activity Calendar//EN"
)

// Formats lists what Write accepts.
var Formats = []string{FormatCSV, FormatICS}

// Write dispatches on format.
func Write(w io.Writer, format string, acts []model.Activity, cats []model.Category, now time.Time) error {
	switch strings.ToLower(format) {
	case FormatCSV:
		return WriteCSV(w, acts, cats)
	case FormatICS:
		return WriteICS(w, acts, cats, now)
	}
	return fmt.Errorf("unknown export format %q: must be one of %v", format, Formats)
}

func categoryNames(cats []model.Category) map[int]string {
	out := make(map[int]string, len(cats))
	for _, c := range cats {
		out[c.ID] = c.Name
	}
	return out
}

func nameOf(names map[int]string, id int) string {
	if n, ok := names[id]; ok {
		return n
	}
	return stats.UnknownName
}

// WriteCSV writes one row per activity under a fixed header.
func WriteCSV(w io.Writer, acts []model.Activity, cats []model.Category) error {
	names := categoryNames(cats)
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Title", "Category", "Duration (min)", "Notes"}); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, a := range acts {
		row := []string{a.Date, a.Title, nameOf(names, a.CategoryID), strconv.Itoa(a.Duration), a.Notes}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv row %d: %w", a.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// icsWriter keeps the first write error so the body can be written without
// checking every line.
type icsWriter struct {
	w   io.Writer
	err error
}

func (iw *icsWriter) line(format string, args ...any) {
	if iw.err != nil {
		return
	}
	_, iw.err = fmt.Fprintf(iw.w, format+"\r\n", args...)
}

// WriteICS writes an iCalendar feed with one all-day event per activity.
// Activities with unparseable dates are skipped.
func WriteICS(w io.Writer, acts []model.Activity, cats []model.Category, now time.Time) error {
	names := categoryNames(cats)
	iw := &icsWriter{w: w}
	stamp := now.UTC().Format("20060102T150405Z")

	iw.line("BEGIN:VCALENDAR")
	iw.line("VERSION:2.0")
	iw.line("PRODID:%s", icsProductID)
	iw.line("CALSCALE:GREGORIAN")
	iw.line("X-WR-CALNAME:Activities")

	for _, a := range acts {
		day, err := time.Parse(model.DateLayout, a.Date)
		if err != nil {
			continue
		}
		desc := fmt.Sprintf("%s, %d min", nameOf(names, a.CategoryID), a.Duration)
		if a.Notes != "" {
			desc += "\n" + a.Notes
		}
		iw.line("BEGIN:VEVENT")
		iw.line("UID:activity-%d-%s@activitycal", a.ID, day.Format("20060102"))
		iw.line("DTSTAMP:%s", stamp)
		iw.line("DTSTART;VALUE=DATE:%s", day.Format("20060102"))
		iw.line("DTEND;VALUE=DATE:%s", day.AddDate(0, 0, 1).Format("20060102"))
		iw.line("SUMMARY:%s", escapeText(a.Title))
		iw.line("CATEGORIES:%s", escapeText(nameOf(names, a.CategoryID)))
		iw.line("DESCRIPTION:%s", escapeText(desc))
		iw.line("END:VEVENT")
	}

	iw.line("END:VCALENDAR")
	return iw.err
}

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)

func escapeText(s string) string { return icsEscaper.Replace(s) }
