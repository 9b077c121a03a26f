package calendar

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var monthNames = map[string][12]string{
	"en": {"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"},
	"fr": {"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
}

var weekdayNames = map[string][7]string{
	"en": {"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	"fr": {"Lun", "Mar", "Mer", "Jeu", "Ven", "Sam", "Dim"},
}

// Locales lists the supported header languages.
func Locales() []string { return []string{"en", "fr"} }

// SupportedLocale reports whether lang has month and weekday names.
func SupportedLocale(lang string) bool {
	_, ok := monthNames[lang]
	return ok
}

// Title renders "October 2026" (or "Octobre 2026") for v.
func Title(v View, lang string) string {
	v = v.Normalize()
	names, ok := monthNames[lang]
	if !ok {
		lang, names = "en", monthNames["en"]
	}
	caser := cases.Title(language.Make(lang))
	return caser.String(fmt.Sprintf("%s %d", names[v.Month-1], v.Year))
}

// Weekdays returns the Monday-first column headers.
func Weekdays(lang string) []string {
	names, ok := weekdayNames[lang]
	if !ok {
		names = weekdayNames["en"]
	}
	return names[:]
}

// LongDate renders a date for the day panel, e.g. "Wednesday 15 October 2026".
func LongDate(t time.Time, lang string) string {
	if lang == "fr" {
		days := [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}
		s := fmt.Sprintf("%s %d %s %d", days[t.Weekday()], t.Day(), monthNames["fr"][t.Month()-1], t.Year())
		return strings.ToUpper(s[:1]) + s[1:]
	}
	return t.Format("Monday 2 January 2006")
}
