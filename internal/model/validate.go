package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptyTitle      = errors.New("title is required")
	ErrEmptyName       = errors.New("name is required")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrInvalidColor    = errors.New("color must be hexadecimal, e.g. #FF5733")
	ErrUnknownCategory = errors.New("unknown category")
)

// ValidationError names the offending field. It unwraps to one of the
// sentinels above.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// Invalid is exported for layers that check fields the model cannot, such as
// category existence.
func Invalid(field string, err error) error { return invalid(field, err) }

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)
	unsafeChars  = regexp.MustCompile(`[<>]`)
)

// ValidateDate reports whether s is a real calendar date in YYYY-MM-DD form.
func ValidateDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func ValidateDuration(minutes int) bool { return minutes > 0 }

// ValidateColor accepts #RGB and #RRGGBB.
func ValidateColor(s string) bool { return colorPattern.MatchString(s) }

// Sanitize drops angle brackets, trims, and normalises to NFC so that
// visually equal titles compare equal.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	s = unsafeChars.ReplaceAllString(s, "")
	return norm.NFC.String(strings.TrimSpace(s))
}

// FormatDate renders t in the on-disk layout.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// ParseDate parses an on-disk date in the local zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, invalid("date", ErrInvalidDate)
	}
	return t, nil
}
