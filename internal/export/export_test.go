package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/activitycal/internal/model"
)

func fixture() []model.Activity {
	return []model.Activity{
		{ID: 1, Title: "Run", CategoryID: 1, Date: "2025-01-10", Duration: 30},
		{ID: 2, Title: "Read, slowly", CategoryID: 2, Date: "2025-01-11", Duration: 45, Notes: `said "hi"`},
		{ID: 3, Title: "Orphan", CategoryID: 9, Date: "2025-01-12", Duration: 15, Notes: "n/a"},
	}
}

func TestWriteCSVGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, fixture(), model.SeedCategories()))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "activities_csv", buf.Bytes())
}

func TestWriteICS(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, WriteICS(&buf, fixture(), model.SeedCategories(), now))
	body := buf.String()

	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(body, "END:VCALENDAR\r\n"))
	assert.Equal(t, 3, strings.Count(body, "BEGIN:VEVENT"))
	assert.Contains(t, body, "DTSTAMP:20250201T120000Z")
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20250110\r\n")
	assert.Contains(t, body, "DTEND;VALUE=DATE:20250111\r\n")
	assert.Contains(t, body, `SUMMARY:Read\, slowly`)
	assert.Contains(t, body, "CATEGORIES:Unknown")
	assert.Contains(t, body, `DESCRIPTION:Lecture\, 45 min\nsaid "hi"`)
}

func TestWriteICSSkipsBadDates(t *testing.T) {
	var buf bytes.Buffer
	acts := []model.Activity{{ID: 1, Title: "x", CategoryID: 1, Date: "someday", Duration: 5}}
	require.NoError(t, WriteICS(&buf, acts, nil, time.Now()))
	assert.NotContains(t, buf.String(), "BEGIN:VEVENT")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWritePropagatesErrors(t *testing.T) {
	assert.Error(t, WriteICS(failingWriter{}, fixture(), nil, time.Now()))
	assert.Error(t, WriteCSV(failingWriter{}, fixture(), nil))
}

func TestWriteDispatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "CSV", fixture(), nil, time.Now()))
	assert.True(t, strings.HasPrefix(buf.String(), "Date,Title,Category"))

	assert.Error(t, Write(&buf, "xlsx", nil, nil, time.Now()))
}
