package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/activitycal/internal/calendar"
)

func plain(t *testing.T) {
	t.Helper()
	SetColorForcing(false, true)
	SetTheme("classic")
	t.Cleanup(func() { SetColorForcing(false, false) })
}

func TestHex(t *testing.T) {
	assert.Equal(t, "\033[38;2;255;87;51m", Hex("#FF5733"))
	assert.Equal(t, "\033[38;2;170;187;204m", Hex("#abc"))
	assert.Equal(t, "", Hex("#abcd"))
	assert.Equal(t, "", Hex("#zzzzzz"))
}

func TestColorForcing(t *testing.T) {
	SetColorForcing(true, false)
	t.Cleanup(func() { SetColorForcing(false, false) })
	assert.Equal(t, fgRed+"x"+reset, C(fgRed, "x"))

	SetColorForcing(true, true)
	assert.Equal(t, "x", C(fgRed, "x"))
}

func TestProgressBar(t *testing.T) {
	plain(t)
	assert.Equal(t, "█████░░░░░  50.0%", ProgressBar(50, 10))
	assert.Equal(t, "██████████ 100.0%", ProgressBar(150, 10))
	assert.Equal(t, "░░░░░   0.0%", ProgressBar(-3, 2))
}

func TestPanel(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	Panel(&buf, []string{"ab", "été"})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "┌─────┐", lines[0])
	assert.Equal(t, "│ ab  │", lines[1])
	assert.Equal(t, "│ été │", lines[2])
	assert.Equal(t, "└─────┘", lines[3])
}

func TestMonthLines(t *testing.T) {
	plain(t)
	v := calendar.View{Year: 2024, Month: time.February, Selected: "2024-02-02"}
	g, err := calendar.Build(v, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), nil, nil)
	require.NoError(t, err)
	g.Cells[4].Colors = []string{"#FF5733", "#33A8FF"}

	lines := MonthLines(g, "en")
	require.Len(t, lines, 3+calendar.Rows)
	assert.Equal(t, "February 2024", lines[0])
	assert.Equal(t, "Mon    Tue    Wed    Thu    Fri    Sat    Sun", lines[2])
	assert.Equal(t, "                      1*     2 ●●   3      4", lines[3])
	assert.Equal(t, "26     27     28     29", lines[7])
	assert.Equal(t, "", lines[8])
}

func TestOKAndFail(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	OK(&buf, "saved")
	Fail(&buf, "nope")
	assert.Equal(t, "✔ saved\n✖ nope\n", buf.String())
}
