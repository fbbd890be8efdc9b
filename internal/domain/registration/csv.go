package registration

import (
	"io"
	"strconv"
	"strings"
	"time"
)

// CSVHeader is the fixed column set of an export.
var CSVHeader = []string{"#", "Name", "Email", "Phone", "Department", "Motivation", "Positions", "Timestamp"}

// Separators used when flattening Positions.
const (
	DisplaySeparator = ", "
	CSVSeparator     = "; "
)

// Timestamp layouts mirroring the en-IN locale short and medium styles.
const (
	TableTimeLayout = "02/01/06, 3:04 pm"
	CSVTimeLayout   = "02/01/2006, 3:04:05 pm"
)

// FormatTimestamp renders t in loc using layout.
// The lowercase am/pm marker is produced by the layout itself.
func FormatTimestamp(t time.Time, loc *time.Location, layout string) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(layout)
}

// CSVFilename returns the download name for an export taken at now.
func CSVFilename(now time.Time) string {
	return "TIC_Club_Applications_" + now.UTC().Format("2006-01-02") + ".csv"
}

// quote wraps v in double quotes, doubling any embedded quote.
func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// CSVRow returns one exported line for r at 1-based position index.
// PRE: index >= 1
// POST: every field is quoted; positions joined with CSVSeparator
func CSVRow(index int, r Registration, loc *time.Location) string {
	fields := []string{
		strconv.Itoa(index),
		r.Name,
		r.Email,
		r.Phone,
		r.Department,
		r.Motivation,
		strings.Join(r.Positions, CSVSeparator),
		FormatTimestamp(r.Timestamp, loc, CSVTimeLayout),
	}
	for i, f := range fields {
		fields[i] = quote(f)
	}
	return strings.Join(fields, ",")
}

// WriteCSV writes the full export document for regs to w.
// Rows are newline-joined without a trailing newline.
// PRE: len(regs) > 0
// POST: header plus one row per registration in insertion order, or ErrNoRegistrations
func WriteCSV(w io.Writer, regs []Registration, loc *time.Location) error {
	if len(regs) == 0 {
		return ErrNoRegistrations
	}
	lines := make([]string, 0, len(regs)+1)
	lines = append(lines, strings.Join(CSVHeader, ","))
	for i, r := range regs {
		lines = append(lines, CSVRow(i+1, r, loc))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}
