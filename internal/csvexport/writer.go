// Package csvexport writes decoded EDM flights in the fixed CSV column
// schema used by the reference decoding tools.
package csvexport

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"edmdecode/internal/edm"
)

// columns is the field schema (uppercased) in fixed order; ToCSV writes
// DATE before it and LAT, LONG after it. Kept in lockstep with internal/edm's schema; the two
// packages intentionally don't share a single slice so this package
// owns its own output column naming independent of internal field keys.
var columns = []string{
	"EGT1", "EGT2", "EGT3", "EGT4", "EGT5", "EGT6",
	"CHT1", "CHT2", "CHT3", "CHT4", "CHT5", "CHT6",
	"CLD", "OIL_T", "MARK", "OIL_P", "CRB", "VOLT", "OAT", "USD", "FF",
	"HP", "MAP", "RPM", "HOURS", "ALT", "GSPD",
}

var fieldNames = []string{
	"egt1", "egt2", "egt3", "egt4", "egt5", "egt6",
	"cht1", "cht2", "cht3", "cht4", "cht5", "cht6",
	"cld", "oil_t", "mark", "oil_p", "crb", "volt", "oat", "usd", "ff",
	"hp", "map", "rpm", "hours", "alt", "gspd",
}

// Writer formats decoded flights as CSV.
type Writer struct {
	logger *logrus.Logger
}

// NewWriter creates a CSV writer that logs write errors via logger.
func NewWriter(logger *logrus.Logger) *Writer {
	return &Writer{logger: logger}
}

// ToCSV renders a whole flight's samples as a CSV string, including the
// header row and a trailing newline after the last row.
func (w *Writer) ToCSV(flight *edm.Flight) string {
	var b strings.Builder

	b.WriteString("DATE,")
	b.WriteString(strings.Join(columns, ","))
	b.WriteString(",LAT,LONG\n")

	for _, s := range flight.Samples {
		b.WriteString(s.Time.Format("2006-01-02 15:04:05"))
		for _, name := range fieldNames {
			b.WriteByte(',')
			b.WriteString(formatFloat(s.Fields[name]))
		}
		b.WriteByte(',')
		b.WriteString(formatCoord(s.Lat))
		b.WriteByte(',')
		b.WriteString(formatCoord(s.Long))
		b.WriteByte('\n')
	}

	return b.String()
}

// WriteFile renders a flight to CSV and writes it to path.
func (w *Writer) WriteFile(path string, flight *edm.Flight) error {
	csv := w.ToCSV(flight)
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		w.logger.WithError(err).WithField("path", path).Error("Failed to write CSV file")
		return fmt.Errorf("failed to write CSV file %s: %w", path, err)
	}
	w.logger.WithFields(logrus.Fields{
		"path":    path,
		"flight":  flight.Number,
		"samples": len(flight.Samples),
	}).Info("Wrote flight CSV")
	return nil
}

func formatFloat(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 6, 64)
}
