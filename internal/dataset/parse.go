// Package dataset turns raw tabular rows from the fetcher into typed
// interaction and reference records. Parsing is best-effort: missing text
// cells become empty strings and unparseable values fall back to defaults,
// matching the tolerance contract of the pipeline.
package dataset

import (
	"strconv"
	"strings"
	"time"
)

// normalizeCol lowercases and strips surrounding noise for header matching.
func normalizeCol(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mapColumnsNormalized builds a normalized column name → index map.
func mapColumnsNormalized(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[normalizeCol(col)] = i
	}
	return m
}

// getColN gets a column value by normalized name; absent columns and short
// rows yield the empty string.
func getColN(record []string, colIdx map[string]int, name string) string {
	idx, ok := colIdx[normalizeCol(name)]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseIntOr parses a string as an integer, returning def if parsing fails
// or the string is empty. Decimal-formatted integers ("2.0", spreadsheet
// exports do this) are accepted.
func parseIntOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return def
}

// dateLayouts are the formats accepted for service/due dates, tried in order.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"01-02-06 15:04:05",
	"01-02-06",
	"2006/01/02",
}

// excelEpoch is day zero of the 1900 date system used by xlsx serials.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseDateOrNil parses a date cell leniently. Unparseable or empty values
// are an explicit "no value", not an error: the record is retained and
// date-derived fields stay absent.
func parseDateOrNil(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	// Excel serial date (days since the 1900 epoch).
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		t := excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
		return &t
	}
	return nil
}
