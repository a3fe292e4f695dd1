// Package report implements the read-only aggregations the presentation
// layer issues over the classified output table: month filtering, value
// counts, daily time series, and the FCR status breakdown. Nothing here
// mutates records.
package report

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/scorandini/fcr-cli/internal/model"
)

// CountRow is one row of a value-count aggregation.
type CountRow struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// DayCount is one point of the daily record-count series.
type DayCount struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// FilterMonth returns the records whose service month equals month
// (YYYY-MM). Records without a service date have no service month and are
// excluded from every month slice.
func FilterMonth(records []model.ClassifiedRecord, month string) []model.ClassifiedRecord {
	var out []model.ClassifiedRecord
	for _, r := range records {
		if r.ServiceMonth == month {
			out = append(out, r)
		}
	}
	return out
}

// FilterStatus returns the records with the given FCR status.
func FilterStatus(records []model.ClassifiedRecord, status string) []model.ClassifiedRecord {
	var out []model.ClassifiedRecord
	for _, r := range records {
		if r.FCRStatus == status {
			out = append(out, r)
		}
	}
	return out
}

// Months lists the distinct service months present, sorted ascending.
func Months(records []model.ClassifiedRecord) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		if r.ServiceMonth != "" {
			seen[r.ServiceMonth] = true
		}
	}
	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

// ValueCounts counts records per extracted value, ordered by count
// descending, then value ascending. The deterministic tie-break keeps
// report output stable across runs.
func ValueCounts(records []model.ClassifiedRecord, extract func(model.ClassifiedRecord) string) []CountRow {
	counts := make(map[string]int)
	for _, r := range records {
		counts[extract(r)]++
	}
	rows := make([]CountRow, 0, len(counts))
	for v, c := range counts {
		rows = append(rows, CountRow{Value: v, Count: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Value < rows[j].Value
	})
	return rows
}

// FieldSelector resolves a reportable field name to its extractor.
// Unknown names are a caller error, not a data-quality degradation.
func FieldSelector(name string) (func(model.ClassifiedRecord) string, error) {
	switch name {
	case "topic":
		return func(r model.ClassifiedRecord) string { return r.Topic }, nil
	case "category":
		return func(r model.ClassifiedRecord) string { return r.Category }, nil
	case "subject":
		return func(r model.ClassifiedRecord) string { return r.Subject }, nil
	case "canonical_channel":
		return func(r model.ClassifiedRecord) string { return r.CanonicalChannel }, nil
	default:
		return nil, eris.Errorf("report: unknown field %q", name)
	}
}

// DailySeries counts records per service day, sorted by day ascending.
// Records without a service date are excluded.
func DailySeries(records []model.ClassifiedRecord) []DayCount {
	counts := make(map[string]int)
	for _, r := range records {
		if !r.HasServiceDate() {
			continue
		}
		counts[r.ServiceDay().Format("2006-01-02")]++
	}
	days := make([]DayCount, 0, len(counts))
	for d, c := range counts {
		days = append(days, DayCount{Day: d, Count: c})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days
}

// StatusBreakdown counts the non-empty FCR statuses. Records that were
// not evaluated (empty status) are excluded.
func StatusBreakdown(records []model.ClassifiedRecord) []CountRow {
	evaluated := make([]model.ClassifiedRecord, 0, len(records))
	for _, r := range records {
		if r.FCRStatus != model.FCRStatusNotEvaluated {
			evaluated = append(evaluated, r)
		}
	}
	return ValueCounts(evaluated, func(r model.ClassifiedRecord) string { return r.FCRStatus })
}
