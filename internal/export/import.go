package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/scorandini/fcr-cli/internal/model"
)

// requiredColumns are the derived columns the presentation layer cannot
// work without. A classified table missing one of these is a schema
// error, surfaced to the caller instead of silently reporting nothing.
var requiredColumns = []string{
	"topic_key", "allowed_interactions", "fcr_eligible",
	"sequence_index", "fcr_status", "service_month",
}

// ReadCSVFile reads a classified table previously written by WriteCSV.
func ReadCSVFile(path string) ([]model.ClassifiedRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "export: open classified csv")
	}
	defer f.Close() //nolint:errcheck
	return ReadCSV(f)
}

// ReadCSV reads a classified table from CSV, validating that every
// required derived column is present before parsing any rows.
func ReadCSV(r io.Reader) ([]model.ClassifiedRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, eris.Wrap(err, "export: read csv header")
	}

	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, eris.Errorf("export: required column %q not found in classified table", col)
		}
	}

	get := func(row []string, name string) string {
		idx, ok := colIdx[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var records []model.ClassifiedRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "export: read csv row")
		}

		rec := model.ClassifiedRecord{
			InteractionRecord: model.InteractionRecord{
				Topic:            get(row, "topic"),
				Category:         get(row, "category"),
				Subject:          get(row, "subject"),
				ChannelSlug:      get(row, "channel_slug"),
				Subtype:          get(row, "subtype"),
				Outcome:          get(row, "outcome"),
				ChannelOrderCode: get(row, "channel_order_code"),
				BrandedStoreSlug: get(row, "branded_store_slug"),
				Reason:           get(row, "reason"),
				ServiceDate:      parseDate(get(row, "service_date")),
				DueDate:          parseDate(get(row, "due_date")),
			},
			TopicKey:            get(row, "topic_key"),
			AllowedInteractions: parseInt(get(row, "allowed_interactions")),
			BuyerInteraction:    parseBool(get(row, "buyer_interaction")),
			DaysOverSLA:         parseIntPtr(get(row, "days_over_sla")),
			SLABreach:           parseBool(get(row, "sla_breach")),
			FCREligible:         parseBool(get(row, "fcr_eligible")),
			CanonicalChannel:    get(row, "canonical_channel"),
			GroupingKey:         get(row, "grouping_key"),
			SequenceIndex:       parseInt(get(row, "sequence_index")),
			FCRStatus:           get(row, "fcr_status"),
			ServiceMonth:        get(row, "service_month"),
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{dateLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func parseInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func parseIntPtr(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseBool(s string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(s))
	return v
}
