package dataset

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/scorandini/fcr-cli/internal/model"
)

// interactionColumns are the expected headers of the interactions table.
// Individual columns may be missing (their values coerce to empty), but a
// header sharing none of them is a different file entirely.
var interactionColumns = []string{
	"topic", "category", "subject", "channel_slug", "subtype", "outcome",
	"channel_order_code", "branded_store_slug", "reason",
	"service_date", "due_date",
}

// ParseInteractions converts raw rows (header first) into interaction
// records. Null text cells become empty strings and bad dates become
// absent values; neither is an error.
func ParseInteractions(rows [][]string) ([]model.InteractionRecord, error) {
	if len(rows) == 0 {
		return nil, eris.New("dataset: interactions: empty table")
	}

	colIdx := mapColumnsNormalized(rows[0])
	if !headerRecognized(colIdx, interactionColumns) {
		return nil, eris.Errorf("dataset: interactions: header %v matches no expected column", rows[0])
	}

	records := make([]model.InteractionRecord, 0, len(rows)-1)
	missingDates := 0
	for _, row := range rows[1:] {
		rec := model.InteractionRecord{
			Topic:            getColN(row, colIdx, "topic"),
			Category:         getColN(row, colIdx, "category"),
			Subject:          getColN(row, colIdx, "subject"),
			ChannelSlug:      getColN(row, colIdx, "channel_slug"),
			Subtype:          getColN(row, colIdx, "subtype"),
			Outcome:          getColN(row, colIdx, "outcome"),
			ChannelOrderCode: getColN(row, colIdx, "channel_order_code"),
			BrandedStoreSlug: getColN(row, colIdx, "branded_store_slug"),
			Reason:           getColN(row, colIdx, "reason"),
			ServiceDate:      parseDateOrNil(getColN(row, colIdx, "service_date")),
			DueDate:          parseDateOrNil(getColN(row, colIdx, "due_date")),
		}
		if rec.ServiceDate == nil {
			missingDates++
		}
		records = append(records, rec)
	}

	zap.L().Debug("dataset: parsed interactions",
		zap.Int("records", len(records)),
		zap.Int("missing_service_date", missingDates),
	)
	return records, nil
}

// headerRecognized reports whether at least one expected column is present.
func headerRecognized(colIdx map[string]int, expected []string) bool {
	for _, name := range expected {
		if _, ok := colIdx[normalizeCol(name)]; ok {
			return true
		}
	}
	return false
}
