package dataset

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/scorandini/fcr-cli/internal/model"
)

const (
	refKeyColumn     = "temacategoriaassunto"
	refAllowedColumn = "interacoes"
)

// ParseReferences converts raw rows (header first) of the FCR reference
// table into reference records. The key column carries the topic key
// pre-concatenated by the upstream export; a missing or unparseable
// interaction count falls back to the default threshold.
//
// Row order is preserved: deduplication downstream keeps the first-seen
// row per key, so source order decides which duplicate survives.
func ParseReferences(rows [][]string) ([]model.ReferenceRecord, error) {
	if len(rows) == 0 {
		return nil, eris.New("dataset: reference: empty table")
	}

	colIdx := mapColumnsNormalized(rows[0])
	if _, ok := colIdx[refKeyColumn]; !ok {
		return nil, eris.Errorf("dataset: reference: column %q not found in header %v", refKeyColumn, rows[0])
	}

	records := make([]model.ReferenceRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, model.ReferenceRecord{
			TopicKey:            getColN(row, colIdx, refKeyColumn),
			AllowedInteractions: parseIntOr(getColN(row, colIdx, refAllowedColumn), model.DefaultAllowedInteractions),
		})
	}

	zap.L().Debug("dataset: parsed reference table", zap.Int("records", len(records)))
	return records, nil
}
