package pipeline

import (
	"go.uber.org/zap"

	"github.com/scorandini/fcr-cli/internal/channelmap"
	"github.com/scorandini/fcr-cli/internal/model"
)

// Classify runs the full pipeline over one input snapshot and returns the
// classified output table. Pure: identical inputs always produce an
// identical output slice, and no input slice is mutated. The output has
// exactly one row per input interaction, in input order.
func Classify(interactions []model.InteractionRecord, refs []model.ReferenceRecord, channels *channelmap.Table) []model.ClassifiedRecord {
	refIndex := BuildReferenceIndex(NormalizeReferences(refs))

	records := make([]model.ClassifiedRecord, len(interactions))
	eligible := 0
	unmapped := 0
	for i, rec := range interactions {
		cr := Derive(rec, refIndex)
		ApplyChannel(&cr, channels)
		ApplyEligibility(&cr)
		if cr.FCREligible {
			eligible++
			if cr.CanonicalChannel == "" {
				unmapped++
			}
		}
		records[i] = cr
	}

	AssignSequenceIndexes(records)
	AssignStatuses(records)

	zap.L().Info("pipeline: classified interactions",
		zap.Int("records", len(records)),
		zap.Int("reference_keys", len(refIndex)),
		zap.Int("fcr_eligible", eligible),
		zap.Int("eligible_unmapped_channel", unmapped),
	)

	return records
}
