package pipeline

import (
	"go.uber.org/zap"

	"github.com/scorandini/fcr-cli/internal/model"
)

// BuildReferenceIndex deduplicates normalized reference records on topic
// key and returns the lookup index used by the join stage.
//
// Duplicate keys are a data-quality fact of the reference file, not an
// error: the first row in source order wins and later rows are dropped.
// Callers must pass records in source file order; which duplicate
// survives decides the threshold every matching interaction gets.
func BuildReferenceIndex(refs []model.ReferenceRecord) map[string]int {
	index := make(map[string]int, len(refs))
	dropped := 0
	for _, ref := range refs {
		if _, seen := index[ref.TopicKey]; seen {
			dropped++
			continue
		}
		index[ref.TopicKey] = ref.AllowedInteractions
	}
	if dropped > 0 {
		zap.L().Debug("pipeline: dropped duplicate reference keys",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(index)),
		)
	}
	return index
}
