// Package pipeline implements the FCR classification pipeline: normalize,
// join against the reference table, map channels, build grouping keys,
// sequence repeated contacts, and assign the final FCR/SLA labels.
//
// The whole pipeline is a pure batch transform: same inputs, same outputs,
// no shared globals, no I/O. The only cross-record state is the sequence
// counter, which depends on input order (see sequence.go).
package pipeline

import (
	"strings"

	"github.com/scorandini/fcr-cli/internal/model"
)

// TopicKey builds the join key from topic, category, and subject:
// lower-cased and concatenated in that fixed order with no separator.
func TopicKey(topic, category, subject string) string {
	return strings.ToLower(topic) + strings.ToLower(category) + strings.ToLower(subject)
}

// NormalizeReferences lower-cases reference topic keys and substitutes the
// default threshold for missing interaction counts. Input order is
// preserved; it decides which duplicate survives deduplication.
func NormalizeReferences(refs []model.ReferenceRecord) []model.ReferenceRecord {
	out := make([]model.ReferenceRecord, len(refs))
	for i, ref := range refs {
		ref.TopicKey = strings.ToLower(strings.TrimSpace(ref.TopicKey))
		if ref.AllowedInteractions <= 0 {
			ref.AllowedInteractions = model.DefaultAllowedInteractions
		}
		out[i] = ref
	}
	return out
}
