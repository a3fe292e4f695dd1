package pipeline

import (
	"github.com/scorandini/fcr-cli/internal/model"
)

// AssignSequenceIndexes gives every record with a non-empty grouping key a
// 1-based occurrence index within that key, in slice order.
//
// Order is a hard correctness requirement here: the index of a record is
// defined by how many earlier records shared its grouping key, so the
// scan must run single-threaded over the records in original input
// order. Records with an empty grouping key (the ineligible bucket) are
// not sequenced and keep index zero.
func AssignSequenceIndexes(records []model.ClassifiedRecord) {
	counts := make(map[string]int)
	for i := range records {
		key := records[i].GroupingKey
		if key == "" {
			continue
		}
		counts[key]++
		records[i].SequenceIndex = counts[key]
	}
}
