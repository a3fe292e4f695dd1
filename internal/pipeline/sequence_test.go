package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scorandini/fcr-cli/internal/model"
)

func recordsWithKeys(keys ...string) []model.ClassifiedRecord {
	records := make([]model.ClassifiedRecord, len(keys))
	for i, k := range keys {
		records[i].GroupingKey = k
	}
	return records
}

func TestAssignSequenceIndexes_Monotonic(t *testing.T) {
	records := recordsWithKeys("a", "b", "a", "a", "b")

	AssignSequenceIndexes(records)

	// Per grouping key, indexes are strictly 1, 2, 3, ... in input order.
	assert.Equal(t, 1, records[0].SequenceIndex)
	assert.Equal(t, 1, records[1].SequenceIndex)
	assert.Equal(t, 2, records[2].SequenceIndex)
	assert.Equal(t, 3, records[3].SequenceIndex)
	assert.Equal(t, 2, records[4].SequenceIndex)
}

func TestAssignSequenceIndexes_EmptyKeyNotSequenced(t *testing.T) {
	// The whole ineligible bucket shares the empty key; none of it is
	// ever counted.
	records := recordsWithKeys("", "a", "", "")

	AssignSequenceIndexes(records)

	assert.Equal(t, 0, records[0].SequenceIndex)
	assert.Equal(t, 1, records[1].SequenceIndex)
	assert.Equal(t, 0, records[2].SequenceIndex)
	assert.Equal(t, 0, records[3].SequenceIndex)
}

func TestAssignSequenceIndexes_OrderIsLoadBearing(t *testing.T) {
	// Reordering the input changes which record gets which index. The
	// counter must therefore always run over records in original input
	// order; this test documents that requirement.
	first := recordsWithKeys("a", "b", "a")
	second := recordsWithKeys("a", "a", "b")

	AssignSequenceIndexes(first)
	AssignSequenceIndexes(second)

	assert.Equal(t, []int{1, 1, 2}, []int{first[0].SequenceIndex, first[1].SequenceIndex, first[2].SequenceIndex})
	assert.Equal(t, []int{1, 2, 1}, []int{second[0].SequenceIndex, second[1].SequenceIndex, second[2].SequenceIndex})
}
