package pipeline

import (
	"github.com/scorandini/fcr-cli/internal/model"
)

// Status returns the FCR label for a record that has been through every
// earlier stage. Ineligible records are not evaluated; eligible records
// are resolved on first contact unless their occurrence index exceeds the
// allowed number of interactions.
func Status(cr model.ClassifiedRecord) string {
	if !cr.FCREligible {
		return model.FCRStatusNotEvaluated
	}
	if cr.SequenceIndex > cr.AllowedInteractions {
		return model.FCRStatusUnresolved
	}
	return model.FCRStatusResolved
}

// AssignStatuses applies Status to every record in place.
func AssignStatuses(records []model.ClassifiedRecord) {
	for i := range records {
		records[i].FCRStatus = Status(records[i])
	}
}
