package pipeline

import (
	"math"

	"github.com/scorandini/fcr-cli/internal/model"
)

// Derive left-joins one interaction against the reference index and
// computes the per-record derived fields that depend on nothing but the
// record itself: buyer interaction flag, SLA delta, and service month.
//
// The join is a pure lookup: the reference side is unique per topic key,
// so no interaction is ever dropped or duplicated. Unmatched keys fall
// back to the default threshold.
func Derive(rec model.InteractionRecord, refIndex map[string]int) model.ClassifiedRecord {
	cr := model.ClassifiedRecord{InteractionRecord: rec}
	cr.TopicKey = TopicKey(rec.Topic, rec.Category, rec.Subject)

	cr.AllowedInteractions = model.DefaultAllowedInteractions
	if allowed, ok := refIndex[cr.TopicKey]; ok {
		cr.AllowedInteractions = allowed
	}

	cr.BuyerInteraction = rec.Outcome == model.BuyerOutcome
	cr.DaysOverSLA = daysOverSLA(rec)
	// Negative delta (service before due date) flags the breach. This sign
	// convention is inherited from the reporting contract; see DESIGN.md.
	cr.SLABreach = cr.DaysOverSLA != nil && *cr.DaysOverSLA < 0

	if rec.ServiceDate != nil {
		cr.ServiceMonth = rec.ServiceDate.Format("2006-01")
	}

	return cr
}

// daysOverSLA returns service_date - due_date in whole days, or nil when
// either date is absent. The raw delta is floor-divided, so a service
// timestamp even one minute before the due timestamp counts as -1: any
// partial day early is a full day over.
func daysOverSLA(rec model.InteractionRecord) *int {
	if rec.ServiceDate == nil || rec.DueDate == nil {
		return nil
	}
	days := int(math.Floor(rec.ServiceDate.Sub(*rec.DueDate).Hours() / 24))
	return &days
}
