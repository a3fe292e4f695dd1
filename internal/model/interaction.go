// Package model defines the records flowing through the FCR classification pipeline.
package model

import "time"

// FCR status labels carried in the output table. The Portuguese values are
// part of the downstream reporting contract and must not be translated.
const (
	FCRStatusNotEvaluated = ""
	FCRStatusResolved     = "Sim"
	FCRStatusUnresolved   = "Não"
)

// BuyerOutcome is the outcome sentinel marking a direct buyer interaction.
const BuyerOutcome = "Interação com o buyer"

// DefaultAllowedInteractions applies when a topic key has no reference match.
const DefaultAllowedInteractions = 1

// FCRSubtypes are the interaction subtypes eligible for FCR evaluation.
var FCRSubtypes = []string{"Mensageria", "Reclamação", "Mediação"}

// InteractionRecord is one customer-service event as loaded from the
// interactions table. Text fields are empty strings, never absent, after
// normalization. Date pointers are nil when the source value was missing
// or unparseable.
type InteractionRecord struct {
	Topic            string `json:"topic"`
	Category         string `json:"category"`
	Subject          string `json:"subject"`
	ChannelSlug      string `json:"channel_slug"`
	Subtype          string `json:"subtype"`
	Outcome          string `json:"outcome"`
	ChannelOrderCode string `json:"channel_order_code"`
	BrandedStoreSlug string `json:"branded_store_slug"`
	Reason           string `json:"reason"`

	ServiceDate *time.Time `json:"service_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// ReferenceRecord is one row of the FCR reference table: a topic key and
// the number of contacts allowed before an issue no longer counts as
// resolved on first contact.
type ReferenceRecord struct {
	TopicKey            string `json:"topic_key"`
	AllowedInteractions int    `json:"allowed_interactions"`
}

// ClassifiedRecord is an InteractionRecord plus every derived column of
// the output table.
type ClassifiedRecord struct {
	InteractionRecord

	TopicKey            string `json:"topic_key"`
	AllowedInteractions int    `json:"allowed_interactions"`
	BuyerInteraction    bool   `json:"buyer_interaction"`
	DaysOverSLA         *int   `json:"days_over_sla,omitempty"`
	SLABreach           bool   `json:"sla_breach"`
	FCREligible         bool   `json:"fcr_eligible"`
	CanonicalChannel    string `json:"canonical_channel"`
	GroupingKey         string `json:"grouping_key"`
	SequenceIndex       int    `json:"sequence_index"`
	FCRStatus           string `json:"fcr_status"`
	ServiceMonth        string `json:"service_month"`
}

// HasServiceDate reports whether the record carries a parseable service date.
// Records without one stay in the output table but are excluded from
// date-derived aggregations.
func (r InteractionRecord) HasServiceDate() bool {
	return r.ServiceDate != nil
}

// ServiceDay returns the service date truncated to midnight UTC, for daily
// aggregation. Zero time when the service date is absent.
func (r InteractionRecord) ServiceDay() time.Time {
	if r.ServiceDate == nil {
		return time.Time{}
	}
	d := r.ServiceDate
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
