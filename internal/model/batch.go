package model

import "time"

// Batch is one persisted classification run: where the inputs came from
// and how many records the pipeline produced. The classified rows hang
// off the batch so re-runs never overwrite each other.
type Batch struct {
	ID                 string    `json:"id"`
	InteractionsSource string    `json:"interactions_source"`
	ReferenceSource    string    `json:"reference_source"`
	RecordCount        int       `json:"record_count"`
	CreatedAt          time.Time `json:"created_at"`
}
