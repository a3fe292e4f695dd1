// Package store persists classified batches. Two backends: SQLite for
// local single-user runs and Postgres for shared deployments, selected by
// the store.driver config key.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/scorandini/fcr-cli/internal/model"
)

// RecordFilter narrows a classified-record query. Zero values mean "any".
type RecordFilter struct {
	Month     string `json:"month,omitempty"`      // service_month, YYYY-MM
	FCRStatus string `json:"fcr_status,omitempty"` // "Sim" / "Não"
	Limit     int    `json:"limit,omitempty"`
}

// Store is the persistence interface for classification batches.
type Store interface {
	// SaveBatch persists a batch header and its classified rows. Row order
	// is preserved: ListRecords returns rows in original input order.
	SaveBatch(ctx context.Context, batch model.Batch, records []model.ClassifiedRecord) error
	GetBatch(ctx context.Context, id string) (*model.Batch, error)
	ListBatches(ctx context.Context, limit int) ([]model.Batch, error)
	ListRecords(ctx context.Context, batchID string, filter RecordFilter) ([]model.ClassifiedRecord, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open builds a Store for the configured driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn)
	default:
		return nil, eris.Errorf("store: unknown driver %q (want sqlite or postgres)", driver)
	}
}
