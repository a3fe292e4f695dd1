package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/scorandini/fcr-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS batches (
	id                  TEXT PRIMARY KEY,
	interactions_source TEXT NOT NULL,
	reference_source    TEXT NOT NULL,
	record_count        INTEGER NOT NULL,
	created_at          DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS classified_records (
	batch_id             TEXT NOT NULL REFERENCES batches(id),
	pos                  INTEGER NOT NULL,
	topic                TEXT NOT NULL,
	category             TEXT NOT NULL,
	subject              TEXT NOT NULL,
	channel_slug         TEXT NOT NULL,
	subtype              TEXT NOT NULL,
	outcome              TEXT NOT NULL,
	channel_order_code   TEXT NOT NULL,
	branded_store_slug   TEXT NOT NULL,
	reason               TEXT NOT NULL,
	service_date         DATETIME,
	due_date             DATETIME,
	topic_key            TEXT NOT NULL,
	allowed_interactions INTEGER NOT NULL,
	buyer_interaction    INTEGER NOT NULL,
	days_over_sla        INTEGER,
	sla_breach           INTEGER NOT NULL,
	fcr_eligible         INTEGER NOT NULL,
	canonical_channel    TEXT NOT NULL,
	grouping_key         TEXT NOT NULL,
	sequence_index       INTEGER NOT NULL,
	fcr_status           TEXT NOT NULL,
	service_month        TEXT NOT NULL,
	PRIMARY KEY (batch_id, pos)
);

CREATE INDEX IF NOT EXISTS idx_records_month ON classified_records(batch_id, service_month);
CREATE INDEX IF NOT EXISTS idx_records_status ON classified_records(batch_id, fcr_status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const sqliteInsertRecord = `INSERT INTO classified_records (
	batch_id, pos, topic, category, subject, channel_slug, subtype, outcome,
	channel_order_code, branded_store_slug, reason, service_date, due_date,
	topic_key, allowed_interactions, buyer_interaction, days_over_sla,
	sla_breach, fcr_eligible, canonical_channel, grouping_key,
	sequence_index, fcr_status, service_month
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SaveBatch persists the batch header and all rows in one transaction.
func (s *SQLiteStore) SaveBatch(ctx context.Context, batch model.Batch, records []model.ClassifiedRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO batches (id, interactions_source, reference_source, record_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		batch.ID, batch.InteractionsSource, batch.ReferenceSource, batch.RecordCount, batch.CreatedAt.UTC(),
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert batch")
	}

	stmt, err := tx.PrepareContext(ctx, sqliteInsertRecord)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close() //nolint:errcheck

	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			batch.ID, i, r.Topic, r.Category, r.Subject, r.ChannelSlug, r.Subtype, r.Outcome,
			r.ChannelOrderCode, r.BrandedStoreSlug, r.Reason, nullTime(r.ServiceDate), nullTime(r.DueDate),
			r.TopicKey, r.AllowedInteractions, r.BuyerInteraction, nullInt(r.DaysOverSLA),
			r.SLABreach, r.FCREligible, r.CanonicalChannel, r.GroupingKey,
			r.SequenceIndex, r.FCRStatus, r.ServiceMonth,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert record %d", i)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit batch")
}

func (s *SQLiteStore) GetBatch(ctx context.Context, id string) (*model.Batch, error) {
	var b model.Batch
	err := s.db.QueryRowContext(ctx,
		`SELECT id, interactions_source, reference_source, record_count, created_at FROM batches WHERE id = ?`, id,
	).Scan(&b.ID, &b.InteractionsSource, &b.ReferenceSource, &b.RecordCount, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: batch %s not found", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get batch")
	}
	return &b, nil
}

func (s *SQLiteStore) ListBatches(ctx context.Context, limit int) ([]model.Batch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, interactions_source, reference_source, record_count, created_at FROM batches ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list batches")
	}
	defer rows.Close() //nolint:errcheck

	var batches []model.Batch
	for rows.Next() {
		var b model.Batch
		if err := rows.Scan(&b.ID, &b.InteractionsSource, &b.ReferenceSource, &b.RecordCount, &b.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan batch")
		}
		batches = append(batches, b)
	}
	return batches, eris.Wrap(rows.Err(), "sqlite: iterate batches")
}

func (s *SQLiteStore) ListRecords(ctx context.Context, batchID string, filter RecordFilter) ([]model.ClassifiedRecord, error) {
	query := `SELECT topic, category, subject, channel_slug, subtype, outcome,
		channel_order_code, branded_store_slug, reason, service_date, due_date,
		topic_key, allowed_interactions, buyer_interaction, days_over_sla,
		sla_breach, fcr_eligible, canonical_channel, grouping_key,
		sequence_index, fcr_status, service_month
	FROM classified_records WHERE batch_id = ?`
	args := []any{batchID}

	if filter.Month != "" {
		query += ` AND service_month = ?`
		args = append(args, filter.Month)
	}
	if filter.FCRStatus != "" {
		query += ` AND fcr_status = ?`
		args = append(args, filter.FCRStatus)
	}
	query += ` ORDER BY pos`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list records")
	}
	defer rows.Close() //nolint:errcheck

	var records []model.ClassifiedRecord
	for rows.Next() {
		var (
			r           model.ClassifiedRecord
			serviceDate sql.NullTime
			dueDate     sql.NullTime
			daysOver    sql.NullInt64
		)
		err := rows.Scan(
			&r.Topic, &r.Category, &r.Subject, &r.ChannelSlug, &r.Subtype, &r.Outcome,
			&r.ChannelOrderCode, &r.BrandedStoreSlug, &r.Reason, &serviceDate, &dueDate,
			&r.TopicKey, &r.AllowedInteractions, &r.BuyerInteraction, &daysOver,
			&r.SLABreach, &r.FCREligible, &r.CanonicalChannel, &r.GroupingKey,
			&r.SequenceIndex, &r.FCRStatus, &r.ServiceMonth,
		)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		if serviceDate.Valid {
			t := serviceDate.Time.UTC()
			r.ServiceDate = &t
		}
		if dueDate.Valid {
			t := dueDate.Time.UTC()
			r.DueDate = &t
		}
		if daysOver.Valid {
			v := int(daysOver.Int64)
			r.DaysOverSLA = &v
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate records")
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
