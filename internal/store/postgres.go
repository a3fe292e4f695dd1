package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/scorandini/fcr-cli/internal/db"
	"github.com/scorandini/fcr-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS batches (
	id                  TEXT PRIMARY KEY,
	interactions_source TEXT NOT NULL,
	reference_source    TEXT NOT NULL,
	record_count        INTEGER NOT NULL,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
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
	service_date         TIMESTAMPTZ,
	due_date             TIMESTAMPTZ,
	topic_key            TEXT NOT NULL,
	allowed_interactions INTEGER NOT NULL,
	buyer_interaction    BOOLEAN NOT NULL,
	days_over_sla        INTEGER,
	sla_breach           BOOLEAN NOT NULL,
	fcr_eligible         BOOLEAN NOT NULL,
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

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// recordColumns is the classified_records column order used by COPY.
var recordColumns = []string{
	"batch_id", "pos", "topic", "category", "subject", "channel_slug", "subtype", "outcome",
	"channel_order_code", "branded_store_slug", "reason", "service_date", "due_date",
	"topic_key", "allowed_interactions", "buyer_interaction", "days_over_sla",
	"sla_breach", "fcr_eligible", "canonical_channel", "grouping_key",
	"sequence_index", "fcr_status", "service_month",
}

// SaveBatch inserts the batch header, then bulk-loads the rows via COPY.
func (s *PostgresStore) SaveBatch(ctx context.Context, batch model.Batch, records []model.ClassifiedRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO batches (id, interactions_source, reference_source, record_count, created_at) VALUES ($1, $2, $3, $4, $5)`,
		batch.ID, batch.InteractionsSource, batch.ReferenceSource, batch.RecordCount, batch.CreatedAt.UTC(),
	)
	if err != nil {
		return eris.Wrap(err, "postgres: insert batch")
	}

	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{
			batch.ID, i, r.Topic, r.Category, r.Subject, r.ChannelSlug, r.Subtype, r.Outcome,
			r.ChannelOrderCode, r.BrandedStoreSlug, r.Reason, timePtr(r.ServiceDate), timePtr(r.DueDate),
			r.TopicKey, r.AllowedInteractions, r.BuyerInteraction, r.DaysOverSLA,
			r.SLABreach, r.FCREligible, r.CanonicalChannel, r.GroupingKey,
			r.SequenceIndex, r.FCRStatus, r.ServiceMonth,
		}
	}

	if _, err := db.CopyFrom(ctx, s.pool, "classified_records", recordColumns, rows); err != nil {
		return eris.Wrap(err, "postgres: copy records")
	}
	return nil
}

func (s *PostgresStore) GetBatch(ctx context.Context, id string) (*model.Batch, error) {
	var b model.Batch
	err := s.pool.QueryRow(ctx,
		`SELECT id, interactions_source, reference_source, record_count, created_at FROM batches WHERE id = $1`, id,
	).Scan(&b.ID, &b.InteractionsSource, &b.ReferenceSource, &b.RecordCount, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("postgres: batch %s not found", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get batch")
	}
	return &b, nil
}

func (s *PostgresStore) ListBatches(ctx context.Context, limit int) ([]model.Batch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, interactions_source, reference_source, record_count, created_at FROM batches ORDER BY created_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list batches")
	}
	defer rows.Close()

	var batches []model.Batch
	for rows.Next() {
		var b model.Batch
		if err := rows.Scan(&b.ID, &b.InteractionsSource, &b.ReferenceSource, &b.RecordCount, &b.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan batch")
		}
		batches = append(batches, b)
	}
	return batches, eris.Wrap(rows.Err(), "postgres: iterate batches")
}

func (s *PostgresStore) ListRecords(ctx context.Context, batchID string, filter RecordFilter) ([]model.ClassifiedRecord, error) {
	query := `SELECT topic, category, subject, channel_slug, subtype, outcome,
		channel_order_code, branded_store_slug, reason, service_date, due_date,
		topic_key, allowed_interactions, buyer_interaction, days_over_sla,
		sla_breach, fcr_eligible, canonical_channel, grouping_key,
		sequence_index, fcr_status, service_month
	FROM classified_records WHERE batch_id = $1`
	args := []any{batchID}

	if filter.Month != "" {
		args = append(args, filter.Month)
		query += ` AND service_month = $` + strconv.Itoa(len(args))
	}
	if filter.FCRStatus != "" {
		args = append(args, filter.FCRStatus)
		query += ` AND fcr_status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY pos`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list records")
	}
	defer rows.Close()

	var records []model.ClassifiedRecord
	for rows.Next() {
		var (
			r           model.ClassifiedRecord
			serviceDate *time.Time
			dueDate     *time.Time
			daysOver    *int
		)
		err := rows.Scan(
			&r.Topic, &r.Category, &r.Subject, &r.ChannelSlug, &r.Subtype, &r.Outcome,
			&r.ChannelOrderCode, &r.BrandedStoreSlug, &r.Reason, &serviceDate, &dueDate,
			&r.TopicKey, &r.AllowedInteractions, &r.BuyerInteraction, &daysOver,
			&r.SLABreach, &r.FCREligible, &r.CanonicalChannel, &r.GroupingKey,
			&r.SequenceIndex, &r.FCRStatus, &r.ServiceMonth,
		)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan record")
		}
		r.ServiceDate = serviceDate
		r.DueDate = dueDate
		r.DaysOverSLA = daysOver
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "postgres: iterate records")
}

func timePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
