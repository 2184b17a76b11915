package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"psyfit/domain/bootstrap"
	"psyfit/domain/core"
	"psyfit/ports"
)

// RunRepositoryImpl implements RunRepositoryPort for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepositoryPort {
	return &RunRepositoryImpl{db: db}
}

type runRow struct {
	ID         string    `db:"id"`
	CreatedAt  time.Time `db:"created_at"`
	Sigmoid    string    `db:"sigmoid"`
	Core       string    `db:"core"`
	Nafc       int       `db:"nafc"`
	Samples    int       `db:"samples"`
	Parametric bool      `db:"parametric"`
	NBlocks    int       `db:"nblocks"`
	NCuts      int       `db:"ncuts"`
	Result     []byte    `db:"result"`
}

// Save persists a run record, result bundle included, as JSONB
func (r *RunRepositoryImpl) Save(ctx context.Context, record *ports.RunRecord) error {
	payload, err := json.Marshal(record.Result)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO bootstrap_runs (id, created_at, sigmoid, core, nafc, samples, parametric, nblocks, ncuts, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, record.ID.String(), record.CreatedAt, record.Sigmoid, record.Core, record.Nafc,
		record.Samples, record.Parametric, record.NBlocks, record.NCuts, payload)
	return err
}

// Get retrieves a run record by id
func (r *RunRepositoryImpl) Get(ctx context.Context, id core.RunID) (*ports.RunRecord, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, created_at, sigmoid, core, nafc, samples, parametric, nblocks, ncuts, result
		FROM bootstrap_runs
		WHERE id = $1
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toRecord()
}

// List returns stored runs, newest first
func (r *RunRepositoryImpl) List(ctx context.Context, filters ports.RunFilters) ([]*ports.RunRecord, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}

	var rows []runRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, created_at, sigmoid, core, nafc, samples, parametric, nblocks, ncuts, result
		FROM bootstrap_runs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, filters.Offset)
	if err != nil {
		return nil, err
	}

	records := make([]*ports.RunRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (row runRow) toRecord() (*ports.RunRecord, error) {
	var result bootstrap.Result
	if err := json.Unmarshal(row.Result, &result); err != nil {
		return nil, err
	}
	return &ports.RunRecord{
		ID:         core.RunID(row.ID),
		CreatedAt:  row.CreatedAt.UTC(),
		Sigmoid:    row.Sigmoid,
		Core:       row.Core,
		Nafc:       row.Nafc,
		Samples:    row.Samples,
		Parametric: row.Parametric,
		NBlocks:    row.NBlocks,
		NCuts:      row.NCuts,
		Result:     &result,
	}, nil
}

// Ensure RunRepositoryImpl implements RunRepositoryPort
var _ ports.RunRepositoryPort = (*RunRepositoryImpl)(nil)
