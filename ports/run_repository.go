package ports

import (
	"context"

	"psyfit/domain/bootstrap"
	"psyfit/domain/core"
)

// RunRecord is the persisted summary of one bootstrap run
type RunRecord struct {
	ID         core.RunID
	CreatedAt  core.Timestamp
	Sigmoid    string
	Core       string
	Nafc       int
	Samples    int
	Parametric bool
	NBlocks    int
	NCuts      int
	Result     *bootstrap.Result
}

// RunFilters for querying stored runs
type RunFilters struct {
	Limit  int
	Offset int
}

// RunRepositoryPort stores and retrieves bootstrap run records
type RunRepositoryPort interface {
	Save(ctx context.Context, record *RunRecord) error
	Get(ctx context.Context, id core.RunID) (*RunRecord, error)
	List(ctx context.Context, filters RunFilters) ([]*RunRecord, error)
}
