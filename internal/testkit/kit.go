// Package testkit provides the deterministic doubles the tests and the demo
// mode of the server run on: a synthetic fitting engine, fixture data and an
// in-memory run repository.
package testkit

import (
	"context"
	"sort"
	"sync"

	"psyfit/domain/core"
	"psyfit/domain/trials"
	"psyfit/ports"
)

// TestKit bundles the demo doubles
type TestKit struct {
	engine *SyntheticEngine
	runs   *InMemoryRunRepository
}

// NewTestKit creates a test kit with a fixed default seed
func NewTestKit() *TestKit {
	return NewTestKitWithSeed(42)
}

// NewTestKitWithSeed creates a test kit whose engine output is reproducible
// for the given seed
func NewTestKitWithSeed(seed int64) *TestKit {
	return &TestKit{
		engine: NewSyntheticEngine(seed),
		runs:   NewInMemoryRunRepository(),
	}
}

// Engine returns the synthetic engine adapter
func (t *TestKit) Engine() ports.EnginePort {
	return t.engine
}

// RunRepository returns the in-memory run repository adapter
func (t *TestKit) RunRepository() ports.RunRepositoryPort {
	return t.runs
}

// FixtureBlocks returns a classic constant-stimulus 2AFC session: six
// intensity levels, fifty trials each
func FixtureBlocks() []trials.Block {
	return []trials.Block{
		{Intensity: 0, Correct: 24, Trials: 50},
		{Intensity: 2, Correct: 32, Trials: 50},
		{Intensity: 4, Correct: 40, Trials: 50},
		{Intensity: 6, Correct: 48, Trials: 50},
		{Intensity: 8, Correct: 50, Trials: 50},
		{Intensity: 10, Correct: 48, Trials: 50},
	}
}

// FixtureDataset wraps FixtureBlocks into a validated dataset
func FixtureDataset() *trials.Dataset {
	data, err := trials.NewDataset(FixtureBlocks())
	if err != nil {
		panic(err) // fixture is known-good
	}
	return data
}

// InMemoryRunRepository keeps run records in memory, newest first
type InMemoryRunRepository struct {
	mu      sync.RWMutex
	records map[core.RunID]*ports.RunRecord
}

// NewInMemoryRunRepository creates an empty in-memory repository
func NewInMemoryRunRepository() *InMemoryRunRepository {
	return &InMemoryRunRepository{records: make(map[core.RunID]*ports.RunRecord)}
}

// Save stores a run record
func (r *InMemoryRunRepository) Save(ctx context.Context, record *ports.RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = record
	return nil
}

// Get retrieves a run record by id
func (r *InMemoryRunRepository) Get(ctx context.Context, id core.RunID) (*ports.RunRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return nil, core.ErrRunNotFound
	}
	return record, nil
}

// List returns stored runs, newest first
func (r *InMemoryRunRepository) List(ctx context.Context, filters ports.RunFilters) ([]*ports.RunRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*ports.RunRecord, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if filters.Offset > 0 {
		if filters.Offset >= len(records) {
			return nil, nil
		}
		records = records[filters.Offset:]
	}
	if filters.Limit > 0 && filters.Limit < len(records) {
		records = records[:filters.Limit]
	}
	return records, nil
}

var _ ports.RunRepositoryPort = (*InMemoryRunRepository)(nil)
