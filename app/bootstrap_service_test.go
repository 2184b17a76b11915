package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psyfit/domain/core"
	"psyfit/domain/model"
	"psyfit/domain/prior"
	"psyfit/domain/trials"
	"psyfit/internal/testkit"
	"psyfit/ports"
)

// countingEngine wraps the synthetic engine and records how often the
// boundary is crossed
type countingEngine struct {
	inner      ports.EnginePort
	bootstraps int
	jackknifes int
}

func (e *countingEngine) Bootstrap(ctx context.Context, req ports.BootstrapRequest) (ports.BootstrapRun, error) {
	e.bootstraps++
	return e.inner.Bootstrap(ctx, req)
}

func (e *countingEngine) Jackknife(ctx context.Context, data *trials.Dataset, m model.Spec, priors []*prior.Spec) (ports.JackknifeRun, error) {
	e.jackknifes++
	return e.inner.Jackknife(ctx, data, m, priors)
}

func newTestService(t *testing.T) (*BootstrapService, *countingEngine, *testkit.InMemoryRunRepository) {
	t.Helper()
	engine := &countingEngine{inner: testkit.NewSyntheticEngine(7)}
	runs := testkit.NewInMemoryRunRepository()
	return NewBootstrapService(engine, runs), engine, runs
}

func TestRunProducesExpectedShapes(t *testing.T) {
	svc, engine, _ := newTestService(t)
	data := testkit.FixtureDataset()

	record, err := svc.Run(context.Background(), data, Params{
		Samples: 100,
		Cuts:    []float64{0.25, 0.5, 0.75},
	})
	require.NoError(t, err)

	r := record.Result
	nblocks := data.NBlocks()

	require.Len(t, r.Samples, 100)
	assert.Len(t, r.Samples[0], nblocks)
	require.Len(t, r.Estimates, 100)
	assert.Len(t, r.Estimates[0], 3) // 2AFC model has three parameters
	assert.Len(t, r.Deviance, 100)
	require.Len(t, r.Thresholds, 100)
	assert.Len(t, r.Thresholds[0], 3)
	assert.Len(t, r.Rpd, 100)
	assert.Len(t, r.Rkd, 100)
	assert.Len(t, r.Bias, 3)
	assert.Len(t, r.Acceleration, 3)
	assert.Len(t, r.Outliers, nblocks)
	assert.Len(t, r.Influential, nblocks)
	assert.Len(t, r.Lower, 3)
	assert.Len(t, r.Upper, 3)

	// each routine is invoked exactly once per call
	assert.Equal(t, 1, engine.bootstraps)
	assert.Equal(t, 1, engine.jackknifes)
}

func TestRunAppliesDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)

	record, err := svc.Run(context.Background(), testkit.FixtureDataset(), Params{Samples: 50})
	require.NoError(t, err)

	assert.Equal(t, DefaultSigmoid, record.Sigmoid)
	assert.Equal(t, DefaultCore, record.Core)
	assert.Equal(t, DefaultNafc, record.Nafc)
	assert.True(t, record.Parametric)
	assert.Equal(t, 1, record.NCuts)
}

func TestRunYesNoTaskHasFourParameters(t *testing.T) {
	svc, _, _ := newTestService(t)

	record, err := svc.Run(context.Background(), testkit.FixtureDataset(), Params{Samples: 20, Nafc: 1})
	require.NoError(t, err)
	assert.Len(t, record.Result.Estimates[0], 4)
}

func TestRunRejectsUnknownDescriptors(t *testing.T) {
	svc, engine, _ := newTestService(t)
	data := testkit.FixtureDataset()

	_, err := svc.Run(context.Background(), data, Params{Sigmoid: "nope"})
	assert.ErrorIs(t, err, core.ErrUnknownSigmoid)

	_, err = svc.Run(context.Background(), data, Params{Core: "nope"})
	assert.ErrorIs(t, err, core.ErrUnknownCore)

	assert.Zero(t, engine.bootstraps)
}

func TestRunRejectsPriorCountMismatchBeforeEngineCall(t *testing.T) {
	svc, engine, _ := newTestService(t)

	_, err := svc.Run(context.Background(), testkit.FixtureDataset(), Params{
		Samples: 10,
		Priors:  []string{"Gauss(0,100)", "Gauss(0,100)"}, // model has 3 parameters
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrPriorCount)
	assert.Zero(t, engine.bootstraps)
	assert.Zero(t, engine.jackknifes)
}

func TestRunRejectsMalformedPrior(t *testing.T) {
	svc, engine, _ := newTestService(t)

	_, err := svc.Run(context.Background(), testkit.FixtureDataset(), Params{
		Priors: []string{"Gauss(0,100)", "what", "Beta(2,30)"},
	})
	assert.ErrorIs(t, err, core.ErrBadPrior)
	assert.Zero(t, engine.bootstraps)
}

func TestRunRejectsStartCountMismatchBeforeEngineCall(t *testing.T) {
	svc, engine, _ := newTestService(t)

	_, err := svc.Run(context.Background(), testkit.FixtureDataset(), Params{
		Start: []float64{4, 1},
	})
	assert.ErrorIs(t, err, core.ErrStartCount)
	assert.Zero(t, engine.bootstraps)
}

func TestRunConfidenceBoundsAreOrdered(t *testing.T) {
	svc, _, _ := newTestService(t)

	record, err := svc.Run(context.Background(), testkit.FixtureDataset(), Params{Samples: 200})
	require.NoError(t, err)

	for p := range record.Result.Lower {
		assert.LessOrEqual(t, record.Result.Lower[p], record.Result.Upper[p])
	}
}

func TestRunPersistsRecord(t *testing.T) {
	svc, _, runs := newTestService(t)

	record, err := svc.Run(context.Background(), testkit.FixtureDataset(), Params{Samples: 10})
	require.NoError(t, err)

	stored, err := runs.Get(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Samples, stored.Samples)

	list, err := runs.List(context.Background(), ports.RunFilters{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
