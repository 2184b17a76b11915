package app

import (
	"context"
	"log"

	"github.com/montanaflynn/stats"

	"psyfit/domain/bootstrap"
	"psyfit/domain/core"
	"psyfit/domain/model"
	"psyfit/domain/prior"
	"psyfit/domain/trials"
	"psyfit/ports"
)

// Params are the caller-facing options of one bootstrap run. Zero values are
// filled with the conventional defaults by normalize.
type Params struct {
	Samples    int
	Nafc       int
	Sigmoid    string
	Core       string
	Priors     []string
	Cuts       []float64
	Start      []float64
	Parametric *bool
}

// Default option values
const (
	DefaultSamples = 2000
	DefaultNafc    = 2
	DefaultSigmoid = "logistic"
	DefaultCore    = "ab"
)

func (p *Params) normalize() {
	if p.Samples <= 0 {
		p.Samples = DefaultSamples
	}
	if p.Nafc <= 0 {
		p.Nafc = DefaultNafc
	}
	if p.Sigmoid == "" {
		p.Sigmoid = DefaultSigmoid
	}
	if p.Core == "" {
		p.Core = DefaultCore
	}
	if p.Cuts == nil {
		p.Cuts = trials.DefaultCuts()
	}
}

func (p *Params) parametric() bool {
	if p.Parametric == nil {
		return true
	}
	return *p.Parametric
}

// BootstrapService orchestrates one bootstrap-plus-jackknife analysis: it
// normalizes arguments, drives the fitting engine and flattens the opaque
// result handles into plain arrays.
type BootstrapService struct {
	engine ports.EnginePort
	runs   ports.RunRepositoryPort // optional, nil disables persistence
}

// NewBootstrapService creates a bootstrap service over an engine. The run
// repository may be nil when persistence is not wanted.
func NewBootstrapService(engine ports.EnginePort, runs ports.RunRepositoryPort) *BootstrapService {
	return &BootstrapService{engine: engine, runs: runs}
}

// Run performs one bootstrap run. All argument validation happens before the
// engine is invoked; engine failures propagate unwrapped. The engine's
// bootstrap and jackknife entry points are each called exactly once.
func (s *BootstrapService) Run(ctx context.Context, data *trials.Dataset, p Params) (*ports.RunRecord, error) {
	p.normalize()

	spec, err := model.New(p.Sigmoid, p.Core, p.Nafc)
	if err != nil {
		return nil, err
	}
	nparams := spec.NParams()

	var priors []*prior.Spec
	if p.Priors != nil {
		if len(p.Priors) != nparams {
			return nil, core.NewPriorCountError(len(p.Priors), nparams)
		}
		priors, err = prior.ParseList(p.Priors)
		if err != nil {
			return nil, err
		}
	}

	cuts, err := trials.CutsFromAny(p.Cuts)
	if err != nil {
		return nil, err
	}

	if p.Start != nil && len(p.Start) != nparams {
		return nil, core.NewStartCountError(len(p.Start), nparams)
	}

	bs, err := s.engine.Bootstrap(ctx, ports.BootstrapRequest{
		Samples:    p.Samples,
		Data:       data,
		Model:      spec,
		Priors:     priors,
		Cuts:       cuts,
		Start:      p.Start,
		Parametric: p.parametric(),
	})
	if err != nil {
		return nil, err
	}
	jk, err := s.engine.Jackknife(ctx, data, spec, priors)
	if err != nil {
		return nil, err
	}

	result := flatten(bs, jk, p.Samples, nparams, len(cuts), data.NBlocks())

	record := &ports.RunRecord{
		ID:         core.NewRunID(),
		CreatedAt:  core.Now(),
		Sigmoid:    p.Sigmoid,
		Core:       p.Core,
		Nafc:       p.Nafc,
		Samples:    p.Samples,
		Parametric: p.parametric(),
		NBlocks:    data.NBlocks(),
		NCuts:      len(cuts),
		Result:     result,
	}

	if s.runs != nil {
		if err := s.runs.Save(ctx, record); err != nil {
			// Persistence is a convenience; the analysis itself succeeded
			log.Printf("Warning: failed to persist run %s: %v", record.ID, err)
		}
	}

	return record, nil
}

// flatten copies every field of the opaque handles into flat arrays, row by
// row for the requested number of samples and cuts
func flatten(bs ports.BootstrapRun, jk ports.JackknifeRun, nsamples, nparams, ncuts, nblocks int) *bootstrap.Result {
	r := &bootstrap.Result{
		Samples:      make([][]int, nsamples),
		Estimates:    make([][]float64, nsamples),
		Deviance:     make([]float64, nsamples),
		Thresholds:   make([][]float64, nsamples),
		Rpd:          make([]float64, nsamples),
		Rkd:          make([]float64, nsamples),
		Bias:         make([]float64, ncuts),
		Acceleration: make([]float64, ncuts),
		Outliers:     make([]bool, nblocks),
		Influential:  make([]float64, nblocks),
		Lower:        make([]float64, nparams),
		Upper:        make([]float64, nparams),
	}

	for i := 0; i < nsamples; i++ {
		r.Samples[i] = bs.SampleData(i)
		r.Estimates[i] = bs.Estimate(i)
		r.Deviance[i] = bs.Deviance(i)
		row := make([]float64, ncuts)
		for j := 0; j < ncuts; j++ {
			row[j] = bs.ThresholdAt(i, j)
		}
		r.Thresholds[i] = row
		r.Rpd[i] = bs.Rpd(i)
		r.Rkd[i] = bs.Rkd(i)
	}

	for j := 0; j < ncuts; j++ {
		r.Bias[j] = bs.Bias(j)
		r.Acceleration[j] = bs.Acceleration(j)
	}

	// 95% confidence bounds per parameter, by percentile lookup over the
	// estimate samples
	column := make([]float64, nsamples)
	for param := 0; param < nparams; param++ {
		for i := 0; i < nsamples; i++ {
			column[i] = r.Estimates[i][param]
		}
		lo, err := stats.Percentile(column, 2.5)
		if err != nil {
			lo = 0
		}
		hi, err := stats.Percentile(column, 97.5)
		if err != nil {
			hi = 0
		}
		r.Lower[param] = lo
		r.Upper[param] = hi
	}

	// influence is evaluated against the bounds just derived
	for block := 0; block < nblocks; block++ {
		r.Outliers[block] = jk.Outlier(block)
		r.Influential[block] = jk.Influential(block, r.Lower, r.Upper)
	}

	return r
}
