package ports

import (
	"context"

	"psyfit/domain/model"
	"psyfit/domain/prior"
	"psyfit/domain/trials"
)

// BootstrapRequest carries normalized arguments to the fitting engine
type BootstrapRequest struct {
	Samples    int
	Data       *trials.Dataset
	Model      model.Spec
	Priors     []*prior.Spec // one entry per parameter, nil entries mean no prior
	Cuts       []float64
	Start      []float64 // nil lets the engine pick its own starting point
	Parametric bool
}

// EnginePort is the boundary to the psychometric fitting engine. The engine
// owns model fitting, bootstrap resampling and jackknife analysis; this
// module only invokes it and unpacks the returned handles.
type EnginePort interface {
	// Bootstrap resamples and refits the model Samples times and returns an
	// opaque per-sample accessor handle
	Bootstrap(ctx context.Context, req BootstrapRequest) (BootstrapRun, error)

	// Jackknife performs leave-one-block-out influence analysis
	Jackknife(ctx context.Context, data *trials.Dataset, m model.Spec, priors []*prior.Spec) (JackknifeRun, error)
}

// BootstrapRun exposes per-sample and per-cut accessors over one bootstrap
// result. Indices follow the request: sample in [0,Samples), cut in
// [0,len(Cuts)), block in [0,NBlocks).
type BootstrapRun interface {
	// SampleData returns the resampled correct-counts of one sample
	SampleData(sample int) []int

	// Estimate returns the refitted parameter vector of one sample
	Estimate(sample int) []float64

	// Deviance returns the fit deviance of one sample
	Deviance(sample int) float64

	// ThresholdAt returns the threshold intensity of one sample at one cut
	ThresholdAt(sample, cut int) float64

	// Rpd returns the correlation of deviance residuals with model prediction
	Rpd(sample int) float64

	// Rkd returns the correlation of deviance residuals with block sequence
	Rkd(sample int) float64

	// Bias returns the BCa bias term at one cut
	Bias(cut int) float64

	// Acceleration returns the BCa acceleration term at one cut
	Acceleration(cut int) float64
}

// JackknifeRun exposes per-block accessors over one jackknife analysis
type JackknifeRun interface {
	// Outlier flags a block whose removal changes the fit beyond the
	// engine's outlier criterion
	Outlier(block int) bool

	// Influential scores a block's leave-one-out parameter shift against the
	// supplied per-parameter confidence bounds
	Influential(block int, lower, upper []float64) float64
}
