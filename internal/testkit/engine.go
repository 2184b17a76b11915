package testkit

import (
	"context"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"psyfit/domain/model"
	"psyfit/domain/prior"
	"psyfit/domain/trials"
	"psyfit/ports"
)

// SyntheticEngine is a deterministic stand-in for the native fitting engine.
// It fabricates statistically plausible bootstrap and jackknife bundles from
// a seed; it performs no maximum-likelihood fitting. Used by tests and by the
// server's demo mode.
type SyntheticEngine struct {
	seed int64
}

// NewSyntheticEngine creates a synthetic engine. The same seed and request
// always produce the same bundle.
func NewSyntheticEngine(seed int64) *SyntheticEngine {
	return &SyntheticEngine{seed: seed}
}

// Bootstrap fabricates a bootstrap bundle for the request
func (e *SyntheticEngine) Bootstrap(ctx context.Context, req ports.BootstrapRequest) (ports.BootstrapRun, error) {
	rng := rand.New(rand.NewSource(e.seed))
	nblocks := req.Data.NBlocks()
	nparams := req.Model.NParams()
	ncuts := len(req.Cuts)

	base := baseEstimate(req.Data, req.Model, req.Priors, req.Start)
	fitted := fittedProportions(req.Data, req.Model, base, req.Parametric)

	run := &syntheticRun{
		samples:      make([][]int, req.Samples),
		estimates:    make([][]float64, req.Samples),
		deviance:     make([]float64, req.Samples),
		thresholds:   make([][]float64, req.Samples),
		rpd:          make([]float64, req.Samples),
		rkd:          make([]float64, req.Samples),
		bias:         make([]float64, ncuts),
		acceleration: make([]float64, ncuts),
	}

	devDF := math.Max(1, float64(nblocks-nparams))
	chi := distuv.ChiSquared{K: devDF}

	for i := 0; i < req.Samples; i++ {
		counts := make([]int, nblocks)
		for b, block := range req.Data.Blocks {
			counts[b] = binomialDraw(rng, block.Trials, fitted[b])
		}
		run.samples[i] = counts

		est := make([]float64, nparams)
		for p := 0; p < nparams; p++ {
			sigma := 0.05 * math.Max(math.Abs(base[p]), 1)
			est[p] = base[p] + sigma*normalQuantile(rng)
		}
		run.estimates[i] = est

		run.deviance[i] = chi.Quantile(unit(rng))

		row := make([]float64, ncuts)
		for j, cut := range req.Cuts {
			row[j] = est[0] + est[1]*math.Log(cut/(1-cut)) + 0.02*normalQuantile(rng)
		}
		run.thresholds[i] = row

		run.rpd[i] = math.Tanh(0.3 * normalQuantile(rng))
		run.rkd[i] = math.Tanh(0.3 * normalQuantile(rng))
	}

	for j := range req.Cuts {
		run.bias[j] = 0.05 * normalQuantile(rng)
		run.acceleration[j] = 0.01 * normalQuantile(rng)
	}

	return run, nil
}

// Jackknife fabricates a leave-one-block-out influence analysis
func (e *SyntheticEngine) Jackknife(ctx context.Context, data *trials.Dataset, m model.Spec, priors []*prior.Spec) (ports.JackknifeRun, error) {
	base := baseEstimate(data, m, priors, nil)
	fitted := fittedProportions(data, m, base, true)
	observed := data.Proportions()

	residuals := make([]float64, data.NBlocks())
	for b := range residuals {
		residuals[b] = observed[b] - fitted[b]
	}

	return &syntheticJackknife{residuals: residuals}, nil
}

var _ ports.EnginePort = (*SyntheticEngine)(nil)

// baseEstimate derives a central parameter vector: the caller's start values
// when given, otherwise a crude placement from the intensity range, pulled
// toward the prior medians when priors are set
func baseEstimate(data *trials.Dataset, m model.Spec, priors []*prior.Spec, start []float64) []float64 {
	nparams := m.NParams()
	if start != nil {
		out := make([]float64, nparams)
		copy(out, start)
		return out
	}

	xs := data.Intensities()
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	spread := hi - lo
	if spread == 0 {
		spread = 1
	}

	base := make([]float64, nparams)
	base[0] = (lo + hi) / 2 // location
	base[1] = spread / 4    // width
	base[2] = 0.02          // lapse rate
	if nparams == 4 {
		base[3] = 0.02 // guessing rate for yes/no
	}

	for i, p := range priors {
		if p != nil && i < nparams {
			base[i] = (base[i] + p.Quantile(0.5)) / 2
		}
	}
	return base
}

// fittedProportions evaluates a logistic stand-in psi at each block. The
// nonparametric flag falls back to the observed proportions, mirroring
// nonparametric resampling.
func fittedProportions(data *trials.Dataset, m model.Spec, base []float64, parametric bool) []float64 {
	if !parametric {
		return data.Proportions()
	}

	guess := 0.0
	if m.Nafc > 1 {
		guess = 1 / float64(m.Nafc)
	} else if len(base) == 4 {
		guess = base[3]
	}
	lapse := base[2]

	out := make([]float64, data.NBlocks())
	for i, b := range data.Blocks {
		z := (b.Intensity - base[0]) / base[1]
		f := 1 / (1 + math.Exp(-z))
		p := guess + (1-guess-lapse)*f
		out[i] = math.Min(math.Max(p, 0.001), 0.999)
	}
	return out
}

func binomialDraw(rng *rand.Rand, n int, p float64) int {
	k := 0
	for i := 0; i < n; i++ {
		if rng.Float64() < p {
			k++
		}
	}
	return k
}

// unit returns a uniform draw kept away from 0 and 1 so quantile lookups
// stay finite
func unit(rng *rand.Rand) float64 {
	u := rng.Float64()
	return math.Min(math.Max(u, 1e-9), 1-1e-9)
}

func normalQuantile(rng *rand.Rand) float64 {
	return distuv.UnitNormal.Quantile(unit(rng))
}

// syntheticRun holds the fabricated bootstrap matrices behind the accessor
// interface
type syntheticRun struct {
	samples      [][]int
	estimates    [][]float64
	deviance     []float64
	thresholds   [][]float64
	rpd          []float64
	rkd          []float64
	bias         []float64
	acceleration []float64
}

func (r *syntheticRun) SampleData(sample int) []int         { return r.samples[sample] }
func (r *syntheticRun) Estimate(sample int) []float64       { return r.estimates[sample] }
func (r *syntheticRun) Deviance(sample int) float64         { return r.deviance[sample] }
func (r *syntheticRun) ThresholdAt(sample, cut int) float64 { return r.thresholds[sample][cut] }
func (r *syntheticRun) Rpd(sample int) float64              { return r.rpd[sample] }
func (r *syntheticRun) Rkd(sample int) float64              { return r.rkd[sample] }
func (r *syntheticRun) Bias(cut int) float64                { return r.bias[cut] }
func (r *syntheticRun) Acceleration(cut int) float64        { return r.acceleration[cut] }

var _ ports.BootstrapRun = (*syntheticRun)(nil)

type syntheticJackknife struct {
	residuals []float64
}

// Outlier flags blocks whose observed proportion sits far from the fitted
// curve
func (j *syntheticJackknife) Outlier(block int) bool {
	return math.Abs(j.residuals[block]) > 0.2
}

// Influential scores the block's residual against the mean width of the
// supplied confidence bounds
func (j *syntheticJackknife) Influential(block int, lower, upper []float64) float64 {
	width := 0.0
	for i := range lower {
		width += upper[i] - lower[i]
	}
	if len(lower) > 0 {
		width /= float64(len(lower))
	}
	if width <= 0 {
		width = 1
	}
	return math.Abs(j.residuals[block]) / width
}

var _ ports.JackknifeRun = (*syntheticJackknife)(nil)
