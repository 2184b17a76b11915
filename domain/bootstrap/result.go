// Package bootstrap defines the flattened result bundle of a bootstrap run.
package bootstrap

// Result is the full tuple of arrays a bootstrap run produces, copied out of
// the engine's opaque handles row by row
type Result struct {
	// Samples holds the resampled correct-counts, one row per bootstrap
	// sample, one column per observation block
	Samples [][]int `json:"samples"`

	// Estimates holds the refitted parameter vector per sample
	Estimates [][]float64 `json:"estimates"`

	// Deviance holds the fit deviance per sample
	Deviance []float64 `json:"deviance"`

	// Thresholds holds the threshold intensity per sample and cut
	Thresholds [][]float64 `json:"thresholds"`

	// Bias and Acceleration are the BCa correction terms per cut
	Bias         []float64 `json:"bias"`
	Acceleration []float64 `json:"acceleration"`

	// Rpd and Rkd are the per-sample correlations of deviance residuals with
	// model prediction and with block sequence
	Rpd []float64 `json:"rpd"`
	Rkd []float64 `json:"rkd"`

	// Outliers flags blocks the jackknife marks as outlying; Influential
	// scores each block's leave-one-out influence against the CI bounds
	Outliers    []bool    `json:"outliers"`
	Influential []float64 `json:"influential"`

	// Lower and Upper are the 95% percentile confidence bounds per parameter
	Lower []float64 `json:"ci_lower"`
	Upper []float64 `json:"ci_upper"`
}

// NSamples returns the number of bootstrap samples in the bundle
func (r *Result) NSamples() int { return len(r.Estimates) }

// NParams returns the number of model parameters per estimate row
func (r *Result) NParams() int {
	if len(r.Estimates) == 0 {
		return 0
	}
	return len(r.Estimates[0])
}

// NBlocks returns the number of observation blocks
func (r *Result) NBlocks() int { return len(r.Outliers) }

// NCuts returns the number of cuts thresholds were evaluated at
func (r *Result) NCuts() int { return len(r.Bias) }
