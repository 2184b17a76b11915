package model

import (
	"sort"

	"psyfit/domain/core"
)

// SigmoidFamily is a parametric link function shaping the psychometric curve
type SigmoidFamily string

const (
	SigmoidLogistic    SigmoidFamily = "logistic"
	SigmoidGauss       SigmoidFamily = "gauss"
	SigmoidGumbelL     SigmoidFamily = "gumbel_l"
	SigmoidGumbelR     SigmoidFamily = "gumbel_r"
	SigmoidCauchy      SigmoidFamily = "cauchy"
	SigmoidExponential SigmoidFamily = "exponential"
	SigmoidID          SigmoidFamily = "id"
)

// sigmoids is the static registration table of available sigmoid families,
// keyed by descriptor. The available model set is fixed at compile time.
var sigmoids = map[string]SigmoidFamily{
	"logistic":    SigmoidLogistic,
	"gauss":       SigmoidGauss,
	"gumbel_l":    SigmoidGumbelL,
	"gumbel_r":    SigmoidGumbelR,
	"cauchy":      SigmoidCauchy,
	"exponential": SigmoidExponential,
	"id":          SigmoidID,
}

// LookupSigmoid resolves a sigmoid descriptor against the registration table
func LookupSigmoid(descriptor string) (SigmoidFamily, error) {
	family, ok := sigmoids[descriptor]
	if !ok {
		return "", core.NewUnknownSigmoidError(descriptor)
	}
	return family, nil
}

// AvailableSigmoids returns the registered sigmoid descriptors in sorted order
func AvailableSigmoids() []string {
	descriptors := make([]string, 0, len(sigmoids))
	for d := range sigmoids {
		descriptors = append(descriptors, d)
	}
	sort.Strings(descriptors)
	return descriptors
}
