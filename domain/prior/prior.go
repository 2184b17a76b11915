// Package prior parses user-supplied prior expressions into structured,
// validated prior specifications.
//
// Priors arrive as compact constructor expressions like "Gauss(0,100)" or
// "Beta(2,30)". Instead of evaluating them against a constructor namespace,
// they are parsed into a Spec value; malformed expressions are rejected with
// a domain error. An empty expression explicitly opts a parameter out of
// having a prior.
package prior

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"psyfit/domain/core"
)

// Family names a prior distribution family
type Family string

const (
	Uniform Family = "Uniform"
	Gauss   Family = "Gauss"
	Beta    Family = "Beta"
	Gamma   Family = "Gamma"
	NGamma  Family = "nGamma"
)

// families is the static table of recognized prior families and their arity
var families = map[Family]int{
	Uniform: 2,
	Gauss:   2,
	Beta:    2,
	Gamma:   2,
	NGamma:  2,
}

// Spec is a structured prior specification: a family plus its numeric
// parameters, validated at parse time
type Spec struct {
	Family Family
	Params []float64
}

var exprRe = regexp.MustCompile(`^\s*([A-Za-z_]+)\s*\(([^)]*)\)\s*$`)

// Parse converts a prior expression into a Spec. The empty string (or "None")
// yields a nil Spec meaning "no prior for this parameter". Anything else that
// does not name a known family with the right number of numeric parameters is
// a domain error.
func Parse(expr string) (*Spec, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" || trimmed == "None" {
		return nil, nil
	}
	m := exprRe.FindStringSubmatch(trimmed)
	if m == nil {
		return nil, core.NewBadPriorError(expr, "expected Family(p1,p2)")
	}
	family := Family(m[1])
	arity, ok := families[family]
	if !ok {
		return nil, core.NewBadPriorError(expr, "unknown prior family '"+m[1]+"'")
	}
	fields := strings.Split(m[2], ",")
	params := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, core.NewBadPriorError(expr, "empty parameter")
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, core.NewBadPriorError(expr, "parameter '"+f+"' is not a number")
		}
		params = append(params, v)
	}
	if len(params) != arity {
		return nil, core.NewBadPriorError(expr, "family "+string(family)+" takes "+strconv.Itoa(arity)+" parameters")
	}
	spec := &Spec{Family: family, Params: params}
	if err := spec.validate(expr); err != nil {
		return nil, err
	}
	return spec, nil
}

// ParseList parses one expression per model parameter. Entries may be empty
// to leave individual parameters without a prior.
func ParseList(exprs []string) ([]*Spec, error) {
	specs := make([]*Spec, len(exprs))
	for i, expr := range exprs {
		s, err := Parse(expr)
		if err != nil {
			return nil, err
		}
		specs[i] = s
	}
	return specs, nil
}

func (s *Spec) validate(expr string) error {
	switch s.Family {
	case Uniform:
		if s.Params[1] <= s.Params[0] {
			return core.NewBadPriorError(expr, "upper bound must exceed lower bound")
		}
	case Gauss:
		if s.Params[1] <= 0 {
			return core.NewBadPriorError(expr, "standard deviation must be positive")
		}
	case Beta, Gamma, NGamma:
		if s.Params[0] <= 0 || s.Params[1] <= 0 {
			return core.NewBadPriorError(expr, "shape parameters must be positive")
		}
	}
	return nil
}

// String reconstructs the expression form
func (s *Spec) String() string {
	if s == nil {
		return ""
	}
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	return string(s.Family) + "(" + strings.Join(parts, ",") + ")"
}

// dist maps the prior onto a gonum distribution. nGamma mirrors the Gamma
// density onto the negative axis, so callers transform around it.
func (s *Spec) dist() distuv.Quantiler {
	switch s.Family {
	case Uniform:
		return distuv.Uniform{Min: s.Params[0], Max: s.Params[1]}
	case Gauss:
		return distuv.Normal{Mu: s.Params[0], Sigma: s.Params[1]}
	case Beta:
		return distuv.Beta{Alpha: s.Params[0], Beta: s.Params[1]}
	case Gamma, NGamma:
		// shape k, scale theta; distuv.Gamma takes a rate
		return distuv.Gamma{Alpha: s.Params[0], Beta: 1 / s.Params[1]}
	}
	return nil
}

// Pdf evaluates the prior density at x
func (s *Spec) Pdf(x float64) float64 {
	if s == nil {
		return 1
	}
	switch s.Family {
	case Uniform:
		return distuv.Uniform{Min: s.Params[0], Max: s.Params[1]}.Prob(x)
	case Gauss:
		return distuv.Normal{Mu: s.Params[0], Sigma: s.Params[1]}.Prob(x)
	case Beta:
		return distuv.Beta{Alpha: s.Params[0], Beta: s.Params[1]}.Prob(x)
	case Gamma:
		return distuv.Gamma{Alpha: s.Params[0], Beta: 1 / s.Params[1]}.Prob(x)
	case NGamma:
		return distuv.Gamma{Alpha: s.Params[0], Beta: 1 / s.Params[1]}.Prob(-x)
	}
	return 0
}

// Quantile returns the inverse CDF at p, used for inverse-transform sampling
// from the prior
func (s *Spec) Quantile(p float64) float64 {
	if s == nil {
		return 0
	}
	if s.Family == NGamma {
		return -s.dist().Quantile(1 - p)
	}
	return s.dist().Quantile(p)
}

// AvailableFamilies returns the recognized prior family names in sorted order
func AvailableFamilies() []string {
	names := make([]string, 0, len(families))
	for f := range families {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}
