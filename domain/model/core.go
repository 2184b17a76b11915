package model

import (
	"regexp"
	"sort"
	"strconv"

	"psyfit/domain/core"
)

// CoreFamily is a reparameterization of the psychometric function's internal
// predictor
type CoreFamily string

const (
	CoreAB      CoreFamily = "ab"
	CoreMW      CoreFamily = "mw"
	CoreLinear  CoreFamily = "linear"
	CoreLog     CoreFamily = "log"
	CorePoly    CoreFamily = "poly"
	CoreWeibull CoreFamily = "weibull"
)

// coreFamilies is the static registration table of available core families,
// keyed by the alphabetic part of the descriptor
var coreFamilies = map[string]CoreFamily{
	"ab":      CoreAB,
	"mw":      CoreMW,
	"linear":  CoreLinear,
	"log":     CoreLog,
	"poly":    CorePoly,
	"weibull": CoreWeibull,
}

// CoreSpec selects a core family, optionally with a scalar parameter taken
// from the descriptor's numeric suffix (e.g. "mw0.1")
type CoreSpec struct {
	Family   CoreFamily
	Param    float64
	HasParam bool
}

// Descriptor reconstructs the string form of the core selection
func (c CoreSpec) Descriptor() string {
	if !c.HasParam {
		return string(c.Family)
	}
	return string(c.Family) + strconv.FormatFloat(c.Param, 'g', -1, 64)
}

// coreDescriptorRe splits an alphabetic family name from an optional trailing
// numeric suffix. Anchored on both ends: trailing junk is rejected rather than
// silently ignored.
var coreDescriptorRe = regexp.MustCompile(`^([a-z_]+)([0-9.]*)$`)

// ParseCore parses a compact core descriptor into a CoreSpec. The family must
// be registered and the suffix, when present, must be a valid float.
func ParseCore(descriptor string) (CoreSpec, error) {
	m := coreDescriptorRe.FindStringSubmatch(descriptor)
	if m == nil {
		return CoreSpec{}, core.NewUnknownCoreError(descriptor)
	}
	family, ok := coreFamilies[m[1]]
	if !ok {
		return CoreSpec{}, core.NewUnknownCoreError(m[1])
	}
	if m[2] == "" {
		return CoreSpec{Family: family}, nil
	}
	param, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return CoreSpec{}, core.NewUnknownCoreError(descriptor)
	}
	return CoreSpec{Family: family, Param: param, HasParam: true}, nil
}

// AvailableCores returns the registered core family names in sorted order
func AvailableCores() []string {
	descriptors := make([]string, 0, len(coreFamilies))
	for d := range coreFamilies {
		descriptors = append(descriptors, d)
	}
	sort.Strings(descriptors)
	return descriptors
}
