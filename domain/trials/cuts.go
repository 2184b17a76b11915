package trials

import (
	"encoding/json"
	"fmt"

	"psyfit/domain/core"
)

// DefaultCut is the probability level thresholds are reported at when the
// caller does not ask for specific cuts
const DefaultCut = 0.5

// DefaultCuts returns the single default cut
func DefaultCuts() []float64 {
	return []float64{DefaultCut}
}

// ParseCuts normalizes the polymorphic JSON cuts field: absent or null yields
// the default cut, a single number yields one cut, an array of numbers yields
// cuts in that order, and anything else is a domain error.
func ParseCuts(raw json.RawMessage) ([]float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return DefaultCuts(), nil
	}

	var single float64
	if err := json.Unmarshal(raw, &single); err == nil {
		return validateCuts([]float64{single})
	}

	var many []float64
	if err := json.Unmarshal(raw, &many); err == nil {
		return validateCuts(many)
	}

	return nil, fmt.Errorf("%w: 'cuts' must be either null, a number or a sequence of numbers", core.ErrBadCuts)
}

// CutsFromAny normalizes cuts supplied as a Go value (nil, a number, or a
// slice of numbers), for programmatic callers that bypass JSON
func CutsFromAny(v any) ([]float64, error) {
	switch cuts := v.(type) {
	case nil:
		return DefaultCuts(), nil
	case float64:
		return validateCuts([]float64{cuts})
	case int:
		return validateCuts([]float64{float64(cuts)})
	case []float64:
		return validateCuts(cuts)
	case []any:
		out := make([]float64, len(cuts))
		for i, c := range cuts {
			f, ok := c.(float64)
			if !ok {
				return nil, fmt.Errorf("%w: 'cuts' must be either nil, a number or a sequence of numbers", core.ErrBadCuts)
			}
			out[i] = f
		}
		return validateCuts(out)
	default:
		return nil, fmt.Errorf("%w: 'cuts' must be either nil, a number or a sequence of numbers", core.ErrBadCuts)
	}
}

func validateCuts(cuts []float64) ([]float64, error) {
	if len(cuts) == 0 {
		return DefaultCuts(), nil
	}
	for _, c := range cuts {
		if c <= 0 || c >= 1 {
			return nil, fmt.Errorf("%w: cut %g is outside (0,1)", core.ErrBadCuts, c)
		}
	}
	return cuts, nil
}
