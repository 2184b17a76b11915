// Package model selects the psychometric function variant a fit should use.
//
// A model is the pair of a sigmoid (the saturating outer link) and a core
// (the inner predictor reparameterization), plus the number of alternatives
// of the task. Both halves are referenced by compact string descriptors and
// resolved against sealed registration tables.
package model

// Spec is a fully resolved model selection
type Spec struct {
	Sigmoid SigmoidFamily
	Core    CoreSpec
	Nafc    int
}

// New resolves sigmoid and core descriptors into a model spec for an nAFC
// task (nafc=1 indicating yes/no)
func New(sigmoid, coreDescriptor string, nafc int) (Spec, error) {
	sig, err := LookupSigmoid(sigmoid)
	if err != nil {
		return Spec{}, err
	}
	c, err := ParseCore(coreDescriptor)
	if err != nil {
		return Spec{}, err
	}
	return Spec{Sigmoid: sig, Core: c, Nafc: nafc}, nil
}

// NParams returns the number of free parameters of the psychometric function.
// Yes/no tasks carry an extra guessing-rate parameter.
func (s Spec) NParams() int {
	if s.Nafc == 1 {
		return 4
	}
	return 3
}
