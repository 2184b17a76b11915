package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psyfit/domain/core"
)

func TestLookupSigmoid(t *testing.T) {
	family, err := LookupSigmoid("logistic")
	require.NoError(t, err)
	assert.Equal(t, SigmoidLogistic, family)

	_, err = LookupSigmoid("probit-ish")
	require.Error(t, err)
	assert.True(t, core.IsInvalidSpec(err))
	assert.ErrorIs(t, err, core.ErrUnknownSigmoid)
}

func TestParseCoreWithoutParameter(t *testing.T) {
	spec, err := ParseCore("ab")
	require.NoError(t, err)
	assert.Equal(t, CoreAB, spec.Family)
	assert.False(t, spec.HasParam)
}

func TestParseCoreWithNumericSuffix(t *testing.T) {
	spec, err := ParseCore("mw0.1")
	require.NoError(t, err)
	assert.Equal(t, CoreMW, spec.Family)
	assert.True(t, spec.HasParam)
	assert.Equal(t, 0.1, spec.Param)

	spec, err = ParseCore("poly2")
	require.NoError(t, err)
	assert.Equal(t, CorePoly, spec.Family)
	assert.Equal(t, 2.0, spec.Param)
}

func TestParseCoreRejectsUnknownFamily(t *testing.T) {
	_, err := ParseCore("zz")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownCore)
}

func TestParseCoreRejectsMalformedDescriptors(t *testing.T) {
	for _, desc := range []string{"", "mw0.1x", "AB", "mw0.1.2"} {
		_, err := ParseCore(desc)
		assert.Error(t, err, "descriptor %q", desc)
		assert.True(t, core.IsInvalidSpec(err), "descriptor %q", desc)
	}
}

func TestNewResolvesBothHalves(t *testing.T) {
	spec, err := New("gauss", "mw0.1", 2)
	require.NoError(t, err)
	assert.Equal(t, SigmoidGauss, spec.Sigmoid)
	assert.Equal(t, CoreMW, spec.Core.Family)
	assert.Equal(t, 2, spec.Nafc)

	_, err = New("nope", "ab", 2)
	assert.ErrorIs(t, err, core.ErrUnknownSigmoid)

	_, err = New("gauss", "nope", 2)
	assert.ErrorIs(t, err, core.ErrUnknownCore)
}

func TestNParams(t *testing.T) {
	spec := Spec{Sigmoid: SigmoidLogistic, Core: CoreSpec{Family: CoreAB}, Nafc: 2}
	assert.Equal(t, 3, spec.NParams())

	// yes/no tasks carry a guessing-rate parameter
	spec.Nafc = 1
	assert.Equal(t, 4, spec.NParams())
}

func TestAvailableDescriptorsAreSorted(t *testing.T) {
	sigs := AvailableSigmoids()
	assert.Contains(t, sigs, "logistic")
	assert.Contains(t, sigs, "gumbel_l")
	assert.IsIncreasing(t, sigs)

	cores := AvailableCores()
	assert.Contains(t, cores, "ab")
	assert.Contains(t, cores, "mw")
	assert.IsIncreasing(t, cores)
}
