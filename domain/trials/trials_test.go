package trials

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psyfit/domain/core"
)

func TestParseCutsDefaults(t *testing.T) {
	cuts, err := ParseCuts(nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, cuts)

	cuts, err = ParseCuts(json.RawMessage("null"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, cuts)
}

func TestParseCutsSingleNumber(t *testing.T) {
	cuts, err := ParseCuts(json.RawMessage("0.3"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3}, cuts)
}

func TestParseCutsSequenceKeepsOrder(t *testing.T) {
	cuts, err := ParseCuts(json.RawMessage("[0.25, 0.75]"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.75}, cuts)
}

func TestParseCutsRejectsOtherTypes(t *testing.T) {
	for _, raw := range []string{`"x"`, `{"a":1}`, `[0.25,"x"]`, `true`} {
		_, err := ParseCuts(json.RawMessage(raw))
		require.Error(t, err, "raw %s", raw)
		assert.ErrorIs(t, err, core.ErrBadCuts, "raw %s", raw)
	}
}

func TestParseCutsRejectsOutOfRange(t *testing.T) {
	_, err := ParseCuts(json.RawMessage("1.5"))
	assert.ErrorIs(t, err, core.ErrBadCuts)

	_, err = ParseCuts(json.RawMessage("[0.5, 0]"))
	assert.ErrorIs(t, err, core.ErrBadCuts)
}

func TestCutsFromAny(t *testing.T) {
	cuts, err := CutsFromAny(nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, cuts)

	cuts, err = CutsFromAny(0.3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3}, cuts)

	cuts, err = CutsFromAny([]float64{0.25, 0.75})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.75}, cuts)

	_, err = CutsFromAny("x")
	assert.ErrorIs(t, err, core.ErrBadCuts)
}

func TestNewDatasetValidation(t *testing.T) {
	_, err := NewDataset(nil)
	assert.ErrorIs(t, err, core.ErrBadObservations)

	_, err = NewDataset([]Block{{Intensity: 1, Correct: 5, Trials: 0}})
	assert.ErrorIs(t, err, core.ErrBadObservations)

	_, err = NewDataset([]Block{{Intensity: 1, Correct: 51, Trials: 50}})
	assert.ErrorIs(t, err, core.ErrBadObservations)

	data, err := NewDataset([]Block{
		{Intensity: 1, Correct: 30, Trials: 50},
		{Intensity: 2, Correct: 40, Trials: 50},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, data.NBlocks())
	assert.Equal(t, []float64{1, 2}, data.Intensities())
	assert.Equal(t, []float64{0.6, 0.8}, data.Proportions())
}

func TestFromRows(t *testing.T) {
	data, err := FromRows([][3]float64{{0, 24, 50}, {2, 32, 50}})
	require.NoError(t, err)
	assert.Equal(t, Block{Intensity: 2, Correct: 32, Trials: 50}, data.Blocks[1])
}
