// Package trials holds the observation data a psychometric fit runs on:
// blocks of (stimulus intensity, number correct, number of trials).
package trials

import (
	"fmt"

	"psyfit/domain/core"
)

// Block is one block of constant-stimulus observations
type Block struct {
	Intensity float64 `json:"intensity"`
	Correct   int     `json:"correct"`
	Trials    int     `json:"trials"`
}

// Dataset is an ordered collection of observation blocks
type Dataset struct {
	Blocks []Block
}

// NewDataset validates and wraps observation blocks
func NewDataset(blocks []Block) (*Dataset, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no observation blocks", core.ErrBadObservations)
	}
	for i, b := range blocks {
		if b.Trials <= 0 {
			return nil, fmt.Errorf("%w: block %d has %d trials", core.ErrBadObservations, i, b.Trials)
		}
		if b.Correct < 0 || b.Correct > b.Trials {
			return nil, fmt.Errorf("%w: block %d has %d correct of %d trials", core.ErrBadObservations, i, b.Correct, b.Trials)
		}
	}
	return &Dataset{Blocks: blocks}, nil
}

// FromRows builds a dataset from numeric (intensity, correct, trials) rows
func FromRows(rows [][3]float64) (*Dataset, error) {
	blocks := make([]Block, len(rows))
	for i, r := range rows {
		blocks[i] = Block{Intensity: r[0], Correct: int(r[1]), Trials: int(r[2])}
	}
	return NewDataset(blocks)
}

// NBlocks returns the number of observation blocks
func (d *Dataset) NBlocks() int {
	return len(d.Blocks)
}

// Intensities returns the stimulus intensity of each block, in order
func (d *Dataset) Intensities() []float64 {
	xs := make([]float64, len(d.Blocks))
	for i, b := range d.Blocks {
		xs[i] = b.Intensity
	}
	return xs
}

// Proportions returns the observed fraction correct per block
func (d *Dataset) Proportions() []float64 {
	ps := make([]float64, len(d.Blocks))
	for i, b := range d.Blocks {
		ps[i] = float64(b.Correct) / float64(b.Trials)
	}
	return ps
}
