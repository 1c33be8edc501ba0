// Package render produces the numeric arrays a plotting collaborator needs:
// prior, normalized-likelihood and posterior density values evaluated over a
// caller-supplied grid. It holds no coupling to any drawing library.
package render

import (
	"github.com/priorlab/conjugate/internal/bayes"
	"github.com/priorlab/conjugate/internal/errors"
)

// PlotData carries the grid with one parallel value sequence per
// distribution, plus scalar annotations (e.g. a tail probability) for the
// renderer to place on the figure.
type PlotData struct {
	Family      bayes.Family       `json:"family"`
	Grid        []float64          `json:"grid"`
	Prior       []float64          `json:"prior"`
	Likelihood  []float64          `json:"likelihood,omitempty"`
	Posterior   []float64          `json:"posterior"`
	Annotations map[string]float64 `json:"annotations,omitempty"`
}

// Eval evaluates a single distribution's density or mass function over the
// grid. An empty grid yields an empty sequence.
func Eval(grid []float64, m bayes.Model) []float64 {
	values := make([]float64, len(grid))
	for i, x := range grid {
		values[i] = m.PDF(x)
	}
	return values
}

// Curves evaluates prior, normalized likelihood and posterior over the grid.
// The likelihood model may be nil (e.g. for an empty sample), in which case
// its sequence is omitted. An empty grid returns an empty PlotData rather
// than an error, since plotting is optional downstream.
func Curves(grid []float64, prior, likelihood, posterior bayes.Model) (PlotData, error) {
	if prior == nil || posterior == nil {
		return PlotData{}, errors.NewInvalidParameter("prior and posterior are required")
	}
	if prior.Family() != posterior.Family() {
		return PlotData{}, errors.NewInvalidParameter("prior and posterior families differ")
	}
	if likelihood != nil && likelihood.Family() != prior.Family() {
		return PlotData{}, errors.NewInvalidParameter("likelihood family differs from prior")
	}

	data := PlotData{
		Family:    prior.Family(),
		Grid:      grid,
		Prior:     Eval(grid, prior),
		Posterior: Eval(grid, posterior),
	}
	if likelihood != nil {
		data.Likelihood = Eval(grid, likelihood)
	}

	return data, nil
}

// Annotate attaches a named scalar to the plot data
func (d *PlotData) Annotate(name string, value float64) {
	if d.Annotations == nil {
		d.Annotations = make(map[string]float64)
	}
	d.Annotations[name] = value
}

// LinearGrid builds an evenly spaced grid of count points over [min, max]
// for callers that do not bring their own. count < 2 yields an empty grid.
func LinearGrid(min, max float64, count int) []float64 {
	if count < 2 || max <= min {
		return nil
	}
	grid := make([]float64, count)
	step := (max - min) / float64(count-1)
	for i := range grid {
		grid[i] = min + float64(i)*step
	}
	return grid
}
