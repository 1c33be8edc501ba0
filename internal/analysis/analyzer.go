// Package analysis wires the pipeline together: load a sample, fold it into
// the prior, then hand (prior, posterior) to the reporter and renderer.
// Every run is a pure function of its request; runs share no state and may
// be executed concurrently by the caller.
package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/priorlab/conjugate/internal/bayes"
	"github.com/priorlab/conjugate/internal/dataset"
	"github.com/priorlab/conjugate/internal/errors"
	"github.com/priorlab/conjugate/internal/monitoring"
	"github.com/priorlab/conjugate/internal/render"
	"github.com/priorlab/conjugate/internal/report"
)

// Request describes one analysis: a prior, a sample source, and the
// optional reporting and plotting knobs
type Request struct {
	Prior     bayes.Model    `json:"prior"`
	Source    dataset.Source `json:"source"`
	Grid      []float64      `json:"grid,omitempty"`
	Coverage  float64        `json:"coverage,omitempty"`
	Threshold *float64       `json:"threshold,omitempty"`
}

// Result is the full outcome of a run
type Result struct {
	ID         string           `json:"id"`
	Family     bayes.Family     `json:"family"`
	SampleSize int              `json:"sample_size"`
	Prior      bayes.Model      `json:"prior"`
	Posterior  bayes.Model      `json:"posterior"`
	Summary    report.Summary   `json:"summary"`
	Plot       *render.PlotData `json:"plot,omitempty"`
}

// Analyzer runs analyses against a dataset loader
type Analyzer struct {
	loader *dataset.Loader
	logger *monitoring.Logger
}

// NewAnalyzer creates an analyzer. The logger may be nil.
func NewAnalyzer(loader *dataset.Loader, logger *monitoring.Logger) *Analyzer {
	if loader == nil {
		loader = dataset.NewLoader(nil)
	}
	return &Analyzer{loader: loader, logger: logger}
}

// Run executes one analysis end to end
func (a *Analyzer) Run(ctx context.Context, req Request) (Result, error) {
	if req.Prior == nil {
		return Result{}, errors.NewInvalidParameter("a prior is required")
	}

	start := time.Now()

	sample, err := a.loader.Load(ctx, req.Source)
	if a.logger != nil {
		a.logger.FetchLogger(req.Source.String(), len(sample), time.Since(start), err == nil)
	}
	if err != nil {
		return Result{}, err
	}

	posterior, err := req.Prior.Update(sample)
	if err != nil {
		return Result{}, err
	}

	summary, err := report.Summarize(req.Prior, posterior, report.Options{
		Coverage:  req.Coverage,
		Threshold: req.Threshold,
	})
	if err != nil {
		return Result{}, err
	}

	result := Result{
		ID:         uuid.NewString(),
		Family:     req.Prior.Family(),
		SampleSize: len(sample),
		Prior:      req.Prior,
		Posterior:  posterior,
		Summary:    summary,
	}

	if len(req.Grid) > 0 {
		var likelihood bayes.Model
		if len(sample) > 0 {
			likelihood, err = req.Prior.Likelihood(sample)
			if err != nil {
				return Result{}, err
			}
		}

		plot, err := render.Curves(req.Grid, req.Prior, likelihood, posterior)
		if err != nil {
			return Result{}, err
		}
		if summary.TailProb != nil {
			plot.Annotate("tail_prob", *summary.TailProb)
			plot.Annotate("threshold", *req.Threshold)
		}
		result.Plot = &plot
	}

	if a.logger != nil {
		a.logger.AnalysisLogger(result.ID, string(result.Family), result.SampleSize, time.Since(start))
	}

	return result, nil
}
