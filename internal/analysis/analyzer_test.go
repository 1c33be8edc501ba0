package analysis

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priorlab/conjugate/internal/bayes"
	"github.com/priorlab/conjugate/internal/dataset"
	"github.com/priorlab/conjugate/internal/errors"
	"github.com/priorlab/conjugate/internal/monitoring"
	"github.com/priorlab/conjugate/internal/render"
)

func float64Ptr(v float64) *float64 { return &v }

func TestRunGaussian(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	result, err := analyzer.Run(context.Background(), Request{
		Prior:     bayes.Gaussian{Mu: 20, Tau2: 25, Sigma2: 25},
		Source:    dataset.Source{Inline: []float64{15.77, 20.5, 8.26, 14.37, 21.09}},
		Grid:      render.LinearGrid(0, 40, 200),
		Threshold: float64Ptr(18),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, bayes.FamilyGaussian, result.Family)
	assert.Equal(t, 5, result.SampleSize)

	posterior, ok := result.Posterior.(bayes.Gaussian)
	require.True(t, ok)
	assert.InDelta(t, 16.665, posterior.Mu, 1e-9)
	assert.InDelta(t, 25.0/6.0, posterior.Tau2, 1e-9)

	require.NotNil(t, result.Summary.TailProb)
	require.NotNil(t, result.Plot)
	assert.Len(t, result.Plot.Posterior, 200)
	assert.Len(t, result.Plot.Likelihood, 200)
	assert.Equal(t, *result.Summary.TailProb, result.Plot.Annotations["tail_prob"])
	assert.Equal(t, 18.0, result.Plot.Annotations["threshold"])
}

func TestRunPoisson(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	result, err := analyzer.Run(context.Background(), Request{
		Prior:  bayes.GammaPoisson{Alpha: 2, Beta: 0.5},
		Source: dataset.Source{Inline: []float64{3, 5, 2, 4}},
	})
	require.NoError(t, err)

	posterior, ok := result.Posterior.(bayes.GammaPoisson)
	require.True(t, ok)
	assert.Equal(t, 16.0, posterior.Alpha)
	assert.Equal(t, 4.5, posterior.Beta)
	assert.InDelta(t, 16.0/4.5, result.Summary.Posterior.Mean, 1e-12)
	assert.Nil(t, result.Plot)
}

func TestRunBernoulli(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	result, err := analyzer.Run(context.Background(), Request{
		Prior:    bayes.BetaBernoulli{Alpha: 1, Beta: 5},
		Source:   dataset.Source{Inline: []float64{1, 1, 1, 1, 0, 0, 0, 0, 0, 0}},
		Coverage: 0.9,
	})
	require.NoError(t, err)

	posterior, ok := result.Posterior.(bayes.BetaBernoulli)
	require.True(t, ok)
	assert.Equal(t, 5.0, posterior.Alpha)
	assert.Equal(t, 11.0, posterior.Beta)

	require.NotNil(t, result.Summary.Interval)
	assert.Equal(t, 0.9, result.Summary.Interval.Coverage)
}

func TestRunEmptySampleKeepsPrior(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)
	prior := bayes.GammaPoisson{Alpha: 2, Beta: 0.5}

	result, err := analyzer.Run(context.Background(), Request{
		Prior:  prior,
		Source: dataset.Source{Inline: []float64{}},
		Grid:   render.LinearGrid(0, 20, 100),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.SampleSize)
	assert.Equal(t, prior, result.Posterior)
	// no sample, no likelihood curve
	require.NotNil(t, result.Plot)
	assert.Empty(t, result.Plot.Likelihood)
	assert.Len(t, result.Plot.Posterior, 100)
}

func TestRunLogsFetchAndAnalysis(t *testing.T) {
	var buf bytes.Buffer
	logger := &monitoring.Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}
	analyzer := NewAnalyzer(nil, logger)

	_, err := analyzer.Run(context.Background(), Request{
		Prior:  bayes.GammaPoisson{Alpha: 2, Beta: 0.5},
		Source: dataset.Source{Inline: []float64{3, 5, 2, 4}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Dataset Loaded")
	assert.Contains(t, out, "inline[n=4]")
	assert.Contains(t, out, `"success":true`)
	assert.Contains(t, out, "Analysis Completed")
}

func TestRunLogsFailedLoad(t *testing.T) {
	var buf bytes.Buffer
	logger := &monitoring.Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}
	analyzer := NewAnalyzer(nil, logger)

	_, err := analyzer.Run(context.Background(), Request{
		Prior: bayes.GammaPoisson{Alpha: 2, Beta: 0.5},
	})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "Dataset Loaded")
	assert.Contains(t, out, `"success":false`)
	assert.NotContains(t, out, "Analysis Completed")
}

func TestRunErrors(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	tests := []struct {
		name  string
		req   Request
		check func(error) bool
	}{
		{
			name:  "missing prior",
			req:   Request{Source: dataset.Source{Inline: []float64{1}}},
			check: errors.IsInvalidParameter,
		},
		{
			name: "invalid hyperparameter",
			req: Request{
				Prior:  bayes.Gaussian{Mu: 0, Tau2: 1, Sigma2: 0},
				Source: dataset.Source{Inline: []float64{1}},
			},
			check: errors.IsInvalidParameter,
		},
		{
			name: "out-of-support observation",
			req: Request{
				Prior:  bayes.BetaBernoulli{Alpha: 1, Beta: 1},
				Source: dataset.Source{Inline: []float64{1, 2}},
			},
			check: errors.IsInvalidInput,
		},
		{
			name: "missing source",
			req: Request{
				Prior: bayes.BetaBernoulli{Alpha: 1, Beta: 1},
			},
			check: errors.IsInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzer.Run(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, tt.check(err))
		})
	}
}
