package bayes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priorlab/conjugate/internal/errors"
)

func TestGammaPoissonUpdate(t *testing.T) {
	tests := []struct {
		name          string
		prior         GammaPoisson
		sample        []float64
		expectedAlpha float64
		expectedBeta  float64
	}{
		{
			name:          "empty sample returns prior unchanged",
			prior:         GammaPoisson{Alpha: 2, Beta: 0.5},
			sample:        []float64{},
			expectedAlpha: 2,
			expectedBeta:  0.5,
		},
		{
			name:          "worked example from four counts",
			prior:         GammaPoisson{Alpha: 2, Beta: 0.5},
			sample:        []float64{3, 5, 2, 4},
			expectedAlpha: 16,
			expectedBeta:  4.5,
		},
		{
			name:          "zero counts still advance the rate",
			prior:         GammaPoisson{Alpha: 1, Beta: 1},
			sample:        []float64{0, 0, 0},
			expectedAlpha: 1,
			expectedBeta:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := tt.prior.Update(tt.sample)
			require.NoError(t, err)

			g, ok := post.(GammaPoisson)
			require.True(t, ok)
			assert.InDelta(t, tt.expectedAlpha, g.Alpha, 1e-12)
			assert.InDelta(t, tt.expectedBeta, g.Beta, 1e-12)
		})
	}
}

func TestGammaPoissonPosteriorMean(t *testing.T) {
	prior := GammaPoisson{Alpha: 2, Beta: 0.5}

	post, err := prior.Update([]float64{3, 5, 2, 4})
	require.NoError(t, err)

	assert.InDelta(t, 16.0/4.5, post.Mean(), 1e-12) // ~3.556
	assert.InDelta(t, 4.0/4.5, post.StdDev(), 1e-12)
}

func TestGammaPoissonValidation(t *testing.T) {
	tests := []struct {
		name   string
		prior  GammaPoisson
		sample []float64
		check  func(error) bool
	}{
		{
			name:   "zero shape",
			prior:  GammaPoisson{Alpha: 0, Beta: 1},
			sample: []float64{1},
			check:  errors.IsInvalidParameter,
		},
		{
			name:   "negative rate",
			prior:  GammaPoisson{Alpha: 1, Beta: -1},
			sample: []float64{1},
			check:  errors.IsInvalidParameter,
		},
		{
			name:   "negative count",
			prior:  GammaPoisson{Alpha: 1, Beta: 1},
			sample: []float64{3, -1},
			check:  errors.IsInvalidInput,
		},
		{
			name:   "non-integer count",
			prior:  GammaPoisson{Alpha: 1, Beta: 1},
			sample: []float64{2.5},
			check:  errors.IsInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.prior.Update(tt.sample)
			require.Error(t, err)
			assert.True(t, tt.check(err))
		})
	}
}

func TestGammaPoissonLikelihood(t *testing.T) {
	prior := GammaPoisson{Alpha: 2, Beta: 0.5}

	like, err := prior.Likelihood([]float64{3, 5, 2, 4})
	require.NoError(t, err)

	g, ok := like.(GammaPoisson)
	require.True(t, ok)
	// Gamma(S+1, n)
	assert.InDelta(t, 15.0, g.Alpha, 1e-12)
	assert.InDelta(t, 4.0, g.Beta, 1e-12)

	_, err = prior.Likelihood([]float64{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}
