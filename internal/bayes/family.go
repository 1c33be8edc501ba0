// Package bayes implements closed-form conjugate prior-to-posterior updating
// for three exponential-family pairings: Gaussian mean with known variance
// (Normal/Normal), Poisson rate (Gamma/Poisson) and Bernoulli probability
// (Beta/Bernoulli).
package bayes

import (
	"math"

	"github.com/priorlab/conjugate/internal/errors"
)

// Family tags the conjugate model family a distribution belongs to
type Family string

const (
	FamilyGaussian  Family = "gaussian"
	FamilyPoisson   Family = "poisson"
	FamilyBernoulli Family = "bernoulli"
)

// Model is a prior or posterior distribution over a model parameter,
// supporting closed-form conjugate updating. Implementations are immutable
// value types; Update returns a new Model and never mutates the receiver.
type Model interface {
	// Family returns the conjugate family tag.
	Family() Family

	// Validate checks the hyperparameters and returns an InvalidParameter
	// error if any is outside its legal range.
	Validate() error

	// Update folds an observation sample into the distribution and returns
	// the posterior. An empty sample returns the receiver unchanged.
	Update(sample []float64) (Model, error)

	// Likelihood returns the sample's normalized likelihood as a proper
	// distribution of the same family, for rendering alongside prior and
	// posterior. It fails with InvalidInput on an empty sample.
	Likelihood(sample []float64) (Model, error)

	// Mean and StdDev use the family's closed-form moment formulas.
	Mean() float64
	StdDev() float64

	// CDF, Quantile and PDF evaluate the distribution pointwise.
	CDF(x float64) float64
	Quantile(p float64) float64
	PDF(x float64) float64
}

// finite reports whether every value is a usable real number
func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// requirePositive validates a single hyperparameter
func requirePositive(name string, v float64) error {
	if !finite(v) || v <= 0 {
		return errors.NewInvalidParameter(name+" must be positive", v)
	}
	return nil
}
