package bayes

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/priorlab/conjugate/internal/errors"
)

// GammaPoisson is a Gamma distribution over a Poisson rate, in the
// shape/rate parameterization: mean Alpha/Beta, variance Alpha/Beta^2.
type GammaPoisson struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

func (g GammaPoisson) Family() Family { return FamilyPoisson }

func (g GammaPoisson) Validate() error {
	if err := requirePositive("shape", g.Alpha); err != nil {
		return err
	}
	return requirePositive("rate", g.Beta)
}

// Update adds the count sum to the shape and the sample size to the rate:
// Gamma(alpha_0 + S, beta_0 + n)
func (g GammaPoisson) Update(sample []float64) (Model, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	n, sum, err := countStats(sample)
	if err != nil {
		return nil, err
	}

	return GammaPoisson{
		Alpha: g.Alpha + sum,
		Beta:  g.Beta + n,
	}, nil
}

// Likelihood returns the normalized likelihood Gamma(S+1, n), the posterior
// under the flat Gamma(1, 0) improper prior
func (g GammaPoisson) Likelihood(sample []float64) (Model, error) {
	n, sum, err := countStats(sample)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.NewInvalidInput("empty sample has no likelihood")
	}

	return GammaPoisson{Alpha: sum + 1, Beta: n}, nil
}

func (g GammaPoisson) Mean() float64   { return g.Alpha / g.Beta }
func (g GammaPoisson) StdDev() float64 { return math.Sqrt(g.Alpha) / g.Beta }

func (g GammaPoisson) CDF(x float64) float64      { return g.dist().CDF(x) }
func (g GammaPoisson) Quantile(p float64) float64 { return g.dist().Quantile(p) }
func (g GammaPoisson) PDF(x float64) float64      { return g.dist().Prob(x) }

func (g GammaPoisson) dist() distuv.Gamma {
	return distuv.Gamma{Alpha: g.Alpha, Beta: g.Beta}
}

// countStats collects the Poisson sufficient statistics (size and sum),
// rejecting observations outside the non-negative integers
func countStats(sample []float64) (n, sum float64, err error) {
	for _, v := range sample {
		if !finite(v) || v < 0 || v != math.Trunc(v) {
			return 0, 0, errors.NewInvalidInput("observation must be a non-negative integer count", v)
		}
		sum += v
	}
	return float64(len(sample)), sum, nil
}
