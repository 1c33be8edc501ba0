package bayes

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/priorlab/conjugate/internal/errors"
)

// BetaBernoulli is a Beta distribution over a Bernoulli success probability
type BetaBernoulli struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

func (b BetaBernoulli) Family() Family { return FamilyBernoulli }

func (b BetaBernoulli) Validate() error {
	if err := requirePositive("alpha", b.Alpha); err != nil {
		return err
	}
	return requirePositive("beta", b.Beta)
}

// Update adds exact success and failure counts to the hyperparameters:
// Beta(alpha_0 + s, beta_0 + f)
func (b BetaBernoulli) Update(sample []float64) (Model, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	successes, failures, err := trialStats(sample)
	if err != nil {
		return nil, err
	}

	return BetaBernoulli{
		Alpha: b.Alpha + successes,
		Beta:  b.Beta + failures,
	}, nil
}

// Likelihood returns the normalized likelihood Beta(s+1, f+1), the posterior
// under the uniform Beta(1, 1) prior
func (b BetaBernoulli) Likelihood(sample []float64) (Model, error) {
	successes, failures, err := trialStats(sample)
	if err != nil {
		return nil, err
	}
	if successes+failures == 0 {
		return nil, errors.NewInvalidInput("empty sample has no likelihood")
	}

	return BetaBernoulli{Alpha: successes + 1, Beta: failures + 1}, nil
}

func (b BetaBernoulli) Mean() float64 { return b.Alpha / (b.Alpha + b.Beta) }

func (b BetaBernoulli) StdDev() float64 {
	total := b.Alpha + b.Beta
	return math.Sqrt(b.Alpha * b.Beta / (total * total * (total + 1)))
}

func (b BetaBernoulli) CDF(x float64) float64      { return b.dist().CDF(x) }
func (b BetaBernoulli) Quantile(p float64) float64 { return b.dist().Quantile(p) }
func (b BetaBernoulli) PDF(x float64) float64      { return b.dist().Prob(x) }

func (b BetaBernoulli) dist() distuv.Beta {
	return distuv.Beta{Alpha: b.Alpha, Beta: b.Beta}
}

// trialStats counts successes and failures, rejecting any value that is not
// exactly 0 or 1
func trialStats(sample []float64) (successes, failures float64, err error) {
	for _, v := range sample {
		switch v {
		case 1:
			successes++
		case 0:
			failures++
		default:
			return 0, 0, errors.NewInvalidInput("observation must be 0 or 1", v)
		}
	}
	return successes, failures, nil
}
