// Package report derives scalar summaries from prior and posterior
// distributions: closed-form moments, equal-tailed credible intervals and
// one-sided tail probabilities.
package report

import (
	"github.com/priorlab/conjugate/internal/bayes"
	"github.com/priorlab/conjugate/internal/errors"
)

// DefaultCoverage is the credible interval coverage used when Options does
// not set one.
const DefaultCoverage = 0.95

// Options controls the optional parts of a summary
type Options struct {
	// Coverage is the credible interval coverage level in (0,1).
	// Zero means DefaultCoverage.
	Coverage float64

	// Threshold, if set, requests the one-sided tail probability
	// Pr(theta >= threshold | data) from the posterior CDF.
	Threshold *float64
}

// Moments holds the closed-form mean and standard deviation of a
// distribution
type Moments struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Interval is an equal-tailed credible interval: the central Coverage mass
// of the posterior, bounded by its (1-Coverage)/2 and 1-(1-Coverage)/2
// percentiles.
type Interval struct {
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	Coverage float64 `json:"coverage"`
}

// Summary reports prior and posterior moments plus the optional interval
// and tail probability
type Summary struct {
	Family    bayes.Family `json:"family"`
	Prior     Moments      `json:"prior"`
	Posterior Moments      `json:"posterior"`
	Interval  *Interval    `json:"interval,omitempty"`
	TailProb  *float64     `json:"tail_prob,omitempty"`
	Threshold *float64     `json:"threshold,omitempty"`
}

// Summarize produces a Summary for a (prior, posterior) pair of the same
// family. Moments come from the family's closed-form formulas, never from
// numerical integration; interval bounds come from the posterior quantile
// function.
func Summarize(prior, posterior bayes.Model, opts Options) (Summary, error) {
	if prior == nil || posterior == nil {
		return Summary{}, errors.NewInvalidParameter("prior and posterior are required")
	}
	if prior.Family() != posterior.Family() {
		return Summary{}, errors.NewInvalidParameter("prior and posterior families differ",
			string(prior.Family())+" vs "+string(posterior.Family()))
	}

	coverage := opts.Coverage
	if coverage == 0 {
		coverage = DefaultCoverage
	}
	if coverage <= 0 || coverage >= 1 {
		return Summary{}, errors.NewInvalidParameter("coverage must be in (0,1)", coverage)
	}

	summary := Summary{
		Family:    prior.Family(),
		Prior:     Moments{Mean: prior.Mean(), StdDev: prior.StdDev()},
		Posterior: Moments{Mean: posterior.Mean(), StdDev: posterior.StdDev()},
	}

	tail := (1 - coverage) / 2
	summary.Interval = &Interval{
		Lower:    posterior.Quantile(tail),
		Upper:    posterior.Quantile(1 - tail),
		Coverage: coverage,
	}

	if opts.Threshold != nil {
		p := 1 - posterior.CDF(*opts.Threshold)
		summary.TailProb = &p
		summary.Threshold = opts.Threshold
	}

	return summary, nil
}
