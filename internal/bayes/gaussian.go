package bayes

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/priorlab/conjugate/internal/errors"
)

// Gaussian is a Normal distribution over the mean of Gaussian observations
// with known observation variance Sigma2. Mu and Tau2 are the prior (or
// posterior) mean and variance of the parameter itself; Sigma2 is carried
// through updates unchanged.
type Gaussian struct {
	Mu     float64 `json:"mu"`
	Tau2   float64 `json:"tau2"`
	Sigma2 float64 `json:"sigma2"`
}

func (g Gaussian) Family() Family { return FamilyGaussian }

func (g Gaussian) Validate() error {
	if !finite(g.Mu) {
		return errors.NewInvalidParameter("prior mean must be finite", g.Mu)
	}
	if err := requirePositive("prior variance", g.Tau2); err != nil {
		return err
	}
	return requirePositive("observation variance", g.Sigma2)
}

// Update computes the precision-weighted posterior over the mean:
//
//	1/tau_n^2 = n/sigma^2 + 1/tau_0^2
//	mu_n      = w*xbar + (1-w)*mu_0,  w = (n/sigma^2) / (n/sigma^2 + 1/tau_0^2)
func (g Gaussian) Update(sample []float64) (Model, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	n, sum, err := gaussianStats(sample)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return g, nil
	}

	xbar := sum / n
	w := gaussianWeight(n, g.Sigma2, g.Tau2)

	return Gaussian{
		Mu:     w*xbar + (1-w)*g.Mu,
		Tau2:   1 / (n/g.Sigma2 + 1/g.Tau2),
		Sigma2: g.Sigma2,
	}, nil
}

// Likelihood returns the normalized likelihood N(xbar, sigma^2/n)
func (g Gaussian) Likelihood(sample []float64) (Model, error) {
	if err := requirePositive("observation variance", g.Sigma2); err != nil {
		return nil, err
	}

	n, sum, err := gaussianStats(sample)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.NewInvalidInput("empty sample has no likelihood")
	}

	return Gaussian{
		Mu:     sum / n,
		Tau2:   g.Sigma2 / n,
		Sigma2: g.Sigma2,
	}, nil
}

func (g Gaussian) Mean() float64   { return g.Mu }
func (g Gaussian) StdDev() float64 { return math.Sqrt(g.Tau2) }

func (g Gaussian) CDF(x float64) float64      { return g.dist().CDF(x) }
func (g Gaussian) Quantile(p float64) float64 { return g.dist().Quantile(p) }
func (g Gaussian) PDF(x float64) float64      { return g.dist().Prob(x) }

func (g Gaussian) dist() distuv.Normal {
	return distuv.Normal{Mu: g.Mu, Sigma: math.Sqrt(g.Tau2)}
}

// gaussianWeight is the shrinkage weight on the sample mean; it lies in
// [0,1] for all n >= 0 and positive variances.
func gaussianWeight(n, sigma2, tau2 float64) float64 {
	dataPrecision := n / sigma2
	return dataPrecision / (dataPrecision + 1/tau2)
}

// gaussianStats makes a single pass over the sample, collecting the
// sufficient statistics (count and sum)
func gaussianStats(sample []float64) (n, sum float64, err error) {
	for _, v := range sample {
		if !finite(v) {
			return 0, 0, errors.NewInvalidInput("observation must be a finite real", v)
		}
		sum += v
	}
	return float64(len(sample)), sum, nil
}
