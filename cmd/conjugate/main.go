// Command conjugate runs one of the three conjugate-prior analyses against
// an observation sample supplied inline, from a CSV file, or from a CSV URL.
//
// Examples:
//
//	conjugate -family gaussian -values 15.77,20.5,8.26,14.37,21.09 \
//	    -prior-mean 20 -prior-var 25 -obs-var 25 -threshold 18
//	conjugate -family poisson -data counts.csv -alpha 2 -beta 0.5
//	conjugate -family bernoulli -data https://example.com/trials.csv \
//	    -alpha 1 -beta 5 -plot-out plot.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/priorlab/conjugate/internal/analysis"
	"github.com/priorlab/conjugate/internal/bayes"
	"github.com/priorlab/conjugate/internal/dataset"
	"github.com/priorlab/conjugate/internal/encoding"
	"github.com/priorlab/conjugate/internal/errors"
	"github.com/priorlab/conjugate/internal/monitoring"
	"github.com/priorlab/conjugate/internal/render"
)

// Config holds environment-driven settings; per-run statistical inputs come
// from flags
type Config struct {
	HTTPTimeout       time.Duration `env:"CONJUGATE_HTTP_TIMEOUT" envDefault:"15s"`
	RequestsPerSecond float64       `env:"CONJUGATE_REQUESTS_PER_SECOND" envDefault:"2"`
	LogLevel          string        `env:"CONJUGATE_LOG_LEVEL" envDefault:"info"`
}

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := monitoring.NewLogger(parseLevel(cfg.LogLevel))
	slog.SetDefault(logger.Logger)

	var (
		family     = flag.String("family", "", "model family: gaussian, poisson or bernoulli")
		data       = flag.String("data", "", "CSV dataset path or http(s) URL")
		values     = flag.String("values", "", "inline comma-separated observations")
		priorMean  = flag.Float64("prior-mean", 0, "gaussian prior mean")
		priorVar   = flag.Float64("prior-var", 0, "gaussian prior variance")
		obsVar     = flag.Float64("obs-var", 0, "gaussian known observation variance")
		alpha      = flag.Float64("alpha", 0, "gamma/beta prior shape (alpha)")
		beta       = flag.Float64("beta", 0, "gamma prior rate / beta prior beta")
		coverage   = flag.Float64("coverage", 0, "credible interval coverage, default 0.95")
		threshold  = flag.Float64("threshold", math.NaN(), "tail probability threshold Pr(theta >= t)")
		gridMin    = flag.Float64("grid-min", 0, "plot grid lower bound")
		gridMax    = flag.Float64("grid-max", 0, "plot grid upper bound")
		gridPoints = flag.Int("grid-points", 2001, "plot grid size")
		plotOut    = flag.String("plot-out", "", "write plot-data JSON to this path")
	)
	flag.Parse()

	prior, err := buildPrior(*family, *priorMean, *priorVar, *obsVar, *alpha, *beta)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	source, err := buildSource(*data, *values)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	req := analysis.Request{
		Prior:    prior,
		Source:   source,
		Coverage: *coverage,
	}
	if !math.IsNaN(*threshold) {
		t := *threshold
		req.Threshold = &t
	}
	if *plotOut != "" {
		req.Grid = render.LinearGrid(*gridMin, *gridMax, *gridPoints)
		if len(req.Grid) == 0 {
			fmt.Fprintln(os.Stderr, "-plot-out requires -grid-min and -grid-max")
			os.Exit(2)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := dataset.NewFetcher(dataset.FetcherConfig{
		Timeout:           cfg.HTTPTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	analyzer := analysis.NewAnalyzer(dataset.NewLoader(fetcher), logger)

	result, err := analyzer.Run(ctx, req)
	if err != nil {
		errors.LogError(logger.Logger, errors.ToAppError(err), "family", *family)
		os.Exit(1)
	}

	encoder := encoding.NewEncoderPool(2)
	if *plotOut != "" && result.Plot != nil {
		if err := encoder.WriteFile(*plotOut, result.Plot); err != nil {
			slog.Error("Failed to write plot data", "path", *plotOut, "error", err)
			os.Exit(1)
		}
		// keep stdout output compact once the curves are on disk
		result.Plot = nil
	}

	if err := encoder.WriteIndented(os.Stdout, result); err != nil {
		slog.Error("Failed to write result", "error", err)
		os.Exit(1)
	}
}

// buildPrior assembles the prior distribution for the requested family
func buildPrior(family string, priorMean, priorVar, obsVar, alpha, beta float64) (bayes.Model, error) {
	switch bayes.Family(strings.ToLower(family)) {
	case bayes.FamilyGaussian:
		return bayes.Gaussian{Mu: priorMean, Tau2: priorVar, Sigma2: obsVar}, nil
	case bayes.FamilyPoisson:
		return bayes.GammaPoisson{Alpha: alpha, Beta: beta}, nil
	case bayes.FamilyBernoulli:
		return bayes.BetaBernoulli{Alpha: alpha, Beta: beta}, nil
	default:
		return nil, fmt.Errorf("unknown family %q", family)
	}
}

// buildSource picks between inline values, a local path and a URL
func buildSource(data, values string) (dataset.Source, error) {
	if (data == "") == (values == "") {
		return dataset.Source{}, fmt.Errorf("exactly one of -data or -values is required")
	}

	if values != "" {
		parts := strings.Split(values, ",")
		sample := make([]float64, 0, len(parts))
		for _, part := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return dataset.Source{}, fmt.Errorf("invalid inline value %q", part)
			}
			sample = append(sample, v)
		}
		return dataset.Source{Inline: sample}, nil
	}

	if strings.HasPrefix(data, "http://") || strings.HasPrefix(data, "https://") {
		return dataset.Source{URL: data}, nil
	}
	return dataset.Source{Path: data}, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
