// Package survey measures the convergence behavior of the rational search
// across randomly sampled inputs. It reproduces the methodology behind the
// documented iteration bound and practical precision limit: draw uniform
// samples from [0,1), approximate each one, and aggregate the iteration
// counts and residuals.
package survey

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/iwvelando/rational-approx/pkg/constants"
	"github.com/iwvelando/rational-approx/pkg/fraction"
	"github.com/iwvelando/rational-approx/pkg/rational"
	"github.com/iwvelando/rational-approx/pkg/validation"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// Options configures one survey run. Zero values fall back to the
// package defaults; Seed is used as given so a zero seed is
// reproducible too.
type Options struct {
	Samples   int
	Precision float64
	Width     int
	Seed      int64
}

// Report aggregates the outcome of a survey run.
type Report struct {
	Samples          int
	Precision        float64
	Width            int
	Converged        int
	WidthLimited     int
	MeanIterations   float64
	StdDevIterations float64
	MaxIterations    int
	P50Iterations    float64
	P99Iterations    float64
	MaxResidual      float64

	iterations []float64
}

// Runner draws the samples and produces a Report.
type Runner struct {
	logger *zap.Logger
	opts   Options
}

// NewRunner validates the options and constructs a Runner. A nil logger
// disables diagnostics.
func NewRunner(logger *zap.Logger, opts Options) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.Samples == 0 {
		opts.Samples = constants.DefaultSurveySamples
	}
	if opts.Samples < 0 {
		return nil, fmt.Errorf("survey: sample count must be positive, got %d", opts.Samples)
	}
	if opts.Precision == 0 {
		opts.Precision = constants.DefaultTargetPrecision
	}
	if err := validation.ValidatePrecision(opts.Precision); err != nil {
		return nil, fmt.Errorf("survey: %w", err)
	}
	if opts.Width == 0 {
		opts.Width = constants.DefaultWidth
	}
	if err := validation.ValidateWidth(opts.Width); err != nil {
		return nil, fmt.Errorf("survey: %w", err)
	}

	return &Runner{logger: logger, opts: opts}, nil
}

// Run draws the configured number of samples and aggregates their search
// outcomes.
func (r *Runner) Run() (*Report, error) {
	r.logger.Info("starting survey",
		zap.String("op", "survey.Run"),
		zap.Int("samples", r.opts.Samples),
		zap.Float64("precision", r.opts.Precision),
		zap.Int("width", r.opts.Width),
		zap.Int64("seed", r.opts.Seed),
	)

	switch r.opts.Width {
	case constants.Width16:
		return run[int16](r)
	case constants.Width32:
		return run[int32](r)
	default:
		return run[int64](r)
	}
}

func run[T fraction.Integer](r *Runner) (*Report, error) {
	rng := rand.New(rand.NewSource(r.opts.Seed))
	searcher := rational.NewSearcher[T](nil)

	report := &Report{
		Samples:    r.opts.Samples,
		Precision:  r.opts.Precision,
		Width:      r.opts.Width,
		iterations: make([]float64, 0, r.opts.Samples),
	}

	for i := 0; i < r.opts.Samples; i++ {
		value := rng.Float64()

		res, err := searcher.Search(value, r.opts.Precision)
		if err != nil {
			return nil, fmt.Errorf("survey: sample %d (value %g): %w", i, value, err)
		}

		if res.Converged {
			report.Converged++
		} else {
			report.WidthLimited++
		}
		if res.Iterations > report.MaxIterations {
			report.MaxIterations = res.Iterations
		}
		if residual := math.Abs(res.Fraction.Float64() - value); residual > report.MaxResidual {
			report.MaxResidual = residual
		}
		report.iterations = append(report.iterations, float64(res.Iterations))
	}

	report.MeanIterations = stat.Mean(report.iterations, nil)
	report.StdDevIterations = stat.StdDev(report.iterations, nil)

	sorted := make([]float64, len(report.iterations))
	copy(sorted, report.iterations)
	sort.Float64s(sorted)
	report.P50Iterations = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	report.P99Iterations = stat.Quantile(0.99, stat.LinInterp, sorted, nil)

	r.logger.Info("survey finished",
		zap.String("op", "survey.Run"),
		zap.Int("converged", report.Converged),
		zap.Int("widthLimited", report.WidthLimited),
		zap.Float64("meanIterations", report.MeanIterations),
		zap.Int("maxIterations", report.MaxIterations),
		zap.Float64("maxResidual", report.MaxResidual),
	)

	return report, nil
}

// PrintSummary writes the aggregate statistics in a key: value layout.
func (rep *Report) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "samples:            %d\n", rep.Samples)
	fmt.Fprintf(w, "precision:          %g\n", rep.Precision)
	fmt.Fprintf(w, "width:              %d\n", rep.Width)
	fmt.Fprintf(w, "converged:          %d\n", rep.Converged)
	fmt.Fprintf(w, "width-limited:      %d\n", rep.WidthLimited)
	fmt.Fprintf(w, "iterations mean:    %.2f\n", rep.MeanIterations)
	fmt.Fprintf(w, "iterations stddev:  %.2f\n", rep.StdDevIterations)
	fmt.Fprintf(w, "iterations p50:     %.1f\n", rep.P50Iterations)
	fmt.Fprintf(w, "iterations p99:     %.1f\n", rep.P99Iterations)
	fmt.Fprintf(w, "iterations max:     %d\n", rep.MaxIterations)
	fmt.Fprintf(w, "residual max:       %.3g\n", rep.MaxResidual)
}

// PrintHistogram renders the iteration distribution as a text histogram.
func (rep *Report) PrintHistogram(w io.Writer) error {
	if len(rep.iterations) == 0 {
		return nil
	}
	hist := histogram.Hist(constants.DefaultSurveyBins, rep.iterations)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}
