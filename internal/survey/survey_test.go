package survey

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iwvelando/rational-approx/pkg/constants"
	"go.uber.org/zap"
)

func TestNewRunnerDefaults(t *testing.T) {
	runner, err := NewRunner(nil, Options{})
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	if runner.opts.Samples != constants.DefaultSurveySamples {
		t.Errorf("expected default sample count %d, got %d", constants.DefaultSurveySamples, runner.opts.Samples)
	}
	if runner.opts.Precision != constants.DefaultTargetPrecision {
		t.Errorf("expected default precision %g, got %g", constants.DefaultTargetPrecision, runner.opts.Precision)
	}
	if runner.opts.Width != constants.DefaultWidth {
		t.Errorf("expected default width %d, got %d", constants.DefaultWidth, runner.opts.Width)
	}
}

func TestNewRunnerValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "negative samples", opts: Options{Samples: -1}},
		{name: "negative precision", opts: Options{Precision: -1e-9}},
		{name: "unsupported width", opts: Options{Width: 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRunner(zap.NewNop(), tt.opts); err == nil {
				t.Errorf("NewRunner(%+v) expected error, got nil", tt.opts)
			}
		})
	}
}

func TestRunStatistics(t *testing.T) {
	runner, err := NewRunner(zap.NewNop(), Options{Samples: 2000, Precision: 1e-9, Width: 64, Seed: 1})
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	report, err := runner.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Converged+report.WidthLimited != 2000 {
		t.Errorf("expected outcome counts to sum to 2000, got %d converged and %d width-limited",
			report.Converged, report.WidthLimited)
	}
	if report.WidthLimited != 0 {
		t.Errorf("expected every 64-bit sample at 1e-9 to converge, got %d width-limited", report.WidthLimited)
	}
	if report.MaxResidual >= 1e-9 {
		t.Errorf("expected every residual below 1e-9, got max %g", report.MaxResidual)
	}
	if report.MaxIterations > constants.MaxIterations {
		t.Errorf("iteration count %d exceeds the cap", report.MaxIterations)
	}
	if report.MeanIterations <= 0 || report.MeanIterations > float64(report.MaxIterations) {
		t.Errorf("mean iterations %g outside (0, max]", report.MeanIterations)
	}
	if report.P50Iterations > report.P99Iterations {
		t.Errorf("p50 %g larger than p99 %g", report.P50Iterations, report.P99Iterations)
	}
	if report.P99Iterations > float64(report.MaxIterations) {
		t.Errorf("p99 %g larger than max %d", report.P99Iterations, report.MaxIterations)
	}
}

func TestRunIsReproducible(t *testing.T) {
	opts := Options{Samples: 500, Precision: 1e-9, Width: 64, Seed: 42}

	first, err := NewRunner(zap.NewNop(), opts)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	second, err := NewRunner(zap.NewNop(), opts)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	a, err := first.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	b, err := second.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if a.MeanIterations != b.MeanIterations || a.MaxIterations != b.MaxIterations || a.MaxResidual != b.MaxResidual {
		t.Errorf("same seed produced different reports: %+v vs %+v", a, b)
	}
}

func TestRunNarrowWidthStopsGracefully(t *testing.T) {
	// A 16-bit width cannot express tolerances this fine for most inputs,
	// so the survey should record width-limited outcomes rather than fail.
	runner, err := NewRunner(zap.NewNop(), Options{Samples: 200, Precision: 1e-12, Width: 16, Seed: 7})
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	report, err := runner.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.WidthLimited == 0 {
		t.Error("expected some width-limited outcomes at width 16 and precision 1e-12")
	}
}

func TestPrintSummaryAndHistogram(t *testing.T) {
	runner, err := NewRunner(zap.NewNop(), Options{Samples: 300, Precision: 1e-9, Width: 64, Seed: 3})
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	report, err := runner.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var summary bytes.Buffer
	report.PrintSummary(&summary)
	if !strings.Contains(summary.String(), "samples:") || !strings.Contains(summary.String(), "iterations max:") {
		t.Errorf("summary missing expected fields, got:\n%s", summary.String())
	}

	var hist bytes.Buffer
	if err := report.PrintHistogram(&hist); err != nil {
		t.Fatalf("PrintHistogram() error = %v", err)
	}
	if hist.Len() == 0 {
		t.Error("expected histogram output")
	}
}

func TestPrintHistogramEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	report := &Report{}
	if err := report.PrintHistogram(&buf); err != nil {
		t.Fatalf("PrintHistogram() on empty report error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty report, got %q", buf.String())
	}
}
