// Package rational implements the mediant-descent search that converts
// a floating-point value into the closest fraction representable within
// a chosen signed integer width.
//
// The search brackets the fractional part of the input between 0/1 and
// 1/1 and repeatedly replaces the bounds with mediant extensions,
// taking a whole continued-fraction partial quotient per iteration
// instead of a single mediant step. It stops when a bound lands within
// the requested tolerance, when the next extension would exceed the
// integer width, or when the defensive iteration cap is reached. In the
// latter two cases the tightest upper bound reached so far is returned;
// callers needing a strict guarantee must check the residual.
package rational

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/rational-approx/pkg/constants"
	"github.com/iwvelando/rational-approx/pkg/fraction"
	"github.com/iwvelando/rational-approx/pkg/mathutil"
	"go.uber.org/zap"
)

var (
	// ErrPrecision indicates a non-positive or non-finite tolerance.
	ErrPrecision = errors.New("rational: precision must be positive and finite")

	// ErrValueNotFinite indicates a NaN or infinite input value.
	ErrValueNotFinite = errors.New("rational: value must be finite")
)

// RangeError reports a value whose integer part cannot be represented
// within the target width. Max is the width's maximum, widened to int64.
type RangeError struct {
	Value float64
	Max   int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("rational: integer part of %v exceeds the width maximum %d", e.Value, e.Max)
}

// Result is the outcome of one search. Converged is false when the
// search stopped because the next mediant extension would have exceeded
// the integer width, or because the iteration cap was reached; the
// fraction is then the tightest bound reached rather than one within
// the requested tolerance.
type Result[T fraction.Integer] struct {
	Fraction   fraction.Fraction[T]
	Iterations int
	Converged  bool
}

// Searcher runs mediant-descent searches over the integer width T. The
// zero cost of a search makes a single Searcher safe for concurrent use;
// it holds no per-call state.
type Searcher[T fraction.Integer] struct {
	logger *zap.Logger
	max    float64
}

// NewSearcher returns a Searcher that emits per-iteration diagnostics
// to the provided logger at debug level. A nil logger disables
// diagnostics.
func NewSearcher[T fraction.Integer](logger *zap.Logger) *Searcher[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher[T]{
		logger: logger,
		max:    float64(fraction.MaxValue[T]()),
	}
}

// Approximate returns the closest width-representable fraction within
// precision of value, or the tightest bound reached if the width or the
// iteration cap cut the search short.
func (s *Searcher[T]) Approximate(value, precision float64) (fraction.Fraction[T], error) {
	result, err := s.Search(value, precision)
	return result.Fraction, err
}

// ApproximateFloat64 approximates value using the float64 machine
// epsilon as the tolerance.
func (s *Searcher[T]) ApproximateFloat64(value float64) (fraction.Fraction[T], error) {
	return s.Approximate(value, constants.Float64Epsilon)
}

// ApproximateFloat32 approximates value using the float32 machine
// epsilon as the tolerance.
func (s *Searcher[T]) ApproximateFloat32(value float32) (fraction.Fraction[T], error) {
	return s.Approximate(float64(value), constants.Float32Epsilon)
}

// Search runs the full search and reports the iteration count and
// whether the tolerance was met alongside the fraction itself.
func (s *Searcher[T]) Search(value, precision float64) (Result[T], error) {
	if !mathutil.IsFinite(value) {
		return Result[T]{}, ErrValueNotFinite
	}
	if precision <= 0 || !mathutil.IsFinite(precision) {
		return Result[T]{}, ErrPrecision
	}

	// The loop invariant assumes the remainder lies in [0,1], so the
	// sign comes off before the search and goes back on the numerator
	// at the end.
	original := value
	negative := value < 0
	if negative {
		value = -value
	}

	trunc := math.Trunc(value)
	if trunc >= s.max {
		return Result[T]{}, &RangeError{Value: original, Max: int64(fraction.MaxValue[T]())}
	}
	integerPart := T(trunc)
	remainder := value - trunc
	if remainder < 0 || remainder > 1 {
		return Result[T]{}, fmt.Errorf("rational: remainder %g of value %g escaped the unit interval", remainder, original)
	}

	// Reattaching the integer part multiplies it into every
	// denominator, so the usable denominator range shrinks by that
	// factor. For a zero integer part this is the plain width maximum.
	denLimit := s.max / (trunc + 1)

	low := fraction.Fraction[T]{Num: 0, Den: 1}
	high := fraction.Fraction[T]{Num: 1, Den: 1}

	iterations := 0
	converged := false

	for i := 0; i < constants.MaxIterations; i++ {
		iterations = i + 1

		testLow := low.DeltaBelow(remainder)
		testHigh := high.DeltaAbove(remainder)

		s.logger.Debug("bounds narrowed",
			zap.String("op", "rational.Search"),
			zap.Int("iteration", iterations),
			zap.String("low", low.String()),
			zap.String("high", high.String()),
			zap.Float64("testLow", testLow),
			zap.Float64("testHigh", testHigh),
		)

		if testHigh < precision {
			converged = true
			break
		}
		if testLow < precision {
			high = low
			converged = true
			break
		}

		// x1 and x2 are the magnitudes of the next partial quotient in
		// each mediant-extension direction; stepping the larger side
		// advances furthest in a single iteration.
		x1 := testHigh / testLow
		x2 := testLow / testHigh

		if x1 > x2 {
			if (x1+1)*float64(low.Den)+float64(high.Den) >= denLimit {
				break
			}
			n := T(x1)
			inner := fraction.Fraction[T]{Num: n*low.Num + high.Num, Den: n*low.Den + high.Den}
			outer := fraction.Fraction[T]{Num: inner.Num + low.Num, Den: inner.Den + low.Den}
			high = inner
			low = outer
		} else {
			if (x2+1)*float64(high.Den)+float64(low.Den) >= denLimit {
				break
			}
			n := T(x2)
			inner := fraction.Fraction[T]{Num: n*high.Num + low.Num, Den: n*high.Den + low.Den}
			outer := fraction.Fraction[T]{Num: inner.Num + high.Num, Den: inner.Den + high.Den}
			low = inner
			high = outer
		}
	}

	result := high.AddInt(integerPart)
	if negative {
		result = result.Neg()
	}

	s.logger.Debug("search finished",
		zap.String("op", "rational.Search"),
		zap.String("result", result.String()),
		zap.Int("iterations", iterations),
		zap.Bool("converged", converged),
	)

	return Result[T]{Fraction: result, Iterations: iterations, Converged: converged}, nil
}

// Approximate runs a one-off search with no diagnostics attached.
func Approximate[T fraction.Integer](value, precision float64) (fraction.Fraction[T], error) {
	return NewSearcher[T](nil).Approximate(value, precision)
}
