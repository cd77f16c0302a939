// Package conversion defines the data structures related to a batch of
// conversions and includes functions for computing them.
package conversion

import (
	"fmt"
	"math"

	"github.com/iwvelando/rational-approx/internal/config"
	"github.com/iwvelando/rational-approx/pkg/constants"
	"github.com/iwvelando/rational-approx/pkg/fraction"
	"github.com/iwvelando/rational-approx/pkg/mathutil"
	"github.com/iwvelando/rational-approx/pkg/rational"
	"github.com/iwvelando/rational-approx/pkg/validation"
	"go.uber.org/zap"
)

// Conversion holds all information related to one converted target.
type Conversion struct {
	Name        string
	Value       float64
	Precision   float64
	Width       int
	Numerator   int64
	Denominator int64
	Text        string  // the fraction rendered as "numerator/denominator"
	Float       float64 // the fraction evaluated back to a float
	Residual    float64 // absolute difference between Value and Float

	// InLowestTerms records whether the parts share no common factor.
	// The search does not reduce its results; this is the empirical
	// lowest-terms property surfaced per conversion.
	InLowestTerms bool

	Iterations int
	Converged  bool
}

// GetConversions processes the conversions for all configured targets.
// Targets without a name are labeled by position, matching the warning
// the validator emits for them.
func GetConversions(logger *zap.Logger, conf *config.Configuration) ([]Conversion, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Conversion
	for i, target := range conf.Targets {
		if target.Name == "" {
			target.Name = fmt.Sprintf("target %d", i+1)
		}

		logger.Debug(fmt.Sprintf("converting target %s", target.Name),
			zap.String("op", "conversion.GetConversions"),
			zap.Float64("value", target.Value),
			zap.Float64("precision", target.Precision),
			zap.Int("width", target.Width),
		)

		result, err := Convert(logger, target)
		if err != nil {
			return results, fmt.Errorf("target '%s': %w", target.Name, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// Convert validates a single target and approximates it at the
// configured width.
func Convert(logger *zap.Logger, target config.Target) (Conversion, error) {
	if err := validation.ValidateTarget(target.Value, target.Precision, target.Width); err != nil {
		return Conversion{}, err
	}

	switch target.Width {
	case constants.Width16:
		return convert[int16](logger, target)
	case constants.Width32:
		return convert[int32](logger, target)
	default:
		return convert[int64](logger, target)
	}
}

func convert[T fraction.Integer](logger *zap.Logger, target config.Target) (Conversion, error) {
	res, err := rational.NewSearcher[T](logger).Search(target.Value, target.Precision)
	if err != nil {
		return Conversion{}, err
	}

	approx := res.Fraction.Float64()
	num := int64(res.Fraction.Num)
	den := int64(res.Fraction.Den)
	return Conversion{
		Name:          target.Name,
		Value:         target.Value,
		Precision:     target.Precision,
		Width:         target.Width,
		Numerator:     num,
		Denominator:   den,
		Text:          res.Fraction.String(),
		Float:         approx,
		Residual:      math.Abs(target.Value - approx),
		InLowestTerms: mathutil.GCD(num, den) == 1,
		Iterations:    res.Iterations,
		Converged:     res.Converged,
	}, nil
}
