// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/rational-approx/pkg/constants"
	"github.com/iwvelando/rational-approx/pkg/mathutil"
	"go.uber.org/multierr"
)

// ValidateWidth checks if the integer width is one of the supported widths.
func ValidateWidth(width int) error {
	if width != constants.Width16 && width != constants.Width32 && width != constants.Width64 {
		return fmt.Errorf("expected width of %d, %d, or %d, got %d",
			constants.Width16, constants.Width32, constants.Width64, width)
	}
	return nil
}

// ValidatePrecision checks if the tolerance can drive a search at all.
func ValidatePrecision(precision float64) error {
	if precision <= 0 || !mathutil.IsFinite(precision) {
		return fmt.Errorf("expected precision greater than zero and finite, got %v", precision)
	}
	return nil
}

// ValidateValue checks if the value is something a search can bracket.
func ValidateValue(value float64) error {
	if !mathutil.IsFinite(value) {
		return fmt.Errorf("expected a finite value, got %v", value)
	}
	return nil
}

// ValidateTarget checks all fields of a conversion target and reports
// every failure at once. Callers attach the target name when wrapping.
func ValidateTarget(value, precision float64, width int) error {
	return multierr.Combine(
		ValidateValue(value),
		ValidatePrecision(precision),
		ValidateWidth(width),
	)
}

// widthMax returns the largest magnitude the width can hold, or zero
// for an unsupported width.
func widthMax(width int) float64 {
	switch width {
	case constants.Width16:
		return float64(math.MaxInt16)
	case constants.Width32:
		return float64(math.MaxInt32)
	case constants.Width64:
		return float64(math.MaxInt64)
	}
	return 0
}

// ConfigValidator performs comprehensive configuration validation
type ConfigValidator struct {
	Defaults DefaultsConfig
	Targets  []TargetConfig
}

type DefaultsConfig struct {
	Precision float64
	Width     int
}

type TargetConfig struct {
	Name      string
	Value     float64
	Precision float64
	Width     int
}

// ValidateAll validates the entire configuration and returns warnings.
// Warnings flag settings that will run but produce degenerate or
// surprising results; hard errors are left to ValidateTarget.
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	if len(cv.Targets) == 0 {
		warnings = append(warnings, "Configuration has no targets - nothing will be converted")
	}

	seen := make(map[string]int)
	for i, target := range cv.Targets {
		name := target.Name
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("Target %d has no name - output will label it by position", i+1))
			name = fmt.Sprintf("target %d", i+1)
		}
		seen[name]++

		if target.Precision > 0 && target.Precision < constants.PracticalPrecisionLimit {
			warnings = append(warnings, fmt.Sprintf("Target '%s' requests precision %g below the practical limit %g - the search may stop at the iteration cap instead of converging",
				name, target.Precision, constants.PracticalPrecisionLimit))
		}
		if target.Precision >= 1 {
			warnings = append(warnings, fmt.Sprintf("Target '%s' requests precision %g of one or more - the first bound tested will satisfy it",
				name, target.Precision))
		}

		if max := widthMax(target.Width); max > 0 && math.Abs(math.Trunc(target.Value)) >= max {
			warnings = append(warnings, fmt.Sprintf("Target '%s' value %g cannot fit in width %d - conversion will fail",
				name, target.Value, target.Width))
		}
	}

	for name, count := range seen {
		if count > 1 {
			warnings = append(warnings, fmt.Sprintf("Target name '%s' appears %d times - output rows will be ambiguous", name, count))
		}
	}

	return warnings
}
