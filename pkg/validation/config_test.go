package validation

import (
	"math"
	"testing"

	"go.uber.org/multierr"
)

func TestValidateWidth(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		expectErr bool
	}{
		{name: "width 16", width: 16, expectErr: false},
		{name: "width 32", width: 32, expectErr: false},
		{name: "width 64", width: 64, expectErr: false},
		{name: "width 8 unsupported", width: 8, expectErr: true},
		{name: "width 24 unsupported", width: 24, expectErr: true},
		{name: "width 128 unsupported", width: 128, expectErr: true},
		{name: "zero width", width: 0, expectErr: true},
		{name: "negative width", width: -16, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWidth(tt.width)
			if (err != nil) != tt.expectErr {
				t.Errorf("ValidateWidth(%d) error = %v, expectErr %v", tt.width, err, tt.expectErr)
			}
		})
	}
}

func TestValidatePrecision(t *testing.T) {
	tests := []struct {
		name      string
		precision float64
		expectErr bool
	}{
		{name: "nano precision", precision: 1e-9, expectErr: false},
		{name: "machine epsilon", precision: 2.220446049250313e-16, expectErr: false},
		{name: "coarse precision", precision: 0.5, expectErr: false},
		{name: "zero precision", precision: 0, expectErr: true},
		{name: "negative precision", precision: -1e-9, expectErr: true},
		{name: "not a number", precision: math.NaN(), expectErr: true},
		{name: "infinite precision", precision: math.Inf(1), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrecision(tt.precision)
			if (err != nil) != tt.expectErr {
				t.Errorf("ValidatePrecision(%v) error = %v, expectErr %v", tt.precision, err, tt.expectErr)
			}
		})
	}
}

func TestValidateValue(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		expectErr bool
	}{
		{name: "ordinary value", value: 0.7, expectErr: false},
		{name: "negative value", value: -123.456, expectErr: false},
		{name: "zero", value: 0, expectErr: false},
		{name: "not a number", value: math.NaN(), expectErr: true},
		{name: "positive infinity", value: math.Inf(1), expectErr: true},
		{name: "negative infinity", value: math.Inf(-1), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateValue(tt.value)
			if (err != nil) != tt.expectErr {
				t.Errorf("ValidateValue(%v) error = %v, expectErr %v", tt.value, err, tt.expectErr)
			}
		})
	}
}

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		name        string
		value       float64
		precision   float64
		width       int
		expectCount int
	}{
		{
			name:        "valid target",
			value:       0.7,
			precision:   1e-9,
			width:       64,
			expectCount: 0,
		},
		{
			name:        "one bad field",
			value:       0.7,
			precision:   0,
			width:       64,
			expectCount: 1,
		},
		{
			name:        "two bad fields",
			value:       math.NaN(),
			precision:   1e-9,
			width:       15,
			expectCount: 2,
		},
		{
			name:        "all fields bad",
			value:       math.Inf(1),
			precision:   -1,
			width:       0,
			expectCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTarget(tt.value, tt.precision, tt.width)
			errs := multierr.Errors(err)
			if len(errs) != tt.expectCount {
				t.Errorf("ValidateTarget(%v, %v, %d) returned %d errors, expected %d: %v",
					tt.value, tt.precision, tt.width, len(errs), tt.expectCount, err)
			}
		})
	}
}

func TestConfigValidator_ValidateAll(t *testing.T) {
	tests := []struct {
		name            string
		validator       ConfigValidator
		expectWarnCount int
	}{
		{
			name: "valid configuration",
			validator: ConfigValidator{
				Defaults: DefaultsConfig{Precision: 1e-9, Width: 64},
				Targets: []TargetConfig{
					{Name: "pi", Value: 3.14159265, Precision: 1e-9, Width: 64},
					{Name: "display ratio", Value: 320.0 / 240.0, Precision: 1e-9, Width: 32},
				},
			},
			expectWarnCount: 0,
		},
		{
			name: "no targets",
			validator: ConfigValidator{
				Defaults: DefaultsConfig{Precision: 1e-9, Width: 64},
			},
			expectWarnCount: 1,
		},
		{
			name: "unnamed target",
			validator: ConfigValidator{
				Targets: []TargetConfig{
					{Value: 0.5, Precision: 1e-9, Width: 64},
				},
			},
			expectWarnCount: 1,
		},
		{
			name: "precision below practical limit",
			validator: ConfigValidator{
				Targets: []TargetConfig{
					{Name: "too fine", Value: 0.5, Precision: 1e-15, Width: 64},
				},
			},
			expectWarnCount: 1,
		},
		{
			name: "degenerate coarse precision",
			validator: ConfigValidator{
				Targets: []TargetConfig{
					{Name: "too coarse", Value: 0.5, Precision: 1.5, Width: 64},
				},
			},
			expectWarnCount: 1,
		},
		{
			name: "value exceeds width",
			validator: ConfigValidator{
				Targets: []TargetConfig{
					{Name: "too wide", Value: 40000.5, Precision: 1e-9, Width: 16},
					{Name: "negative too wide", Value: -40000.5, Precision: 1e-9, Width: 16},
				},
			},
			expectWarnCount: 2,
		},
		{
			name: "duplicate target names",
			validator: ConfigValidator{
				Targets: []TargetConfig{
					{Name: "twin", Value: 0.5, Precision: 1e-9, Width: 64},
					{Name: "twin", Value: 0.25, Precision: 1e-9, Width: 64},
				},
			},
			expectWarnCount: 1,
		},
		{
			name: "warnings accumulate",
			validator: ConfigValidator{
				Targets: []TargetConfig{
					{Value: 0.5, Precision: 1e-15, Width: 64},
					{Name: "fits width", Value: 32766.25, Precision: 1e-9, Width: 16},
				},
			},
			expectWarnCount: 2, // missing name and sub-practical precision; the near-maximum value still fits
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.validator.ValidateAll()

			if len(warnings) != tt.expectWarnCount {
				t.Errorf("ValidateAll() returned %d warnings, expected %d",
					len(warnings), tt.expectWarnCount)
			}

			for i, warning := range warnings {
				t.Logf("Warning %d: %s", i+1, warning)
			}
		})
	}
}

func TestConfigValidator_EmptyTargetListOnly(t *testing.T) {
	validator := ConfigValidator{}

	warnings := validator.ValidateAll()

	if len(warnings) != 1 {
		t.Fatalf("Expected exactly the no-targets warning, got %d warnings", len(warnings))
	}
}
