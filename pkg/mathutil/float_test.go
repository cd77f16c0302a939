package mathutil

import (
	"math"
	"testing"
)

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		val1      float64
		val2      float64
		tolerance float64
		expected  bool
	}{
		{
			name:      "Within tolerance",
			val1:      10.001,
			val2:      10.002,
			tolerance: 0.01,
			expected:  true,
		},
		{
			name:      "Outside tolerance",
			val1:      10.001,
			val2:      10.1,
			tolerance: 0.01,
			expected:  false,
		},
		{
			name:      "Exactly at tolerance",
			val1:      10.0,
			val2:      10.01,
			tolerance: 0.01,
			expected:  true,
		},
		{
			name:      "Equal values",
			val1:      5.5,
			val2:      5.5,
			tolerance: 0,
			expected:  true,
		},
		{
			name:      "Negative values within tolerance",
			val1:      -0.7000000001,
			val2:      -0.7,
			tolerance: 1e-9,
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinTolerance(tt.val1, tt.val2, tt.tolerance)
			if result != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v",
					tt.val1, tt.val2, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		expected bool
	}{
		{
			name:     "Ordinary value",
			val:      1.25,
			expected: true,
		},
		{
			name:     "Zero",
			val:      0,
			expected: true,
		},
		{
			name:     "NaN",
			val:      math.NaN(),
			expected: false,
		},
		{
			name:     "Positive infinity",
			val:      math.Inf(1),
			expected: false,
		},
		{
			name:     "Negative infinity",
			val:      math.Inf(-1),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsFinite(tt.val)
			if result != tt.expected {
				t.Errorf("IsFinite(%v) = %v, expected %v", tt.val, result, tt.expected)
			}
		})
	}
}

func TestGCD(t *testing.T) {
	tests := []struct {
		name     string
		a        int64
		b        int64
		expected int64
	}{
		{
			name:     "Coprime pair",
			a:        4,
			b:        3,
			expected: 1,
		},
		{
			name:     "Common factor",
			a:        320,
			b:        240,
			expected: 80,
		},
		{
			name:     "One zero",
			a:        0,
			b:        7,
			expected: 7,
		},
		{
			name:     "Both zero",
			a:        0,
			b:        0,
			expected: 0,
		},
		{
			name:     "Negative numerator",
			a:        -6,
			b:        4,
			expected: 2,
		},
		{
			name:     "Large coprime convergent",
			a:        355,
			b:        113,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GCD(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("GCD(%d, %d) = %d, expected %d", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}
