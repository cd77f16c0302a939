// Package fraction defines the integer fraction value type used by the
// rational search, generic over the signed integer width of its parts.
package fraction

import (
	"errors"
	"fmt"
)

// Integer constrains the widths a fraction's numerator and denominator
// may take.
type Integer interface {
	~int | ~int16 | ~int32 | ~int64
}

// ErrDenominator indicates an attempt to construct a fraction with a
// non-positive denominator.
var ErrDenominator = errors.New("fraction: denominator must be positive")

// Fraction is a numerator/denominator pair over the integer width T.
// It is a plain value type: assignment copies it and no operation
// mutates a receiver, so two bounds derived from the same fraction can
// never alias each other.
type Fraction[T Integer] struct {
	Num T
	Den T
}

// New constructs a fraction and rejects non-positive denominators. Code
// that builds fractions from already-positive denominators (such as the
// search's mediant updates) may use a literal instead.
func New[T Integer](num, den T) (Fraction[T], error) {
	if den <= 0 {
		return Fraction[T]{}, ErrDenominator
	}
	return Fraction[T]{Num: num, Den: den}, nil
}

// Float64 returns the fraction's value as a float, a single exact
// division.
func (f Fraction[T]) Float64() float64 {
	return float64(f.Num) / float64(f.Den)
}

// AddInt returns the fraction whose value is f's value plus k, keeping
// the denominator. The caller is responsible for keeping k*Den+Num
// within T's range.
func (f Fraction[T]) AddInt(k T) Fraction[T] {
	return Fraction[T]{Num: f.Num + k*f.Den, Den: f.Den}
}

// Neg returns the fraction with the numerator negated; the denominator
// stays positive.
func (f Fraction[T]) Neg() Fraction[T] {
	return Fraction[T]{Num: -f.Num, Den: f.Den}
}

// DeltaBelow reports how far x sits above the fraction, scaled by the
// denominator: x*Den - Num. It is proportional to x - f.Float64()
// without incurring a division, and positive while the fraction lies
// below x.
func (f Fraction[T]) DeltaBelow(x float64) float64 {
	return x*float64(f.Den) - float64(f.Num)
}

// DeltaAbove reports how far x sits below the fraction, scaled by the
// denominator: Num - x*Den. Positive while the fraction lies above x.
func (f Fraction[T]) DeltaAbove(x float64) float64 {
	return float64(f.Num) - x*float64(f.Den)
}

// String renders the canonical text form "numerator/denominator".
func (f Fraction[T]) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// MaxValue returns the largest value representable by the width T,
// computed from the width itself so no per-type table is needed.
func MaxValue[T Integer]() T {
	v := T(1)
	for v<<1 > 0 {
		v <<= 1
	}
	return v - 1 + v
}
