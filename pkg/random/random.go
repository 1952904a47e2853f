package random

import (
	"math"
	"unicode/utf16"
)

const (
	multiplier = 9301
	increment  = 49297
	modulus    = 233280
)

// Rand is the set of operations the generators consume. [*Source] is the
// only implementation shipped; tests may substitute scripted streams.
type Rand interface {
	// Next returns the next value in [0, 1).
	Next() float64
	// Range returns a value in [min, max).
	Range(min, max float64) float64
	// IntRange returns an integer in [min, max].
	IntRange(min, max int) int
	// Wobble perturbs value by up to amount/2 in either direction.
	Wobble(value, amount float64) float64
}

// Source is a seeded linear congruential generator.
type Source struct {
	state int64
}

// New returns a Source whose register starts at seed. Negative seeds use
// their absolute value. Seeds are reduced modulo the generator's modulus,
// which does not change the emitted stream.
func New(seed int64) *Source {
	s := seed % modulus
	if s < 0 {
		s = -s
	}
	return &Source{state: s}
}

// FromString returns a Source seeded with Hash(seed).
func FromString(seed string) *Source {
	return New(Hash(seed))
}

// Hash folds s into a non-negative integer using hash = hash*31 + unit over
// the UTF-16 code units of s, wrapping at 32 bits. The result is the
// absolute value of the final signed 32-bit hash.
func Hash(s string) int64 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

// State returns the current register value.
func (s *Source) State() int64 {
	return s.state
}

// Next advances the register and returns state/233280, always in [0, 1).
func (s *Source) Next() float64 {
	s.state = (s.state*multiplier + increment) % modulus
	return float64(s.state) / modulus
}

// Range returns min + Next()*(max-min).
func (s *Source) Range(min, max float64) float64 {
	return min + s.Next()*(max-min)
}

// IntRange returns floor(Range(min, max+1)), an integer in [min, max].
func (s *Source) IntRange(min, max int) int {
	return int(math.Floor(s.Range(float64(min), float64(max+1))))
}

// Wobble returns value + (Next()-0.5)*amount. It always consumes one value,
// so an amount of zero returns value unchanged but still advances the stream.
func (s *Source) Wobble(value, amount float64) float64 {
	return value + (s.Next()-0.5)*amount
}

var _ Rand = (*Source)(nil)
