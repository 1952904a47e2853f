// Package random provides the deterministic number source behind every
// hand-drawn mark in a sketch.
//
// # Overview
//
// A [Source] is a linear congruential generator with a single integer
// register:
//
//	state = (state*9301 + 49297) mod 233280
//	value = state / 233280
//
// The period is short (233280 states) but visual variety is all that is
// needed here. What matters is that the same seed always yields the same
// stream, so the same plant is drawn identically on every render.
//
// # Seeding
//
// Seeds are either integers or strings. Strings are folded into an integer
// with a 31-multiplier rolling hash over UTF-16 code units, truncated to 32
// bits, then made non-negative:
//
//	src := random.FromString("growth-1")
//	src2 := random.New(42)
//
// # Sequential Use
//
// A Source is a sequential resource. Every call advances the register, so
// the order of calls defines the drawing. A Source must not be shared
// between goroutines; generate in parallel by giving each worker its own
// Source seeded from a stable string.
package random
