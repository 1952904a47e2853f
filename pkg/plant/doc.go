// Package plant generates the stems, leaves and flowers of a potted plant
// from a compact [Genome] and a growth stage.
//
// # Genome
//
// A genome is four integers: stem count (1-4), leaves per stem (1-4),
// petiole count (1-3) and a flag bitset. [NewGenome] and [ParseGenome]
// validate the ranges; generation functions assume a valid genome and never
// fail.
//
// # Growth
//
// An [Input] selects one of four growth stages (see [Stages]). The stage
// scales stem height (100 × stage/4) and leaf size (25 × stage/4); stage 4
// adds one flower above every stem tip.
//
// # Plant types
//
// Each stem gets a [Type] derived from its index and the genome:
// (index + stems + leavesPerStem) mod 4 selects upright, bushy, trailing or
// spiky. The type decides how the stem is shaped and which [LeafType] it
// bears:
//
//	upright   single curved stem, leaves spaced with jitter, oval/elongated
//	bushy     up to three branches fanning from the base, heart/oval clusters
//	trailing  chain of drooping segments, heart leaves with upward bias
//	spiky     tight single stem, rigidly spaced spiky/elongated leaves
//
// Every stem carries exactly leavesPerStem leaves regardless of type.
//
// # Determinism
//
// [Generate] draws the pot first, then each stem in order, then flowers,
// consuming randomness from one source in that fixed order. The same
// genome, input and seed always produce the same drawing.
package plant
