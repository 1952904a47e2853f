package plant

import "github.com/matzehuels/sprout/pkg/random"

// Type is the growth habit of one stem.
type Type uint8

const (
	Upright Type = iota
	Bushy
	Trailing
	Spiky
)

var typeNames = [...]string{"upright", "bushy", "trailing", "spiky"}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// TypeFor derives the habit of stem index from the genome.
func TypeFor(g Genome, index int) Type {
	return Type((index + g.stems + g.leaves) % 4)
}

// LeafType is the blade shape of a leaf.
type LeafType uint8

const (
	Oval LeafType = iota
	Elongated
	Heart
	SpikyLeaf
	Compound
)

var leafTypeNames = [...]string{"oval", "elongated", "heart", "spiky", "compound"}

func (l LeafType) String() string {
	if int(l) < len(leafTypeNames) {
		return leafTypeNames[l]
	}
	return "unknown"
}

// compoundChance is the probability that an upright or bushy stem of a
// three-petiole genome bears compound leaves.
const compoundChance = 0.2

// chooseLeafType picks the leaf shape for one stem. Trailing stems always
// bear heart leaves and consume no randomness.
func chooseLeafType(src random.Rand, t Type, petioles int) LeafType {
	switch t {
	case Upright:
		r := src.Next()
		switch {
		case petioles == MaxPetioles && r < compoundChance:
			return Compound
		case r < 0.6:
			return Oval
		}
		return Elongated
	case Bushy:
		r := src.Next()
		switch {
		case petioles == MaxPetioles && r < compoundChance:
			return Compound
		case r < 0.6:
			return Heart
		}
		return Oval
	case Spiky:
		if src.Next() < 0.5 {
			return SpikyLeaf
		}
		return Elongated
	}
	return Heart
}
