package plant

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/sprout/pkg/errors"
)

// Flag is a bit in the genome's flag set.
type Flag int

const (
	// FlagFlowers marks a flowering variety. Flowers are still only drawn at
	// the flowering stage.
	FlagFlowers Flag = 1 << 0
)

// Genome ranges.
const (
	MinStems, MaxStems       = 1, 4
	MinLeaves, MaxLeaves     = 1, 4
	MinPetioles, MaxPetioles = 1, 3
)

// Genome describes plant structure. The zero value is not valid; use
// NewGenome or ParseGenome.
type Genome struct {
	stems    int
	leaves   int
	petioles int
	flags    int
}

// NewGenome validates and returns a genome.
func NewGenome(stems, leavesPerStem, petioles, flags int) (Genome, error) {
	switch {
	case stems < MinStems || stems > MaxStems:
		return Genome{}, errors.New(errors.ErrCodeInvalidGenome, "stems must be %d-%d, got %d", MinStems, MaxStems, stems)
	case leavesPerStem < MinLeaves || leavesPerStem > MaxLeaves:
		return Genome{}, errors.New(errors.ErrCodeInvalidGenome, "leaves per stem must be %d-%d, got %d", MinLeaves, MaxLeaves, leavesPerStem)
	case petioles < MinPetioles || petioles > MaxPetioles:
		return Genome{}, errors.New(errors.ErrCodeInvalidGenome, "petioles must be %d-%d, got %d", MinPetioles, MaxPetioles, petioles)
	case flags < 0:
		return Genome{}, errors.New(errors.ErrCodeInvalidGenome, "flags must be non-negative, got %d", flags)
	}
	return Genome{stems: stems, leaves: leavesPerStem, petioles: petioles, flags: flags}, nil
}

// MustGenome is like NewGenome but panics on invalid values.
func MustGenome(stems, leavesPerStem, petioles, flags int) Genome {
	g, err := NewGenome(stems, leavesPerStem, petioles, flags)
	if err != nil {
		panic(err)
	}
	return g
}

// FromValues builds a genome from a 3 or 4 element slice
// (stems, leaves, petioles[, flags]).
func FromValues(v []int) (Genome, error) {
	switch len(v) {
	case 3:
		return NewGenome(v[0], v[1], v[2], 0)
	case 4:
		return NewGenome(v[0], v[1], v[2], v[3])
	}
	return Genome{}, errors.New(errors.ErrCodeInvalidGenome, "genome needs 3 or 4 values, got %d", len(v))
}

// ParseGenome parses "stems,leaves,petioles[,flags]", e.g. "2,3,2,1".
func ParseGenome(s string) (Genome, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	if s == "" {
		return Genome{}, errors.New(errors.ErrCodeInvalidGenome, "genome cannot be empty")
	}
	parts := strings.Split(s, ",")
	vals := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Genome{}, errors.Wrap(errors.ErrCodeInvalidGenome, err, "invalid genome value %q", p)
		}
		vals = append(vals, n)
	}
	return FromValues(vals)
}

func (g Genome) Stems() int         { return g.stems }
func (g Genome) LeavesPerStem() int { return g.leaves }
func (g Genome) Petioles() int      { return g.petioles }
func (g Genome) Flags() int         { return g.flags }

// HasFlag reports whether f is set.
func (g Genome) HasFlag(f Flag) bool { return g.flags&int(f) != 0 }

// IsZero reports whether g is the zero (unset) genome.
func (g Genome) IsZero() bool { return g == Genome{} }

// Values returns the genome as a 4-tuple.
func (g Genome) Values() [4]int {
	return [4]int{g.stems, g.leaves, g.petioles, g.flags}
}

// String formats the genome the way ParseGenome reads it.
func (g Genome) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", g.stems, g.leaves, g.petioles, g.flags)
}

// MarshalJSON encodes the genome as a 4-element array.
func (g Genome) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Values())
}

// UnmarshalJSON decodes and validates a 3 or 4 element array.
func (g *Genome) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGenome, err, "genome must be an array of integers")
	}
	parsed, err := FromValues(v)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
