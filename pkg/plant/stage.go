package plant

import (
	"github.com/matzehuels/sprout/pkg/errors"
)

// Growth stage bounds.
const (
	MinStage       = 1
	MaxStage       = 4
	FloweringStage = 4
)

// Input selects the growth stage to draw.
type Input struct {
	time int
}

// NewInput validates a growth stage (1-4).
func NewInput(time int) (Input, error) {
	if time < MinStage || time > MaxStage {
		return Input{}, errors.New(errors.ErrCodeInvalidStage, "growth stage must be %d-%d, got %d", MinStage, MaxStage, time)
	}
	return Input{time: time}, nil
}

// MustInput is like NewInput but panics on invalid values.
func MustInput(time int) Input {
	in, err := NewInput(time)
	if err != nil {
		panic(err)
	}
	return in
}

// Time returns the growth stage.
func (in Input) Time() int { return in.time }

// Scale returns the growth scale factor, stage × 0.25.
func (in Input) Scale() float64 { return float64(in.time) * 0.25 }

// Flowering reports whether the stage draws flowers.
func (in Input) Flowering() bool { return in.time == FloweringStage }

// Stage documents one growth stage.
type Stage struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Characteristics []string `json:"characteristics"`
}

var stages = [...]Stage{
	{
		ID:          1,
		Name:        "Seedling",
		Description: "Initial sprouting phase with minimal foliage",
		Characteristics: []string{
			"Small stem height",
			"Minimal leaf development",
			"Focus on root establishment",
		},
	},
	{
		ID:          2,
		Name:        "Young Plant",
		Description: "Active vegetative growth with developing structure",
		Characteristics: []string{
			"Moderate stem elongation",
			"Leaf expansion",
			"Branch formation",
		},
	},
	{
		ID:          3,
		Name:        "Mature Plant",
		Description: "Full vegetative development with established structure",
		Characteristics: []string{
			"Maximum foliage",
			"Strong stem structure",
			"Optimal photosynthetic capacity",
		},
	},
	{
		ID:          4,
		Name:        "Flowering",
		Description: "Reproductive phase with flower development",
		Characteristics: []string{
			"Flower production",
			"Reproductive maturity",
			"Energy allocation to reproduction",
		},
	},
}

// Stages returns the growth stage catalog in order.
func Stages() []Stage {
	out := make([]Stage, len(stages))
	for i, s := range stages {
		s.Characteristics = append([]string(nil), s.Characteristics...)
		out[i] = s
	}
	return out
}

// StageByID returns the catalog entry for id.
func StageByID(id int) (Stage, error) {
	if id < MinStage || id > MaxStage {
		return Stage{}, errors.New(errors.ErrCodeNotFound, "no growth stage %d", id)
	}
	return Stages()[id-1], nil
}

// Stage returns the catalog entry for the input's stage.
func (in Input) Stage() Stage {
	s, _ := StageByID(in.time)
	return s
}
