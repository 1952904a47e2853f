// Package compose assembles generated parts into complete scenes.
//
// A plant scene is a fixed 300×300 viewport with layers in draw order: the
// pot, one group per stem, and at the flowering stage a flowers group.
// Composition adds no randomness of its own.
package compose

import (
	"github.com/matzehuels/sprout/pkg/plant"
	"github.com/matzehuels/sprout/pkg/pot"
	"github.com/matzehuels/sprout/pkg/random"
	"github.com/matzehuels/sprout/pkg/scene"
)

// Viewport is the side length of a plant scene.
const Viewport = 300

// Compose generates a plant and lays it out as a scene.
func Compose(src random.Rand, g plant.Genome, in plant.Input, opts plant.Options) scene.Scene {
	return Layout(plant.Generate(src, g, in, opts))
}

// FromSeed is Compose with a fresh source seeded from seed.
func FromSeed(seed string, g plant.Genome, in plant.Input, opts plant.Options) scene.Scene {
	return Compose(random.FromString(seed), g, in, opts)
}

// Layout arranges an already generated plant into a scene.
func Layout(p plant.Plant) scene.Scene {
	layers := make([]scene.Primitive, 0, len(p.Stems)+2)
	layers = append(layers, p.Pot)
	for _, s := range p.Stems {
		layers = append(layers, s.Drawing)
	}
	if len(p.Flowers) > 0 {
		layers = append(layers, scene.Group(scene.RoleFlowers, p.Flowers...))
	}
	return scene.Scene{Width: Viewport, Height: Viewport, Layers: layers}
}

// Pot returns a scene holding a single pot in a size × size viewport.
func Pot(src random.Rand, opts pot.Options, size float64) scene.Scene {
	return scene.Scene{
		Width:  size,
		Height: size,
		Layers: []scene.Primitive{pot.Draw(src, opts)},
	}
}
