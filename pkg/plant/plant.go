package plant

import (
	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/pot"
	"github.com/matzehuels/sprout/pkg/random"
	"github.com/matzehuels/sprout/pkg/scene"
)

// Layout of the plant inside the 300×300 viewport.
const (
	PotHeight       = 60
	potBaseWidth    = 100
	potWidthPerStem = 20
	stemInset       = 5
)

// PotAnchor is the top-center of the pot rim.
var PotAnchor = geom.Pt(150, 220)

// PotWidth returns the pot width for a plant with n stems.
func PotWidth(n int) float64 {
	return potBaseWidth + float64(n)*potWidthPerStem
}

// Options tune generation. The zero value draws a tapered pot.
type Options struct {
	PotStyle pot.Style
}

// Stem is one generated stem.
type Stem struct {
	Index   int
	Type    Type
	Leaf    LeafType
	Base    geom.Point
	Tip     geom.Point
	Drawing scene.Primitive
}

// Plant is the result of Generate.
type Plant struct {
	Genome  Genome
	Input   Input
	Pot     scene.Primitive
	Stems   []Stem
	Flowers []scene.Primitive
}

// Generate draws the pot, every stem and, at the flowering stage, one flower
// per stem. It consumes randomness from src in that order.
func Generate(src random.Rand, g Genome, in Input, opts Options) Plant {
	scale := in.Scale()
	baseHeight := 100 * scale
	leafSize := 25 * scale

	width := PotWidth(g.stems)
	p := Plant{Genome: g, Input: in}
	p.Pot = pot.Draw(src, pot.Options{
		At:     PotAnchor,
		Width:  width,
		Height: PotHeight,
		Style:  opts.PotStyle,
	})

	rim := pot.Measure(opts.PotStyle, width, PotHeight).RimWidth
	left := PotAnchor.X - rim/2
	p.Stems = make([]Stem, 0, g.stems)
	for i := 0; i < g.stems; i++ {
		base := geom.Pt(left+float64(i+1)*rim/float64(g.stems+1), PotAnchor.Y+stemInset)
		height := baseHeight + src.Range(-10, 10)
		kind := TypeFor(g, i)
		s := stem{
			index:    i,
			base:     base,
			height:   height,
			leafSize: leafSize,
			kind:     kind,
			leaf:     chooseLeafType(src, kind, g.petioles),
			leaves:   g.leaves,
			petioles: g.petioles,
		}
		drawing, tip := s.draw(src)
		p.Stems = append(p.Stems, Stem{
			Index:   i,
			Type:    kind,
			Leaf:    s.leaf,
			Base:    base,
			Tip:     tip,
			Drawing: drawing,
		})
	}

	if in.Flowering() {
		for _, s := range p.Stems {
			p.Flowers = append(p.Flowers, drawFlower(src, s.Tip))
		}
	}
	return p
}
