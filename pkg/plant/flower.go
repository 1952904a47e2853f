package plant

import (
	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/random"
	"github.com/matzehuels/sprout/pkg/scene"
)

const flowerRadius = 8

// drawFlower places an outline-only bloom just above tip.
func drawFlower(src random.Rand, tip geom.Point) scene.Primitive {
	r := src.Wobble(flowerRadius, 1.5)
	center := geom.Pt(tip.X+src.Wobble(0, 2), tip.Y-r-src.Range(1, 3))
	style := scene.Ink(ink, src.Wobble(1.2, 0.2), 0.9).WithFilter(scene.FilterPencilTexture)
	return scene.Circle(center, r, style).As(scene.RoleFlower)
}
