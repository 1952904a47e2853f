package plant

import (
	"math"

	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/random"
	"github.com/matzehuels/sprout/pkg/scene"
)

const ink = "#2d2d2d"

var leafPalette = [...]string{"#7fb069", "#a7c957", "#6a994e", "#9bc59d", "#b5d99c"}

// leaf places one leaf. Shapes are built in leaf-local space along +x with
// the stalk at the origin, then rotated by angle and moved to anchor.
type leaf struct {
	anchor   geom.Point
	angle    float64
	size     float64
	kind     LeafType
	petioles int
}

// blade describes the outline of a single leaf blade in local space.
type blade struct {
	pts    []geom.Point
	smooth bool
	length float64
	width  float64
}

// shape returns the blade outline for kind, starting at x0 on the leaf axis.
func shape(kind LeafType, size, x0 float64) blade {
	switch kind {
	case Elongated:
		l, w := size*1.4, size*0.16
		return profile(l, w, x0, 8, func(u float64, _ int) float64 {
			return math.Pow(math.Sin(math.Pi*u), 0.7)
		}, true)
	case Heart:
		l, w := size, size*0.42
		b := profile(l, w, x0, 7, func(u float64, _ int) float64 {
			return math.Sin(math.Pi * (0.2 + 0.8*u))
		}, true)
		// Close through both basal lobes and the notch between them.
		notch := geom.Pt(x0+l*0.1, 0)
		lobe := geom.Pt(x0, w*math.Sin(0.2*math.Pi))
		b.pts = append(append([]geom.Point{notch}, b.pts...), lobe)
		return b
	case SpikyLeaf:
		l, w := size*1.2, size*0.2
		return profile(l, w, x0, 10, func(u float64, k int) float64 {
			tooth := 0.7
			if k%2 == 1 {
				tooth = 1.35
			}
			return math.Sin(math.Pi*u) * tooth
		}, false)
	}
	return profile(size, size*0.35, x0, 6, func(u float64, _ int) float64 {
		return math.Sin(math.Pi * u)
	}, true)
}

// profile walks the upper edge from base to tip and the lower edge back,
// with half-width w·half(u, k) at fraction u of the blade length.
func profile(l, w, x0 float64, n int, half func(u float64, k int) float64, smooth bool) blade {
	pts := make([]geom.Point, 0, 2*n)
	for k := 0; k <= n; k++ {
		u := float64(k) / float64(n)
		pts = append(pts, geom.Pt(x0+u*l, -w*half(u, k)))
	}
	for k := n - 1; k >= 1; k-- {
		u := float64(k) / float64(n)
		pts = append(pts, geom.Pt(x0+u*l, w*half(u, k)))
	}
	return blade{pts: pts, smooth: smooth, length: l, width: w}
}

func (b blade) path(pts []geom.Point) geom.Path {
	if b.smooth {
		return geom.SmoothClosed(pts)
	}
	return geom.Polyline(pts).Close()
}

func drawLeaf(src random.Rand, l leaf) scene.Primitive {
	jitter := 0.3 + l.size*0.04
	place := func(p geom.Point) geom.Point {
		q := geom.Rotate(p, geom.Point{}, l.angle).Add(l.anchor)
		return geom.Pt(src.Wobble(q.X, jitter), src.Wobble(q.Y, jitter))
	}
	placeAll := func(pts []geom.Point) []geom.Point {
		out := make([]geom.Point, len(pts))
		for i, p := range pts {
			out[i] = place(p)
		}
		return out
	}

	color := leafPalette[src.IntRange(0, len(leafPalette)-1)]
	wash := scene.Wash(color, src.Range(0.2, 0.4))
	outline := func() scene.Style {
		return scene.Ink(ink, src.Wobble(1, 0.2), src.Wobble(0.85, 0.1)).WithFilter(scene.FilterPencilSketch)
	}

	var b scene.Builder
	if l.kind == Compound {
		spine := l.size * (0.6 + 0.25*float64(l.petioles))
		leaflets := [...]struct{ at, size, turn float64 }{
			{0.45, 0.5, 0.9},
			{0.75, 0.4, -0.9},
			{1.0, 0.3, 0},
		}
		var outlines []scene.Primitive
		for _, lf := range leaflets {
			bl := shape(Oval, l.size*lf.size, 0)
			local := make([]geom.Point, len(bl.pts))
			for i, p := range bl.pts {
				local[i] = geom.Rotate(p, geom.Point{}, lf.turn).Add(geom.Pt(spine*lf.at, 0))
			}
			b.Add(scene.Shape(bl.path(placeAll(scaleAbout(local, 1.08))), wash).As(scene.RoleUnderlay))
			outlines = append(outlines, scene.Shape(bl.path(placeAll(local)), outline()).As(scene.RoleOutline))
		}
		ctrl := geom.Pt(spine/2, src.Wobble(0, 2))
		spinePath := geom.Path{}.MoveTo(place(geom.Point{})).QuadTo(place(ctrl), place(geom.Pt(spine, 0)))
		b.Add(scene.Shape(spinePath, scene.Ink(ink, src.Wobble(0.9, 0.2), 0.9)).As(scene.RolePetiole))
		b.Add(outlines...)
		return b.Group(scene.RoleLeaf)
	}

	stalk := l.size * 0.12 * float64(l.petioles)
	bl := shape(l.kind, l.size, stalk)

	b.Add(scene.Shape(bl.path(placeAll(scaleAbout(bl.pts, 1.08))), wash).As(scene.RoleUnderlay))
	b.Add(scene.Line(place(geom.Point{}), place(geom.Pt(stalk, 0)), scene.Ink(ink, src.Wobble(0.9, 0.2), 0.9)).As(scene.RolePetiole))
	b.Add(scene.Shape(bl.path(placeAll(bl.pts)), outline()).As(scene.RoleOutline))

	veinStart := geom.Pt(stalk+bl.length*0.05, 0)
	veinEnd := geom.Pt(stalk+bl.length*0.85, 0)
	veinCtrl := geom.Pt(stalk+bl.length*0.45, src.Wobble(0, bl.width*0.2))
	vein := geom.Path{}.MoveTo(place(veinStart)).QuadTo(place(veinCtrl), place(veinEnd))
	b.Add(scene.Shape(vein, scene.Ink(ink, src.Wobble(0.6, 0.15), src.Wobble(0.5, 0.1))).As(scene.RoleVein))

	return b.Group(scene.RoleLeaf)
}

// scaleAbout scales pts by k about their centroid.
func scaleAbout(pts []geom.Point, k float64) []geom.Point {
	if len(pts) == 0 {
		return nil
	}
	var c geom.Point
	for _, p := range pts {
		c = c.Add(p)
	}
	c = c.Scale(1 / float64(len(pts)))
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = c.Add(p.Sub(c).Scale(k))
	}
	return out
}
