package plant

import (
	"math"

	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/random"
	"github.com/matzehuels/sprout/pkg/scene"
)

const (
	trailSegments = 4
	trailDroop    = 8
	maxBranches   = 3
)

// stem carries everything needed to draw one stem and its leaves.
type stem struct {
	index    int
	base     geom.Point
	height   float64
	leafSize float64
	kind     Type
	leaf     LeafType
	leaves   int
	petioles int
}

// curve is one quadratic stem segment.
type curve struct {
	p0, ctrl, p1 geom.Point
}

func (c curve) at(t float64) (geom.Point, float64) {
	return geom.QuadraticPoint(c.p0, c.ctrl, c.p1, t), geom.QuadraticTangentAngle(c.p0, c.ctrl, c.p1, t)
}

// stroke draws c twice, the second trace lighter and slightly off.
func stroke(src random.Rand, b *scene.Builder, c curve) {
	trace := geom.Path{}.MoveTo(c.p0).QuadTo(c.ctrl, c.p1)
	b.Add(scene.Shape(trace, stemStyle(src.Wobble(1.6, 0.3), 1)).As(scene.RoleCurve))

	ctrl := geom.Pt(src.Wobble(c.ctrl.X, 1.5), src.Wobble(c.ctrl.Y, 1.5))
	end := geom.Pt(src.Wobble(c.p1.X, 1.5), src.Wobble(c.p1.Y, 1.5))
	retrace := geom.Path{}.MoveTo(c.p0).QuadTo(ctrl, end)
	b.Add(scene.Shape(retrace, stemStyle(src.Wobble(1, 0.2), 0.5)).As(scene.RoleCurve))
}

func stemStyle(width, opacity float64) scene.Style {
	return scene.Ink(ink, width, opacity).WithFilter(scene.FilterRoughPaper)
}

// side alternates -1, +1 starting on the left.
func side(i int) float64 {
	if i%2 == 0 {
		return -1
	}
	return 1
}

// draw renders the stem and returns its group and tip.
func (s stem) draw(src random.Rand) (scene.Primitive, geom.Point) {
	var curves, leaves scene.Builder
	var tip geom.Point
	switch s.kind {
	case Bushy:
		tip = s.bushy(src, &curves, &leaves)
	case Trailing:
		tip = s.trailing(src, &curves, &leaves)
	default:
		tip = s.single(src, &curves, &leaves)
	}
	return scene.Group(scene.RoleStem, append(curves.Items(), leaves.Items()...)...), tip
}

func (s stem) addLeaf(src random.Rand, b *scene.Builder, at geom.Point, angle, size float64) {
	b.Add(drawLeaf(src, leaf{
		anchor:   at,
		angle:    angle,
		size:     size,
		kind:     s.leaf,
		petioles: s.petioles,
	}))
}

// single draws upright and spiky stems: one curve with leaves along it,
// perpendicular to the stem and tilted upward.
func (s stem) single(src random.Rand, curves, leaves *scene.Builder) geom.Point {
	jitter := 20.0
	if s.kind == Spiky {
		jitter = 8
	}
	end := geom.Pt(s.base.X+src.Wobble(0, jitter), s.base.Y-s.height)
	ctrl := geom.Pt(s.base.X+src.Wobble(0, jitter*1.5), s.base.Y-s.height*0.5)
	c := curve{p0: s.base, ctrl: ctrl, p1: end}
	stroke(src, curves, c)

	for i := 0; i < s.leaves; i++ {
		t := float64(i+1) / float64(s.leaves+1)
		var tilt float64
		if s.kind == Spiky {
			t = 0.15 + 0.8*t
			tilt = src.Range(0.7, 0.9)
		} else {
			t = clamp(t+src.Wobble(0, 0.1), 0.08, 0.98)
			tilt = src.Range(0.25, 0.6)
		}
		at, tangent := c.at(t)
		angle := tangent + side(i)*(math.Pi/2-tilt)
		s.addLeaf(src, leaves, at, angle, s.leafSize*src.Range(0.85, 1.15))
	}
	return end
}

// bushy fans up to three branches out from the base and clusters leaves at
// the branch tips. Leaves are shared out evenly, remainder to the first
// branches.
func (s stem) bushy(src random.Rand, curves, leaves *scene.Builder) geom.Point {
	count := min(maxBranches, s.leaves)
	tip := s.base
	for bi := 0; bi < count; bi++ {
		spread := (float64(bi) - float64(count-1)/2) * 0.5
		angle := -math.Pi/2 + spread + src.Wobble(0, 0.2)
		length := s.height * src.Range(0.6, 0.85)
		end := s.base.Polar(angle, length)
		ctrl := s.base.Polar(angle+src.Wobble(0, 0.3), length*0.55)
		c := curve{p0: s.base, ctrl: ctrl, p1: end}
		stroke(src, curves, c)
		if end.Y < tip.Y {
			tip = end
		}

		n := s.leaves / count
		if bi < s.leaves%count {
			n++
		}
		for k := 0; k < n; k++ {
			at, tangent := c.at(src.Range(0.75, 1))
			fan := (float64(k)-float64(n-1)/2)*0.7 + src.Wobble(0, 0.2)
			s.addLeaf(src, leaves, at, tangent+fan, s.leafSize*src.Range(0.75, 1))
		}
	}
	return tip
}

// trailing builds a chain of short segments that droop more with every
// link, and hangs heart leaves off alternate sides.
func (s stem) trailing(src random.Rand, curves, leaves *scene.Builder) geom.Point {
	dir := side(s.index)
	segLen := s.height / 3
	chain := make([]curve, 0, trailSegments)
	cur := s.base
	for i := 0; i < trailSegments; i++ {
		droop := float64(i) * trailDroop
		next := cur.Add(geom.Pt(dir*segLen*src.Range(0.6, 0.9), -segLen*0.7+droop))
		ctrl := cur.Mid(next).Add(geom.Pt(src.Wobble(0, 6), src.Wobble(0, 6)-3))
		c := curve{p0: cur, ctrl: ctrl, p1: next}
		stroke(src, curves, c)
		chain = append(chain, c)
		cur = next
	}

	for i := 0; i < s.leaves; i++ {
		u := float64(i+1) / float64(s.leaves+1) * trailSegments
		si := min(int(u), trailSegments-1)
		at, tangent := chain[si].at(u - float64(si))
		perp := tangent + side(i)*math.Pi/2
		angle := math.Atan2(math.Sin(perp)-0.35, math.Cos(perp))
		s.addLeaf(src, leaves, at, angle, s.leafSize*src.Range(0.8, 1))
	}
	return cur
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
