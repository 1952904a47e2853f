package sheet

import (
	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/random"
	"github.com/matzehuels/sprout/pkg/scene"
)

const (
	comboStemColor = "#16a34a"
	comboLeafFill  = "#e8f5e9"
	comboInk       = "#2d2d2d"
	comboStemH     = 80.0
	comboLeafSize  = 12.0
)

// comboStem draws the simple sketch stem used on the combos sheet: a
// gently bent stroke with two almond leaves on alternating sides.
func comboStem(src random.Rand, i int) scene.Primitive {
	base := geom.Pt(90+float64(i)*40, 225)
	ctrl := geom.Pt(base.X+(src.Next()-0.5)*3, base.Y-comboStemH/2)
	tip := geom.Pt(base.X+(src.Next()-0.5)*2, base.Y-comboStemH)

	stemStyle := scene.Ink(comboStemColor, 2, 1).WithFilter(scene.FilterRoughPaper)
	leafStyle := scene.Ink(comboInk, 1, 1).WithFilter(scene.FilterRoughPaper)
	leafStyle.Fill = comboLeafFill

	b := &scene.Builder{}
	b.Add(scene.Shape(geom.Path{}.MoveTo(base).QuadTo(ctrl, tip), stemStyle).As(scene.RoleCurve))

	w := func(v float64) float64 { return src.Wobble(v, 2) }
	for li := range 2 {
		side := 1.0
		if li%2 == 0 {
			side = -1
		}
		x := base.X + side*15
		y := base.Y - comboStemH*float64(li+1)/3
		p := geom.Path{}.
			MoveTo(geom.Pt(w(x), w(y))).
			QuadTo(geom.Pt(w(x-comboLeafSize/2), w(y-comboLeafSize)), geom.Pt(w(x), w(y-comboLeafSize*1.5))).
			QuadTo(geom.Pt(w(x+comboLeafSize/2), w(y-comboLeafSize)), geom.Pt(w(x), w(y)))
		b.Add(scene.Shape(p, leafStyle).As(scene.RoleLeaf))
	}
	return b.Group(scene.RoleStem)
}
