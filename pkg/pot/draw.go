package pot

import (
	"math"

	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/random"
	"github.com/matzehuels/sprout/pkg/scene"
)

const (
	ink        = "#2d2d2d"
	washColor  = "#d4c5b0"
	rimShadow  = "#8b7355"
	sideShadow = "#a0895c"

	// Jitter applied by the pot's jagged lines.
	jitterX = 2
	jitterY = 1.5

	cornerSize = 5
	sidePoints = 8
)

var blobPalette = [...]string{"#d4c5b0", "#c4b59f", "#b5a68a", "#e0d1be"}

// Options place and size a pot. At is the top-center of the rim.
type Options struct {
	At     geom.Point
	Width  float64
	Height float64
	Style  Style
}

// Draw returns the layered drawing of one pot. The returned group has role
// [scene.RolePot] and four child groups: watercolor, outline, sketch and
// shading.
func Draw(src random.Rand, opts Options) scene.Primitive {
	if !opts.Style.Valid() {
		opts.Style = Tapered
	}
	d := &drawer{
		src:  src,
		opts: opts,
		dims: Measure(opts.Style, opts.Width, opts.Height),
	}
	return scene.Group(scene.RolePot,
		d.watercolor(),
		d.outline(),
		d.sketch(),
		d.shading(),
	)
}

type drawer struct {
	src  random.Rand
	opts Options
	dims Dimensions
}

func (d *drawer) jagged(start, end geom.Point, segments int) []geom.Point {
	return geom.JaggedPoints(d.src, start, end, segments, jitterX, jitterY)
}

func outlineStyle(width, opacity float64) scene.Style {
	return scene.Ink(ink, width, opacity).WithFilter(scene.FilterRoughPaper)
}

func (d *drawer) watercolor() scene.Primitive {
	var b scene.Builder
	b.Add(d.baseWash())
	switch d.opts.Style {
	case Square:
		b.Add(d.squareShadows()...)
	case Tapered:
		b.Add(d.taperedShadow())
	}
	b.Add(d.colorBlobs()...)
	return b.Group(scene.RoleWatercolor)
}

// baseWash traces a rough ring of points just inside the silhouette and
// smooths it into a closed shape.
func (d *drawer) baseWash() scene.Primitive {
	x, y := d.opts.At.X, d.opts.At.Y
	w, h := d.opts.Width, d.opts.Height
	rim := w
	base := w * 0.85
	if d.opts.Style == Tapered {
		base = w * 0.7
	}
	side := func(t float64) float64 {
		return rim*0.45 + t*(base*0.45-rim*0.45)
	}

	pts := make([]geom.Point, 0, 28)
	for i := 0; i <= 8; i++ {
		t := float64(i) / 8
		pts = append(pts, geom.Pt(x-rim*0.45+t*rim*0.9, y+d.src.Wobble(8, 3)))
	}
	for i := 1; i <= 6; i++ {
		t := float64(i) / 6
		px := x + side(t) + d.src.Wobble(0, 4)
		py := y + t*h*0.85 + d.src.Wobble(0, 3)
		pts = append(pts, geom.Pt(px, py))
	}
	for i := 7; i >= 0; i-- {
		t := float64(i) / 8
		pts = append(pts, geom.Pt(x-base*0.4+t*base*0.8, y+h*0.85+d.src.Wobble(0, 3)))
	}
	for i := 5; i >= 1; i-- {
		t := float64(i) / 6
		px := x - side(t) + d.src.Wobble(0, 4)
		py := y + t*h*0.85 + d.src.Wobble(0, 3)
		pts = append(pts, geom.Pt(px, py))
	}
	return scene.Shape(geom.SmoothClosed(pts), scene.Wash(washColor, 0.15))
}

func (d *drawer) squareShadows() []scene.Primitive {
	x, y := d.opts.At.X, d.opts.At.Y
	w, h := d.opts.Width, d.opts.Height

	edge := d.jagged(geom.Pt(x-w*0.4, y+2), geom.Pt(x+w*0.4, y+8), 6)
	rimPath := geom.Polyline(edge).
		LineTo(geom.Pt(x+w*0.4, y+2)).
		LineTo(geom.Pt(x-w*0.4, y+2)).
		Close()

	inner := d.jagged(geom.Pt(x+w*0.35, y+5), geom.Pt(x+w*0.25, y+h*0.9), 5)
	sidePath := geom.Path{}.
		MoveTo(geom.Pt(x+w*0.45, y)).
		LineTo(geom.Pt(x+w*0.45, y+h))
	for i := len(inner) - 1; i >= 0; i-- {
		sidePath = sidePath.LineTo(inner[i])
	}
	sidePath = sidePath.Close()

	return []scene.Primitive{
		scene.Shape(rimPath, scene.Wash(rimShadow, 0.2)),
		scene.Shape(sidePath, scene.Wash(sideShadow, 0.18)),
	}
}

// taperedShadow darkens a strip inside the right side, following its slope.
func (d *drawer) taperedShadow() scene.Primitive {
	x, y := d.opts.At.X, d.opts.At.Y
	w, h := d.opts.Width, d.opts.Height

	inner := d.jagged(geom.Pt(x+w*0.33, y+5), geom.Pt(x+w*0.2, y+h*0.9), 5)
	p := geom.Path{}.
		MoveTo(geom.Pt(x+w*0.46, y+2)).
		LineTo(geom.Pt(x+w*0.28, y+h*0.95))
	for i := len(inner) - 1; i >= 0; i-- {
		p = p.LineTo(inner[i])
	}
	return scene.Shape(p.Close(), scene.Wash(sideShadow, 0.18))
}

func (d *drawer) colorBlobs() []scene.Primitive {
	x, y := d.opts.At.X, d.opts.At.Y
	w, h := d.opts.Width, d.opts.Height

	blobs := make([]scene.Primitive, 0, 3)
	for i := 0; i < 3; i++ {
		cx := x + d.src.Wobble(0, w*0.3)
		cy := y + h*0.3 + d.src.Wobble(0, h*0.4)
		size := d.src.Range(15, 35)
		path := geom.OrganicBlob(d.src, geom.Pt(cx, cy), size, 8)
		color := blobPalette[i%len(blobPalette)]
		blobs = append(blobs, scene.Shape(path, scene.Wash(color, d.src.Range(0.08, 0.15))))
	}
	return blobs
}

func (d *drawer) outline() scene.Primitive {
	x, y := d.opts.At.X, d.opts.At.Y
	rim, base, ph := d.dims.RimWidth, d.dims.BaseWidth, d.dims.Height

	var b scene.Builder

	rimPts := d.jagged(geom.Pt(x-rim/2, y), geom.Pt(x+rim/2, y), 6)
	b.Add(scene.Shape(geom.Polyline(rimPts), outlineStyle(d.src.Wobble(1.5, 0.3), 1)).As(scene.RoleOutline))

	for _, dir := range [...]float64{-1, 1} {
		for j := 0; j < 2; j++ {
			pts := d.side(dir)
			opacity := 1.0
			if j > 0 {
				opacity = 0.6
			}
			b.Add(scene.Shape(geom.Polyline(pts), outlineStyle(d.src.Wobble(1.2, 0.4), opacity)).As(scene.RoleOutline))
		}
	}

	for j := 0; j < 2; j++ {
		pts := d.jagged(
			geom.Pt(d.src.Wobble(x-base/2, 1), d.src.Wobble(y+ph, 1)),
			geom.Pt(d.src.Wobble(x+base/2, 1), d.src.Wobble(y+ph, 1)),
			6,
		)
		opacity := 1.0
		if j > 0 {
			opacity = 0.5
		}
		b.Add(scene.Shape(geom.Polyline(pts), outlineStyle(d.src.Wobble(1.3, 0.3), opacity)).As(scene.RoleOutline))
	}

	b.Add(d.accents()...)

	w := d.opts.Width
	underline := scene.Line(
		geom.Pt(d.src.Wobble(x-w/2, 2), d.src.Wobble(y+3, 1)),
		geom.Pt(d.src.Wobble(x+w/2, 2), d.src.Wobble(y+3, 1)),
		scene.Style{
			Stroke:      ink,
			StrokeWidth: d.src.Wobble(0.8, 0.2),
			Opacity:     d.src.Wobble(0.3, 0.1),
		},
	)
	b.Add(underline.As(scene.RoleOutline))

	return b.Group(scene.RoleOutline)
}

// side traces one side of the pot from rim to base. dir is -1 for the left
// side and +1 for the right.
func (d *drawer) side(dir float64) []geom.Point {
	x, y := d.opts.At.X, d.opts.At.Y
	w := d.opts.Width
	rim, base, ph := d.dims.RimWidth, d.dims.BaseWidth, d.dims.Height

	var widthAt func(t float64) float64
	switch d.opts.Style {
	case Round:
		widthAt = func(t float64) float64 {
			return rim + (base-rim)*t + math.Sin(t*math.Pi)*w*0.05
		}
	case RoundConcave:
		widthAt = func(t float64) float64 {
			return rim + (base-rim)*t - math.Sin(t*math.Pi)*w*0.1
		}
	case Bowl:
		widthAt = func(t float64) float64 {
			return rim + (base-rim)*math.Pow(t, 1.5)
		}
	default:
		return d.jagged(
			geom.Pt(d.src.Wobble(x+dir*rim/2, 1), d.src.Wobble(y, 1)),
			geom.Pt(d.src.Wobble(x+dir*base/2, 2), d.src.Wobble(y+ph, 1)),
			sidePoints,
		)
	}

	pts := make([]geom.Point, 0, sidePoints+1)
	for i := 0; i <= sidePoints; i++ {
		t := float64(i) / sidePoints
		px := d.src.Wobble(x+dir*widthAt(t)/2, 1)
		py := d.src.Wobble(y+t*ph, 1)
		pts = append(pts, geom.Pt(px, py))
	}
	return pts
}

func (d *drawer) accents() []scene.Primitive {
	x, y := d.opts.At.X, d.opts.At.Y
	rim := d.dims.RimWidth
	left, right := x-rim/2, x+rim/2

	switch d.opts.Style {
	case Square:
		tl := geom.Path{}.
			MoveTo(geom.Pt(left-1, y+cornerSize)).
			LineTo(geom.Pt(left, y)).
			LineTo(geom.Pt(left+cornerSize, y-1))
		tr := geom.Path{}.
			MoveTo(geom.Pt(right-cornerSize, y-1)).
			LineTo(geom.Pt(right, y)).
			LineTo(geom.Pt(right+1, y+cornerSize))
		return []scene.Primitive{
			scene.Shape(tl, outlineStyle(d.src.Wobble(1.5, 0.2), 0.6)).As(scene.RoleAccent),
			scene.Shape(tr, outlineStyle(d.src.Wobble(1.5, 0.2), 0.6)).As(scene.RoleAccent),
		}
	case Bowl:
		band := geom.Path{}.
			MoveTo(geom.Pt(left+5, y+5)).
			LineTo(geom.Pt(right-5, y+5))
		return []scene.Primitive{
			scene.Shape(band, outlineStyle(d.src.Wobble(2.5, 0.4), 0.3)).As(scene.RoleAccent),
		}
	}
	return nil
}

// sketch adds construction marks and horizontal texture lines.
func (d *drawer) sketch() scene.Primitive {
	x, y := d.opts.At.X, d.opts.At.Y
	w, h := d.opts.Width, d.opts.Height

	var b scene.Builder
	for i := 0; i < 6; i++ {
		mx := d.src.Wobble(x+(d.src.Next()-0.5)*w*0.8, 3)
		my := d.src.Wobble(y+d.src.Next()*h, 3)
		length := d.src.Wobble(8, 4)
		angle := d.src.Wobble(math.Pi/4, math.Pi/8)
		if d.src.Next() > 0.5 {
			angle += math.Pi / 2
		}
		start := geom.Pt(mx, my)
		style := scene.Style{Stroke: ink, StrokeWidth: d.src.Wobble(0.4, 0.2), Opacity: d.src.Wobble(0.15, 0.05)}
		b.Add(scene.Line(start, start.Polar(angle, length), style).As(scene.RoleSketch))
	}

	for i := 0; i < 4; i++ {
		ly := y + h*0.25 + float64(i)*h*0.18
		segments := max(1, int(math.Round(d.src.Wobble(4, 1))))
		pts := d.jagged(geom.Pt(x-w*0.35, ly), geom.Pt(x+w*0.35, ly), segments)
		style := scene.Style{Stroke: ink, StrokeWidth: d.src.Wobble(0.5, 0.2), Opacity: d.src.Wobble(0.25, 0.1)}
		b.Add(scene.Shape(geom.Polyline(pts), style).As(scene.RoleSketch))
	}
	return b.Group(scene.RoleSketch)
}

// shading adds short diagonal hatch strokes across the lower body.
func (d *drawer) shading() scene.Primitive {
	x, y := d.opts.At.X, d.opts.At.Y
	w, h := d.opts.Width, d.opts.Height

	var b scene.Builder
	for i := 0; i < 12; i++ {
		sx := d.src.Wobble(x-w*0.25+d.src.Next()*w*0.4, 2)
		sy := d.src.Wobble(y+h*0.3+d.src.Next()*h*0.5, 2)
		length := d.src.Wobble(6, 3)
		angle := d.src.Wobble(math.Pi/4, math.Pi/6)
		start := geom.Pt(sx, sy)
		style := scene.Style{Stroke: ink, StrokeWidth: d.src.Wobble(0.3, 0.1), Opacity: d.src.Wobble(0.15, 0.05)}
		b.Add(scene.Line(start, start.Polar(angle, length), style).As(scene.RoleShading))
	}
	return b.Group(scene.RoleShading)
}
