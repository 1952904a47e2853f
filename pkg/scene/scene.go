package scene

import (
	"math"

	"github.com/matzehuels/sprout/pkg/geom"
)

// Kind identifies the shape of a primitive.
type Kind uint8

const (
	KindLine Kind = iota
	KindPath
	KindCircle
	KindGroup
)

var kindNames = [...]string{"line", "path", "circle", "group"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Role names what a primitive depicts.
type Role string

const (
	RoleNone       Role = ""
	RolePot        Role = "pot"
	RoleWatercolor Role = "watercolor"
	RoleOutline    Role = "outline"
	RoleAccent     Role = "accent"
	RoleSketch     Role = "sketch"
	RoleShading    Role = "shading"
	RoleStem       Role = "stem"
	RoleCurve      Role = "curve"
	RoleLeaf       Role = "leaf"
	RoleUnderlay   Role = "underlay"
	RoleVein       Role = "vein"
	RolePetiole    Role = "petiole"
	RoleFlowers    Role = "flowers"
	RoleFlower     Role = "flower"
	RoleCell       Role = "cell"
)

// Blend modes understood by the SVG sink.
const (
	BlendNormal   = ""
	BlendMultiply = "multiply"
)

// Filter ids emitted by the SVG sink's defs block.
const (
	FilterNone          = ""
	FilterRoughPaper    = "roughPaper"
	FilterPencilTexture = "pencilTexture"
	FilterPencilSketch  = "pencilSketch"
)

// Style holds presentation attributes. Empty strings and zero widths mean
// "not set"; Opacity is always written and defaults to 1 via the
// constructors.
type Style struct {
	Stroke      string  // stroke color, empty for none
	Fill        string  // fill color, empty for none
	StrokeWidth float64 // stroke width in drawing units
	Opacity     float64 // 0..1
	LineCap     string  // "round", "butt", ...
	LineJoin    string  // "round", "miter", ...
	Filter      string  // filter id, see Filter* constants
	Blend       string  // mix-blend-mode, see Blend* constants
}

// Ink returns a stroke-only style with round caps and joins.
func Ink(color string, width, opacity float64) Style {
	return Style{
		Stroke:      color,
		StrokeWidth: width,
		Opacity:     opacity,
		LineCap:     "round",
		LineJoin:    "round",
	}
}

// Wash returns a fill-only style blended multiplicatively.
func Wash(color string, opacity float64) Style {
	return Style{Fill: color, Opacity: opacity, Blend: BlendMultiply}
}

// WithFilter returns a copy of s using filter id.
func (s Style) WithFilter(id string) Style {
	s.Filter = id
	return s
}

// Primitive is a node of the drawing tree. Only the fields relevant to Kind
// are populated.
type Primitive struct {
	Kind  Kind
	Role  Role
	Style Style

	From, To geom.Point // KindLine
	Path     geom.Path  // KindPath
	Center   geom.Point // KindCircle
	Radius   float64    // KindCircle

	Children []Primitive // KindGroup
}

// Line returns a straight segment.
func Line(from, to geom.Point, style Style) Primitive {
	return Primitive{Kind: KindLine, From: from, To: to, Style: style}
}

// Shape returns a path primitive.
func Shape(path geom.Path, style Style) Primitive {
	return Primitive{Kind: KindPath, Path: path, Style: style}
}

// Circle returns a circle primitive.
func Circle(center geom.Point, radius float64, style Style) Primitive {
	return Primitive{Kind: KindCircle, Center: center, Radius: radius, Style: style}
}

// Group returns a group holding a copy of children.
func Group(role Role, children ...Primitive) Primitive {
	kids := make([]Primitive, len(children))
	copy(kids, children)
	return Primitive{Kind: KindGroup, Role: role, Style: Style{Opacity: 1}, Children: kids}
}

// As returns a copy of p tagged with role.
func (p Primitive) As(role Role) Primitive {
	p.Role = role
	return p
}

// Map returns a deep copy of p with fn applied to every coordinate. Radii
// and stroke widths are left alone.
func (p Primitive) Map(fn func(geom.Point) geom.Point) Primitive {
	switch p.Kind {
	case KindLine:
		p.From, p.To = fn(p.From), fn(p.To)
	case KindPath:
		p.Path = p.Path.Map(fn)
	case KindCircle:
		p.Center = fn(p.Center)
	case KindGroup:
		kids := make([]Primitive, len(p.Children))
		for i, c := range p.Children {
			kids[i] = c.Map(fn)
		}
		p.Children = kids
	}
	return p
}

// Translate returns a copy of p moved by d.
func (p Primitive) Translate(d geom.Point) Primitive {
	return p.Map(func(q geom.Point) geom.Point { return q.Add(d) })
}

// Points returns every coordinate of a non-group primitive.
func (p Primitive) Points() []geom.Point {
	switch p.Kind {
	case KindLine:
		return []geom.Point{p.From, p.To}
	case KindPath:
		return p.Path.Points()
	case KindCircle:
		return []geom.Point{p.Center}
	}
	return nil
}

// Scene is a complete drawing: a viewport and its ordered layers.
type Scene struct {
	Width, Height float64
	Layers        []Primitive
}

// Root returns the scene's layers wrapped in a single unnamed group.
func (s *Scene) Root() Primitive {
	return Group(RoleNone, s.Layers...)
}

// Walk visits p and its descendants depth-first in draw order. Returning
// false from fn skips the node's children.
func Walk(p Primitive, fn func(p Primitive, depth int) bool) {
	walk(p, 0, fn)
}

func walk(p Primitive, depth int, fn func(Primitive, int) bool) {
	if !fn(p, depth) {
		return
	}
	for _, c := range p.Children {
		walk(c, depth+1, fn)
	}
}

// Count returns how many primitives in the scene satisfy pred. A nil pred
// counts every primitive, groups included.
func (s *Scene) Count(pred func(Primitive) bool) int {
	n := 0
	for _, l := range s.Layers {
		Walk(l, func(p Primitive, _ int) bool {
			if pred == nil || pred(p) {
				n++
			}
			return true
		})
	}
	return n
}

// Find returns, in draw order, every primitive with the given role.
func Find(root Primitive, role Role) []Primitive {
	var out []Primitive
	Walk(root, func(p Primitive, _ int) bool {
		if p.Role == role {
			out = append(out, p)
		}
		return true
	})
	return out
}

// ChildrenWithRole returns the direct children of p carrying role.
func ChildrenWithRole(p Primitive, role Role) []Primitive {
	var out []Primitive
	for _, c := range p.Children {
		if c.Role == role {
			out = append(out, c)
		}
	}
	return out
}

// Valid reports whether every coordinate in the tree is finite, every
// opacity lies in [0, 1], and every stroked shape has a positive width.
func Valid(root Primitive) bool {
	ok := true
	Walk(root, func(p Primitive, _ int) bool {
		if p.Style.Opacity < 0 || p.Style.Opacity > 1 || math.IsNaN(p.Style.Opacity) {
			ok = false
		}
		if p.Kind != KindGroup && p.Style.Stroke != "" && !(p.Style.StrokeWidth > 0) {
			ok = false
		}
		if p.Kind == KindCircle && !(p.Radius > 0) {
			ok = false
		}
		for _, pt := range p.Points() {
			if !pt.Finite() {
				ok = false
			}
		}
		return ok
	})
	return ok
}
