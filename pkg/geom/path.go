package geom

import (
	"strconv"
	"strings"
)

// Op is a path command.
type Op uint8

const (
	MoveTo Op = iota
	LineTo
	QuadTo
	Close
)

// Command is one path instruction. Ctrl is only meaningful for QuadTo;
// To is unused for Close.
type Command struct {
	Op   Op
	Ctrl Point
	To   Point
}

// Path is an ordered list of commands.
type Path []Command

// MoveTo appends a move command.
func (p Path) MoveTo(pt Point) Path { return append(p, Command{Op: MoveTo, To: pt}) }

// LineTo appends a straight segment.
func (p Path) LineTo(pt Point) Path { return append(p, Command{Op: LineTo, To: pt}) }

// QuadTo appends a quadratic Bézier segment.
func (p Path) QuadTo(ctrl, pt Point) Path {
	return append(p, Command{Op: QuadTo, Ctrl: ctrl, To: pt})
}

// Close appends a close command.
func (p Path) Close() Path { return append(p, Command{Op: Close}) }

// Closed reports whether the path ends with a close command.
func (p Path) Closed() bool {
	return len(p) > 0 && p[len(p)-1].Op == Close
}

// Points returns every coordinate referenced by the path, control points
// included, in command order.
func (p Path) Points() []Point {
	pts := make([]Point, 0, len(p)*2)
	for _, c := range p {
		switch c.Op {
		case MoveTo, LineTo:
			pts = append(pts, c.To)
		case QuadTo:
			pts = append(pts, c.Ctrl, c.To)
		}
	}
	return pts
}

// Map returns a copy of the path with fn applied to every point, visiting
// points in command order (control point before end point).
func (p Path) Map(fn func(Point) Point) Path {
	out := make(Path, len(p))
	for i, c := range p {
		switch c.Op {
		case MoveTo, LineTo:
			c.To = fn(c.To)
		case QuadTo:
			c.Ctrl = fn(c.Ctrl)
			c.To = fn(c.To)
		}
		out[i] = c
	}
	return out
}

// String renders the path in SVG path-data syntax with two decimals.
func (p Path) String() string {
	var b strings.Builder
	for i, c := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch c.Op {
		case MoveTo:
			b.WriteString("M ")
			writePoint(&b, c.To)
		case LineTo:
			b.WriteString("L ")
			writePoint(&b, c.To)
		case QuadTo:
			b.WriteString("Q ")
			writePoint(&b, c.Ctrl)
			b.WriteByte(' ')
			writePoint(&b, c.To)
		case Close:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(FormatNumber(p.X))
	b.WriteByte(' ')
	b.WriteString(FormatNumber(p.Y))
}

// FormatNumber formats v with at most two decimals and no trailing zeros.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// Polyline returns a path moving to the first point and drawing straight
// segments through the rest.
func Polyline(pts []Point) Path {
	if len(pts) == 0 {
		return nil
	}
	p := make(Path, 0, len(pts))
	p = p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p = p.LineTo(pt)
	}
	return p
}

// SmoothClosed returns a closed path that starts at pts[0] and, for every
// following point, curves through it toward the midpoint between it and its
// successor (wrapping to pts[0]). The result is a rounded outline that
// passes near every point without sharp corners.
func SmoothClosed(pts []Point) Path {
	if len(pts) == 0 {
		return nil
	}
	p := make(Path, 0, len(pts)+1)
	p = p.MoveTo(pts[0])
	for i := 1; i < len(pts); i++ {
		next := pts[(i+1)%len(pts)]
		p = p.QuadTo(pts[i], pts[i].Mid(next))
	}
	return p.Close()
}
