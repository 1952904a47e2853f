package geom

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/sprout/pkg/random"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestRotate(t *testing.T) {
	tests := []struct {
		name  string
		p, o  Point
		angle float64
		want  Point
	}{
		{"quarter turn", Pt(1, 0), Pt(0, 0), math.Pi / 2, Pt(0, 1)},
		{"half turn about origin", Pt(2, 1), Pt(1, 1), math.Pi, Pt(0, 1)},
		{"no rotation", Pt(3, 4), Pt(10, 10), 0, Pt(3, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotate(tt.p, tt.o, tt.angle)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("Rotate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuadraticPoint(t *testing.T) {
	p0, p1, p2 := Pt(0, 0), Pt(50, -100), Pt(100, 0)
	if got := QuadraticPoint(p0, p1, p2, 0); got != p0 {
		t.Errorf("t=0: got %v, want %v", got, p0)
	}
	if got := QuadraticPoint(p0, p1, p2, 1); got != p2 {
		t.Errorf("t=1: got %v, want %v", got, p2)
	}
	mid := QuadraticPoint(p0, p1, p2, 0.5)
	if !near(mid.X, 50) || !near(mid.Y, -50) {
		t.Errorf("t=0.5: got %v, want (50, -50)", mid)
	}
}

func TestQuadraticTangentAngle(t *testing.T) {
	// Straight vertical curve pointing up (negative Y).
	p0, p1, p2 := Pt(0, 0), Pt(0, -50), Pt(0, -100)
	for _, tt := range []float64{0, 0.3, 1} {
		if got := QuadraticTangentAngle(p0, p1, p2, tt); !near(got, -math.Pi/2) {
			t.Errorf("t=%v: angle = %v, want -π/2", tt, got)
		}
	}

	// Symmetric arch: horizontal at the apex.
	if got := QuadraticTangentAngle(Pt(0, 0), Pt(50, -100), Pt(100, 0), 0.5); !near(got, 0) {
		t.Errorf("apex angle = %v, want 0", got)
	}

	// Degenerate curve falls back to the chord.
	if got := QuadraticTangentAngle(Pt(0, 0), Pt(0, 0), Pt(0, 0), 0); got != 0 {
		t.Errorf("degenerate angle = %v, want 0", got)
	}
}

func TestJaggedPoints(t *testing.T) {
	src := random.FromString("jagged")
	start, end := Pt(0, 0), Pt(60, 0)
	pts := JaggedPoints(src, start, end, 6, 2, 1.5)
	if len(pts) != 7 {
		t.Fatalf("len = %d, want 7", len(pts))
	}
	for i, p := range pts {
		ideal := float64(i) * 10
		if math.Abs(p.X-ideal) > 1 || math.Abs(p.Y) > 0.75 {
			t.Errorf("point %d = %v strays too far from (%v, 0)", i, p, ideal)
		}
	}
}

func TestJaggedPoints_ZeroJitter(t *testing.T) {
	pts := JaggedPoints(random.New(1), Pt(0, 0), Pt(10, 20), 2, 0, 0)
	want := []Point{Pt(0, 0), Pt(5, 10), Pt(10, 20)}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestJaggedPoints_Deterministic(t *testing.T) {
	a := JaggedPoints(random.FromString("x"), Pt(0, 0), Pt(100, 50), 8, 2, 1.5)
	b := JaggedPoints(random.FromString("x"), Pt(0, 0), Pt(100, 50), 8, 2, 1.5)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v != %v", i, a[i], b[i])
		}
	}
}

func TestOrganicBlob(t *testing.T) {
	center := Pt(100, 100)
	path := OrganicBlob(random.FromString("blob"), center, 20, 8)

	if path[0].Op != MoveTo {
		t.Errorf("first command = %v, want MoveTo", path[0].Op)
	}
	if !path.Closed() {
		t.Error("blob should be closed")
	}
	// MoveTo + 7 quadratics + Close
	if len(path) != 9 {
		t.Errorf("len = %d, want 9", len(path))
	}
	for _, p := range path.Points() {
		d := math.Hypot(p.X-center.X, p.Y-center.Y)
		if d > 20*1.2+eps {
			t.Errorf("point %v lies %v from center, beyond max radius", p, d)
		}
	}
}

func TestSmoothClosed(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	p := SmoothClosed(pts)
	if got := p.String(); got != "M 0 0 Q 10 0 10 5 Q 10 10 5 10 Q 0 10 0 5 Z" {
		t.Errorf("SmoothClosed() = %q", got)
	}
}

func TestPath_String(t *testing.T) {
	p := Path{}.MoveTo(Pt(1.234, -0.001)).LineTo(Pt(10, 20.5)).QuadTo(Pt(1, 2), Pt(3, 4)).Close()
	want := "M 1.23 0 L 10 20.5 Q 1 2 3 4 Z"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPath_Map(t *testing.T) {
	p := Polyline([]Point{Pt(0, 0), Pt(1, 1)}).QuadTo(Pt(2, 2), Pt(3, 3))
	shifted := p.Map(func(pt Point) Point { return pt.Add(Pt(10, 0)) })
	if !strings.HasPrefix(shifted.String(), "M 10 0 L 11 1 Q 12 2 13 3") {
		t.Errorf("Map() = %q", shifted.String())
	}
	if p[0].To != Pt(0, 0) {
		t.Error("Map() should not modify the receiver")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{0.5, "0.5"},
		{1.005, "1"},
		{-3.14159, "-3.14"},
		{-0.001, "0"},
		{120, "120"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatNumber(tt.in); got != tt.want {
				t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
