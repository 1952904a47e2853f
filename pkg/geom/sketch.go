package geom

import (
	"math"

	"github.com/matzehuels/sprout/pkg/random"
)

// JaggedPoints interpolates segments+1 points from start to end and
// wobbles each coordinate, x by jitterX and y by jitterY. Connected with
// straight segments the points read as a pencil line. Each point consumes
// two values from src, x first.
func JaggedPoints(src random.Rand, start, end Point, segments int, jitterX, jitterY float64) []Point {
	if segments < 1 {
		segments = 1
	}
	pts := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		base := start.Lerp(end, t)
		x := src.Wobble(base.X, jitterX)
		y := src.Wobble(base.Y, jitterY)
		pts = append(pts, Point{x, y})
	}
	return pts
}

// QuadraticPoint evaluates the quadratic Bézier p0-p1-p2 at t.
func QuadraticPoint(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

// QuadraticTangentAngle returns the direction, in radians, of the curve
// p0-p1-p2 at t.
func QuadraticTangentAngle(p0, p1, p2 Point, t float64) float64 {
	u := 1 - t
	dx := 2*u*(p1.X-p0.X) + 2*t*(p2.X-p1.X)
	dy := 2*u*(p1.Y-p0.Y) + 2*t*(p2.Y-p1.Y)
	if dx == 0 && dy == 0 {
		return math.Atan2(p2.Y-p0.Y, p2.X-p0.X)
	}
	return math.Atan2(dy, dx)
}

// OrganicBlob places pointCount points around center at even angles, each
// at radius Wobble(baseRadius, baseRadius*0.4), and joins them with
// [SmoothClosed]. The result is a rounded, slightly lumpy patch.
func OrganicBlob(src random.Rand, center Point, baseRadius float64, pointCount int) Path {
	if pointCount < 3 {
		pointCount = 3
	}
	pts := make([]Point, pointCount)
	for i := range pts {
		angle := float64(i) / float64(pointCount) * 2 * math.Pi
		r := src.Wobble(baseRadius, baseRadius*0.4)
		pts[i] = center.Polar(angle, r)
	}
	return SmoothClosed(pts)
}
