// Package geom provides the small 2D toolkit used to turn ideal shapes into
// hand-drawn ones.
//
// Points are plain value types. Paths are ordered lists of move, line,
// quadratic-curve and close commands that any vector backend can replay.
//
// The sketch helpers take a [random.Rand] and consume it in a fixed order:
//
//   - [JaggedPoints] interpolates a straight line and jitters every point
//   - [OrganicBlob] places wobbled points on a circle and smooths them
//   - [SmoothClosed] joins points with quadratics through their midpoints
//
// [QuadraticPoint] and [QuadraticTangentAngle] evaluate a quadratic Bézier
// and its direction, which is how leaves are placed along curved stems.
package geom
