// Package pot draws hand-sketched plant containers.
//
// [Draw] produces a [scene.Primitive] group for one pot, anchored at the
// top-center of its rim. The drawing is layered back to front:
//
//  1. watercolor: an organic wash over the silhouette, optional shadow
//     polygons (square and tapered pots), and three tinted color blobs
//  2. outline: jagged rim, doubled left and right sides, doubled bottom,
//     style accents and a rim underline
//  3. sketch: six construction marks and four texture lines
//  4. shading: twelve short cross-hatch strokes
//
// Five [Style] values select the proportions and side shape:
//
//	style          rim       base      height   sides
//	tapered        w         0.6w      h        straight
//	round          w         0.9w      h        outward sin bulge
//	round-concave  w         0.85w     h        inward sin bulge
//	square         w         0.95w     h        straight, corner hooks
//	bowl           1.2w      0.5w      0.8h     t^1.5 curve, rim band
//
// Every call consumes randomness from the supplied source in draw order, so
// a pot drawn from a freshly seeded source is identical every time.
package pot
