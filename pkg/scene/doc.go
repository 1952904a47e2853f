// Package scene defines the backend-independent drawing tree produced by the
// generators.
//
// # Primitives
//
// A [Primitive] is one of four kinds:
//
//   - [KindLine]: a straight segment
//   - [KindPath]: a [geom.Path] of move/line/quadratic/close commands
//   - [KindCircle]: a circle
//   - [KindGroup]: an ordered list of child primitives
//
// Every primitive carries a [Style] (stroke, fill, width, opacity, filter,
// blend mode) and an optional [Role] naming what it depicts ("leaf",
// "pot", ...). Roles let tests and backends find parts of a drawing without
// depending on draw order.
//
// Primitives are values. Generators build them with [Builder] and never
// modify a primitive after handing it out.
//
// # Scenes
//
// A [Scene] is a viewport size plus an ordered list of layers. Sinks in
// pkg/render turn scenes into SVG, JSON, or a DOT view of the tree.
package scene
