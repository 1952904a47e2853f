// Package svg renders scenes as standalone SVG documents.
//
// # Output
//
// [Render] writes one <svg> element sized to the scene viewport. Groups
// become <g> elements, lines <line>, paths <path> and circles <circle>.
// Style attributes are written as inline CSS so that the blend mode of
// watercolor washes survives copy and paste into other documents.
//
// # Filters
//
// Unless disabled with [WithoutFilters], a <defs> block declares three
// turbulence filters that give strokes their pencil texture:
//
//   - roughPaper: fractal noise displacement, used by pot and stem strokes
//   - pencilTexture: turbulence displacement, used by flowers
//   - pencilSketch: desaturated noise multiplied into the stroke, used by
//     leaf outlines
//
// # Options
//
//   - [WithoutFilters]: omit <defs> and filter references
//   - [WithBackground]: fill the viewport with a paper color
//   - [WithTitle]: add an accessible <title>
//   - [WithRoles]: tag every element with a data-role attribute
package svg
