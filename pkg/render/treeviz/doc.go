// Package treeviz renders the structure of a scene as a Graphviz diagram.
//
// # Overview
//
// Where the SVG sink draws the plant, treeviz draws the drawing tree: the
// root scene, its layers, every group and (optionally collapsed) runs of
// primitives. It is a debugging aid for seeing how many strokes a genome
// produces and how the layers nest.
//
// # Usage
//
//	dot := treeviz.ToDOT(s, treeviz.Options{Collapse: true})
//	svg, err := treeviz.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: node labels include stroke width, opacity and filter
//   - Collapse: consecutive primitives of the same kind and role become a
//     single "line ×12" node
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package treeviz
