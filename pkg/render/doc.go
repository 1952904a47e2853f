// Package render turns scenes into files.
//
// # Overview
//
// The engine packages produce a backend-independent [scene.Scene]. This
// package and its subpackages are the backends:
//
//   - SVG documents (in [svg] subpackage)
//   - JSON primitive trees (in [jsonsink] subpackage)
//   - Graphviz views of the drawing tree (in [treeviz] subpackage)
//   - PNG and PDF conversion of SVG (this package)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg). rsvg-convert also evaluates the pencil
// and rough-paper filters, so raster output keeps the sketched look.
//
//	doc := svg.Render(s)
//	pdf, err := render.ToPDF(ctx, doc)
//	png, err := render.ToPNG(ctx, doc, 2.0) // 2x scale
//
// [svg]: github.com/matzehuels/sprout/pkg/render/svg
// [jsonsink]: github.com/matzehuels/sprout/pkg/render/jsonsink
// [treeviz]: github.com/matzehuels/sprout/pkg/render/treeviz
package render
