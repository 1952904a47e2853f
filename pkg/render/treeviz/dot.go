package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/render"
	"github.com/matzehuels/sprout/pkg/scene"
)

// Options configures tree diagram generation.
type Options struct {
	// Detailed includes style attributes in primitive labels.
	Detailed bool
	// Collapse merges runs of same-kind, same-role primitives into one node.
	Collapse bool
}

type dotWriter struct {
	buf  bytes.Buffer
	opts Options
	next int
}

// ToDOT converts the drawing tree of s to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(s scene.Scene, opts Options) string {
	w := &dotWriter{opts: opts}
	w.buf.WriteString("digraph G {\n")
	w.buf.WriteString("  rankdir=LR;\n")
	w.buf.WriteString("  bgcolor=\"transparent\";\n")
	w.buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.1,0.05\"];\n")
	w.buf.WriteString("  ranksep=0.4;\n")
	w.buf.WriteString("  nodesep=0.15;\n")
	w.buf.WriteString("\n")

	root := w.node(fmt.Sprintf("scene\n%s×%s", geom.FormatNumber(s.Width), geom.FormatNumber(s.Height)), "fillcolor=\"#f3efe6\"")
	w.children(root, s.Layers)

	w.buf.WriteString("}\n")
	return w.buf.String()
}

func (w *dotWriter) node(label string, attrs ...string) string {
	id := "n" + strconv.Itoa(w.next)
	w.next++
	all := append([]string{fmt.Sprintf("label=%q", label)}, attrs...)
	fmt.Fprintf(&w.buf, "  %s [%s];\n", id, strings.Join(all, ", "))
	return id
}

func (w *dotWriter) edge(from, to string) {
	fmt.Fprintf(&w.buf, "  %s -> %s;\n", from, to)
}

func (w *dotWriter) children(parent string, prims []scene.Primitive) {
	for i := 0; i < len(prims); {
		p := prims[i]
		if p.Kind == scene.KindGroup {
			id := w.node(groupLabel(p), "fillcolor=\"#e4efd9\"")
			w.edge(parent, id)
			w.children(id, p.Children)
			i++
			continue
		}

		run := 1
		if w.opts.Collapse {
			for i+run < len(prims) && same(prims[i+run], p) {
				run++
			}
		}
		id := w.node(w.primitiveLabel(p, run))
		w.edge(parent, id)
		i += run
	}
}

func same(a, b scene.Primitive) bool {
	return a.Kind == b.Kind && a.Role == b.Role
}

func groupLabel(p scene.Primitive) string {
	name := string(p.Role)
	if name == "" {
		name = "group"
	}
	return fmt.Sprintf("%s\n%d children", name, len(p.Children))
}

func (w *dotWriter) primitiveLabel(p scene.Primitive, run int) string {
	label := p.Kind.String()
	if p.Role != scene.RoleNone {
		label += " (" + string(p.Role) + ")"
	}
	if run > 1 {
		label += fmt.Sprintf(" ×%d", run)
	}
	if !w.opts.Detailed {
		return label
	}

	st := p.Style
	parts := []string{label}
	if st.Stroke != "" {
		parts = append(parts, "stroke: "+st.Stroke+" "+geom.FormatNumber(st.StrokeWidth))
	}
	if st.Fill != "" {
		parts = append(parts, "fill: "+st.Fill)
	}
	parts = append(parts, "opacity: "+geom.FormatNumber(st.Opacity))
	if st.Filter != "" {
		parts = append(parts, "filter: "+st.Filter)
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
