package svg

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/scene"
)

const filterDefs = `  <defs>
    <filter id="pencilTexture">
      <feTurbulence type="turbulence" baseFrequency="0.02" numOctaves="5" result="turbulence"/>
      <feDisplacementMap in="SourceGraphic" in2="turbulence" scale="2"/>
    </filter>
    <filter id="roughPaper">
      <feTurbulence type="fractalNoise" baseFrequency="0.04" numOctaves="5" result="noise" seed="2"/>
      <feDisplacementMap in="SourceGraphic" in2="noise" scale="1"/>
    </filter>
    <filter id="pencilSketch">
      <feTurbulence baseFrequency="0.02" numOctaves="3" result="turbulence" seed="5"/>
      <feColorMatrix in="turbulence" type="saturate" values="0" result="desaturatedTurbulence"/>
      <feComponentTransfer result="pencilTexture">
        <feFuncA type="discrete" tableValues="0 .5 .5 .5 .5 .5 .5 .5 .5 .5 .5 .5 .5 .5 .5 1"/>
      </feComponentTransfer>
      <feComposite in="pencilTexture" in2="SourceGraphic" operator="multiply"/>
    </filter>
  </defs>
`

type Option func(*renderer)

type renderer struct {
	filters    bool
	background string
	title      string
	roles      bool
}

func WithoutFilters() Option             { return func(r *renderer) { r.filters = false } }
func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }
func WithTitle(title string) Option      { return func(r *renderer) { r.title = title } }
func WithRoles() Option                  { return func(r *renderer) { r.roles = true } }

// Render writes s as an SVG document.
func Render(s scene.Scene, opts ...Option) []byte {
	r := renderer{filters: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	w, h := geom.FormatNumber(s.Width), geom.FormatNumber(s.Height)
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n", w, h, w, h)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	if r.filters {
		buf.WriteString(filterDefs)
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(r.background))
	}
	for _, l := range s.Layers {
		r.write(&buf, l, 1)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) write(buf *bytes.Buffer, p scene.Primitive, depth int) {
	indent := strings.Repeat("  ", depth)
	attrs := r.attrs(p)
	switch p.Kind {
	case scene.KindGroup:
		fmt.Fprintf(buf, "%s<g%s>\n", indent, attrs)
		for _, c := range p.Children {
			r.write(buf, c, depth+1)
		}
		fmt.Fprintf(buf, "%s</g>\n", indent)
	case scene.KindLine:
		fmt.Fprintf(buf, `%s<line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n", indent,
			num(p.From.X), num(p.From.Y), num(p.To.X), num(p.To.Y), attrs)
	case scene.KindPath:
		fmt.Fprintf(buf, `%s<path d="%s"%s/>`+"\n", indent, p.Path.String(), attrs)
	case scene.KindCircle:
		fmt.Fprintf(buf, `%s<circle cx="%s" cy="%s" r="%s"%s/>`+"\n", indent,
			num(p.Center.X), num(p.Center.Y), num(p.Radius), attrs)
	}
}

func num(v float64) string { return geom.FormatNumber(v) }

func (r *renderer) attrs(p scene.Primitive) string {
	var b strings.Builder
	if r.roles && p.Role != scene.RoleNone {
		fmt.Fprintf(&b, ` data-role="%s"`, p.Role)
	}
	if css := r.css(p); css != "" {
		fmt.Fprintf(&b, ` style="%s"`, css)
	}
	return b.String()
}

// css serializes the style of p. Unfilled shapes get an explicit fill:none
// because SVG fills paths and circles black by default.
func (r *renderer) css(p scene.Primitive) string {
	st := p.Style
	var decls []string
	add := func(k, v string) { decls = append(decls, k+":"+v) }

	if p.Kind != scene.KindGroup {
		fill := st.Fill
		if fill == "" {
			fill = "none"
		}
		add("fill", fill)
	}
	if st.Stroke != "" {
		add("stroke", st.Stroke)
		add("stroke-width", num(st.StrokeWidth))
	}
	if st.LineCap != "" {
		add("stroke-linecap", st.LineCap)
	}
	if st.LineJoin != "" {
		add("stroke-linejoin", st.LineJoin)
	}
	if p.Kind != scene.KindGroup || st.Opacity != 1 {
		add("opacity", num(st.Opacity))
	}
	if r.filters && st.Filter != "" {
		add("filter", "url(#"+st.Filter+")")
	}
	if st.Blend != "" {
		add("mix-blend-mode", st.Blend)
	}
	return html.EscapeString(strings.Join(decls, ";"))
}
