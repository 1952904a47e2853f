// Package jsonsink exports scenes as JSON primitive trees.
//
// The output is a faithful, lossless dump of the drawing: every group,
// line, path and circle with its role and style. External tools can
// re-render it without linking the engine, and tests can diff it. Optional
// metadata records the inputs (genome, stage, seed, pot style) so a file
// can be traced back to the call that produced it.
package jsonsink

import (
	"encoding/json"

	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/scene"
)

// Option configures JSON rendering via [Render].
type Option func(*renderer)

type renderer struct {
	seed     string
	genome   string
	stage    int
	potStyle string
	indent   bool
}

// WithSeed records the seed string.
func WithSeed(seed string) Option { return func(r *renderer) { r.seed = seed } }

// WithGenome records the genome in "stems,leaves,petioles,flags" form.
func WithGenome(g string) Option { return func(r *renderer) { r.genome = g } }

// WithStage records the growth stage.
func WithStage(stage int) Option { return func(r *renderer) { r.stage = stage } }

// WithPotStyle records the pot style name.
func WithPotStyle(style string) Option { return func(r *renderer) { r.potStyle = style } }

// WithIndent pretty-prints the output.
func WithIndent() Option { return func(r *renderer) { r.indent = true } }

// Document is the top-level JSON object.
type Document struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Seed     string  `json:"seed,omitempty"`
	Genome   string  `json:"genome,omitempty"`
	Stage    int     `json:"stage,omitempty"`
	PotStyle string  `json:"pot_style,omitempty"`
	Layers   []Node  `json:"layers"`
}

// Node is one primitive.
type Node struct {
	Kind     string      `json:"kind"`
	Role     string      `json:"role,omitempty"`
	Style    *Style      `json:"style,omitempty"`
	From     *geom.Point `json:"from,omitempty"`
	To       *geom.Point `json:"to,omitempty"`
	D        string      `json:"d,omitempty"`
	Center   *geom.Point `json:"center,omitempty"`
	Radius   float64     `json:"r,omitempty"`
	Children []Node      `json:"children,omitempty"`
}

// Style mirrors scene.Style with JSON names.
type Style struct {
	Stroke      string  `json:"stroke,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Opacity     float64 `json:"opacity"`
	LineCap     string  `json:"line_cap,omitempty"`
	LineJoin    string  `json:"line_join,omitempty"`
	Filter      string  `json:"filter,omitempty"`
	Blend       string  `json:"blend,omitempty"`
}

// Render encodes s as JSON.
func Render(s scene.Scene, opts ...Option) ([]byte, error) {
	r := renderer{}
	for _, opt := range opts {
		opt(&r)
	}

	doc := Document{
		Width:    s.Width,
		Height:   s.Height,
		Seed:     r.seed,
		Genome:   r.genome,
		Stage:    r.stage,
		PotStyle: r.potStyle,
		Layers:   make([]Node, 0, len(s.Layers)),
	}
	for _, l := range s.Layers {
		doc.Layers = append(doc.Layers, toNode(l))
	}

	if r.indent {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

func toNode(p scene.Primitive) Node {
	n := Node{Kind: p.Kind.String(), Role: string(p.Role)}
	st := Style(p.Style)
	n.Style = &st

	switch p.Kind {
	case scene.KindLine:
		from, to := p.From, p.To
		n.From, n.To = &from, &to
	case scene.KindPath:
		n.D = p.Path.String()
	case scene.KindCircle:
		c := p.Center
		n.Center, n.Radius = &c, p.Radius
	case scene.KindGroup:
		n.Style = nil
		n.Children = make([]Node, 0, len(p.Children))
		for _, c := range p.Children {
			n.Children = append(n.Children, toNode(c))
		}
	}
	return n
}
