package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/render"
	"github.com/matzehuels/sprout/pkg/render/jsonsink"
	"github.com/matzehuels/sprout/pkg/render/svg"
	"github.com/matzehuels/sprout/pkg/render/treeviz"
	"github.com/matzehuels/sprout/pkg/scene"
)

// RenderOptions control how a scene becomes bytes. The metadata fields only
// end up in JSON output.
type RenderOptions struct {
	NoFilters bool
	Scale     float64
	Title     string

	Genome   string
	Stage    int
	Seed     string
	PotStyle string
}

// RenderOptions returns the render settings implied by o.
func (o *Options) RenderOptions() RenderOptions {
	return RenderOptions{
		NoFilters: o.NoFilters,
		Scale:     o.Scale,
		Title:     fmt.Sprintf("Plant %s, stage %d", o.Genome, o.Stage),
		Genome:    o.Genome,
		Stage:     o.Stage,
		Seed:      o.Seed,
		PotStyle:  o.PotStyle,
	}
}

// Render converts s into a single format.
func Render(ctx context.Context, s scene.Scene, format string, ro RenderOptions) ([]byte, error) {
	switch format {
	case FormatSVG:
		return renderSVG(s, ro), nil
	case FormatJSON:
		opts := []jsonsink.Option{jsonsink.WithIndent()}
		if ro.Seed != "" {
			opts = append(opts, jsonsink.WithSeed(ro.Seed))
		}
		if ro.Genome != "" {
			opts = append(opts, jsonsink.WithGenome(ro.Genome))
		}
		if ro.Stage != 0 {
			opts = append(opts, jsonsink.WithStage(ro.Stage))
		}
		if ro.PotStyle != "" {
			opts = append(opts, jsonsink.WithPotStyle(ro.PotStyle))
		}
		return jsonsink.Render(s, opts...)
	case FormatPNG:
		scale := ro.Scale
		if scale <= 0 {
			scale = DefaultScale
		}
		return render.ToPNG(ctx, renderSVG(s, ro), scale)
	case FormatPDF:
		return render.ToPDF(ctx, renderSVG(s, ro))
	case FormatDOT:
		return []byte(treeviz.ToDOT(s, treeviz.Options{Collapse: true})), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
}

func renderSVG(s scene.Scene, ro RenderOptions) []byte {
	var opts []svg.Option
	if ro.NoFilters {
		opts = append(opts, svg.WithoutFilters())
	}
	if ro.Title != "" {
		opts = append(opts, svg.WithTitle(ro.Title))
	}
	return svg.Render(s, opts...)
}
