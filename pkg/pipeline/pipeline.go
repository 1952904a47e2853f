// Package pipeline provides the generate → render → cache pipeline shared by
// the CLI and the HTTP server.
//
// By centralizing this logic, both entry points apply the same defaults,
// validation, and cache keys.
//
// # Stages
//
//  1. Validate: parse the genome, growth stage, pot style, seed and formats
//  2. Generate: compose the 300×300 scene (always recomputed, it is cheap)
//  3. Render: turn the scene into each requested format, consulting the cache
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Genome:  "2,3,2,1",
//	    Stage:   4,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sprout/pkg/cache"
	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/plant"
	"github.com/matzehuels/sprout/pkg/pot"
	"github.com/matzehuels/sprout/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultGenome is used when no genome is given.
	DefaultGenome = "2,3,2,1"

	// DefaultStage is the fully grown, flowering stage.
	DefaultStage = plant.FloweringStage

	// DefaultSeedPrefix prefixes the stage number for the default seed.
	DefaultSeedPrefix = "growth"

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultTTL is how long rendered artifacts stay cached.
	DefaultTTL = 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
)

// Formats lists every supported output format.
func Formats() []string {
	return []string{FormatSVG, FormatJSON, FormatPNG, FormatPDF, FormatDOT}
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	}
	return "application/octet-stream"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Genome    string   `json:"genome,omitempty"` // "stems,leaves,petioles,flags"
	Stage     int      `json:"stage,omitempty"`
	Seed      string   `json:"seed,omitempty"`
	PotStyle  string   `json:"pot_style,omitempty"`
	Formats   []string `json:"formats,omitempty"`
	NoFilters bool     `json:"no_filters,omitempty"` // omit the pencil/paper SVG filters
	Scale     float64  `json:"scale,omitempty"`      // PNG scale factor
	Refresh   bool     `json:"refresh,omitempty"`    // bypass cache reads

	// Runtime options (not serialized)
	Logger     *log.Logger `json:"-"`
	SeedPrefix string      `json:"-"`

	genome   plant.Genome
	input    plant.Input
	potStyle pot.Style

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the composed drawing.
	Scene scene.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Primitives   int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Genome == "" {
		o.Genome = DefaultGenome
	}
	g, err := plant.ParseGenome(o.Genome)
	if err != nil {
		return err
	}
	o.genome = g
	o.Genome = g.String()

	if o.Stage == 0 {
		o.Stage = DefaultStage
	}
	in, err := plant.NewInput(o.Stage)
	if err != nil {
		return err
	}
	o.input = in

	style, err := pot.ParseStyle(o.PotStyle)
	if err != nil {
		return err
	}
	o.potStyle = style
	o.PotStyle = style.String()

	if o.Seed == "" {
		prefix := o.SeedPrefix
		if prefix == "" {
			prefix = DefaultSeedPrefix
		}
		o.Seed = fmt.Sprintf("%s-%d", prefix, o.Stage)
	}
	if err := errors.ValidateSeed(o.Seed); err != nil {
		return err
	}

	if err := o.validateFormats(); err != nil {
		return err
	}

	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// validateFormats lowercases, dedupes and checks the requested formats.
func (o *Options) validateFormats() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
		return nil
	}
	seen := make(map[string]bool, len(o.Formats))
	out := o.Formats[:0:0]
	for _, f := range o.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if err := errors.ValidateFormat(f, Formats()); err != nil {
			return err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	o.Formats = out
	return nil
}

// PlantGenome returns the parsed genome. Valid after ValidateAndSetDefaults.
func (o *Options) PlantGenome() plant.Genome { return o.genome }

// Input returns the parsed growth stage. Valid after ValidateAndSetDefaults.
func (o *Options) Input() plant.Input { return o.input }

// Style returns the parsed pot style. Valid after ValidateAndSetDefaults.
func (o *Options) Style() pot.Style { return o.potStyle }

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Genome:   o.Genome,
		Stage:    o.Stage,
		Seed:     o.Seed,
		PotStyle: o.PotStyle,
		Format:   format,
		Filters:  !o.NoFilters,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
