package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sprout/pkg/config"
	"github.com/matzehuels/sprout/pkg/pipeline"
)

// renderFlags holds the flags shared by commands that draw a plant.
type renderFlags struct {
	genome    string
	stage     int
	seed      string
	pot       string
	formats   string
	output    string
	preset    string
	noCache   bool
	noFilters bool
	refresh   bool
	scale     float64
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.genome, "genome", "g", "", "genome as stems,leaves,petioles,flags (default "+pipeline.DefaultGenome+")")
	cmd.Flags().IntVarP(&f.stage, "stage", "s", 0, "growth stage 1-4 (default 4)")
	cmd.Flags().StringVar(&f.seed, "seed", "", "random seed (default growth-<stage>)")
	cmd.Flags().StringVarP(&f.pot, "pot", "p", "", "pot style: round, round-concave, tapered, square, bowl")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot (comma-separated)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&f.preset, "preset", "", "start from a named preset in the config file")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.noFilters, "no-filters", false, "omit the pencil and paper SVG filters")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even when a cached artifact exists")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "PNG scale factor (default 2)")
}

// options resolves preset, flags and config into pipeline options.
// Flags win over the preset, which wins over the config file.
func (f *renderFlags) options(cfg config.Config) (pipeline.Options, error) {
	var opts pipeline.Options
	if f.preset != "" {
		p, err := cfg.Preset(f.preset)
		if err != nil {
			return opts, err
		}
		if opts, err = p.Options(); err != nil {
			return opts, err
		}
	}
	if f.genome != "" {
		opts.Genome = f.genome
	}
	if f.stage != 0 {
		opts.Stage = f.stage
	}
	if f.seed != "" {
		opts.Seed = f.seed
	}
	if f.pot != "" {
		opts.PotStyle = f.pot
	}
	opts.Formats = parseFormats(f.formats)
	opts.NoFilters = f.noFilters
	opts.Refresh = f.refresh
	opts.Scale = f.scale

	opts = cfg.RenderOptions(opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a potted plant",
		Long: `Draw a potted plant from a genome and a growth stage.

The genome has four values: stems (1-4), leaves per stem (1-4), petioles
(1-3) and a flag bitset. Stage 1 is a seedling and stage 4 flowers. The
seed makes the drawing reproducible; the same inputs always give the same
picture.

Results are cached locally for faster subsequent runs.`,
		Example: `  sprout render
  sprout render -g 3,4,3,1 -s 3 --pot bowl -o fern.svg
  sprout render --preset fern -f svg,png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := flags.options(cfg)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, opts, flags.output, flags.noCache)
		},
	}
	flags.register(cmd)

	return cmd
}

// runRender generates the plant and writes every requested format.
func (c *CLI) runRender(ctx context.Context, cfg config.Config, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Drawing %s at stage %d...", opts.Genome, opts.Stage))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(opts.Formats)))

	return writeArtifacts(artifactWriteParams{
		artifacts:  result.Artifacts,
		formats:    opts.Formats,
		name:       "plant",
		output:     output,
		cacheHit:   result.CacheHit,
		primitives: result.Stats.Primitives,
	})
}
