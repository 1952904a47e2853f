package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sprout/pkg/compose"
	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/pipeline"
	"github.com/matzehuels/sprout/pkg/pot"
	"github.com/matzehuels/sprout/pkg/random"
)

// potFlags holds the pot command flags.
type potFlags struct {
	style     string
	width     float64
	height    float64
	seed      string
	formats   string
	output    string
	noFilters bool
	scale     float64
}

// potCommand creates the pot command for drawing an empty pot.
func (c *CLI) potCommand() *cobra.Command {
	flags := potFlags{width: 120, height: 60}

	cmd := &cobra.Command{
		Use:   "pot",
		Short: "Draw an empty pot",
		Long: `Draw an empty pot in one of the five styles, centered near the bottom
of the 300x300 canvas. Use --style all to draw every style.`,
		Example: `  sprout pot --style bowl
  sprout pot --style all -f png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			styles, err := potStyles(flags.style)
			if err != nil {
				return err
			}
			if flags.width <= 0 || flags.height <= 0 {
				return errors.New(errors.ErrCodeInvalidInput, "pot width and height must be positive")
			}
			formats := parseFormats(flags.formats)
			if len(formats) == 0 {
				formats = []string{pipeline.FormatSVG}
			}
			for _, f := range formats {
				if err := errors.ValidateFormat(f, pipeline.Formats()); err != nil {
					return err
				}
			}
			ro := pipeline.RenderOptions{NoFilters: flags.noFilters, Scale: flags.scale}
			if ro.Scale == 0 {
				ro.Scale = pipeline.DefaultScale
			}

			for _, style := range styles {
				seed := flags.seed
				if seed == "" {
					seed = "pot-" + style.String()
				}
				if err := errors.ValidateSeed(seed); err != nil {
					return err
				}
				sc := compose.Pot(random.FromString(seed), pot.Options{
					At:     geom.Pt(compose.Viewport/2, 220),
					Width:  flags.width,
					Height: flags.height,
					Style:  style,
				}, compose.Viewport)

				ro.Title = fmt.Sprintf("%s pot", style)
				ro.PotStyle = style.String()
				ro.Seed = seed
				artifacts := make(map[string][]byte, len(formats))
				for _, f := range formats {
					data, err := pipeline.Render(cmd.Context(), sc, f, ro)
					if err != nil {
						return fmt.Errorf("render %s pot: %w", style, err)
					}
					artifacts[f] = data
				}

				name, output := "pot-"+style.String(), flags.output
				if len(styles) > 1 {
					name, output = basePath(flags.output, "pot")+"-"+style.String(), ""
				}
				if err := writeArtifacts(artifactWriteParams{
					artifacts:  artifacts,
					formats:    formats,
					name:       name,
					output:     output,
					primitives: sc.Count(nil),
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.style, "style", pot.Tapered.String(), "pot style: round, round-concave, tapered, square, bowl, all")
	cmd.Flags().Float64Var(&flags.width, "width", flags.width, "pot width")
	cmd.Flags().Float64Var(&flags.height, "height", flags.height, "pot height")
	cmd.Flags().StringVar(&flags.seed, "seed", "", "random seed (default pot-<style>)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&flags.noFilters, "no-filters", false, "omit the pencil and paper SVG filters")
	cmd.Flags().Float64Var(&flags.scale, "scale", 0, "PNG scale factor (default 2)")

	return cmd
}

// potStyles parses --style; "all" selects every style in showcase order.
func potStyles(name string) ([]pot.Style, error) {
	if name == "all" {
		return pot.Styles(), nil
	}
	s, err := pot.ParseStyle(name)
	if err != nil {
		return nil, err
	}
	return []pot.Style{s}, nil
}
