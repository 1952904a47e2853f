package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sprout/pkg/config"
	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/pipeline"
	"github.com/matzehuels/sprout/pkg/sheet"
)

// galleryCommand creates the gallery command for rendering showcase sheets.
func (c *CLI) galleryCommand() *cobra.Command {
	var (
		formatsStr string
		outDir     string
		noCache    bool
		noFilters  bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "gallery [sheet...]",
		Short: "Render showcase sheets",
		Long: `Render showcase sheets into a directory, one file per sheet and format.

Sheets:
  pots     every pot style at every growth stage
  plants   stem and leaf combinations at stage 3
  growth   one genome through all four stages
  combos   each pot style holding a small plant

Without arguments every sheet is rendered.`,
		Example: `  sprout gallery
  sprout gallery pots growth -f svg,png -d out`,
		ValidArgs: sheet.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = sheet.Names()
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			formats := parseFormats(formatsStr)
			if len(formats) == 0 {
				formats = cfg.Render.Formats
			}
			for _, f := range formats {
				if err := errors.ValidateFormat(f, pipeline.Formats()); err != nil {
					return err
				}
			}
			ro := pipeline.RenderOptions{
				NoFilters: noFilters || !cfg.Render.Filters,
				Scale:     cfg.Render.Scale,
			}
			return c.runGallery(cmd.Context(), cfg, names, formats, outDir, ro, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot (comma-separated)")
	cmd.Flags().StringVarP(&outDir, "dir", "d", ".", "output directory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noFilters, "no-filters", false, "omit the pencil and paper SVG filters")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even when cached sheets exist")

	return cmd
}

// runGallery builds and renders each named sheet.
func (c *CLI) runGallery(ctx context.Context, cfg config.Config, names, formats []string, outDir string, ro pipeline.RenderOptions, noCache, refresh bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", outDir, err)
	}

	spinner := newSpinnerWithContext(ctx, "Building sheets...")
	spinner.Start()
	defer spinner.Stop()

	for _, name := range names {
		prog := newProgress(logger)
		spinner.SetMessage(fmt.Sprintf("Building %s sheet...", name))

		sh, err := sheet.Build(ctx, name)
		if err != nil {
			spinner.StopWithError(fmt.Sprintf("Sheet %s failed", name))
			return err
		}
		sc := sh.Scene()
		ro.Title = sh.Title
		artifacts, hit, err := runner.RenderSheet(ctx, name, sc, formats, ro, refresh)
		if err != nil {
			spinner.StopWithError(fmt.Sprintf("Sheet %s failed", name))
			return fmt.Errorf("render sheet %s: %w", name, err)
		}
		prog.done(fmt.Sprintf("Sheet %s: %d cells", name, len(sh.Cells)))

		p := artifactWriteParams{
			artifacts:  artifacts,
			formats:    formats,
			name:       filepath.Join(outDir, "sheet-"+name),
			cacheHit:   hit,
			primitives: sc.Count(nil),
		}
		spinner.Pause(func() {
			printSuccess("%s", sh.Title)
			err = writeArtifacts(p)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
