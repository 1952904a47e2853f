package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sprout/pkg/config"
	"github.com/matzehuels/sprout/pkg/specimen"
)

// specimenCommand creates the specimen command group.
func (c *CLI) specimenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "specimen",
		Aliases: []string{"specimens"},
		Short:   "Save and reuse named plants",
		Long: `Save a genome, stage, seed and pot style under a name so the same
plant can be drawn again later. Specimens are kept in local files unless
specimens.mongo_uri is configured.`,
	}

	cmd.AddCommand(c.specimenSaveCommand())
	cmd.AddCommand(c.specimenListCommand())
	cmd.AddCommand(c.specimenShowCommand())
	cmd.AddCommand(c.specimenRenderCommand())
	cmd.AddCommand(c.specimenDeleteCommand())

	return cmd
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(config.Config, specimen.Store) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	st, err := newStore(ctx, cfg.Specimens)
	if err != nil {
		return fmt.Errorf("open specimen store: %w", err)
	}
	defer st.Close()
	return fn(cfg, st)
}

// specimenSaveCommand creates the "specimen save" subcommand.
func (c *CLI) specimenSaveCommand() *cobra.Command {
	var (
		flags renderFlags
		notes string
	)

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a plant under a name",
		Example: `  sprout specimen save fern -g 3,4,3,1 -s 3 --pot bowl
  sprout specimen save my-fern --preset fern --notes "kitchen window"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(cfg config.Config, st specimen.Store) error {
				opts, err := flags.options(cfg)
				if err != nil {
					return err
				}
				// Without --seed the name is the seed, not the stage default.
				seed := flags.seed
				if seed == "" && flags.preset != "" {
					if p, err := cfg.Preset(flags.preset); err == nil {
						seed = p.Seed
					}
				}
				sp, err := specimen.New(args[0], opts.Genome, opts.Stage, seed, opts.PotStyle)
				if err != nil {
					return err
				}
				sp.Notes = notes
				if err := st.Save(cmd.Context(), sp); err != nil {
					return err
				}
				printSuccess("Saved %s", StyleHighlight.Render(sp.Name))
				printSpecimen(sp)
				printNewline()
				printNextStep("Draw it", "sprout specimen render "+sp.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&flags.genome, "genome", "g", "", "genome as stems,leaves,petioles,flags")
	cmd.Flags().IntVarP(&flags.stage, "stage", "s", 0, "growth stage 1-4 (default 4)")
	cmd.Flags().StringVar(&flags.seed, "seed", "", "random seed (default the specimen name)")
	cmd.Flags().StringVarP(&flags.pot, "pot", "p", "", "pot style")
	cmd.Flags().StringVar(&flags.preset, "preset", "", "start from a named preset in the config file")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	return cmd
}

// specimenListCommand creates the "specimen list" subcommand.
func (c *CLI) specimenListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved specimens",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(_ config.Config, st specimen.Store) error {
				list, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(list)
				}
				if len(list) == 0 {
					printInfo("No specimens saved yet")
					printNextStep("Save one", "sprout specimen save <name> -g 2,3,2,1")
					return nil
				}
				fmt.Println(specimenTable(list))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

// specimenShowCommand creates the "specimen show" subcommand.
func (c *CLI) specimenShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <name|id>",
		Short: "Show one specimen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(_ config.Config, st specimen.Store) error {
				sp, err := specimen.Lookup(cmd.Context(), st, args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(sp)
				}
				fmt.Println(StyleTitle.Render(sp.Name))
				printSpecimen(sp)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

// specimenRenderCommand creates the "specimen render" subcommand.
func (c *CLI) specimenRenderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <name|id>",
		Short: "Draw a saved specimen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(cfg config.Config, st specimen.Store) error {
				sp, err := specimen.Lookup(ctx, st, args[0])
				if err != nil {
					return err
				}
				opts := cfg.RenderOptions(sp.Options(parseFormats(flags.formats)...))
				opts.NoFilters = opts.NoFilters || flags.noFilters
				opts.Refresh = flags.refresh
				if flags.scale > 0 {
					opts.Scale = flags.scale
				}
				if err := opts.ValidateAndSetDefaults(); err != nil {
					return err
				}
				output := flags.output
				if output == "" {
					output = sp.Name
					if len(opts.Formats) == 1 {
						output += "." + opts.Formats[0]
					}
				}
				return c.runRender(ctx, cfg, opts, output, flags.noCache)
			})
		},
	}
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (default the specimen name)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.noFilters, "no-filters", false, "omit the pencil and paper SVG filters")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "re-render even when a cached artifact exists")
	cmd.Flags().Float64Var(&flags.scale, "scale", 0, "PNG scale factor (default 2)")

	return cmd
}

// specimenDeleteCommand creates the "specimen delete" subcommand.
func (c *CLI) specimenDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name|id>",
		Aliases: []string{"rm"},
		Short:   "Delete a specimen",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(_ config.Config, st specimen.Store) error {
				sp, err := specimen.Lookup(cmd.Context(), st, args[0])
				if err != nil {
					return err
				}
				if err := st.Delete(cmd.Context(), sp.ID); err != nil {
					return err
				}
				printSuccess("Deleted %s", sp.Name)
				return nil
			})
		},
	}
}

func printSpecimen(sp *specimen.Specimen) {
	printKeyValue("ID", sp.ID)
	printKeyValue("Genome", sp.Genome)
	printKeyValue("Stage", strconv.Itoa(sp.Stage))
	printKeyValue("Seed", sp.Seed)
	printKeyValue("Pot", sp.PotStyle)
	if sp.Notes != "" {
		printKeyValue("Notes", sp.Notes)
	}
	printKeyValue("Created", sp.CreatedAt.Local().Format("2006-01-02 15:04"))
}

func specimenTable(list []*specimen.Specimen) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(list))
	for i, sp := range list {
		rows[i] = []string{sp.Name, sp.Genome, strconv.Itoa(sp.Stage), sp.PotStyle, sp.Seed, sp.CreatedAt.Local().Format("2006-01-02")}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Genome", "Stage", "Pot", "Seed", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorGreen)
			case col >= 4:
				return base.Foreground(colorDim)
			}
			return base
		}).
		Render()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
