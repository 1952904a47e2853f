package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/pipeline"
	"github.com/matzehuels/sprout/pkg/render/treeviz"
	"github.com/matzehuels/sprout/pkg/scene"
)

// Formats the tree command can write.
var treeFormats = []string{pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF}

// treeCommand creates the tree command for inspecting a plant's drawing tree.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		flags    renderFlags
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the drawing tree of a plant",
		Long: `Show how a plant's drawing is layered: pot, stems, leaves and flowers
with their strokes grouped by role.

Without --format the tree is printed to the terminal. With --format it is
laid out by Graphviz and written as DOT, SVG, PNG or PDF.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			formats := parseFormats(flags.formats)
			for _, f := range formats {
				if err := errors.ValidateFormat(f, treeFormats); err != nil {
					return err
				}
			}
			flags.formats = ""
			opts, err := flags.options(cfg)
			if err != nil {
				return err
			}

			sc := pipeline.NewRunner(nil, nil, c.Logger).Generate(cmd.Context(), opts)
			if len(formats) == 0 {
				fmt.Println(sceneTree(sc))
				return nil
			}
			return c.writeTree(cmd.Context(), sc, formats, flags.output, flags.scale, detailed)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include stroke, fill and opacity in node labels")

	return cmd
}

// writeTree lays out the drawing tree with Graphviz and writes each format.
func (c *CLI) writeTree(ctx context.Context, sc scene.Scene, formats []string, output string, scale float64, detailed bool) error {
	dot := treeviz.ToDOT(sc, treeviz.Options{Detailed: detailed, Collapse: true})
	if scale <= 0 {
		scale = pipeline.DefaultScale
	}

	artifacts := make(map[string][]byte, len(formats))
	for _, f := range formats {
		var (
			data []byte
			err  error
		)
		switch f {
		case pipeline.FormatDOT:
			data = []byte(dot)
		case pipeline.FormatSVG:
			data, err = treeviz.RenderSVG(ctx, dot)
		case pipeline.FormatPNG:
			data, err = treeviz.RenderPNG(ctx, dot, scale)
		case pipeline.FormatPDF:
			data, err = treeviz.RenderPDF(ctx, dot)
		}
		if err != nil {
			return fmt.Errorf("tree %s: %w", f, err)
		}
		artifacts[f] = data
	}
	return writeArtifacts(artifactWriteParams{
		artifacts:  artifacts,
		formats:    formats,
		name:       "tree",
		output:     output,
		primitives: sc.Count(nil),
	})
}

// sceneTree renders the drawing tree for the terminal. Runs of leaf
// primitives with the same kind and role are collapsed into one line.
func sceneTree(sc scene.Scene) string {
	t := tree.Root(StyleTitle.Render(fmt.Sprintf("scene %gx%g", sc.Width, sc.Height))).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(colorDim))
	addChildren(t, sc.Layers)
	return t.String()
}

func addChildren(t *tree.Tree, prims []scene.Primitive) {
	for i := 0; i < len(prims); {
		p := prims[i]
		if p.Kind == scene.KindGroup {
			name := string(p.Role)
			if name == "" {
				name = "group"
			}
			sub := tree.Root(StyleHighlight.Render(name) + StyleDim.Render(fmt.Sprintf(" (%d)", len(p.Children))))
			addChildren(sub, p.Children)
			t.Child(sub)
			i++
			continue
		}

		run := 1
		for i+run < len(prims) && prims[i+run].Kind == p.Kind && prims[i+run].Role == p.Role {
			run++
		}
		label := p.Kind.String()
		if p.Role != scene.RoleNone {
			label += " " + StyleDim.Render(string(p.Role))
		}
		if run > 1 {
			label += StyleNumber.Render(fmt.Sprintf(" ×%d", run))
		}
		t.Child(label)
		i += run
	}
}
