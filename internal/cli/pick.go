package cli

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// pickCommand creates the pick command: choose a plant interactively, then
// render it like `sprout render`.
func (c *CLI) pickCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a genome and stage interactively, then render",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			start, err := flags.options(cfg)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(NewPickerModel(start.PlantGenome(), start.Stage, start.Style())).Run()
			if err != nil {
				return err
			}
			m, ok := final.(PickerModel)
			if !ok || m.Selected == nil {
				printInfo("Nothing picked")
				return nil
			}

			flags.genome = m.Selected.Genome.String()
			flags.stage = m.Selected.Stage
			flags.pot = m.Selected.PotStyle.String()
			opts, err := flags.options(cfg)
			if err != nil {
				return err
			}
			if err := c.runRender(cmd.Context(), cfg, opts, flags.output, flags.noCache); err != nil {
				return err
			}
			printNextStep("Render again", "sprout render -g "+opts.Genome+" -s "+strconv.Itoa(opts.Stage)+" --pot "+opts.PotStyle)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
