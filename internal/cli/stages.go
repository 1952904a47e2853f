package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sprout/pkg/plant"
)

// stagesCommand creates the stages command for printing the growth stage catalog.
func (c *CLI) stagesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stages",
		Short: "List the growth stages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stages := plant.Stages()
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(stages)
			}
			fmt.Println(StyleTitle.Render("Growth stages"))
			fmt.Println(stagesTable(stages))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")

	return cmd
}

// stagesTable renders the catalog as a rounded lipgloss table.
func stagesTable(stages []plant.Stage) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(stages))
	for i, s := range stages {
		rows[i] = []string{strconv.Itoa(s.ID), s.Name, s.Description, strings.Join(s.Characteristics, "\n")}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		BorderRow(true).
		Headers("#", "Stage", "Description", "Characteristics").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorCyan)
			case col == 1:
				return base.Foreground(colorWhite).Bold(true)
			case col == 3:
				return base.Foreground(colorGray)
			}
			return base
		})

	return t.Render()
}
