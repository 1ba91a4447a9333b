package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/placardlabs/placard/pkg/render"
	"github.com/placardlabs/placard/pkg/scene"
)

// statsCommand creates the stats command for inspecting solved layouts.
func (c *CLI) statsCommand() *cobra.Command {
	var diagramPath string

	cmd := &cobra.Command{
		Use:   "stats [layout.json]",
		Short: "Show placement statistics for a solved layout",
		Long: `Show placement statistics for a solved layout.

Prints a table with one row per label: its direction slot (0-11,
counter-clockwise from east in 30 degree steps), box center, and whether
it still overlaps another label after relaxation.

With --diagram, an SVG overlap diagram is written: labels pinned at their
positions via Graphviz neato, overlapping ones highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := scene.ReadLayoutFile(args[0])
			if err != nil {
				return fmt.Errorf("load layout %s: %w", args[0], err)
			}
			fmt.Println(layoutTable(l))
			printLayoutSummary(l)
			if diagramPath != "" {
				if err := writeOverlapDiagram(l, diagramPath); err != nil {
					return err
				}
				printFile(diagramPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&diagramPath, "diagram", "", "write an SVG overlap diagram to this path")

	return cmd
}

// writeOverlapDiagram renders the overlap diagnostic graph to SVG.
func writeOverlapDiagram(l *scene.Layout, path string) error {
	svg, err := render.GraphvizSVG(render.OverlapDOT(l))
	if err != nil {
		return fmt.Errorf("render overlap diagram: %w", err)
	}
	if err := os.WriteFile(path, svg, 0o644); err != nil {
		return fmt.Errorf("write diagram %s: %w", path, err)
	}
	return nil
}

// overlappingLabels returns the set of label IDs whose boxes still
// intersect another label's box.
func overlappingLabels(l *scene.Layout) map[string]bool {
	overlapping := make(map[string]bool)
	for i := range l.Labels {
		for j := i + 1; j < len(l.Labels); j++ {
			if l.Labels[i].Box.Overlaps(l.Labels[j].Box, 0) {
				overlapping[l.Labels[i].ID] = true
				overlapping[l.Labels[j].ID] = true
			}
		}
	}
	return overlapping
}

// layoutTable renders the per-label table.
func layoutTable(l *scene.Layout) string {
	overlapping := overlappingLabels(l)
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(l.Labels))
	for i := range l.Labels {
		lbl := &l.Labels[i]
		center := lbl.Box.Center()
		status := iconSuccess
		if overlapping[lbl.ID] {
			status = iconWarning
		}
		rows = append(rows, []string{
			lbl.ID,
			lbl.Text,
			fmt.Sprintf("%d", lbl.Direction),
			fmt.Sprintf("(%.2f, %.2f)", center.X, center.Y),
			status,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Text", "Dir", "Center", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 4 {
				if rows[row][4] == iconWarning {
					return styleIconWarning
				}
				return styleIconSuccess
			}
			if col == 2 || col == 3 {
				return StyleNumber
			}
			return StyleValue
		}).
		Render()
}

// printLayoutSummary prints the aggregate layout statistics.
func printLayoutSummary(l *scene.Layout) {
	printKeyValue("labels", fmt.Sprintf("%d", l.Stats.Elements))
	printKeyValue("overlaps", fmt.Sprintf("%d", l.Stats.Overlaps))
	printKeyValue("iterations", fmt.Sprintf("%d", l.Stats.Iterations))
	if l.Stats.Overlaps > 0 {
		printWarning("%d overlap(s) remain; try more iterations or a larger canvas", l.Stats.Overlaps)
	}
}
