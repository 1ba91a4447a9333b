package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/placardlabs/placard/pkg/geom"
	"github.com/placardlabs/placard/pkg/layout"
	"github.com/placardlabs/placard/pkg/scene"
)

// viewCommand creates the view command, an interactive relaxation stepper.
func (c *CLI) viewCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "view [scene.json]",
		Short: "Step through label relaxation interactively",
		Long: `Step through label relaxation interactively.

Loads a scene, places every label, and opens a terminal view of the
canvas. Each step runs one relaxation iteration so you can watch
overlapping labels push apart.

Keys: space/n step, s run 10 steps, r reset, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.ReadSceneFile(args[0])
			if err != nil {
				return fmt.Errorf("load scene %s: %w", args[0], err)
			}
			cfg, err := loadLayoutConfig(configPath)
			if err != nil {
				return err
			}
			model, err := newViewModel(sc, cfg)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML file with placement constants")

	return cmd
}

// =============================================================================
// viewModel - Relaxation Stepper
// =============================================================================

// View styles
var (
	viewCanvasStyle = lipgloss.NewStyle().Foreground(colorWhite)
	viewDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	viewClearStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	viewClashStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// Canvas raster size in terminal cells.
const (
	viewCols = 72
	viewRows = 24
)

// viewModel is the bubbletea model for the relaxation stepper.
type viewModel struct {
	sc        *scene.Scene
	cfg       *layout.Config
	mgr       *layout.Manager
	iteration int
	err       error
}

// newViewModel places the scene's labels without relaxing them.
func newViewModel(sc *scene.Scene, cfg *layout.Config) (*viewModel, error) {
	m := &viewModel{sc: sc, cfg: cfg}
	if err := m.reset(); err != nil {
		return nil, err
	}
	return m, nil
}

// reset rebuilds the manager from the scene, discarding relaxation state.
func (m *viewModel) reset() error {
	if err := m.sc.Validate(); err != nil {
		return err
	}
	mgr, err := layout.New(m.sc.Canvas, m.cfg)
	if err != nil {
		return err
	}
	for _, sec := range m.sc.Sectors {
		if err := mgr.AddSector(sec.Center.X, sec.Center.Y, sec.Radius, sec.StartDeg, sec.EndDeg); err != nil {
			return err
		}
	}
	for _, p := range m.sc.Points {
		if _, err := mgr.Place(p.X, p.Y, p.Kind, p.ID); err != nil {
			return err
		}
	}
	m.mgr = mgr
	m.iteration = 0
	return nil
}

// step runs n relaxation iterations.
func (m *viewModel) step(n int) {
	m.mgr.Relax(n)
	m.iteration += n
}

func (m *viewModel) Init() tea.Cmd {
	return nil
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "n":
			m.step(1)
		case "s":
			m.step(10)
		case "r":
			m.err = m.reset()
		}
	}
	return m, nil
}

func (m *viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Relaxation Stepper"))
	b.WriteString("\n")
	b.WriteString(viewDimStyle.Render("space/n step  s step x10  r reset  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(viewClashStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderCanvas())
	b.WriteString("\n")

	stats := m.mgr.Stats()
	overlapStyle := viewClearStyle
	if stats.OverlapCount > 0 {
		overlapStyle = viewClashStyle
	}
	b.WriteString(fmt.Sprintf("  %s %s %s\n",
		viewDimStyle.Render(fmt.Sprintf("iteration %d", m.iteration)),
		viewDimStyle.Render("·"),
		overlapStyle.Render(fmt.Sprintf("%d overlap(s)", stats.OverlapCount))))

	return b.String()
}

// renderCanvas rasterizes the canvas into a character grid: label boxes as
// the first rune of their ID, anchors as dots, sector interiors shaded.
func (m *viewModel) renderCanvas() string {
	bounds := m.mgr.Bounds()
	grid := make([][]rune, viewRows)
	for r := range grid {
		grid[r] = make([]rune, viewCols)
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}

	// Sector interiors first so boxes draw over them.
	for row := 0; row < viewRows; row++ {
		for col := 0; col < viewCols; col++ {
			p := m.cellCenter(bounds, row, col)
			for _, sec := range m.mgr.Sectors() {
				if sec.Contains(p) {
					grid[row][col] = '░'
					break
				}
			}
		}
	}

	for _, el := range m.mgr.Elements() {
		mark := '#'
		if el.ID != "" {
			mark = []rune(el.ID)[0]
		}
		m.fillBox(grid, bounds, el.Box, mark)
	}
	for _, el := range m.mgr.Elements() {
		if row, col, ok := m.cell(bounds, el.Anchor); ok {
			grid[row][col] = '•'
		}
	}

	var b strings.Builder
	border := viewDimStyle.Render("+" + strings.Repeat("-", viewCols) + "+")
	b.WriteString("  " + border + "\n")
	for _, row := range grid {
		b.WriteString("  " + viewDimStyle.Render("|") + viewCanvasStyle.Render(string(row)) + viewDimStyle.Render("|") + "\n")
	}
	b.WriteString("  " + border + "\n")
	return b.String()
}

// cell maps a canvas point to grid coordinates, with y growing downward.
func (m *viewModel) cell(bounds geom.Box, p geom.Point) (row, col int, ok bool) {
	if !bounds.ContainsPoint(p) {
		return 0, 0, false
	}
	col = int((p.X - bounds.MinX) / bounds.Width() * float64(viewCols))
	row = int((bounds.MaxY - p.Y) / bounds.Height() * float64(viewRows))
	if col >= viewCols {
		col = viewCols - 1
	}
	if row >= viewRows {
		row = viewRows - 1
	}
	return row, col, true
}

// cellCenter maps grid coordinates back to the canvas point at the cell center.
func (m *viewModel) cellCenter(bounds geom.Box, row, col int) geom.Point {
	x := bounds.MinX + (float64(col)+0.5)/float64(viewCols)*bounds.Width()
	y := bounds.MaxY - (float64(row)+0.5)/float64(viewRows)*bounds.Height()
	return geom.Point{X: x, Y: y}
}

// fillBox marks every grid cell covered by the box.
func (m *viewModel) fillBox(grid [][]rune, bounds geom.Box, box geom.Box, mark rune) {
	clamped := box.ClampTo(bounds)
	for row := 0; row < viewRows; row++ {
		for col := 0; col < viewCols; col++ {
			if clamped.ContainsPoint(m.cellCenter(bounds, row, col)) {
				grid[row][col] = mark
			}
		}
	}
}
