package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcetower/pkg/graph"
	"github.com/matzehuels/forcetower/pkg/pipeline"
	"github.com/matzehuels/forcetower/pkg/render"
	"github.com/matzehuels/forcetower/pkg/vector"
)

const (
	watchFPS          = 30
	defaultWatchSpeed = 1 // ticks per frame

	// minimum plot size, in cells
	minPlotCols = 20
	minPlotRows = 8
)

var (
	watchFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	watchEdgeStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// stepper is the part of a simulation the live view drives. It is satisfied
// by *simulation.Simulation of either dimensionality.
type stepper interface {
	Tick(n int)
	Alpha() float64
	ResetAlpha(alpha float64)
	Settled() bool
	Ticks() int
}

// frameMsg advances the animation by one frame.
type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(time.Second/watchFPS, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// =============================================================================
// watchModel - Live simulation view
// =============================================================================

// watchModel is the bubbletea model animating a simulation. Every frame runs
// speed ticks unless the view is paused or the simulation has settled.
type watchModel struct {
	title  string
	sim    stepper
	export func() graph.Layout
	speed  int
	paused bool

	width, height int
}

// newWatchModel builds the simulation for g and wraps it in a live view.
func newWatchModel[V vector.Vector[V]](title string, g graph.Graph, opts pipeline.Options, speed int) (watchModel, error) {
	sim, _, err := pipeline.Build[V](g, &opts)
	if err != nil {
		return watchModel{}, err
	}
	return watchModel{
		title:  title,
		sim:    sim,
		export: func() graph.Layout { return pipeline.Export(g, sim, opts) },
		speed:  max(speed, 1),
		width:  80,
		height: 24,
	}, nil
}

func (m watchModel) Init() tea.Cmd {
	return nextFrame()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "r":
			m.sim.ResetAlpha(1)
		case "+", "=":
			m.speed = min(m.speed*2, 64)
		case "-":
			m.speed = max(m.speed/2, 1)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case frameMsg:
		if !m.paused && !m.sim.Settled() {
			m.sim.Tick(m.speed)
		}
		return m, nextFrame()
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("  ")
	b.WriteString(m.status())
	b.WriteString("\n")

	// border takes two columns and two rows; header and help one row each
	cols := max(m.width-2, minPlotCols)
	rows := max(m.height-4, minPlotRows)
	b.WriteString(watchFrameStyle.Render(strings.Join(renderPlot(plot(m.export(), cols, rows)), "\n")))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space/p pause · r reheat · +/- speed · q quit"))
	return b.String()
}

func (m watchModel) status() string {
	state := StyleHighlight.Render("running")
	switch {
	case m.paused:
		state = StyleWarning.Render("paused")
	case m.sim.Settled():
		state = StyleSuccess.Render("settled")
	}
	return fmt.Sprintf("%s %s  %s %s  %s %s  %s",
		StyleDim.Render("tick"), StyleNumber.Render(fmt.Sprint(m.sim.Ticks())),
		StyleDim.Render("alpha"), StyleNumber.Render(fmt.Sprintf("%.4f", m.sim.Alpha())),
		StyleDim.Render("speed"), StyleNumber.Render(fmt.Sprintf("%dx", m.speed)),
		state)
}

// =============================================================================
// Plotting
// =============================================================================

const (
	glyphEdge  = '·'
	glyphNode  = '●'
	glyphFixed = '◆'
)

// cell is one character of the plot. color is empty for unstyled cells.
type cell struct {
	glyph rune
	color string
}

// plot rasterizes l into a cols x rows grid. Terminal cells are about twice
// as tall as wide, so the layout is fitted to a frame of double height and
// each cell covers two vertical units.
func plot(l graph.Layout, cols, rows int) [][]cell {
	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, cols)
		for c := range grid[r] {
			grid[r][c] = cell{glyph: ' '}
		}
	}
	if len(l.Nodes) == 0 {
		return grid
	}

	frame := render.Fit(l, float64(cols), float64(rows*2), 1)
	at := func(p graph.Placement) (int, int, bool) {
		x, y := frame.Point(p.X, p.Y)
		c, r := int(math.Floor(x)), int(math.Floor(y/2))
		return c, r, c >= 0 && c < cols && r >= 0 && r < rows
	}

	index := make(map[string]int, len(l.Nodes))
	for i, n := range l.Nodes {
		index[n.ID] = i
	}
	for _, e := range l.Edges {
		c0, r0, _ := at(l.Nodes[index[e.From]])
		c1, r1, _ := at(l.Nodes[index[e.To]])
		steps := max(abs(c1-c0), abs(r1-r0))
		for s := 1; s < steps; s++ {
			t := float64(s) / float64(steps)
			c := c0 + int(math.Round(t*float64(c1-c0)))
			r := r0 + int(math.Round(t*float64(r1-r0)))
			if c >= 0 && c < cols && r >= 0 && r < rows {
				grid[r][c] = cell{glyph: glyphEdge}
			}
		}
	}

	colors := render.GroupColors(l)
	for _, i := range render.DrawOrder(l) {
		n := l.Nodes[i]
		c, r, ok := at(n)
		if !ok {
			continue
		}
		glyph := glyphNode
		if n.Fixed {
			glyph = glyphFixed
		}
		grid[r][c] = cell{glyph: glyph, color: render.Fill(colors, n.Group)}
	}
	return grid
}

// renderPlot styles the grid into lines.
func renderPlot(grid [][]cell) []string {
	lines := make([]string, len(grid))
	for r, row := range grid {
		var b strings.Builder
		for _, c := range row {
			switch {
			case c.color != "":
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.color)).Render(string(c.glyph)))
			case c.glyph == glyphEdge:
				b.WriteString(watchEdgeStyle.Render(string(c.glyph)))
			default:
				b.WriteRune(c.glyph)
			}
		}
		lines[r] = b.String()
	}
	return lines
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// =============================================================================
// Command
// =============================================================================

// watchCommand creates the watch command for animating a layout live.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags layoutFlags
		speed int
	)

	cmd := &cobra.Command{
		Use:   "watch [graph.json]",
		Short: "Animate the simulation in the terminal",
		Long: `Animate the simulation in the terminal.

The watch command runs the same simulation as 'layout' and draws it as it
cools. Space pauses, r reheats the simulation, +/- change the number of
ticks per frame and q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.layoutOptions(flags.configPath)
			if err != nil {
				return err
			}
			flags.apply(cmd, &opts)
			return c.runWatch(cmd.Context(), args[0], opts, speed)
		},
	}

	cmd.Flags().IntVar(&speed, "speed", defaultWatchSpeed, "simulation ticks per frame")
	flags.register(cmd)

	return cmd
}

// runWatch loads the graph and runs the live view until the user quits.
func (c *CLI) runWatch(ctx context.Context, input string, opts pipeline.Options, speed int) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	var model watchModel
	if opts.Dimensions == 3 {
		model, err = newWatchModel[vector.Vec3](input, g, opts, speed)
	} else {
		model, err = newWatchModel[vector.Vec2](input, g, opts, speed)
	}
	if err != nil {
		return err
	}
	c.Logger.Debug("watching", "nodes", len(g.Nodes), "edges", len(g.Edges), "options", opts.Summary())

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if m, ok := final.(watchModel); ok {
		printInfo("Stopped after %d ticks (alpha %.4f)", m.sim.Ticks(), m.sim.Alpha())
	}
	return nil
}
