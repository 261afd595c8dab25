package cli

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/forcetower/pkg/graph"
	"github.com/matzehuels/forcetower/pkg/pipeline"
	"github.com/matzehuels/forcetower/pkg/vector"
)

func ringGraph(n int) graph.Graph {
	var g graph.Graph
	for i := 0; i < n; i++ {
		g.Nodes = append(g.Nodes, graph.Node{ID: fmt.Sprintf("n%d", i)})
		g.Edges = append(g.Edges, graph.Edge{From: fmt.Sprintf("n%d", i), To: fmt.Sprintf("n%d", (i+1)%n)})
	}
	return g
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestWatch(t *testing.T) watchModel {
	t.Helper()
	m, err := newWatchModel[vector.Vec2]("ring", ringGraph(5), pipeline.Options{}, 2)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func update(t *testing.T, m watchModel, msg tea.Msg) (watchModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	wm, ok := next.(watchModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return wm, cmd
}

func TestWatchModelTicks(t *testing.T) {
	m := newTestWatch(t)
	if m.Init() == nil {
		t.Fatal("Init should schedule a frame")
	}

	m, cmd := update(t, m, frameMsg{})
	if got := m.sim.Ticks(); got != 2 {
		t.Errorf("ticks after one frame = %d, want 2", got)
	}
	if cmd == nil {
		t.Error("frame should schedule the next frame")
	}

	m, _ = update(t, m, runeKey(' '))
	if !m.paused {
		t.Fatal("space should pause")
	}
	m, _ = update(t, m, frameMsg{})
	if got := m.sim.Ticks(); got != 2 {
		t.Errorf("paused frame ticked: ticks = %d, want 2", got)
	}
	m, _ = update(t, m, runeKey('p'))
	if m.paused {
		t.Error("p should resume")
	}
}

func TestWatchModelReheat(t *testing.T) {
	m := newTestWatch(t)
	for !m.sim.Settled() {
		m.sim.Tick(50)
	}
	settled := m.sim.Ticks()
	m, _ = update(t, m, frameMsg{})
	if m.sim.Ticks() != settled {
		t.Error("settled simulation should not tick")
	}

	m, _ = update(t, m, runeKey('r'))
	if m.sim.Alpha() != 1 {
		t.Errorf("alpha after reheat = %v, want 1", m.sim.Alpha())
	}
	m, _ = update(t, m, frameMsg{})
	if m.sim.Ticks() <= settled {
		t.Error("reheated simulation should tick again")
	}
}

func TestWatchModelSpeed(t *testing.T) {
	m := newTestWatch(t)
	m, _ = update(t, m, runeKey('+'))
	if m.speed != 4 {
		t.Errorf("speed after + = %d, want 4", m.speed)
	}
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, runeKey('-'))
	}
	if m.speed != 1 {
		t.Errorf("speed floor = %d, want 1", m.speed)
	}
}

func TestWatchModelQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		t.Run(msg.String(), func(t *testing.T) {
			_, cmd := update(t, newTestWatch(t), msg)
			if cmd == nil {
				t.Fatal("quit key returned no command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("%s did not quit", msg.String())
			}
		})
	}
}

func TestWatchModelView(t *testing.T) {
	m := newTestWatch(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	view := m.View()
	for _, want := range []string{"ring", "tick", "alpha", "running", "q quit", string(glyphNode)} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestNewWatchModelErrors(t *testing.T) {
	g := graph.Graph{Nodes: []graph.Node{{ID: "a"}}, Edges: []graph.Edge{{From: "a", To: "b"}}}
	if _, err := newWatchModel[vector.Vec2]("bad", g, pipeline.Options{}, 1); err == nil {
		t.Error("unknown endpoint should fail")
	}
}

func TestPlot(t *testing.T) {
	l := graph.Layout{
		Dimensions: 2,
		Nodes: []graph.Placement{
			{ID: "a", X: -10, Y: 0},
			{ID: "b", X: 10, Y: 0, Fixed: true},
		},
		Edges: []graph.Edge{{From: "a", To: "b"}},
	}
	grid := plot(l, 21, 5)
	if len(grid) != 5 || len(grid[0]) != 21 {
		t.Fatalf("grid = %dx%d, want 21x5", len(grid[0]), len(grid))
	}

	counts := map[rune]int{}
	for _, row := range grid {
		for _, c := range row {
			counts[c.glyph]++
		}
	}
	if counts[glyphNode] != 1 || counts[glyphFixed] != 1 {
		t.Errorf("nodes = %d, fixed = %d, want 1 and 1", counts[glyphNode], counts[glyphFixed])
	}
	if counts[glyphEdge] == 0 {
		t.Error("edge not drawn")
	}

	empty := plot(graph.Layout{Dimensions: 2}, 4, 2)
	for _, row := range empty {
		for _, c := range row {
			if c.glyph != ' ' {
				t.Errorf("empty layout drew %q", c.glyph)
			}
		}
	}
}
