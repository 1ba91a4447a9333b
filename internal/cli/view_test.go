package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/placardlabs/placard/pkg/geom"
	"github.com/placardlabs/placard/pkg/layout"
	"github.com/placardlabs/placard/pkg/scene"
)

func stepperScene() *scene.Scene {
	return &scene.Scene{
		Canvas: geom.NewBox(-10, -10, 10, 10),
		Points: []scene.Point{
			{ID: "a", X: 0, Y: 0},
			{ID: "b", X: 0.2, Y: 0.1},
		},
		Sectors: []geom.Sector{
			{Center: geom.Point{X: 5, Y: -5}, Radius: 3, StartDeg: 0, EndDeg: 90},
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewModelSteps(t *testing.T) {
	m, err := newViewModel(stepperScene(), layout.DefaultConfig())
	if err != nil {
		t.Fatalf("newViewModel: %v", err)
	}
	if m.iteration != 0 {
		t.Fatalf("iteration = %d, want 0", m.iteration)
	}

	next, _ := m.Update(keyMsg("n"))
	m = next.(*viewModel)
	if m.iteration != 1 {
		t.Errorf("iteration after step = %d, want 1", m.iteration)
	}

	next, _ = m.Update(keyMsg("s"))
	m = next.(*viewModel)
	if m.iteration != 11 {
		t.Errorf("iteration after x10 = %d, want 11", m.iteration)
	}
}

func TestViewModelReset(t *testing.T) {
	m, err := newViewModel(stepperScene(), layout.DefaultConfig())
	if err != nil {
		t.Fatalf("newViewModel: %v", err)
	}

	next, _ := m.Update(keyMsg("n"))
	m = next.(*viewModel)
	next, _ = m.Update(keyMsg("r"))
	m = next.(*viewModel)
	if m.iteration != 0 {
		t.Errorf("iteration after reset = %d, want 0", m.iteration)
	}
	if m.err != nil {
		t.Errorf("reset error: %v", m.err)
	}
}

func TestViewModelQuit(t *testing.T) {
	m, err := newViewModel(stepperScene(), layout.DefaultConfig())
	if err != nil {
		t.Fatalf("newViewModel: %v", err)
	}
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestViewModelView(t *testing.T) {
	m, err := newViewModel(stepperScene(), layout.DefaultConfig())
	if err != nil {
		t.Fatalf("newViewModel: %v", err)
	}
	out := m.View()
	if !strings.Contains(out, "iteration 0") {
		t.Error("view missing iteration counter")
	}
	if !strings.Contains(out, "overlap") {
		t.Error("view missing overlap counter")
	}
	// nearly coincident anchors get boxes drawn with their ID initials
	canvas := m.renderCanvas()
	if !strings.ContainsRune(canvas, 'a') && !strings.ContainsRune(canvas, 'b') {
		t.Error("canvas missing label boxes")
	}
	if !strings.ContainsRune(canvas, '░') {
		t.Error("canvas missing sector shading")
	}
}
