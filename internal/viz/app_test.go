package viz

import (
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/input"
	"github.com/san-kum/partfield/internal/metrics"
	"github.com/san-kum/partfield/internal/particles"
	"github.com/san-kum/partfield/internal/scene"
	"github.com/san-kum/partfield/internal/sim"
)

func newTestApp(world dynamo.Rect) *App {
	s := sim.New(dynamo.DefaultConstants(), particles.NewStore(nil), nil, sim.Options{})
	s.AddMetric(metrics.NewKineticEnergy())
	a := NewApp(s, world, 60, slog.New(slog.NewTextHandler(io.Discard, nil)))
	a.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	return a
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (a *App) tickNow() {
	a.Update(tickMsg{gen: a.gen, at: time.Now()})
}

func TestAppPlayAndCancel(t *testing.T) {
	a := newTestApp(dynamo.Rect{Width: 100, Height: 50})

	if a.lifecycle.State() != scene.MenuActive {
		t.Fatal("app should start in the menu")
	}

	_, cmd := a.Update(key("enter"))
	if cmd == nil {
		t.Error("play should schedule a tick")
	}
	if a.lifecycle.State() != scene.SimulationActive {
		t.Fatal("enter on Play should start the simulation")
	}
	if n := a.simulator.Store().Len(); n != 20*10 {
		t.Errorf("expected 200 particles, got %d", n)
	}

	a.Update(key("esc"))
	if a.lifecycle.State() != scene.MenuActive {
		t.Fatal("esc should return to the menu")
	}
	if a.simulator.Store().Len() != 0 {
		t.Error("store should be empty in the menu")
	}

	// Second esc is not a transition
	a.Update(key("esc"))
	if a.lifecycle.State() != scene.MenuActive {
		t.Error("esc in the menu should do nothing")
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(dynamo.Rect{Width: 100, Height: 50})

	a.Update(key("down"))
	_, cmd := a.Update(key("enter"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit item should quit the program")
	}
	if a.lifecycle.State() != scene.MenuActive {
		t.Error("quit is not a scene transition")
	}
}

func TestAppPlay_EmptyWorld(t *testing.T) {
	a := newTestApp(dynamo.Rect{Width: 0, Height: 50})

	a.Update(key("enter"))
	if a.lifecycle.State() != scene.SimulationActive {
		t.Fatal("a degenerate world is still playable")
	}
	if a.err != nil || a.simulator.Store().Len() != 0 {
		t.Errorf("expected an empty field without error, got %d particles, err %v", a.simulator.Store().Len(), a.err)
	}
	a.tickNow()
	if a.simulator.Frame() != 1 {
		t.Errorf("empty field should still advance, frame %d", a.simulator.Frame())
	}
}

func TestAppMouseModes(t *testing.T) {
	a := newTestApp(dynamo.Rect{Width: 400, Height: 200})
	a.Update(key("enter"))

	a.Update(tea.MouseMsg{X: 20, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	a.tickNow()
	if got := a.simulator.LastCommand().Mode; got != input.ModeAttract {
		t.Errorf("left drag mode = %v, want attract", got)
	}

	a.Update(tea.MouseMsg{X: 20, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	a.Update(tea.MouseMsg{X: 20, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	a.tickNow()
	if got := a.simulator.LastCommand().Mode; got != input.ModeRepel {
		t.Errorf("right click mode = %v, want repel", got)
	}
	a.tickNow()
	if got := a.simulator.LastCommand().Mode; got != input.ModeNone {
		t.Errorf("repel should last one frame, got %v", got)
	}

	a.Update(tea.MouseMsg{X: 20, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonMiddle})
	a.tickNow()
	if got := a.simulator.LastCommand().Mode; got != input.ModeOrbit {
		t.Errorf("middle drag mode = %v, want orbit", got)
	}

	// Pointer over the status bar has no world position
	a.Update(tea.MouseMsg{X: 20, Y: 11, Action: tea.MouseActionMotion, Button: tea.MouseButtonMiddle})
	a.tickNow()
	if got := a.simulator.LastCommand().Mode; got != input.ModeNone {
		t.Errorf("off-field pointer mode = %v, want none", got)
	}
}

func TestAppKeyboardCursor(t *testing.T) {
	a := newTestApp(dynamo.Rect{Width: 400, Height: 200})
	a.Update(key("enter"))

	a.Update(key("l"))
	a.Update(key("a"))
	a.tickNow()

	cmd := a.simulator.LastCommand()
	if cmd.Mode != input.ModeAttract {
		t.Fatalf("mode = %v, want attract", cmd.Mode)
	}
	want, _ := a.projector().ScreenToWorld(dynamo.V(21, 5))
	if cmd.Target != want {
		t.Errorf("target = %v, want %v", cmd.Target, want)
	}
}

func TestAppStaleTickIgnored(t *testing.T) {
	a := newTestApp(dynamo.Rect{Width: 100, Height: 50})
	a.Update(key("enter"))
	stale := a.gen

	a.Update(key("esc"))
	a.Update(key("enter"))

	_, cmd := a.Update(tickMsg{gen: stale, at: time.Now()})
	if cmd != nil {
		t.Error("tick from a previous episode should be dropped")
	}
	if a.simulator.Frame() != 0 {
		t.Errorf("stale tick advanced the field to frame %d", a.simulator.Frame())
	}
}

func TestAppView(t *testing.T) {
	a := newTestApp(dynamo.Rect{Width: 100, Height: 50})
	if v := a.View(); v == "" {
		t.Error("menu view is empty")
	}
	a.Update(key("enter"))
	a.tickNow()
	if v := a.View(); v == "" {
		t.Error("field view is empty")
	}
}
