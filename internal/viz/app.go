package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/input"
	"github.com/san-kum/partfield/internal/scene"
	"github.com/san-kum/partfield/internal/sim"
)

const (
	historyCapacity = 120
	statusLines     = 2
)

var menuItems = []string{"Play", "Quit"}

type tickMsg struct {
	gen int
	at  time.Time
}

// pointer is the mouse and keyboard cursor state between frames, in cells.
type pointer struct {
	col, row     int
	onScreen     bool
	left, middle bool
	rightPressed bool
}

// App is the Bubble Tea model. It is a pointer model because the lifecycle
// hooks close over it.
type App struct {
	simulator *sim.Simulator
	lifecycle *scene.Lifecycle
	world     dynamo.Rect
	interval  time.Duration
	log       *slog.Logger

	width, height int
	cursor        int
	canvas        *Canvas
	ptr           pointer
	gen           int
	particles     int
	lastFrame     time.Time
	fps           float64
	energy        []float64
	err           error
	quitting      bool
}

// NewApp builds a terminal host simulating world bounds at fps frames per
// second. The lifecycle is started immediately.
func NewApp(s *sim.Simulator, world dynamo.Rect, fps int, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	if fps <= 0 {
		fps = 30
	}
	a := &App{
		simulator: s,
		world:     world,
		interval:  time.Second / time.Duration(fps),
		log:       logger,
		width:     80,
		height:    24,
	}
	a.canvas = NewCanvas(a.fieldSize())

	a.lifecycle = scene.New(
		scene.Funcs{SetupFunc: a.setupMenu},
		scene.Funcs{SetupFunc: a.setupField, TeardownFunc: a.teardownField},
		logger,
	)
	if err := a.lifecycle.Start(); err != nil {
		a.err = err
	}
	return a
}

func (a *App) setupMenu() error {
	a.cursor = 0
	return nil
}

func (a *App) setupField() error {
	n, err := a.simulator.Start(a.world)
	if err != nil {
		return err
	}
	a.particles = n
	a.ptr = pointer{}
	a.energy = a.energy[:0]
	a.log.Info("particles loaded", "count", n)
	return nil
}

func (a *App) teardownField() {
	a.simulator.Stop()
	a.particles = 0
	a.ptr = pointer{}
	a.gen++
}

func (a *App) fieldSize() (int, int) {
	return max(a.width, 1), max(a.height-statusLines, 1)
}

func (a *App) projector() cellProjector {
	return cellProjector{cols: a.canvas.Width, rows: a.canvas.Height, world: a.world}
}

// snapshot hands the current pointer to the simulator and consumes the
// right click edge.
func (a *App) snapshot() input.Snapshot {
	snap := input.Snapshot{
		Buttons: input.Buttons{
			LeftHeld:         a.ptr.left,
			RightJustPressed: a.ptr.rightPressed,
			MiddleHeld:       a.ptr.middle,
		},
		Screen:   dynamo.V(float32(a.ptr.col), float32(a.ptr.row)),
		OnScreen: a.ptr.onScreen,
		Camera:   a.projector(),
	}
	a.ptr.rightPressed = false
	return snap
}

func (a *App) tick() tea.Cmd {
	gen := a.gen
	return tea.Tick(a.interval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.canvas = NewCanvas(a.fieldSize())
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, a.quit()
		}
		if a.lifecycle.State() == scene.MenuActive {
			return a, a.menuKey(msg)
		}
		return a, a.fieldKey(msg)
	case tea.MouseMsg:
		if a.lifecycle.State() == scene.SimulationActive {
			a.mouse(msg)
		}
		return a, nil
	case tickMsg:
		if msg.gen != a.gen || a.lifecycle.State() != scene.SimulationActive {
			return a, nil
		}
		return a, a.frame(msg.at)
	}
	return a, nil
}

func (a *App) quit() tea.Cmd {
	a.quitting = true
	a.lifecycle.Shutdown()
	return tea.Quit
}

func (a *App) menuKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return a.quit()
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(menuItems)-1 {
			a.cursor++
		}
	case "enter", " ":
		if menuItems[a.cursor] == "Quit" {
			return a.quit()
		}
		return a.play()
	}
	return nil
}

func (a *App) play() tea.Cmd {
	ok, err := a.lifecycle.Play()
	a.err = err
	if err != nil {
		a.log.Error("play failed", "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	a.lastFrame = time.Time{}
	return a.tick()
}

func (a *App) fieldKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		if _, err := a.lifecycle.Cancel(); err != nil {
			a.err = err
		}
		return nil
	case "left", "h":
		a.moveCursor(-1, 0)
	case "right", "l":
		a.moveCursor(1, 0)
	case "up", "k":
		a.moveCursor(0, -1)
	case "down", "j":
		a.moveCursor(0, 1)
	case "a":
		a.ptr.left = !a.ptr.left
		a.ptr.onScreen = true
	case "o":
		a.ptr.middle = !a.ptr.middle
		a.ptr.onScreen = true
	case "r":
		a.ptr.rightPressed = true
		a.ptr.onScreen = true
	}
	return nil
}

func (a *App) moveCursor(dc, dr int) {
	if !a.ptr.onScreen {
		a.ptr.col, a.ptr.row = a.canvas.Width/2, a.canvas.Height/2
		a.ptr.onScreen = true
	}
	a.ptr.col = min(max(a.ptr.col+dc, 0), a.canvas.Width-1)
	a.ptr.row = min(max(a.ptr.row+dr, 0), a.canvas.Height-1)
}

func (a *App) mouse(msg tea.MouseMsg) {
	a.ptr.col, a.ptr.row = msg.X, msg.Y
	a.ptr.onScreen = msg.Y < a.canvas.Height

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			a.ptr.left = true
		case tea.MouseButtonMiddle:
			a.ptr.middle = true
		case tea.MouseButtonRight:
			a.ptr.rightPressed = true
		}
	case tea.MouseActionRelease:
		switch msg.Button {
		case tea.MouseButtonLeft:
			a.ptr.left = false
		case tea.MouseButtonMiddle:
			a.ptr.middle = false
		case tea.MouseButtonNone:
			// Some terminals do not report which button was released.
			a.ptr.left, a.ptr.middle = false, false
		}
	}
}

func (a *App) frame(now time.Time) tea.Cmd {
	if !a.lastFrame.IsZero() {
		if dt := now.Sub(a.lastFrame).Seconds(); dt > 0 {
			a.fps = 0.9*a.fps + 0.1/dt
		}
	}
	a.lastFrame = now

	if _, err := a.simulator.Advance(a.snapshot(), a.world); err != nil {
		a.err = err
		a.log.Error("frame failed", "err", err)
		if _, cerr := a.lifecycle.Cancel(); cerr != nil {
			a.log.Error("cancel failed", "err", cerr)
		}
		return nil
	}

	if e, ok := a.simulator.Metrics()["kinetic_energy"]; ok {
		a.energy = append(a.energy, e)
		if len(a.energy) > historyCapacity {
			a.energy = a.energy[len(a.energy)-historyCapacity:]
		}
	}
	return a.tick()
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if a.lifecycle.State() == scene.SimulationActive {
		return a.viewField()
	}
	return a.viewMenu()
}

func (a *App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("Particle Field") + "\n")
	b.WriteString("    " + subtleStyle.Render("─────────────────────────") + "\n\n")
	for i, item := range menuItems {
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s\n", pointerStyle.Render("▸"), selectedStyle.Render(item)))
		} else {
			b.WriteString(fmt.Sprintf("      %s\n", idleStyle.Render(item)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + errorStyle.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (a *App) viewField() string {
	a.canvas.Clear()
	a.canvas.Plot(a.simulator.Store().Particles(), a.world)
	if a.ptr.onScreen {
		a.canvas.Cross(a.ptr.col, a.ptr.row)
	}

	mode := a.simulator.LastCommand().Mode.String()
	status := fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		labelStyle.Render("mode"), modeStyles[mode].Render(fmt.Sprintf("%-7s", mode)),
		labelStyle.Render("particles"), valueStyle.Render(fmt.Sprint(a.particles)),
		labelStyle.Render("frame"), valueStyle.Render(fmt.Sprint(a.simulator.Frame())),
		labelStyle.Render("fps"), valueStyle.Render(fmt.Sprintf("%.0f", a.fps)),
	)
	if a.width > 70 {
		status += "  " + subtleStyle.Render(sparkline(a.energy, a.width-70))
	}

	return fieldStyle.Render(a.canvas.String()) + "\n" + status + "\n" +
		keyHints("drag", "attract", "right", "repel", "middle", "orbit", "esc", "menu")
}

// Run starts the terminal host and blocks until the user quits.
func Run(s *sim.Simulator, world dynamo.Rect, fps int, logger *slog.Logger) error {
	app := NewApp(s, world, fps, logger)
	defer app.lifecycle.Shutdown()

	_, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
