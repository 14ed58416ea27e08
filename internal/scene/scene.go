// Package scene implements the two-state lifecycle that decides when the
// particle field exists.
//
// The lifecycle starts in MenuActive. Play moves it to SimulationActive and
// Cancel moves it back. Each transition tears down the scene being left and
// sets up the one being entered. Teardowns must tolerate running against a
// scene whose setup never completed.
package scene

import (
	"fmt"
	"log/slog"
)

type State int

const (
	MenuActive State = iota
	SimulationActive
)

func (s State) String() string {
	switch s {
	case MenuActive:
		return "menu"
	case SimulationActive:
		return "simulation"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Scene owns the resources of one state.
type Scene interface {
	Setup() error
	Teardown()
}

// Funcs adapts plain functions to a Scene. Nil fields are no-ops.
type Funcs struct {
	SetupFunc    func() error
	TeardownFunc func()
}

func (f Funcs) Setup() error {
	if f.SetupFunc == nil {
		return nil
	}
	return f.SetupFunc()
}

func (f Funcs) Teardown() {
	if f.TeardownFunc != nil {
		f.TeardownFunc()
	}
}

// Listener is told about every completed transition.
type Listener func(from, to State)

type Lifecycle struct {
	state     State
	started   bool
	menu      Scene
	sim       Scene
	listeners []Listener
	log       *slog.Logger
}

func New(menu, sim Scene, logger *slog.Logger) *Lifecycle {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lifecycle{
		state: MenuActive,
		menu:  menu,
		sim:   sim,
		log:   logger,
	}
}

func (l *Lifecycle) State() State { return l.state }

func (l *Lifecycle) OnTransition(fn Listener) {
	l.listeners = append(l.listeners, fn)
}

// Start enters the initial menu state. Calling it again does nothing.
func (l *Lifecycle) Start() error {
	if l.started {
		return nil
	}
	l.started = true
	if err := l.menu.Setup(); err != nil {
		return fmt.Errorf("menu setup: %w", err)
	}
	l.log.Info("menu loaded")
	return nil
}

// Play moves from the menu to the simulation. It reports false when the
// lifecycle is not in the menu. When simulation setup fails the partial
// simulation is torn down, the menu is rebuilt and the error is returned.
func (l *Lifecycle) Play() (bool, error) {
	if l.state != MenuActive {
		return false, nil
	}

	l.menu.Teardown()
	if err := l.sim.Setup(); err != nil {
		l.sim.Teardown()
		if merr := l.menu.Setup(); merr != nil {
			l.log.Error("menu rebuild failed", "err", merr)
		}
		return false, fmt.Errorf("simulation setup: %w", err)
	}

	l.transition(SimulationActive)
	return true, nil
}

// Cancel moves from the simulation back to the menu. It reports false when
// the simulation is not active.
func (l *Lifecycle) Cancel() (bool, error) {
	if l.state != SimulationActive {
		return false, nil
	}

	l.sim.Teardown()
	l.transition(MenuActive)
	if err := l.menu.Setup(); err != nil {
		return true, fmt.Errorf("menu setup: %w", err)
	}
	return true, nil
}

// Shutdown tears down whichever scene is active. It is safe to call more
// than once and before Start.
func (l *Lifecycle) Shutdown() {
	l.sim.Teardown()
	l.menu.Teardown()
	l.started = false
}

func (l *Lifecycle) transition(to State) {
	from := l.state
	l.state = to
	l.log.Info("scene transition", "from", from.String(), "to", to.String())
	for _, fn := range l.listeners {
		fn(from, to)
	}
}
