// Package input turns raw pointer state into the single cursor command a
// frame is simulated with.
package input

import "github.com/san-kum/partfield/internal/dynamo"

type Mode int

const (
	ModeNone Mode = iota
	ModeAttract
	ModeRepel
	ModeOrbit
)

func (m Mode) String() string {
	switch m {
	case ModeAttract:
		return "attract"
	case ModeRepel:
		return "repel"
	case ModeOrbit:
		return "orbit"
	default:
		return "none"
	}
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "none", "":
		return ModeNone, true
	case "attract":
		return ModeAttract, true
	case "repel":
		return ModeRepel, true
	case "orbit":
		return ModeOrbit, true
	}
	return ModeNone, false
}

// Command is the per-frame cursor interaction. Target is meaningful only when
// Mode is not ModeNone.
type Command struct {
	Mode   Mode
	Target dynamo.Vec2
}

func (c Command) Active() bool { return c.Mode != ModeNone }

// Buttons is the pointer state sampled once per frame. Right is an edge
// signal: true only on the frame the button went down.
type Buttons struct {
	LeftHeld         bool
	RightJustPressed bool
	MiddleHeld       bool
}

// Snapshot is everything the host observed about the pointer this frame.
// Camera may be nil when no camera exists.
type Snapshot struct {
	Buttons  Buttons
	Screen   dynamo.Vec2
	OnScreen bool
	Camera   Projector
}

// World projects the snapshot cursor into world space.
func (s Snapshot) World() (dynamo.Vec2, bool) {
	if !s.OnScreen || s.Camera == nil {
		return dynamo.Vec2{}, false
	}
	return s.Camera.ScreenToWorld(s.Screen)
}

// Resolve picks exactly one mode in fixed priority: attract, then repel, then
// orbit. Every mode needs a world position; without one the result is
// ModeNone.
func Resolve(b Buttons, world dynamo.Vec2, ok bool) Command {
	if !ok {
		return Command{}
	}
	switch {
	case b.LeftHeld:
		return Command{Mode: ModeAttract, Target: world}
	case b.RightJustPressed:
		return Command{Mode: ModeRepel, Target: world}
	case b.MiddleHeld:
		return Command{Mode: ModeOrbit, Target: world}
	}
	return Command{}
}

// ResolveSnapshot projects the snapshot cursor and resolves it.
func ResolveSnapshot(s Snapshot) Command {
	w, ok := s.World()
	return Resolve(s.Buttons, w, ok)
}
