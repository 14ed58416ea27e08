package experiment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/input"
)

// Step holds one cursor gesture for a number of frames.
type Step struct {
	Mode   input.Mode
	Target dynamo.Vec2
	Frames int
}

func (s Step) String() string {
	if s.Mode == input.ModeNone {
		return fmt.Sprintf("none:%d", s.Frames)
	}
	return fmt.Sprintf("%s@%g,%g:%d", s.Mode, s.Target.X, s.Target.Y, s.Frames)
}

// ParseScript reads steps of the form "mode@x,y:frames" separated by spaces
// or semicolons, e.g. "attract@1280,720:120 none:60 repel@640,360:1".
// The none mode takes no target.
func ParseScript(src string) ([]Step, error) {
	fields := strings.FieldsFunc(src, func(r rune) bool {
		return r == ';' || r == ' ' || r == '\n' || r == '\t'
	})

	steps := make([]Step, 0, len(fields))
	for _, f := range fields {
		st, err := parseStep(f)
		if err != nil {
			return nil, err
		}
		steps = append(steps, st)
	}
	return steps, nil
}

func parseStep(f string) (Step, error) {
	head, framesStr, ok := strings.Cut(f, ":")
	if !ok {
		return Step{}, fmt.Errorf("step %q: missing :frames", f)
	}
	frames, err := strconv.Atoi(framesStr)
	if err != nil || frames < 0 {
		return Step{}, fmt.Errorf("step %q: bad frame count %q", f, framesStr)
	}

	modeStr, targetStr, hasTarget := strings.Cut(head, "@")
	mode, ok := input.ParseMode(modeStr)
	if !ok {
		return Step{}, fmt.Errorf("step %q: unknown mode %q", f, modeStr)
	}

	st := Step{Mode: mode, Frames: frames}
	if mode == input.ModeNone {
		return st, nil
	}
	if !hasTarget {
		return Step{}, fmt.Errorf("step %q: %s needs @x,y", f, mode)
	}

	xs, ys, ok := strings.Cut(targetStr, ",")
	if !ok {
		return Step{}, fmt.Errorf("step %q: target must be x,y", f)
	}
	x, errX := strconv.ParseFloat(xs, 32)
	y, errY := strconv.ParseFloat(ys, 32)
	if errX != nil || errY != nil {
		return Step{}, fmt.Errorf("step %q: bad target %q", f, targetStr)
	}
	st.Target = dynamo.Vec2{X: float32(x), Y: float32(y)}
	return st, nil
}

// Snapshot synthesizes the pointer state for the given frame of a step. The
// right button is only "just pressed" on the first frame; afterwards it is
// merely held, which repels nothing.
func (s Step) Snapshot(frame int) input.Snapshot {
	snap := input.Snapshot{
		Screen:   s.Target,
		OnScreen: true,
		Camera:   input.Identity{},
	}
	switch s.Mode {
	case input.ModeAttract:
		snap.Buttons.LeftHeld = true
	case input.ModeRepel:
		snap.Buttons.RightJustPressed = frame == 0
	case input.ModeOrbit:
		snap.Buttons.MiddleHeld = true
	}
	return snap
}

func TotalFrames(steps []Step) int {
	n := 0
	for _, s := range steps {
		n += s.Frames
	}
	return n
}
