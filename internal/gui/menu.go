package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/partfield/internal/dynamo"
)

type action int

const (
	actionPlay action = iota
	actionQuit
)

const (
	buttonWidth  = 300
	buttonHeight = 65
	buttonGap    = 20
)

type button struct {
	label  string
	action action
	rect   rl.Rectangle
}

// menuButtons stacks Play and Quit in the middle of bounds.
func menuButtons(bounds dynamo.Rect) []button {
	labels := []struct {
		label  string
		action action
	}{
		{"Play", actionPlay},
		{"Quit", actionQuit},
	}

	c := bounds.Center()
	total := float32(len(labels))*buttonHeight + float32(len(labels)-1)*buttonGap
	y := c.Y - total/2

	out := make([]button, 0, len(labels))
	for _, l := range labels {
		out = append(out, button{
			label:  l.label,
			action: l.action,
			rect:   rl.NewRectangle(c.X-buttonWidth/2, y, buttonWidth, buttonHeight),
		})
		y += buttonHeight + buttonGap
	}
	return out
}

// hitButton returns the index of the button under p, or -1.
func hitButton(buttons []button, p rl.Vector2) int {
	for i, b := range buttons {
		if rl.CheckCollisionPointRec(p, b.rect) {
			return i
		}
	}
	return -1
}
