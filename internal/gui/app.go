// Package gui is the raylib window host for the particle field.
package gui

import (
	"errors"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/input"
	"github.com/san-kum/partfield/internal/scene"
	"github.com/san-kum/partfield/internal/sim"
)

var (
	ColBg       = rl.NewColor(10, 10, 10, 255)
	ColParticle = rl.NewColor(200, 200, 220, 255)
	ColText     = rl.NewColor(140, 140, 140, 255)
	ColTitle    = rl.NewColor(230, 230, 230, 255)
	ColButton   = rl.NewColor(38, 38, 38, 255)
	ColHovered  = rl.NewColor(64, 64, 64, 255)
	ColPressed  = rl.NewColor(89, 191, 89, 255)
	ColError    = rl.NewColor(220, 20, 60, 255)
)

type Options struct {
	Width, Height int
	FPS           int
	Title         string
}

// windowViewport reads the live window size. A minimized window has no
// usable viewport.
type windowViewport struct{}

func (windowViewport) Bounds() (dynamo.Rect, bool) {
	if rl.IsWindowMinimized() {
		return dynamo.Rect{}, false
	}
	return dynamo.Rect{
		Width:  float32(rl.GetScreenWidth()),
		Height: float32(rl.GetScreenHeight()),
	}, rl.GetScreenWidth() > 0 && rl.GetScreenHeight() > 0
}

type App struct {
	simulator *sim.Simulator
	lifecycle *scene.Lifecycle
	camera    *input.Camera2D
	viewport  windowViewport
	log       *slog.Logger

	buttons   []button
	hovered   int
	particles int
	quit      bool
	err       error
}

func NewApp(s *sim.Simulator, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{simulator: s, log: logger, hovered: -1}
	a.lifecycle = scene.New(
		scene.Funcs{SetupFunc: a.setupMenu, TeardownFunc: a.teardownMenu},
		scene.Funcs{SetupFunc: a.setupField, TeardownFunc: a.teardownField},
		logger,
	)
	return a
}

func (a *App) setupMenu() error {
	a.layoutMenu()
	return nil
}

// layoutMenu places the buttons for the current window size.
func (a *App) layoutMenu() {
	bounds, ok := a.viewport.Bounds()
	if !ok {
		bounds = dynamo.Rect{Width: float32(rl.GetScreenWidth()), Height: float32(rl.GetScreenHeight())}
	}
	a.buttons = menuButtons(bounds)
	a.hovered = -1
}

func (a *App) teardownMenu() {
	a.buttons = nil
	a.hovered = -1
}

func (a *App) setupField() error {
	n, err := a.simulator.Start(a.viewport)
	if err != nil {
		return err
	}
	bounds, _ := a.viewport.Bounds()
	a.camera = input.NewCamera2D(bounds, false)
	a.particles = n
	a.log.Info("particles loaded", "count", n)
	return nil
}

func (a *App) teardownField() {
	a.simulator.Stop()
	a.camera = nil
	a.particles = 0
}

// Run opens the window and blocks until it is closed or Quit is chosen.
func Run(s *sim.Simulator, opts Options, logger *slog.Logger) error {
	if opts.Title == "" {
		opts.Title = "Particle Field"
	}
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)

	app := NewApp(s, logger)
	if err := app.lifecycle.Start(); err != nil {
		return err
	}
	defer app.lifecycle.Shutdown()

	return app.RunLoop()
}

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() && !a.quit {
		if err := a.Update(); err != nil {
			return err
		}
		a.Draw()
	}
	return nil
}

// Update handles one frame of input. Transitions only happen here, between
// frames.
func (a *App) Update() error {
	switch a.lifecycle.State() {
	case scene.MenuActive:
		a.updateMenu()
	case scene.SimulationActive:
		return a.updateField()
	}
	return nil
}

func (a *App) updateMenu() {
	if rl.IsWindowResized() {
		a.layoutMenu()
	}

	mouse := rl.GetMousePosition()
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		a.hovered = hitButton(a.buttons, mouse)
	}
	n := len(a.buttons)
	switch {
	case rl.IsKeyPressed(rl.KeyDown):
		a.hovered = (a.hovered + 1) % n
	case rl.IsKeyPressed(rl.KeyUp):
		a.hovered = (max(a.hovered, 0) + n - 1) % n
	}

	clicked := false
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		if i := hitButton(a.buttons, mouse); i >= 0 {
			a.hovered, clicked = i, true
		}
	}
	if a.hovered >= 0 && rl.IsKeyPressed(rl.KeyEnter) {
		clicked = true
	}
	if !clicked {
		return
	}

	switch a.buttons[a.hovered].action {
	case actionPlay:
		if _, err := a.lifecycle.Play(); err != nil {
			a.err = err
			a.log.Error("play failed", "err", err)
			return
		}
		a.err = nil
	case actionQuit:
		a.quit = true
	}
}

func (a *App) updateField() error {
	if rl.IsKeyPressed(rl.KeyEscape) {
		_, err := a.lifecycle.Cancel()
		return err
	}

	if rl.IsWindowResized() {
		if bounds, ok := a.viewport.Bounds(); ok {
			a.camera.Resize(bounds)
		}
	}

	mouse := rl.GetMousePosition()
	snap := input.Snapshot{
		Buttons: input.Buttons{
			LeftHeld:         rl.IsMouseButtonDown(rl.MouseButtonLeft),
			RightJustPressed: rl.IsMouseButtonPressed(rl.MouseButtonRight),
			MiddleHeld:       rl.IsMouseButtonDown(rl.MouseButtonMiddle),
		},
		Screen:   dynamo.V(mouse.X, mouse.Y),
		OnScreen: rl.IsCursorOnScreen(),
		Camera:   a.camera,
	}

	if _, err := a.simulator.Advance(snap, a.viewport); err != nil {
		// Minimized windows come back; anything else is fatal.
		if errors.Is(err, dynamo.ErrNoViewport) {
			return nil
		}
		return err
	}
	return nil
}

func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(ColBg)

	switch a.lifecycle.State() {
	case scene.MenuActive:
		a.drawMenu()
	case scene.SimulationActive:
		a.drawField()
	}
}

func (a *App) drawField() {
	if a.camera == nil {
		return
	}
	half := a.camera.Viewport.Center()
	cam := rl.Camera2D{
		Offset: rl.NewVector2(half.X, half.Y),
		Target: rl.NewVector2(a.camera.Center.X, a.camera.Center.Y),
		Zoom:   a.camera.Zoom,
	}

	rl.BeginMode2D(cam)
	for _, p := range a.simulator.Store().Particles() {
		x, y := p.Pos.X, p.Pos.Y
		rl.DrawTriangle(
			rl.NewVector2(x, y-1),
			rl.NewVector2(x-1, y+1),
			rl.NewVector2(x+1, y+1),
			ColParticle,
		)
	}
	rl.EndMode2D()

	mode := a.simulator.LastCommand().Mode
	rl.DrawText(fmt.Sprintf("%d particles  %s  %d fps", a.particles, mode, rl.GetFPS()), 12, 12, 20, ColText)
	rl.DrawText("esc: menu", 12, 36, 16, ColText)
}

func (a *App) drawMenu() {
	w := int32(rl.GetScreenWidth())
	title := "Particle Field"
	tw := rl.MeasureText(title, 48)
	rl.DrawText(title, (w-tw)/2, int32(rl.GetScreenHeight())/4, 48, ColTitle)

	pressed := rl.IsMouseButtonDown(rl.MouseButtonLeft)
	for i, b := range a.buttons {
		col := ColButton
		if i == a.hovered {
			col = ColHovered
			if pressed {
				col = ColPressed
			}
		}
		rl.DrawRectangleRec(b.rect, col)
		lw := rl.MeasureText(b.label, 28)
		rl.DrawText(b.label,
			int32(b.rect.X+b.rect.Width/2)-lw/2,
			int32(b.rect.Y+b.rect.Height/2)-14,
			28, ColTitle)
	}

	if a.err != nil {
		msg := a.err.Error()
		rl.DrawText(msg, (w-rl.MeasureText(msg, 18))/2, int32(rl.GetScreenHeight())-40, 18, ColError)
	}
}
