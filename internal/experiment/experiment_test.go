package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/input"
	"github.com/san-kum/partfield/internal/particles"
	"github.com/san-kum/partfield/internal/sim"
)

func TestParseScript(t *testing.T) {
	steps, err := ParseScript("attract@100,50:10; none:5 repel@1.5,2:1\norbit@0,0:3")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	want := []Step{
		{Mode: input.ModeAttract, Target: dynamo.V(100, 50), Frames: 10},
		{Mode: input.ModeNone, Frames: 5},
		{Mode: input.ModeRepel, Target: dynamo.V(1.5, 2), Frames: 1},
		{Mode: input.ModeOrbit, Target: dynamo.V(0, 0), Frames: 3},
	}
	if len(steps) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(steps))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step %d = %+v, want %+v", i, steps[i], want[i])
		}
	}
	if TotalFrames(steps) != 19 {
		t.Errorf("expected 19 frames, got %d", TotalFrames(steps))
	}

	// String output parses back
	again, err := ParseScript(steps[0].String() + " " + steps[1].String())
	if err != nil || again[0] != steps[0] || again[1] != steps[1] {
		t.Errorf("String round trip failed: %v %v", again, err)
	}
}

func TestParseScript_Errors(t *testing.T) {
	bad := []string{
		"attract@1,2",
		"attract:10",
		"warp@1,2:3",
		"orbit@1:3",
		"orbit@a,b:3",
		"none:-1",
		"none:x",
	}
	for _, src := range bad {
		if _, err := ParseScript(src); err == nil {
			t.Errorf("ParseScript(%q) should fail", src)
		}
	}
}

func TestStepSnapshot_RepelEdge(t *testing.T) {
	st := Step{Mode: input.ModeRepel, Target: dynamo.V(5, 5), Frames: 3}

	if got := input.ResolveSnapshot(st.Snapshot(0)).Mode; got != input.ModeRepel {
		t.Errorf("first frame mode = %v, want repel", got)
	}
	if got := input.ResolveSnapshot(st.Snapshot(1)).Mode; got != input.ModeNone {
		t.Errorf("held frame mode = %v, want none", got)
	}
}

func newExperiment(t *testing.T, script string) *Experiment {
	t.Helper()
	steps, err := ParseScript(script)
	if err != nil {
		t.Fatal(err)
	}
	e := New(Config{Bounds: dynamo.Rect{Width: 200, Height: 100}, Script: steps})
	s := sim.New(dynamo.DefaultConstants(), particles.NewStore(nil), nil, sim.Options{ValidateState: true})
	if err := e.Setup(s); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestExperimentRun(t *testing.T) {
	e := newExperiment(t, "attract@100,50:20 none:10 repel@100,50:5 orbit@100,50:15")

	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Particles != 40*20 {
		t.Errorf("expected 800 particles, got %d", result.Particles)
	}
	if result.Frames != 50 || result.Series.Len() != 50 {
		t.Errorf("expected 50 frames, got %d (series %d)", result.Frames, result.Series.Len())
	}
	if result.Series.Modes[0] != "attract" || result.Series.Modes[30] != "repel" || result.Series.Modes[31] != "none" {
		t.Errorf("unexpected modes %v", result.Series.Modes)
	}
	if result.Metrics["kinetic_energy"] <= 0 {
		t.Error("expected the field to be moving at the end")
	}
	if e.simulator.Store().Len() != 0 {
		t.Error("experiment left particles behind")
	}
}

func TestExperimentRun_Final(t *testing.T) {
	steps, _ := ParseScript("orbit@100,50:3")
	seen := 0
	e := New(Config{
		Bounds: dynamo.Rect{Width: 200, Height: 100},
		Script: steps,
		Final: func(ps []particles.Particle, _ dynamo.Rect) {
			seen = len(ps)
		},
	})
	if err := e.Setup(sim.New(dynamo.DefaultConstants(), particles.NewStore(nil), nil, sim.Options{})); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if seen != 800 {
		t.Errorf("final hook saw %d particles, want 800", seen)
	}
}

func TestExperimentRun_Canceled(t *testing.T) {
	e := newExperiment(t, "orbit@10,10:1000")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := e.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.Frames != 0 {
		t.Errorf("expected no frames, got %d", result.Frames)
	}
}

func TestExperimentRun_NotSetup(t *testing.T) {
	if _, err := New(Config{}).Run(context.Background()); err == nil {
		t.Error("expected error for experiment without simulator")
	}
}
