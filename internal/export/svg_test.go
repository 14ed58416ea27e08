package export

import (
	"strings"
	"testing"

	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/particles"
	"github.com/san-kum/partfield/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 1) != "" {
		t.Error("nil canvas should give empty output")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 10)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `cx="5.0" cy="5.0"`) || !strings.Contains(svg, `cx="35.0" cy="35.0"`) {
		t.Errorf("dots at wrong positions:\n%s", svg)
	}
	if !strings.Contains(svg, `width="40" height="40"`) {
		t.Error("wrong document size")
	}
}

func TestFieldToSVG(t *testing.T) {
	ps := []particles.Particle{
		{Pos: dynamo.V(0, 0)},
		{Pos: dynamo.V(0.1, 0.1)},
		{Pos: dynamo.V(99, 99)},
	}
	svg := FieldToSVG(ps, dynamo.Rect{Width: 100, Height: 100}, 10, 5, 2)
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected overlapping particles to share a dot, got %d dots", n)
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("single point should give empty output")
	}

	svg := SeriesToSVG([]float64{0, 1, 2}, 100, 50, "#00ff88")
	if !strings.Contains(svg, `stroke="#00ff88"`) {
		t.Error("stroke color missing")
	}
	if n := strings.Count(svg, " L"); n != 2 {
		t.Errorf("expected 2 line segments, got %d", n)
	}
	if !strings.Contains(svg, "M0.0,") || !strings.Contains(svg, " L100.0,") {
		t.Errorf("path does not span the width:\n%s", svg)
	}
}
