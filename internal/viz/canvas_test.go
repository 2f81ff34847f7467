package viz

import (
	"testing"

	"github.com/san-kum/sonorbit/internal/gravity"
)

func TestCanvasPlotAndClear(t *testing.T) {
	c := NewCanvas(10, 10, 800, 600)

	c.Plot(gravity.Vec2{X: 400, Y: 300}, "#ffffff")

	// World center maps to the middle cell.
	_, color, lit := c.Dot(5, 5)
	if !lit {
		t.Fatal("expected center dot lit")
	}
	if color != "#ffffff" {
		t.Errorf("expected white, got %s", color)
	}

	c.Clear()
	if _, _, lit := c.Dot(5, 5); lit {
		t.Error("clear should unlight all dots")
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(10, 10, 800, 600)

	c.Plot(gravity.Vec2{X: -50, Y: 300}, "#fff")
	c.Plot(gravity.Vec2{X: 5000, Y: 300}, "#fff")
	c.Plot(gravity.Vec2{X: 400, Y: -10}, "#fff")

	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			if _, _, lit := c.Dot(col, row); lit {
				t.Fatalf("out-of-bounds plot lit cell (%d,%d)", col, row)
			}
		}
	}
}

func TestPulseColor(t *testing.T) {
	base := "#ff7043"

	if got := PulseColor(base, 1.0); got != base {
		t.Errorf("pulse 1.0 should keep the base color, got %s", got)
	}
	if got := PulseColor(base, 1.8); got == base {
		t.Error("elevated pulse should shift the color")
	}
	// Invalid hex falls through untouched.
	if got := PulseColor("nope", 1.5); got != "nope" {
		t.Errorf("invalid hex should pass through, got %s", got)
	}
}

func TestLifeColorFades(t *testing.T) {
	full := LifeColor("#e0f7fa", 255)
	dying := LifeColor("#e0f7fa", 10)
	if full == dying {
		t.Error("life 255 and life 10 should render differently")
	}
}
