package export

import (
	"strings"
	"testing"

	"github.com/san-kum/sonorbit/internal/gravity"
	"github.com/san-kum/sonorbit/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(8, 8, 800, 600)
	c.Plot(gravity.Vec2{X: 400, Y: 300}, "#ff7043")

	svg := CanvasToSVG(c, 4)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, `fill="#ff7043"`) {
		t.Error("plotted dot color missing from output")
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("unterminated SVG")
	}
}

func TestCanvasToSVGEmpty(t *testing.T) {
	if CanvasToSVG(nil, 4) != "" {
		t.Error("nil canvas should produce empty output")
	}

	c := viz.NewCanvas(4, 4, 800, 600)
	svg := CanvasToSVG(c, 4)
	if strings.Contains(svg, "<circle") {
		t.Error("empty canvas should contain no dots")
	}
}
