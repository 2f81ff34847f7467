package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sonorbit/internal/gravity"
)

// Braille patterns: 2x4 dots per cell.
// 1 4
// 2 5
// 3 6
// 7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot grid with a per-cell foreground color and a
// world-to-screen transform, so callers plot in simulation coordinates.
type Canvas struct {
	Width, Height  int
	worldW, worldH float64

	grid   [][]rune
	colors [][]string
}

func NewCanvas(w, h int, worldW, worldH float64) *Canvas {
	c := &Canvas{Width: w, Height: h, worldW: worldW, worldH: worldH}
	c.grid = make([][]rune, h)
	c.colors = make([][]string, h)
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
		c.colors[i] = make([]string, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for y := range c.grid {
		for x := range c.grid[y] {
			c.grid[y][x] = 0x2800
			c.colors[y][x] = ""
		}
	}
}

// Plot lights the dot under the world position p. The last color written
// to a cell wins; bodies are drawn after trails so they stay visible.
func (c *Canvas) Plot(p gravity.Vec2, hex string) {
	x := int(p.X / c.worldW * float64(c.Width*2))
	y := int(p.Y / c.worldH * float64(c.Height*4))
	c.setDot(x, y, hex)
}

// PlotBody draws a filled disc scaled from the body's world radius.
func (c *Canvas) PlotBody(pos gravity.Vec2, radius float64, hex string) {
	steps := int(radius/2) + 1
	for dx := -steps; dx <= steps; dx++ {
		for dy := -steps; dy <= steps; dy++ {
			if dx*dx+dy*dy > steps*steps {
				continue
			}
			p := gravity.Vec2{
				X: pos.X + float64(dx)*c.worldW/float64(c.Width*2),
				Y: pos.Y + float64(dy)*c.worldH/float64(c.Height*4),
			}
			c.Plot(p, hex)
		}
	}
}

func (c *Canvas) setDot(x, y int, hex string) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= pixelMap[y%4][x%2]
	c.colors[row][col] = hex
}

// Dot reports whether any dot in the cell at (col, row) is lit.
func (c *Canvas) Dot(col, row int) (rune, string, bool) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return 0, "", false
	}
	return c.grid[row][col], c.colors[row][col], c.grid[row][col] != 0x2800
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for row := 0; row < c.Height; row++ {
		var line strings.Builder
		runStart := 0
		runColor := c.colors[row][0]
		cells := make([]rune, c.Width)
		copy(cells, c.grid[row])

		flush := func(end int) {
			segment := string(cells[runStart:end])
			if runColor == "" {
				line.WriteString(segment)
			} else {
				line.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(segment))
			}
		}
		for col := 1; col < c.Width; col++ {
			if c.colors[row][col] != runColor {
				flush(col)
				runStart = col
				runColor = c.colors[row][col]
			}
		}
		flush(c.Width)
		sb.WriteString(line.String())
		if row < c.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
