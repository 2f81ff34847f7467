// Package export renders a canvas into standalone artifacts.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sonorbit/internal/viz"
)

// pixelMap mirrors the braille dot layout used by viz.Canvas.
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasToSVG converts a braille canvas into an SVG of colored dots on a
// dark background, preserving each cell's color.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a12"/>
`, width, height, width, height))

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r, color, lit := canvas.Dot(col, row)
			if !lit {
				continue
			}
			if color == "" {
				color = "#00ff88"
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					cx := baseX + (float64(dx)+0.5)*scale
					cy := baseY + (float64(dy)+0.5)*scale
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s"/>`, cx, cy, dotRadius, color))
					sb.WriteByte('\n')
				}
			}
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
