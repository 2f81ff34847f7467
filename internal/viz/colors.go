package viz

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// PulseColor brightens a body's base color toward white as its band pulse
// rises, so beats read as flashes without any extra geometry.
func PulseColor(baseHex string, pulse float64) string {
	base, err := colorful.Hex(baseHex)
	if err != nil {
		return baseHex
	}
	// pulse 1.0 -> base color; the excursion above 1 drives the blend.
	t := pulse - 1.0
	if t <= 0 {
		return baseHex
	}
	if t > 1 {
		t = 1
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return base.BlendLuv(white, t).Hex()
}

// LifeColor fades a comet's color as its life runs out.
func LifeColor(baseHex string, life float64) string {
	base, err := colorful.Hex(baseHex)
	if err != nil {
		return baseHex
	}
	t := 1 - life/255.0
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	dark := colorful.Color{R: 0.1, G: 0.1, B: 0.15}
	return base.BlendLuv(dark, t).Hex()
}
