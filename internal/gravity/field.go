package gravity

import "math"

// Modulation is the audio-driven force-law input, passed explicitly into
// every evaluation so the field itself stays stateless and testable.
type Modulation struct {
	GMMultiplier   float64
	TimeScale      float64
	PulsePotential float64
}

// NeutralModulation leaves the force law untouched.
func NeutralModulation() Modulation {
	return Modulation{GMMultiplier: 1, TimeScale: 1, PulsePotential: 0}
}

// Field evaluates softened Newtonian attraction. The softening length is
// folded into the squared distance, bounding the force as separation
// approaches zero; comets can pass arbitrarily close to the sun.
type Field struct {
	G         float64
	Softening float64
	ShockGain float64
}

// Attract returns the acceleration at p toward an attractor of the given
// mass at apos.
func (f *Field) Attract(p, apos Vec2, mass float64) Vec2 {
	d := apos.Sub(p)
	r2 := d.LenSq() + f.Softening*f.Softening
	aMag := f.G * mass / r2
	return d.Scale(aMag / math.Sqrt(r2))
}

// Evaluate returns the sun's modulated pull at p: attraction with the GM
// multiplier applied, plus the radial shockwave impulse scaled by the
// current pulse potential.
func (f *Field) Evaluate(p, sunPos Vec2, sunMass float64, mod Modulation) Vec2 {
	a := f.Attract(p, sunPos, sunMass*mod.GMMultiplier)
	if mod.PulsePotential > 0 {
		a = a.Add(p.Sub(sunPos).Unit().Scale(f.ShockGain * mod.PulsePotential))
	}
	return a
}
