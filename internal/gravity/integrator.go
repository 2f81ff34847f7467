package gravity

// AccelFunc evaluates acceleration at a position with the current frame's
// modulation already bound.
type AccelFunc func(pos Vec2) Vec2

// StepVerlet advances one body by dt using velocity-Verlet:
//
//	x' = x + v*dt + 0.5*a*dt²
//	v' = v + 0.5*(a + a(x'))*dt
//
// Plain Euler visibly drifts orbital energy over multi-minute runs,
// spiraling the orbits even without audio modulation; the second-order
// scheme holds energy over one full period. Fixed bodies skip integration
// entirely.
func StepVerlet(b *Body, dt float64, accel AccelFunc) {
	if b.Fixed {
		return
	}
	a0 := accel(b.Pos)
	b.Pos = b.Pos.Add(b.Vel.Scale(dt)).Add(a0.Scale(0.5 * dt * dt))
	a1 := accel(b.Pos)
	b.Vel = b.Vel.Add(a0.Add(a1).Scale(0.5 * dt))
}
