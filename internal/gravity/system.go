package gravity

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/sonorbit/internal/audio"
)

// Mode gates whether audio modulation reaches the force law.
type Mode int

const (
	ModeLegacy Mode = iota
	ModeReactive
)

func (m Mode) String() string {
	if m == ModeReactive {
		return "reactive"
	}
	return "legacy"
}

// Domain errors for system construction.
var (
	ErrConfig = errors.New("gravity: invalid config")
	ErrPlanet = errors.New("gravity: invalid planet spec")
)

// PlanetSpec declares one planet's orbital parameters. The initial velocity
// is derived analytically (vis-viva), never configured directly.
type PlanetSpec struct {
	Name         string  `yaml:"name"`
	Mass         float64 `yaml:"mass"`
	Radius       float64 `yaml:"radius"`
	SemiMajor    float64 `yaml:"semi_major"`
	Eccentricity float64 `yaml:"eccentricity"`
	StartAngle   float64 `yaml:"start_angle"`
	Color        string  `yaml:"color"`
}

type Config struct {
	G         float64 `yaml:"g"`
	Softening float64 `yaml:"softening"`
	ShockGain float64 `yaml:"shock_gain"`

	SunMass   float64 `yaml:"sun_mass"`
	SunRadius float64 `yaml:"sun_radius"`

	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`

	MaxComets      int     `yaml:"max_comets"`
	CometLifeDecay float64 `yaml:"comet_life_decay"`
	TrailLen       int     `yaml:"trail_len"`

	Dt   float64 `yaml:"dt"`
	Seed int64   `yaml:"seed"`

	Planets []PlanetSpec `yaml:"planets"`
}

func DefaultConfig() Config {
	return Config{
		G:              1000,
		Softening:      10,
		ShockGain:      40,
		SunMass:        1000,
		SunRadius:      22,
		Width:          800,
		Height:         600,
		Margin:         200,
		MaxComets:      12,
		CometLifeDecay: 1.0,
		TrailLen:       90,
		Dt:             1.0 / 60.0,
		Seed:           1,
		Planets: []PlanetSpec{
			{Name: "ember", Mass: 8, Radius: 5, SemiMajor: 80, Eccentricity: 0.05, StartAngle: 0, Color: "#ff7043"},
			{Name: "verdant", Mass: 14, Radius: 7, SemiMajor: 130, Eccentricity: 0.15, StartAngle: math.Pi / 2, Color: "#66bb6a"},
			{Name: "halcyon", Mass: 20, Radius: 9, SemiMajor: 180, Eccentricity: 0.25, StartAngle: math.Pi, Color: "#42a5f5"},
			{Name: "umbra", Mass: 26, Radius: 11, SemiMajor: 240, Eccentricity: 0.35, StartAngle: 3 * math.Pi / 2, Color: "#ab47bc"},
		},
	}
}

func (c Config) validate() error {
	if c.G <= 0 {
		return fmt.Errorf("%w: G must be positive, got %f", ErrConfig, c.G)
	}
	if c.Softening <= 0 {
		return fmt.Errorf("%w: softening must be positive, got %f", ErrConfig, c.Softening)
	}
	if c.SunMass <= 0 || c.SunRadius <= 0 {
		return fmt.Errorf("%w: sun mass/radius must be positive", ErrConfig)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: viewport %fx%f not positive", ErrConfig, c.Width, c.Height)
	}
	if c.Margin < 0 {
		return fmt.Errorf("%w: margin %f is negative", ErrConfig, c.Margin)
	}
	if c.MaxComets < 0 {
		return fmt.Errorf("%w: max comets %d is negative", ErrConfig, c.MaxComets)
	}
	if c.CometLifeDecay <= 0 {
		return fmt.Errorf("%w: comet life decay must be positive", ErrConfig)
	}
	if c.TrailLen < 0 {
		return fmt.Errorf("%w: trail length %d is negative", ErrConfig, c.TrailLen)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrConfig, c.Dt)
	}
	for _, p := range c.Planets {
		if p.Mass <= 0 || p.Radius <= 0 {
			return fmt.Errorf("%w: %s mass/radius must be positive", ErrPlanet, p.Name)
		}
		if p.SemiMajor <= 0 {
			return fmt.Errorf("%w: %s semi-major axis must be positive", ErrPlanet, p.Name)
		}
		if p.Eccentricity < 0 || p.Eccentricity >= 1 {
			return fmt.Errorf("%w: %s eccentricity %f outside [0, 1)", ErrPlanet, p.Name, p.Eccentricity)
		}
	}
	return nil
}

// System orchestrates the sun, planets and transient comets, and owns the
// per-frame timestep loop. Planets feel only the sun; comets additionally
// feel every planet. Planets never feel each other or comets — that
// asymmetry keeps the simulation stable and cheap and is intentional.
type System struct {
	cfg   Config
	field Field

	sun     *Body
	planets []*Body
	comets  []*Body

	mode          Mode
	mod           Modulation
	userTimeScale float64

	rng   *rand.Rand
	frame int64
}

func NewSystem(cfg Config) (*System, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	s := &System{
		cfg:           cfg,
		field:         Field{G: cfg.G, Softening: cfg.Softening, ShockGain: cfg.ShockGain},
		mode:          ModeReactive,
		mod:           NeutralModulation(),
		userTimeScale: 1,
	}
	s.rebuild()
	return s, nil
}

// rebuild derives sun and planets purely from config: called at
// construction and on Reset, producing bit-for-bit identical state.
func (s *System) rebuild() {
	center := Vec2{s.cfg.Width / 2, s.cfg.Height / 2}
	s.sun = &Body{
		Name:   "sun",
		Mass:   s.cfg.SunMass,
		Radius: s.cfg.SunRadius,
		Pos:    center,
		Color:  "#ffd54f",
		Fixed:  true,
		Trail:  NewTrail(0),
	}
	s.planets = make([]*Body, 0, len(s.cfg.Planets))
	for _, spec := range s.cfg.Planets {
		s.planets = append(s.planets, s.initPlanet(spec, center))
	}
	s.comets = nil
	s.rng = rand.New(rand.NewSource(s.cfg.Seed))
	s.frame = 0
}

// initPlanet places the planet at perihelion distance a*(1-e) at its start
// angle and derives the tangential speed from the vis-viva relation
// v = sqrt(GM*(2/r - 1/a)), guaranteeing a bound elliptical trajectory.
func (s *System) initPlanet(spec PlanetSpec, center Vec2) *Body {
	r := spec.SemiMajor * (1 - spec.Eccentricity)
	gm := s.cfg.G * s.cfg.SunMass
	speed := math.Sqrt(gm * (2/r - 1/spec.SemiMajor))

	sin, cos := math.Sincos(spec.StartAngle)
	pos := center.Add(Vec2{cos, sin}.Scale(r))
	vel := Vec2{-sin, cos}.Scale(speed)

	return &Body{
		Name:   spec.Name,
		Mass:   spec.Mass,
		Radius: spec.Radius,
		Pos:    pos,
		Vel:    vel,
		Color:  spec.Color,
		Trail:  NewTrail(s.cfg.TrailLen),
	}
}

// Update advances the whole system by one frame. The snapshot must come
// from the same frame's analyzer pass; nil means no audio this frame.
func (s *System) Update(snap *audio.Snapshot) {
	if s.mode == ModeReactive && snap != nil {
		s.applyModulation(snap)
	}

	dt := s.cfg.Dt * s.mod.TimeScale * s.userTimeScale

	sunAccel := func(p Vec2) Vec2 {
		return s.field.Evaluate(p, s.sun.Pos, s.sun.Mass, s.mod)
	}

	for _, p := range s.planets {
		StepVerlet(p, dt, sunAccel)
		p.Trail.Push(p.Pos)
	}

	for _, c := range s.comets {
		StepVerlet(c, dt, func(pos Vec2) Vec2 {
			a := sunAccel(pos)
			for _, p := range s.planets {
				a = a.Add(s.field.Attract(pos, p.Pos, p.Mass))
			}
			return a
		})
		c.Life -= s.cfg.CometLifeDecay
		c.Trail.Push(c.Pos)
	}
	s.pruneComets()

	s.frame++
}

func (s *System) applyModulation(snap *audio.Snapshot) {
	s.mod.GMMultiplier = 1 + snap.Smooth[audio.Bass]*0.5
	s.mod.TimeScale = 1 + snap.Smooth[audio.Mid]*0.3

	strongest := 0.0
	for b := audio.Band(0); b < audio.NumBands; b++ {
		if snap.Beats[b].IsBeat && snap.Beats[b].Intensity > strongest {
			strongest = snap.Beats[b].Intensity
		}
	}
	if strongest > 0 {
		s.mod.PulsePotential = strongest
	} else {
		s.mod.PulsePotential *= 0.9
	}
}

func (s *System) pruneComets() {
	minX, maxX := -s.cfg.Margin, s.cfg.Width+s.cfg.Margin
	minY, maxY := -s.cfg.Margin, s.cfg.Height+s.cfg.Margin

	kept := s.comets[:0]
	for _, c := range s.comets {
		if c.Life <= 0 {
			continue
		}
		if c.Pos.X < minX || c.Pos.X > maxX || c.Pos.Y < minY || c.Pos.Y > maxY {
			continue
		}
		kept = append(kept, c)
	}
	// Drop references so removed comets are collectable.
	for i := len(kept); i < len(s.comets); i++ {
		s.comets[i] = nil
	}
	s.comets = kept
}

// SpawnComet launches a comet from a random viewport edge, aimed near the
// center with a random angular offset and speed. It is a no-op once the
// configured maximum is reached.
func (s *System) SpawnComet() {
	if len(s.comets) >= s.cfg.MaxComets {
		return
	}

	var pos Vec2
	switch s.rng.Intn(4) {
	case 0:
		pos = Vec2{s.rng.Float64() * s.cfg.Width, 0}
	case 1:
		pos = Vec2{s.rng.Float64() * s.cfg.Width, s.cfg.Height}
	case 2:
		pos = Vec2{0, s.rng.Float64() * s.cfg.Height}
	default:
		pos = Vec2{s.cfg.Width, s.rng.Float64() * s.cfg.Height}
	}

	center := Vec2{s.cfg.Width / 2, s.cfg.Height / 2}
	aim := math.Atan2(center.Y-pos.Y, center.X-pos.X)
	aim += (s.rng.Float64() - 0.5) * 0.8
	speed := 60 + s.rng.Float64()*80

	sin, cos := math.Sincos(aim)
	s.comets = append(s.comets, &Body{
		Name:   fmt.Sprintf("comet-%d", s.frame),
		Mass:   1 + s.rng.Float64()*4,
		Radius: 2 + s.rng.Float64()*2,
		Pos:    pos,
		Vel:    Vec2{cos, sin}.Scale(speed),
		Color:  "#e0f7fa",
		Comet:  true,
		Life:   255,
		Trail:  NewTrail(s.cfg.TrailLen),
	})
}

// SetMode switches between legacy and reactive. Entering legacy resets
// every modulation multiplier to neutral; entering reactive leaves all
// in-flight positions and velocities untouched.
func (s *System) SetMode(m Mode) {
	if m == ModeLegacy {
		s.mod = NeutralModulation()
	}
	s.mode = m
}

func (s *System) Mode() Mode { return s.mode }

func (s *System) SetGravityStrength(g float64) {
	if g > 0 {
		s.field.G = g
	}
}

func (s *System) SetTimeScale(scale float64) {
	if scale > 0 {
		s.userTimeScale = scale
	}
}

// Reset clears every comet and restores the planets to their vis-viva
// initial state, bit-for-bit reproducible for a given config.
func (s *System) Reset() {
	s.mod = NeutralModulation()
	s.rebuild()
}

// Modulation returns the current frame's modulation values.
func (s *System) Modulation() Modulation { return s.mod }

// SpecificEnergy is a body's orbital energy per unit mass against the sun,
// using the same softened potential the force law integrates. Conserved in
// legacy mode; audio modulation intentionally pumps it.
func (s *System) SpecificEnergy(b *Body) float64 {
	gm := s.field.G * s.sun.Mass
	r2 := b.Pos.Sub(s.sun.Pos).LenSq() + s.field.Softening*s.field.Softening
	return 0.5*b.Vel.LenSq() - gm/math.Sqrt(r2)
}

// Sun, Planets and Comets expose state for the renderer. The renderer reads
// once per frame after Update and must not mutate.
func (s *System) Sun() *Body       { return s.sun }
func (s *System) Planets() []*Body { return s.planets }
func (s *System) Comets() []*Body  { return s.comets }
func (s *System) Frame() int64     { return s.frame }

// Viewport is the configured world size.
func (s *System) Viewport() (w, h float64) { return s.cfg.Width, s.cfg.Height }

// Bodies returns sun, planets and comets in render order.
func (s *System) Bodies() []*Body {
	out := make([]*Body, 0, 1+len(s.planets)+len(s.comets))
	out = append(out, s.sun)
	out = append(out, s.planets...)
	out = append(out, s.comets...)
	return out
}
