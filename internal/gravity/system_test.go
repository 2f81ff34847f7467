package gravity

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sonorbit/internal/audio"
)

// singlePlanetConfig is the reference two-body setup: one planet, no audio,
// fine timestep for integration accuracy checks.
func singlePlanetConfig(ecc float64) Config {
	cfg := DefaultConfig()
	cfg.Dt = 0.001
	cfg.Planets = []PlanetSpec{
		{Name: "probe", Mass: 10, Radius: 5, SemiMajor: 150, Eccentricity: ecc, StartAngle: 0, Color: "#ffffff"},
	}
	return cfg
}

func mustSystem(cfg Config) *System {
	s, err := NewSystem(cfg)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("System", func() {
	Describe("construction", func() {
		It("rejects invalid configs", func() {
			cfg := DefaultConfig()
			cfg.G = 0
			_, err := NewSystem(cfg)
			Expect(err).To(MatchError(ErrConfig))

			cfg = DefaultConfig()
			cfg.Planets[0].Eccentricity = 1.0
			_, err = NewSystem(cfg)
			Expect(err).To(MatchError(ErrPlanet))

			cfg = DefaultConfig()
			cfg.Dt = -0.01
			_, err = NewSystem(cfg)
			Expect(err).To(MatchError(ErrConfig))
		})

		It("places planets at perihelion with vis-viva speed", func() {
			s := mustSystem(singlePlanetConfig(0.3))
			p := s.Planets()[0]

			r := p.Pos.Sub(s.Sun().Pos)
			Expect(r.Len()).To(BeNumerically("~", 150*(1-0.3), 1e-9))

			gm := 1000.0 * 1000.0
			want := math.Sqrt(gm * (2/r.Len() - 1/150.0))
			Expect(p.Vel.Len()).To(BeNumerically("~", want, 1e-9))

			// Tangential launch: velocity perpendicular to the radius vector.
			dot := r.X*p.Vel.X + r.Y*p.Vel.Y
			Expect(dot).To(BeNumerically("~", 0, 1e-6))
		})
	})

	Describe("integration", func() {
		It("returns a circular orbit to its initial radius after one period", func() {
			s := mustSystem(singlePlanetConfig(0))
			s.SetMode(ModeLegacy)
			p := s.Planets()[0]
			r0 := p.Pos.Sub(s.Sun().Pos).Len()

			gm := 1000.0 * 1000.0
			period := 2 * math.Pi * math.Sqrt(150.0*150.0*150.0/gm)
			steps := int(period / s.cfg.Dt)
			for i := 0; i < steps; i++ {
				s.Update(nil)
			}

			r1 := p.Pos.Sub(s.Sun().Pos).Len()
			Expect(math.Abs(r1-r0) / r0).To(BeNumerically("<", 0.02))
		})

		It("holds orbital energy over an eccentric period", func() {
			s := mustSystem(singlePlanetConfig(0.3))
			s.SetMode(ModeLegacy)
			p := s.Planets()[0]
			e0 := s.SpecificEnergy(p)

			gm := 1000.0 * 1000.0
			period := 2 * math.Pi * math.Sqrt(150.0*150.0*150.0/gm)
			for i := 0; i < int(period/s.cfg.Dt); i++ {
				s.Update(nil)
			}

			e1 := s.SpecificEnergy(p)
			Expect(math.Abs(e1-e0) / math.Abs(e0)).To(BeNumerically("<", 0.01))
		})

		It("never moves the sun", func() {
			s := mustSystem(singlePlanetConfig(0.2))
			start := s.Sun().Pos
			for i := 0; i < 500; i++ {
				s.Update(&audio.Snapshot{})
			}
			Expect(s.Sun().Pos).To(Equal(start))
		})
	})

	Describe("audio modulation", func() {
		var s *System

		BeforeEach(func() {
			s = mustSystem(DefaultConfig())
		})

		It("boosts GM with smoothed bass and time scale with mid", func() {
			snap := &audio.Snapshot{}
			snap.Smooth[audio.Bass] = 0.8
			snap.Smooth[audio.Mid] = 0.5
			s.Update(snap)

			Expect(s.Modulation().GMMultiplier).To(BeNumerically("~", 1.4, 1e-12))
			Expect(s.Modulation().TimeScale).To(BeNumerically("~", 1.15, 1e-12))
		})

		It("resets pulse potential on each beat and decays it otherwise", func() {
			snap := &audio.Snapshot{}
			snap.Beats[audio.Bass] = audio.BeatEvent{IsBeat: true, Intensity: 0.9}
			s.Update(snap)
			Expect(s.Modulation().PulsePotential).To(Equal(0.9))

			s.Update(&audio.Snapshot{})
			Expect(s.Modulation().PulsePotential).To(BeNumerically("~", 0.81, 1e-12))
		})

		It("keeps legacy -> reactive -> legacy exactly neutral with silent input", func() {
			s.SetMode(ModeLegacy)
			s.Update(nil)
			s.SetMode(ModeReactive)
			for i := 0; i < 10; i++ {
				s.Update(&audio.Snapshot{})
			}
			s.SetMode(ModeLegacy)

			Expect(s.Modulation()).To(Equal(NeutralModulation()))
		})
	})

	Describe("shockwave", func() {
		It("adds a purely radial outward impulse scaled by pulse potential", func() {
			f := Field{G: 1000, Softening: 10, ShockGain: 40}
			sun := Vec2{400, 300}
			p := Vec2{500, 300}

			base := f.Evaluate(p, sun, 1000, NeutralModulation())
			mod := NeutralModulation()
			mod.PulsePotential = 0.5
			shocked := f.Evaluate(p, sun, 1000, mod)

			diff := shocked.Sub(base)
			Expect(diff.X).To(BeNumerically("~", 40*0.5, 1e-9))
			Expect(diff.Y).To(BeNumerically("~", 0, 1e-9))
		})

		It("stays finite at zero separation thanks to softening", func() {
			f := Field{G: 1000, Softening: 10}
			a := f.Attract(Vec2{400, 300}, Vec2{400, 300}, 1e6)
			Expect(a.IsValid()).To(BeTrue())
			Expect(a.Len()).To(BeZero())

			near := f.Attract(Vec2{400.001, 300}, Vec2{400, 300}, 1e6)
			Expect(near.Len()).To(BeNumerically("<=", 1000*1e6/(10*10)))
		})
	})

	Describe("comets", func() {
		It("spawns at the viewport edge and is removed when life runs out", func() {
			cfg := DefaultConfig()
			cfg.CometLifeDecay = 1.0
			s := mustSystem(cfg)
			s.SetMode(ModeLegacy)

			s.SpawnComet()
			Expect(s.Comets()).To(HaveLen(1))
			c := s.Comets()[0]
			onEdge := c.Pos.X == 0 || c.Pos.X == cfg.Width || c.Pos.Y == 0 || c.Pos.Y == cfg.Height
			Expect(onEdge).To(BeTrue())
			Expect(c.Life).To(Equal(255.0))

			for i := 0; i < 256; i++ {
				s.Update(nil)
			}
			Expect(s.Comets()).To(BeEmpty())
		})

		It("never exceeds the configured maximum", func() {
			cfg := DefaultConfig()
			cfg.MaxComets = 3
			s := mustSystem(cfg)

			for i := 0; i < 10; i++ {
				s.SpawnComet()
			}
			Expect(s.Comets()).To(HaveLen(3))
		})
	})

	Describe("reset", func() {
		It("restores the initial planet state bit-for-bit and clears comets", func() {
			s := mustSystem(DefaultConfig())

			type snapshot struct{ pos, vel Vec2 }
			initial := make([]snapshot, 0, len(s.Planets()))
			for _, p := range s.Planets() {
				initial = append(initial, snapshot{p.Pos, p.Vel})
			}

			loud := &audio.Snapshot{}
			loud.Smooth[audio.Bass] = 0.7
			loud.Beats[audio.Mid] = audio.BeatEvent{IsBeat: true, Intensity: 0.8}
			for i := 0; i < 300; i++ {
				s.Update(loud)
			}
			s.SpawnComet()
			s.SpawnComet()

			s.Reset()

			Expect(s.Comets()).To(BeEmpty())
			Expect(s.Modulation()).To(Equal(NeutralModulation()))
			for i, p := range s.Planets() {
				Expect(p.Pos).To(Equal(initial[i].pos))
				Expect(p.Vel).To(Equal(initial[i].vel))
				Expect(p.Trail.Len()).To(BeZero())
			}
		})
	})
})
