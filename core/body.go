package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/config"
)

const (
	KmPerAU       = 1.495978707e8
	SecondsPerDay = 86400.0
)

// Body names double as stable identifiers in the scene ownership tree.
const (
	BodySun     = "sun"
	BodyMercury = "mercury"
	BodyVenus   = "venus"
	BodyEarth   = "earth"
	BodyMars    = "mars"
	BodyMoon    = "moon"
)

// Body is a celestial body on a circular visual orbit. Distances are scene
// units, not physical ones.
type Body struct {
	Name        string  `json:"name"`
	OrbitRadius float64 `json:"orbitRadius"` // scene units from parent
	PhaseOffset float64 `json:"phaseOffset"` // radians at elapsed zero
	Size        float64 `json:"size"`        // visual radius, scene units
	PeriodDays  float64 `json:"periodDays"`  // 0 = stationary
	Parent      string  `json:"parent"`      // "" = heliocentric
	Optional    bool    `json:"optional"`    // hidden unless extra planets are toggled on
	Color       string  `json:"color"`       // hex display color
}

// System is the orbital body model: a catalog keyed by body identifier plus
// the visual speedup that compresses orbital periods into demo time.
type System struct {
	bodies  map[string]Body
	order   []string
	speedup float64
	scene   config.SceneSettings
}

// NewSystem builds the inner-solar-system catalog scaled to scene units.
func NewSystem(scene config.SceneSettings) *System {
	au := scene.AUSceneUnits
	catalog := []Body{
		{Name: BodySun, OrbitRadius: 0, Size: scene.SunRadius, PeriodDays: 0, Color: "#FDB813"},
		{Name: BodyMercury, OrbitRadius: 0.387 * au, PhaseOffset: 2.4, Size: 0.5, PeriodDays: 87.97, Optional: true, Color: "#B5B5B5"},
		{Name: BodyVenus, OrbitRadius: 0.723 * au, PhaseOffset: 4.1, Size: 1.2, PeriodDays: 224.70, Optional: true, Color: "#E8CDA2"},
		{Name: BodyEarth, OrbitRadius: 1.000 * au, PhaseOffset: 0, Size: 1.5, PeriodDays: 365.25, Color: "#2E86AB"},
		{Name: BodyMars, OrbitRadius: 1.524 * au, PhaseOffset: 1.3, Size: 0.8, PeriodDays: 686.97, Optional: true, Color: "#C1440E"},
		{Name: BodyMoon, OrbitRadius: 4.0, PhaseOffset: 0.7, Size: 0.4, PeriodDays: 27.32, Parent: BodyEarth, Color: "#AAAAAA"},
	}

	s := &System{
		bodies:  make(map[string]Body, len(catalog)),
		speedup: scene.OrbitSpeedup,
		scene:   scene,
	}
	for _, b := range catalog {
		s.bodies[b.Name] = b
		s.order = append(s.order, b.Name)
	}
	return s
}

// Bodies returns the catalog in stable order.
func (s *System) Bodies() []Body {
	out := make([]Body, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.bodies[name])
	}
	return out
}

// Body looks up a catalog entry by identifier.
func (s *System) Body(name string) (Body, bool) {
	b, ok := s.bodies[name]
	return b, ok
}

// EarthOrbitRadius returns Earth's orbit radius in scene units.
func (s *System) EarthOrbitRadius() float64 {
	return s.bodies[BodyEarth].OrbitRadius
}

// SunRadius returns the Sun's visual radius in scene units.
func (s *System) SunRadius() float64 {
	return s.scene.SunRadius
}

// Angle returns a body's orbital angle after elapsed seconds of clock time,
// accelerated by the visual speedup.
func (s *System) Angle(b Body, elapsed float64) float64 {
	if b.PeriodDays <= 0 {
		return b.PhaseOffset
	}
	rate := 2 * math.Pi / (b.PeriodDays * SecondsPerDay)
	return b.PhaseOffset + rate*s.speedup*elapsed
}

// LocalPosition returns a body's position in its parent's frame.
func (s *System) LocalPosition(b Body, elapsed float64) mgl64.Vec3 {
	if b.PeriodDays <= 0 {
		return mgl64.Vec3{}
	}
	angle := s.Angle(b, elapsed)
	return mgl64.Vec3{b.OrbitRadius * math.Sin(angle), 0, b.OrbitRadius * math.Cos(angle)}
}

// WorldPosition resolves a body's world-space position, walking the parent
// chain by identifier.
func (s *System) WorldPosition(name string, elapsed float64) (mgl64.Vec3, bool) {
	b, ok := s.bodies[name]
	if !ok {
		return mgl64.Vec3{}, false
	}
	pos := s.LocalPosition(b, elapsed)
	if b.Parent != "" {
		parentPos, ok := s.WorldPosition(b.Parent, elapsed)
		if !ok {
			return mgl64.Vec3{}, false
		}
		pos = pos.Add(parentPos)
	}
	return pos, true
}

// L1Position places the Sun-Earth L1 point on the line from the Sun through
// Earth, offset toward the Sun by the configured distance.
func (s *System) L1Position(elapsed float64) mgl64.Vec3 {
	earth, _ := s.WorldPosition(BodyEarth, elapsed)
	dist := earth.Len()
	if dist == 0 {
		return mgl64.Vec3{}
	}
	toSun := earth.Mul(-1.0 / dist)
	return earth.Add(toSun.Mul(s.scene.L1Offset))
}

// DegreesToRadians converts degrees to radians.
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// RadiansToDegrees converts radians to degrees.
func RadiansToDegrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}
