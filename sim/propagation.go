package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/config"
	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/core"
)

// PropagationMode selects the distance model.
type PropagationMode int

const (
	// ModeConstantVelocity propagates at the CME's measured speed.
	ModeConstantVelocity PropagationMode = iota
	// ModeConstrainedArrival interpolates distance linearly so the leading
	// edge reaches Earth's orbit exactly at the predicted arrival time. This
	// is a visual approximation, not a deceleration model.
	ModeConstrainedArrival
)

// ShapeState is the per-frame pose of a CME cloud. The cone's apex stays
// pinned at the Sun's surface; the uniform scale stretches the unit cone so
// its leading face sits at the traveled distance.
type ShapeState struct {
	Visible  bool
	Length   float64 // visible length past the Sun's surface
	Position mgl64.Vec3
	Scale    float64
}

// Propagator converts CME kinematics into scene-space distances and poses.
type Propagator struct {
	kmToScene  float64 // scene units per km
	sunRadius  float64
	earthOrbit float64
}

func NewPropagator(scene config.SceneSettings) *Propagator {
	return &Propagator{
		kmToScene:  scene.AUSceneUnits / core.KmPerAU,
		sunRadius:  scene.SunRadius,
		earthOrbit: scene.AUSceneUnits, // Earth sits at 1 AU
	}
}

// KmToScene returns the physical-to-scene conversion factor.
func (p *Propagator) KmToScene() float64 { return p.kmToScene }

// SunRadius returns the Sun's visual radius in scene units.
func (p *Propagator) SunRadius() float64 { return p.sunRadius }

// EarthOrbitRadius returns Earth's orbit radius in scene units.
func (p *Propagator) EarthOrbitRadius() float64 { return p.earthOrbit }

// DistanceTraveled returns how far the CME's leading edge has moved from the
// Sun's center, in scene units, after elapsed seconds since its start.
//
// Constrained arrival applies only to Earth-directed events carrying an
// arrival prediction; everything else falls back to constant velocity.
func (p *Propagator) DistanceTraveled(cme core.CMEEvent, elapsed float64, mode PropagationMode) float64 {
	if elapsed <= 0 {
		return 0
	}
	if mode == ModeConstrainedArrival && cme.IsEarthDirected && cme.PredictedArrival != nil {
		total := cme.TotalTravelSeconds()
		if total <= 0 {
			// Inconsistent event data; keep the cloud at the Sun.
			return 0
		}
		proportion := elapsed / total
		if proportion > 1 {
			proportion = 1
		}
		return proportion * p.earthOrbit
	}
	return cme.Speed * elapsed * p.kmToScene
}

// Shape derives the cloud pose from a traveled distance. The cloud stays
// invisible until the leading edge clears the Sun's surface.
func (p *Propagator) Shape(cme core.CMEEvent, distance float64) ShapeState {
	if distance <= p.sunRadius {
		return ShapeState{}
	}
	length := distance - p.sunRadius
	return ShapeState{
		Visible:  true,
		Length:   length,
		Position: cme.Direction().Mul(p.sunRadius),
		Scale:    length,
	}
}

// Apply writes a shape state onto a cloud's aggregate fields.
func (s ShapeState) Apply(cloud *ParticleCloud) {
	cloud.Visible = s.Visible
	cloud.Position = s.Position
	cloud.Scale = s.Scale
}
