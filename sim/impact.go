package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/config"
)

// ImpactDetector tests CME leading edges against Earth's position.
type ImpactDetector struct {
	radius float64 // impact threshold, scene units
}

// NewImpactDetector sizes the threshold as a multiple of Earth's visual size.
func NewImpactDetector(earthSize float64, cfg config.EffectSettings) *ImpactDetector {
	return &ImpactDetector{radius: earthSize * cfg.ImpactRadiusFactor}
}

// Radius returns the impact threshold in scene units.
func (d *ImpactDetector) Radius() float64 { return d.radius }

// PeakSpeed returns the maximum speed among CME clouds whose leading tip is
// currently within the impact radius of earthPos, or 0 when none is.
func (d *ImpactDetector) PeakSpeed(clouds []*ParticleCloud, earthPos mgl64.Vec3) float64 {
	peak := 0.0
	for _, cloud := range clouds {
		if !cloud.Visible {
			continue
		}
		if cloud.Tip().Sub(earthPos).Len() <= d.radius {
			if cloud.Speed > peak {
				peak = cloud.Speed
			}
		}
	}
	return peak
}

// Effects tracks transient visual feedback keyed off "time since last
// impact". Each channel decays linearly over its configured window.
type Effects struct {
	cfg        config.EffectSettings
	lastImpact float64 // elapsed-clock seconds of most recent impact
	peakSpeed  float64 // speed recorded at that impact
}

func NewEffects(cfg config.EffectSettings) *Effects {
	return &Effects{cfg: cfg, lastImpact: math.Inf(-1)}
}

// RecordImpact notes an impact at the given elapsed-clock time. The decay
// timers restart; the strongest concurrent speed wins within a frame because
// the detector already reports the per-frame maximum.
func (e *Effects) RecordImpact(speed, now float64) {
	e.lastImpact = now
	e.peakSpeed = speed
}

// LastImpactSpeed returns the speed recorded at the most recent impact.
func (e *Effects) LastImpactSpeed() float64 { return e.peakSpeed }

func (e *Effects) decay(now, window float64) float64 {
	if window <= 0 {
		return 0
	}
	age := now - e.lastImpact
	if age < 0 || age > window {
		return 0
	}
	return 1 - age/window
}

// OrbitAlert returns the orbit-line alert intensity in [0,1].
func (e *Effects) OrbitAlert(now float64) float64 {
	return e.decay(now, e.cfg.OrbitAlertSeconds)
}

// AtmosphereGlow returns the atmosphere glow intensity in [0,1].
func (e *Effects) AtmosphereGlow(now float64) float64 {
	return e.decay(now, e.cfg.AtmosphereSeconds)
}

// AuroraIntensity returns the aurora shader intensity in [0,1].
func (e *Effects) AuroraIntensity(now float64) float64 {
	return e.decay(now, e.cfg.AuroraSeconds)
}

// Reset clears any pending effect state, e.g. on data reload.
func (e *Effects) Reset() {
	e.lastImpact = math.Inf(-1)
	e.peakSpeed = 0
}
