package sim

import (
	"math"
	"testing"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/core"
)

func TestVisualScalingMonotoneInSpeed(t *testing.T) {
	cfg := testSimSettings()
	speeds := []float64{100, 300, 500, 1000, 1800, 2600, 3000, 4000}

	prevCount := -1
	prevSize := -1.0
	prevOpacity := -1.0
	for _, speed := range speeds {
		count := ParticleCount(speed, cfg)
		size := ParticleRenderSize(speed, cfg)
		opacity := CloudOpacity(speed, cfg)

		if count < prevCount || size < prevSize || opacity < prevOpacity {
			t.Errorf("speed %v: scaling decreased (count %d, size %v, opacity %v)", speed, count, size, opacity)
		}
		prevCount, prevSize, prevOpacity = count, size, opacity
	}
}

func TestVisualScalingClampedOutsideBand(t *testing.T) {
	cfg := testSimSettings()

	if got := ParticleCount(100, cfg); got != cfg.MinParticleCount {
		t.Errorf("count below band = %d, want %d", got, cfg.MinParticleCount)
	}
	if got := ParticleCount(cfg.MinCMESpeed, cfg); got != cfg.MinParticleCount {
		t.Errorf("count at lower bound = %d, want %d", got, cfg.MinParticleCount)
	}
	if got := ParticleCount(9999, cfg); got != cfg.MaxParticleCount {
		t.Errorf("count above band = %d, want %d", got, cfg.MaxParticleCount)
	}
	if got := CloudOpacity(1, cfg); got != CloudOpacity(cfg.MinCMESpeed, cfg) {
		t.Error("opacity not clamped below band")
	}
	if got := CloudOpacity(1e5, cfg); got != CloudOpacity(cfg.MaxCMESpeed, cfg) {
		t.Error("opacity not clamped above band")
	}
}

func TestCloudParticlesInsideRoundedCone(t *testing.T) {
	cfg := testSimSettings()
	cme := core.CMEEvent{ID: "bounds", Speed: 1200, HalfAngle: 30}
	cloud := NewParticleCloud(cme, cfg)

	if len(cloud.Positions) != ParticleCount(cme.Speed, cfg) {
		t.Fatalf("count = %d, want %d", len(cloud.Positions), ParticleCount(cme.Speed, cfg))
	}
	if len(cloud.Colors) != len(cloud.Positions) {
		t.Fatalf("colors/positions mismatch: %d vs %d", len(cloud.Colors), len(cloud.Positions))
	}

	tanHalf := math.Tan(core.DegreesToRadians(cme.HalfAngle))
	for _, p := range cloud.Positions {
		if p.Y() < 0 || p.Y() > 1 {
			t.Fatalf("particle height %v outside unit cone", p.Y())
		}
		radial := math.Hypot(p.X(), p.Z())
		if radial > tanHalf+1e-9 {
			t.Fatalf("particle radius %v exceeds cone spread %v", radial, tanHalf)
		}
	}
}

func TestCloudHeightDistributionDenseNearLeadingFace(t *testing.T) {
	cfg := testSimSettings()
	cloud := NewParticleCloud(core.CMEEvent{ID: "density", Speed: 2000, HalfAngle: 40}, cfg)

	upper := 0
	for _, p := range cloud.Positions {
		if p.Y() > 0.5 {
			upper++
		}
	}
	// Cube-root sampling puts ~87% of raw heights above 0.5; the dome pulls
	// some back down, so assert a conservative majority.
	if frac := float64(upper) / float64(len(cloud.Positions)); frac < 0.6 {
		t.Errorf("only %.0f%% of particles above half height, want a strong majority", frac*100)
	}
}

func TestCloudGenerationDeterministicPerID(t *testing.T) {
	cfg := testSimSettings()
	cme := core.CMEEvent{ID: "stable", Speed: 900, HalfAngle: 25}

	a := NewParticleCloud(cme, cfg)
	b := NewParticleCloud(cme, cfg)
	if len(a.Positions) != len(b.Positions) {
		t.Fatal("regenerated cloud changed size")
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatal("regenerated cloud differs for identical event")
		}
	}
}

func TestCoreColorSpeedBuckets(t *testing.T) {
	grey := CoreColor(100)
	if grey != CoreColor(349) {
		t.Error("speeds below 350 should share the grey bucket")
	}

	// The 350-500 band interpolates: midway differs from both endpoints.
	mid := CoreColor(425)
	if mid == CoreColor(350) || mid == CoreColor(500) {
		t.Error("350-500 band should blend linearly")
	}

	// Above the band the ramp steps at thresholds.
	if CoreColor(900) != CoreColor(1100) {
		t.Error("speeds within one bucket should share a color")
	}
	if CoreColor(2500) != CoreColor(9000) {
		t.Error("speeds at and beyond 2500 should clamp to the hottest bucket")
	}
	if CoreColor(2400) == CoreColor(2500) {
		t.Error("crossing the 2500 threshold should change buckets")
	}
}

func TestCloudColorsAreValid(t *testing.T) {
	cfg := testSimSettings()
	cloud := NewParticleCloud(core.CMEEvent{ID: "colors", Speed: 2700, HalfAngle: 35}, cfg)

	for _, c := range cloud.Colors {
		if !c.IsValid() {
			t.Fatalf("out-of-gamut particle color %v", c)
		}
	}
}

func TestCloudTipAndBounds(t *testing.T) {
	cfg := testSimSettings()
	cme := core.CMEEvent{ID: "tip", Speed: 1000, HalfAngle: 30, Latitude: 0, Longitude: 0}
	cloud := NewParticleCloud(cme, cfg)

	cloud.Visible = true
	cloud.Position = cme.Direction().Mul(4)
	cloud.Scale = 10

	tip := cloud.Tip()
	want := cme.Direction().Mul(14)
	if tip.Sub(want).Len() > 1e-9 {
		t.Errorf("tip = %v, want %v", tip, want)
	}

	center := cloud.Center()
	if center.Sub(cme.Direction().Mul(9)).Len() > 1e-9 {
		t.Errorf("center = %v, want midpoint at 9 units", center)
	}
	if cloud.BoundingRadius() <= 0 {
		t.Error("visible cloud must have a positive bounding radius")
	}

	cloud.Visible = false
	if cloud.BoundingRadius() != 0 {
		t.Error("invisible cloud must not be pickable")
	}
}
