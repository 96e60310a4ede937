package sim

import (
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/config"
	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/core"
)

// domeFactor rounds the cone's leading face into a parabolic dome: particles
// at the cone rim sit behind those on the axis.
const domeFactor = 0.3

// ParticleCloud is the render representation of one CME. Local geometry is
// computed once at construction inside a unit-height cone; only the
// aggregate Position/Scale/Visible change per frame.
type ParticleCloud struct {
	CMEID     string
	Speed     float64 // km/s, cached for impact reporting
	Direction mgl64.Vec3
	Orientation mgl64.Quat

	Positions    []mgl64.Vec3 // local unit-cone space
	Colors       []colorful.Color
	ParticleSize float64 // world-space render radius per particle
	Opacity      float64

	// Per-frame aggregate state, owned by the propagation step.
	Position mgl64.Vec3
	Scale    float64
	Visible  bool
}

// speedFraction maps a CME speed onto [0,1] between the reference speeds,
// clamped outside the band.
func speedFraction(speed float64, cfg config.SimulationSettings) float64 {
	span := cfg.MaxCMESpeed - cfg.MinCMESpeed
	if span <= 0 {
		return 0
	}
	f := (speed - cfg.MinCMESpeed) / span
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Reference colors for the wake/core/shock-front gradient along the cone.
var (
	wakeColor  = mustHex("#3A4A6B")
	shockColor = mustHex("#FFF3E0")
)

// speedRamp buckets the core color by CME speed. Only the 350-500 km/s band
// interpolates; above that the ramp steps at each threshold.
var speedRamp = []struct {
	speed float64
	color colorful.Color
}{
	{350, mustHex("#9E9E9E")},  // grey, slow
	{500, mustHex("#6B8E23")},  // olive
	{800, mustHex("#FFD700")},  // yellow
	{1200, mustHex("#FF8C00")}, // orange
	{1700, mustHex("#FF4500")}, // red
	{2100, mustHex("#FF00FF")}, // magenta
	{2500, mustHex("#FF69B4")}, // hot pink, extreme
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// CoreColor picks the speed-bucketed core color for a CME.
func CoreColor(speed float64) colorful.Color {
	if speed < speedRamp[0].speed {
		return speedRamp[0].color
	}
	if speed < speedRamp[1].speed {
		t := (speed - speedRamp[0].speed) / (speedRamp[1].speed - speedRamp[0].speed)
		return speedRamp[0].color.BlendRgb(speedRamp[1].color, t)
	}
	color := speedRamp[1].color
	for _, bucket := range speedRamp[2:] {
		if speed < bucket.speed {
			break
		}
		color = bucket.color
	}
	return color
}

// particleColor blends wake -> core -> shock along the normalized cone
// height. Height 0 is the Sun-side apex, height 1 the leading face.
func particleColor(height float64, coreCol colorful.Color) colorful.Color {
	if height < 0.5 {
		return wakeColor.BlendRgb(coreCol, height*2)
	}
	return coreCol.BlendRgb(shockColor, (height-0.5)*2)
}

// ParticleCount returns the cloud's particle count for a speed, scaling
// linearly between the configured bounds.
func ParticleCount(speed float64, cfg config.SimulationSettings) int {
	f := speedFraction(speed, cfg)
	return cfg.MinParticleCount + int(f*float64(cfg.MaxParticleCount-cfg.MinParticleCount))
}

// ParticleRenderSize returns the per-particle world radius for a speed.
func ParticleRenderSize(speed float64, cfg config.SimulationSettings) float64 {
	return lerp(0.05, 0.2, speedFraction(speed, cfg))
}

// CloudOpacity returns the cloud's overall opacity for a speed.
func CloudOpacity(speed float64, cfg config.SimulationSettings) float64 {
	return lerp(0.35, 0.85, speedFraction(speed, cfg))
}

// NewParticleCloud samples a rounded-cone particle cloud for one CME.
// Placement is random but seeded from the event ID, so reloading the same
// feed reproduces the same cloud.
func NewParticleCloud(cme core.CMEEvent, cfg config.SimulationSettings) *ParticleCloud {
	rng := rand.New(rand.NewSource(seedFor(cme.ID)))

	count := ParticleCount(cme.Speed, cfg)
	coreCol := CoreColor(cme.Speed)
	tanHalf := math.Tan(core.DegreesToRadians(cme.HalfAngle))

	cloud := &ParticleCloud{
		CMEID:        cme.ID,
		Speed:        cme.Speed,
		Direction:    cme.Direction(),
		Orientation:  cme.Orientation(),
		Positions:    make([]mgl64.Vec3, 0, count),
		Colors:       make([]colorful.Color, 0, count),
		ParticleSize: ParticleRenderSize(cme.Speed, cfg),
		Opacity:      CloudOpacity(cme.Speed, cfg),
	}

	for i := 0; i < count; i++ {
		// Cube-root height distribution: denser toward the leading face.
		h := math.Cbrt(rng.Float64())
		maxR := h * tanHalf
		r := math.Sqrt(rng.Float64()) * maxR
		ang := rng.Float64() * 2 * math.Pi

		// Parabolic dome: pull rim particles back toward the Sun.
		y := h
		if maxR > 0 {
			rr := r / maxR
			y = h * (1 - domeFactor*rr*rr)
		}

		cloud.Positions = append(cloud.Positions, mgl64.Vec3{r * math.Cos(ang), y, r * math.Sin(ang)})
		cloud.Colors = append(cloud.Colors, particleColor(h, coreCol))
	}

	return cloud
}

// Tip returns the cloud's world-space leading-edge position.
func (c *ParticleCloud) Tip() mgl64.Vec3 {
	return c.Position.Add(c.Direction.Mul(c.Scale))
}

// BoundingRadius returns a world-space radius around the cloud's midpoint,
// used for pointer picking.
func (c *ParticleCloud) BoundingRadius() float64 {
	if !c.Visible {
		return 0
	}
	// Half the visible length, padded for the cone's angular spread.
	return c.Scale * 0.75
}

// Center returns the world-space midpoint of the visible cone.
func (c *ParticleCloud) Center() mgl64.Vec3 {
	return c.Position.Add(c.Direction.Mul(c.Scale * 0.5))
}

func seedFor(id string) int64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return int64(h.Sum64())
}
