package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/config"
)

// View is a named camera vantage.
type View int

const (
	ViewTop View = iota
	ViewSide
)

// Focus is a named look-at target.
type Focus int

const (
	FocusNone Focus = iota
	FocusSun
	FocusEarth
)

// Controller animates the camera between view/focus presets and holds the
// select-vs-move interaction mode.
type Controller struct {
	Camera rl.Camera3D

	view  View
	focus Focus

	// SelectMode routes pointer clicks to CME picking instead of camera
	// manipulation.
	SelectMode bool

	travelSeconds float64
	transitioning bool
	t             float64
	fromPos       mgl64.Vec3
	toPos         mgl64.Vec3
	fromTarget    mgl64.Vec3
	toTarget      mgl64.Vec3
}

func NewController(cfg config.EffectSettings) *Controller {
	c := &Controller{
		travelSeconds: cfg.CameraTravelSeconds,
		view:          ViewTop,
		focus:         FocusSun,
	}
	pos, target := presetFor(ViewTop, FocusSun, mgl64.Vec3{})
	c.Camera = rl.Camera3D{
		Position:   toRL(pos),
		Target:     toRL(target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
	return c
}

func (c *Controller) View() View   { return c.view }
func (c *Controller) Focus() Focus { return c.focus }

// presetFor computes the deterministic camera pose for a view/focus pair.
// focusPos is the focus body's current world position (zero for the Sun).
func presetFor(view View, focus Focus, focusPos mgl64.Vec3) (pos, target mgl64.Vec3) {
	target = focusPos
	switch {
	case focus == FocusEarth && view == ViewTop:
		// Slight Z offset keeps the up vector non-degenerate when looking
		// straight down.
		pos = focusPos.Add(mgl64.Vec3{0, 30, 0.5})
	case focus == FocusEarth && view == ViewSide:
		pos = focusPos.Add(mgl64.Vec3{0, 5, 18})
	case view == ViewSide:
		pos = mgl64.Vec3{0, 20, 130}
	default: // top-down over the Sun
		pos = mgl64.Vec3{0, 140, 0.5}
	}
	return pos, target
}

// MoveTo starts an eased transition to the given view/focus preset.
func (c *Controller) MoveTo(view View, focus Focus, focusPos mgl64.Vec3) {
	c.view = view
	c.focus = focus
	c.fromPos = fromRL(c.Camera.Position)
	c.fromTarget = fromRL(c.Camera.Target)
	c.toPos, c.toTarget = presetFor(view, focus, focusPos)
	c.t = 0
	c.transitioning = true
}

// Reset recenters on the default top-down Sun view.
func (c *Controller) Reset() {
	c.MoveTo(ViewTop, FocusSun, mgl64.Vec3{})
}

// Retarget refreshes the destination of an in-flight or settled focus so a
// moving body stays centered.
func (c *Controller) Retarget(focusPos mgl64.Vec3) {
	if c.focus == FocusEarth && !c.transitioning {
		pos, target := presetFor(c.view, c.focus, focusPos)
		c.Camera.Position = toRL(pos)
		c.Camera.Target = toRL(target)
	}
}

// Update advances the active transition by dt seconds. Both position and
// look-at target interpolate on the same eased parameter, keeping them
// consistent with timeline playback driven by the same frame delta.
func (c *Controller) Update(dt float64) {
	if !c.transitioning {
		return
	}
	if c.travelSeconds <= 0 {
		c.t = 1
	} else {
		c.t += dt / c.travelSeconds
	}
	if c.t >= 1 {
		c.t = 1
		c.transitioning = false
	}
	eased := easeInOutCubic(c.t)
	c.Camera.Position = toRL(c.fromPos.Add(c.toPos.Sub(c.fromPos).Mul(eased)))
	c.Camera.Target = toRL(c.fromTarget.Add(c.toTarget.Sub(c.fromTarget).Mul(eased)))
}

// Transitioning reports whether a preset transition is still easing.
func (c *Controller) Transitioning() bool { return c.transitioning }

// HandleInput applies free-camera manipulation when not in select mode and
// not mid-transition.
func (c *Controller) HandleInput() {
	if c.SelectMode || c.transitioning {
		return
	}
	rl.UpdateCamera(&c.Camera, rl.CameraFree)
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

func toRL(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

func fromRL(v rl.Vector3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}
