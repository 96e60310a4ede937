package sim

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/config"
	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/core"
)

// Toggles are the UI-facing visibility switches.
type Toggles struct {
	Labels       bool `json:"labels"`
	ExtraPlanets bool `json:"extraPlanets"`
	Moon         bool `json:"moon"`
	L1           bool `json:"l1"`
}

// FrameState is what one engine step hands to the renderer and the hub.
// All values derive from a single elapsed-clock capture.
type FrameState struct {
	Elapsed         float64
	EarthPos        mgl64.Vec3
	L1Pos           mgl64.Vec3
	PeakImpactSpeed float64
	OrbitAlert      float64
	AtmosphereGlow  float64
	AuroraIntensity float64
	TimelineEnded   bool
	ScrubberMoved   bool
}

// Engine owns the simulation state and advances it one cooperative tick per
// frame. All mutation happens on the frame loop goroutine.
type Engine struct {
	cfg    config.Settings
	system *core.System
	clock  *core.Clock

	prop     *Propagator
	timeline *Timeline
	effects  *Effects
	detector *ImpactDetector

	cmes       []core.CMEEvent
	clouds     []*ParticleCloud
	cloudByID  map[string]*ParticleCloud
	selectedID string

	toggles     Toggles
	dataVersion int
}

func NewEngine(cfg config.Settings) *Engine {
	system := core.NewSystem(cfg.Scene)
	earth, _ := system.Body(core.BodyEarth)
	return &Engine{
		cfg:       cfg,
		system:    system,
		clock:     core.NewClock(),
		prop:      NewPropagator(cfg.Scene),
		timeline:  NewTimeline(cfg.Simulation),
		effects:   NewEffects(cfg.Effects),
		detector:  NewImpactDetector(earth.Size, cfg.Effects),
		cloudByID: make(map[string]*ParticleCloud),
		toggles:   Toggles{Labels: true, Moon: true, L1: true},
	}
}

func (e *Engine) System() *core.System     { return e.system }
func (e *Engine) Clock() *core.Clock       { return e.clock }
func (e *Engine) Propagator() *Propagator  { return e.prop }
func (e *Engine) Timeline() *Timeline      { return e.timeline }
func (e *Engine) Effects() *Effects        { return e.effects }
func (e *Engine) Detector() *ImpactDetector { return e.detector }
func (e *Engine) Toggles() Toggles         { return e.toggles }
func (e *Engine) DataVersion() int         { return e.dataVersion }

// Clouds returns the particle clouds in CME-list order.
func (e *Engine) Clouds() []*ParticleCloud { return e.clouds }

// Cloud looks up a cloud by CME id.
func (e *Engine) Cloud(id string) (*ParticleCloud, bool) {
	c, ok := e.cloudByID[id]
	return c, ok
}

// CMEs returns the current event list.
func (e *Engine) CMEs() []core.CMEEvent { return e.cmes }

// SetToggles replaces the visibility switches.
func (e *Engine) SetToggles(t Toggles) { e.toggles = t }

// SetCMEs replaces the event list and rebuilds every particle cloud
// wholesale. The simulation clock restarts so replays get a clean t=0, and
// the data version bumps so the renderer rebuilds its scene resources.
func (e *Engine) SetCMEs(list []core.CMEEvent) {
	e.cmes = make([]core.CMEEvent, len(list))
	copy(e.cmes, list)
	for i := range e.cmes {
		e.cmes[i].Normalize()
	}

	e.clouds = e.clouds[:0]
	e.cloudByID = make(map[string]*ParticleCloud, len(e.cmes))
	for i := range e.cmes {
		cloud := NewParticleCloud(e.cmes[i], e.cfg.Simulation)
		e.clouds = append(e.clouds, cloud)
		e.cloudByID[e.cmes[i].ID] = cloud
	}

	e.selectedID = ""
	e.clock.Restart()
	e.effects.Reset()
	e.dataVersion++
}

// SetTimeRange rebinds the timeline to a new window, e.g. after the host
// re-fetches data for a different range.
func (e *Engine) SetTimeRange(min, max time.Time) {
	e.timeline.SetRange(min, max)
}

// SelectCME marks one event for focused modeling (empty id clears). The
// selection epoch becomes its replay t=0, and timeline mode deactivates:
// the two modes are mutually exclusive.
func (e *Engine) SelectCME(id string) {
	if id == "" {
		e.selectedID = ""
		return
	}
	for i := range e.cmes {
		if e.cmes[i].ID == id {
			e.cmes[i].SimulationStart = e.clock.Elapsed()
			e.selectedID = id
			e.timeline.Deactivate()
			return
		}
	}
}

// SelectedID returns the id of the CME under focused modeling, or "".
func (e *Engine) SelectedID() string { return e.selectedID }

// SelectedCME returns the focused event, if any.
func (e *Engine) SelectedCME() (core.CMEEvent, bool) {
	for i := range e.cmes {
		if e.cmes[i].ID == e.selectedID {
			return e.cmes[i], true
		}
	}
	return core.CMEEvent{}, false
}

// Timeline mutations route through the engine so they can enforce the
// mutual exclusion with single-CME selection.

func (e *Engine) TimelinePlay()            { e.selectedID = ""; e.timeline.Play() }
func (e *Engine) TimelinePause()           { e.selectedID = ""; e.timeline.Pause() }
func (e *Engine) TimelineToggle()          { e.selectedID = ""; e.timeline.TogglePlay() }
func (e *Engine) TimelineScrub(v float64)  { e.selectedID = ""; e.timeline.Scrub(v) }
func (e *Engine) TimelineStep(dir int)     { e.selectedID = ""; e.timeline.Step(dir) }
func (e *Engine) TimelineSpeed(s float64)  { e.selectedID = ""; e.timeline.SetSpeed(s) }
func (e *Engine) TimelineDeactivate()      { e.timeline.Deactivate() }

// elapsedFor picks the propagation context for one CME: timeline-driven,
// selected-live, or default wall-clock live. Exactly one applies per frame.
func (e *Engine) elapsedFor(cme *core.CMEEvent, elapsed float64, now time.Time) (float64, PropagationMode) {
	if e.timeline.Active {
		return e.timeline.CurrentTime().Sub(cme.StartTime).Seconds(), ModeConstantVelocity
	}
	if cme.ID == e.selectedID {
		return elapsed - cme.SimulationStart, ModeConstrainedArrival
	}
	return now.Sub(cme.StartTime).Seconds(), ModeConstantVelocity
}

// Step advances the whole simulation by one frame. dt is real seconds since
// the previous tick; the elapsed clock is captured once here to avoid
// intra-frame drift.
func (e *Engine) Step(dt float64) FrameState {
	elapsed := e.clock.Elapsed()
	now := time.Now()

	scrubBefore := e.timeline.Scrubber
	ended := e.timeline.Advance(dt)

	for i := range e.cmes {
		cme := &e.cmes[i]
		cloud, ok := e.cloudByID[cme.ID]
		if !ok {
			continue
		}
		cmeElapsed, mode := e.elapsedFor(cme, elapsed, now)
		distance := e.prop.DistanceTraveled(*cme, cmeElapsed, mode)
		e.prop.Shape(*cme, distance).Apply(cloud)
	}

	earthPos, _ := e.system.WorldPosition(core.BodyEarth, elapsed)
	peak := e.detector.PeakSpeed(e.clouds, earthPos)
	if peak > 0 {
		e.effects.RecordImpact(peak, elapsed)
	}

	return FrameState{
		Elapsed:         elapsed,
		EarthPos:        earthPos,
		L1Pos:           e.system.L1Position(elapsed),
		PeakImpactSpeed: peak,
		OrbitAlert:      e.effects.OrbitAlert(elapsed),
		AtmosphereGlow:  e.effects.AtmosphereGlow(elapsed),
		AuroraIntensity: e.effects.AuroraIntensity(elapsed),
		TimelineEnded:   ended,
		ScrubberMoved:   e.timeline.Scrubber != scrubBefore,
	}
}
