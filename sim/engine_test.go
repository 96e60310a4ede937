package sim

import (
	"testing"
	"time"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/config"
	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/core"
)

func newTestEngine() *Engine {
	return NewEngine(config.Defaults())
}

func testEvents() []core.CMEEvent {
	start := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	arrival := start.Add(48 * time.Hour)
	return []core.CMEEvent{
		{ID: "a", StartTime: start, Latitude: 5, Longitude: 10, Speed: 650, HalfAngle: 32},
		{ID: "b", StartTime: start.Add(6 * time.Hour), Longitude: 0, Speed: 1400, HalfAngle: 45,
			IsEarthDirected: true, PredictedArrival: &arrival},
	}
}

func TestSetCMEsRebuildsClouds(t *testing.T) {
	e := newTestEngine()
	e.SetCMEs(testEvents())

	if len(e.Clouds()) != 2 {
		t.Fatalf("clouds = %d, want 2", len(e.Clouds()))
	}
	for _, id := range []string{"a", "b"} {
		cloud, ok := e.Cloud(id)
		if !ok {
			t.Fatalf("no cloud for event %q", id)
		}
		if cloud.CMEID != id {
			t.Errorf("cloud id = %q, want %q", cloud.CMEID, id)
		}
	}

	v := e.DataVersion()
	e.SetCMEs(testEvents()[:1])
	if len(e.Clouds()) != 1 {
		t.Errorf("reload kept %d clouds, want 1", len(e.Clouds()))
	}
	if e.DataVersion() != v+1 {
		t.Errorf("data version = %d, want %d", e.DataVersion(), v+1)
	}
}

func TestSetCMEsNormalizesEvents(t *testing.T) {
	e := newTestEngine()
	e.SetCMEs([]core.CMEEvent{{ID: "raw", Speed: -100, HalfAngle: 0}})

	cme := e.CMEs()[0]
	if cme.Speed != core.DefaultCMESpeed || cme.HalfAngle != core.DefaultCMEHalfAngle {
		t.Errorf("event not normalized: speed=%v halfAngle=%v", cme.Speed, cme.HalfAngle)
	}
}

func TestSetCMEsClearsSelection(t *testing.T) {
	e := newTestEngine()
	e.SetCMEs(testEvents())
	e.SelectCME("b")
	if e.SelectedID() != "b" {
		t.Fatalf("selected = %q, want b", e.SelectedID())
	}

	e.SetCMEs(testEvents())
	if e.SelectedID() != "" {
		t.Errorf("reload kept selection %q", e.SelectedID())
	}
}

func TestSelectUnknownIDIsIgnored(t *testing.T) {
	e := newTestEngine()
	e.SetCMEs(testEvents())
	e.SelectCME("nope")
	if e.SelectedID() != "" {
		t.Errorf("selected = %q, want empty", e.SelectedID())
	}
	if _, ok := e.SelectedCME(); ok {
		t.Error("SelectedCME reported an event with nothing selected")
	}
}

func TestSelectionDeactivatesTimeline(t *testing.T) {
	e := newTestEngine()
	e.SetCMEs(testEvents())
	min := time.Date(2025, 8, 19, 0, 0, 0, 0, time.UTC)
	e.SetTimeRange(min, min.Add(6*24*time.Hour))

	e.TimelineScrub(200)
	if !e.Timeline().Active {
		t.Fatal("scrub did not activate timeline mode")
	}

	e.SelectCME("a")
	if e.Timeline().Active {
		t.Error("selection left timeline mode active")
	}
	if e.SelectedID() != "a" {
		t.Errorf("selected = %q, want a", e.SelectedID())
	}
}

func TestTimelineControlsClearSelection(t *testing.T) {
	tests := []struct {
		name string
		op   func(*Engine)
	}{
		{"play", func(e *Engine) { e.TimelinePlay() }},
		{"pause", func(e *Engine) { e.TimelinePause() }},
		{"toggle", func(e *Engine) { e.TimelineToggle() }},
		{"scrub", func(e *Engine) { e.TimelineScrub(500) }},
		{"step", func(e *Engine) { e.TimelineStep(1) }},
		{"speed", func(e *Engine) { e.TimelineSpeed(5) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine()
			e.SetCMEs(testEvents())
			e.SelectCME("b")
			tc.op(e)
			if e.SelectedID() != "" {
				t.Errorf("%s kept selection %q", tc.name, e.SelectedID())
			}
		})
	}
}

func TestStepWithNoEvents(t *testing.T) {
	e := newTestEngine()
	frame := e.Step(1.0 / 60)

	if frame.PeakImpactSpeed != 0 {
		t.Errorf("impact speed = %v with no events", frame.PeakImpactSpeed)
	}
	if frame.OrbitAlert != 0 || frame.AtmosphereGlow != 0 || frame.AuroraIntensity != 0 {
		t.Error("effects active with no events")
	}
	if frame.EarthPos.Len() == 0 {
		t.Error("Earth position missing from frame")
	}
}

func TestStepUpdatesCloudShapes(t *testing.T) {
	e := newTestEngine()

	// An event that started days ago is far past the Sun in live mode.
	old := testEvents()
	old[0].StartTime = time.Now().Add(-72 * time.Hour)
	e.SetCMEs(old[:1])

	e.Step(1.0 / 60)
	cloud, _ := e.Cloud("a")
	if !cloud.Visible {
		t.Error("three-day-old cloud should be visible")
	}
	if cloud.Scale <= 0 {
		t.Errorf("cloud scale = %v, want > 0", cloud.Scale)
	}
}

func TestStepTimelineContext(t *testing.T) {
	e := newTestEngine()
	events := testEvents()
	e.SetCMEs(events)

	min := events[0].StartTime.Add(-24 * time.Hour)
	e.SetTimeRange(min, min.Add(6*24*time.Hour))

	// Scrub to before the first eruption: nothing should be visible even
	// though wall-clock time is long past the events.
	e.TimelineScrub(0)
	e.Step(1.0 / 60)
	for _, cloud := range e.Clouds() {
		if cloud.Visible {
			t.Errorf("cloud %q visible before its eruption on the timeline", cloud.CMEID)
		}
	}

	// Scrub to the end of the window: both clouds have been traveling.
	e.TimelineScrub(ScrubberMax)
	e.Step(1.0 / 60)
	for _, cloud := range e.Clouds() {
		if !cloud.Visible {
			t.Errorf("cloud %q invisible at end of timeline window", cloud.CMEID)
		}
	}
}

func TestScrubberMovedFlag(t *testing.T) {
	e := newTestEngine()
	min := time.Date(2025, 8, 19, 0, 0, 0, 0, time.UTC)
	e.SetTimeRange(min, min.Add(24*time.Hour))

	frame := e.Step(1.0 / 60)
	if frame.ScrubberMoved {
		t.Error("scrubber reported as moved while paused")
	}

	e.TimelinePlay()
	frame = e.Step(1.0 / 60)
	if !frame.ScrubberMoved {
		t.Error("scrubber did not report movement while playing")
	}
}

func TestTogglesRoundTrip(t *testing.T) {
	e := newTestEngine()
	def := e.Toggles()
	if !def.Labels || !def.Moon || !def.L1 || def.ExtraPlanets {
		t.Errorf("unexpected default toggles: %+v", def)
	}

	e.SetToggles(Toggles{ExtraPlanets: true})
	if got := e.Toggles(); !got.ExtraPlanets || got.Labels {
		t.Errorf("toggles not replaced: %+v", got)
	}
}
