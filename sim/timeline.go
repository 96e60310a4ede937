package sim

import (
	"time"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/config"
)

// ScrubberMax is the upper bound of the normalized scrubber range.
const ScrubberMax = 1000.0

// fallbackStepUnits is used when the date range is zero-width and one
// simulated hour cannot be expressed in scrubber units.
const fallbackStepUnits = 10.0

// Timeline maps a normalized scrub position plus play state onto a simulated
// current time. While inactive, propagation runs off live clocks instead.
type Timeline struct {
	MinDate  time.Time
	MaxDate  time.Time
	Scrubber float64 // [0, ScrubberMax]
	Playing  bool
	Speed    float64 // playback multiplier
	Active   bool

	hoursPerSecond float64 // simulated hours per real second at speed 1
	endFired       bool
}

func NewTimeline(cfg config.SimulationSettings) *Timeline {
	return &Timeline{Speed: 1, hoursPerSecond: cfg.TimelineHoursPerS}
}

// SetRange rebinds the timeline to a new date range and rewinds it.
func (t *Timeline) SetRange(min, max time.Time) {
	t.MinDate = min
	t.MaxDate = max
	t.Scrubber = 0
	t.Playing = false
	t.endFired = false
}

func (t *Timeline) rangeMillis() float64 {
	return float64(t.MaxDate.Sub(t.MinDate).Milliseconds())
}

// CurrentTime returns the simulated time at the scrubber position.
func (t *Timeline) CurrentTime() time.Time {
	rm := t.rangeMillis()
	if rm <= 0 {
		return t.MinDate
	}
	offset := time.Duration(t.Scrubber / ScrubberMax * rm * float64(time.Millisecond))
	return t.MinDate.Add(offset)
}

// Advance moves the scrubber forward by deltaReal seconds of playback.
// Returns true exactly once when the scrubber reaches the end of the range.
func (t *Timeline) Advance(deltaReal float64) bool {
	if !t.Playing || deltaReal <= 0 {
		return false
	}
	rm := t.rangeMillis()
	if rm <= 0 {
		t.Playing = false
		return false
	}

	simMillis := deltaReal * t.hoursPerSecond * t.Speed * 3600 * 1000
	t.Scrubber += simMillis / rm * ScrubberMax

	if t.Scrubber >= ScrubberMax {
		t.Scrubber = ScrubberMax
		t.Playing = false
		if !t.endFired {
			t.endFired = true
			return true
		}
	}
	return false
}

// Play starts playback and activates timeline mode.
func (t *Timeline) Play() {
	t.Active = true
	t.Playing = true
	if t.Scrubber < ScrubberMax {
		t.endFired = false
	}
}

// Pause stops playback without leaving timeline mode.
func (t *Timeline) Pause() {
	t.Active = true
	t.Playing = false
}

// TogglePlay flips between playing and paused.
func (t *Timeline) TogglePlay() {
	if t.Playing {
		t.Pause()
	} else {
		t.Play()
	}
}

// Scrub sets the scrubber directly, clamped, and pauses playback.
func (t *Timeline) Scrub(value float64) {
	t.Active = true
	t.Playing = false
	t.Scrubber = clampScrubber(value)
	if t.Scrubber < ScrubberMax {
		t.endFired = false
	}
}

// Step advances or retreats by one simulated hour's worth of scrubber units.
func (t *Timeline) Step(direction int) {
	t.Active = true
	delta := fallbackStepUnits
	if rm := t.rangeMillis(); rm > 0 {
		delta = 3600 * 1000 / rm * ScrubberMax
	}
	if direction < 0 {
		delta = -delta
	}
	t.Scrubber = clampScrubber(t.Scrubber + delta)
	if t.Scrubber < ScrubberMax {
		t.endFired = false
	}
}

// SetSpeed updates the playback multiplier. Non-positive values are ignored.
func (t *Timeline) SetSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	t.Active = true
	t.Speed = speed
}

// Deactivate leaves timeline mode, returning propagation to live clocks.
func (t *Timeline) Deactivate() {
	t.Active = false
	t.Playing = false
}

func clampScrubber(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > ScrubberMax {
		return ScrubberMax
	}
	return v
}
