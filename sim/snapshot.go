package sim

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/core"
)

// Snapshot is the immutable frame state published to websocket clients.
// Everything a browser overlay needs to position labels and mirror controls.
type Snapshot struct {
	Elapsed     float64       `json:"elapsed"`
	DataVersion int           `json:"dataVersion"`
	Bodies      []BodyState   `json:"bodies"`
	L1          [3]float64    `json:"l1"`
	Clouds      []CloudState  `json:"clouds"`
	Timeline    TimelineState `json:"timeline"`
	Impact      ImpactState   `json:"impact"`
	Toggles     Toggles       `json:"toggles"`
	Events      []string      `json:"events,omitempty"`
}

type BodyState struct {
	Name     string     `json:"name"`
	Position [3]float64 `json:"position"`
	Size     float64    `json:"size"`
	Color    string     `json:"color"`
	Visible  bool       `json:"visible"`
}

type CloudState struct {
	ID       string     `json:"id"`
	Visible  bool       `json:"visible"`
	Position [3]float64 `json:"position"`
	Scale    float64    `json:"scale"`
	Speed    float64    `json:"speed"`
	Opacity  float64    `json:"opacity"`
	Selected bool       `json:"selected"`
}

type TimelineState struct {
	Active      bool      `json:"active"`
	Playing     bool      `json:"playing"`
	Scrubber    float64   `json:"scrubber"`
	Speed       float64   `json:"speed"`
	MinDate     time.Time `json:"minDate"`
	MaxDate     time.Time `json:"maxDate"`
	CurrentTime time.Time `json:"currentTime"`
}

type ImpactState struct {
	PeakSpeed       float64 `json:"peakSpeed"`
	OrbitAlert      float64 `json:"orbitAlert"`
	AtmosphereGlow  float64 `json:"atmosphereGlow"`
	AuroraIntensity float64 `json:"auroraIntensity"`
}

func vec(v mgl64.Vec3) [3]float64 {
	return [3]float64{v.X(), v.Y(), v.Z()}
}

// BodyVisible applies the visibility toggles to a catalog entry.
func (e *Engine) BodyVisible(b core.Body) bool {
	if b.Optional && !e.toggles.ExtraPlanets {
		return false
	}
	if b.Name == core.BodyMoon && !e.toggles.Moon {
		return false
	}
	return true
}

// Snapshot assembles the publishable view of one stepped frame.
func (e *Engine) Snapshot(frame FrameState) Snapshot {
	snap := Snapshot{
		Elapsed:     frame.Elapsed,
		DataVersion: e.dataVersion,
		L1:          vec(frame.L1Pos),
		Toggles:     e.toggles,
		Timeline: TimelineState{
			Active:      e.timeline.Active,
			Playing:     e.timeline.Playing,
			Scrubber:    e.timeline.Scrubber,
			Speed:       e.timeline.Speed,
			MinDate:     e.timeline.MinDate,
			MaxDate:     e.timeline.MaxDate,
			CurrentTime: e.timeline.CurrentTime(),
		},
		Impact: ImpactState{
			PeakSpeed:       frame.PeakImpactSpeed,
			OrbitAlert:      frame.OrbitAlert,
			AtmosphereGlow:  frame.AtmosphereGlow,
			AuroraIntensity: frame.AuroraIntensity,
		},
	}

	for _, b := range e.system.Bodies() {
		pos, _ := e.system.WorldPosition(b.Name, frame.Elapsed)
		snap.Bodies = append(snap.Bodies, BodyState{
			Name:     b.Name,
			Position: vec(pos),
			Size:     b.Size,
			Color:    b.Color,
			Visible:  e.BodyVisible(b),
		})
	}

	for _, cloud := range e.clouds {
		snap.Clouds = append(snap.Clouds, CloudState{
			ID:       cloud.CMEID,
			Visible:  cloud.Visible,
			Position: vec(cloud.Position),
			Scale:    cloud.Scale,
			Speed:    cloud.Speed,
			Opacity:  cloud.Opacity,
			Selected: cloud.CMEID == e.selectedID,
		})
	}

	if frame.TimelineEnded {
		snap.Events = append(snap.Events, "timelineEnd")
	}
	if frame.ScrubberMoved {
		snap.Events = append(snap.Events, "scrubberChanged")
	}

	return snap
}
