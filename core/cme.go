package core

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// EarthDirectedLongitude is the heuristic threshold: a CME whose source
// longitude is within this many degrees of the sub-solar line is treated as
// Earth-directed.
const EarthDirectedLongitude = 45.0

// Fallbacks for malformed event fields. A bad record degrades, it never
// halts the batch.
const (
	DefaultCMESpeed     = 350.0 // km/s
	DefaultCMEHalfAngle = 30.0  // degrees
)

// CMEEvent is one coronal mass ejection record as supplied by the data
// layer. Immutable once created, except for SimulationStart which marks the
// visual-replay epoch when the event is selected for focused modeling.
type CMEEvent struct {
	ID              string     `json:"id"`
	StartTime       time.Time  `json:"startTime"`
	Speed           float64    `json:"speed"`     // km/s
	Longitude       float64    `json:"longitude"` // heliographic degrees
	Latitude        float64    `json:"latitude"`  // heliographic degrees
	HalfAngle       float64    `json:"halfAngle"` // degrees
	IsEarthDirected bool       `json:"isEarthDirected"`
	PredictedArrival *time.Time `json:"predictedArrivalTime,omitempty"`
	Link            string     `json:"link,omitempty"`

	// SimulationStart is the elapsed-clock second at which this CME became
	// the currently modeled one; t=0 for its replay, independent of StartTime.
	SimulationStart float64 `json:"-"`
}

// Normalize clamps malformed fields to usable defaults.
func (c *CMEEvent) Normalize() {
	if c.Speed <= 0 {
		c.Speed = DefaultCMESpeed
	}
	if c.HalfAngle <= 0 {
		c.HalfAngle = DefaultCMEHalfAngle
	}
	if c.HalfAngle > 90 {
		c.HalfAngle = 90
	}
	if math.Abs(c.Latitude) > 90 {
		c.Latitude = math.Copysign(90, c.Latitude)
	}
}

// EarthDirected applies the sub-solar-line heuristic to a source longitude.
func EarthDirected(longitude float64) bool {
	return math.Abs(longitude) < EarthDirectedLongitude
}

// Direction returns the propagation unit vector from spherical coordinates
// (90°−latitude, longitude), Y-up. Latitude 90 maps to +Y, (0,0) to +Z.
func (c CMEEvent) Direction() mgl64.Vec3 {
	phi := DegreesToRadians(90 - c.Latitude)
	theta := DegreesToRadians(c.Longitude)
	return mgl64.Vec3{
		math.Sin(phi) * math.Sin(theta),
		math.Cos(phi),
		math.Sin(phi) * math.Cos(theta),
	}
}

// Orientation returns the quaternion rotating the local +Y cone axis onto
// the propagation direction.
func (c CMEEvent) Orientation() mgl64.Quat {
	return mgl64.QuatBetweenVectors(mgl64.Vec3{0, 1, 0}, c.Direction())
}

// TotalTravelSeconds returns the predicted Sun-to-Earth travel time, or 0
// when no arrival prediction exists or the data is inconsistent.
func (c CMEEvent) TotalTravelSeconds() float64 {
	if c.PredictedArrival == nil {
		return 0
	}
	travel := c.PredictedArrival.Sub(c.StartTime).Seconds()
	if travel <= 0 {
		return 0
	}
	return travel
}
