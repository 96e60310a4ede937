// Package donki parses CME event data in the DONKI (Space Weather Database
// Of Notifications, Knowledge, Information) JSON shape and adapts it to the
// simulation's event records.
package donki

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/core"
)

// donkiTime handles DONKI's minute-resolution "2006-01-02T15:04Z" stamps,
// falling back to RFC 3339.
type donkiTime struct {
	time.Time
}

func (t *donkiTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{"2006-01-02T15:04Z", time.RFC3339} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized DONKI timestamp %q", s)
}

type cmeRecord struct {
	ActivityID  string        `json:"activityID"`
	StartTime   donkiTime     `json:"startTime"`
	Link        string        `json:"link"`
	CMEAnalyses []cmeAnalysis `json:"cmeAnalyses"`
}

type cmeAnalysis struct {
	Latitude       float64     `json:"latitude"`
	Longitude      float64     `json:"longitude"`
	HalfAngle      float64     `json:"halfAngle"`
	Speed          float64     `json:"speed"`
	IsMostAccurate bool        `json:"isMostAccurate"`
	EnlilList      []enlilRun  `json:"enlilList"`
}

type enlilRun struct {
	EstimatedShockArrival *donkiTime `json:"estimatedShockArrivalTime"`
}

// Parse decodes a DONKI CME feed. Records without a usable analysis are
// skipped rather than failing the batch.
func Parse(r io.Reader) ([]core.CMEEvent, error) {
	var records []cmeRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding DONKI feed: %v", err)
	}

	events := make([]core.CMEEvent, 0, len(records))
	for _, rec := range records {
		analysis, ok := pickAnalysis(rec.CMEAnalyses)
		if !ok {
			continue
		}
		event := core.CMEEvent{
			ID:              rec.ActivityID,
			StartTime:       rec.StartTime.Time,
			Speed:           analysis.Speed,
			Longitude:       analysis.Longitude,
			Latitude:        analysis.Latitude,
			HalfAngle:       analysis.HalfAngle,
			IsEarthDirected: core.EarthDirected(analysis.Longitude),
			Link:            rec.Link,
		}
		for _, run := range analysis.EnlilList {
			if run.EstimatedShockArrival != nil && !run.EstimatedShockArrival.IsZero() {
				arrival := run.EstimatedShockArrival.Time
				event.PredictedArrival = &arrival
				break
			}
		}
		event.Normalize()
		events = append(events, event)
	}
	return events, nil
}

// pickAnalysis prefers the analysis flagged most accurate, then the first.
func pickAnalysis(analyses []cmeAnalysis) (cmeAnalysis, bool) {
	if len(analyses) == 0 {
		return cmeAnalysis{}, false
	}
	for _, a := range analyses {
		if a.IsMostAccurate {
			return a, true
		}
	}
	return analyses[0], true
}

// LoadFile parses a DONKI feed from disk.
func LoadFile(path string) ([]core.CMEEvent, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

// Fetch pulls a DONKI feed over HTTP. Failures surface as an error and an
// empty list; the scene renders empty rather than halting.
func Fetch(url string, timeout time.Duration) ([]core.CMEEvent, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DONKI fetch: unexpected status %s", resp.Status)
	}
	return Parse(resp.Body)
}

// Sample returns a small canned event set pinned relative to now, used when
// no feed is supplied.
func Sample(now time.Time) []core.CMEEvent {
	arrival := now.Add(36 * time.Hour)
	events := []core.CMEEvent{
		{
			ID:               "SAMPLE-CME-001",
			StartTime:        now.Add(-6 * time.Hour),
			Speed:            980,
			Longitude:        12,
			Latitude:         -8,
			HalfAngle:        38,
			IsEarthDirected:  true,
			PredictedArrival: &arrival,
		},
		{
			ID:        "SAMPLE-CME-002",
			StartTime: now.Add(-18 * time.Hour),
			Speed:     430,
			Longitude: -72,
			Latitude:  15,
			HalfAngle: 24,
		},
		{
			ID:        "SAMPLE-CME-003",
			StartTime: now.Add(-2 * time.Hour),
			Speed:     2350,
			Longitude: 55,
			Latitude:  3,
			HalfAngle: 45,
		},
	}
	for i := range events {
		events[i].Normalize()
	}
	return events
}
