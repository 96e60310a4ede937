package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

type Settings struct {
	Window     WindowSettings     `json:"window"`
	Server     ServerSettings     `json:"server"`
	Scene      SceneSettings      `json:"scene"`
	Simulation SimulationSettings `json:"simulation"`
	Effects    EffectSettings     `json:"effects"`
}

type WindowSettings struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	TargetFPS int `json:"targetFps"`
}

type ServerSettings struct {
	Enabled          bool `json:"enabled"`
	Port             int  `json:"port"`
	UpdateIntervalMs int  `json:"updateIntervalMs"`
}

// SceneSettings holds the conversion between astronomical and render units.
// Demonstrability constants, not physical values.
type SceneSettings struct {
	AUSceneUnits float64 `json:"auSceneUnits"` // scene units per astronomical unit
	SunRadius    float64 `json:"sunRadius"`    // scene units
	OrbitSpeedup float64 `json:"orbitSpeedup"` // visual acceleration of orbital rates
	L1Offset     float64 `json:"l1Offset"`     // scene units from Earth toward the Sun
}

type SimulationSettings struct {
	MinCMESpeed       float64 `json:"minCmeSpeed"` // km/s, lower reference for visual scaling
	MaxCMESpeed       float64 `json:"maxCmeSpeed"` // km/s, upper reference for visual scaling
	MinParticleCount  int     `json:"minParticleCount"`
	MaxParticleCount  int     `json:"maxParticleCount"`
	TimelineHoursPerS float64 `json:"timelineHoursPerSecond"` // sim hours per real second at speed 1
}

// EffectSettings are tuned constants with no documented derivation.
// Kept configurable rather than re-derived.
type EffectSettings struct {
	ImpactRadiusFactor  float64 `json:"impactRadiusFactor"`  // multiple of Earth's visual size
	OrbitAlertSeconds   float64 `json:"orbitAlertSeconds"`   // orbit-line alert coloring decay
	AtmosphereSeconds   float64 `json:"atmosphereSeconds"`   // atmosphere glow decay
	AuroraSeconds       float64 `json:"auroraSeconds"`       // aurora intensity decay
	CameraTravelSeconds float64 `json:"cameraTravelSeconds"` // view/focus transition duration
}

func Defaults() Settings {
	return Settings{
		Window: WindowSettings{
			Width:     1280,
			Height:    720,
			TargetFPS: 60,
		},
		Server: ServerSettings{
			Enabled:          true,
			Port:             8080,
			UpdateIntervalMs: 100,
		},
		Scene: SceneSettings{
			AUSceneUnits: 50.0,
			SunRadius:    4.0,
			OrbitSpeedup: 5000.0,
			L1Offset:     5.0,
		},
		Simulation: SimulationSettings{
			MinCMESpeed:       300.0,
			MaxCMESpeed:       3000.0,
			MinParticleCount:  400,
			MaxParticleCount:  2600,
			TimelineHoursPerS: 3.0,
		},
		Effects: EffectSettings{
			ImpactRadiusFactor:  2.5,
			OrbitAlertSeconds:   10.0,
			AtmosphereSeconds:   2.5,
			AuroraSeconds:       5.0,
			CameraTravelSeconds: 1.2,
		},
	}
}

// Load reads settings from path, falling back to defaults when the file is
// absent. A missing file is not an error; a malformed one is.
func Load(path string) (Settings, error) {
	settings := Defaults()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("No %s found, using defaults", path)
			return settings, nil
		}
		return settings, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&settings); err != nil {
		return Defaults(), fmt.Errorf("error parsing %s: %v", path, err)
	}

	log.Printf("Loaded settings: scene scale %.0f units/AU, server port %d",
		settings.Scene.AUSceneUnits, settings.Server.Port)

	return settings, nil
}
