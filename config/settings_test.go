package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if settings != Defaults() {
		t.Errorf("settings = %+v, want defaults", settings)
	}
}

func TestLoadOverridesSelectedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{
		"window": {"width": 1920, "height": 1080, "targetFps": 144},
		"scene": {"auSceneUnits": 80, "sunRadius": 4, "orbitSpeedup": 5000, "l1Offset": 5},
		"server": {"enabled": false, "port": 9090, "updateIntervalMs": 50}
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Window.Width != 1920 || settings.Window.TargetFPS != 144 {
		t.Errorf("window not overridden: %+v", settings.Window)
	}
	if settings.Scene.AUSceneUnits != 80 {
		t.Errorf("scene scale = %v, want 80", settings.Scene.AUSceneUnits)
	}
	if settings.Server.Enabled || settings.Server.Port != 9090 {
		t.Errorf("server not overridden: %+v", settings.Server)
	}

	// Sections absent from the file keep their defaults.
	if settings.Effects != Defaults().Effects {
		t.Errorf("effects = %+v, want defaults", settings.Effects)
	}
	if settings.Simulation != Defaults().Simulation {
		t.Errorf("simulation = %+v, want defaults", settings.Simulation)
	}
}

func TestLoadMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"window": `), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err == nil {
		t.Fatal("malformed file should error")
	}
	if settings != Defaults() {
		t.Error("error path should still hand back defaults")
	}
}
