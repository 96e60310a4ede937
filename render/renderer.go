package render

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/config"
	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/core"
	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/sim"
)

var (
	colBackground = rl.NewColor(6, 6, 12, 255)
	colOrbit      = rl.NewColor(70, 90, 110, 140)
	colOrbitAlert = rl.NewColor(220, 60, 60, 220)
	colAtmosphere = rl.NewColor(120, 180, 255, 255)
	colAurora     = rl.NewColor(80, 255, 140, 255)
	colL1         = rl.NewColor(240, 220, 90, 255)
	colText       = rl.NewColor(200, 200, 200, 255)
	colTextDim    = rl.NewColor(120, 120, 120, 255)
)

// Renderer owns the window and issues all draw calls. The scene itself is
// immediate-mode: per-CME particle data lives on the engine's clouds and is
// rebuilt wholesale when the CME list changes.
type Renderer struct {
	cfg             config.Settings
	lastDataVersion int
}

func NewRenderer(cfg config.Settings) *Renderer {
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "Spot The Aurora - CME Simulation")
	rl.SetTargetFPS(int32(cfg.Window.TargetFPS))
	return &Renderer{cfg: cfg, lastDataVersion: -1}
}

// Close releases the window and its GL context.
func (r *Renderer) Close() {
	rl.CloseWindow()
}

func (r *Renderer) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// Draw renders one frame from the engine's stepped state.
func (r *Renderer) Draw(e *sim.Engine, frame sim.FrameState, cam *Controller) {
	if v := e.DataVersion(); v != r.lastDataVersion {
		log.Printf("Scene rebuilt for data version %d (%d CMEs)", v, len(e.Clouds()))
		r.lastDataVersion = v
	}

	rl.BeginDrawing()
	rl.ClearBackground(colBackground)

	rl.BeginMode3D(cam.Camera)
	r.drawBodies(e, frame)
	r.drawClouds(e)
	r.drawEffects(e, frame)
	rl.EndMode3D()

	r.drawOverlay(e, frame, cam)
	rl.EndDrawing()
}

func (r *Renderer) drawBodies(e *sim.Engine, frame sim.FrameState) {
	system := e.System()
	for _, body := range system.Bodies() {
		if !e.BodyVisible(body) {
			continue
		}
		pos, ok := system.WorldPosition(body.Name, frame.Elapsed)
		if !ok {
			continue
		}
		rl.DrawSphereEx(toRL(pos), float32(body.Size), 12, 12, hexColor(body.Color))

		if body.PeriodDays <= 0 {
			continue
		}
		orbitCenter := rl.NewVector3(0, 0, 0)
		if body.Parent != "" {
			parentPos, ok := system.WorldPosition(body.Parent, frame.Elapsed)
			if !ok {
				continue
			}
			orbitCenter = toRL(parentPos)
		}
		orbitColor := colOrbit
		if body.Name == core.BodyEarth && frame.OrbitAlert > 0 {
			orbitColor = blendColor(colOrbit, colOrbitAlert, frame.OrbitAlert)
		}
		rl.DrawCircle3D(orbitCenter, float32(body.OrbitRadius), rl.NewVector3(1, 0, 0), 90, orbitColor)
	}

	if e.Toggles().L1 {
		l1 := toRL(frame.L1Pos)
		rl.DrawSphereEx(l1, 0.25, 8, 8, colL1)
		rl.DrawLine3D(l1, toRL(frame.EarthPos), rl.Fade(colL1, 0.4))
	}
}

func (r *Renderer) drawClouds(e *sim.Engine) {
	for _, cloud := range e.Clouds() {
		if !cloud.Visible {
			continue
		}
		alpha := cloud.Opacity
		for i, local := range cloud.Positions {
			world := cloud.Position.Add(cloud.Orientation.Rotate(local).Mul(cloud.Scale))
			c := cloud.Colors[i]
			cr, cg, cb := c.RGB255()
			col := rl.NewColor(cr, cg, cb, uint8(alpha*255))
			// Points everywhere, a sparse set of sized spheres for volume.
			rl.DrawPoint3D(toRL(world), col)
			if i%6 == 0 {
				rl.DrawSphereEx(toRL(world), float32(cloud.ParticleSize), 4, 6, rl.Fade(col, 0.6))
			}
		}
		if cloud.CMEID == e.SelectedID() {
			rl.DrawSphereWires(toRL(cloud.Center()), float32(cloud.BoundingRadius()), 8, 8, rl.Fade(rl.White, 0.25))
		}
	}
}

func (r *Renderer) drawEffects(e *sim.Engine, frame sim.FrameState) {
	earth, ok := e.System().Body(core.BodyEarth)
	if !ok {
		return
	}
	if frame.AtmosphereGlow > 0 {
		rl.DrawSphereEx(toRL(frame.EarthPos), float32(earth.Size*1.3), 10, 10,
			rl.Fade(colAtmosphere, float32(0.3*frame.AtmosphereGlow)))
	}
	if frame.AuroraIntensity > 0 {
		rl.DrawSphereEx(toRL(frame.EarthPos), float32(earth.Size*1.12), 10, 10,
			rl.Fade(colAurora, float32(0.45*frame.AuroraIntensity)))
	}
}

func (r *Renderer) drawOverlay(e *sim.Engine, frame sim.FrameState, cam *Controller) {
	if e.Toggles().Labels {
		system := e.System()
		for _, body := range system.Bodies() {
			if !e.BodyVisible(body) {
				continue
			}
			pos, ok := system.WorldPosition(body.Name, frame.Elapsed)
			if !ok {
				continue
			}
			screen := rl.GetWorldToScreen(toRL(pos), cam.Camera)
			rl.DrawText(body.Name, int32(screen.X)+6, int32(screen.Y)-6, 10, colTextDim)
		}
		if e.Toggles().L1 {
			screen := rl.GetWorldToScreen(toRL(frame.L1Pos), cam.Camera)
			rl.DrawText("L1", int32(screen.X)+6, int32(screen.Y)-6, 10, colTextDim)
		}
	}

	mode := "move"
	if cam.SelectMode {
		mode = "select"
	}
	rl.DrawText(fmt.Sprintf("mode: %s  [tab] toggle  [r] reset view", mode), 10, 28, 10, colTextDim)

	tl := e.Timeline()
	if tl.Active {
		state := "paused"
		if tl.Playing {
			state = "playing"
		}
		rl.DrawText(fmt.Sprintf("timeline %s  %.0f/1000  x%.1f  %s",
			state, tl.Scrubber, tl.Speed, tl.CurrentTime().UTC().Format("2006-01-02 15:04")),
			10, 42, 10, colText)
	} else if cme, ok := e.SelectedCME(); ok {
		rl.DrawText(fmt.Sprintf("modeling %s  %.0f km/s", cme.ID, cme.Speed), 10, 42, 10, colText)
	} else {
		rl.DrawText(fmt.Sprintf("live  %d CMEs", len(e.Clouds())), 10, 42, 10, colTextDim)
	}

	if frame.OrbitAlert > 0 {
		rl.DrawText(fmt.Sprintf("IMPACT %.0f km/s", e.Effects().LastImpactSpeed()),
			10, 56, 10, rl.Fade(colOrbitAlert, float32(0.4+0.6*frame.OrbitAlert)))
	}

	rl.DrawFPS(10, 10)
}

func blendColor(a, b rl.Color, t float64) rl.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return rl.NewColor(mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A))
}

// hexColor parses a #RRGGBB catalog color, falling back to white.
func hexColor(s string) rl.Color {
	var cr, cg, cb uint8
	if _, err := fmt.Sscanf(s, "#%02X%02X%02X", &cr, &cg, &cb); err != nil {
		return rl.White
	}
	return rl.NewColor(cr, cg, cb, 255)
}
