package main

import (
	"flag"
	"log"
	"runtime"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/config"
	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/core"
	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/donki"
	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/render"
	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/server"
	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/sim"
)

const fetchTimeout = 15 * time.Second

func main() {
	runtime.LockOSThread()

	var (
		settingsPath = flag.String("settings", "settings.json", "Settings file path")
		cmeFile      = flag.String("cmes", "", "DONKI-format CME feed file")
		donkiURL     = flag.String("donki-url", "", "DONKI CME feed URL")
	)
	flag.Parse()

	cfg, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	log.Println("=== Spot The Aurora - CME Propagation Simulation ===")

	engine := sim.NewEngine(cfg)
	events := loadEvents(*cmeFile, *donkiURL)
	engine.SetCMEs(events)
	min, max := timeRange(events)
	engine.SetTimeRange(min, max)
	log.Printf("Loaded %d CME events, timeline %s .. %s",
		len(events), min.UTC().Format("2006-01-02 15:04"), max.UTC().Format("2006-01-02 15:04"))

	hub := server.NewHub(time.Duration(cfg.Server.UpdateIntervalMs) * time.Millisecond)
	go hub.Run()

	srv := server.New(cfg.Server, hub)
	srv.SetData(engine.System().Bodies(), engine.CMEs())
	if cfg.Server.Enabled {
		go func() {
			if err := srv.Run(); err != nil {
				log.Printf("Server stopped: %v", err)
			}
		}()
	}

	renderer := render.NewRenderer(cfg)
	defer renderer.Close()
	cam := render.NewController(cfg.Effects)

	log.Println("Controls: [tab] select/move  [space] play/pause  [arrows] step  [t/y] view  [e/u] focus  [r] reset")

	for !renderer.ShouldClose() {
		dt := float64(rl.GetFrameTime())

		drainCommands(hub, engine, cam, srv, *cmeFile, *donkiURL)
		handleInput(engine, cam)

		frame := engine.Step(dt)

		cam.HandleInput()
		cam.Retarget(frame.EarthPos)
		cam.Update(dt)

		renderer.Draw(engine, frame, cam)
		hub.Publish(engine.Snapshot(frame))

		if frame.TimelineEnded {
			log.Println("Timeline reached end of range")
		}
	}

	log.Println("Shutting down...")
}

// loadEvents prefers a local feed file, then a live URL, then the built-in
// sample set. A failed load degrades to an empty scene, never a crash.
func loadEvents(path, url string) []core.CMEEvent {
	if path != "" {
		events, err := donki.LoadFile(path)
		if err != nil {
			log.Printf("Failed to load CME feed %s: %v", path, err)
			return nil
		}
		return events
	}
	if url != "" {
		events, err := donki.Fetch(url, fetchTimeout)
		if err != nil {
			log.Printf("Failed to fetch CME feed: %v", err)
			return nil
		}
		return events
	}
	log.Println("No CME feed supplied, using sample events")
	return donki.Sample(time.Now().UTC())
}

// timeRange brackets the timeline around the event set: earliest start to
// the latest of start times and predicted arrivals.
func timeRange(events []core.CMEEvent) (time.Time, time.Time) {
	now := time.Now().UTC()
	if len(events) == 0 {
		return now.Add(-72 * time.Hour), now
	}
	min, max := events[0].StartTime, events[0].StartTime
	for _, e := range events {
		if e.StartTime.Before(min) {
			min = e.StartTime
		}
		if e.StartTime.After(max) {
			max = e.StartTime
		}
		if e.PredictedArrival != nil && e.PredictedArrival.After(max) {
			max = *e.PredictedArrival
		}
	}
	// Breathing room so the last event can propagate past its start.
	return min, max.Add(24 * time.Hour)
}

// handleInput maps native key and mouse input onto the same control surface
// the websocket clients use.
func handleInput(engine *sim.Engine, cam *render.Controller) {
	switch {
	case rl.IsKeyPressed(rl.KeyTab):
		cam.SelectMode = !cam.SelectMode
	case rl.IsKeyPressed(rl.KeySpace):
		engine.TimelineToggle()
	case rl.IsKeyPressed(rl.KeyLeft):
		engine.TimelineStep(-1)
	case rl.IsKeyPressed(rl.KeyRight):
		engine.TimelineStep(1)
	case rl.IsKeyPressed(rl.KeyOne):
		engine.TimelineSpeed(1)
	case rl.IsKeyPressed(rl.KeyTwo):
		engine.TimelineSpeed(2)
	case rl.IsKeyPressed(rl.KeyThree):
		engine.TimelineSpeed(5)
	case rl.IsKeyPressed(rl.KeyFour):
		engine.TimelineSpeed(10)
	case rl.IsKeyPressed(rl.KeyT):
		moveCamera(engine, cam, render.ViewTop, cam.Focus())
	case rl.IsKeyPressed(rl.KeyY):
		moveCamera(engine, cam, render.ViewSide, cam.Focus())
	case rl.IsKeyPressed(rl.KeyE):
		moveCamera(engine, cam, cam.View(), render.FocusEarth)
	case rl.IsKeyPressed(rl.KeyU):
		moveCamera(engine, cam, cam.View(), render.FocusSun)
	case rl.IsKeyPressed(rl.KeyX):
		engine.SelectCME("")
	case rl.IsKeyPressed(rl.KeyR):
		cam.Reset()
	case rl.IsKeyPressed(rl.KeyL):
		toggles := engine.Toggles()
		toggles.Labels = !toggles.Labels
		engine.SetToggles(toggles)
	case rl.IsKeyPressed(rl.KeyP):
		toggles := engine.Toggles()
		toggles.ExtraPlanets = !toggles.ExtraPlanets
		engine.SetToggles(toggles)
	case rl.IsKeyPressed(rl.KeyM):
		toggles := engine.Toggles()
		toggles.Moon = !toggles.Moon
		engine.SetToggles(toggles)
	case rl.IsKeyPressed(rl.KeyO):
		toggles := engine.Toggles()
		toggles.L1 = !toggles.L1
		engine.SetToggles(toggles)
	}

	if cam.SelectMode && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if id, ok := render.PickCloud(rl.GetMousePosition(), cam.Camera, engine.Clouds()); ok {
			engine.SelectCME(id)
			log.Printf("Selected CME %s for modeling", id)
		}
	}
}

// moveCamera resolves the focus body's current position before starting the
// transition.
func moveCamera(engine *sim.Engine, cam *render.Controller, view render.View, focus render.Focus) {
	focusPos := mgl64.Vec3{}
	if focus == render.FocusEarth {
		focusPos, _ = engine.System().WorldPosition(core.BodyEarth, engine.Clock().Elapsed())
	}
	cam.MoveTo(view, focus, focusPos)
}

// drainCommands applies queued websocket control messages. Runs on the frame
// loop so all engine mutation stays single-threaded.
func drainCommands(hub *server.Hub, engine *sim.Engine, cam *render.Controller, srv *server.Server, cmeFile, donkiURL string) {
	for {
		select {
		case cmd := <-hub.Commands():
			applyCommand(cmd, engine, cam, srv, cmeFile, donkiURL)
		default:
			return
		}
	}
}

func applyCommand(cmd server.Command, engine *sim.Engine, cam *render.Controller, srv *server.Server, cmeFile, donkiURL string) {
	switch cmd.Type {
	case "play":
		engine.TimelinePlay()
	case "pause":
		engine.TimelinePause()
	case "toggle":
		engine.TimelineToggle()
	case "scrub":
		engine.TimelineScrub(cmd.Value)
	case "step":
		if cmd.Value < 0 {
			engine.TimelineStep(-1)
		} else {
			engine.TimelineStep(1)
		}
	case "speed":
		engine.TimelineSpeed(cmd.Value)
	case "select":
		engine.SelectCME(cmd.ID)
	case "view", "focus":
		moveCamera(engine, cam, parseView(cmd.View, cam.View()), parseFocus(cmd.Focus, cam.Focus()))
	case "toggles":
		if cmd.Toggles != nil {
			engine.SetToggles(*cmd.Toggles)
		}
	case "timerange":
		if !cmd.Min.IsZero() && cmd.Max.After(cmd.Min) {
			engine.SetTimeRange(cmd.Min, cmd.Max)
		}
	case "reload":
		events := loadEvents(cmeFile, donkiURL)
		engine.SetCMEs(events)
		min, max := timeRange(events)
		engine.SetTimeRange(min, max)
		srv.SetData(engine.System().Bodies(), engine.CMEs())
		log.Printf("Reloaded %d CME events (data version %d)", len(events), engine.DataVersion())
	case "resetView":
		cam.Reset()
	default:
		log.Printf("Unknown control message type %q", cmd.Type)
	}
}

func parseView(s string, current render.View) render.View {
	switch strings.ToUpper(s) {
	case "TOP":
		return render.ViewTop
	case "SIDE":
		return render.ViewSide
	}
	return current
}

func parseFocus(s string, current render.Focus) render.Focus {
	switch strings.ToUpper(s) {
	case "SUN":
		return render.FocusSun
	case "EARTH":
		return render.FocusEarth
	case "NONE", "":
		return current
	}
	return current
}
