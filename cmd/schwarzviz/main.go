// schwarzviz - Terminal Schwarzschild Black-Hole Viewer
// Orbit a wireframe rendering of a Schwarzschild black hole in your terminal.
//
// The camera lives in Schwarzschild coordinates (r, phi, theta) around the
// hole and every frame converts its pose to rectangular coordinates through
// pkg/spacetime. Geometrized units, G = c = 1.
//
// Controls:
//
//	Mouse drag  - Orbit (azimuth/polar angle)
//	Scroll      - Dolly in/out (radial coordinate)
//	W/S         - Orbit toward the poles
//	A/D         - Orbit in azimuth
//	+/-         - Dolly in/out
//	Space       - Apply random orbital impulse
//	R           - Reset pose
//	?           - Toggle HUD overlay (pose readout, FPS)
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/polarwander/schwarzviz/pkg/geom"
	"github.com/polarwander/schwarzviz/pkg/render"
	"github.com/polarwander/schwarzviz/pkg/scene"
	"github.com/polarwander/schwarzviz/pkg/spacetime"
)

var (
	mass       = flag.Float64("mass", 1, "Black hole mass M (geometrized units, rs = 2M)")
	targetFPS  = flag.Int("fps", 60, "Target FPS")
	bgColor    = flag.String("bg", "5,5,12", "Background color (R,G,B)")
	starCount  = flag.Int("stars", 400, "Number of background stars (0 disables)")
	starSeed   = flag.Int64("star-seed", 1, "Seed for the star placement")
	showDisk   = flag.Bool("disk", true, "Draw the accretion disk rings")
	modelPath  = flag.String("model", "", "Optional overlay model (.glb/.gltf) orbiting the hole")
	snapshot   = flag.String("snapshot", "", "Render a single frame to this PNG and exit")
	snapWidth  = flag.Int("width", 800, "Snapshot width in pixels")
	snapHeight = flag.Int("height", 500, "Snapshot height in pixels")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "schwarzviz - Terminal Schwarzschild Black-Hole Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: schwarzviz [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Orbit the hole\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Dolly in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Orbit\n")
		fmt.Fprintf(os.Stderr, "  +/-         - Dolly\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random orbital impulse\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset pose\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// viewConfig bundles everything derived from the flags.
type viewConfig struct {
	rs      float64 // Schwarzschild radius, 2M
	bg      render.Color
	world   *scene.Scene
	overlay *scene.Overlay
}

func buildWorld() (*viewConfig, error) {
	cfg := &viewConfig{rs: 2 * *mass}

	var bgR, bgG, bgB uint8 = 5, 5, 12
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)
	cfg.bg = render.RGB(bgR, bgG, bgB)

	cfg.world = scene.NewScene()
	cfg.world.AddLines(scene.Horizon(cfg.rs, 7, 12))
	cfg.world.AddLines(scene.PhotonSphere(cfg.rs, 64))
	if *showDisk {
		cfg.world.AddLines(scene.AccretionDisk(cfg.rs, 3, 6, 4, 64))
	}
	if *starCount > 0 {
		cfg.world.AddPoints(scene.Starfield(*starCount, 250*cfg.rs, *starSeed))
	}

	if *modelPath != "" {
		overlay, err := scene.LoadOverlayGLB(*modelPath, 2*cfg.rs)
		if err != nil {
			return nil, fmt.Errorf("load overlay model: %w", err)
		}
		cfg.overlay = overlay
	}

	return cfg, nil
}

// newCamera creates the viewer camera at the default pose for this mass.
func newCamera(cfg *viewConfig) *render.Camera {
	camera := render.NewCamera(8 * cfg.rs)
	camera.SetFOV(math.Pi / 3)
	camera.SetClipPlanes(0.05*cfg.rs, 600*cfg.rs)
	return camera
}

// drawFrame renders one frame of the world into the framebuffer.
func drawFrame(cfg *viewConfig, camera *render.Camera, fb *render.Framebuffer) {
	fb.Clear(cfg.bg)
	wf := render.NewWireframe(camera, fb)
	cfg.world.Draw(wf)

	if cfg.overlay != nil {
		// The overlay circles the hole on the equator; its azimuth
		// advances with coordinate time.
		phi := 0.2 * camera.T
		pos := spacetime.RectFromSchwarzschild(10*cfg.rs, phi, math.Pi/2, camera.T)
		transform := geom.Translate(geom.Spatial(pos)).Mul(geom.RotateZ(phi))
		cfg.overlay.Draw(wf, transform, render.ColorOverlay)
	}
}

func renderSnapshot(cfg *viewConfig) error {
	camera := newCamera(cfg)
	camera.SetAspectRatio(float64(*snapWidth) / float64(*snapHeight))
	// A slightly raised vantage reads better in a still image.
	camera.SetPose(8*cfg.rs, 0, math.Pi/2.6)

	fb := render.NewFramebuffer(*snapWidth, *snapHeight)
	drawFrame(cfg, camera, fb)

	if err := fb.SavePNG(*snapshot); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%dx%d)\n", *snapshot, *snapWidth, *snapHeight)
	return nil
}

// orbitAxis tracks one pose velocity with spring decay.
type orbitAxis struct {
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// newOrbitAxis creates an axis with a harmonica spring for smooth velocity decay.
func newOrbitAxis(fps int) orbitAxis {
	return orbitAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update returns the velocity to apply this frame and decays it toward 0.
func (a *orbitAxis) Update() float64 {
	v := a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
	return v
}

// orbitState holds the three pose velocities.
type orbitState struct {
	Phi, Theta, Radial orbitAxis
	fps                int
}

func newOrbitState(fps int) *orbitState {
	return &orbitState{
		Phi:    newOrbitAxis(fps),
		Theta:  newOrbitAxis(fps),
		Radial: newOrbitAxis(fps),
		fps:    fps,
	}
}

// Apply advances the camera pose by the spring-decayed velocities.
func (o *orbitState) Apply(camera *render.Camera) {
	camera.Orbit(o.Phi.Update(), o.Theta.Update())
	if dr := o.Radial.Update(); dr != 0 {
		camera.Dolly(dr)
	}
}

func (o *orbitState) Impulse(dPhi, dTheta, dR float64) {
	o.Phi.Velocity += dPhi
	o.Theta.Velocity += dTheta
	o.Radial.Velocity += dR
}

func (o *orbitState) Reset() {
	o.Phi = newOrbitAxis(o.fps)
	o.Theta = newOrbitAxis(o.fps)
	o.Radial = newOrbitAxis(o.fps)
}

// hud renders the pose readout overlay directly to the terminal.
type hud struct {
	rs        float64
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func newHUD(rs float64) *hud {
	return &hud{rs: rs, fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *hud) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay.
func (h *hud) Render(width, height int, camera *render.Camera, show bool) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if !show {
		return
	}

	// Top left: FPS
	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	// Top middle: title
	title := "schwarzviz"
	titleCol := max((width-len(title)-2)/2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, title, reset)

	// Bottom: Schwarzschild pose of the camera and the coordinate time
	pose := fmt.Sprintf("r=%.2f rs   phi=%.2f   theta=%.2f   t=%.1f",
		camera.R/h.rs, camera.Phi, camera.Theta, camera.T)
	fmt.Printf("%s%s%s %s %s", moveTo(height, 1), bgBlack, fgCyan, pose, reset)
}

func run() error {
	cfg, err := buildWorld()
	if err != nil {
		return err
	}

	if *snapshot != "" {
		return renderSnapshot(cfg)
	}

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	// Create renderer
	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	camera := newCamera(cfg)
	camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

	orbit := newOrbitState(*targetFPS)
	poseHUD := newHUD(cfg.rs)
	showHUD := true

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Input state
	inputTorque := struct{ phi, theta float64 }{}
	const torqueStrength = 2.0
	dollyStep := 0.5 * cfg.rs

	// Mouse state
	var mouseDown bool
	var lastMouseX, lastMouseY int

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				fb = render.NewFramebuffer(fbWidth, fbHeight)
				camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("r"):
					orbit.Reset()
					camera.SetPose(8*cfg.rs, 0, math.Pi/2)
				case ev.MatchString("w", "up"):
					inputTorque.theta = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.theta = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.phi = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.phi = torqueStrength
				case ev.MatchString("space"):
					orbit.Impulse(
						(rand.Float64()-0.5)*1.0,
						(rand.Float64()-0.5)*0.5,
						0,
					)
				case ev.MatchString("+", "="):
					camera.Dolly(-dollyStep)
				case ev.MatchString("-", "_"):
					camera.Dolly(dollyStep)
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					showHUD = !showHUD
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.theta = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.phi = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					orbit.Impulse(float64(dx)*0.02, float64(dy)*0.02, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					camera.Dolly(-dollyStep)
				case uv.MouseWheelDown:
					camera.Dolly(dollyStep)
				}
			}
		}
	}()

	// Main loop
	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		// Apply input torque and decay it (key release events unreliable)
		orbit.Impulse(inputTorque.phi*dt, inputTorque.theta*dt, 0)
		inputTorque.phi *= 0.9
		inputTorque.theta *= 0.9

		// Advance the pose (harmonica handles spring timing internally)
		orbit.Apply(camera)
		camera.AdvanceTime(dt)

		// Render
		drawFrame(cfg, camera, fb)

		// Display
		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		// HUD overlay (always update FPS, render clears lines when HUD off)
		poseHUD.UpdateFPS()
		poseHUD.Render(width, height, camera, showHUD)

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
