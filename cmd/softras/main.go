// softras - Terminal software rasterizer
// View textured GLB models in your terminal, rendered entirely on the CPU.
//
// Controls:
//
//	Mouse drag  - Rotate model (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation
//	?           - Toggle HUD overlay (FPS, filename, poly count)
//	+/-         - Adjust zoom
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/softras/softras/pkg/math3d"
	"github.com/softras/softras/pkg/models"
	"github.com/softras/softras/pkg/render"
)

var (
	texturePath = flag.String("texture", "", "Path to texture (raw packed pixels with -texw/-texh, or PNG/JPG)")
	texWidth    = flag.Int("texw", 0, "Raw texture width in pixels")
	texHeight   = flag.Int("texh", 0, "Raw texture height in pixels")
	formatName  = flag.String("format", "rgba2222", "Pixel format: rgba2222 or rgba8888")
	wrapName    = flag.String("wrap", "clamp", "Texture wrap mode: clamp or repeat")
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	outPath     = flag.String("o", "", "Render a single frame to a PNG file and exit")
	outWidth    = flag.Int("width", 512, "Output width for -o")
	outHeight   = flag.Int("height", 512, "Output height for -o")
	fpsLogDir   = flag.String("fpslog", "", "Directory for per-CPU framerate logs")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "softras - Terminal software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: softras [options] <model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Rotate model\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFormat(name string) (render.PixelFormat, error) {
	switch strings.ToLower(name) {
	case "rgba2222":
		return render.RGBA2222, nil
	case "rgba8888":
		return render.RGBA8888, nil
	}
	return 0, fmt.Errorf("unknown pixel format %q", name)
}

func parseWrap(name string) (render.WrapMode, error) {
	switch strings.ToLower(name) {
	case "clamp":
		return render.WrapClamp, nil
	case "repeat":
		return render.WrapRepeat, nil
	}
	return 0, fmt.Errorf("unknown wrap mode %q", name)
}

// loadTexture resolves the -texture flag: raw packed pixels when -texw/-texh
// are given, a decodable image file otherwise.
func loadTexture(path string, format render.PixelFormat) (*render.Texture, error) {
	if *texWidth > 0 && *texHeight > 0 {
		return render.LoadRawTexture(path, *texWidth, *texHeight, format)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return render.TextureFromImage(img, format), nil
}

// RotationAxis tracks position and velocity for one rotation axis with spring decay
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis with harmonica spring for smooth velocity decay
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0 using spring
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds rotation with harmonica spring physics
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	return &RotationState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		Roll:  NewRotationAxis(fps),
		fps:   fps,
	}
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// HUD renders an overlay with model info and controls
type HUD struct {
	filename  string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	visible   bool
}

// NewHUD creates a new HUD
func NewHUD(filename string, polyCount int) *HUD {
	return &HUD{
		filename:  filename,
		polyCount: polyCount,
		fpsTime:   time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int) {
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

	// Always clear the HUD row (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	if !h.visible {
		return
	}

	// Top left: FPS
	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	// Top middle: filename
	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.filename, reset)

	// Top right: polygon count
	polyCol := max(width-12, 1)
	fmt.Printf("%s%s%s%s %d polys %s", moveTo(1, polyCol), bgBlack, fgCyan, bold, h.polyCount, reset)
}

func run(modelPath string) error {
	format, err := parseFormat(*formatName)
	if err != nil {
		return err
	}
	wrap, err := parseWrap(*wrapName)
	if err != nil {
		return err
	}

	// Load texture if specified
	var texture *render.Texture
	if *texturePath != "" {
		texture, err = loadTexture(*texturePath, format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load texture: %v\n", err)
		}
	}

	// Load model
	ext := strings.ToLower(filepath.Ext(modelPath))
	if ext != ".glb" && ext != ".gltf" {
		return fmt.Errorf("unsupported format: %s (use .glb)", ext)
	}
	data, embeddedImg, err := models.LoadGLBWithTexture(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	// Use embedded texture if no explicit texture and one exists
	if texture == nil && embeddedImg != nil {
		texture = render.TextureFromImage(embeddedImg, format)
	}
	// Fallback texture so untextured models still show their shape
	if texture == nil {
		texture = render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100), format)
	}
	texture.WrapU, texture.WrapV = wrap, wrap

	// Center and scale model
	data.Normalize(2.0)

	if *outPath != "" {
		return renderPNG(data, texture, format, *outPath)
	}
	return view(modelPath, data, texture, format)
}

// renderPNG renders a single fixed-pose frame offscreen and writes it as PNG.
func renderPNG(data *models.MeshData, texture *render.Texture, format render.PixelFormat, path string) error {
	camera := render.NewCamera()
	camera.Position = math3d.V3(0, 0, 5)
	camera.Aspect = float64(*outWidth) / float64(*outHeight)

	ctx, err := render.NewContext(*outWidth, *outHeight, camera, format)
	if err != nil {
		return err
	}
	mesh, err := models.Build(data, ctx.WorldToCam, texture)
	if err != nil {
		return err
	}
	render.NewRasterizer(ctx).Render(mesh)
	return ctx.SavePNG(path)
}

func view(modelPath string, data *models.MeshData, texture *render.Texture, format render.PixelFormat) error {
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

	// Each terminal cell is two stacked pixels
	camera := render.NewCamera()
	camera.Position = math3d.V3(0, 0, 5)
	camera.Aspect = float64(width) / float64(height*2)

	rctx, err := render.NewContext(width, height*2, camera, format)
	if err != nil {
		return err
	}
	rasterizer := render.NewRasterizer(rctx)

	mesh, err := models.Build(data, rctx.WorldToCam, texture)
	if err != nil {
		return err
	}

	hud := NewHUD(filepath.Base(modelPath), mesh.TriangleCount())

	var fpsLog *frameLog
	if *fpsLogDir != "" {
		fpsLog, err = newFrameLog(*fpsLogDir, format)
		if err != nil {
			return fmt.Errorf("open fps log: %w", err)
		}
		defer fpsLog.Close()
	}

	rotation := NewRotationState(*targetFPS)

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
	inputTorque := struct{ pitch, yaw, roll float64 }{}
	const torqueStrength = 3.0

	// Mouse state
	var mouseDown bool
	var lastMouseX, lastMouseY int
	cameraZ := 5.0

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				camera.Aspect = float64(width) / float64(height*2)
				newCtx, err := render.NewContext(width, height*2, camera, format)
				if err != nil {
					continue
				}
				rctx = newCtx
				rasterizer = render.NewRasterizer(rctx)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("r"):
					rotation.Reset()
					cameraZ = 5.0
					camera.Position = math3d.V3(0, 0, cameraZ)
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("space"):
					rotation.ApplyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
					)
				case ev.MatchString("+", "="):
					cameraZ = math.Max(1, cameraZ-0.5)
					camera.Position = math3d.V3(0, 0, cameraZ)
				case ev.MatchString("-", "_"):
					cameraZ = math.Min(20, cameraZ+0.5)
					camera.Position = math3d.V3(0, 0, cameraZ)
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					hud.visible = !hud.visible
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
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
					rotation.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cameraZ = math.Max(1, cameraZ-0.5)
				case uv.MouseWheelDown:
					cameraZ = math.Min(20, cameraZ+0.5)
				}
				camera.Position = math3d.V3(0, 0, cameraZ)
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
		rotation.ApplyImpulse(
			inputTorque.pitch*dt,
			inputTorque.yaw*dt,
			inputTorque.roll*dt,
		)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9

		// Update springs (harmonica handles timing internally)
		rotation.Update()

		// Model spin composed with the camera transform, applied in one pass
		transform := math3d.RotateX(rotation.Pitch.Position).
			Mul(math3d.RotateY(rotation.Yaw.Position)).
			Mul(math3d.RotateZ(rotation.Roll.Position)).
			Mul(camera.WorldToCamera())

		fb := rctx
		mesh.Retransform(transform)
		fb.Reset()
		rasterizer.Render(mesh)

		fb.Draw(term, uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height)
		if fpsLog != nil {
			fpsLog.Log(hud.fps)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
