// Package app implements the viewer: window, render loop, camera handling
// and the frame clock that drives the ball animation.
package app

import (
	"fmt"
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/exhalegfx/escherball/internal/config"
	"github.com/exhalegfx/escherball/internal/engine/camera"
	"github.com/exhalegfx/escherball/internal/engine/debug"
	"github.com/exhalegfx/escherball/internal/engine/input"
	"github.com/exhalegfx/escherball/internal/engine/lighting"
	"github.com/exhalegfx/escherball/internal/engine/renderer"
	"github.com/exhalegfx/escherball/internal/engine/window"
	"github.com/exhalegfx/escherball/internal/logger"
	"github.com/exhalegfx/escherball/internal/stage"
	"github.com/exhalegfx/escherball/internal/stage/materials"
	"github.com/exhalegfx/escherball/pkg/math"
	"github.com/veandco/go-sdl2/sdl"
)

// App is the running viewer.
type App struct {
	cfg   *config.Config
	stage *stage.Stage

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	capture  *debug.ScreenshotCapture

	orbit  *camera.OrbitCamera
	locked *camera.LockedCamera
	// free is true while the orbit camera is active instead of the locked
	// preset.
	free bool

	running  bool
	paused   bool
	animTime float64
}

// New builds the stage and opens the window.
func New(cfg *config.Config) (*App, error) {
	st, err := stage.Build(cfg)
	if err != nil {
		return nil, fmt.Errorf("building stage: %w", err)
	}
	logger.Info("stage built",
		zap.String("layout", st.Layout),
		zap.Int("steps", len(st.Steps)+len(st.Segments)),
		zap.Int("frames", len(st.Frames)),
		zap.Int("lights", st.Lights.Count),
		zap.Int("total_frames", st.TotalFrames),
	)
	if st.LightsDropped > 0 {
		logger.Warn("frame lights exceed the shader cap, extra frames stay unlit",
			zap.Int("dropped", st.LightsDropped),
			zap.Int("cap", lighting.MaxPointLights),
		)
	}

	a := &App{
		cfg:     cfg,
		stage:   st,
		orbit:   camera.NewOrbitCamera(),
		locked:  camera.NewLockedCamera(),
		free:    cfg.Camera.Mode == "orbit",
		capture: debug.NewScreenshotCapture("screenshots", "escherball"),
	}

	a.window, err = window.New(window.Config{
		Title:      "Escher Ball",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.renderer.SetLights(st.Lights, st.Key)
	a.input = input.New()

	return a, nil
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			break
		}
		a.handleEvents()
		a.moveCamera(dt)

		if !a.paused {
			a.animTime += dt
		}

		if err := a.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		a.window.SwapBuffers()

		if a.cfg.Graphics.FPSLimit > 0 {
			elapsed := time.Since(now)
			target := time.Second / time.Duration(a.cfg.Graphics.FPSLimit)
			if elapsed < target {
				time.Sleep(target - elapsed)
			}
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if a.cfg.Graphics.ShowFPS {
				a.window.SetTitle(fmt.Sprintf("Escher Ball (%d fps)", frameCount))
			}
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventQuit:
			a.running = false

		case input.EventWindowResize:
			a.renderer.Resize(e.Width, e.Height)

		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_TAB:
				a.free = !a.free
				logger.Debug("camera toggled", zap.Bool("orbit", a.free))
			case sdl.SCANCODE_SPACE:
				a.paused = !a.paused
			case sdl.SCANCODE_F12:
				a.screenshot()
			}

		case input.EventMouseMove:
			if a.free && a.input.DragHeld() {
				a.orbit.HandleDrag(float32(e.RelX), float32(e.RelY))
			}

		case input.EventMouseWheel:
			if a.free {
				a.orbit.HandleZoom(float32(e.WheelY))
			}
		}
	}
}

// moveCamera pans the orbit camera while WASD (and Q/E for height) are held.
func (a *App) moveCamera(dt float64) {
	if !a.free {
		return
	}

	var forward, right, up float32
	if a.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_E) {
		up++
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_Q) {
		up--
	}
	if forward == 0 && right == 0 && up == 0 {
		return
	}

	// Scale to a 60Hz step so pan speed does not track the frame rate.
	step := float32(dt * 60)
	a.orbit.HandleMovement(forward*step, right*step, up*step)
}

// frame returns the animation frame for the current clock, looping over the
// stage's frame range.
func (a *App) frame() int {
	f := int(a.animTime * float64(a.stage.FrameRate))
	if a.stage.TotalFrames > 0 {
		f %= a.stage.TotalFrames
	}
	return f
}

func (a *App) render() error {
	a.renderer.Begin()

	w, h := a.window.GetSize()
	aspect := float32(w) / float32(h)
	if a.free {
		proj := math.Perspective(gomath.Pi/4, aspect, 0.1, 1000)
		a.renderer.SetCamera(a.orbit.ViewMatrix(), proj)
	} else {
		a.renderer.SetCamera(a.locked.ViewMatrix(), a.locked.ProjectionMatrix(aspect, 0.1, 1000))
	}

	a.drawStaircase()
	a.drawBackdrop()
	if err := a.drawBall(); err != nil {
		return err
	}

	a.renderer.End()
	return nil
}

func (a *App) drawStaircase() {
	marble := materials.Marble()

	for _, s := range a.stage.Steps {
		model := math.Translate(s.Center.X, s.Center.Y, s.Center.Z).
			Mul(math.RotateY(radians(s.Yaw))).
			Mul(math.Scale(s.Size.X, s.Size.Y, s.Size.Z))
		a.renderer.DrawCube(model, marble)
	}

	for _, s := range a.stage.Segments {
		model := math.Translate(s.Position.X, s.Position.Y+s.StepHeight/2, s.Position.Z).
			Mul(math.RotateY(radians(s.Rotation.Y))).
			Mul(math.RotateX(radians(s.Rotation.X))).
			Mul(math.Scale(s.StepDepth, s.StepHeight, s.StepDepth))
		a.renderer.DrawCube(model, marble)
	}
}

func (a *App) drawBackdrop() {
	brick := materials.Brick()
	edge := materials.FrameEdge()
	tile := materials.BlackTile()

	for _, wall := range a.stage.Backdrop.Walls {
		model := math.Translate(wall.Position.X, wall.Position.Y+wall.Size.Y/2, wall.Position.Z).
			Mul(math.RotateY(radians(wall.Yaw))).
			Mul(math.Scale(wall.Size.X, wall.Size.Y, wall.Size.Z))
		a.renderer.DrawCube(model, brick)
	}

	for i, f := range a.stage.Frames {
		frame := math.Translate(f.Position.X, f.Position.Y, f.Position.Z).
			Mul(math.RotateY(radians(f.Yaw))).
			Mul(math.Scale(f.Width, f.Height, 0.2))
		a.renderer.DrawCube(frame, edge)

		// Canvas sits just proud of the frame face, slightly inset.
		canvasPos := f.Position.Add(f.Normal.Scale(0.12))
		canvas := math.Translate(canvasPos.X, canvasPos.Y, canvasPos.Z).
			Mul(math.RotateY(radians(f.Yaw))).
			Mul(math.Scale(f.Width*0.85, f.Height*0.85, 0.05))
		a.renderer.DrawCube(canvas, materials.Portrait(i))
	}

	floor := a.stage.Backdrop.Floor
	model := math.Translate(floor.Position.X, floor.Position.Y, floor.Position.Z).
		Mul(math.RotateY(radians(floor.Yaw))).
		Mul(math.Scale(floor.Size.X, floor.Size.Y, floor.Size.Z))
	a.renderer.DrawCube(model, tile)
}

func (a *App) drawBall() error {
	f := a.frame()
	sample, err := a.stage.BallAt(f)
	if err != nil {
		return err
	}

	r := a.stage.BallRadius
	model := math.Translate(sample.Position.X, sample.Position.Y, sample.Position.Z).
		Mul(math.Scale(r*sample.Scale.X, r*sample.Scale.Y, r*sample.Scale.Z))
	a.renderer.DrawSphere(model, materials.Ball(a.stage.Track.At(f)))
	return nil
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.capture.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up viewer resources.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func radians(deg float32) float32 {
	return deg * gomath.Pi / 180
}
