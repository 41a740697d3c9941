package fingershadow

import (
	"reflect"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tactile3d/fingershadow/shadow"
)

// FrameState is the per-frame snapshot the renderers consume. Context is a
// fresh immutable value each frame; renderers only read it.
type FrameState struct {
	Context shadow.EvaluationContext
	Width   int
	Height  int
}

// SceneModule bridges pointer state to the shadow core: once per frame,
// strictly before any render system, it folds the pointer pose and pressure
// into a SceneDescription and normalizes it with PrepareFrame.
type SceneModule struct {
	Settings SceneConfig

	// Surface size used when no window exists (headless runs).
	Width, Height int
}

func (mod SceneModule) Install(app *App, cmd *Commands) {
	cfg := mod.Settings
	width, height := mod.Width, mod.Height
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}

	cmd.AddResources(&FrameState{Width: width, Height: height})
	cmd.UseSystem(System(func(ptr *Pointer, frame *FrameState) {
		frame.Context = shadow.PrepareFrame(buildScene(&cfg, ptr))
	}).InStage(PreRender))

	// Track the window size when one is present.
	if hasResource[WindowState](app) {
		cmd.UseSystem(System(func(ws *WindowState, frame *FrameState) {
			if ws.WindowWidth > 0 && ws.WindowHeight > 0 {
				frame.Width = ws.WindowWidth
				frame.Height = ws.WindowHeight
			}
		}).InStage(Update))
	}
}

// buildScene derives the raw scene description for one frame. The finger
// follows the pointer; its tilt leans into the recent drag velocity and
// relaxes back to the configured rest direction when idle. Shadow strength
// follows sqrt(pressure).
func buildScene(cfg *SceneConfig, ptr *Pointer) shadow.SceneDescription {
	rest := mgl32.Vec3{cfg.RestDirection[0], cfg.RestDirection[1], cfg.RestDirection[2]}
	lean := mgl32.Vec3{ptr.Velocity.X(), ptr.Velocity.Y(), 0}.Mul(cfg.DragTilt)
	dir := rest.Add(lean)

	shadowColor := shadow.RGBA{
		R: cfg.Shadow[0],
		G: cfg.Shadow[1],
		B: cfg.Shadow[2],
		A: cfg.Shadow[3] * math32.Sqrt(ptr.Pressure),
	}

	return shadow.SceneDescription{
		FingerPosition:   mgl32.Vec3{ptr.Position.X(), ptr.Position.Y(), cfg.FingerZ},
		FingerDirection:  dir,
		FingerLength:     cfg.FingerLength,
		FingerRadius:     cfg.FingerRadius,
		LightPosition:    mgl32.Vec3{cfg.LightPosition[0], cfg.LightPosition[1], cfg.LightPosition[2]},
		ConeAngleDegrees: cfg.ConeAngleDegrees,
		FadeDistance:     cfg.FadeDistance,
		Background:       shadow.RGBA{R: cfg.Background[0], G: cfg.Background[1], B: cfg.Background[2], A: cfg.Background[3]},
		Shadow:           shadowColor,
		ExactArcCos:      cfg.ExactArcCos,
	}
}

func hasResource[T any](app *App) bool {
	_, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	return ok
}
