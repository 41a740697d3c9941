package fingershadow

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ScriptedPointerModule replaces the mouse with a deterministic drag: the
// pointer sweeps a Lissajous path, pressing for PressSeconds out of every
// CycleSeconds. Used by the headless renderer and tests, where no window
// exists.
type ScriptedPointerModule struct {
	PressureRiseTime float32
	PressureFallTime float32
	TrailLength      int

	CycleSeconds float32
	PressSeconds float32
}

type scriptedPointerState struct {
	elapsed float32
}

func (mod ScriptedPointerModule) Install(app *App, cmd *Commands) {
	cfg := mod
	if cfg.CycleSeconds <= 0 {
		cfg.CycleSeconds = 4
	}
	if cfg.PressSeconds <= 0 {
		cfg.PressSeconds = 3
	}

	cmd.AddResources(&Pointer{}, &scriptedPointerState{})
	cmd.UseSystem(System(func(tm *Time, st *scriptedPointerState, ptr *Pointer) {
		dt := tm.DtSeconds()
		st.elapsed += dt

		phase := st.elapsed * 2 * math32.Pi / cfg.CycleSeconds
		pos := mgl32.Vec2{
			0.5 * math32.Sin(phase),
			0.35 * math32.Sin(2*phase),
		}
		pressed := math32.Mod(st.elapsed, cfg.CycleSeconds) < cfg.PressSeconds

		ptr.advance(pos, pressed, dt, cfg.PressureRiseTime, cfg.PressureFallTime, cfg.TrailLength)
	}).InStage(PreUpdate))
}
