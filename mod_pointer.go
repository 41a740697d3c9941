package fingershadow

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Stroke is one continuous drag: a uuid-tagged trail of recent positions in
// scene coordinates.
type Stroke struct {
	ID     string
	Points []mgl32.Vec2
}

// Pointer is the per-frame pointer state in the evaluator's coordinate
// space: centered, aspect-corrected, the longer window axis spanning
// roughly [-1, 1].
type Pointer struct {
	Position mgl32.Vec2
	Velocity mgl32.Vec2 // scene units per second

	Pressed      bool
	JustPressed  bool
	JustReleased bool

	// Pressure is synthesized: desktop mice have no pressure axis, so it
	// ramps toward 1 while the button is held and decays after release.
	Pressure float32

	Stroke Stroke
}

// advance folds one frame of raw input into the pointer state. Split out
// from the glfw system so scripted playback and tests share the exact
// same behavior.
func (p *Pointer) advance(pos mgl32.Vec2, pressed bool, dt, riseTime, fallTime float32, trailLen int) {
	p.JustPressed = pressed && !p.Pressed
	p.JustReleased = !pressed && p.Pressed
	p.Pressed = pressed

	if dt > 0 {
		p.Velocity = pos.Sub(p.Position).Mul(1 / dt)
	}
	p.Position = pos

	if pressed {
		if riseTime > 0 {
			p.Pressure += dt / riseTime
		} else {
			p.Pressure = 1
		}
	} else {
		if fallTime > 0 {
			p.Pressure -= dt / fallTime
		} else {
			p.Pressure = 0
		}
	}
	p.Pressure = mgl32.Clamp(p.Pressure, 0, 1)

	if p.JustPressed {
		p.Stroke = Stroke{
			ID:     uuid.NewString(),
			Points: []mgl32.Vec2{pos},
		}
	} else if pressed && len(p.Stroke.Points) > 0 {
		last := p.Stroke.Points[len(p.Stroke.Points)-1]
		if pos.Sub(last).Len() > 1e-3 {
			p.Stroke.Points = append(p.Stroke.Points, pos)
			if trailLen > 0 && len(p.Stroke.Points) > trailLen {
				p.Stroke.Points = p.Stroke.Points[len(p.Stroke.Points)-trailLen:]
			}
		}
	}
}

// pointerNDC remaps pixel cursor coordinates to the centered
// aspect-corrected space used by the shadow evaluator.
func pointerNDC(mx, my float64, width, height int) mgl32.Vec2 {
	m := float32(max(width, height))
	if m <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{
		(2*float32(mx) - float32(width)) / m,
		(2*float32(my) - float32(height)) / m,
	}
}

// PointerModule tracks the mouse as a touch surrogate.
type PointerModule struct {
	PressureRiseTime float32
	PressureFallTime float32
	TrailLength      int
}

func (mod PointerModule) Install(app *App, cmd *Commands) {
	cfg := mod
	cmd.AddResources(&Pointer{})
	cmd.UseSystem(System(func(ws *WindowState, tm *Time, ptr *Pointer) {
		mx, my := ws.windowGlfw.GetCursorPos()
		pos := pointerNDC(mx, my, ws.WindowWidth, ws.WindowHeight)
		pressed := ws.windowGlfw.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press

		ptr.advance(pos, pressed, tm.DtSeconds(), cfg.PressureRiseTime, cfg.PressureFallTime, cfg.TrailLength)
	}).InStage(PreUpdate))
}
