package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tactile3d/fingershadow/shadow"
)

func f32At(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset : offset+4]))
}

func TestPackFrameUniformsLayout(t *testing.T) {
	ctx := shadow.PrepareFrame(shadow.SceneDescription{
		FingerPosition:   mgl32.Vec3{0.1, -0.2, -0.1},
		FingerDirection:  mgl32.Vec3{0, 0, -1},
		FingerLength:     0.9,
		FingerRadius:     0.06,
		LightPosition:    mgl32.Vec3{0, -1, -1.3},
		ConeAngleDegrees: 55,
		FadeDistance:     3.0,
		Background:       shadow.RGBA{R: 1, G: 1, B: 1, A: 1},
		Shadow:           shadow.RGBA{R: 0, G: 0, B: 0, A: 0.5},
	})

	buf := PackFrameUniforms(&ctx, 640, 480)
	if len(buf) != FrameUniformsSize {
		t.Fatalf("packed %d bytes, want %d", len(buf), FrameUniformsSize)
	}

	// capsule_start.xyz + radius^2 in w
	if got := f32At(buf, 0); got != ctx.Capsule.Start.X() {
		t.Errorf("capsule_start.x = %v, want %v", got, ctx.Capsule.Start.X())
	}
	if got := f32At(buf, 12); got != ctx.Capsule.RadiusSq {
		t.Errorf("capsule_start.w = %v, want radius^2 %v", got, ctx.Capsule.RadiusSq)
	}

	// capsule_end.xyz
	if got := f32At(buf, 24); got != ctx.Capsule.End.Z() {
		t.Errorf("capsule_end.z = %v, want %v", got, ctx.Capsule.End.Z())
	}

	// light_dir.w carries cos(half angle), light_pos.w the half angle.
	if got := f32At(buf, 44); got != ctx.Light.CosHalfAngle {
		t.Errorf("light_dir.w = %v, want %v", got, ctx.Light.CosHalfAngle)
	}
	if got := f32At(buf, 60); got != ctx.Light.HalfAngle {
		t.Errorf("light_pos.w = %v, want %v", got, ctx.Light.HalfAngle)
	}
	if got := f32At(buf, 48); got != ctx.Fade.LightPosition.X() {
		t.Errorf("light_pos.x = %v, want %v", got, ctx.Fade.LightPosition.X())
	}

	// Colors.
	if got := f32At(buf, 64); got != 1 {
		t.Errorf("background.r = %v, want 1", got)
	}
	if got := f32At(buf, 92); got != 0.5 {
		t.Errorf("shadow.a = %v, want 0.5", got)
	}

	// params: inverse fade distance squared, then surface size.
	if got := f32At(buf, 96); got != ctx.Fade.InvFadeDistSq {
		t.Errorf("params.x = %v, want %v", got, ctx.Fade.InvFadeDistSq)
	}
	if got := f32At(buf, 100); got != 640 {
		t.Errorf("params.y = %v, want 640", got)
	}
	if got := f32At(buf, 104); got != 480 {
		t.Errorf("params.z = %v, want 480", got)
	}
}
