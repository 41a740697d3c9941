// Package gpu packs per-frame shadow parameters into the byte layout the
// WGSL pipeline expects.
package gpu

import (
	"encoding/binary"
	"math"

	"github.com/tactile3d/fingershadow/shadow"
)

// FrameUniformsSize is the byte size of the FrameUniforms block in
// shaders/shadow.wgsl: seven vec4<f32>.
const FrameUniformsSize = 7 * 16

// PackFrameUniforms serializes an evaluation context for a width x height
// surface into the std140-compatible layout of the shader's FrameUniforms:
//
//	capsule_start: vec4  -- xyz start, w radius^2     offset   0
//	capsule_end:   vec4  -- xyz end                   offset  16
//	light_dir:     vec4  -- xyz dir, w cos(half)      offset  32
//	light_pos:     vec4  -- xyz pos, w half angle     offset  48
//	background:    vec4                               offset  64
//	shadow:        vec4                               offset  80
//	params:        vec4  -- x 1/fade^2, y w, z h      offset  96
func PackFrameUniforms(ctx *shadow.EvaluationContext, width, height uint32) []byte {
	buf := make([]byte, FrameUniformsSize)

	putVec4 := func(offset int, x, y, z, w float32) {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(x))
		binary.LittleEndian.PutUint32(buf[offset+4:], math.Float32bits(y))
		binary.LittleEndian.PutUint32(buf[offset+8:], math.Float32bits(z))
		binary.LittleEndian.PutUint32(buf[offset+12:], math.Float32bits(w))
	}

	cs := ctx.Capsule.Start
	ce := ctx.Capsule.End
	ld := ctx.Light.Direction
	lp := ctx.Fade.LightPosition

	putVec4(0, cs.X(), cs.Y(), cs.Z(), ctx.Capsule.RadiusSq)
	putVec4(16, ce.X(), ce.Y(), ce.Z(), 0)
	putVec4(32, ld.X(), ld.Y(), ld.Z(), ctx.Light.CosHalfAngle)
	putVec4(48, lp.X(), lp.Y(), lp.Z(), ctx.Light.HalfAngle)
	putVec4(64, ctx.Background.R, ctx.Background.G, ctx.Background.B, ctx.Background.A)
	putVec4(80, ctx.Shadow.R, ctx.Shadow.G, ctx.Shadow.B, ctx.Shadow.A)
	putVec4(96, ctx.Fade.InvFadeDistSq, float32(width), float32(height), 0)

	return buf
}
