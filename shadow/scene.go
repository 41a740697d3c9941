// Package shadow implements the analytic soft-shadow model of the demo:
// a capsule occluder lit by a directional cone light, evaluated per pixel
// as a closed-form spherical-cap intersection instead of a shadow map.
package shadow

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// RGBA is a straight-alpha color with components in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// SceneDescription is the raw, per-frame scene input as the caller knows it:
// unnormalized directions, the cone angle in degrees, the fade distance in
// scene units. PrepareFrame turns it into the derived quantities the
// evaluator needs.
type SceneDescription struct {
	FingerPosition  mgl32.Vec3
	FingerDirection mgl32.Vec3 // need not be unit length
	FingerLength    float32
	FingerRadius    float32

	LightPosition    mgl32.Vec3
	ConeAngleDegrees float32
	FadeDistance     float32

	Background RGBA
	Shadow     RGBA

	// ExactArcCos selects the library arc-cosine instead of the polynomial
	// approximations. Same contract, smaller error, slower per pixel.
	ExactArcCos bool
}

// Capsule is the finger occluder: the set of points within RadiusSq^0.5 of
// the Start-End segment. The radius is stored squared because the evaluator
// only ever needs the square.
type Capsule struct {
	Start    mgl32.Vec3
	End      mgl32.Vec3
	RadiusSq float32
}

// LightCone is a directional light with angular extent. Direction points
// from the occluder toward the light and is unit length. CosHalfAngle and
// HalfAngle (radians) are the two operands the cap math keeps reusing, so
// both are precomputed.
type LightCone struct {
	Direction    mgl32.Vec3
	CosHalfAngle float32
	HalfAngle    float32
}

// FadeParams governs radial attenuation of the whole effect away from the
// light's projected position. The fade distance is stored as 1/d^2 to turn
// a per-pixel division into a multiplication.
type FadeParams struct {
	LightPosition mgl32.Vec3
	InvFadeDistSq float32
}

// ArcCos maps a cosine in [-1, 1] to an angle in [0, pi]. Implementations
// must be monotonically decreasing on that range; exactness is optional.
type ArcCos func(x float32) float32

// EvaluationContext is the immutable parameter set for one frame. It is
// built once per scene-state change and then read concurrently by every
// per-pixel evaluation; nothing mutates it after PrepareFrame returns.
type EvaluationContext struct {
	Capsule    Capsule
	Light      LightCone
	Fade       FadeParams
	Background RGBA
	Shadow     RGBA

	acos    ArcCos
	acosPos ArcCos
}

// PrepareFrame normalizes a scene description into an EvaluationContext,
// doing all division and normalization once per frame rather than per pixel.
//
// It is total: a zero-length finger direction, a light coincident with the
// finger, or a zero fade distance produce non-finite values that propagate
// through evaluation instead of an error. Callers wanting finite output must
// validate those preconditions themselves.
func PrepareFrame(scene SceneDescription) EvaluationContext {
	dir := scene.FingerDirection.Mul(1 / scene.FingerDirection.Len())
	start := scene.FingerPosition
	end := start.Add(dir.Mul(scene.FingerLength))

	toLight := scene.LightPosition.Sub(scene.FingerPosition)
	lightDir := toLight.Mul(1 / toLight.Len())

	halfAngle := mgl32.DegToRad(scene.ConeAngleDegrees) / 2

	ctx := EvaluationContext{
		Capsule: Capsule{
			Start:    start,
			End:      end,
			RadiusSq: scene.FingerRadius * scene.FingerRadius,
		},
		Light: LightCone{
			Direction:    lightDir,
			CosHalfAngle: math32.Cos(halfAngle),
			HalfAngle:    halfAngle,
		},
		Fade: FadeParams{
			LightPosition: scene.LightPosition,
			InvFadeDistSq: 1 / (scene.FadeDistance * scene.FadeDistance),
		},
		Background: scene.Background,
		Shadow:     scene.Shadow,
		acos:       AcosFast,
		acosPos:    AcosFastPositive,
	}
	if scene.ExactArcCos {
		ctx.acos = math32.Acos
		ctx.acosPos = math32.Acos
	}
	return ctx
}
