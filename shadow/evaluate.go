package shadow

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// capOverlapEps guards the partial-overlap division when the two caps have
// nearly equal radii.
const capOverlapEps = 1e-4

// Evaluate computes the final color at pixel (fragX, fragY) on a render
// target of the given size. Pixel coordinates are remapped to a centered,
// aspect-preserving space where the longer dimension spans roughly [-1, 1]
// and the surface is the z=0 plane.
//
// Pure function of its arguments; safe to call concurrently for every pixel
// of a frame with the same context.
func Evaluate(fragX, fragY float32, ctx *EvaluationContext, width, height float32) RGBA {
	scale := 1 / math32.Max(width, height)
	pos := mgl32.Vec3{
		(2*fragX - width) * scale,
		(2*fragY - height) * scale,
		0,
	}
	return EvaluateAt(pos, ctx)
}

// EvaluateAt evaluates the shadow field at a point already expressed in
// scene coordinates.
func EvaluateAt(pos mgl32.Vec3, ctx *EvaluationContext) RGBA {
	spine := ctx.Capsule.End.Sub(ctx.Capsule.Start)
	t := capsuleOcclusionParam(pos, ctx.Capsule.Start, spine, ctx.Light.Direction)
	center := ctx.Capsule.Start.Add(spine.Mul(t))

	occlusion := directionalOcclusionSphere(pos, center, ctx.Capsule.RadiusSq, &ctx.Light, ctx.acos, ctx.acosPos)
	attenuation := distanceFade(pos, &ctx.Fade) * occlusion

	return composite(ctx.Shadow, ctx.Background, attenuation)
}

// capsuleOcclusionParam reduces the capsule to an equivalent sphere: it
// returns the parameter t in [0, 1] of the point on the spine closest, in
// the light's angular sense, to the occlusion ray through pos. Singular when
// the cone direction is parallel to the spine; the division is left
// unguarded to match the reference shader.
func capsuleOcclusionParam(pos, start, spine, coneDir mgl32.Vec3) float32 {
	l0 := start.Sub(pos)
	a := coneDir.Dot(spine)
	t := l0.Dot(coneDir.Mul(a).Sub(spine)) / (spine.Dot(spine) - a*a)
	return mgl32.Clamp(t, 0, 1)
}

// directionalOcclusionSphere returns the fraction of the light cone blocked
// by a sphere of radiusSq at center, as seen from pos. Output is in [0, 1].
func directionalOcclusionSphere(pos, center mgl32.Vec3, radiusSq float32, cone *LightCone, acos, acosPos ArcCos) float32 {
	occluder := center.Sub(pos)
	lenSq := occluder.Dot(occluder)
	occluderDir := occluder.Mul(1 / math32.Sqrt(lenSq))

	cosPhi := occluderDir.Dot(cone.Direction)
	// Apparent angular half-size of the sphere, as a cosine.
	cosTheta := math32.Sqrt(lenSq / (radiusSq + lenSq))

	area := capsIntersection(cosTheta, cone.CosHalfAngle, cone.HalfAngle, cosPhi, acos, acosPos)
	return area / (1 - cone.CosHalfAngle)
}

// SphericalCapsIntersection approximates the normalized overlap area of two
// spherical caps on the unit sphere: one with angular radius
// acos(cosCap1), one with angular radius cap2 (whose cosine is cosCap2),
// their axes separated by acos(cosDistance). Uses the fast arc-cosine.
//
// The result lies in [0, 1-max(cosCap1, cosCap2)] and is symmetric in the
// two caps.
func SphericalCapsIntersection(cosCap1, cosCap2, cap2, cosDistance float32) float32 {
	return capsIntersection(cosCap1, cosCap2, cap2, cosDistance, AcosFast, AcosFastPositive)
}

func capsIntersection(cosCap1, cosCap2, cap2, cosDistance float32, acos, acosPos ArcCos) float32 {
	r1 := acosPos(cosCap1)
	r2 := cap2
	d := acos(cosDistance)

	if math32.Min(r1, r2) <= math32.Max(r1, r2)-d {
		// One cap entirely inside the other.
		return 1 - math32.Max(cosCap1, cosCap2)
	}
	if r1+r2 <= d {
		// No overlap.
		return 0
	}

	delta := math32.Abs(r1 - r2)
	x := 1 - mgl32.Clamp((d-delta)/math32.Max(r1+r2-delta, capOverlapEps), 0, 1)
	area := x * x * (3 - 2*x)
	return area * (1 - math32.Max(cosCap1, cosCap2))
}

// distanceFade is the radial falloff around the light's projected position:
// exactly 0 at and beyond the fade distance, smoothly ramping inside it,
// clamped away from the singularity at the light itself.
func distanceFade(pos mgl32.Vec3, fade *FadeParams) float32 {
	toLight := fade.LightPosition.Sub(pos)
	distSq := toLight.Dot(toLight)
	factor := distSq * fade.InvFadeDistSq
	smooth := math32.Max(1-factor*factor, 0)
	return smooth * smooth / math32.Max(distSq, 1e-4)
}

// composite blends shadow over background. The shadow alpha additionally
// modulates how fully the shadow can darken the background even at full
// geometric occlusion.
func composite(shadow, background RGBA, attenuation float32) RGBA {
	keep := 1 - attenuation*shadow.A
	return RGBA{
		R: shadow.R*attenuation + background.R*keep,
		G: shadow.G*attenuation + background.G*keep,
		B: shadow.B*attenuation + background.B*keep,
		A: shadow.A*attenuation + background.A*keep,
	}
}
