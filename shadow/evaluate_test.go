package shadow

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Occlusion bounds: the cap intersection never leaves
// [0, 1-max(cosCap1, cosCap2)], and the normalized sphere occlusion never
// leaves [0, 1].
func TestCapsIntersectionBounds(t *testing.T) {
	const tol = 1e-5
	for i := 0; i <= 40; i++ {
		for j := 1; j <= 40; j++ {
			for k := 0; k <= 40; k++ {
				r1 := math32.Pi / 2 * float32(i) / 40
				r2 := math32.Pi / 2 * float32(j) / 40
				d := math32.Pi * float32(k) / 40

				area := SphericalCapsIntersection(math32.Cos(r1), math32.Cos(r2), r2, math32.Cos(d))
				upper := 1 - math32.Max(math32.Cos(r1), math32.Cos(r2))
				if area < -tol || area > upper+tol {
					t.Fatalf("area %v outside [0, %v] for r1=%v r2=%v d=%v", area, upper, r1, r2, d)
				}
			}
		}
	}
}

func TestDirectionalOcclusionBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cone := LightCone{
		Direction:    mgl32.Vec3{0, 0, 1},
		CosHalfAngle: math32.Cos(0.24),
		HalfAngle:    0.24,
	}
	for i := 0; i < 5000; i++ {
		pos := mgl32.Vec3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, 0}
		center := mgl32.Vec3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, rng.Float32() - 0.5}
		radiusSq := rng.Float32() * 0.01

		occ := directionalOcclusionSphere(pos, center, radiusSq, &cone, AcosFast, AcosFastPositive)
		if occ < -1e-5 || occ > 1+1e-5 {
			t.Fatalf("occlusion %v outside [0,1]; pos=%v center=%v rSq=%v", occ, pos, center, radiusSq)
		}
	}
}

// Full-overlap boundary: a point directly behind an occluder whose angular
// size exceeds the cone half-angle sees the cone fully blocked.
func TestFullOverlapBoundary(t *testing.T) {
	cone := LightCone{
		Direction:    mgl32.Vec3{0, 0, 1},
		CosHalfAngle: math32.Cos(0.3),
		HalfAngle:    0.3,
	}
	pos := mgl32.Vec3{0, 0, 0}
	center := mgl32.Vec3{0, 0, 0.5} // along the cone axis: cosPhi = 1
	radiusSq := float32(0.05)       // angular size well above the half-angle

	occ := directionalOcclusionSphere(pos, center, radiusSq, &cone, AcosFast, AcosFastPositive)
	if math32.Abs(occ-1) > 1e-6 {
		t.Errorf("occlusion = %v, want exactly 1 at the full-overlap boundary", occ)
	}
}

// No-overlap boundary: caps separated by more than the sum of their radii
// contribute exactly zero, with no smoothing leakage.
func TestNoOverlapBoundary(t *testing.T) {
	r1, r2, d := float32(0.2), float32(0.3), float32(1.0)
	area := SphericalCapsIntersection(math32.Cos(r1), math32.Cos(r2), r2, math32.Cos(d))
	if area != 0 {
		t.Errorf("area = %v, want exactly 0 for disjoint caps", area)
	}
}

// Symmetry: swapping the roles of the two caps yields the same area.
func TestCapsIntersectionSymmetry(t *testing.T) {
	cases := [][3]float32{
		{0.4, 0.7, 0.9},  // partial overlap
		{0.2, 0.9, 0.5},  // one inside the other
		{0.3, 0.3, 0.45}, // equal radii
		{0.2, 0.3, 1.4},  // disjoint
	}
	for _, c := range cases {
		r1, r2, d := c[0], c[1], c[2]

		// Exact strategy is symmetric to float precision.
		a := capsIntersection(math32.Cos(r1), math32.Cos(r2), r2, math32.Cos(d), math32.Acos, math32.Acos)
		b := capsIntersection(math32.Cos(r2), math32.Cos(r1), r1, math32.Cos(d), math32.Acos, math32.Acos)
		if math32.Abs(a-b) > 1e-5 {
			t.Errorf("exact: asymmetric area for r1=%v r2=%v d=%v: %v vs %v", r1, r2, d, a, b)
		}

		// Fast strategy only within the approximation error.
		a = SphericalCapsIntersection(math32.Cos(r1), math32.Cos(r2), r2, math32.Cos(d))
		b = SphericalCapsIntersection(math32.Cos(r2), math32.Cos(r1), r1, math32.Cos(d))
		if math32.Abs(a-b) > 2e-2 {
			t.Errorf("fast: asymmetric area for r1=%v r2=%v d=%v: %v vs %v", r1, r2, d, a, b)
		}
	}
}

// Monotonic fade: zero at and beyond the fade distance, non-increasing with
// distance.
func TestDistanceFade(t *testing.T) {
	fade := FadeParams{
		LightPosition: mgl32.Vec3{0, 0, -2},
		InvFadeDistSq: 1.0 / 4.0, // fade distance 2
	}

	at := func(dist float32) float32 {
		// Walk away from the light along +z; the evaluation point does not
		// need to sit on the z=0 plane for the fade math.
		pos := fade.LightPosition.Add(mgl32.Vec3{0, 0, dist})
		return distanceFade(pos, &fade)
	}

	for _, dist := range []float32{2, 2.5, 3, 10} {
		if got := at(dist); got != 0 {
			t.Errorf("attenuation at dist %v = %v, want exactly 0", dist, got)
		}
	}

	prev := at(0.1)
	for i := 2; i <= 40; i++ {
		dist := float32(i) * 0.05
		cur := at(dist)
		if cur > prev {
			t.Fatalf("fade not monotonic at dist %v: %v > %v", dist, cur, prev)
		}
		prev = cur
	}
}

// Composite identities.
func TestCompositeIdentity(t *testing.T) {
	bg := RGBA{0.9, 0.8, 0.7, 1}
	sh := RGBA{0.1, 0.1, 0.2, 1}

	if got := composite(sh, bg, 0); got != bg {
		t.Errorf("attenuation 0: got %v, want background %v", got, bg)
	}
	if got := composite(sh, bg, 1); got != sh {
		t.Errorf("attenuation 1, alpha 1: got %v, want shadow %v", got, sh)
	}
}

// End-to-end: at pressure zero the shadow alpha is zero and the evaluator
// must return the background everywhere, regardless of geometry.
func TestPressureZeroIsPureBackground(t *testing.T) {
	scene := SceneDescription{
		FingerPosition:   mgl32.Vec3{0, 0, -0.1},
		FingerDirection:  mgl32.Vec3{0.18, 0.22, -0.12},
		FingerLength:     0.9,
		FingerRadius:     0.06,
		LightPosition:    mgl32.Vec3{0, -1, -1.3},
		ConeAngleDegrees: 55, // half-angle 27.5 degrees
		FadeDistance:     3.0,
		Background:       RGBA{1, 1, 1, 1},
		Shadow:           RGBA{0, 0, 0, 0}, // alpha = sqrt(pressure) at pressure 0
	}
	ctx := PrepareFrame(scene)

	const w, h = 64, 48
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			got := Evaluate(float32(x), float32(y), &ctx, w, h)
			if got != scene.Background {
				t.Fatalf("pixel (%d,%d): got %v, want pure background", x, y, got)
			}
		}
	}
}

// Sanity: with full pressure some region of the surface actually darkens.
func TestShadowDarkensSurface(t *testing.T) {
	scene := SceneDescription{
		FingerPosition:   mgl32.Vec3{0, 0, -0.1},
		FingerDirection:  mgl32.Vec3{0.18, 0.22, -0.12},
		FingerLength:     0.9,
		FingerRadius:     0.06,
		LightPosition:    mgl32.Vec3{0, -1, -1.3},
		ConeAngleDegrees: 55,
		FadeDistance:     3.0,
		Background:       RGBA{1, 1, 1, 1},
		Shadow:           RGBA{0, 0, 0, 1},
	}
	ctx := PrepareFrame(scene)

	minR := float32(1)
	const w, h = 128, 128
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x += 2 {
			c := Evaluate(float32(x), float32(y), &ctx, w, h)
			minR = math32.Min(minR, c.R)
		}
	}
	if minR >= 0.99 {
		t.Errorf("no visible shadow anywhere: min red channel %v", minR)
	}
}

func TestEvaluateCoordinateConvention(t *testing.T) {
	ctx := PrepareFrame(testScene())

	// The render-target center maps to the scene origin on the z=0 plane.
	center := Evaluate(320, 240, &ctx, 640, 480)
	origin := EvaluateAt(mgl32.Vec3{0, 0, 0}, &ctx)
	if center != origin {
		t.Errorf("center pixel %v != origin sample %v", center, origin)
	}

	// The longer dimension spans [-1, 1]: pixel (0, h/2) maps to x = -1.
	left := Evaluate(0, 240, &ctx, 640, 480)
	want := EvaluateAt(mgl32.Vec3{-1, 0, 0}, &ctx)
	if left != want {
		t.Errorf("left-edge pixel %v != x=-1 sample %v", left, want)
	}
}
