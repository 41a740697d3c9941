package shadow

import "github.com/chewxy/math32"

// Polynomial arc-cosine approximations (Eberly's degree-1 minimax form).
// Absolute error is about 9e-3 rad, which is invisible in a penumbra but
// roughly 4x cheaper than the library Acos on the hot per-pixel path.

// AcosFastPositive approximates acos(x) for x in [0, 1].
func AcosFastPositive(x float32) float32 {
	p := -0.1565827*x + 1.570796
	return p * math32.Sqrt(1-x)
}

// AcosFast approximates acos(x) for x in [-1, 1], range [0, pi].
func AcosFast(x float32) float32 {
	y := math32.Abs(x)
	p := (-0.1565827*y + 1.570796) * math32.Sqrt(1-y)
	if x >= 0 {
		return p
	}
	return math32.Pi - p
}
