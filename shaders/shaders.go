// Package shaders exposes the WGSL sources as embedded strings.
package shaders

import (
	_ "embed"
)

// ShadowWGSL is the fullscreen-triangle pass evaluating the capsule
// soft-shadow field per fragment. It must stay in lockstep with the Go
// evaluator in the shadow package; the uniform layout is packed by
// gpu.PackFrameUniforms.
//
//go:embed shadow.wgsl
var ShadowWGSL string
