package fingershadow

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config collects everything the demo reads at startup. All fields have
// working defaults; a TOML file may override any subset.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Scene    SceneConfig    `toml:"scene"`
	Input    InputConfig    `toml:"input"`
	Renderer RendererConfig `toml:"renderer"`
	Debug    bool           `toml:"debug"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// SceneConfig describes the static part of the scene; the finger pose is
// driven per frame by the pointer.
type SceneConfig struct {
	FingerZ       float32    `toml:"finger_z"`
	FingerLength  float32    `toml:"finger_length"`
	FingerRadius  float32    `toml:"finger_radius"`
	RestDirection [3]float32 `toml:"rest_direction"`
	DragTilt      float32    `toml:"drag_tilt"`

	LightPosition    [3]float32 `toml:"light_position"`
	ConeAngleDegrees float32    `toml:"cone_angle_degrees"`
	FadeDistance     float32    `toml:"fade_distance"`

	Background [4]float32 `toml:"background"`
	Shadow     [4]float32 `toml:"shadow"`

	ExactArcCos bool `toml:"exact_arccos"`
}

type InputConfig struct {
	// Seconds for synthesized pressure to ramp to 1 while pressed, and back
	// to 0 after release.
	PressureRiseTime float32 `toml:"pressure_rise_time"`
	PressureFallTime float32 `toml:"pressure_fall_time"`
	TrailLength      int     `toml:"trail_length"`
}

type RendererConfig struct {
	// Backend is "wgpu" (on-screen) or "software" (headless PNG frames).
	Backend    string `toml:"backend"`
	OutputDir  string `toml:"output_dir"`
	FrameLimit int    `toml:"frame_limit"`
	Workers    int    `toml:"workers"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Finger Shadow",
		},
		Scene: SceneConfig{
			FingerZ:          -0.1,
			FingerLength:     0.9,
			FingerRadius:     0.06,
			RestDirection:    [3]float32{0.18, 0.22, -0.12},
			DragTilt:         0.5,
			LightPosition:    [3]float32{0, -1, -1.3},
			ConeAngleDegrees: 55,
			FadeDistance:     3.0,
			Background:       [4]float32{1, 1, 1, 1},
			Shadow:           [4]float32{0, 0, 0, 1},
		},
		Input: InputConfig{
			PressureRiseTime: 0.15,
			PressureFallTime: 0.25,
			TrailLength:      64,
		},
		Renderer: RendererConfig{
			Backend:    "wgpu",
			OutputDir:  "frames",
			FrameLimit: 120,
		},
	}
}

// LoadConfig reads a TOML file over the defaults. A missing file is an
// error; a partial file keeps defaults for absent keys.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
