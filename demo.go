package fingershadow

// NewDemoApp assembles the full demo from a config: logging, time, a
// pointer source, the scene bridge, and exactly one renderer backend.
func NewDemoApp(cfg Config) *App {
	builder := NewAppBuilder().UseModule(
		LoggingModule{Debug: cfg.Debug},
		TimeModule{},
	)

	switch RendererName(cfg.Renderer.Backend) {
	case RendererSoftware:
		builder.UseModule(
			ScriptedPointerModule{
				PressureRiseTime: cfg.Input.PressureRiseTime,
				PressureFallTime: cfg.Input.PressureFallTime,
				TrailLength:      cfg.Input.TrailLength,
			},
			SceneModule{
				Settings: cfg.Scene,
				Width:    cfg.Window.Width,
				Height:   cfg.Window.Height,
			},
			SoftwareRendererModule{
				OutputDir:  cfg.Renderer.OutputDir,
				FrameLimit: cfg.Renderer.FrameLimit,
				Workers:    cfg.Renderer.Workers,
			},
		)
	default:
		builder.UseModule(
			NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title),
			PointerModule{
				PressureRiseTime: cfg.Input.PressureRiseTime,
				PressureFallTime: cfg.Input.PressureFallTime,
				TrailLength:      cfg.Input.TrailLength,
			},
			SceneModule{Settings: cfg.Scene},
			WgpuRendererModule{},
		)
	}

	return builder.Build()
}
