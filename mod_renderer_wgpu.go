package fingershadow

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"

	"github.com/tactile3d/fingershadow/gpu"
	"github.com/tactile3d/fingershadow/shaders"
)

// WgpuRendererModule renders the shadow field on the GPU: a fullscreen
// triangle whose fragment shader evaluates the same analytic model as the
// Go evaluator, fed one small uniform buffer per frame.
type WgpuRendererModule struct{}

type wgpuState struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface
	config   *wgpu.SurfaceConfiguration

	pipeline   *wgpu.RenderPipeline
	uniformBuf *wgpu.Buffer
	bindGroup  *wgpu.BindGroup
}

func (mod WgpuRendererModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, string(RendererWGPU))

	ws := resourceOf[WindowState](app)
	st := &wgpuState{}

	st.instance = wgpu.CreateInstance(nil)
	st.surface = st.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(ws.Window()))

	adapter, err := st.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: st.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		panic(err)
	}
	st.adapter = adapter

	st.device, err = adapter.RequestDevice(nil)
	if err != nil {
		panic(err)
	}
	st.queue = st.device.GetQueue()

	width, height := ws.Window().GetFramebufferSize()
	caps := st.surface.GetCapabilities(adapter)
	format := caps.Formats[0]

	st.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	st.surface.Configure(adapter, st.device, st.config)

	module, err := st.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Shadow VS/FS",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.ShadowWGSL},
	})
	if err != nil {
		panic(err)
	}

	st.pipeline, err = st.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Shadow Pipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		panic(err)
	}

	st.uniformBuf, err = st.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "FrameUniforms",
		Size:  gpu.FrameUniformsSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}

	st.bindGroup, err = st.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: st.pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: st.uniformBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		panic(err)
	}

	cmd.AddResources(st)

	logger := app.Logger()
	cmd.UseSystem(System(func(st *wgpuState, ws *WindowState, frame *FrameState) {
		wgpuRenderSystem(st, ws, frame, logger)
	}).InStage(Render))

	app.Logger().Infof("wgpu renderer ready (%dx%d, format %v)", width, height, format)
}

func wgpuRenderSystem(st *wgpuState, ws *WindowState, frame *FrameState, logger Logger) {
	// Track framebuffer resizes before drawing.
	w, h := ws.Window().GetFramebufferSize()
	if w <= 0 || h <= 0 {
		return // minimized
	}
	if uint32(w) != st.config.Width || uint32(h) != st.config.Height {
		st.config.Width = uint32(w)
		st.config.Height = uint32(h)
		st.surface.Configure(st.adapter, st.device, st.config)
	}

	st.queue.WriteBuffer(st.uniformBuf, 0, gpu.PackFrameUniforms(&frame.Context, st.config.Width, st.config.Height))

	nextTexture, err := st.surface.GetCurrentTexture()
	if err != nil {
		logger.Errorf("GetCurrentTexture failed: %v", err)
		return
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		logger.Errorf("CreateView failed: %v", err)
		return
	}
	defer view.Release()

	encoder, err := st.device.CreateCommandEncoder(nil)
	if err != nil {
		logger.Errorf("CreateCommandEncoder failed: %v", err)
		return
	}

	bg := frame.Context.Background
	rPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: float64(bg.R), G: float64(bg.G), B: float64(bg.B), A: float64(bg.A)},
		}},
	})
	rPass.SetPipeline(st.pipeline)
	rPass.SetBindGroup(0, st.bindGroup, nil)
	rPass.Draw(3, 1, 0, 0)
	if err := rPass.End(); err != nil {
		logger.Errorf("Render pass End failed: %v", err)
	}

	cmdBuf, err := encoder.Finish(nil)
	if err != nil {
		logger.Errorf("Encoder Finish failed: %v", err)
		return
	}
	st.queue.Submit(cmdBuf)
	st.surface.Present()
}
