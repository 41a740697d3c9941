package fingershadow

import (
	"reflect"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the single shared GLFW window, created once and consumed
// by the input and renderer modules.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
}

// Window exposes the underlying GLFW handle for renderer backends.
func (ws *WindowState) Window() *glfw.Window {
	return ws.windowGlfw
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // wgpu owns the surface, not OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		panic(err)
	}

	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
}

// PlatformWindowModule ensures a single shared GLFW window (WindowState)
// exists as a resource. Install is idempotent: an existing WindowState is
// reused.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}
	if title == "" {
		title = "Finger Shadow"
	}
	return &PlatformWindowModule{Width: width, Height: height, Title: title}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	t := reflect.TypeOf((*WindowState)(nil)).Elem()
	if _, ok := app.resources[t]; ok {
		// Already created elsewhere; preserve the single-window invariant.
		return
	}

	app.addResources(createWindowState(m.Width, m.Height, m.Title))
	cmd.UseSystem(System(windowEventsSystem).InStage(PreUpdate))
}

func windowEventsSystem(s *WindowState, cmd *Commands) {
	glfw.PollEvents()

	s.WindowWidth, s.WindowHeight = s.windowGlfw.GetSize()

	if s.windowGlfw.ShouldClose() {
		cmd.RequestQuit()
	}
}
