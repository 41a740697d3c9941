package fingershadow

import (
	"fmt"
	"reflect"
)

// RendererName identifies a concrete renderer module.
type RendererName string

const (
	RendererWGPU     RendererName = "wgpu"
	RendererSoftware RendererName = "software"
)

// RendererTag marks that a renderer has been installed into the App.
// Only one renderer may be installed at a time.
type RendererTag struct {
	Name string
}

// ensureSingleRenderer enforces the single-renderer invariant; installing a
// second, different renderer fails fast.
func ensureSingleRenderer(app *App, name string) {
	if app == nil {
		panic("ensureSingleRenderer: app is nil")
	}
	t := reflect.TypeOf((*RendererTag)(nil)).Elem()
	if res, ok := app.resources[t]; ok {
		tag, ok2 := res.(*RendererTag)
		if !ok2 {
			panic("RendererTag resource present with unexpected type")
		}
		if tag.Name != name {
			app.Logger().Errorf("Multiple renderers installed: %s and %s", tag.Name, name)
			panic(fmt.Sprintf("Multiple renderers installed: %s and %s", tag.Name, name))
		}
		return
	}
	app.addResources(&RendererTag{Name: name})
}
