// Package fingershadow is a small interactive demo engine: a dragged
// "finger" capsule casting an analytic soft shadow onto the render surface.
// The app framework schedules reflection-injected systems over shared
// resources; the actual shadow math lives in the shadow package.
package fingershadow

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module wires a feature into the app: it registers resources and systems
// at build time.
type Module interface {
	Install(app *App, cmd *Commands)
}

// Quit is the shared shutdown flag; any system may request it (window
// closed, frame budget reached).
type Quit struct {
	Requested bool
}

type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

// Run executes all stages in order, once per frame, until a system flags
// the Quit resource.
func (app *App) Run() {
	quit := resourceOf[Quit](app)
	for !quit.Requested {
		app.runFrame()
	}
	app.Logger().Infof("Quit requested, shutting down")
}

// RunFrames executes at most n frames; used by headless runs and tests.
func (app *App) RunFrames(n int) {
	quit := resourceOf[Quit](app)
	for frame := 0; frame < n && !quit.Requested; frame++ {
		app.runFrame()
	}
}

func (app *App) runFrame() {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}
		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// resourceOf fetches a typed resource pointer, panicking if absent.
func resourceOf[T any](app *App) *T {
	t := reflect.TypeOf((*T)(nil)).Elem()
	res, ok := app.resources[t]
	if !ok {
		panic(fmt.Sprintf("resource %s not installed", t))
	}
	return res.(*T)
}

var typeOfCommands = reflect.TypeOf(Commands{})

// callSystem invokes a system function, resolving each pointer parameter
// from the resource map (or a fresh Commands).
func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, ok := app.resources[underlyingType]; ok {
			resourceVal := reflect.ValueOf(resource)
			args[i] = reflect.NewAt(underlyingType, resourceVal.UnsafePointer())
		} else {
			panic(fmt.Sprintf("Unable to resolve system dependency.\nSystem: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(argType),
			))
		}
	}
	systemValue.Call(args)
}
