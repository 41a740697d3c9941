package fingershadow

import "testing"

type MockModule struct {
	installed bool
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
}

func TestAppBuilder_DefaultStages(t *testing.T) {
	app := NewAppBuilder().Build()

	if len(app.stages) != 5 {
		t.Errorf("Expected 5 default stages, got %v", len(app.stages))
	}
	for _, stage := range app.stages {
		if _, ok := app.systems[stage.Name]; !ok {
			t.Errorf("Expected systems slot for stage %v", stage.Name)
		}
	}
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	mockModule := &MockModule{}
	builder.UseModule(mockModule)

	if len(builder.modules) != 1 {
		t.Errorf("Expected modules to contain 1 module, got %v", len(builder.modules))
	}
}

func TestAppBuilder_Build_WithModules(t *testing.T) {
	builder := NewAppBuilder()
	module := &MockModule{}
	builder.UseModule(module)

	builder.Build()

	if !module.installed {
		t.Errorf("Expected Install to be called on the module, but it was not")
	}
}

func TestAppBuilder_Build_WithMultipleModules(t *testing.T) {
	module1 := &MockModule{}
	module2 := &MockModule{}

	builder := NewAppBuilder()
	builder.UseModule(module1)
	builder.UseModule(module2)

	builder.Build()

	if !module1.installed {
		t.Errorf("Expected Install to be called on module 1, but it was not")
	}
	if !module2.installed {
		t.Errorf("Expected Install to be called on module 2, but it was not")
	}
}
