package fingershadow

// Commands is the handle systems receive for mutating app-level state.
type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

// RequestQuit flags the shared Quit resource; the run loop stops after the
// current frame.
func (cmd *Commands) RequestQuit() {
	resourceOf[Quit](cmd.app).Requested = true
}
