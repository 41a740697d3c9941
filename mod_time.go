package fingershadow

import (
	"time"
)

type Time struct {
	Time  time.Time
	Dt    time.Duration
	Frame uint64
}

// DtSeconds returns the last frame delta as float32 seconds, capped so a
// stall (debugger, window drag) does not slingshot pressure or velocity.
func (t *Time) DtSeconds() float32 {
	dt := float32(t.Dt.Seconds())
	if dt > 0.1 {
		dt = 0.1
	}
	return dt
}

type TimeModule struct{}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time: time.Now(),
	})
	cmd.UseSystem(System(timeSystem).InStage(PreUpdate))
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
	timeResource.Frame++
}
