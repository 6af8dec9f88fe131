package system

import "math"

// Signals carries the per-tick scalar inputs the engine consumes from its
// collaborators: the viewport position (player progress) and the hazard
// boundary position (the void). Both start as NaN, meaning "no report yet",
// which the scheduler and reaper treat as a skip, not an error.
type Signals struct {
	ViewportY float64
	HazardY   float64
}

func NewSignals() *Signals {
	return &Signals{
		ViewportY: math.NaN(),
		HazardY:   math.NaN(),
	}
}
