package system

import (
	"math"
	"time"

	"github.com/towerclimb/server/internal/config"
	coresys "github.com/towerclimb/server/internal/core/system"
)

// AutopilotSystem simulates the two external collaborators towerd has no
// client for: the viewport climbs at a steady rate and the void chases a
// fixed distance below it. Phase 1 (Input). In an embedded build the host
// game writes Signals directly and this system is simply not registered.
type AutopilotSystem struct {
	signals   *Signals
	climbRate float64
	hazardLag float64
	startY    float64
	primed    bool
}

func NewAutopilotSystem(signals *Signals, cfg config.AutopilotConfig, startY float64) *AutopilotSystem {
	return &AutopilotSystem{
		signals:   signals,
		climbRate: cfg.ClimbRate,
		hazardLag: cfg.HazardLag,
		startY:    startY,
	}
}

func (s *AutopilotSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *AutopilotSystem) Update(_ time.Duration) {
	if !s.primed || math.IsNaN(s.signals.ViewportY) {
		s.signals.ViewportY = s.startY
		s.primed = true
	} else {
		s.signals.ViewportY -= s.climbRate
	}
	s.signals.HazardY = s.signals.ViewportY + s.hazardLag
}
