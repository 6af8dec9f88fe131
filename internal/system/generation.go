package system

import (
	"time"

	coresys "github.com/towerclimb/server/internal/core/system"
	"github.com/towerclimb/server/internal/gen"
)

// GenerationSystem feeds the viewport signal into the scheduler each tick.
// Phase 2 (Generate), always before destruction.
type GenerationSystem struct {
	signals *Signals
	sched   *gen.Scheduler
}

func NewGenerationSystem(signals *Signals, sched *gen.Scheduler) *GenerationSystem {
	return &GenerationSystem{signals: signals, sched: sched}
}

func (s *GenerationSystem) Phase() coresys.Phase { return coresys.PhaseGenerate }

func (s *GenerationSystem) Update(_ time.Duration) {
	s.sched.OnViewportAdvanced(s.signals.ViewportY)
}
