package system

import (
	"time"

	coresys "github.com/towerclimb/server/internal/core/system"
	"github.com/towerclimb/server/internal/gen"
)

// DestructionSystem feeds the hazard signal into the reaper each tick.
// Phase 3 (Destroy), evaluated only after generation has completed.
type DestructionSystem struct {
	signals *Signals
	reaper  *gen.Reaper
}

func NewDestructionSystem(signals *Signals, reaper *gen.Reaper) *DestructionSystem {
	return &DestructionSystem{signals: signals, reaper: reaper}
}

func (s *DestructionSystem) Phase() coresys.Phase { return coresys.PhaseDestroy }

func (s *DestructionSystem) Update(_ time.Duration) {
	s.reaper.OnHazardAdvanced(s.signals.HazardY)
}
