package gen

import (
	"math"

	"go.uber.org/zap"
)

// Scheduler decides when the generator must run to stay ahead of the player.
// Level-triggered: each call generates at most one chunk, so a viewport that
// jumps far in one tick is caught up over the following ticks instead of
// stalling a single tick with bulk generation.
type Scheduler struct {
	gen          *Generator
	safeDistance float64
	log          *zap.Logger
}

func NewScheduler(gen *Generator, safeDistance float64, log *zap.Logger) *Scheduler {
	return &Scheduler{gen: gen, safeDistance: safeDistance, log: log}
}

// OnViewportAdvanced compares the viewport position against the generation
// frontier and triggers one chunk when the remaining headroom falls under
// the safe spawn distance. A non-finite position means the collaborator had
// nothing to report this tick; no generation happens.
func (s *Scheduler) OnViewportAdvanced(viewportY float64) {
	if math.IsNaN(viewportY) || math.IsInf(viewportY, 0) {
		return
	}
	frontier := s.gen.Cursor().NextChunkStartY
	if viewportY-s.safeDistance <= frontier {
		s.gen.GenerateChunk()
	}
}
