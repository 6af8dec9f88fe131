package gen

import (
	"math"

	"github.com/towerclimb/server/internal/core/event"
	"github.com/towerclimb/server/internal/world"
	"go.uber.org/zap"
)

// Reaper retires platforms the rising void has passed. It is the only
// component that removes platforms during normal operation; empty chunk
// records are pruned by the store as their last member goes.
type Reaper struct {
	store  *world.Store
	offset float64 // reap threshold trails the void by this much
	bus    *event.Bus
	log    *zap.Logger
}

func NewReaper(store *world.Store, offset float64, bus *event.Bus, log *zap.Logger) *Reaper {
	return &Reaper{store: store, offset: offset, bus: bus, log: log}
}

// OnHazardAdvanced sweeps everything below the destruction threshold. The
// void rises (hazardY decreases); platforms whose center Y is greater than
// hazardY + offset are behind it and get removed exactly once. Sweeping
// again without boundary movement removes nothing. A non-finite position is
// ignored for the tick.
func (r *Reaper) OnHazardAdvanced(hazardY float64) {
	if math.IsNaN(hazardY) || math.IsInf(hazardY, 0) {
		return
	}
	threshold := hazardY + r.offset
	doomed := r.store.Query(func(p *world.Platform) bool {
		return p.Y > threshold
	})
	if len(doomed) == 0 {
		return
	}
	for _, id := range doomed {
		r.store.Remove(id)
	}
	if r.bus != nil {
		event.Emit(r.bus, event.PlatformsReaped{
			Count:     len(doomed),
			Threshold: threshold,
		})
	}
	r.log.Debug("platforms reaped",
		zap.Int("count", len(doomed)),
		zap.Float64("threshold", threshold),
	)
}
