package system

import (
	"time"

	"github.com/towerclimb/server/internal/core/event"
	coresys "github.com/towerclimb/server/internal/core/system"
	"github.com/towerclimb/server/internal/world"
	"go.uber.org/zap"
)

// DiagnosticsSystem accumulates bus events and logs a world summary at a
// fixed tick interval. Phase 4 (Diagnostics).
type DiagnosticsSystem struct {
	store    *world.Store
	log      *zap.Logger
	interval int
	ticks    int

	chunksSeen int
	reapedSeen int
}

func NewDiagnosticsSystem(store *world.Store, bus *event.Bus, interval int, log *zap.Logger) *DiagnosticsSystem {
	s := &DiagnosticsSystem{
		store:    store,
		log:      log,
		interval: interval,
	}
	event.Subscribe(bus, func(ev event.ChunkGenerated) { s.chunksSeen++ })
	event.Subscribe(bus, func(ev event.PlatformsReaped) { s.reapedSeen += ev.Count })
	return s
}

func (s *DiagnosticsSystem) Phase() coresys.Phase { return coresys.PhaseDiagnostics }

func (s *DiagnosticsSystem) Update(_ time.Duration) {
	s.ticks++
	if s.ticks < s.interval {
		return
	}
	s.ticks = 0

	st := s.store.Stats()
	s.log.Info("world summary",
		zap.Int("live_platforms", st.LivePlatforms),
		zap.Int("live_chunks", st.LiveChunks),
		zap.Int("light_emitters", st.LightEmitters),
		zap.Int64("chunks_created", st.ChunksCreated),
		zap.Uint64("committed", st.TotalCommitted),
		zap.Uint64("rejected", st.TotalRejected),
		zap.Uint64("removed", st.TotalRemoved),
		zap.Float64("frontier_y", st.FrontierY),
		zap.Int("chunks_since_last", s.chunksSeen),
		zap.Int("reaped_since_last", s.reapedSeen),
	)
	s.chunksSeen = 0
	s.reapedSeen = 0
}
