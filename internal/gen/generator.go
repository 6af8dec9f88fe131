package gen

import (
	"math/rand"

	"github.com/towerclimb/server/internal/config"
	"github.com/towerclimb/server/internal/core/event"
	"github.com/towerclimb/server/internal/data"
	"github.com/towerclimb/server/internal/world"
	"go.uber.org/zap"
)

// Starting platform geometry: a deterministic full-width foothold so the
// player always spawns on solid ground regardless of RNG.
const (
	startPlatformSideMargin = 20  // per side, so width = worldWidth - 40
	startPlatformRaise      = 100 // center sits this far above the viewport bottom
)

// Cursor is the generator's explicit mutable state. NextChunkStartY strictly
// decreases as the world extends upward. LastCandidateY is the absolute Y of
// the most recent candidate slot; the walk resumes from it across chunk
// boundaries so the gap over a seam is a single draw, never a chunk restart.
type Cursor struct {
	NextChunkStartY float64
	ChunksGenerated int
	LastPlacedX     float64
	LastCandidateY  float64
}

// Generator walks vertical spans and turns policy output into committed
// platforms. It is the only component that creates platforms.
type Generator struct {
	store  *world.Store
	policy *Policy
	themes *data.ThemeTable
	bus    *event.Bus
	log    *zap.Logger

	worldCfg    config.WorldConfig
	platformCfg config.PlatformConfig
	chunkHeight float64

	cursor Cursor
}

func NewGenerator(
	store *world.Store,
	policy *Policy,
	themes *data.ThemeTable,
	bus *event.Bus,
	worldCfg config.WorldConfig,
	platformCfg config.PlatformConfig,
	chunkHeight float64,
	log *zap.Logger,
) *Generator {
	return &Generator{
		store:       store,
		policy:      policy,
		themes:      themes,
		bus:         bus,
		log:         log,
		worldCfg:    worldCfg,
		platformCfg: platformCfg,
		chunkHeight: chunkHeight,
	}
}

// Cursor returns a copy of the generation cursor.
func (g *Generator) Cursor() Cursor { return g.cursor }

// GenerateStartingPlatform places the guaranteed first foothold: full
// viewport width minus a small margin, fixed offset above the viewport's
// bottom edge, always solid, never a light emitter. It bypasses the width
// randomization and light roll entirely and primes the cursor.
func (g *Generator) GenerateStartingPlatform() world.PlatformID {
	x := g.worldCfg.Width / 2
	y := g.worldCfg.Height - startPlatformRaise
	width := g.worldCfg.Width - 2*startPlatformSideMargin

	ch := g.store.NewChunk(g.themes.Pick(), y, y)
	id, ok := g.store.TryCommit(x, y, width, g.platformCfg.Height, false, false, ch.ID)
	if !ok {
		// Only possible if the engine was primed twice; the existing
		// foothold already satisfies the guarantee.
		g.log.Warn("starting platform rejected, foothold already present")
		g.store.PruneIfEmpty(ch.ID)
	}

	g.cursor.NextChunkStartY = y
	g.cursor.LastPlacedX = x
	g.cursor.LastCandidateY = y
	g.store.NoteFrontier(y)
	return id
}

// GenerateChunk extends the world by one chunk: from the cursor it walks
// upward (Y decreasing) until the span is exhausted, committing one
// candidate per step. A rejected candidate is skipped, not retried: the Y
// advance already happened, so the chunk simply comes out sparser. This
// bounds the work per chunk regardless of how hostile the tuning constants
// are.
func (g *Generator) GenerateChunk() {
	startY := g.cursor.NextChunkStartY
	endY := startY - g.chunkHeight
	chunkIdx := g.cursor.ChunksGenerated

	ch := g.store.NewChunk(g.themes.Pick(), startY, endY)

	y := g.cursor.LastCandidateY
	prevX := g.cursor.LastPlacedX
	placed, rejected := 0, 0
	for {
		next := y - g.policy.NextVerticalGap()
		if next <= endY {
			// The crossing draw is discarded; the next chunk redraws from
			// the last candidate so the seam gap is still a single draw.
			break
		}
		y = next
		width := g.platformCfg.MinWidth + rand.Float64()*(g.platformCfg.MaxWidth-g.platformCfg.MinWidth)
		x := g.policy.ClampX(prevX, prevX+g.policy.NextHorizontalOffset(prevX, y, chunkIdx), width/2)
		light := rand.Float64() < g.platformCfg.LightChance
		wantCoin := rand.Float64() < g.platformCfg.CoinChance

		if _, ok := g.store.TryCommit(x, y, width, g.platformCfg.Height, light, wantCoin, ch.ID); ok {
			prevX = x
			placed++
		} else {
			rejected++
		}
	}

	if placed == 0 {
		g.store.PruneIfEmpty(ch.ID)
	}

	g.cursor.NextChunkStartY = endY
	g.cursor.ChunksGenerated++
	g.cursor.LastPlacedX = prevX
	g.cursor.LastCandidateY = y
	g.store.NoteFrontier(endY)

	if g.bus != nil {
		event.Emit(g.bus, event.ChunkGenerated{
			ChunkID:  ch.ID,
			Theme:    ch.Theme,
			StartY:   startY,
			EndY:     endY,
			Placed:   placed,
			Rejected: rejected,
		})
	}
	g.log.Debug("chunk generated",
		zap.Int64("chunk", ch.ID),
		zap.String("theme", ch.Theme),
		zap.Float64("start_y", startY),
		zap.Float64("end_y", endY),
		zap.Int("placed", placed),
		zap.Int("rejected", rejected),
	)
}
