package world

import (
	"math"

	"github.com/towerclimb/server/internal/geom"
	"go.uber.org/zap"
)

// Store owns the authoritative collection of live platforms and chunk
// records. Membership is mutated only through TryCommit and Remove; every
// other component reads. Single-goroutine access only (game loop).
type Store struct {
	pool      *idPool
	platforms map[PlatformID]*Platform
	chunks    map[int64]*Chunk

	hook DecorationHook
	log  *zap.Logger

	minVisibleWidth float64
	maxLive         int // 0 = unlimited

	nextChunkID int64
	commitSeq   uint64

	chunksCreated  int64
	totalCommitted uint64
	totalRejected  uint64
	totalRemoved   uint64
	lightEmitters  int
	frontierY      float64
}

// NewStore creates an empty store. hook may be nil (no decorations).
func NewStore(minVisibleWidth float64, maxLive int, hook DecorationHook, log *zap.Logger) *Store {
	return &Store{
		pool:            newIDPool(),
		platforms:       make(map[PlatformID]*Platform, 256),
		chunks:          make(map[int64]*Chunk, 16),
		hook:            hook,
		log:             log,
		minVisibleWidth: minVisibleWidth,
		maxLive:         maxLive,
		nextChunkID:     1,
		frontierY:       math.NaN(),
	}
}

// NewChunk registers a chunk record for the span [startY, endY) and returns
// it. Chunk IDs are unique for the process lifetime.
func (s *Store) NewChunk(theme string, startY, endY float64) *Chunk {
	ch := &Chunk{
		ID:         s.nextChunkID,
		Theme:      theme,
		StartY:     startY,
		EndY:       endY,
		CreatedSeq: s.commitSeq,
	}
	s.nextChunkID++
	s.chunksCreated++
	s.chunks[ch.ID] = ch
	return ch
}

// TryCommit validates a candidate platform and stores it. Returns the new ID
// and true on success. On any rejection (bad geometry, store full, AABB
// overlap with a live platform) it returns false and commits nothing; the
// generator skips the slot rather than retrying.
func (s *Store) TryCommit(x, y, width, height float64, light, wantCoin bool, chunkID int64) (PlatformID, bool) {
	if !finite(x) || !finite(y) || !finite(width) || !finite(height) {
		s.reject("non-finite geometry", x, y, width)
		return 0, false
	}
	if width < s.minVisibleWidth || height <= 0 {
		s.reject("degenerate size", x, y, width)
		return 0, false
	}
	ch, ok := s.chunks[chunkID]
	if !ok {
		s.reject("unknown chunk", x, y, width)
		return 0, false
	}
	if s.maxLive > 0 && len(s.platforms) >= s.maxLive {
		s.reject("store full", x, y, width)
		return 0, false
	}

	bounds := geom.FromCenter(x, y, width, height)
	for _, other := range s.platforms {
		if bounds.Overlaps(other.Bounds) {
			s.reject("collision", x, y, width)
			return 0, false
		}
	}

	s.commitSeq++
	p := &Platform{
		ID:           s.pool.Create(),
		X:            x,
		Y:            y,
		Width:        width,
		Height:       height,
		Bounds:       bounds,
		LightEmitter: light,
		ChunkID:      chunkID,
		CreatedSeq:   s.commitSeq,
	}
	s.platforms[p.ID] = p
	ch.Members = append(ch.Members, p.ID)
	s.totalCommitted++
	if light {
		s.lightEmitters++
	}

	if s.hook != nil {
		p.Handles = s.hook(PlatformView{
			ID:           p.ID,
			X:            p.X,
			Y:            p.Y,
			Width:        p.Width,
			Height:       p.Height,
			LightEmitter: p.LightEmitter,
			WantCoin:     wantCoin,
			Theme:        ch.Theme,
			ChunkID:      ch.ID,
		})
	}
	return p.ID, true
}

// Remove retires a platform: decoration handles are released first (they may
// own external resources), then the platform leaves its chunk's member list
// and the live index. Removing an already-removed ID is a no-op, so
// overlapping sweeps and teardown races are harmless.
func (s *Store) Remove(id PlatformID) bool {
	if id.IsZero() || !s.pool.Alive(id) {
		return false
	}
	p := s.platforms[id]
	if p == nil {
		return false
	}
	for _, h := range p.Handles {
		h.Release()
	}
	p.Handles = nil

	if ch := s.chunks[p.ChunkID]; ch != nil {
		for i, mid := range ch.Members {
			if mid == id {
				ch.Members = append(ch.Members[:i], ch.Members[i+1:]...)
				break
			}
		}
		if len(ch.Members) == 0 {
			delete(s.chunks, ch.ID)
		}
	}

	delete(s.platforms, id)
	s.pool.Destroy(id)
	s.totalRemoved++
	if p.LightEmitter {
		s.lightEmitters--
	}
	return true
}

// PruneIfEmpty drops a chunk record that has no members. Remove prunes a
// chunk as its last member goes, but a chunk whose every candidate was
// rejected never gets a Remove; the generator prunes those here.
func (s *Store) PruneIfEmpty(chunkID int64) bool {
	ch := s.chunks[chunkID]
	if ch == nil || len(ch.Members) > 0 {
		return false
	}
	delete(s.chunks, chunkID)
	return true
}

// Get returns a live platform, or nil.
func (s *Store) Get(id PlatformID) *Platform {
	return s.platforms[id]
}

// Chunk returns a live chunk record, or nil.
func (s *Store) Chunk(id int64) *Chunk {
	return s.chunks[id]
}

// Query returns the IDs of live platforms matching the predicate.
func (s *Store) Query(pred func(*Platform) bool) []PlatformID {
	var out []PlatformID
	for id, p := range s.platforms {
		if pred(p) {
			out = append(out, id)
		}
	}
	return out
}

// ListLive returns read-only summaries of every live platform, for the
// physics and rendering collaborators.
func (s *Store) ListLive() []PlatformSummary {
	out := make([]PlatformSummary, 0, len(s.platforms))
	for _, p := range s.platforms {
		out = append(out, PlatformSummary{
			ID:           p.ID,
			Bounds:       p.Bounds,
			LightEmitter: p.LightEmitter,
		})
	}
	return out
}

// NoteFrontier records the highest generated Y (lowest value, world grows
// toward -Y). Diagnostics only.
func (s *Store) NoteFrontier(y float64) {
	s.frontierY = y
}

// Stats returns a diagnostics snapshot.
func (s *Store) Stats() Stats {
	return Stats{
		LivePlatforms:  len(s.platforms),
		LiveChunks:     len(s.chunks),
		LightEmitters:  s.lightEmitters,
		ChunksCreated:  s.chunksCreated,
		TotalCommitted: s.totalCommitted,
		TotalRejected:  s.totalRejected,
		TotalRemoved:   s.totalRemoved,
		FrontierY:      s.frontierY,
	}
}

// Teardown releases every live platform's decoration handles and clears all
// state. Safe to call redundantly.
func (s *Store) Teardown() {
	for id := range s.platforms {
		s.Remove(id)
	}
	s.chunks = make(map[int64]*Chunk)
}

func (s *Store) reject(reason string, x, y, width float64) {
	s.totalRejected++
	if s.log != nil {
		s.log.Debug("platform rejected",
			zap.String("reason", reason),
			zap.Float64("x", x),
			zap.Float64("y", y),
			zap.Float64("width", width),
		)
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
