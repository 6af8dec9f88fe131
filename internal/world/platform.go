package world

import "github.com/towerclimb/server/internal/geom"

// Platform is one climbable surface. Its bounds are immutable once committed:
// platforms never move or resize, so the overlap check at commit time holds
// for the platform's whole lifetime.
type Platform struct {
	ID     PlatformID
	X, Y   float64 // center, world coordinates (Y grows downward)
	Width  float64
	Height float64
	Bounds geom.AABB

	LightEmitter bool
	ChunkID      int64

	// Handles returned by the decoration hook. Owned by the platform and
	// released before the entity is dropped.
	Handles []DecorationHandle

	CreatedSeq uint64 // monotonic commit sequence, diagnostics only
}

// Chunk is a logical batch of platforms generated over one vertical span.
// Chunks exist for bulk bookkeeping (destruction, statistics); platform
// invariants never depend on chunk membership.
type Chunk struct {
	ID         int64
	Theme      string // opaque tag forwarded to decoration hooks
	StartY     float64
	EndY       float64
	Members    []PlatformID // commit order
	CreatedSeq uint64
}

// PlatformView is the public snapshot handed to decoration hooks. The hook
// gets values, never a reference into the store.
type PlatformView struct {
	ID           PlatformID
	X, Y         float64
	Width        float64
	Height       float64
	LightEmitter bool
	WantCoin     bool // generator rolled a collectible for this platform
	Theme        string
	ChunkID      int64
}

// DecorationHandle is an opaque reference returned by a decoration hook.
// Release frees whatever external resource the hook attached (a light, a
// coin entity). Called exactly once, before the platform is dropped.
type DecorationHandle interface {
	Release()
}

// DecorationHook is invoked synchronously, exactly once per successfully
// committed platform, never for rejected candidates. It may return handles
// for the platform to own, or nil.
type DecorationHook func(PlatformView) []DecorationHandle

// PlatformSummary is the read-only row returned to physics and rendering.
type PlatformSummary struct {
	ID           PlatformID
	Bounds       geom.AABB
	LightEmitter bool
}

// Stats is the diagnostics snapshot exposed by the store.
type Stats struct {
	LivePlatforms  int
	LiveChunks     int
	LightEmitters  int     // among live platforms
	ChunksCreated  int64   // cumulative
	TotalCommitted uint64  // cumulative
	TotalRejected  uint64  // cumulative soft failures
	TotalRemoved   uint64  // cumulative
	FrontierY      float64 // lowest (highest in the world) generated Y
}
