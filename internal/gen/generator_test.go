package gen

import (
	"math"
	"sort"
	"testing"

	"github.com/towerclimb/server/internal/config"
	"github.com/towerclimb/server/internal/data"
	"github.com/towerclimb/server/internal/world"
	"go.uber.org/zap"
)

func testWorldCfg() config.WorldConfig {
	return config.WorldConfig{Width: 1024, Height: 768}
}

func testPlatformCfg() config.PlatformConfig {
	return config.PlatformConfig{
		MinWidth:        70,
		MaxWidth:        150,
		Height:          18,
		MinVisibleWidth: 24,
		LightChance:     0.25,
		CoinChance:      0.3,
	}
}

func newTestGenerator(hook world.DecorationHook) (*Generator, *world.Store) {
	log := zap.NewNop()
	store := world.NewStore(24, 0, hook, log)
	policy := NewPolicy(testReach(), 1024)
	return NewGenerator(store, policy, data.DefaultThemeTable(), nil,
		testWorldCfg(), testPlatformCfg(), 800, log), store
}

// livePlatforms returns all live platforms ordered by commit sequence.
func livePlatforms(s *world.Store) []*world.Platform {
	var out []*world.Platform
	for _, id := range s.Query(func(*world.Platform) bool { return true }) {
		out = append(out, s.Get(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedSeq < out[j].CreatedSeq })
	return out
}

func TestStartingPlatformDeterminism(t *testing.T) {
	for run := 0; run < 20; run++ {
		g, store := newTestGenerator(nil)
		id := g.GenerateStartingPlatform()
		p := store.Get(id)
		if p == nil {
			t.Fatal("starting platform missing")
		}
		if p.X != 512 || p.Y != 668 {
			t.Fatalf("run %d: start center = (%v,%v), want (512,668)", run, p.X, p.Y)
		}
		if p.Width != 984 {
			t.Fatalf("run %d: start width = %v, want 984", run, p.Width)
		}
		if p.LightEmitter {
			t.Fatalf("run %d: starting platform must never emit light", run)
		}
		if c := g.Cursor(); c.NextChunkStartY != 668 || c.LastPlacedX != 512 {
			t.Fatalf("run %d: cursor not primed: %+v", run, c)
		}
	}
}

func TestFirstChunkPlatformWithinScenarioBounds(t *testing.T) {
	// W=1024, H=768, vMin=80, vMax=140, hMin=60, hMax=120: the first
	// platform above the 668 foothold must land in y ∈ [528,588] with x
	// inside the margined world span.
	for run := 0; run < 50; run++ {
		g, store := newTestGenerator(nil)
		g.GenerateStartingPlatform()
		g.GenerateChunk()

		live := livePlatforms(store)
		if len(live) < 2 {
			t.Fatalf("run %d: chunk produced no platforms", run)
		}
		first := live[1] // live[0] is the foothold
		if first.Y < 528 || first.Y > 588 {
			t.Fatalf("run %d: first chunk platform y = %v, want [528,588]", run, first.Y)
		}
		hw := first.Width / 2
		if first.X < 60+hw || first.X > 1024-60-hw {
			t.Fatalf("run %d: x = %v outside margined world (hw=%v)", run, first.X, hw)
		}
	}
}

func TestChunkGapsStayReachable(t *testing.T) {
	for run := 0; run < 5; run++ {
		g, store := newTestGenerator(nil)
		g.GenerateStartingPlatform()
		for i := 0; i < 20; i++ {
			g.GenerateChunk()
		}

		// With gaps ≥ 80 against an 18-unit platform height no candidate can
		// collide, so commit order equals candidate order and every consecutive
		// gap, chunk seams included, must sit inside the configured bands. The
		// lower |dx| bound must hold after wall clamping too.
		if store.Stats().TotalRejected != 0 {
			t.Fatalf("run %d: unexpected rejections: %d", run, store.Stats().TotalRejected)
		}
		all := livePlatforms(store)
		for i := 1; i < len(all); i++ {
			gap := all[i-1].Y - all[i].Y
			if gap < 80-1e-9 || gap > 140+1e-9 {
				t.Fatalf("run %d seq %d: gap %v outside [80,140]", run, i, gap)
			}
			dx := math.Abs(all[i].X - all[i-1].X)
			if dx < 60-1e-9 || dx > 120+1e-9 {
				t.Fatalf("run %d seq %d: |dx| %v outside [60,120]", run, i, dx)
			}
		}
	}
}

func TestGenerateChunkAdvancesCursor(t *testing.T) {
	g, store := newTestGenerator(nil)
	g.GenerateStartingPlatform()

	const n = 8
	for i := 0; i < n; i++ {
		before := g.Cursor()
		g.GenerateChunk()
		after := g.Cursor()
		if after.NextChunkStartY != before.NextChunkStartY-800 {
			t.Fatalf("chunk %d: cursor moved %v, want 800", i,
				before.NextChunkStartY-after.NextChunkStartY)
		}
	}
	if got := g.Cursor().ChunksGenerated; got != n {
		t.Fatalf("ChunksGenerated = %d, want %d", got, n)
	}
	if got := store.Stats().FrontierY; got != 668-float64(n)*800 {
		t.Fatalf("frontier = %v, want %v", got, 668-float64(n)*800)
	}
}

func TestChunkPlatformsStayInsideSpan(t *testing.T) {
	g, store := newTestGenerator(nil)
	g.GenerateStartingPlatform()
	g.GenerateChunk()
	for _, p := range livePlatforms(store)[1:] {
		if p.Y >= 668 || p.Y <= 668-800 {
			t.Fatalf("platform y %v outside chunk span (668,%v)", p.Y, 668-800)
		}
	}
}

func TestBarrenChunkRecordPruned(t *testing.T) {
	// A 1-platform cap makes every chunk candidate a rejection once the
	// foothold is in; the resulting memberless chunk record must not linger.
	log := zap.NewNop()
	store := world.NewStore(24, 1, nil, log)
	policy := NewPolicy(testReach(), 1024)
	g := NewGenerator(store, policy, data.DefaultThemeTable(), nil,
		testWorldCfg(), testPlatformCfg(), 800, log)
	g.GenerateStartingPlatform()

	for i := 0; i < 3; i++ {
		g.GenerateChunk()
	}

	st := store.Stats()
	if st.TotalRejected == 0 {
		t.Fatal("cap never rejected a candidate")
	}
	if st.LivePlatforms != 1 {
		t.Fatalf("live platforms = %d, want 1", st.LivePlatforms)
	}
	if st.LiveChunks != 1 {
		t.Fatalf("live chunks = %d, want only the foothold's", st.LiveChunks)
	}
	if st.ChunksCreated != 4 {
		t.Fatalf("cumulative chunk count = %d, want 4", st.ChunksCreated)
	}
}

func TestDecorationRollsReachHook(t *testing.T) {
	coins, lights, total := 0, 0, 0
	hook := func(v world.PlatformView) []world.DecorationHandle {
		total++
		if v.WantCoin {
			coins++
		}
		if v.LightEmitter {
			lights++
		}
		if v.Theme == "" {
			panic("empty theme forwarded to hook")
		}
		return nil
	}
	g, _ := newTestGenerator(hook)
	g.GenerateStartingPlatform()
	for i := 0; i < 30; i++ {
		g.GenerateChunk()
	}
	if total < 100 {
		t.Fatalf("only %d platforms generated", total)
	}
	// 25%/30% rolls across a few hundred platforms: both kinds must appear,
	// neither on every platform.
	if lights == 0 || lights == total-1 {
		t.Fatalf("light roll degenerate: %d/%d", lights, total)
	}
	if coins == 0 || coins == total {
		t.Fatalf("coin roll degenerate: %d/%d", coins, total)
	}
}
