package gen

import (
	"math"
	"testing"

	"github.com/towerclimb/server/internal/config"
)

func testReach() config.ReachabilityConfig {
	return config.ReachabilityConfig{VMin: 80, VMax: 140, HMin: 60, HMax: 120}
}

func TestNextVerticalGapStaysInBand(t *testing.T) {
	p := NewPolicy(testReach(), 1024)
	sawStepping, sawTall := false, false
	for i := 0; i < 5000; i++ {
		gap := p.NextVerticalGap()
		if gap < 80 || gap > 140 {
			t.Fatalf("gap %v outside [80,140]", gap)
		}
		if gap < 95 {
			sawStepping = true
		}
		if gap > 110 {
			sawTall = true
		}
	}
	if !sawStepping || !sawTall {
		t.Errorf("bands not both exercised: stepping=%v tall=%v", sawStepping, sawTall)
	}
}

func TestNextHorizontalOffsetBounds(t *testing.T) {
	p := NewPolicy(testReach(), 1024)
	for chunkIdx := 0; chunkIdx < 3; chunkIdx++ {
		for i := 0; i < 2000; i++ {
			off := p.NextHorizontalOffset(512, float64(600-i), chunkIdx)
			abs := math.Abs(off)
			if abs < 60 || abs > 120 {
				t.Fatalf("chunk %d: |offset| %v outside [60,120]", chunkIdx, abs)
			}
		}
	}
}

func TestZigzagChangesDirection(t *testing.T) {
	p := NewPolicy(testReach(), 1024)
	sawLeft, sawRight := false, false
	// Walk a long span of zigzag-pattern placements; the slow sine must
	// flip the sign at least once in each direction.
	for y := 10000.0; y > 0; y -= 100 {
		if p.NextHorizontalOffset(512, y, 0) > 0 {
			sawRight = true
		} else {
			sawLeft = true
		}
	}
	if !sawLeft || !sawRight {
		t.Fatalf("zigzag never alternated: left=%v right=%v", sawLeft, sawRight)
	}
}

func TestWallBounceBias(t *testing.T) {
	p := NewPolicy(testReach(), 1024)

	// Pin against the left edge.
	x := p.ClampX(512, -300, 40)
	if x != 100 { // margin 60 + half width 40
		t.Fatalf("left clamp = %v, want 100", x)
	}
	for i := 0; i < 100; i++ {
		if off := p.NextHorizontalOffset(x, 500, 1); off <= 0 {
			t.Fatalf("offset after left pin should push right, got %v", off)
		}
		p.ClampX(512, -300, 40) // re-pin for the next draw
	}

	// Pin against the right edge.
	x = p.ClampX(512, 5000, 40)
	if x != 924 {
		t.Fatalf("right clamp = %v, want 924", x)
	}
	if off := p.NextHorizontalOffset(x, 500, 1); off >= 0 {
		t.Fatalf("offset after right pin should push left, got %v", off)
	}

	// Bias is consumed: an unclamped placement draws freely again.
	p.ClampX(512, 512, 40)
	sawNeg := false
	for i := 0; i < 200; i++ {
		if p.NextHorizontalOffset(512, 500, 1) < 0 {
			sawNeg = true
			break
		}
	}
	if !sawNeg {
		t.Error("bias appears sticky: no negative offset after clean placement")
	}
}

func TestClampNearWallKeepsMinSpread(t *testing.T) {
	p := NewPolicy(testReach(), 1024)

	// A wallward draw from an anchor near the edge must flip away from the
	// wall, never survive as a squashed offset below hMin.
	x := p.ClampX(140, 140-60, 35)
	if x != 200 {
		t.Fatalf("squashed left draw = %v, want flipped to 200", x)
	}
	x = p.ClampX(884, 884+60, 35)
	if x != 824 {
		t.Fatalf("squashed right draw = %v, want flipped to 824", x)
	}

	// Hammer anchors near both walls across all patterns: the post-clamp
	// spread must stay inside [hMin, hMax] every draw.
	for _, prevX := range []float64{140, 884} {
		for i := 0; i < 20000; i++ {
			off := p.NextHorizontalOffset(prevX, 500, i%3)
			got := p.ClampX(prevX, prevX+off, 35)
			dx := math.Abs(got - prevX)
			if dx < 60-1e-9 || dx > 120+1e-9 {
				t.Fatalf("anchor %v draw %d: post-clamp |dx| = %v outside [60,120]", prevX, i, dx)
			}
		}
	}
}

func TestPolicySwappedBandsClamped(t *testing.T) {
	// Out-of-order constants are clamped, never rejected.
	p := NewPolicy(config.ReachabilityConfig{VMin: 100, VMax: 50, HMin: 70, HMax: 30}, 1024)
	for i := 0; i < 100; i++ {
		if gap := p.NextVerticalGap(); gap != 100 {
			t.Fatalf("collapsed band gap = %v, want 100", gap)
		}
		if off := math.Abs(p.NextHorizontalOffset(512, 500, 1)); off != 70 {
			t.Fatalf("collapsed band |offset| = %v, want 70", off)
		}
	}
}
