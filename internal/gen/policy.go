package gen

import (
	"math"
	"math/rand"

	"github.com/towerclimb/server/internal/config"
	"github.com/towerclimb/server/internal/geom"
)

// Platform placement patterns. Selected per candidate from the chunk index
// so runs alternate texture without any persistent pattern state.
const (
	patternZigzag = iota
	patternRandom
	patternClose
)

// steppingStoneChance is the share of placements drawn from the easier,
// tighter vertical band instead of the full one.
const steppingStoneChance = 0.25

// Policy turns the configured jump-arc constants into concrete gaps and
// offsets that are always reachable from the previous platform. It never
// fails: out-of-range inputs are clamped, not rejected.
type Policy struct {
	cfg        config.ReachabilityConfig
	worldWidth float64

	// wallBias pushes the next offset away from a world edge after a clamp
	// pinned a platform against it: -1 = pinned right (push left next),
	// +1 = pinned left (push right next), 0 = no bias.
	wallBias int
}

func NewPolicy(cfg config.ReachabilityConfig, worldWidth float64) *Policy {
	if cfg.VMax < cfg.VMin {
		cfg.VMax = cfg.VMin
	}
	if cfg.HMax < cfg.HMin {
		cfg.HMax = cfg.HMin
	}
	return &Policy{cfg: cfg, worldWidth: worldWidth}
}

// NextVerticalGap draws the vertical spacing to the next platform. Most
// placements use the full reachable band; a minority use a stepping-stone
// band in the lower quarter of the same range, so every gap stays inside
// [VMin, VMax].
func (p *Policy) NextVerticalGap() float64 {
	span := p.cfg.VMax - p.cfg.VMin
	if rand.Float64() < steppingStoneChance {
		return p.cfg.VMin + rand.Float64()*span*0.25
	}
	return p.cfg.VMin + rand.Float64()*span
}

// NextHorizontalOffset draws the signed horizontal offset from the previous
// platform's anchor X. The pattern varies with the chunk index; the result
// always satisfies HMin <= |offset| <= HMax, and a pending wall bias flips
// the sign away from the edge that pinned the previous candidate.
func (p *Policy) NextHorizontalOffset(prevX, y float64, chunkIndex int) float64 {
	var off float64
	switch chunkIndex % 3 {
	case patternZigzag:
		// Sign oscillates with a slow sine over chunk index and height, so
		// runs sweep left and right instead of drifting.
		dir := 1.0
		if math.Sin(float64(chunkIndex)*1.3+y*0.008) < 0 {
			dir = -1
		}
		off = dir * (p.cfg.HMin + rand.Float64()*(p.cfg.HMax-p.cfg.HMin))
	case patternRandom:
		off = (rand.Float64()*2 - 1) * p.cfg.HMax * 0.85
	default: // patternClose: tight sequence for easier runs
		off = (rand.Float64()*2 - 1) * p.cfg.HMin * 1.25
	}

	// Enforce the minimum spread; a zero offset would stack platforms.
	switch {
	case off >= 0 && off < p.cfg.HMin:
		off = p.cfg.HMin
	case off < 0 && off > -p.cfg.HMin:
		off = -p.cfg.HMin
	}
	if off > p.cfg.HMax {
		off = p.cfg.HMax
	}
	if off < -p.cfg.HMax {
		off = -p.cfg.HMax
	}

	if p.wallBias != 0 {
		off = math.Abs(off) * float64(p.wallBias)
		p.wallBias = 0
	}
	return off
}

// ClampX keeps a candidate center inside the world, with an HMin margin at
// both edges. A wallward draw from an anchor near the edge would be squashed
// below the minimum spread by a plain clamp, stacking platforms; in that case
// the offset flips away from the wall for this candidate, keeping
// |x' - prevX| >= HMin whenever the world leaves room for it on either side.
// A clamp records which edge pinned the candidate so the next draw is nudged
// back toward open space.
func (p *Policy) ClampX(prevX, x, halfWidth float64) float64 {
	clamped := geom.ClampToWorld(x, halfWidth, p.cfg.HMin, p.worldWidth)
	if math.Abs(clamped-prevX) < p.cfg.HMin {
		flipped := geom.ClampToWorld(2*prevX-x, halfWidth, p.cfg.HMin, p.worldWidth)
		if math.Abs(flipped-prevX) > math.Abs(clamped-prevX) {
			clamped = flipped
		}
	}
	if clamped > x {
		p.wallBias = 1 // pushed off the left edge
	} else if clamped < x {
		p.wallBias = -1 // pushed off the right edge
	}
	return clamped
}
