package geom

// AABB is an axis-aligned bounding box in world coordinates.
// Screen convention: Y grows downward, so MinY is the top edge.
type AABB struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// FromCenter builds an AABB around a center point.
func FromCenter(cx, cy, width, height float64) AABB {
	hw := width / 2
	hh := height / 2
	return AABB{
		MinX: cx - hw,
		MinY: cy - hh,
		MaxX: cx + hw,
		MaxY: cy + hh,
	}
}

// Overlaps reports whether two boxes intersect. Strict inequality on both
// axes: boxes that merely touch along an edge do not overlap.
func (a AABB) Overlaps(b AABB) bool {
	return a.MinX < b.MaxX && a.MaxX > b.MinX &&
		a.MinY < b.MaxY && a.MaxY > b.MinY
}

// ClampToWorld clamps a platform center X so the full extent plus a margin
// stays inside [0, worldWidth]. If the world is too narrow to honor the
// margin on both sides the center of the playable span is returned.
func ClampToWorld(x, halfWidth, margin, worldWidth float64) float64 {
	lo := margin + halfWidth
	hi := worldWidth - margin - halfWidth
	if lo > hi {
		return worldWidth / 2
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
