package world

// PlatformID encodes a 32-bit slot index in the lower bits and a 32-bit
// generation in the upper bits. The generation increments when a slot is
// retired, so a stale ID held by a collaborator can never resolve to a
// platform that reused the slot.
type PlatformID uint64

func newPlatformID(index uint32, generation uint32) PlatformID {
	return PlatformID(uint64(generation)<<32 | uint64(index))
}

func (id PlatformID) Index() uint32      { return uint32(id) }
func (id PlatformID) Generation() uint32 { return uint32(id >> 32) }
func (id PlatformID) IsZero() bool       { return id == 0 }

// idPool allocates platform IDs with generational indices and a free list.
// Destroying a stale ID is a no-op, which is what makes double destruction
// (overlapping reaper sweeps, teardown racing a sweep) harmless.
type idPool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func newIDPool() *idPool {
	return &idPool{
		generations: make([]uint32, 0, 512),
		freeList:    make([]uint32, 0, 128),
	}
}

func (p *idPool) Create() PlatformID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return newPlatformID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		// Fresh slots start at generation 1 so ID zero stays invalid.
		p.generations = append(p.generations, 1)
	}
	return newPlatformID(idx, p.generations[idx])
}

func (p *idPool) Alive(id PlatformID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

func (p *idPool) Destroy(id PlatformID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	if p.generations[idx] != id.Generation() {
		return false // already destroyed (stale reference)
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
	return true
}
