// Package scene holds the voxel fixtures the renderers draw: a sparse
// block store, a demo terrain and helpers that lay out cube faces in each
// of the vertex formats.
package scene

import (
	"sort"
	"sync"

	"voxshade/internal/graphics"
	"voxshade/internal/vertex"
)

// Voxels is a sparse block store keyed by world voxel coordinate.
type Voxels struct {
	mu     sync.RWMutex
	blocks map[vertex.Voxel]BlockType
	mods   uint64
}

func NewVoxels() *Voxels {
	return &Voxels{blocks: make(map[vertex.Voxel]BlockType)}
}

// Set stores b at p. Setting air removes the block.
func (v *Voxels) Set(p vertex.Voxel, b BlockType) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if b == BlockTypeAir {
		delete(v.blocks, p)
	} else {
		v.blocks[p] = b
	}
	v.mods++
}

func (v *Voxels) Get(p vertex.Voxel) BlockType {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.blocks[p]
}

// Solid implements picking.Solid.
func (v *Voxels) Solid(x, y, z int32) bool {
	return v.Get(vertex.Voxel{x, y, z}) != BlockTypeAir
}

func (v *Voxels) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.blocks)
}

// ModCount increases with every Set.
func (v *Voxels) ModCount() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.mods
}

// ChunkOrigin returns the origin of the chunk containing p.
func ChunkOrigin(p vertex.Voxel) vertex.Voxel {
	var o vertex.Voxel
	for i, c := range p {
		o[i] = floorDiv(c, graphics.ChunkSize) * graphics.ChunkSize
	}
	return o
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// byChunk groups the stored voxels by chunk origin. Origins and the voxels
// within each chunk are sorted so output is deterministic.
func (v *Voxels) byChunk() ([]vertex.Voxel, map[vertex.Voxel][]vertex.Voxel) {
	v.mu.RLock()
	groups := make(map[vertex.Voxel][]vertex.Voxel)
	for p := range v.blocks {
		o := ChunkOrigin(p)
		groups[o] = append(groups[o], p)
	}
	v.mu.RUnlock()

	origins := make([]vertex.Voxel, 0, len(groups))
	for o, ps := range groups {
		origins = append(origins, o)
		sort.Slice(ps, func(i, j int) bool { return voxelLess(ps[i], ps[j]) })
	}
	sort.Slice(origins, func(i, j int) bool { return voxelLess(origins[i], origins[j]) })
	return origins, groups
}

func voxelLess(a, b vertex.Voxel) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
