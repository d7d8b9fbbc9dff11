package scene

import (
	"voxshade/internal/vertex"

	"github.com/go-gl/mathgl/mgl32"
)

var cubeCorners = [8][3]uint32{
	{0, 0, 0},
	{1, 0, 0},
	{1, 1, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 0, 1},
	{1, 1, 1},
	{0, 1, 1},
}

// faceCorners lists each face's quad, clockwise seen from outside, indexed
// by vertex.Face.
var faceCorners = [vertex.FaceCount][4]int{
	{0, 1, 2, 3}, // front
	{5, 4, 7, 6}, // back
	{4, 0, 3, 7}, // left
	{1, 5, 6, 2}, // right
	{4, 5, 1, 0}, // bottom
	{3, 2, 6, 7}, // top
}

// quadUV maps quad vertices to tile corners: the first two vertices are the
// bottom edge of side faces.
var quadUV = [4]uint32{vertex.CornerBottom, vertex.CornerFar, vertex.CornerRight, vertex.CornerOrigin}

var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

func appendQuad(idx []uint32, base uint32) []uint32 {
	for _, i := range quadIndices {
		idx = append(idx, base+i)
	}
	return idx
}

// Mesh is an indexed triangle list in one vertex format.
type Mesh[V any] struct {
	Origin   vertex.Voxel
	Vertices []V
	Indices  []uint32
}

// appendChunkCube appends the six faces of the block at a chunk-local
// position. Every face is emitted; hidden faces are left to the depth test.
func (m *Mesh[V]) appendChunkCube(local [3]uint32, voxel vertex.Voxel, b BlockType, emit func(p vertex.Packed, voxel vertex.Voxel) V) {
	for face := vertex.Face(0); face < vertex.FaceCount; face++ {
		base := uint32(len(m.Vertices))
		tile := b.Tile(face)
		for i, c := range faceCorners[face] {
			corner := cubeCorners[c]
			p := vertex.PackChunk(local[0]+corner[0], local[1]+corner[1], local[2]+corner[2], uint32(face), tile, quadUV[i])
			m.Vertices = append(m.Vertices, emit(p, voxel))
		}
		m.Indices = appendQuad(m.Indices, base)
	}
}

// ChunkCube builds the chunk-format mesh of a single block at the chunk
// origin.
func ChunkCube(origin vertex.Voxel, b BlockType) Mesh[vertex.ChunkVertex] {
	m := Mesh[vertex.ChunkVertex]{Origin: origin}
	m.appendChunkCube([3]uint32{}, origin, b, chunkVertex)
	return m
}

// ColorCube builds a packed-color cube of the given edge length (at most
// vertex.MaxLocal) with its minimum corner at the local origin.
func ColorCube(size uint32, color mgl32.Vec3) Mesh[vertex.ColorVertex] {
	size = min(size, vertex.MaxLocal)
	var m Mesh[vertex.ColorVertex]
	for face := vertex.Face(0); face < vertex.FaceCount; face++ {
		base := uint32(len(m.Vertices))
		for _, c := range faceCorners[face] {
			corner := cubeCorners[c]
			p := vertex.Pack(corner[0]*size, corner[1]*size, corner[2]*size, uint32(face))
			m.Vertices = append(m.Vertices, vertex.ColorVertex{Packed: p, Color: color})
		}
		m.Indices = appendQuad(m.Indices, base)
	}
	return m
}

// RawCube builds an unpacked cube centred on center.
func RawCube(center mgl32.Vec3, size float32, color mgl32.Vec3) Mesh[vertex.Raw] {
	var m Mesh[vertex.Raw]
	half := mgl32.Vec3{size / 2, size / 2, size / 2}
	for face := vertex.Face(0); face < vertex.FaceCount; face++ {
		base := uint32(len(m.Vertices))
		for _, c := range faceCorners[face] {
			corner := cubeCorners[c]
			p := mgl32.Vec3{float32(corner[0]), float32(corner[1]), float32(corner[2])}.Mul(size)
			m.Vertices = append(m.Vertices, vertex.Raw{
				Position: center.Sub(half).Add(p),
				Normal:   face.Normal(),
				Color:    color,
			})
		}
		m.Indices = appendQuad(m.Indices, base)
	}
	return m
}

func chunkVertex(p vertex.Packed, voxel vertex.Voxel) vertex.ChunkVertex {
	return vertex.ChunkVertex{Packed: p, Voxel: voxel}
}

// ChunkMeshes lays out every stored block as chunk-format cubes, one mesh
// per chunk.
func (v *Voxels) ChunkMeshes() []Mesh[vertex.ChunkVertex] {
	origins, groups := v.byChunk()
	meshes := make([]Mesh[vertex.ChunkVertex], 0, len(origins))
	for _, o := range origins {
		m := Mesh[vertex.ChunkVertex]{Origin: o}
		for _, p := range groups[o] {
			local := [3]uint32{uint32(p[0] - o[0]), uint32(p[1] - o[1]), uint32(p[2] - o[2])}
			m.appendChunkCube(local, p, v.Get(p), chunkVertex)
		}
		meshes = append(meshes, m)
	}
	return meshes
}

// ColorMeshes is ChunkMeshes for the packed-color format, with each block
// colored by its type. The origin is applied by a model transform.
func (v *Voxels) ColorMeshes() []Mesh[vertex.ColorVertex] {
	origins, groups := v.byChunk()
	meshes := make([]Mesh[vertex.ColorVertex], 0, len(origins))
	for _, o := range origins {
		m := Mesh[vertex.ColorVertex]{Origin: o}
		for _, p := range groups[o] {
			local := [3]uint32{uint32(p[0] - o[0]), uint32(p[1] - o[1]), uint32(p[2] - o[2])}
			color := v.Get(p).Color()
			m.appendChunkCube(local, p, v.Get(p), func(pk vertex.Packed, _ vertex.Voxel) vertex.ColorVertex {
				return vertex.ColorVertex{Packed: pk, Color: color}
			})
		}
		meshes = append(meshes, m)
	}
	return meshes
}
