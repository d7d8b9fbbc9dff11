package graphics

import (
	"math"

	"voxshade/internal/vertex"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkSize is the edge length in voxels of one chunk draw.
const ChunkSize = 32

type plane struct {
	a, b, c, d float32
}

// Frustum holds the six clip planes: left, right, bottom, top, near, far.
type Frustum struct {
	planes [6]plane
}

// NewFrustum extracts the planes from a combined projection*view matrix.
func NewFrustum(viewProj mgl32.Mat4) Frustum {
	// mgl32 is column-major: element (row, col) is at [col*4+row]
	m00, m01, m02, m03 := viewProj[0], viewProj[4], viewProj[8], viewProj[12]
	m10, m11, m12, m13 := viewProj[1], viewProj[5], viewProj[9], viewProj[13]
	m20, m21, m22, m23 := viewProj[2], viewProj[6], viewProj[10], viewProj[14]
	m30, m31, m32, m33 := viewProj[3], viewProj[7], viewProj[11], viewProj[15]

	var f Frustum
	f.planes[0] = normalizePlane(plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03})
	f.planes[1] = normalizePlane(plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03})
	f.planes[2] = normalizePlane(plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13})
	f.planes[3] = normalizePlane(plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13})
	f.planes[4] = normalizePlane(plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23})
	f.planes[5] = normalizePlane(plane{m30 - m20, m31 - m21, m32 - m22, m33 - m23})
	return f
}

func normalizePlane(p plane) plane {
	l := float32(math.Sqrt(float64(p.a*p.a + p.b*p.b + p.c*p.c)))
	if l == 0 {
		return p
	}
	return plane{p.a / l, p.b / l, p.c / l, p.d / l}
}

// ContainsAABB reports whether the box is at least partly inside.
// It may return true for boxes just outside a frustum corner.
func (f Frustum) ContainsAABB(min, max mgl32.Vec3) bool {
	for _, p := range f.planes {
		// positive vertex for this plane normal
		px := max.X()
		if p.a < 0 {
			px = min.X()
		}
		py := max.Y()
		if p.b < 0 {
			py = min.Y()
		}
		pz := max.Z()
		if p.c < 0 {
			pz = min.Z()
		}
		if p.a*px+p.b*py+p.c*pz+p.d < 0 {
			return false
		}
	}
	return true
}

// ChunkBounds returns the world-space box covered by a chunk at origin.
func ChunkBounds(origin vertex.Voxel) (min, max mgl32.Vec3) {
	min = mgl32.Vec3{float32(origin[0]), float32(origin[1]), float32(origin[2])}
	max = min.Add(mgl32.Vec3{ChunkSize, ChunkSize, ChunkSize})
	return min, max
}

// ContainsChunk tests a chunk draw against the frustum.
func (f Frustum) ContainsChunk(origin vertex.Voxel) bool {
	min, max := ChunkBounds(origin)
	return f.ContainsAABB(min, max)
}
