package graphics

import (
	"encoding/binary"
	"fmt"

	"voxshade/internal/vertex"

	"github.com/go-gl/mathgl/mgl32"
)

// Push constant sizes in bytes.
const (
	ModelTransformSize = 16 * 4
	ChunkTransformSize = 6 * 4
)

// ModelTransform is the matrix-mode push constant used by arbitrary meshes.
type ModelTransform struct {
	Model mgl32.Mat4
}

// ChunkTransform is the origin-offset push constant used by voxel chunks:
// the chunk origin followed by the looked-at voxel.
type ChunkTransform struct {
	Origin vertex.Voxel
	Look   vertex.Voxel
}

// World applies the model matrix to a local position.
func (t ModelTransform) World(local mgl32.Vec3) mgl32.Vec4 {
	return t.Model.Mul4x1(local.Vec4(1))
}

// Matrix builds the implicit model matrix: identity with the translation
// column replaced by the chunk origin.
func (t ChunkTransform) Matrix() mgl32.Mat4 {
	m := mgl32.Ident4()
	m.SetCol(3, mgl32.Vec4{float32(t.Origin[0]), float32(t.Origin[1]), float32(t.Origin[2]), 1})
	return m
}

// World offsets a local position by the chunk origin. Equivalent to
// Matrix().Mul4x1(local.Vec4(1)).
func (t ChunkTransform) World(local mgl32.Vec3) mgl32.Vec4 {
	return mgl32.Vec4{
		local[0] + float32(t.Origin[0]),
		local[1] + float32(t.Origin[1]),
		local[2] + float32(t.Origin[2]),
		1,
	}
}

func (t ModelTransform) MarshalBinary() ([]byte, error) {
	buf := make([]byte, ModelTransformSize)
	putFloats(buf, t.Model[:])
	return buf, nil
}

func (t *ModelTransform) UnmarshalBinary(data []byte) error {
	if len(data) != ModelTransformSize {
		return fmt.Errorf("model push constant: got %d bytes, want %d", len(data), ModelTransformSize)
	}
	getFloats(data, t.Model[:])
	return nil
}

// MarshalBinary writes [origin.x, origin.y, origin.z, look.x, look.y, look.z]
// as little-endian int32s.
func (t ChunkTransform) MarshalBinary() ([]byte, error) {
	buf := make([]byte, ChunkTransformSize)
	for i, v := range append(t.Origin[:], t.Look[:]...) {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return buf, nil
}

func (t *ChunkTransform) UnmarshalBinary(data []byte) error {
	if len(data) != ChunkTransformSize {
		return fmt.Errorf("chunk push constant: got %d bytes, want %d", len(data), ChunkTransformSize)
	}
	for i := 0; i < 3; i++ {
		t.Origin[i] = int32(binary.LittleEndian.Uint32(data[i*4:]))
		t.Look[i] = int32(binary.LittleEndian.Uint32(data[(i+3)*4:]))
	}
	return nil
}
