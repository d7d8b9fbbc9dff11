// Package vertex holds the vertex buffer formats consumed by the shading
// pipelines and the bit-packed encoding shared with the mesh producer.
package vertex

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Voxel is an integer voxel grid coordinate.
type Voxel [3]int32

// ColorVertex is the packed position+color layout:
// {u32 packed_pos_normal, vec3 color}.
type ColorVertex struct {
	Packed Packed
	Color  mgl32.Vec3
}

// ChunkVertex is the packed chunk/atlas layout:
// {u32 packed_data, ivec3 voxel_pos}.
type ChunkVertex struct {
	Packed Packed
	Voxel  Voxel
}

// Raw is the unpacked layout: {vec3 position, vec3 normal, vec3 color}.
type Raw struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec3
}

// Strides in bytes, matching the host vertex buffer layouts.
const (
	ColorVertexStride = 4 + 3*4
	ChunkVertexStride = 4 + 3*4
	RawStride         = 9 * 4
)

// EncodeColorVertices lays vs out as a little-endian host vertex buffer.
func EncodeColorVertices(vs []ColorVertex) []byte {
	buf := make([]byte, len(vs)*ColorVertexStride)
	for i, v := range vs {
		b := buf[i*ColorVertexStride:]
		binary.LittleEndian.PutUint32(b, uint32(v.Packed))
		putVec3(b[4:], v.Color)
	}
	return buf
}

// DecodeColorVertices reads a buffer written by EncodeColorVertices.
func DecodeColorVertices(data []byte) ([]ColorVertex, error) {
	n, err := count(data, ColorVertexStride, "color")
	if err != nil {
		return nil, err
	}
	vs := make([]ColorVertex, n)
	for i := range vs {
		b := data[i*ColorVertexStride:]
		vs[i] = ColorVertex{Packed: Packed(binary.LittleEndian.Uint32(b)), Color: getVec3(b[4:])}
	}
	return vs, nil
}

func EncodeChunkVertices(vs []ChunkVertex) []byte {
	buf := make([]byte, len(vs)*ChunkVertexStride)
	for i, v := range vs {
		b := buf[i*ChunkVertexStride:]
		binary.LittleEndian.PutUint32(b, uint32(v.Packed))
		for j, c := range v.Voxel {
			binary.LittleEndian.PutUint32(b[4+j*4:], uint32(c))
		}
	}
	return buf
}

func DecodeChunkVertices(data []byte) ([]ChunkVertex, error) {
	n, err := count(data, ChunkVertexStride, "chunk")
	if err != nil {
		return nil, err
	}
	vs := make([]ChunkVertex, n)
	for i := range vs {
		b := data[i*ChunkVertexStride:]
		vs[i].Packed = Packed(binary.LittleEndian.Uint32(b))
		for j := range vs[i].Voxel {
			vs[i].Voxel[j] = int32(binary.LittleEndian.Uint32(b[4+j*4:]))
		}
	}
	return vs, nil
}

func EncodeRawVertices(vs []Raw) []byte {
	buf := make([]byte, len(vs)*RawStride)
	for i, v := range vs {
		b := buf[i*RawStride:]
		putVec3(b, v.Position)
		putVec3(b[12:], v.Normal)
		putVec3(b[24:], v.Color)
	}
	return buf
}

func DecodeRawVertices(data []byte) ([]Raw, error) {
	n, err := count(data, RawStride, "raw")
	if err != nil {
		return nil, err
	}
	vs := make([]Raw, n)
	for i := range vs {
		b := data[i*RawStride:]
		vs[i] = Raw{Position: getVec3(b), Normal: getVec3(b[12:]), Color: getVec3(b[24:])}
	}
	return vs, nil
}

func count(data []byte, stride int, name string) (int, error) {
	if len(data)%stride != 0 {
		return 0, fmt.Errorf("%s vertex buffer: %d bytes is not a multiple of stride %d", name, len(data), stride)
	}
	return len(data) / stride, nil
}

func putVec3(dst []byte, v mgl32.Vec3) {
	for i, f := range v {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
	}
}

func getVec3(src []byte) mgl32.Vec3 {
	var v mgl32.Vec3
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
	}
	return v
}
