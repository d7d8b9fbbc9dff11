package vertex

import "github.com/go-gl/mathgl/mgl32"

// Bit layout of a packed vertex code:
//
//	0b0ccuuuuuuuunnnxxxxxxyyyyyyzzzzzz
//
// z, y, x: local voxel corner (6 bits each), n: face normal index,
// u: atlas tile index, c: tile corner variant.
const (
	PosZShift = 0
	PosYShift = 6
	PosXShift = 12
	PosWidth  = 6

	NormalShift = 18
	NormalWidth = 3

	TileShift = 21
	TileWidth = 8

	CornerShift = 29
	CornerWidth = 2

	// MaxLocal is the largest coordinate a position component can hold.
	MaxLocal = 1<<PosWidth - 1
)

// Packed is one bit-packed 32-bit vertex code.
type Packed uint32

// Field extracts width bits of code starting at offset.
func Field(code uint32, offset, width uint) uint32 {
	return (code >> offset) & (1<<width - 1)
}

// Local returns the integer voxel-local position components.
func (p Packed) Local() (x, y, z uint32) {
	c := uint32(p)
	return Field(c, PosXShift, PosWidth), Field(c, PosYShift, PosWidth), Field(c, PosZShift, PosWidth)
}

// Position returns the local position as floats, ready for the transform stage.
func (p Packed) Position() mgl32.Vec3 {
	x, y, z := p.Local()
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// NormalIndex returns the 3-bit face normal code.
func (p Packed) NormalIndex() uint32 {
	return Field(uint32(p), NormalShift, NormalWidth)
}

// Tile returns the 8-bit atlas tile index.
func (p Packed) Tile() uint32 {
	return Field(uint32(p), TileShift, TileWidth)
}

// Corner returns the 2-bit tile corner variant.
func (p Packed) Corner() uint32 {
	return Field(uint32(p), CornerShift, CornerWidth)
}

// Normal looks the face normal up in the normal table.
func (p Packed) Normal() mgl32.Vec3 {
	return Normal(p.NormalIndex())
}

// UV returns the atlas coordinate selected by the tile and corner fields.
func (p Packed) UV() mgl32.Vec2 {
	return AtlasUV(p.Tile(), p.Corner())
}

// Pack encodes a position and normal index. Every field is masked to its
// width, so an out-of-range value never bleeds into a neighbouring field.
func Pack(x, y, z, normal uint32) Packed {
	return Packed(put(x, PosXShift, PosWidth) |
		put(y, PosYShift, PosWidth) |
		put(z, PosZShift, PosWidth) |
		put(normal, NormalShift, NormalWidth))
}

// PackChunk encodes a full chunk vertex code including atlas tile and corner.
func PackChunk(x, y, z, normal, tile, corner uint32) Packed {
	return Pack(x, y, z, normal) |
		Packed(put(tile, TileShift, TileWidth)|put(corner, CornerShift, CornerWidth))
}

func put(v uint32, offset, width uint) uint32 {
	return (v & (1<<width - 1)) << offset
}
