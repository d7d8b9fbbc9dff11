package vertex

import "github.com/go-gl/mathgl/mgl32"

// AtlasTiles is the number of tiles along each side of the atlas.
const AtlasTiles = 16

// TileSpan is the size of one tile in UV units.
const TileSpan = float32(1) / AtlasTiles

// Corner variants select which corner of the tile a vertex maps to.
// CornerOrigin adds no offset and is also what any unrecognised value falls
// back to.
const (
	CornerFar    uint32 = 0 // (+1, +1) tiles
	CornerBottom uint32 = 1 // (0, +1)
	CornerOrigin uint32 = 2 // (0, 0)
	CornerRight  uint32 = 3 // (+1, 0)
)

// TileBase returns the top-left UV of a tile (row = tile/16, col = tile%16).
func TileBase(tile uint32) mgl32.Vec2 {
	row := tile / AtlasTiles
	col := tile % AtlasTiles
	return mgl32.Vec2{float32(col) * TileSpan, float32(row) * TileSpan}
}

// AtlasUV returns the texture coordinate of a tile corner.
func AtlasUV(tile, corner uint32) mgl32.Vec2 {
	uv := TileBase(tile)
	switch corner {
	case CornerFar:
		uv = uv.Add(mgl32.Vec2{TileSpan, TileSpan})
	case CornerBottom:
		uv = uv.Add(mgl32.Vec2{0, TileSpan})
	case CornerRight:
		uv = uv.Add(mgl32.Vec2{TileSpan, 0})
	}
	return uv
}
