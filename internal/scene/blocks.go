package scene

import (
	"voxshade/internal/vertex"

	"github.com/go-gl/mathgl/mgl32"
)

type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeStone
	BlockTypeLog
	BlockTypePlank
	BlockTypeLeaves
)

// Atlas tiles used by the block table.
const (
	TileGrassSide uint32 = iota
	TileGrassTop
	TileDirt
	TileStone
	TileLogTop
	TileLogSide
	TilePlank
	TileLeaves
)

func (b BlockType) String() string {
	switch b {
	case BlockTypeAir:
		return "air"
	case BlockTypeGrass:
		return "grass"
	case BlockTypeDirt:
		return "dirt"
	case BlockTypeStone:
		return "stone"
	case BlockTypeLog:
		return "log"
	case BlockTypePlank:
		return "plank"
	case BlockTypeLeaves:
		return "leaves"
	}
	return "unknown"
}

// Tile returns the atlas tile drawn on the given face.
func (b BlockType) Tile(face vertex.Face) uint32 {
	side := face < vertex.FaceBottom
	switch b {
	case BlockTypeGrass:
		switch {
		case side:
			return TileGrassSide
		case face == vertex.FaceTop:
			return TileGrassTop
		}
		return TileDirt
	case BlockTypeDirt:
		return TileDirt
	case BlockTypeStone:
		return TileStone
	case BlockTypeLog:
		if side {
			return TileLogSide
		}
		return TileLogTop
	case BlockTypePlank:
		return TilePlank
	case BlockTypeLeaves:
		return TileLeaves
	}
	return 0
}

// Color is a flat stand-in for the block's texture, used by the
// untextured pipelines.
func (b BlockType) Color() mgl32.Vec3 {
	switch b {
	case BlockTypeGrass:
		return mgl32.Vec3{0.36, 0.66, 0.25}
	case BlockTypeDirt:
		return mgl32.Vec3{0.53, 0.38, 0.26}
	case BlockTypeStone:
		return mgl32.Vec3{0.49, 0.49, 0.49}
	case BlockTypeLog:
		return mgl32.Vec3{0.40, 0.32, 0.20}
	case BlockTypePlank:
		return mgl32.Vec3{0.71, 0.56, 0.35}
	case BlockTypeLeaves:
		return mgl32.Vec3{0.24, 0.47, 0.16}
	}
	return mgl32.Vec3{0.5, 0.5, 0.5}
}
