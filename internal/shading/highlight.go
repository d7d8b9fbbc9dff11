package shading

import (
	"voxshade/internal/vertex"

	"github.com/go-gl/mathgl/mgl32"
)

// HighlightBoost is the brightness multiplier of the looked-at voxel.
const HighlightBoost = 1.8

// Highlight brightens color when voxel equals look on all three axes.
func Highlight(color mgl32.Vec3, voxel, look vertex.Voxel) mgl32.Vec3 {
	if voxel != look {
		return color
	}
	for i := range color {
		color[i] = mgl32.Clamp(color[i]*HighlightBoost, 0, 1)
	}
	return color
}

// Opaque appends alpha 1.
func Opaque(c mgl32.Vec3) mgl32.Vec4 {
	return c.Vec4(1)
}
