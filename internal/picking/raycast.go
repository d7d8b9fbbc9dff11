// Package picking finds the voxel under the camera's view ray.
package picking

import (
	"math"

	"voxshade/internal/profiling"
	"voxshade/internal/vertex"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxReachDistance is how far the camera can pick a voxel.
const MaxReachDistance = 10.0

// Solid reports whether the voxel cell at (x, y, z) blocks the ray.
// Cell (x, y, z) spans [x, x+1) on each axis.
type Solid interface {
	Solid(x, y, z int32) bool
}

// Result stores the outcome of a raycast.
type Result struct {
	Voxel    vertex.Voxel // first solid cell
	Normal   vertex.Voxel // outward normal of the face the ray entered through
	Distance float32
	Hit      bool
}

// Adjacent returns the empty cell in front of the hit face.
func (r Result) Adjacent() vertex.Voxel {
	return vertex.Voxel{r.Voxel[0] + r.Normal[0], r.Voxel[1] + r.Normal[1], r.Voxel[2] + r.Normal[2]}
}

// NoLook is a voxel coordinate no scene block uses.
var NoLook = vertex.Voxel{math.MinInt32, math.MinInt32, math.MinInt32}

// Look returns the hit voxel, or NoLook on a miss.
func (r Result) Look() vertex.Voxel {
	if !r.Hit {
		return NoLook
	}
	return r.Voxel
}

// Raycast walks the voxel grid from origin along dir, one cell boundary at
// a time, until it enters a solid cell or passes maxDist. A ray starting
// inside a solid cell hits it at distance 0 with a zero normal.
func Raycast(origin, dir mgl32.Vec3, maxDist float32, world Solid) Result {
	defer profiling.Track("picking.Raycast")()

	if dir.Len() == 0 {
		return Result{}
	}
	dir = dir.Normalize()

	var (
		voxel  vertex.Voxel
		step   [3]int32
		tMax   [3]float32
		tDelta [3]float32
	)
	for i := 0; i < 3; i++ {
		voxel[i] = int32(math.Floor(float64(origin[i])))
		switch {
		case dir[i] > 0:
			step[i] = 1
			tDelta[i] = 1 / dir[i]
			tMax[i] = (float32(voxel[i]) + 1 - origin[i]) / dir[i]
		case dir[i] < 0:
			step[i] = -1
			tDelta[i] = -1 / dir[i]
			tMax[i] = (float32(voxel[i]) - origin[i]) / dir[i]
		default:
			tDelta[i] = math.MaxFloat32
			tMax[i] = math.MaxFloat32
		}
	}

	var (
		normal   vertex.Voxel
		traveled float32
	)
	for traveled <= maxDist {
		if world.Solid(voxel[0], voxel[1], voxel[2]) {
			return Result{Voxel: voxel, Normal: normal, Distance: traveled, Hit: true}
		}

		// advance along the axis whose boundary is closest
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		voxel[axis] += step[axis]
		traveled = tMax[axis]
		tMax[axis] += tDelta[axis]
		normal = vertex.Voxel{}
		normal[axis] = -step[axis]
	}
	return Result{}
}
