package vertex

import "github.com/go-gl/mathgl/mgl32"

// Face identifies one of the six axis-aligned faces of a voxel.
type Face uint32

const (
	FaceFront  Face = iota // -Z
	FaceBack               // +Z
	FaceLeft               // -X
	FaceRight              // +X
	FaceBottom             // -Y
	FaceTop                // +Y
)

// FaceCount is the number of valid normal indices.
const FaceCount = 6

// normals is indexed by the 3-bit normal code. Codes 6 and 7 are never
// produced by a valid encoder; they map to the zero vector instead of
// panicking.
var normals = [1 << NormalWidth]mgl32.Vec3{
	FaceFront:  {0, 0, -1},
	FaceBack:   {0, 0, 1},
	FaceLeft:   {-1, 0, 0},
	FaceRight:  {1, 0, 0},
	FaceBottom: {0, -1, 0},
	FaceTop:    {0, 1, 0},
}

// Normal returns the unit normal for a face code.
func Normal(index uint32) mgl32.Vec3 {
	return normals[index&(1<<NormalWidth-1)]
}

// Normal returns the unit normal of the face.
func (f Face) Normal() mgl32.Vec3 {
	return Normal(uint32(f))
}

func (f Face) String() string {
	switch f {
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	case FaceBottom:
		return "bottom"
	case FaceTop:
		return "top"
	default:
		return "invalid"
	}
}
