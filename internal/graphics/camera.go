package graphics

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraUniformSize is the byte size of the camera uniform block:
// vec4 view_pos followed by a column-major mat4 view_proj.
const CameraUniformSize = 4*4 + 16*4

// Camera is a free-look camera driven by yaw and pitch (radians).
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
}

// Projection holds the perspective parameters. FovY is in degrees.
type Projection struct {
	Aspect float32
	FovY   float32
	Near   float32
	Far    float32
}

// CameraUniform is the per-frame block shared by every draw.
type CameraUniform struct {
	ViewPos  mgl32.Vec4
	ViewProj mgl32.Mat4
}

func NewProjection(width, height int, fovY, near, far float32) Projection {
	return Projection{
		Aspect: float32(width) / float32(height),
		FovY:   fovY,
		Near:   near,
		Far:    far,
	}
}

// Resize updates the aspect ratio, ignoring degenerate sizes.
func (p *Projection) Resize(width, height int) {
	if width > 0 && height > 0 {
		p.Aspect = float32(width) / float32(height)
	}
}

func (p Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.FovY), p.Aspect, p.Near, p.Far)
}

// Forward returns the unit view direction.
func (c Camera) Forward() mgl32.Vec3 {
	sinPitch, cosPitch := math.Sincos(float64(c.Pitch))
	sinYaw, cosYaw := math.Sincos(float64(c.Yaw))
	return mgl32.Vec3{
		float32(cosPitch * cosYaw),
		float32(sinPitch),
		float32(cosPitch * sinYaw),
	}.Normalize()
}

// ViewMatrix returns a right-handed view matrix looking along Forward.
func (c Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Position)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	c.Pitch = float32(math.Asin(float64(mgl32.Clamp(d.Y(), -1, 1))))
	c.Yaw = float32(math.Atan2(float64(d.Z()), float64(d.X())))
}

// NewCameraUniform fills the uniform block for one frame.
func NewCameraUniform(c Camera, p Projection) CameraUniform {
	return CameraUniform{
		ViewPos:  c.Position.Vec4(1),
		ViewProj: p.Matrix().Mul4(c.ViewMatrix()),
	}
}

// Eye returns the world-space camera position.
func (u CameraUniform) Eye() mgl32.Vec3 {
	return u.ViewPos.Vec3()
}

// Clip projects a world-space position into clip space.
func (u CameraUniform) Clip(world mgl32.Vec4) mgl32.Vec4 {
	return u.ViewProj.Mul4x1(world)
}

// MarshalBinary encodes the block as little-endian float32s.
func (u CameraUniform) MarshalBinary() ([]byte, error) {
	buf := make([]byte, CameraUniformSize)
	putFloats(buf, u.ViewPos[:])
	putFloats(buf[16:], u.ViewProj[:])
	return buf, nil
}

// UnmarshalBinary decodes a block written by MarshalBinary or by the host.
func (u *CameraUniform) UnmarshalBinary(data []byte) error {
	if len(data) != CameraUniformSize {
		return fmt.Errorf("camera uniform: got %d bytes, want %d", len(data), CameraUniformSize)
	}
	getFloats(data, u.ViewPos[:])
	getFloats(data[16:], u.ViewProj[:])
	return nil
}

func putFloats(dst []byte, src []float32) {
	for i, f := range src {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
	}
}

func getFloats(src []byte, dst []float32) {
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
	}
}
