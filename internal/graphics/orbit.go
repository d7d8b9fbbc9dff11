package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Orbit limits.
const (
	MinOrbitDistance = 2
	MaxOrbitDistance = 64
	MaxOrbitPitch    = 1.5
)

// Orbit keeps a camera on a sphere around a target point.
type Orbit struct {
	Target   mgl32.Vec3
	Yaw      float32 // around +Y, radians
	Pitch    float32 // elevation, radians
	Distance float32
}

// NewOrbit starts an orbit that reproduces the given eye position.
func NewOrbit(eye, target mgl32.Vec3) *Orbit {
	d := eye.Sub(target)
	o := &Orbit{Target: target, Distance: d.Len()}
	if o.Distance > 0 {
		o.Pitch = float32(math.Asin(float64(mgl32.Clamp(d.Y()/o.Distance, -1, 1))))
		o.Yaw = float32(math.Atan2(float64(d.Z()), float64(d.X())))
	}
	o.Zoom(0)
	return o
}

func (o *Orbit) Rotate(dyaw, dpitch float32) {
	o.Yaw += dyaw
	o.Pitch = mgl32.Clamp(o.Pitch+dpitch, -MaxOrbitPitch, MaxOrbitPitch)
}

func (o *Orbit) Zoom(delta float32) {
	o.Distance = mgl32.Clamp(o.Distance+delta, MinOrbitDistance, MaxOrbitDistance)
}

func (o *Orbit) Eye() mgl32.Vec3 {
	sp, cp := math.Sincos(float64(o.Pitch))
	sy, cy := math.Sincos(float64(o.Yaw))
	offset := mgl32.Vec3{float32(cp * cy), float32(sp), float32(cp * sy)}
	return o.Target.Add(offset.Mul(o.Distance))
}

// Apply places cam on the orbit looking at the target.
func (o *Orbit) Apply(cam *Camera) {
	cam.Position = o.Eye()
	cam.LookAt(o.Target)
}
