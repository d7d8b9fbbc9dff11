package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestOrbitReproducesEye(t *testing.T) {
	eye, target := mgl32.Vec3{4, 3, -2}, mgl32.Vec3{1, 1, 1}
	o := NewOrbit(eye, target)
	if !near(o.Eye(), eye, 1e-4) {
		t.Fatalf("got %v, want %v", o.Eye(), eye)
	}

	var cam Camera
	o.Apply(&cam)
	want := target.Sub(eye).Normalize()
	if !near(cam.Forward(), want, 1e-4) {
		t.Fatalf("forward %v, want %v", cam.Forward(), want)
	}
}

func TestOrbitClamps(t *testing.T) {
	o := NewOrbit(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
	o.Rotate(0, 10)
	if o.Pitch != MaxOrbitPitch {
		t.Fatalf("pitch %g", o.Pitch)
	}
	o.Zoom(-100)
	if o.Distance != MinOrbitDistance {
		t.Fatalf("distance %g", o.Distance)
	}
	o.Zoom(1000)
	if o.Distance != MaxOrbitDistance {
		t.Fatalf("distance %g", o.Distance)
	}
}
