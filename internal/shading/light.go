// Package shading evaluates the point light that travels with the camera,
// resolves fragment base colors and applies the selection highlight.
//
// Every function here is pure and safe to call from any number of
// goroutines.
package shading

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Policy selects how the lighting terms are combined. Each pipeline binds
// exactly one policy when it is built.
type Policy int

const (
	// PolicyFlat: ambient + diffuse + attenuation*specular.
	PolicyFlat Policy = iota
	// PolicyChunkLit: ambient + attenuation*diffuse. Specular is evaluated
	// and dropped.
	PolicyChunkLit
	// PolicyFaceShade: no lighting, fixed per-face darkening.
	PolicyFaceShade
	// PolicyChunkLitSpecular is PolicyChunkLit with the attenuated specular
	// term added back. Only used when explicitly requested.
	PolicyChunkLitSpecular
)

func (p Policy) String() string {
	switch p {
	case PolicyFlat:
		return "flat"
	case PolicyChunkLit:
		return "chunk-lit"
	case PolicyFaceShade:
		return "face-shade"
	case PolicyChunkLitSpecular:
		return "chunk-lit-specular"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Fragment is the input of a shading function.
type Fragment struct {
	Position mgl32.Vec3 // world space
	Normal   mgl32.Vec3 // unit length
	Base     mgl32.Vec3 // resolved material color
}

// Func shades one fragment given the camera position.
type Func func(f Fragment, eye mgl32.Vec3, att Attenuation) mgl32.Vec3

// Func returns the shading function for the policy.
func (p Policy) Func() (Func, error) {
	switch p {
	case PolicyFlat:
		return Flat, nil
	case PolicyChunkLit:
		return ChunkLit, nil
	case PolicyFaceShade:
		return FaceShade, nil
	case PolicyChunkLitSpecular:
		return ChunkLitSpecular, nil
	}
	return nil, fmt.Errorf("unknown shading policy %d", int(p))
}

// Terms are the intermediate lighting values of one fragment.
type Terms struct {
	Ambient     mgl32.Vec3
	Diffuse     mgl32.Vec3
	Specular    float32
	Attenuation float32
}

// Evaluate computes the Blinn-Phong terms for a light co-located with the
// camera at eye.
func Evaluate(f Fragment, eye mgl32.Vec3, att Attenuation) Terms {
	toLight := eye.Sub(f.Position)
	distance := toLight.Len()
	lightDir := normalize(toLight)
	viewDir := lightDir
	halfway := normalize(lightDir.Add(viewDir))

	diff := max(lightDir.Dot(f.Normal), 0)
	spec := float32(math.Pow(float64(max(f.Normal.Dot(halfway), 0)), Shininess))

	return Terms{
		Ambient:     f.Base.Mul(AmbientFactor),
		Diffuse:     f.Base.Mul(diff),
		Specular:    SpecularStrength * spec,
		Attenuation: att.At(distance),
	}
}

// Flat is used by the packed-color and raw pipelines. Diffuse is not
// attenuated.
func Flat(f Fragment, eye mgl32.Vec3, att Attenuation) mgl32.Vec3 {
	t := Evaluate(f, eye, att)
	return t.Ambient.Add(t.Diffuse).Add(splat(t.Attenuation * t.Specular))
}

// ChunkLit is the lit chunk policy. The specular term is computed but not
// part of the result.
func ChunkLit(f Fragment, eye mgl32.Vec3, att Attenuation) mgl32.Vec3 {
	t := Evaluate(f, eye, att)
	return t.Ambient.Add(t.Diffuse.Mul(t.Attenuation))
}

// ChunkLitSpecular is ChunkLit plus the attenuated specular term.
func ChunkLitSpecular(f Fragment, eye mgl32.Vec3, att Attenuation) mgl32.Vec3 {
	t := Evaluate(f, eye, att)
	return t.Ambient.Add(t.Diffuse.Mul(t.Attenuation)).Add(splat(t.Attenuation * t.Specular))
}

// FaceShade darkens X faces to 0.6 and Z faces to 0.8. It ignores the light.
func FaceShade(f Fragment, _ mgl32.Vec3, _ Attenuation) mgl32.Vec3 {
	return f.Base.Mul(FaceFactor(f.Normal))
}

// FaceFactor returns the darkening multiplier for a face normal.
func FaceFactor(n mgl32.Vec3) float32 {
	switch {
	case n.X() != 0:
		return 0.6
	case n.Z() != 0:
		return 0.8
	}
	return 1
}

// normalize returns the zero vector for zero-length input instead of NaN.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

func splat(s float32) mgl32.Vec3 {
	return mgl32.Vec3{s, s, s}
}
