package shading

import "github.com/go-gl/mathgl/mgl32"

// Sampler looks up an RGB color at a texture coordinate. Filtering and
// addressing belong to the implementation.
type Sampler interface {
	Sample(uv mgl32.Vec2) mgl32.Vec3
}

// Material resolves the base color of a fragment.
type Material interface {
	Base(color mgl32.Vec3, uv mgl32.Vec2) mgl32.Vec3
}

// VertexColor uses the interpolated per-vertex color.
type VertexColor struct{}

func (VertexColor) Base(color mgl32.Vec3, _ mgl32.Vec2) mgl32.Vec3 { return color }

// Textured samples the bound atlas at the fragment UV.
type Textured struct {
	Sampler Sampler
}

func (m Textured) Base(_ mgl32.Vec3, uv mgl32.Vec2) mgl32.Vec3 {
	return m.Sampler.Sample(uv)
}
