package pipeline

import (
	"fmt"

	"voxshade/internal/graphics"
	"voxshade/internal/shading"
	"voxshade/internal/vertex"

	"github.com/go-gl/mathgl/mgl32"
)

// Color draws packed position+color meshes with flat-color lighting.
type Color struct {
	camera   graphics.CameraUniform
	model    graphics.ModelTransform
	att      shading.Attenuation
	vertices []vertex.ColorVertex
}

// NewColor validates b and binds vertices to a packed-color pipeline.
func NewColor(b Bindings, vertices []vertex.ColorVertex) (*Color, error) {
	b.Kind = KindPackedColor
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid color pipeline bindings: %w", err)
	}
	return &Color{camera: *b.Camera, model: *b.Model, att: b.Attenuation, vertices: vertices}, nil
}

func (p *Color) Kind() Kind { return KindPackedColor }
func (p *Color) Len() int   { return len(p.vertices) }

func (p *Color) Vertex(i int) Varyings {
	v := p.vertices[i]
	world := p.model.World(v.Packed.Position())
	return Varyings{
		Clip:   p.camera.Clip(world),
		World:  world.Vec3(),
		Normal: v.Packed.Normal(),
		Color:  v.Color,
	}
}

func (p *Color) Fragment(in Varyings) mgl32.Vec4 {
	f := shading.Fragment{
		Position: in.World,
		Normal:   in.Normal,
		Base:     shading.VertexColor{}.Base(in.Color, in.UV),
	}
	return shading.Opaque(shading.Flat(f, p.camera.Eye(), p.att))
}
