package pipeline

import (
	"fmt"

	"voxshade/internal/graphics"
	"voxshade/internal/shading"
	"voxshade/internal/vertex"

	"github.com/go-gl/mathgl/mgl32"
)

// Raw draws unpacked meshes. Normals are passed through as given.
type Raw struct {
	camera   graphics.CameraUniform
	model    graphics.ModelTransform
	att      shading.Attenuation
	vertices []vertex.Raw
}

func NewRaw(b Bindings, vertices []vertex.Raw) (*Raw, error) {
	b.Kind = KindRaw
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid raw pipeline bindings: %w", err)
	}
	return &Raw{camera: *b.Camera, model: *b.Model, att: b.Attenuation, vertices: vertices}, nil
}

func (p *Raw) Kind() Kind { return KindRaw }
func (p *Raw) Len() int   { return len(p.vertices) }

func (p *Raw) Vertex(i int) Varyings {
	v := p.vertices[i]
	world := p.model.World(v.Position)
	return Varyings{
		Clip:   p.camera.Clip(world),
		World:  world.Vec3(),
		Normal: v.Normal,
		Color:  v.Color,
	}
}

func (p *Raw) Fragment(in Varyings) mgl32.Vec4 {
	f := shading.Fragment{Position: in.World, Normal: in.Normal, Base: in.Color}
	return shading.Opaque(shading.Flat(f, p.camera.Eye(), p.att))
}
