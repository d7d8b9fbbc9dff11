package pipeline

import (
	"fmt"

	"voxshade/internal/graphics"
	"voxshade/internal/shading"
	"voxshade/internal/vertex"

	"github.com/go-gl/mathgl/mgl32"
)

// Chunk draws packed voxel chunks textured from the atlas, with the
// looked-at voxel highlighted.
type Chunk struct {
	camera    graphics.CameraUniform
	transform graphics.ChunkTransform
	material  shading.Textured
	policy    shading.Policy
	shade     shading.Func
	att       shading.Attenuation
	vertices  []vertex.ChunkVertex
}

func NewChunk(b Bindings, vertices []vertex.ChunkVertex) (*Chunk, error) {
	b.Kind = KindPackedChunk
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chunk pipeline bindings: %w", err)
	}
	shade, err := b.Policy.Func()
	if err != nil {
		return nil, err
	}
	return &Chunk{
		camera:    *b.Camera,
		transform: *b.Chunk,
		material:  shading.Textured{Sampler: b.Atlas},
		policy:    b.Policy,
		shade:     shade,
		att:       b.Attenuation,
		vertices:  vertices,
	}, nil
}

func (p *Chunk) Kind() Kind             { return KindPackedChunk }
func (p *Chunk) Len() int               { return len(p.vertices) }
func (p *Chunk) Policy() shading.Policy { return p.policy }

func (p *Chunk) Vertex(i int) Varyings {
	v := p.vertices[i]
	world := p.transform.World(v.Packed.Position())
	return Varyings{
		Clip:   p.camera.Clip(world),
		World:  world.Vec3(),
		Normal: v.Packed.Normal(),
		UV:     v.Packed.UV(),
		Voxel:  v.Voxel,
	}
}

func (p *Chunk) Fragment(in Varyings) mgl32.Vec4 {
	f := shading.Fragment{
		Position: in.World,
		Normal:   in.Normal,
		Base:     p.material.Base(in.Color, in.UV),
	}
	c := p.shade(f, p.camera.Eye(), p.att)
	return shading.Opaque(shading.Highlight(c, in.Voxel, p.transform.Look))
}
