package render

import (
	"fmt"

	"voxshade/internal/graphics"
	"voxshade/internal/overlay"
	"voxshade/internal/pipeline"
	"voxshade/internal/scene"
	"voxshade/internal/shading"
	"voxshade/internal/vertex"

	"github.com/go-gl/mathgl/mgl32"
)

// meshCache rebuilds meshes only when the voxel set has changed.
type meshCache[V any] struct {
	voxels *scene.Voxels
	build  func(*scene.Voxels) []scene.Mesh[V]
	meshes []scene.Mesh[V]
	built  uint64
	ok     bool
}

func (c *meshCache[V]) get() []scene.Mesh[V] {
	mods := c.voxels.ModCount()
	if !c.ok || mods != c.built {
		c.meshes = c.build(c.voxels)
		c.built, c.ok = mods, true
	}
	return c.meshes
}

// NewSceneLayer returns the layer that draws v through the pipeline of the
// given kind. atlas is only read by the chunk pipeline.
func NewSceneLayer(kind pipeline.Kind, v *scene.Voxels, atlas shading.Sampler) (Renderable, error) {
	switch kind {
	case pipeline.KindPackedChunk:
		return &ChunkLayer{cache: meshCache[vertex.ChunkVertex]{voxels: v, build: (*scene.Voxels).ChunkMeshes}, atlas: atlas}, nil
	case pipeline.KindPackedColor:
		return &ColorLayer{cache: meshCache[vertex.ColorVertex]{voxels: v, build: (*scene.Voxels).ColorMeshes}}, nil
	case pipeline.KindRaw:
		return &RawLayer{cache: meshCache[vertex.Raw]{voxels: v, build: rawMeshes}}, nil
	}
	return nil, fmt.Errorf("unknown pipeline kind %d", int(kind))
}

// ChunkLayer draws textured chunks and highlights the looked-at voxel.
type ChunkLayer struct {
	cache meshCache[vertex.ChunkVertex]
	atlas shading.Sampler
}

func (l *ChunkLayer) Name() string { return "chunks" }

func (l *ChunkLayer) Render(rc RenderContext) error {
	b := pipeline.Bindings{
		Camera:      &rc.Camera,
		Atlas:       l.atlas,
		Policy:      rc.Settings.ChunkPolicy(),
		Attenuation: rc.Settings.LightAttenuation(),
	}
	look := rc.Look.Look()
	meshes := l.cache.get()
	for i := range meshes {
		m := &meshes[i]
		if !rc.Frustum.ContainsChunk(m.Origin) {
			rc.Stats.ChunksCulled++
			continue
		}
		b.Chunk = &graphics.ChunkTransform{Origin: m.Origin, Look: look}
		p, err := pipeline.NewChunk(b, m.Vertices)
		if err != nil {
			return err
		}
		if err := rc.Target.Draw(rc.Ctx, p, m.Indices); err != nil {
			return err
		}
		rc.Stats.ChunksDrawn++
	}
	return nil
}

// ColorLayer draws per-block colored chunks placed by a model matrix.
type ColorLayer struct {
	cache meshCache[vertex.ColorVertex]
}

func (l *ColorLayer) Name() string { return "color" }

func (l *ColorLayer) Render(rc RenderContext) error {
	b := pipeline.Bindings{Camera: &rc.Camera, Attenuation: rc.Settings.LightAttenuation()}
	meshes := l.cache.get()
	for i := range meshes {
		m := &meshes[i]
		if !rc.Frustum.ContainsChunk(m.Origin) {
			rc.Stats.ChunksCulled++
			continue
		}
		o := m.Origin
		b.Model = &graphics.ModelTransform{Model: mgl32.Translate3D(float32(o[0]), float32(o[1]), float32(o[2]))}
		p, err := pipeline.NewColor(b, m.Vertices)
		if err != nil {
			return err
		}
		if err := rc.Target.Draw(rc.Ctx, p, m.Indices); err != nil {
			return err
		}
		rc.Stats.ChunksDrawn++
	}
	return nil
}

// RawLayer draws the same meshes as ColorLayer from unpacked world-space
// vertices.
type RawLayer struct {
	cache meshCache[vertex.Raw]
}

func (l *RawLayer) Name() string { return "raw" }

func (l *RawLayer) Render(rc RenderContext) error {
	b := pipeline.Bindings{
		Camera:      &rc.Camera,
		Model:       &graphics.ModelTransform{Model: mgl32.Ident4()},
		Attenuation: rc.Settings.LightAttenuation(),
	}
	meshes := l.cache.get()
	for i := range meshes {
		m := &meshes[i]
		if !rc.Frustum.ContainsChunk(m.Origin) {
			rc.Stats.ChunksCulled++
			continue
		}
		p, err := pipeline.NewRaw(b, m.Vertices)
		if err != nil {
			return err
		}
		if err := rc.Target.Draw(rc.Ctx, p, m.Indices); err != nil {
			return err
		}
		rc.Stats.ChunksDrawn++
	}
	return nil
}

// rawMeshes unpacks the color meshes into world space.
func rawMeshes(v *scene.Voxels) []scene.Mesh[vertex.Raw] {
	colored := v.ColorMeshes()
	out := make([]scene.Mesh[vertex.Raw], len(colored))
	for i, m := range colored {
		o := mgl32.Vec3{float32(m.Origin[0]), float32(m.Origin[1]), float32(m.Origin[2])}
		raw := scene.Mesh[vertex.Raw]{Origin: m.Origin, Indices: m.Indices, Vertices: make([]vertex.Raw, len(m.Vertices))}
		for j, cv := range m.Vertices {
			raw.Vertices[j] = vertex.Raw{
				Position: cv.Packed.Position().Add(o),
				Normal:   cv.Packed.Normal(),
				Color:    cv.Color,
			}
		}
		out[i] = raw
	}
	return out
}

// LabelLayer writes text lines into the top-left corner of the frame.
type LabelLayer struct {
	Text  *overlay.TextRenderer
	Lines func(rc RenderContext) []string
}

func (l *LabelLayer) Name() string { return "label" }

func (l *LabelLayer) Render(rc RenderContext) error {
	if l.Lines == nil {
		return nil
	}
	l.Text.RenderLines(rc.Target.Color, l.Lines(rc), 2, 2)
	return nil
}
