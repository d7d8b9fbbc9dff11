package render

import (
	"context"
	"strings"
	"testing"

	"voxshade/internal/config"
	"voxshade/internal/overlay"
	"voxshade/internal/picking"
	"voxshade/internal/pipeline"
	"voxshade/internal/scene"
	"voxshade/internal/vertex"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-gl/mathgl/mgl32"
)

type flatSampler mgl32.Vec3

func (s flatSampler) Sample(mgl32.Vec2) mgl32.Vec3 { return mgl32.Vec3(s) }

type emptyWorld struct{}

func (emptyWorld) Solid(x, y, z int32) bool { return false }

func singleBlock() *scene.Voxels {
	v := scene.NewVoxels()
	v.Set(vertex.Voxel{0, 0, 0}, scene.BlockTypeStone)
	return v
}

func newTestRenderer(t *testing.T, kind pipeline.Kind, v *scene.Voxels, world picking.Solid) *Renderer {
	t.Helper()
	layer, err := NewSceneLayer(kind, v, flatSampler{0.3, 0.3, 0.3})
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(64, 64, 2, world, layer)
	t.Cleanup(r.Dispose)
	cam := r.Camera()
	cam.Position = mgl32.Vec3{0.5, 0.5, 3.5}
	cam.LookAt(mgl32.Vec3{0.5, 0.5, 0.5})
	return r
}

func TestLookedAtVoxelIsHighlighted(t *testing.T) {
	v := singleBlock()
	hit := newTestRenderer(t, pipeline.KindPackedChunk, v, v)
	miss := newTestRenderer(t, pipeline.KindPackedChunk, v, emptyWorld{})

	hs, err := hit.Render(context.Background(), config.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if !hs.Look.Hit || hs.Look.Voxel != (vertex.Voxel{0, 0, 0}) {
		t.Fatalf("look: %s", spew.Sdump(hs.Look))
	}
	ms, err := miss.Render(context.Background(), config.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if ms.Look.Hit {
		t.Fatal("empty world should not be picked")
	}

	bright, plain := hit.Frame().NRGBAAt(32, 32), miss.Frame().NRGBAAt(32, 32)
	if plain == hit.Target().ClearColor {
		t.Fatal("block not drawn at the centre")
	}
	if bright.R <= plain.R || bright.G <= plain.G || bright.B <= plain.B {
		t.Fatalf("highlighted %v should be brighter than %v", bright, plain)
	}
}

func TestChunksOutsideFrustumAreSkipped(t *testing.T) {
	v := singleBlock()
	v.Set(vertex.Voxel{100, 0, 0}, scene.BlockTypeDirt)
	r := newTestRenderer(t, pipeline.KindPackedChunk, v, v)

	s, err := r.Render(context.Background(), config.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if s.ChunksDrawn != 1 || s.ChunksCulled != 1 {
		t.Fatalf("got %s", s)
	}
	if s.Raster.Triangles != 12 {
		t.Fatalf("only the visible cube should reach the rasterizer, got %d triangles", s.Raster.Triangles)
	}
}

func TestColorAndRawLayersMatch(t *testing.T) {
	v := singleBlock()
	v.Set(vertex.Voxel{1, 0, -1}, scene.BlockTypeGrass)
	color := newTestRenderer(t, pipeline.KindPackedColor, v, v)
	raw := newTestRenderer(t, pipeline.KindRaw, v, v)
	for _, r := range []*Renderer{color, raw} {
		if _, err := r.Render(context.Background(), config.Defaults()); err != nil {
			t.Fatal(err)
		}
	}

	a, b := color.Frame(), raw.Frame()
	if a.NRGBAAt(32, 32) == color.Target().ClearColor {
		t.Fatal("block not drawn at the centre")
	}
	diff := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	for i := range a.Pix {
		if diff(a.Pix[i], b.Pix[i]) > 1 {
			px := i / 4
			t.Fatalf("pixel %d,%d: color %v raw %v", px%64, px/64, a.NRGBAAt(px%64, px/64), b.NRGBAAt(px%64, px/64))
		}
	}
}

func TestMeshesRebuiltAfterEdit(t *testing.T) {
	v := singleBlock()
	r := newTestRenderer(t, pipeline.KindPackedChunk, v, v)
	s, err := r.Render(context.Background(), config.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if s.Raster.Triangles != 12 {
		t.Fatalf("got %d triangles", s.Raster.Triangles)
	}

	v.Set(vertex.Voxel{0, 1, 0}, scene.BlockTypeLog)
	if s, err = r.Render(context.Background(), config.Defaults()); err != nil {
		t.Fatal(err)
	}
	if s.Raster.Triangles != 24 {
		t.Fatalf("got %d triangles after adding a block", s.Raster.Triangles)
	}
}

func TestRenderCancelled(t *testing.T) {
	r := newTestRenderer(t, pipeline.KindPackedChunk, singleBlock(), emptyWorld{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Render(ctx, config.Defaults())
	if err == nil || !strings.Contains(err.Error(), "chunks") {
		t.Fatalf("got %v", err)
	}
}

func TestLabelLayer(t *testing.T) {
	var seen *FrameStats
	label := &LabelLayer{
		Text: overlay.NewTextRenderer(),
		Lines: func(rc RenderContext) []string {
			seen = rc.Stats
			return []string{"policy " + rc.Settings.ChunkPolicy().String()}
		},
	}
	r := NewRenderer(96, 32, 1, emptyWorld{}, label)
	defer r.Dispose()
	if _, err := r.Render(context.Background(), config.Defaults()); err != nil {
		t.Fatal(err)
	}
	if seen == nil {
		t.Fatal("label did not see the frame stats")
	}
	if r.Frame().NRGBAAt(3, 3) == r.Target().ClearColor {
		t.Fatal("label backdrop not drawn")
	}
}

func TestUpdateViewport(t *testing.T) {
	r := NewRenderer(32, 32, 1, emptyWorld{})
	defer r.Dispose()
	r.UpdateViewport(64, 16)
	if b := r.Frame().Bounds(); b.Dx() != 64 || b.Dy() != 16 {
		t.Fatalf("got %v", b)
	}
	if r.Projection().Aspect != 4 {
		t.Fatalf("aspect: %g", r.Projection().Aspect)
	}
}

func TestUnknownLayerKind(t *testing.T) {
	if _, err := NewSceneLayer(pipeline.Kind(42), scene.NewVoxels(), nil); err == nil {
		t.Fatal("expected error")
	}
}
