package raster

import (
	"context"
	"errors"
	"image/color"
	"math"
	"sync"
	"testing"
	"time"

	"voxshade/internal/graphics"
	"voxshade/internal/pipeline"
	"voxshade/internal/shading"
	"voxshade/internal/vertex"

	"github.com/go-gl/mathgl/mgl32"
)

// clipShader feeds clip-space positions straight through.
type clipShader struct {
	clip  []mgl32.Vec4
	color mgl32.Vec3
}

func (s clipShader) Kind() pipeline.Kind { return pipeline.KindRaw }
func (s clipShader) Len() int            { return len(s.clip) }

func (s clipShader) Vertex(i int) pipeline.Varyings {
	return pipeline.Varyings{Clip: s.clip[i], Color: s.color}
}

func (s clipShader) Fragment(v pipeline.Varyings) mgl32.Vec4 {
	return shading.Opaque(v.Color)
}

func newTestContext(t *testing.T, w, h int) *Context {
	t.Helper()
	c := NewContext(w, h, 3)
	t.Cleanup(c.Close)
	c.ClearColor = color.NRGBA{0, 0, 0, 255}
	c.Clear()
	return c
}

func TestClockwiseTriangleIsDrawn(t *testing.T) {
	c := newTestContext(t, 16, 16)
	// clockwise on screen: top-left, right, bottom-left
	tri := clipShader{
		clip:  []mgl32.Vec4{{-1, 1, 0, 1}, {1, 0, 0, 1}, {-1, -1, 0, 1}},
		color: mgl32.Vec3{1, 0, 0},
	}
	if err := c.Draw(context.Background(), tri, nil); err != nil {
		t.Fatal(err)
	}
	if got := c.Color.NRGBAAt(2, 8); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Fatalf("inside pixel: got %v", got)
	}
	if got := c.Color.NRGBAAt(15, 1); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Fatalf("outside pixel: got %v", got)
	}

	ccw := clipShader{clip: []mgl32.Vec4{tri.clip[0], tri.clip[2], tri.clip[1]}, color: mgl32.Vec3{0, 1, 0}}
	c.ResetStats()
	if err := c.Draw(context.Background(), ccw, nil); err != nil {
		t.Fatal(err)
	}
	if s := c.Stats(); s.Culled != 1 || s.Fragments != 0 {
		t.Fatalf("back face should be culled: %s", s)
	}

	c.Cull = CullNone
	c.Clear()
	if err := c.Draw(context.Background(), ccw, nil); err != nil {
		t.Fatal(err)
	}
	if got := c.Color.NRGBAAt(2, 8); got.G != 255 {
		t.Fatalf("with culling off: got %v", got)
	}
}

func TestSharedEdgeShadedOnce(t *testing.T) {
	c := newTestContext(t, 37, 23)
	c.Cull = CullNone
	quad := clipShader{
		clip:  []mgl32.Vec4{{-1, 1, 0, 1}, {1, 1, 0, 1}, {1, -1, 0, 1}, {-1, -1, 0, 1}},
		color: mgl32.Vec3{1, 1, 1},
	}
	if err := c.Draw(context.Background(), quad, []uint32{0, 1, 2, 0, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if got, want := c.Stats().Fragments, int64(37*23); got != want {
		t.Fatalf("fragments: got %d, want %d", got, want)
	}
}

func TestDepthTestKeepsNearest(t *testing.T) {
	near := clipShader{
		clip:  []mgl32.Vec4{{-1, 1, -0.5, 1}, {1, 1, -0.5, 1}, {-1, -1, -0.5, 1}},
		color: mgl32.Vec3{0, 0, 1},
	}
	far := clipShader{
		clip:  []mgl32.Vec4{{-1, 1, 0.5, 1}, {1, 1, 0.5, 1}, {-1, -1, 0.5, 1}},
		color: mgl32.Vec3{1, 0, 0},
	}
	for _, order := range [][]clipShader{{near, far}, {far, near}} {
		c := newTestContext(t, 8, 8)
		for _, s := range order {
			if err := c.Draw(context.Background(), s, nil); err != nil {
				t.Fatal(err)
			}
		}
		if got := c.Color.NRGBAAt(1, 1); got != (color.NRGBA{0, 0, 255, 255}) {
			t.Fatalf("got %v, want the near triangle", got)
		}
		if d := c.Depth[1*8+1]; math.Abs(float64(d)-0.25) > 1e-6 {
			t.Fatalf("depth: got %f", d)
		}
	}
}

func TestNearPlaneClipping(t *testing.T) {
	c := newTestContext(t, 8, 8)
	behind := clipShader{clip: []mgl32.Vec4{{-1, 1, -2, 1}, {1, 1, -2, 1}, {-1, -1, -2, 1}}}
	if err := c.Draw(context.Background(), behind, nil); err != nil {
		t.Fatal(err)
	}
	if s := c.Stats(); s.Clipped != 1 || s.Fragments != 0 {
		t.Fatalf("got %s", s)
	}

	// one vertex behind the near plane: the visible part becomes a quad
	c.ResetStats()
	partial := clipShader{clip: []mgl32.Vec4{{-1, 1, 0, 1}, {1, 1, 0, 1}, {-1, -1, -3, 1}}, color: mgl32.Vec3{1, 1, 1}}
	if err := c.Draw(context.Background(), partial, nil); err != nil {
		t.Fatal(err)
	}
	if s := c.Stats(); s.Clipped != 0 || s.Fragments == 0 {
		t.Fatalf("got %s", s)
	}
}

func TestDrawRejectsBadIndices(t *testing.T) {
	c := newTestContext(t, 4, 4)
	s := clipShader{clip: make([]mgl32.Vec4, 3)}
	if err := c.Draw(context.Background(), s, []uint32{0, 1}); err == nil {
		t.Fatal("expected error for partial triangle")
	}
	if err := c.Draw(context.Background(), s, []uint32{0, 1, 3}); err == nil {
		t.Fatal("expected error for out-of-range index")
	}
}

func TestDrawCancelled(t *testing.T) {
	c := newTestContext(t, 4, 4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := clipShader{clip: []mgl32.Vec4{{-1, 1, 0, 1}, {1, 0, 0, 1}, {-1, -1, 0, 1}}}
	if err := c.Draw(ctx, s, nil); err == nil {
		t.Fatal("expected cancellation error")
	}
}

// gateShader parks the first fragment until release is closed.
type gateShader struct {
	clipShader
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (s *gateShader) Fragment(v pipeline.Varyings) mgl32.Vec4 {
	s.once.Do(func() { close(s.entered) })
	<-s.release
	return s.clipShader.Fragment(v)
}

func TestCloseDuringDraw(t *testing.T) {
	c := NewContext(16, 16, 1)
	s := &gateShader{
		clipShader: clipShader{clip: []mgl32.Vec4{{-1, 1, 0, 1}, {1, 0, 0, 1}, {-1, -1, 0, 1}}},
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	drawErr := make(chan error, 1)
	go func() { drawErr <- c.Draw(context.Background(), s, nil) }()
	<-s.entered

	closed := make(chan struct{})
	go func() {
		c.Close()
		close(closed)
	}()
	for !c.pool.stopped() {
		time.Sleep(time.Millisecond)
	}
	close(s.release)

	select {
	case err := <-drawErr:
		if !errors.Is(err, ErrClosed) {
			t.Fatalf("got %v, want ErrClosed", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Draw still blocked after Close")
	}
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}

	if err := c.Draw(context.Background(), s.clipShader, nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("draw after close: got %v", err)
	}
}

// checkShader verifies in every fragment that the interpolated world
// position lies on the view ray of the interpolated clip position.
type checkShader struct {
	pipeline.Shader
	inv    mgl32.Mat4
	mu     sync.Mutex
	maxErr float32
	count  int
}

func (s *checkShader) Fragment(v pipeline.Varyings) mgl32.Vec4 {
	p := s.inv.Mul4x1(v.Clip)
	world := p.Vec3().Mul(1 / p.W())
	err := world.Sub(v.World).Len()
	s.mu.Lock()
	s.maxErr = max(s.maxErr, err)
	s.count++
	s.mu.Unlock()
	return s.Shader.Fragment(v)
}

func TestPerspectiveCorrectInterpolation(t *testing.T) {
	cam := graphics.Camera{Position: mgl32.Vec3{0, 2, 4}}
	cam.LookAt(mgl32.Vec3{0, 0, -6})
	u := graphics.NewCameraUniform(cam, graphics.NewProjection(64, 48, 60, 0.1, 100))

	// a floor plane receding from the camera
	floor := []vertex.Raw{
		{Position: mgl32.Vec3{-10, 0, 2}, Normal: mgl32.Vec3{0, 1, 0}},
		{Position: mgl32.Vec3{10, 0, 2}, Normal: mgl32.Vec3{0, 1, 0}},
		{Position: mgl32.Vec3{10, 0, -40}, Normal: mgl32.Vec3{0, 1, 0}},
		{Position: mgl32.Vec3{-10, 0, -40}, Normal: mgl32.Vec3{0, 1, 0}},
	}
	raw, err := pipeline.NewRaw(pipeline.Bindings{
		Camera:      &u,
		Model:       &graphics.ModelTransform{Model: mgl32.Ident4()},
		Attenuation: shading.FixedAttenuation,
	}, floor)
	if err != nil {
		t.Fatal(err)
	}
	s := &checkShader{Shader: raw, inv: u.ViewProj.Inv()}

	c := newTestContext(t, 64, 48)
	c.Cull = CullNone
	if err := c.Draw(context.Background(), s, []uint32{0, 1, 2, 0, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if s.count == 0 {
		t.Fatal("floor not visible")
	}
	if s.maxErr > 0.05 {
		t.Fatalf("interpolated world position off by %f", s.maxErr)
	}
}

func BenchmarkDrawQuad(b *testing.B) {
	c := NewContext(256, 256, 4)
	defer c.Close()
	c.Cull = CullNone
	quad := clipShader{
		clip:  []mgl32.Vec4{{-1, 1, 0, 1}, {1, 1, 0, 1}, {1, -1, 0, 1}, {-1, -1, 0, 1}},
		color: mgl32.Vec3{1, 1, 1},
	}
	idx := []uint32{0, 1, 2, 0, 2, 3}
	for i := 0; i < b.N; i++ {
		c.Clear()
		c.Draw(context.Background(), quad, idx)
	}
}
