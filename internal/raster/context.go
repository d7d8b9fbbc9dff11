// Package raster is a software rasterizer that runs a pipeline's vertex
// and fragment functions and writes the result into an image.
package raster

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"voxshade/internal/pipeline"
	"voxshade/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

type CullMode int

const (
	CullNone CullMode = iota
	CullBack
	CullFront
)

// FrontFace is the winding, as seen on screen, of front-facing triangles.
type FrontFace int

const (
	FrontCW FrontFace = iota
	FrontCCW
)

type fragmentShader func(pipeline.Varyings) mgl32.Vec4

// triangle is a clipped triangle in screen space, wound so area > 0.
type triangle struct {
	pos        [3]mgl32.Vec3 // x, y in pixels; z depth in [0,1]
	invW       [3]float32
	vary       [3]pipeline.Varyings
	area       float32
	minX, maxX int
	minY, maxY int
}

// Context owns a color and depth target. Draw calls must not overlap.
type Context struct {
	Width, Height int
	Color         *image.NRGBA
	Depth         []float32
	ClearColor    color.NRGBA
	Cull          CullMode
	FrontFace     FrontFace

	pool    *WorkerPool
	bands   int
	stats   counters
	scratch []pipeline.Varyings
}

// NewContext allocates a width x height target and starts workers band
// workers. It defaults to back-face culling with clockwise front faces.
func NewContext(width, height, workers int) *Context {
	if workers < 1 {
		workers = 1
	}
	c := &Context{
		ClearColor: color.NRGBA{135, 206, 235, 255},
		Cull:       CullBack,
		FrontFace:  FrontCW,
		bands:      workers * 4,
	}
	c.Resize(width, height)
	c.pool = newWorkerPool(c, workers)
	return c
}

// ErrClosed is returned by a Draw that overlapped Close. Bands not yet
// shaded are left as they were.
var ErrClosed = errors.New("raster: context closed")

// Close stops the band workers. A Draw running concurrently returns
// ErrClosed.
func (c *Context) Close() {
	c.pool.shutdown()
}

// Resize reallocates the targets. The contents are cleared.
func (c *Context) Resize(width, height int) {
	c.Width, c.Height = max(width, 1), max(height, 1)
	c.Color = image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	c.Depth = make([]float32, c.Width*c.Height)
	c.Clear()
}

// Clear fills the color target with ClearColor and the depth target with 1.
func (c *Context) Clear() {
	defer profiling.Track("raster.Clear")()
	pix := c.Color.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = c.ClearColor.R
		pix[i+1] = c.ClearColor.G
		pix[i+2] = c.ClearColor.B
		pix[i+3] = c.ClearColor.A
	}
	for i := range c.Depth {
		c.Depth[i] = 1
	}
}

// Draw runs the bound pipeline over an indexed triangle list. A nil
// indices slice draws the vertex buffer in order.
func (c *Context) Draw(ctx context.Context, s pipeline.Shader, indices []uint32) error {
	defer profiling.Track("raster.Draw")()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("draw cancelled: %w", err)
	}

	n := s.Len()
	if indices == nil {
		indices = make([]uint32, n)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}

	verts := make([]pipeline.Varyings, n)
	for i := range verts {
		verts[i] = s.Vertex(i)
	}

	tris := make([]triangle, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		a, b, d := indices[i], indices[i+1], indices[i+2]
		if int(a) >= n || int(b) >= n || int(d) >= n {
			return fmt.Errorf("triangle %d indexes past %d vertices", i/3, n)
		}
		c.stats.triangles.Add(1)
		poly := clipNear([3]pipeline.Varyings{verts[a], verts[b], verts[d]}, c.scratch)
		c.scratch = poly
		if len(poly) < 3 {
			c.stats.clipped.Add(1)
			continue
		}
		for k := 1; k+1 < len(poly); k++ {
			t, ok := c.setup(poly[0], poly[k], poly[k+1])
			if ok {
				tris = append(tris, t)
			}
		}
	}
	if len(tris) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	bandHeight := (c.Height + c.bands - 1) / c.bands
	for y0 := 0; y0 < c.Height; y0 += bandHeight {
		wg.Add(1)
		job := bandJob{y0: y0, y1: min(y0+bandHeight, c.Height), tris: tris, shader: s.Fragment, done: &wg}
		if !c.pool.submit(ctx, job) {
			wg.Done()
			wg.Wait()
			if c.pool.stopped() {
				return ErrClosed
			}
			return fmt.Errorf("draw interrupted: %w", context.Cause(ctx))
		}
	}
	wg.Wait()
	if c.pool.stopped() {
		return ErrClosed
	}
	return nil
}

// setup maps a clip-space triangle to the screen, applies face culling and
// computes its pixel bounds.
func (c *Context) setup(a, b, d pipeline.Varyings) (triangle, bool) {
	t := triangle{vary: [3]pipeline.Varyings{a, b, d}}
	w, h := float32(c.Width), float32(c.Height)
	for i, v := range t.vary {
		invW := 1 / v.Clip.W()
		ndc := v.Clip.Vec3().Mul(invW)
		t.pos[i] = mgl32.Vec3{(ndc.X() + 1) * 0.5 * w, (1 - ndc.Y()) * 0.5 * h, ndc.Z()*0.5 + 0.5}
		t.invW[i] = invW
	}

	area := edge(t.pos[0], t.pos[1], t.pos[2].Vec2())
	if area == 0 {
		c.stats.culled.Add(1)
		return t, false
	}
	// y grows downwards, so positive area is clockwise on screen
	front := (area > 0) == (c.FrontFace == FrontCW)
	if (c.Cull == CullBack && !front) || (c.Cull == CullFront && front) {
		c.stats.culled.Add(1)
		return t, false
	}
	if area < 0 {
		t.pos[1], t.pos[2] = t.pos[2], t.pos[1]
		t.invW[1], t.invW[2] = t.invW[2], t.invW[1]
		t.vary[1], t.vary[2] = t.vary[2], t.vary[1]
		area = -area
	}
	t.area = area

	minX := min(t.pos[0].X(), t.pos[1].X(), t.pos[2].X())
	maxX := max(t.pos[0].X(), t.pos[1].X(), t.pos[2].X())
	minY := min(t.pos[0].Y(), t.pos[1].Y(), t.pos[2].Y())
	maxY := max(t.pos[0].Y(), t.pos[1].Y(), t.pos[2].Y())
	t.minX = max(int(math.Floor(float64(minX))), 0)
	t.maxX = min(int(math.Ceil(float64(maxX))), c.Width-1)
	t.minY = max(int(math.Floor(float64(minY))), 0)
	t.maxY = min(int(math.Ceil(float64(maxY))), c.Height-1)
	if t.minX > t.maxX || t.minY > t.maxY {
		return t, false
	}
	return t, true
}

func (c *Context) rasterizeBand(job bandJob) {
	var fragments int64
	for i := range job.tris {
		t := &job.tris[i]
		y0 := max(t.minY, job.y0)
		y1 := min(t.maxY, job.y1-1)
		for y := y0; y <= y1; y++ {
			py := float32(y) + 0.5
			for x := t.minX; x <= t.maxX; x++ {
				p := mgl32.Vec2{float32(x) + 0.5, py}
				w0 := edge(t.pos[1], t.pos[2], p)
				w1 := edge(t.pos[2], t.pos[0], p)
				w2 := edge(t.pos[0], t.pos[1], p)
				if !covers(w0, t.pos[1], t.pos[2]) || !covers(w1, t.pos[2], t.pos[0]) || !covers(w2, t.pos[0], t.pos[1]) {
					continue
				}
				b0, b1, b2 := w0/t.area, w1/t.area, w2/t.area

				z := b0*t.pos[0].Z() + b1*t.pos[1].Z() + b2*t.pos[2].Z()
				di := y*c.Width + x
				if z < 0 || z > 1 || z >= c.Depth[di] {
					continue
				}

				// perspective-correct weights
				q0, q1, q2 := b0*t.invW[0], b1*t.invW[1], b2*t.invW[2]
				s := 1 / (q0 + q1 + q2)
				v := interpolate(&t.vary, q0*s, q1*s, q2*s)

				c.Depth[di] = z
				c.setPixel(x, y, job.shader(v))
				fragments++
			}
		}
	}
	c.stats.fragments.Add(fragments)
}

// edge is twice the signed area of (a, b, p).
func edge(a, b mgl32.Vec3, p mgl32.Vec2) float32 {
	return (b.X()-a.X())*(p.Y()-a.Y()) - (b.Y()-a.Y())*(p.X()-a.X())
}

// covers applies the top-left fill rule so shared edges are drawn once.
func covers(w float32, a, b mgl32.Vec3) bool {
	if w > 0 {
		return true
	}
	if w < 0 {
		return false
	}
	top := a.Y() == b.Y() && b.X() > a.X()
	left := b.Y() < a.Y()
	return top || left
}

func interpolate(v *[3]pipeline.Varyings, q0, q1, q2 float32) pipeline.Varyings {
	return pipeline.Varyings{
		Clip:   v[0].Clip.Mul(q0).Add(v[1].Clip.Mul(q1)).Add(v[2].Clip.Mul(q2)),
		World:  v[0].World.Mul(q0).Add(v[1].World.Mul(q1)).Add(v[2].World.Mul(q2)),
		Normal: v[0].Normal.Mul(q0).Add(v[1].Normal.Mul(q1)).Add(v[2].Normal.Mul(q2)),
		Color:  v[0].Color.Mul(q0).Add(v[1].Color.Mul(q1)).Add(v[2].Color.Mul(q2)),
		UV:     v[0].UV.Mul(q0).Add(v[1].UV.Mul(q1)).Add(v[2].UV.Mul(q2)),
		Voxel:  v[0].Voxel,
	}
}

func (c *Context) setPixel(x, y int, col mgl32.Vec4) {
	i := c.Color.PixOffset(x, y)
	p := c.Color.Pix[i : i+4 : i+4]
	p[0] = toByte(col[0])
	p[1] = toByte(col[1])
	p[2] = toByte(col[2])
	p[3] = toByte(col[3])
}

func toByte(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
