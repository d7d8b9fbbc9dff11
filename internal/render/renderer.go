package render

import (
	"context"
	"fmt"
	"image"
	"time"

	"voxshade/internal/config"
	"voxshade/internal/graphics"
	"voxshade/internal/picking"
	"voxshade/internal/profiling"
	"voxshade/internal/raster"
)

// Default projection parameters.
const (
	DefaultFovY = 60
	DefaultNear = 0.1
	DefaultFar  = 256
)

// Renderer orchestrates rendering via renderable layers
type Renderer struct {
	renderables []Renderable
	target      *raster.Context
	camera      graphics.Camera
	projection  graphics.Projection
	world       picking.Solid
}

// NewRenderer creates a width x height renderer that picks the looked-at
// voxel from world and draws rs in order.
func NewRenderer(width, height, workers int, world picking.Solid, rs ...Renderable) *Renderer {
	return &Renderer{
		renderables: rs,
		target:      raster.NewContext(width, height, workers),
		projection:  graphics.NewProjection(width, height, DefaultFovY, DefaultNear, DefaultFar),
		world:       world,
	}
}

// Render clears the target and draws every layer with the given settings.
func (r *Renderer) Render(ctx context.Context, s config.Settings) (FrameStats, error) {
	defer profiling.Track("render.Frame")()
	start := time.Now()

	r.target.ResetStats()
	r.target.Clear()

	u := graphics.NewCameraUniform(r.camera, r.projection)
	stats := FrameStats{
		Look: picking.Raycast(r.camera.Position, r.camera.Forward(), picking.MaxReachDistance, r.world),
	}
	rc := RenderContext{
		Ctx:      ctx,
		Target:   r.target,
		Camera:   u,
		Frustum:  graphics.NewFrustum(u.ViewProj),
		Look:     stats.Look,
		Settings: s,
		Stats:    &stats,
	}
	for _, layer := range r.renderables {
		if err := layer.Render(rc); err != nil {
			return stats, fmt.Errorf("render %s: %w", layer.Name(), err)
		}
	}

	stats.Raster = r.target.Stats()
	stats.Elapsed = time.Since(start)
	return stats, nil
}

// Frame returns the color target. It is overwritten by the next Render.
func (r *Renderer) Frame() *image.NRGBA {
	return r.target.Color
}

func (r *Renderer) Camera() *graphics.Camera {
	return &r.camera
}

func (r *Renderer) Projection() *graphics.Projection {
	return &r.projection
}

// Target exposes the raster state, for culling options.
func (r *Renderer) Target() *raster.Context {
	return r.target
}

// UpdateViewport resizes the target and the projection aspect.
func (r *Renderer) UpdateViewport(width, height int) {
	if width == r.target.Width && height == r.target.Height {
		return
	}
	r.target.Resize(width, height)
	r.projection.Resize(width, height)
}

// Dispose stops the raster workers.
func (r *Renderer) Dispose() {
	r.target.Close()
}
