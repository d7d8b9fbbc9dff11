// Package render draws a voxel scene through the shading pipelines into a
// software render target, one layer at a time.
package render

import (
	"context"
	"fmt"
	"time"

	"voxshade/internal/config"
	"voxshade/internal/graphics"
	"voxshade/internal/picking"
	"voxshade/internal/raster"

	"github.com/dustin/go-humanize"
)

// RenderContext provides shared per-frame state for all renderables
type RenderContext struct {
	Ctx      context.Context
	Target   *raster.Context
	Camera   graphics.CameraUniform
	Frustum  graphics.Frustum
	Look     picking.Result
	Settings config.Settings
	Stats    *FrameStats
}

// Renderable is one layer of a frame.
type Renderable interface {
	Name() string
	Render(rc RenderContext) error
}

// FrameStats summarises one frame.
type FrameStats struct {
	Raster       raster.Stats
	ChunksDrawn  int
	ChunksCulled int
	Look         picking.Result
	Elapsed      time.Duration
}

func (s FrameStats) String() string {
	look := "none"
	if s.Look.Hit {
		look = fmt.Sprintf("%v@%.1f", s.Look.Voxel, s.Look.Distance)
	}
	return fmt.Sprintf("%s chunks=%d/%d look=%s frags=%s time=%s",
		s.Raster, s.ChunksDrawn, s.ChunksDrawn+s.ChunksCulled, look,
		humanize.Comma(s.Raster.Fragments), s.Elapsed.Round(time.Microsecond))
}
