package raster

import (
	"fmt"
	"sync/atomic"
)

// Stats counts the work done since the last ResetStats.
type Stats struct {
	Triangles int64 // submitted
	Culled    int64 // back-facing or degenerate
	Clipped   int64 // entirely behind the near plane
	Fragments int64 // shaded and written
}

func (s Stats) String() string {
	return fmt.Sprintf("tris=%d culled=%d clipped=%d frags=%d", s.Triangles, s.Culled, s.Clipped, s.Fragments)
}

type counters struct {
	triangles atomic.Int64
	culled    atomic.Int64
	clipped   atomic.Int64
	fragments atomic.Int64
}

func (c *Context) Stats() Stats {
	return Stats{
		Triangles: c.stats.triangles.Load(),
		Culled:    c.stats.culled.Load(),
		Clipped:   c.stats.clipped.Load(),
		Fragments: c.stats.fragments.Load(),
	}
}

func (c *Context) ResetStats() {
	c.stats.triangles.Store(0)
	c.stats.culled.Store(0)
	c.stats.clipped.Store(0)
	c.stats.fragments.Store(0)
}
