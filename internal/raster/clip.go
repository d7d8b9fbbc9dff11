package raster

import (
	"voxshade/internal/pipeline"
)

// wEpsilon rejects vertices that sit on the eye plane after clipping.
const wEpsilon = 1e-5

// nearDistance is the signed distance to the near plane in clip space
// (z >= -w is inside).
func nearDistance(v pipeline.Varyings) float32 {
	return v.Clip.Z() + v.Clip.W()
}

// clipNear clips a triangle against the near plane with Sutherland-Hodgman
// and returns the resulting convex polygon (0, 3 or 4 vertices). The voxel
// of every output vertex is the provoking vertex's.
func clipNear(tri [3]pipeline.Varyings, out []pipeline.Varyings) []pipeline.Varyings {
	out = out[:0]
	for i := 0; i < 3; i++ {
		a := tri[i]
		b := tri[(i+1)%3]
		da, db := nearDistance(a), nearDistance(b)
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			out = append(out, lerpVaryings(a, b, t))
		}
	}
	for i := range out {
		out[i].Voxel = tri[0].Voxel
		if out[i].Clip.W() <= wEpsilon {
			return out[:0]
		}
	}
	return out
}

func lerpVaryings(a, b pipeline.Varyings, t float32) pipeline.Varyings {
	return pipeline.Varyings{
		Clip:   a.Clip.Add(b.Clip.Sub(a.Clip).Mul(t)),
		World:  a.World.Add(b.World.Sub(a.World).Mul(t)),
		Normal: a.Normal.Add(b.Normal.Sub(a.Normal).Mul(t)),
		Color:  a.Color.Add(b.Color.Sub(a.Color).Mul(t)),
		UV:     a.UV.Add(b.UV.Sub(a.UV).Mul(t)),
		Voxel:  a.Voxel,
	}
}
