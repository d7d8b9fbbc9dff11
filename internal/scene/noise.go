package scene

import "math"

// Deterministic 2D value noise for the demo terrain.

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// hash2 is a SplitMix64 finaliser over the lattice coordinate and seed.
func hash2(x, z, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(z)*0x517CC1B727220A95 + uint64(seed)
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// lattice maps a lattice point to [0,1].
func lattice(x, z, seed int64) float64 {
	return float64(hash2(x, z, seed)&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func valueNoise2D(x, z float64, seed int64) float64 {
	x0, z0 := math.Floor(x), math.Floor(z)
	fx, fz := fade(x-x0), fade(z-z0)
	ix, iz := int64(x0), int64(z0)

	top := lerp(lattice(ix, iz, seed), lattice(ix+1, iz, seed), fx)
	bottom := lerp(lattice(ix, iz+1, seed), lattice(ix+1, iz+1, seed), fx)
	return lerp(top, bottom, fz)
}

// octaveNoise2D sums octaves of value noise, normalised to [0,1].
func octaveNoise2D(x, z float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	amp, freq := 1.0, 1.0
	var sum, norm float64
	for i := 0; i < octaves; i++ {
		sum += valueNoise2D(x*freq, z*freq, seed+int64(i*131)) * amp
		norm += amp
		amp *= persistence
		freq *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
