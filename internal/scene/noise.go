package scene

import (
	"math"
)

// Deterministic value noise. Lattice values come from integer hashing, so a
// seed always yields the same field on every run and platform.

// fade is the 6t^5 - 15t^4 + 10t^3 smoothing curve
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// mix is a SplitMix64 finaliser.
func mix(v uint64) uint64 {
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// lattice maps a lattice point to [0,1]. Each axis has its own multiplier so
// swapping coordinates changes the value.
func lattice(x, y, z, seed int64) float64 {
	h := mix(uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(z)*0x6C62272E07BB0142 + uint64(seed))
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// valueNoise3D trilinearly interpolates the eight surrounding lattice values.
func valueNoise3D(x, y, z float64, seed int64) float64 {
	x0, y0, z0 := math.Floor(x), math.Floor(y), math.Floor(z)
	fx, fy, fz := fade(x-x0), fade(y-y0), fade(z-z0)
	ix, iy, iz := int64(x0), int64(y0), int64(z0)

	var plane [2]float64
	for dz := range int64(2) {
		a := lerp(lattice(ix, iy, iz+dz, seed), lattice(ix+1, iy, iz+dz, seed), fx)
		b := lerp(lattice(ix, iy+1, iz+dz, seed), lattice(ix+1, iy+1, iz+dz, seed), fx)
		plane[dz] = lerp(a, b, fy)
	}
	return lerp(plane[0], plane[1], fz) // [0,1]
}

// valueNoise2D is the y=0 slice of valueNoise3D.
func valueNoise2D(x, z float64, seed int64) float64 {
	x0, z0 := math.Floor(x), math.Floor(z)
	fx, fz := fade(x-x0), fade(z-z0)
	ix, iz := int64(x0), int64(z0)

	a := lerp(lattice(ix, 0, iz, seed), lattice(ix+1, 0, iz, seed), fx)
	b := lerp(lattice(ix, 0, iz+1, seed), lattice(ix+1, 0, iz+1, seed), fx)
	return lerp(a, b, fz) // [0,1]
}

// octaves sums n layers of sample, each at lacunarity times the previous
// frequency and persistence times the previous amplitude, normalised to
// [0,1].
type octaves struct {
	n           int
	persistence float64
	lacunarity  float64
}

func (o octaves) sum(seed int64, sample func(freq float64, seed int64) float64) float64 {
	amplitude, frequency := 1.0, 1.0
	sum, norm := 0.0, 0.0
	for i := range o.n {
		sum += sample(frequency, seed+int64(i*131)) * amplitude
		norm += amplitude
		amplitude *= o.persistence
		frequency *= o.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

func (o octaves) noise2D(x, z float64, seed int64) float64 {
	return o.sum(seed, func(f float64, s int64) float64 { return valueNoise2D(x*f, z*f, s) })
}

func (o octaves) noise3D(x, y, z float64, seed int64) float64 {
	return o.sum(seed, func(f float64, s int64) float64 { return valueNoise3D(x*f, y*f, z*f, s) })
}
