package scene

import (
	"math"
	"math/rand"
	"testing"
)

func TestLatticeDifferentInputs(t *testing.T) {
	seed := int64(42)
	cases := []struct {
		name string
		a, b [3]int64
	}{
		{"x", [3]int64{1, 0, 0}, [3]int64{2, 0, 0}},
		{"y", [3]int64{0, 1, 0}, [3]int64{0, 2, 0}},
		{"z", [3]int64{0, 0, 1}, [3]int64{0, 0, 2}},
		{"axis swap", [3]int64{1, 2, 3}, [3]int64{3, 2, 1}},
	}
	for _, tc := range cases {
		va := lattice(tc.a[0], tc.a[1], tc.a[2], seed)
		vb := lattice(tc.b[0], tc.b[1], tc.b[2], seed)
		if va == vb {
			t.Errorf("%s: lattice%v == lattice%v == %f", tc.name, tc.a, tc.b, va)
		}
	}
	if lattice(1, 1, 1, 100) == lattice(1, 1, 1, 200) {
		t.Error("lattice ignores the seed")
	}
}

func TestNoiseRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	o := octaves{n: 4, persistence: 0.5, lacunarity: 2.0}
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		for name, v := range map[string]float64{
			"valueNoise2D": valueNoise2D(x, z, 42),
			"valueNoise3D": valueNoise3D(x, y, z, 42),
			"noise2D":      o.noise2D(x, z, 42),
			"noise3D":      o.noise3D(x, y, z, 42),
		} {
			if v < 0 || v > 1 {
				t.Fatalf("%s(%f, %f, %f) = %f, expected in [0,1]", name, x, y, z, v)
			}
		}
	}
}

func TestNoiseDeterministic(t *testing.T) {
	o := octaves{n: 4, persistence: 0.5, lacunarity: 2.0}
	first := o.noise3D(1.5, 2.7, 3.3, 42)
	for i := 0; i < 100; i++ {
		if v := o.noise3D(1.5, 2.7, 3.3, 42); v != first {
			t.Fatalf("noise3D not deterministic: %f != %f", v, first)
		}
	}
}

func TestNoiseContinuity(t *testing.T) {
	v1 := valueNoise3D(1.0, 1.0, 1.0, 42)
	v2 := valueNoise3D(1.01, 1.0, 1.0, 42)
	if diff := math.Abs(v1 - v2); diff >= 0.1 {
		t.Errorf("valueNoise3D jumps by %f over 0.01", diff)
	}
}

func TestNoiseHitsLattice(t *testing.T) {
	// at integer points the interpolation weights vanish
	if got, want := valueNoise3D(3, 4, 5, 9), lattice(3, 4, 5, 9); got != want {
		t.Errorf("valueNoise3D(3,4,5) = %f, want lattice value %f", got, want)
	}
	if got, want := valueNoise2D(3, 5, 9), lattice(3, 0, 5, 9); got != want {
		t.Errorf("valueNoise2D(3,5) = %f, want lattice value %f", got, want)
	}
}
