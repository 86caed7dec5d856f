package voxel

import (
	"errors"
	"testing"
)

func TestPackRoundTrip(t *testing.T) {
	for _, dir := range Directions {
		for _, pos := range [][3]int{{0, 0, 0}, {31, 31, 31}, {1, 17, 30}, {15, 0, 9}} {
			for _, size := range [][2]int{{1, 1}, {32, 32}, {7, 19}, {32, 1}} {
				for _, bt := range []BlockType{Air, Grass, Stone, Snow, 15} {
					f, err := NewFace(pos[0], pos[1], pos[2], dir, size[0], size[1], bt)
					if err != nil {
						t.Fatalf("NewFace(%v,%v,%v,%v): %v", pos, dir, size, bt, err)
					}
					got := f.Decode()
					want := Face{X: pos[0], Y: pos[1], Z: pos[2], Dir: dir, Width: size[0], Height: size[1], BlockType: bt}
					if got != want {
						t.Fatalf("decode(encode(%+v)) = %+v", want, got)
					}
				}
			}
		}
	}
}

func TestPackBitLayout(t *testing.T) {
	f, err := NewFace(3, 2, 1, Up, 5, 6, Stone)
	if err != nil {
		t.Fatal(err)
	}
	want := uint32(1) | 2<<5 | 3<<10 | uint32(Up)<<15 | 4<<18 | 5<<23 | uint32(Stone)<<28
	if uint32(f) != want {
		t.Fatalf("packed = %#08x, want %#08x", uint32(f), want)
	}
}

func TestNewFaceOverflow(t *testing.T) {
	cases := []struct {
		name          string
		x, y, z, w, h int
		dir           Direction
		bt            BlockType
	}{
		{"x", 32, 0, 0, 1, 1, Up, Grass},
		{"negative z", 0, 0, -1, 1, 1, Up, Grass},
		{"zero width", 0, 0, 0, 0, 1, Up, Grass},
		{"tall", 0, 0, 0, 1, 33, Up, Grass},
		{"direction", 0, 0, 0, 1, 1, 6, Grass},
		{"block", 0, 0, 0, 1, 1, Up, 16},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFace(tc.x, tc.y, tc.z, tc.dir, tc.w, tc.h, tc.bt)
			if !errors.Is(err, ErrEncodingOverflow) {
				t.Fatalf("err = %v, want ErrEncodingOverflow", err)
			}
		})
	}
}

func TestRotateOnDirInvolution(t *testing.T) {
	for _, dir := range Directions {
		f, _ := NewFace(4, 9, 27, dir, 3, 2, Snow)
		r := f.RotateOnDir()
		if r.RotateOnDir() != f {
			t.Fatalf("%v: rotate twice = %v, want %v", dir, r.RotateOnDir(), f)
		}
		if r.Dir() != dir || r.Width() != 3 || r.Height() != 2 || r.BlockType() != Snow {
			t.Fatalf("%v: rotation touched non-position fields: %v", dir, r)
		}
		got := [3]int{r.X(), r.Y(), r.Z()}
		var want [3]int
		switch dir {
		case Up, Down:
			want = [3]int{4, 27, 9}
		case Left, Right:
			want = [3]int{27, 9, 4}
		default:
			want = [3]int{4, 9, 27}
		}
		if got != want {
			t.Fatalf("%v: rotated position = %v, want %v", dir, got, want)
		}
	}
}

func TestRotateMatchesPlaneToLocal(t *testing.T) {
	for _, dir := range Directions {
		f, _ := NewFace(5, 6, 7, dir, 1, 1, Grass)
		r := f.RotateOnDir()
		if got, want := [3]int{r.X(), r.Y(), r.Z()}, PlaneToLocal(dir, 5, 6, 7); got != want {
			t.Fatalf("%v: rotate = %v, PlaneToLocal = %v", dir, got, want)
		}
	}
}

func TestWorldCells(t *testing.T) {
	f, _ := NewFace(2, 4, 10, Up, 2, 3, Grass)
	cells := f.WorldCells()
	if len(cells) != 6 {
		t.Fatalf("got %d cells, want 6", len(cells))
	}
	seen := make(map[[3]int]bool)
	for _, c := range cells {
		if c[1] != 10 {
			t.Fatalf("up face cell %v not at depth y=10", c)
		}
		seen[c] = true
	}
	for x := 2; x < 4; x++ {
		for z := 4; z < 7; z++ {
			if !seen[[3]int{x, 10, z}] {
				t.Fatalf("missing cell (%d,10,%d)", x, z)
			}
		}
	}
}
