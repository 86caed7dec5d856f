package meshing

import (
	"math/bits"
	"math/rand"
	"testing"

	"voxmesh/internal/voxel"
)

type faceCell struct {
	dir  voxel.Direction
	pos  [3]int
	kind voxel.BlockType
}

// expectedFaces is the brute-force culling law: a solid voxel shows a face in
// direction d iff its neighbour in d is not solid.
func expectedFaces(center *voxel.Grid, nb *Neighbors) map[faceCell]bool {
	out := make(map[faceCell]bool)
	for x := range voxel.ChunkSize {
		for y := range voxel.ChunkSize {
			for z := range voxel.ChunkSize {
				bt := center[x][y][z]
				if !bt.IsSolid() {
					continue
				}
				for _, d := range voxel.Directions {
					o := d.Offset()
					if !paddedSolid(center, nb, x+1+o[0], y+1+o[1], z+1+o[2]) {
						out[faceCell{d, [3]int{x, y, z}, bt}] = true
					}
				}
			}
		}
	}
	return out
}

// coveredCells expands emitted faces to unit cells and fails on overlap.
func coveredCells(t *testing.T, faces []voxel.PackedFace) map[faceCell]bool {
	t.Helper()
	out := make(map[faceCell]bool)
	for _, f := range faces {
		for _, c := range f.WorldCells() {
			fc := faceCell{f.Dir(), c, f.BlockType()}
			if out[fc] {
				t.Fatalf("cell %+v covered twice", fc)
			}
			out[fc] = true
		}
	}
	return out
}

func sameCells(t *testing.T, name string, got, want map[faceCell]bool) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: %d cells, want %d", name, len(got), len(want))
	}
	for c := range want {
		if !got[c] {
			t.Fatalf("%s: missing %+v", name, c)
		}
	}
}

func meshGrid(g *voxel.Grid, nb *Neighbors, greedy bool) []voxel.PackedFace {
	job := MeshJob{Grid: g, Greedy: greedy}
	if nb != nil {
		job.Neighbors = *nb
	}
	return Mesh(job).Faces
}

func TestCullingLaw(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	center := randomGrid(r, 0.35)
	nb := randomNeighbors(r, 0.5)

	fm := Cull(BuildDepthMasks(center, &nb))
	want := expectedFaces(center, &nb)

	n := 0
	for _, d := range voxel.Directions {
		for i := 1; i <= voxel.ChunkSize; i++ {
			for j := 1; j <= voxel.ChunkSize; j++ {
				n += bits.OnesCount64(fm[d][i][j] >> 1 & (1<<voxel.ChunkSize - 1))
			}
		}
	}
	if n != len(want) {
		t.Fatalf("interior face bits = %d, brute force = %d", n, len(want))
	}

	sameCells(t, "culled", coveredCells(t, meshGrid(center, &nb, false)), want)
}

func TestGreedyCoversCulled(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		r := rand.New(rand.NewSource(seed))
		center := randomGrid(r, 0.2*float64(seed))
		nb := randomNeighbors(r, 0.5)

		culled := meshGrid(center, &nb, false)
		greedy := meshGrid(center, &nb, true)
		if len(greedy) > len(culled) {
			t.Fatalf("seed %d: greedy emitted %d faces, culled %d", seed, len(greedy), len(culled))
		}
		sameCells(t, "greedy", coveredCells(t, greedy), coveredCells(t, culled))
	}
}

func TestSingleVoxel(t *testing.T) {
	var g voxel.Grid
	g[15][15][15] = voxel.Grass
	faces := meshGrid(&g, nil, true)
	if len(faces) != 6 {
		t.Fatalf("got %d faces, want 6", len(faces))
	}
	seen := make(map[voxel.Direction]bool)
	for _, f := range faces {
		d := f.Decode()
		if d.Width != 1 || d.Height != 1 || d.BlockType != voxel.Grass {
			t.Fatalf("unexpected face %v", f)
		}
		seen[d.Dir] = true
		r := f.RotateOnDir()
		if got := [3]int{r.X(), r.Y(), r.Z()}; got != [3]int{15, 15, 15} {
			t.Fatalf("%v: rotated position %v", d.Dir, got)
		}
	}
	if len(seen) != 6 {
		t.Fatalf("directions = %v", seen)
	}
}

func TestSolidChunkNoNeighbors(t *testing.T) {
	var g voxel.Grid
	g.Fill(voxel.Stone)
	faces := meshGrid(&g, nil, true)
	if len(faces) != 6 {
		t.Fatalf("got %d faces, want 6", len(faces))
	}
	for _, f := range faces {
		d := f.Decode()
		if d.Width != 32 || d.Height != 32 {
			t.Fatalf("face %v is not a full 32x32 quad", f)
		}
		wantDepth := 0
		if d.Dir.Positive() {
			wantDepth = 31
		}
		if d.Z != wantDepth {
			t.Fatalf("face %v at depth %d, want %d", f, d.Z, wantDepth)
		}
	}
}

func TestSolidChunkSolidNeighbors(t *testing.T) {
	var g voxel.Grid
	g.Fill(voxel.Stone)
	nb := Neighbors{&g, &g, &g, &g, &g, &g}
	if faces := meshGrid(&g, &nb, true); len(faces) != 0 {
		t.Fatalf("got %d faces, want 0", len(faces))
	}
	if faces := meshGrid(&g, &nb, false); len(faces) != 0 {
		t.Fatalf("culled: got %d faces, want 0", len(faces))
	}
}

func TestCheckerboardSlab(t *testing.T) {
	var g voxel.Grid
	for x := range voxel.ChunkSize {
		for z := range voxel.ChunkSize {
			if (x+z)%2 == 0 {
				g[x][0][z] = voxel.Grass
			}
		}
	}
	count := func(faces []voxel.PackedFace, d voxel.Direction) int {
		n := 0
		for _, f := range faces {
			if f.Dir() == d {
				n++
			}
		}
		return n
	}
	for _, greedy := range []bool{true, false} {
		faces := meshGrid(&g, nil, greedy)
		if up, down := count(faces, voxel.Up), count(faces, voxel.Down); up != 512 || down != 512 {
			t.Fatalf("greedy=%v: up=%d down=%d, want 512 each", greedy, up, down)
		}
		if greedy {
			for _, f := range faces {
				if f.Width() != 1 || f.Height() != 1 {
					t.Fatalf("isolated cells merged into %v", f)
				}
			}
		}
	}
}

func TestTwoBlockTypeStripe(t *testing.T) {
	var g voxel.Grid
	for x := range voxel.ChunkSize {
		bt := voxel.Grass
		if x >= 16 {
			bt = voxel.Stone
		}
		g[x][0][0] = bt
	}
	var ups []voxel.Face
	for _, f := range meshGrid(&g, nil, true) {
		if f.Dir() == voxel.Up {
			ups = append(ups, f.Decode())
		}
	}
	if len(ups) != 2 {
		t.Fatalf("got %d up faces, want 2: %+v", len(ups), ups)
	}
	want := map[voxel.BlockType]int{voxel.Grass: 0, voxel.Stone: 16}
	for _, f := range ups {
		startX, ok := want[f.BlockType]
		if !ok {
			t.Fatalf("unexpected block type %v", f.BlockType)
		}
		if f.Width != 16 || f.Height != 1 || f.X != startX || f.Y != 0 || f.Z != 0 {
			t.Fatalf("%v face = %+v", f.BlockType, f)
		}
		delete(want, f.BlockType)
	}
}

func TestGreedyFullRowClamp(t *testing.T) {
	// a full 32-bit run must not overflow the mask shift
	var pl Plane
	for x := range voxel.ChunkSize {
		pl[3][x] = ^uint32(0)
	}
	faces := greedyPlane(&pl, voxel.Up, voxel.Snow, nil)
	if len(faces) != 1 {
		t.Fatalf("got %d faces, want 1", len(faces))
	}
	if d := faces[0].Decode(); d.Width != 32 || d.Height != 32 || d.Z != 3 {
		t.Fatalf("face = %+v", d)
	}
}

func TestGreedyLShape(t *testing.T) {
	var pl Plane
	pl[0][0] = 0b1111
	pl[0][1] = 0b0011
	pl[0][2] = 0b0011
	faces := greedyPlane(&pl, voxel.Up, voxel.Grass, nil)
	if len(faces) != 2 {
		t.Fatalf("got %d faces, want 2: %v", len(faces), faces)
	}
	first, second := faces[0].Decode(), faces[1].Decode()
	if first.X != 0 || first.Y != 0 || first.Width != 1 || first.Height != 4 {
		t.Fatalf("first = %+v", first)
	}
	if second.X != 1 || second.Y != 0 || second.Width != 2 || second.Height != 2 {
		t.Fatalf("second = %+v", second)
	}
}

func BenchmarkMeshGreedyRandom(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	g := randomGrid(r, 0.5)
	nb := randomNeighbors(r, 0.5)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = meshGrid(g, &nb, true)
	}
}
