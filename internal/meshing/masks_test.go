package meshing

import (
	"math/rand"
	"testing"

	"voxmesh/internal/voxel"
)

func randomGrid(r *rand.Rand, density float64) *voxel.Grid {
	g := &voxel.Grid{}
	types := []voxel.BlockType{voxel.Grass, voxel.Stone, voxel.Snow}
	for x := range voxel.ChunkSize {
		for y := range voxel.ChunkSize {
			for z := range voxel.ChunkSize {
				if r.Float64() < density {
					g[x][y][z] = types[r.Intn(len(types))]
				}
			}
		}
	}
	return g
}

func randomNeighbors(r *rand.Rand, density float64) Neighbors {
	var nb Neighbors
	for d := range nb {
		// leave some neighbours missing
		if r.Intn(3) == 0 {
			continue
		}
		nb[d] = randomGrid(r, density)
	}
	return nb
}

// paddedSolid is the reference definition of the padded region: interior
// from the center grid, the six face slabs from the neighbours, air elsewhere.
func paddedSolid(center *voxel.Grid, nb *Neighbors, px, py, pz int) bool {
	border := 0
	for _, p := range [3]int{px, py, pz} {
		if p == 0 || p == PaddedSize-1 {
			border++
		}
	}
	if border > 1 {
		return false
	}
	x, y, z := px-1, py-1, pz-1
	const last = voxel.ChunkSize - 1
	pick := func(d voxel.Direction) *voxel.Grid { return nb[d] }
	var g *voxel.Grid
	switch {
	case px == 0:
		g, x = pick(voxel.Left), last
	case px == PaddedSize-1:
		g, x = pick(voxel.Right), 0
	case py == 0:
		g, y = pick(voxel.Down), last
	case py == PaddedSize-1:
		g, y = pick(voxel.Up), 0
	case pz == 0:
		g, z = pick(voxel.Backward), last
	case pz == PaddedSize-1:
		g, z = pick(voxel.Forward), 0
	default:
		g = center
	}
	if g == nil {
		return false
	}
	return g[x][y][z].IsSolid()
}

func TestDepthMasksRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	center := randomGrid(r, 0.4)
	nb := randomNeighbors(r, 0.4)
	m := BuildDepthMasks(center, &nb)

	for px := range PaddedSize {
		for py := range PaddedSize {
			for pz := range PaddedSize {
				bx := m.Bit(voxel.AxisX, py, pz, px)
				by := m.Bit(voxel.AxisY, pz, px, py)
				bz := m.Bit(voxel.AxisZ, py, px, pz)
				want := paddedSolid(center, &nb, px, py, pz)
				if bx != by || by != bz || bz != want {
					t.Fatalf("padded (%d,%d,%d): x=%v y=%v z=%v want %v", px, py, pz, bx, by, bz, want)
				}
			}
		}
	}
}

func TestDepthMasksWidth(t *testing.T) {
	var full voxel.Grid
	full.Fill(voxel.Stone)
	nb := Neighbors{&full, &full, &full, &full, &full, &full}
	m := BuildDepthMasks(&full, &nb)
	for a := range 3 {
		for i := range PaddedSize {
			for j := range PaddedSize {
				if m[a][i][j]>>PaddedSize != 0 {
					t.Fatalf("axis %d row (%d,%d) uses bits above 33: %#x", a, i, j, m[a][i][j])
				}
			}
		}
	}
	if m[voxel.AxisX][1][1] != paddedBits {
		t.Fatalf("solid interior row = %#x, want %#x", m[voxel.AxisX][1][1], uint64(paddedBits))
	}
}

func TestSetPaddedMatchesRebuild(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	center := randomGrid(r, 0.5)
	nb := randomNeighbors(r, 0.5)
	m := BuildDepthMasks(center, &nb)

	for i := 0; i < 200; i++ {
		x, y, z := r.Intn(voxel.ChunkSize), r.Intn(voxel.ChunkSize), r.Intn(voxel.ChunkSize)
		bt := voxel.Air
		if r.Intn(2) == 0 {
			bt = voxel.Grass
		}
		center[x][y][z] = bt
		m.SetPadded(x+1, y+1, z+1, bt.IsSolid())
	}
	if fresh := BuildDepthMasks(center, &nb); *fresh != *m {
		t.Fatal("incrementally updated masks differ from a rebuild")
	}
}
