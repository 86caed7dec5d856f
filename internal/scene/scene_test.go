package scene

import (
	"testing"

	"voxmesh/internal/config"
	"voxmesh/internal/voxel"
	"voxmesh/internal/world"
)

func TestFixtures(t *testing.T) {
	if n := Single().SolidCount(); n != 1 {
		t.Errorf("Single has %d solid voxels, want 1", n)
	}
	if n := Cube(voxel.Stone).SolidCount(); n != voxel.ChunkVolume {
		t.Errorf("Cube has %d solid voxels, want %d", n, voxel.ChunkVolume)
	}
	if n := Checkerboard().SolidCount(); n != 512 {
		t.Errorf("Checkerboard has %d solid voxels, want 512", n)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseKind("perlin"); err == nil {
		t.Error("ParseKind accepted an unknown scene")
	}
}

func TestTerrainDeterministic(t *testing.T) {
	a, b := NewTerrain(7), NewTerrain(7)
	var ga, gb voxel.Grid
	key := voxel.ChunkKey{X: -1, Y: 0, Z: 2}
	a.Populate(key, &ga)
	b.Populate(key, &gb)
	if ga != gb {
		t.Fatal("same seed produced different chunks")
	}
	if ga.SolidCount() == 0 {
		t.Fatal("ground chunk is empty")
	}
}

func TestTerrainColumn(t *testing.T) {
	tr := NewTerrain(3)
	h := tr.HeightAt(10, -20)
	if bt := tr.BlockAt(10, h+1, -20); bt != voxel.Air && bt != voxel.Water {
		t.Errorf("block above surface = %v", bt)
	}
	if bt := tr.BlockAt(10, h, -20); !bt.IsSolid() {
		t.Errorf("surface block at y=%d is air", h)
	}
	if bt := tr.BlockAt(10, 0, -20); bt != voxel.Stone {
		t.Errorf("floor block = %v, want stone", bt)
	}
}

func TestLoad(t *testing.T) {
	m := world.NewChunkManager(world.NewMemorySink(), config.MeshSettings{Greedy: true, Combined: true}, nil)
	defer m.Close()

	n, err := Load(m, Options{Kind: KindCube, Radius: 1, Height: 2}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 18 || m.Len() != 18 {
		t.Fatalf("loaded %d chunks, manager has %d, want 18", n, m.Len())
	}
	if _, err := Load(m, Options{Kind: "nope"}, nil); err == nil {
		t.Fatal("Load accepted an unknown scene")
	}
}
