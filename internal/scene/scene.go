// Package scene builds block-type fields for tests, benchmarks and the viewer.
package scene

import (
	"fmt"
	"log/slog"

	"voxmesh/internal/voxel"
	"voxmesh/internal/world"
)

// Kind names a scene layout.
type Kind string

const (
	KindSingle       Kind = "single"
	KindCube         Kind = "cube"
	KindCheckerboard Kind = "checkerboard"
	KindTerrain      Kind = "terrain"
)

// Kinds lists every scene layout, in display order.
var Kinds = []Kind{KindSingle, KindCube, KindCheckerboard, KindTerrain}

// ParseKind validates a scene name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown scene %q (want one of %v)", s, Kinds)
}

// Single is an empty chunk with one grass voxel at (15,15,15).
func Single() *voxel.Grid {
	g := &voxel.Grid{}
	g[15][15][15] = voxel.Grass
	return g
}

// Cube is a chunk filled with bt.
func Cube(bt voxel.BlockType) *voxel.Grid {
	g := &voxel.Grid{}
	g.Fill(bt)
	return g
}

// Checkerboard is a y=0 slab of grass with every other cell empty.
func Checkerboard() *voxel.Grid {
	g := &voxel.Grid{}
	for x := range voxel.ChunkSize {
		for z := range voxel.ChunkSize {
			if (x+z)%2 == 0 {
				g[x][0][z] = voxel.Grass
			}
		}
	}
	return g
}

// Options controls Load.
type Options struct {
	Kind Kind
	// Radius is the horizontal chunk radius around the origin; the y range
	// is 0..Height-1 chunks.
	Radius int
	Height int
	Seed   int64
}

// Load inserts the chunks of a scene into m and returns how many were
// inserted. Single and checkerboard scenes ignore Radius.
func Load(m *world.ChunkManager, opts Options, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch opts.Kind {
	case KindSingle:
		m.Insert(voxel.ChunkKey{}, Single())
		return 1, nil
	case KindCheckerboard:
		m.Insert(voxel.ChunkKey{}, Checkerboard())
		return 1, nil
	case KindCube, KindTerrain:
	default:
		return 0, fmt.Errorf("load scene: unknown scene %q", opts.Kind)
	}

	radius := max(opts.Radius, 0)
	height := max(opts.Height, 1)
	terrain := NewTerrain(opts.Seed)
	n := 0
	for x := -radius; x <= radius; x++ {
		for z := -radius; z <= radius; z++ {
			for y := range height {
				key := voxel.ChunkKey{X: int32(x), Y: int32(y), Z: int32(z)}
				var g *voxel.Grid
				if opts.Kind == KindCube {
					g = Cube(voxel.Stone)
				} else {
					g = &voxel.Grid{}
					terrain.Populate(key, g)
					if g.SolidCount() == 0 {
						continue
					}
				}
				m.Insert(key, g)
				n++
			}
		}
	}
	logger.Info("scene loaded", "scene", opts.Kind, "chunks", n, "radius", radius, "seed", opts.Seed)
	return n, nil
}
