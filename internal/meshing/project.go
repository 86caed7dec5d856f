package meshing

import (
	"math/bits"

	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"
)

// Plane is one direction/block-type face set as Plane[depth][row], with the
// bit index running along the third axis:
//
//	Up/Down           depth=y row=x bit=z
//	Forward/Backward  depth=z row=x bit=y
//	Left/Right        depth=x row=z bit=y
type Plane [voxel.ChunkSize][voxel.ChunkSize]uint32

// Planes buckets face planes by direction and block type. Unused block types
// stay nil.
type Planes struct {
	p [voxel.NumDirections][voxel.NumBlockTypes]*Plane
}

// Get returns the plane for (d, bt) or nil if no face of that kind exists.
func (ps *Planes) Get(d voxel.Direction, bt voxel.BlockType) *Plane {
	return ps.p[d][bt]
}

func (ps *Planes) plane(d voxel.Direction, bt voxel.BlockType) *Plane {
	pl := ps.p[d][bt]
	if pl == nil {
		pl = &Plane{}
		ps.p[d][bt] = pl
	}
	return pl
}

// Reset clears every plane but keeps the allocations.
func (ps *Planes) Reset() {
	for d := range ps.p {
		for bt := range ps.p[d] {
			if pl := ps.p[d][bt]; pl != nil {
				*pl = Plane{}
			}
		}
	}
}

// sample maps a (row, depth, bit) projector coordinate to the voxel it came
// from.
func sample(g *voxel.Grid, d voxel.Direction, x, y, z int) voxel.BlockType {
	switch d {
	case voxel.Up, voxel.Down:
		return g[x][y][z]
	case voxel.Forward, voxel.Backward:
		return g[x][z][y]
	default:
		return g[y][z][x]
	}
}

// Project reorients the face masks so the bit axis is horizontal and splits
// them by block type.
func Project(f *FaceMasks, g *voxel.Grid) *Planes {
	ps := &Planes{}
	ps.Project(f, g)
	return ps
}

// Project fills ps from f. ps must be empty (new or Reset).
func (ps *Planes) Project(f *FaceMasks, g *voxel.Grid) {
	defer profiling.Track("meshing.Project")()
	const interior = 1<<voxel.ChunkSize - 1
	for _, d := range voxel.Directions {
		for z := range voxel.ChunkSize {
			for x := range voxel.ChunkSize {
				col := f[d][z+1][x+1] >> 1 & interior
				for col != 0 {
					y := bits.TrailingZeros64(col)
					col &= col - 1
					bt := sample(g, d, x, y, z)
					ps.plane(d, bt)[y][x] |= 1 << z
				}
			}
		}
	}
}

// Count returns the number of set bits across every plane.
func (ps *Planes) Count() int {
	n := 0
	for d := range ps.p {
		for _, pl := range ps.p[d] {
			if pl == nil {
				continue
			}
			for y := range pl {
				for x := range pl[y] {
					n += bits.OnesCount32(pl[y][x])
				}
			}
		}
	}
	return n
}
