package meshing

import (
	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"
)

// PaddedSize is the chunk edge plus a one-voxel border on each side.
const PaddedSize = voxel.ChunkSize + 2

// paddedBits covers bit positions 0..33.
const paddedBits = 1<<PaddedSize - 1

// DepthMasks stores solidity along each axis for the padded 34^3 region.
//
//	m[AxisX][py][pz] bit px
//	m[AxisY][pz][px] bit py
//	m[AxisZ][py][px] bit pz
//
// Padded coordinate 0 is the neighbour's last slab, 33 the next neighbour's
// first slab and 1..32 the chunk interior. Only the low 34 bits are used.
type DepthMasks [3][PaddedSize][PaddedSize]uint64

// Neighbors holds the six adjacent chunk grids indexed by voxel.Direction.
// A nil entry reads as all air.
type Neighbors [voxel.NumDirections]*voxel.Grid

// BuildDepthMasks builds fresh masks for center and its neighbours.
func BuildDepthMasks(center *voxel.Grid, nb *Neighbors) *DepthMasks {
	m := &DepthMasks{}
	m.Build(center, nb)
	return m
}

// Build overwrites m with the masks for center and its neighbours.
func (m *DepthMasks) Build(center *voxel.Grid, nb *Neighbors) {
	defer profiling.Track("meshing.BuildDepthMasks")()
	*m = DepthMasks{}

	for x := range voxel.ChunkSize {
		for y := range voxel.ChunkSize {
			for z := range voxel.ChunkSize {
				if center[x][y][z].IsSolid() {
					m.set(x+1, y+1, z+1)
				}
			}
		}
	}

	if nb == nil {
		return
	}
	const last = voxel.ChunkSize - 1
	for a := range voxel.ChunkSize {
		for b := range voxel.ChunkSize {
			if g := nb[voxel.Left]; g != nil && g[last][a][b].IsSolid() {
				m.set(0, a+1, b+1)
			}
			if g := nb[voxel.Right]; g != nil && g[0][a][b].IsSolid() {
				m.set(PaddedSize-1, a+1, b+1)
			}
			if g := nb[voxel.Down]; g != nil && g[a][last][b].IsSolid() {
				m.set(a+1, 0, b+1)
			}
			if g := nb[voxel.Up]; g != nil && g[a][0][b].IsSolid() {
				m.set(a+1, PaddedSize-1, b+1)
			}
			if g := nb[voxel.Backward]; g != nil && g[a][b][last].IsSolid() {
				m.set(a+1, b+1, 0)
			}
			if g := nb[voxel.Forward]; g != nil && g[a][b][0].IsSolid() {
				m.set(a+1, b+1, PaddedSize-1)
			}
		}
	}
}

func (m *DepthMasks) set(px, py, pz int) {
	m[voxel.AxisX][py][pz] |= 1 << px
	m[voxel.AxisY][pz][px] |= 1 << py
	m[voxel.AxisZ][py][px] |= 1 << pz
}

func (m *DepthMasks) clear(px, py, pz int) {
	m[voxel.AxisX][py][pz] &^= 1 << px
	m[voxel.AxisY][pz][px] &^= 1 << py
	m[voxel.AxisZ][py][px] &^= 1 << pz
}

// SetPadded updates the three bits of one padded cell. It is how edits keep
// cached masks current without a rebuild.
func (m *DepthMasks) SetPadded(px, py, pz int, solid bool) {
	if uint(px) >= PaddedSize || uint(py) >= PaddedSize || uint(pz) >= PaddedSize {
		return
	}
	if solid {
		m.set(px, py, pz)
	} else {
		m.clear(px, py, pz)
	}
}

// Bit reports bit b of row (i, j) on axis a.
func (m *DepthMasks) Bit(a voxel.Axis, i, j, b int) bool {
	return m[a][i][j]>>b&1 != 0
}
