package meshing

import (
	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"
)

// FaceMasks holds, per direction, the padded rows of DepthMasks reduced to
// the voxels whose neighbour in that direction is empty. Row layout follows
// the axis mask of the direction.
type FaceMasks [voxel.NumDirections][PaddedSize][PaddedSize]uint64

var axisDirections = [3][2]voxel.Direction{
	voxel.AxisX: {voxel.Left, voxel.Right},
	voxel.AxisY: {voxel.Down, voxel.Up},
	voxel.AxisZ: {voxel.Backward, voxel.Forward},
}

// Cull derives the six face masks with one shift and one AND-NOT per row.
func Cull(m *DepthMasks) *FaceMasks {
	f := &FaceMasks{}
	f.Cull(m)
	return f
}

// Cull overwrites f from m.
func (f *FaceMasks) Cull(m *DepthMasks) {
	defer profiling.Track("meshing.Cull")()
	for a := range 3 {
		neg, pos := axisDirections[a][0], axisDirections[a][1]
		for i := range PaddedSize {
			for j := range PaddedSize {
				col := m[a][i][j]
				f[neg][i][j] = col &^ (col << 1) & paddedBits
				f[pos][i][j] = col &^ (col >> 1)
			}
		}
	}
}
