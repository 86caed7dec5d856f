package meshing

import (
	"math/bits"

	"voxmesh/internal/voxel"
)

// EmitCulled appends one 1x1 face per set plane bit to dst. Faces come out
// direction-major, then by ascending block type, depth and row. The packed
// position is (row, bit, depth); RotateOnDir maps it to chunk-local x, y, z.
func EmitCulled(ps *Planes, dst []voxel.PackedFace) []voxel.PackedFace {
	for _, d := range voxel.Directions {
		for bt := range voxel.NumBlockTypes {
			pl := ps.p[d][bt]
			if pl == nil {
				continue
			}
			for y := range voxel.ChunkSize {
				for x := range voxel.ChunkSize {
					row := pl[y][x]
					for row != 0 {
						z := bits.TrailingZeros32(row)
						row &= row - 1
						dst = append(dst, voxel.PackFace(uint32(x), uint32(z), uint32(y), d, 0, 0, voxel.BlockType(bt)))
					}
				}
			}
		}
	}
	return dst
}
