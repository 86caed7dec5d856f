package meshing

import (
	"math/bits"

	"voxmesh/internal/voxel"
)

// EmitGreedy merges each plane's set bits into maximal rectangles and appends
// one face per rectangle to dst. Ordering matches EmitCulled. Width runs
// along the row axis and height along the bit axis.
func EmitGreedy(ps *Planes, dst []voxel.PackedFace) []voxel.PackedFace {
	for _, d := range voxel.Directions {
		for bt := range voxel.NumBlockTypes {
			if pl := ps.p[d][bt]; pl != nil {
				// merging consumes bits, so work on a copy
				work := *pl
				dst = greedyPlane(&work, d, voxel.BlockType(bt), dst)
			}
		}
	}
	return dst
}

func greedyPlane(pl *Plane, d voxel.Direction, bt voxel.BlockType, dst []voxel.PackedFace) []voxel.PackedFace {
	const size = voxel.ChunkSize
	for depth := range size {
		rows := &pl[depth]
		for x := range size {
			z := 0
			for z < size {
				rest := rows[x] >> uint(z)
				if rest == 0 {
					break
				}
				z += bits.TrailingZeros32(rest)

				// run length along the bit axis; at 64 bits so h == 32 is safe
				h := bits.TrailingZeros64(^(uint64(rows[x]) >> uint(z)))
				span := uint64(1)<<uint(h) - 1
				run := uint32(span << uint(z))
				full := uint32(span)

				w := 1
				for x+w < size && (rows[x+w]>>uint(z))&full == full {
					rows[x+w] &^= run
					w++
				}

				dst = append(dst, voxel.PackFace(uint32(x), uint32(z), uint32(depth), d, uint32(w-1), uint32(h-1), bt))
				z += h
			}
		}
	}
	return dst
}
