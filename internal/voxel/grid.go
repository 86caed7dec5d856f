package voxel

// ChunkSize is the edge length of a chunk in voxels.
const ChunkSize = 32

// ChunkVolume is the number of voxels in a chunk.
const ChunkVolume = ChunkSize * ChunkSize * ChunkSize

// Grid is a dense 32x32x32 voxel array indexed [x][y][z]. The zero value is
// all Air.
type Grid [ChunkSize][ChunkSize][ChunkSize]BlockType

// InBounds reports whether (x, y, z) addresses a voxel inside a chunk.
func InBounds(x, y, z int) bool {
	return uint(x) < ChunkSize && uint(y) < ChunkSize && uint(z) < ChunkSize
}

// Get returns the block at (x, y, z). Out-of-range reads return Air.
func (g *Grid) Get(x, y, z int) BlockType {
	if !InBounds(x, y, z) {
		return Air
	}
	return g[x][y][z]
}

// Set writes the block at (x, y, z) and reports whether the position was in
// range.
func (g *Grid) Set(x, y, z int, bt BlockType) bool {
	if !InBounds(x, y, z) {
		return false
	}
	g[x][y][z] = bt
	return true
}

// Fill sets every voxel to bt.
func (g *Grid) Fill(bt BlockType) {
	for x := range ChunkSize {
		for y := range ChunkSize {
			for z := range ChunkSize {
				g[x][y][z] = bt
			}
		}
	}
}

// ReplaceInvalid overwrites every voxel whose block type does not fit in 4
// bits with bt and returns how many were replaced.
func (g *Grid) ReplaceInvalid(bt BlockType) int {
	n := 0
	for x := range ChunkSize {
		for y := range ChunkSize {
			for z := range ChunkSize {
				if !g[x][y][z].Valid() {
					g[x][y][z] = bt
					n++
				}
			}
		}
	}
	return n
}

// SolidCount returns the number of non-air voxels.
func (g *Grid) SolidCount() int {
	n := 0
	for x := range ChunkSize {
		for y := range ChunkSize {
			for z := range ChunkSize {
				if g[x][y][z].IsSolid() {
					n++
				}
			}
		}
	}
	return n
}
