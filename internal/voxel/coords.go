package voxel

import "fmt"

// ChunkKey is a chunk's coordinate in chunk space.
type ChunkKey struct {
	X, Y, Z int32
}

// Origin returns the chunk's world-space origin, key*32.
func (k ChunkKey) Origin() [3]int32 {
	return [3]int32{k.X * ChunkSize, k.Y * ChunkSize, k.Z * ChunkSize}
}

// Neighbor returns the key of the chunk adjacent in direction d.
func (k ChunkKey) Neighbor(d Direction) ChunkKey {
	o := d.Offset()
	return ChunkKey{X: k.X + int32(o[0]), Y: k.Y + int32(o[1]), Z: k.Z + int32(o[2])}
}

// Less orders keys by X, then Y, then Z.
func (k ChunkKey) Less(o ChunkKey) bool {
	if k.X != o.X {
		return k.X < o.X
	}
	if k.Y != o.Y {
		return k.Y < o.Y
	}
	return k.Z < o.Z
}

func (k ChunkKey) String() string {
	return fmt.Sprintf("(%d,%d,%d)", k.X, k.Y, k.Z)
}

// SplitAxis splits one world coordinate into its chunk coordinate and its
// in-chunk index.
//
// Non-negative coordinates use plain division. Negative coordinates use the
// mirrored rule: chunk = w/32 - 1 with truncating division and
// index = 31 - (|w| mod 32). The vertex program offsets negative chunks by +1
// to match, so this must stay bit-exact.
func SplitAxis(w int) (chunk int32, local int) {
	if w >= 0 {
		return int32(w / ChunkSize), w % ChunkSize
	}
	a := -w
	return int32(w/ChunkSize - 1), ChunkSize - 1 - a%ChunkSize
}

// SplitWorldPos splits a world position into a chunk key and an in-chunk
// position.
func SplitWorldPos(x, y, z int) (ChunkKey, [3]int) {
	cx, lx := SplitAxis(x)
	cy, ly := SplitAxis(y)
	cz, lz := SplitAxis(z)
	return ChunkKey{X: cx, Y: cy, Z: cz}, [3]int{lx, ly, lz}
}

// JoinAxis is the inverse of SplitAxis for every (chunk, local) pair that
// SplitAxis can produce.
func JoinAxis(chunk int32, local int) int {
	if chunk >= 0 {
		return int(chunk)*ChunkSize + local
	}
	return int(chunk)*ChunkSize + 1 + local
}

// JoinWorldPos maps a chunk key and in-chunk position back to world space.
func JoinWorldPos(k ChunkKey, local [3]int) [3]int {
	return [3]int{JoinAxis(k.X, local[0]), JoinAxis(k.Y, local[1]), JoinAxis(k.Z, local[2])}
}
