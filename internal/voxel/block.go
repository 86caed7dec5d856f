package voxel

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockType identifies the material of a voxel. Values must fit in 4 bits so
// they can ride in the top nibble of a PackedFace.
type BlockType uint8

const (
	Air BlockType = iota
	Grass
	Stone
	Snow
	Dirt
	Sand
	Water
)

// NumBlockTypes is the number of block types representable in a packed face.
const NumBlockTypes = 16

var blockNames = [...]string{
	Air:   "air",
	Grass: "grass",
	Stone: "stone",
	Snow:  "snow",
	Dirt:  "dirt",
	Sand:  "sand",
	Water: "water",
}

// IsSolid reports whether the block occludes its neighbours. Air is the only
// empty block.
func (b BlockType) IsSolid() bool {
	return b != Air
}

// Valid reports whether b fits in the packed face's 4-bit block field.
func (b BlockType) Valid() bool {
	return b < NumBlockTypes
}

func (b BlockType) String() string {
	if int(b) < len(blockNames) && blockNames[b] != "" {
		return blockNames[b]
	}
	return "block(" + strconv.Itoa(int(b)) + ")"
}

var blockColors = [NumBlockTypes]mgl32.Vec3{
	Grass: {0.36, 0.62, 0.28},
	Stone: {0.50, 0.50, 0.52},
	Snow:  {0.93, 0.95, 0.97},
	Dirt:  {0.47, 0.33, 0.22},
	Sand:  {0.86, 0.80, 0.56},
	Water: {0.22, 0.40, 0.78},
}

// Color is the flat RGB colour of the block. Unnamed types are black.
func (b BlockType) Color() mgl32.Vec3 {
	if !b.Valid() {
		return mgl32.Vec3{}
	}
	return blockColors[b]
}
