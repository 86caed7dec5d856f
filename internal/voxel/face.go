package voxel

import (
	"errors"
	"fmt"
)

// PackedFace is one quad encoded in 32 bits. The layout is shared with the
// vertex program and must stay bit-exact:
//
//	bits  0-4   z
//	bits  5-9   y
//	bits 10-14  x
//	bits 15-17  direction
//	bits 18-22  width-1
//	bits 23-27  height-1
//	bits 28-31  block type
type PackedFace uint32

const (
	faceShiftZ      = 0
	faceShiftY      = 5
	faceShiftX      = 10
	faceShiftDir    = 15
	faceShiftWidth  = 18
	faceShiftHeight = 23
	faceShiftBlock  = 28

	mask5 = 0x1F
	mask3 = 0x7
	mask4 = 0xF
)

// ErrEncodingOverflow is returned when a face field does not fit its bits.
var ErrEncodingOverflow = errors.New("voxel: face field out of range")

// Face is the decoded form of a PackedFace. Width and Height are in 1..32.
type Face struct {
	X, Y, Z   int
	Dir       Direction
	Width     int
	Height    int
	BlockType BlockType
}

// NewFace validates and packs a face.
func NewFace(x, y, z int, dir Direction, w, h int, bt BlockType) (PackedFace, error) {
	switch {
	case x < 0 || x >= ChunkSize, y < 0 || y >= ChunkSize, z < 0 || z >= ChunkSize:
		return 0, fmt.Errorf("%w: position (%d,%d,%d)", ErrEncodingOverflow, x, y, z)
	case dir >= NumDirections:
		return 0, fmt.Errorf("%w: direction %d", ErrEncodingOverflow, dir)
	case w < 1 || w > ChunkSize, h < 1 || h > ChunkSize:
		return 0, fmt.Errorf("%w: size %dx%d", ErrEncodingOverflow, w, h)
	case !bt.Valid():
		return 0, fmt.Errorf("%w: block type %d", ErrEncodingOverflow, bt)
	}
	return PackFace(uint32(x), uint32(y), uint32(z), dir, uint32(w-1), uint32(h-1), bt), nil
}

// PackFace packs already-validated fields. w and h are stored minus one.
// It does no range checks and is meant for the meshing inner loops.
func PackFace(x, y, z uint32, dir Direction, wMinus1, hMinus1 uint32, bt BlockType) PackedFace {
	return PackedFace(z<<faceShiftZ |
		y<<faceShiftY |
		x<<faceShiftX |
		uint32(dir)<<faceShiftDir |
		wMinus1<<faceShiftWidth |
		hMinus1<<faceShiftHeight |
		uint32(bt)<<faceShiftBlock)
}

// Decode unpacks every field.
func (f PackedFace) Decode() Face {
	return Face{
		X:         f.X(),
		Y:         f.Y(),
		Z:         f.Z(),
		Dir:       f.Dir(),
		Width:     f.Width(),
		Height:    f.Height(),
		BlockType: f.BlockType(),
	}
}

func (f PackedFace) X() int { return int(uint32(f)>>faceShiftX) & mask5 }
func (f PackedFace) Y() int { return int(uint32(f)>>faceShiftY) & mask5 }
func (f PackedFace) Z() int { return int(uint32(f)>>faceShiftZ) & mask5 }

func (f PackedFace) Dir() Direction { return Direction(uint32(f)>>faceShiftDir) & mask3 }

func (f PackedFace) Width() int  { return int(uint32(f)>>faceShiftWidth)&mask5 + 1 }
func (f PackedFace) Height() int { return int(uint32(f)>>faceShiftHeight)&mask5 + 1 }

func (f PackedFace) BlockType() BlockType { return BlockType(uint32(f)>>faceShiftBlock) & mask4 }

// RotateOnDir swaps the packed position so that the first two coordinates
// lie in the face plane and the third is depth along the normal: Up/Down swap
// y and z, Left/Right swap x and z, Forward/Backward are unchanged. The
// vertex program applies the same swap to recover world-space positions.
func (f PackedFace) RotateOnDir() PackedFace {
	x, y, z := uint32(f.X()), uint32(f.Y()), uint32(f.Z())
	switch f.Dir() {
	case Up, Down:
		y, z = z, y
	case Left, Right:
		x, z = z, x
	default:
		return f
	}
	const posMask = 1<<faceShiftDir - 1
	return PackedFace(uint32(f)&^posMask | z<<faceShiftZ | y<<faceShiftY | x<<faceShiftX)
}

// WorldCells returns the chunk-local cells covered by the face, in world axis
// order. The face's packed position is interpreted in the rotated (in-plane,
// depth) frame produced by the mesher.
func (f PackedFace) WorldCells() [][3]int {
	d := f.Decode()
	cells := make([][3]int, 0, d.Width*d.Height)
	for dw := 0; dw < d.Width; dw++ {
		for dh := 0; dh < d.Height; dh++ {
			row, bit, depth := d.X+dw, d.Y+dh, d.Z
			cells = append(cells, PlaneToLocal(d.Dir, row, bit, depth))
		}
	}
	return cells
}

// PlaneToLocal maps a (row, bit, depth) plane coordinate for dir back to a
// chunk-local (x, y, z) position.
func PlaneToLocal(dir Direction, row, bit, depth int) [3]int {
	switch dir {
	case Up, Down:
		return [3]int{row, depth, bit}
	case Left, Right:
		return [3]int{depth, bit, row}
	default:
		return [3]int{row, bit, depth}
	}
}

func (f PackedFace) String() string {
	d := f.Decode()
	return fmt.Sprintf("%s %s @(%d,%d,%d) %dx%d", d.BlockType, d.Dir, d.X, d.Y, d.Z, d.Width, d.Height)
}
