package voxel

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// Direction is one of the six face orientations. The numeric values are part
// of the packed face format and must not change.
type Direction uint8

const (
	Left     Direction = iota // -X
	Right                     // +X
	Up                        // +Y
	Down                      // -Y
	Forward                   // +Z
	Backward                  // -Z
)

// NumDirections is the number of face directions.
const NumDirections = 6

// Directions lists every direction in index order.
var Directions = [NumDirections]Direction{Left, Right, Up, Down, Forward, Backward}

// Axis is a world axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axis returns the axis the direction's normal runs along.
func (d Direction) Axis() Axis {
	switch d {
	case Left, Right:
		return AxisX
	case Up, Down:
		return AxisY
	default:
		return AxisZ
	}
}

// Positive reports whether the direction points along +axis.
func (d Direction) Positive() bool {
	return d == Right || d == Up || d == Forward
}

// Opposite returns the direction facing the other way on the same axis.
func (d Direction) Opposite() Direction {
	return d ^ 1
}

// Offset returns the integer step one voxel along the direction.
func (d Direction) Offset() [3]int {
	switch d {
	case Left:
		return [3]int{-1, 0, 0}
	case Right:
		return [3]int{1, 0, 0}
	case Up:
		return [3]int{0, 1, 0}
	case Down:
		return [3]int{0, -1, 0}
	case Forward:
		return [3]int{0, 0, 1}
	default:
		return [3]int{0, 0, -1}
	}
}

// Normal returns the unit vector for the direction.
func (d Direction) Normal() mgl32.Vec3 {
	o := d.Offset()
	return mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	return "direction(" + strconv.Itoa(int(d)) + ")"
}
