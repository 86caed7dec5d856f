package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 8.0
)

// BlockSource answers solidity queries in world coordinates. Voxel (x,y,z)
// occupies the unit cube [x,x+1) x [y,y+1) x [z,z+1).
type BlockSource interface {
	IsAir(x, y, z int) bool
}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int
	// Face is the side of the hit voxel the ray entered through.
	Face     voxel.Direction
	Distance float32
	Hit      bool
}

var entryFace = [3][2]voxel.Direction{
	{voxel.Right, voxel.Left},
	{voxel.Up, voxel.Down},
	{voxel.Forward, voxel.Backward},
}

// Raycast walks the voxels along the ray from start (Amanatides-Woo DDA) and
// returns the first solid one between minDist and maxDist.
func Raycast(start mgl32.Vec3, direction mgl32.Vec3, minDist, maxDist float32, world BlockSource) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	if direction.Len() == 0 {
		return RaycastResult{}
	}
	dir := direction.Normalize()

	var cell, step [3]int
	var tMax, tDelta [3]float32
	inf := float32(math.Inf(1))
	for a := range 3 {
		cell[a] = int(math.Floor(float64(start[a])))
		switch d := dir[a]; {
		case d > 0:
			step[a] = 1
			tMax[a] = (float32(cell[a]+1) - start[a]) / d
			tDelta[a] = 1 / d
		case d < 0:
			step[a] = -1
			tMax[a] = (start[a] - float32(cell[a])) / -d
			tDelta[a] = -1 / d
		default:
			tMax[a] = inf
			tDelta[a] = inf
		}
	}

	prev := cell
	face := voxel.Direction(0)
	t := float32(0)
	for t <= maxDist {
		if t >= minDist && !world.IsAir(cell[0], cell[1], cell[2]) {
			return RaycastResult{
				HitPosition:      cell,
				AdjacentPosition: prev,
				Face:             face,
				Distance:         t,
				Hit:              true,
			}
		}

		a := 0
		if tMax[1] < tMax[a] {
			a = 1
		}
		if tMax[2] < tMax[a] {
			a = 2
		}
		prev = cell
		cell[a] += step[a]
		t = tMax[a]
		tMax[a] += tDelta[a]
		if step[a] > 0 {
			face = entryFace[a][1]
		} else {
			face = entryFace[a][0]
		}
	}
	return RaycastResult{}
}
