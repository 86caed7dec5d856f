package scene

import (
	"math"

	"voxmesh/internal/voxel"
)

// Terrain fills chunks from a value-noise height field with noise caves.
type Terrain struct {
	seed       int64
	scale      float64
	baseHeight int
	amp        float64
	height     octaves

	caveScale     float64
	caveThreshold float64
	cave          octaves

	snowLine   int
	waterLevel int
}

// NewTerrain creates a terrain generator with default settings.
func NewTerrain(seed int64) *Terrain {
	return &Terrain{
		seed:          seed,
		scale:         1.0 / 64.0,
		baseHeight:    8,
		amp:           40,
		height:        octaves{n: 4, persistence: 0.5, lacunarity: 2.0},
		caveScale:     1.0 / 24.0,
		caveThreshold: 0.68,
		cave:          octaves{n: 2, persistence: 0.5, lacunarity: 2.0},
		snowLine:      40,
		waterLevel:    12,
	}
}

// HeightAt computes the surface height (block Y) at world X,Z.
func (t *Terrain) HeightAt(worldX, worldZ int) int {
	n := t.height.noise2D(float64(worldX)*t.scale, float64(worldZ)*t.scale, t.seed)
	return int(math.Floor(float64(t.baseHeight) + n*t.amp))
}

// BlockAt returns the generated block at a world position.
func (t *Terrain) BlockAt(x, y, z int) voxel.BlockType {
	return t.blockAt(x, y, z, t.HeightAt(x, z))
}

func (t *Terrain) blockAt(x, y, z, height int) voxel.BlockType {
	if y > height {
		if y <= t.waterLevel {
			return voxel.Water
		}
		return voxel.Air
	}
	// keep a solid floor under the surface layers
	if y < height-3 && y > 0 {
		c := t.cave.noise3D(float64(x)*t.caveScale, float64(y)*t.caveScale, float64(z)*t.caveScale, t.seed+7)
		if c > t.caveThreshold {
			return voxel.Air
		}
	}
	switch {
	case y == height && height >= t.snowLine:
		return voxel.Snow
	case y == height && height <= t.waterLevel+1:
		return voxel.Sand
	case y == height:
		return voxel.Grass
	case y >= height-3:
		return voxel.Dirt
	}
	return voxel.Stone
}

// Populate fills g with the terrain of chunk key.
func (t *Terrain) Populate(key voxel.ChunkKey, g *voxel.Grid) {
	for lx := range voxel.ChunkSize {
		for lz := range voxel.ChunkSize {
			w := voxel.JoinWorldPos(key, [3]int{lx, 0, lz})
			height := t.HeightAt(w[0], w[2])
			for ly := range voxel.ChunkSize {
				wy := voxel.JoinAxis(key.Y, ly)
				g[lx][ly][lz] = t.blockAt(w[0], wy, w[2], height)
			}
		}
	}
}
