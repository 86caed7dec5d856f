package meshing

import (
	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"
)

// MeshJob is everything needed to mesh one chunk. Grid and Neighbors are
// only read; Masks, when non-nil, is the chunk's cached mask bundle and is
// reused as-is.
type MeshJob struct {
	Key       voxel.ChunkKey
	Grid      *voxel.Grid
	Neighbors Neighbors
	Masks     *DepthMasks
	Greedy    bool
}

// MeshResult carries the masks (new or reused) and the emitted faces.
type MeshResult struct {
	Key   voxel.ChunkKey
	Masks *DepthMasks
	Faces []voxel.PackedFace
}

// Mesh runs the full pipeline: depth masks, culling, projection, then the
// greedy or culled emitter.
func Mesh(job MeshJob) MeshResult {
	defer profiling.Track("meshing.Mesh")()

	masks := job.Masks
	if masks == nil {
		masks = BuildDepthMasks(job.Grid, &job.Neighbors)
	}
	planes := Project(Cull(masks), job.Grid)

	faces := make([]voxel.PackedFace, 0, 256)
	if job.Greedy {
		faces = EmitGreedy(planes, faces)
	} else {
		faces = EmitCulled(planes, faces)
	}
	profiling.Count("meshing.faces", len(faces))

	return MeshResult{Key: job.Key, Masks: masks, Faces: faces}
}
