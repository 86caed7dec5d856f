package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/bounds"
	"voxmesh/internal/meshing"
	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"
)

// Stats summarises the chunk set and the last frame.
type Stats struct {
	Frame  uint64
	Chunks int
	Faces  int
	// Meshed is the number of chunks rebuilt during the last frame.
	Meshed int
	Drawn  int
	Culled int
	// AvgSetCount is the mean face count over chunks that have any faces,
	// rounded to the nearest integer.
	AvgSetCount int
}

// Stats returns the statistics of the last rendered frame.
func (m *ChunkManager) Stats() Stats {
	m.frameMu.Lock()
	defer m.frameMu.Unlock()
	return m.stats
}

// RenderView binds the camera on the sink and renders a frame culled against
// the camera's frustum.
func (m *ChunkManager) RenderView(view, proj mgl32.Mat4) error {
	if err := m.sink.BindCameraUniforms(view, proj); err != nil {
		err = fmt.Errorf("bind camera: %w", err)
		m.logger.Error("skipping frame", "error", err)
		return err
	}
	return m.RenderFrame(bounds.FromCamera(view, proj))
}

// RenderFrame remeshes dirty chunks, reassembles the combined face buffer
// when anything changed and submits one draw record per admitted chunk. A
// nil frustum admits every chunk. Sink errors are logged and returned; the
// affected faces stay unwritten and are retried next frame.
func (m *ChunkManager) RenderFrame(f *bounds.Frustum) error {
	defer profiling.Track("world.RenderFrame")()
	m.frameMu.Lock()
	defer m.frameMu.Unlock()
	m.frame++

	m.mu.Lock()
	pending := make([]voxel.ChunkKey, 0, m.dirtyQueue.Len())
	for m.dirtyQueue.Len() > 0 {
		pending = append(pending, m.dirtyQueue.PopFront())
	}
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	meshed, err := m.updateLocked(pending)
	if err != nil {
		m.logger.Error("mesh update failed", "frame", m.frame, "error", err)
	}
	if meshed > 0 {
		m.rebuild.Store(true)
	}

	var drawErr error
	if m.settings.Combined {
		drawErr = m.drawCombinedLocked(f)
	} else {
		drawErr = m.drawEachLocked(f)
	}
	m.stats.Meshed = meshed
	m.stats.Frame = m.frame
	if drawErr != nil {
		m.logger.Error("skipping frame draw", "frame", m.frame, "error", drawErr)
		return drawErr
	}
	return err
}

// updateLocked meshes every pending chunk that is still dirty, in parallel
// when a pool is configured. Callers hold mu for reading.
func (m *ChunkManager) updateLocked(pending []voxel.ChunkKey) (int, error) {
	defer profiling.Track("world.update")()

	jobs := make([]meshing.MeshJob, 0, len(pending))
	for _, key := range pending {
		c, ok := m.chunks[key]
		if !ok {
			continue
		}
		if job, ok := c.job(m.neighborsLocked(key)); ok {
			jobs = append(jobs, job)
		}
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	var results []meshing.MeshResult
	if m.pool != nil && len(jobs) > 1 {
		var err error
		results, err = m.pool.Run(jobs)
		if err != nil {
			// lost jobs go back to the queue
			for _, job := range jobs {
				if c, ok := m.chunks[job.Key]; ok {
					c.invalidate()
				}
			}
			return 0, fmt.Errorf("mesh %d chunks: %w", len(jobs), err)
		}
	} else {
		results = make([]meshing.MeshResult, len(jobs))
		for i, job := range jobs {
			results[i] = meshing.Mesh(job)
		}
	}

	for _, res := range results {
		if c, ok := m.chunks[res.Key]; ok {
			c.apply(res)
		}
	}
	return len(results), nil
}

// rebuildOrderLocked captures the chunk order once so base instances match
// the combined buffer.
func (m *ChunkManager) rebuildOrderLocked() {
	keys := m.sortedKeysLocked()
	m.order = m.order[:0]
	for _, key := range keys {
		c := m.chunks[key]
		m.order = append(m.order, drawEntry{key: key, chunk: c, count: c.FaceCount()})
	}
}

func (m *ChunkManager) drawCombinedLocked(f *bounds.Frustum) error {
	if m.rebuild.Load() {
		defer profiling.Track("world.rebuildCombined")()
		m.rebuildOrderLocked()
		m.combined = m.combined[:0]
		for _, e := range m.order {
			m.combined = append(m.combined, e.chunk.Faces()...)
		}
		if err := m.sink.UploadFaces(m.combined); err != nil {
			return fmt.Errorf("upload faces: %w", err)
		}
		for _, e := range m.order {
			e.chunk.markWritten()
		}
		m.rebuild.Store(false)
	}

	records := make([]DrawRecord, 0, len(m.order))
	origins := make([][3]int32, 0, len(m.order))
	base := 0
	drawn, culled, faces, nonEmpty := 0, 0, 0, 0
	for _, e := range m.order {
		first := base
		base += e.count
		faces += e.count
		// empty chunks keep their slot in the order but get no record
		if e.count == 0 {
			continue
		}
		nonEmpty++
		if !m.admit(e.chunk, f) {
			culled++
			continue
		}
		records = append(records, DrawRecord{
			VertexCount:   4,
			InstanceCount: uint32(e.count),
			First:         0,
			BaseInstance:  uint32(first),
		})
		origins = append(origins, e.key.Origin())
		drawn++
	}
	m.setFrameStats(len(m.order), faces, nonEmpty, drawn, culled)

	if err := m.sink.UploadChunkOrigins(origins); err != nil {
		return fmt.Errorf("upload chunk origins: %w", err)
	}
	if err := m.sink.Submit(records); err != nil {
		return fmt.Errorf("submit %d draws: %w", len(records), err)
	}
	return nil
}

// drawEachLocked uploads and draws every admitted chunk on its own.
func (m *ChunkManager) drawEachLocked(f *bounds.Frustum) error {
	if m.rebuild.Load() {
		m.rebuildOrderLocked()
		m.rebuild.Store(false)
	}

	drawn, culled, faces, nonEmpty := 0, 0, 0, 0
	for _, e := range m.order {
		faces += e.count
		if e.count == 0 {
			continue
		}
		nonEmpty++
		if !m.admit(e.chunk, f) {
			culled++
			continue
		}
		if err := m.sink.UploadFaces(e.chunk.Faces()); err != nil {
			m.rebuild.Store(true)
			return fmt.Errorf("upload faces %v: %w", e.key, err)
		}
		e.chunk.markWritten()
		if err := m.sink.UploadChunkOrigins([][3]int32{e.key.Origin()}); err != nil {
			return fmt.Errorf("upload chunk origin %v: %w", e.key, err)
		}
		rec := DrawRecord{VertexCount: 4, InstanceCount: uint32(e.count)}
		if err := m.sink.Submit([]DrawRecord{rec}); err != nil {
			return fmt.Errorf("submit %v: %w", e.key, err)
		}
		drawn++
	}
	m.setFrameStats(len(m.order), faces, nonEmpty, drawn, culled)
	return nil
}

func (m *ChunkManager) admit(c *Chunk, f *bounds.Frustum) bool {
	if f == nil || !m.settings.FrustumCulling {
		return true
	}
	return c.Bounds().Intersect(f) != bounds.None
}

func (m *ChunkManager) setFrameStats(chunks, faces, nonEmpty, drawn, culled int) {
	m.stats.Chunks = chunks
	m.stats.Faces = faces
	m.stats.Drawn = drawn
	m.stats.Culled = culled
	m.stats.AvgSetCount = 0
	if nonEmpty > 0 {
		m.stats.AvgSetCount = (faces + nonEmpty/2) / nonEmpty
	}
	profiling.Count("world.drawn", drawn)
	profiling.Count("world.culled", culled)
}
