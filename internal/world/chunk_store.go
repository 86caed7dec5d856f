package world

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/gammazero/deque"

	"voxmesh/internal/config"
	"voxmesh/internal/meshing"
	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"
)

// ChunkManager owns the live chunk map, queues invalidated chunks and turns
// their meshes into draw submissions for a DrawSink.
type ChunkManager struct {
	// mu guards the chunk map, every chunk's voxels and the dirty queue.
	// Edits take the write lock; meshing and frame assembly take the read lock.
	mu         sync.RWMutex
	chunks     map[voxel.ChunkKey]*Chunk
	dirtyQueue deque.Deque[voxel.ChunkKey]

	// rebuild forces the next frame to reassemble the combined buffer.
	rebuild atomic.Bool

	// frameMu serialises RenderFrame and guards everything below. It is
	// always taken before mu, never while holding it.
	frameMu  sync.Mutex
	settings config.MeshSettings
	order    []drawEntry
	combined []voxel.PackedFace
	stats    Stats
	frame    uint64

	sink   DrawSink
	pool   *meshing.WorkerPool
	logger *slog.Logger
}

// drawEntry is one chunk's slot in the combined face buffer.
type drawEntry struct {
	key   voxel.ChunkKey
	chunk *Chunk
	count int
}

// NewChunkManager creates an empty manager drawing into sink. A worker pool
// is started when settings ask for more than one mesh worker; call Close to
// stop it. A nil logger means slog.Default().
func NewChunkManager(sink DrawSink, settings config.MeshSettings, logger *slog.Logger) *ChunkManager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &ChunkManager{
		chunks:   make(map[voxel.ChunkKey]*Chunk),
		settings: settings,
		sink:     sink,
		logger:   logger,
	}
	m.rebuild.Store(true)
	if settings.Workers > 1 {
		m.pool = meshing.NewWorkerPool(settings.Workers)
	}
	return m
}

// Close stops the mesh worker pool, if any.
func (m *ChunkManager) Close() {
	if m.pool != nil {
		m.pool.Shutdown()
	}
}

// Insert installs a chunk built from g at key, replacing any chunk already
// there. The six neighbours lose their cached masks because their skin
// changed.
func (m *ChunkManager) Insert(key voxel.ChunkKey, g *voxel.Grid) *Chunk {
	c := NewChunk(key)
	if g != nil {
		c.grid = *g
		if n := c.grid.ReplaceInvalid(voxel.Air); n > 0 {
			m.logger.Warn("inserted grid has invalid block types", "chunk", key, "replaced", n)
		}
	}
	c.logger = m.logger
	c.greedy = m.currentSettings().Greedy

	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.chunks[key]; ok {
		old.owner.Store(nil)
	}
	c.owner.Store(m)
	m.chunks[key] = c
	m.dirtyQueue.PushBack(key)
	m.invalidateNeighborsLocked(key)
	m.rebuild.Store(true)
	return c
}

// Remove drops the chunk at key. It reports whether a chunk was removed.
func (m *ChunkManager) Remove(key voxel.ChunkKey) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.chunks[key]
	if !ok {
		return false
	}
	delete(m.chunks, key)
	c.owner.Store(nil)
	m.invalidateNeighborsLocked(key)
	m.rebuild.Store(true)
	return true
}

func (m *ChunkManager) invalidateNeighborsLocked(key voxel.ChunkKey) {
	for _, d := range voxel.Directions {
		if nb, ok := m.chunks[key.Neighbor(d)]; ok {
			nb.dropMasks()
		}
	}
}

func (m *ChunkManager) currentSettings() config.MeshSettings {
	m.frameMu.Lock()
	defer m.frameMu.Unlock()
	return m.settings
}

// Chunk returns the chunk at key or nil.
func (m *ChunkManager) Chunk(key voxel.ChunkKey) *Chunk {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.chunks[key]
}

// Keys returns every live chunk key in deterministic order.
func (m *ChunkManager) Keys() []voxel.ChunkKey {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedKeysLocked()
}

func (m *ChunkManager) sortedKeysLocked() []voxel.ChunkKey {
	keys := make([]voxel.ChunkKey, 0, len(m.chunks))
	for k := range m.chunks {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b voxel.ChunkKey) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return keys
}

// Len returns the number of live chunks.
func (m *ChunkManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}

// GetBlockAt returns the block at a world position, or Air when its chunk is
// not loaded.
func (m *ChunkManager) GetBlockAt(x, y, z int) voxel.BlockType {
	key, local := voxel.SplitWorldPos(x, y, z)
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.chunks[key]
	if !ok {
		return voxel.Air
	}
	return c.grid[local[0]][local[1]][local[2]]
}

// IsAir checks if the block at the specified world coordinates is air.
func (m *ChunkManager) IsAir(x, y, z int) bool {
	return !m.GetBlockAt(x, y, z).IsSolid()
}

// Edit writes one block at a world position, propagating border writes to
// the neighbouring chunk. Edits to unloaded chunks are ignored and reported
// as false.
func (m *ChunkManager) Edit(x, y, z int, bt voxel.BlockType) bool {
	defer profiling.Track("world.Edit")()
	key, local := voxel.SplitWorldPos(x, y, z)
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.chunks[key]
	if !ok {
		return false
	}
	return m.setLocked(c, local, bt, true)
}

// setLocked writes one voxel of c and, with setNeighbors, refreshes the
// padded cell every face-adjacent neighbour holds for it.
func (m *ChunkManager) setLocked(c *Chunk, pos [3]int, bt voxel.BlockType, setNeighbors bool) bool {
	if !c.setVoxel(pos, bt) {
		return false
	}
	if !setNeighbors {
		return true
	}
	const last = voxel.ChunkSize - 1
	solid := bt.IsSolid()
	for _, d := range voxel.Directions {
		a := d.Axis()
		edge := 0
		if d.Positive() {
			edge = last
		}
		if pos[a] != edge {
			continue
		}
		nb, ok := m.chunks[c.Key.Neighbor(d)]
		if !ok {
			continue
		}
		// our border voxel sits in the neighbour's opposite padding slab
		p := [3]int{pos[0] + 1, pos[1] + 1, pos[2] + 1}
		if d.Positive() {
			p[a] = 0
		} else {
			p[a] = meshing.PaddedSize - 1
		}
		nb.patchMasks(p[0], p[1], p[2], solid)
	}
	return true
}

// neighborsLocked gathers the six neighbour grids of key. Callers hold mu.
func (m *ChunkManager) neighborsLocked(key voxel.ChunkKey) meshing.Neighbors {
	var nb meshing.Neighbors
	for _, d := range voxel.Directions {
		if c, ok := m.chunks[key.Neighbor(d)]; ok {
			nb[d] = &c.grid
		}
	}
	return nb
}

// Planes recomputes the face planes of the chunk at key from its current
// voxels and neighbours, without touching the chunk's cached mesh.
func (m *ChunkManager) Planes(key voxel.ChunkKey) (*meshing.Planes, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.chunks[key]
	if !ok {
		return nil, false
	}
	nb := m.neighborsLocked(key)
	masks := meshing.BuildDepthMasks(&c.grid, &nb)
	return meshing.Project(meshing.Cull(masks), &c.grid), true
}

// UpdateChunk remeshes one chunk synchronously if it is dirty. It reports
// whether the chunk was rebuilt.
func (m *ChunkManager) UpdateChunk(key voxel.ChunkKey) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.chunks[key]
	if !ok {
		return false
	}
	if !c.Update(m.neighborsLocked(key)) {
		return false
	}
	m.rebuild.Store(true)
	return true
}

// SetGreedy switches every chunk between greedy and culled emission.
// Chunks whose mode changes are remeshed on the next frame.
func (m *ChunkManager) SetGreedy(greedy bool) {
	m.frameMu.Lock()
	m.settings.Greedy = greedy
	m.frameMu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.chunks {
		c.setGreedy(greedy)
	}
}

// SetFrustumCulling enables or disables frustum admission.
func (m *ChunkManager) SetFrustumCulling(enabled bool) {
	m.frameMu.Lock()
	m.settings.FrustumCulling = enabled
	m.frameMu.Unlock()
}

// SetCombined selects one multidraw over the combined buffer (true) or one
// upload and draw per chunk (false).
func (m *ChunkManager) SetCombined(enabled bool) {
	m.frameMu.Lock()
	if m.settings.Combined != enabled {
		m.settings.Combined = enabled
		m.rebuild.Store(true)
	}
	m.frameMu.Unlock()
}

// Settings returns the manager's current settings.
func (m *ChunkManager) Settings() config.MeshSettings {
	return m.currentSettings()
}
