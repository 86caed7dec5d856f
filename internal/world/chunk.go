package world

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"voxmesh/internal/bounds"
	"voxmesh/internal/meshing"
	"voxmesh/internal/voxel"
)

// ErrOutOfBounds is returned for chunk-local coordinates outside 0..31.
var ErrOutOfBounds = errors.New("world: position out of chunk bounds")

// State is the meshing lifecycle of a chunk.
type State uint8

const (
	// Fresh chunks have edits that are not reflected in their faces.
	Fresh State = iota
	// Masked chunks have current depth masks but no faces yet.
	Masked
	// Meshed chunks have current faces that the sink already holds.
	Meshed
	// WaitingFlush chunks have current faces not yet handed to the sink.
	WaitingFlush
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Masked:
		return "masked"
	case Meshed:
		return "meshed"
	case WaitingFlush:
		return "waiting-flush"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// Chunk is a 32^3 block of voxels plus its cached meshing state.
//
// The voxel grid is guarded by the owning ChunkManager's lock; the mesh state
// (masks, faces and flags) by the chunk's own mutex. A detached chunk (one
// that was never inserted) may be used from a single goroutine without a
// manager.
type Chunk struct {
	Key voxel.ChunkKey

	grid   voxel.Grid
	bounds bounds.Hierarchy
	owner  atomic.Pointer[ChunkManager]

	dirty atomic.Bool

	mu        sync.Mutex
	masks     *meshing.DepthMasks
	faces     []voxel.PackedFace
	meshed    bool
	unwritten bool
	greedy    bool

	logger *slog.Logger
}

// NewChunk creates an all-air chunk at key. It starts dirty.
func NewChunk(key voxel.ChunkKey) *Chunk {
	c := &Chunk{
		Key:    key,
		bounds: bounds.ForChunk(key),
		greedy: true,
		logger: slog.Default(),
	}
	c.dirty.Store(true)
	return c
}

// Bounds returns the chunk's world-space bounding hierarchy.
func (c *Chunk) Bounds() bounds.Hierarchy {
	return c.bounds
}

// Get returns the block at a chunk-local position, or Air when out of range.
func (c *Chunk) Get(x, y, z int) voxel.BlockType {
	if m := c.lockOwner(false); m != nil {
		defer m.mu.RUnlock()
	}
	return c.grid.Get(x, y, z)
}

// lockOwner takes the owning manager's lock and returns the manager, or nil
// when the chunk is detached. The owner is re-read under the lock because
// Insert and Remove detach chunks while holding it.
func (c *Chunk) lockOwner(write bool) *ChunkManager {
	for {
		m := c.owner.Load()
		if m == nil {
			return nil
		}
		if write {
			m.mu.Lock()
		} else {
			m.mu.RLock()
		}
		if c.owner.Load() == m {
			return m
		}
		if write {
			m.mu.Unlock()
		} else {
			m.mu.RUnlock()
		}
	}
}

// Set writes one voxel. With setNeighbors, a write on the chunk's border also
// updates and invalidates the neighbour that samples it; that needs the chunk
// to belong to a ChunkManager and is skipped otherwise.
func (c *Chunk) Set(pos [3]int, bt voxel.BlockType, setNeighbors bool) bool {
	if m := c.lockOwner(true); m != nil {
		defer m.mu.Unlock()
		return m.setLocked(c, pos, bt, setNeighbors)
	}
	return c.setVoxel(pos, bt)
}

// TrySet is Set without neighbour propagation that reports out-of-range
// positions as an error instead of logging them.
func (c *Chunk) TrySet(pos [3]int, bt voxel.BlockType) error {
	if !voxel.InBounds(pos[0], pos[1], pos[2]) {
		return fmt.Errorf("set %v: %w", pos, ErrOutOfBounds)
	}
	if !bt.Valid() {
		return fmt.Errorf("set %v: block type %d does not fit in 4 bits", pos, bt)
	}
	c.Set(pos, bt, false)
	return nil
}

// setVoxel writes the grid, patches cached masks and invalidates the chunk.
// Callers hold the manager lock when the chunk is attached.
func (c *Chunk) setVoxel(pos [3]int, bt voxel.BlockType) bool {
	x, y, z := pos[0], pos[1], pos[2]
	if !bt.Valid() {
		c.logger.Warn("voxel write with invalid block type", "chunk", c.Key, "pos", pos, "block", int(bt))
		return false
	}
	if !c.grid.Set(x, y, z, bt) {
		c.logger.Warn("voxel write out of bounds", "chunk", c.Key, "pos", pos, "block", bt)
		return false
	}
	c.patchMasks(x+1, y+1, z+1, bt.IsSolid())
	return true
}

// patchMasks updates one padded cell of the cached masks, drops the faces
// and marks the chunk dirty.
func (c *Chunk) patchMasks(px, py, pz int, solid bool) {
	c.mu.Lock()
	if c.masks != nil {
		c.masks.SetPadded(px, py, pz, solid)
	}
	c.faces = nil
	c.meshed = false
	c.mu.Unlock()
	c.invalidate()
}

// dropMasks forgets the cached masks, used when a neighbour appears or
// disappears and the whole skin changes.
func (c *Chunk) dropMasks() {
	c.mu.Lock()
	c.masks = nil
	c.faces = nil
	c.meshed = false
	c.mu.Unlock()
	c.invalidate()
}

// invalidate marks the chunk dirty and queues it with its manager if it was
// clean.
func (c *Chunk) invalidate() {
	if !c.dirty.Swap(true) {
		if m := c.owner.Load(); m != nil {
			m.dirtyQueue.PushBack(c.Key)
		}
	}
}

// Dirty reports whether the chunk has edits its faces do not reflect.
func (c *Chunk) Dirty() bool {
	return c.dirty.Load()
}

// State returns the chunk's position in the meshing lifecycle.
func (c *Chunk) State() State {
	if c.dirty.Load() {
		return Fresh
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case !c.meshed:
		return Masked
	case c.unwritten:
		return WaitingFlush
	default:
		return Meshed
	}
}

// Greedy reports the chunk's emitter mode.
func (c *Chunk) Greedy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.greedy
}

func (c *Chunk) setGreedy(greedy bool) {
	c.mu.Lock()
	changed := c.greedy != greedy
	c.greedy = greedy
	if changed {
		c.faces = nil
		c.meshed = false
	}
	c.mu.Unlock()
	if changed {
		c.invalidate()
	}
}

// Faces returns the chunk's current face buffer. The slice must not be
// modified.
func (c *Chunk) Faces() []voxel.PackedFace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.faces
}

// FaceCount returns the number of faces in the current buffer.
func (c *Chunk) FaceCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.faces)
}

// Masks returns the cached depth masks or nil.
func (c *Chunk) Masks() *meshing.DepthMasks {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.masks
}

// job claims the chunk's dirty flag and describes the meshing work. It
// returns false when the chunk was already clean.
func (c *Chunk) job(nb meshing.Neighbors) (meshing.MeshJob, bool) {
	if !c.dirty.Swap(false) {
		return meshing.MeshJob{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return meshing.MeshJob{
		Key:       c.Key,
		Grid:      &c.grid,
		Neighbors: nb,
		Masks:     c.masks,
		Greedy:    c.greedy,
	}, true
}

// apply stores a mesh result and marks the faces unwritten.
func (c *Chunk) apply(res meshing.MeshResult) {
	c.mu.Lock()
	c.masks = res.Masks
	c.faces = res.Faces
	c.meshed = true
	c.unwritten = true
	c.mu.Unlock()
}

// Update remeshes a dirty chunk against the given neighbours. It reports
// whether anything was rebuilt.
func (c *Chunk) Update(nb meshing.Neighbors) bool {
	job, ok := c.job(nb)
	if !ok {
		return false
	}
	c.apply(meshing.Mesh(job))
	return true
}

// WriteMesh hands an unwritten face set to sink and clears the flag. It
// reports whether anything was written; on error the flag stays set.
func (c *Chunk) WriteMesh(sink DrawSink) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.unwritten {
		return false, nil
	}
	if err := sink.UploadFaces(c.faces); err != nil {
		return false, fmt.Errorf("write mesh %v: %w", c.Key, err)
	}
	c.unwritten = false
	return true, nil
}

func (c *Chunk) markWritten() {
	c.mu.Lock()
	c.unwritten = false
	c.mu.Unlock()
}

// unwrittenFaces reports whether the current faces still need to reach the
// sink.
func (c *Chunk) unwrittenFaces() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unwritten
}
