package config

import (
	"runtime"
	"sync"
)

// MeshSettings is a value copy of the mesh/render configuration, taken once
// by consumers that must not observe changes mid-frame.
type MeshSettings struct {
	Greedy         bool
	FrustumCulling bool
	Combined       bool
	Workers        int
	RenderDistance int // in chunks
}

// RenderSettings holds render configuration
type RenderSettings struct {
	mu             sync.RWMutex
	greedy         bool
	frustumCulling bool
	combined       bool
	meshWorkers    int
	renderDistance int
}

var globalRenderSettings = &RenderSettings{
	greedy:         true,
	frustumCulling: true,
	combined:       true,
	meshWorkers:    runtime.NumCPU(),
	renderDistance: 8,
}

// GetGreedy reports whether chunks are meshed with the greedy merger
func GetGreedy() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.greedy
}

// SetGreedy selects the greedy merger (true) or one face per voxel side (false)
func SetGreedy(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.greedy = enabled
}

// GetFrustumCulling returns whether chunks outside the view frustum are skipped
func GetFrustumCulling() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.frustumCulling
}

// SetFrustumCulling enables or disables frustum admission
func SetFrustumCulling(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.frustumCulling = enabled
}

// GetCombined returns whether all chunks share one face buffer and one multidraw
func GetCombined() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.combined
}

// SetCombined toggles the combined multidraw path
func SetCombined(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.combined = enabled
}

// GetMeshWorkers returns the number of parallel mesh workers
func GetMeshWorkers() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.meshWorkers
}

// SetMeshWorkers sets the mesh worker count, clamped to 1..NumCPU
func SetMeshWorkers(n int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.meshWorkers = min(max(n, 1), runtime.NumCPU())
}

// GetRenderDistance returns the current render distance in chunks
func GetRenderDistance() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.renderDistance
}

// SetRenderDistance sets the render distance in chunks
func SetRenderDistance(distance int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if distance < 1 {
		distance = 1
	}
	if distance > 32 {
		distance = 32
	}

	globalRenderSettings.renderDistance = distance
}

// GetMaxRenderRadius returns the render radius in world units
func GetMaxRenderRadius() float32 {
	return float32(GetRenderDistance() * 32)
}

// Snapshot returns a consistent copy of every setting
func Snapshot() MeshSettings {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return MeshSettings{
		Greedy:         globalRenderSettings.greedy,
		FrustumCulling: globalRenderSettings.frustumCulling,
		Combined:       globalRenderSettings.combined,
		Workers:        globalRenderSettings.meshWorkers,
		RenderDistance: globalRenderSettings.renderDistance,
	}
}
