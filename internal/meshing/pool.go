package meshing

import (
	"runtime"

	"github.com/alitto/pond/v2"
)

// WorkerPool meshes independent chunks in parallel. Each job only reads its
// grids and writes its own result, so no locking is needed inside a job.
type WorkerPool struct {
	pool    pond.ResultPool[MeshResult]
	workers int
}

// NewWorkerPool creates a pool with the given number of workers, clamped to
// 1..NumCPU.
func NewWorkerPool(workers int) *WorkerPool {
	workers = min(max(workers, 1), runtime.NumCPU())
	return &WorkerPool{
		pool:    pond.NewResultPool[MeshResult](workers),
		workers: workers,
	}
}

// Run meshes every job and returns the results in job order. It blocks until
// all jobs are done.
func (p *WorkerPool) Run(jobs []MeshJob) ([]MeshResult, error) {
	if len(jobs) == 0 {
		return nil, nil
	}
	group := p.pool.NewGroup()
	for i := range jobs {
		job := jobs[i]
		group.Submit(func() MeshResult {
			return Mesh(job)
		})
	}
	return group.Wait()
}

// Workers returns the worker count.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// Shutdown stops the pool after in-flight jobs finish.
func (p *WorkerPool) Shutdown() {
	p.pool.StopAndWait()
}
