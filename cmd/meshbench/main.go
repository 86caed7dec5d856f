// Command meshbench meshes a scene headlessly against an in-memory draw sink
// and reports timing and mesh statistics.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/xlab/closer"

	"voxmesh/internal/config"
	"voxmesh/internal/profiling"
	"voxmesh/internal/scene"
	"voxmesh/internal/voxel"
	"voxmesh/internal/world"
)

type options struct {
	scene    string
	radius   int
	height   int
	seed     int64
	workers  int
	greedy   bool
	combined bool
	frames   int
	edits    int
	dump     string
	chunk    string
	scale    int
	verbose  bool
}

func main() {
	defer closer.Close()

	var opts options
	flag.StringVar(&opts.scene, "scene", string(scene.KindTerrain), "scene to load (single, cube, checkerboard, terrain)")
	flag.IntVar(&opts.radius, "radius", 4, "scene radius in chunks")
	flag.IntVar(&opts.height, "height", 3, "scene height in chunks")
	flag.Int64Var(&opts.seed, "seed", 1, "terrain seed")
	flag.IntVar(&opts.workers, "workers", config.GetMeshWorkers(), "mesh workers")
	flag.BoolVar(&opts.greedy, "greedy", true, "greedy meshing")
	flag.BoolVar(&opts.combined, "combined", true, "one combined buffer and multidraw")
	flag.IntVar(&opts.frames, "frames", 60, "frames to render after the initial mesh")
	flag.IntVar(&opts.edits, "edits", 8, "random edits per frame")
	flag.StringVar(&opts.dump, "dump", "", "write the face planes of -chunk as PNGs into this directory")
	flag.StringVar(&opts.chunk, "chunk", "0,0,0", "chunk key for the single chunk remesh and -dump")
	flag.IntVar(&opts.scale, "scale", 4, "upscale factor for -dump")
	flag.BoolVar(&opts.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(opts, logger); err != nil {
		logger.Error("meshbench failed", "error", err)
		closer.Exit(1)
	}
}

func run(opts options, logger *slog.Logger) error {
	kind, err := scene.ParseKind(opts.scene)
	if err != nil {
		return err
	}
	config.SetMeshWorkers(opts.workers)
	config.SetGreedy(opts.greedy)
	config.SetCombined(opts.combined)
	config.SetFrustumCulling(false)

	sink := world.NewMemorySink()
	m := world.NewChunkManager(sink, config.Snapshot(), logger)
	closer.Bind(m.Close)

	if _, err := scene.Load(m, scene.Options{Kind: kind, Radius: opts.radius, Height: opts.height, Seed: opts.seed}, logger); err != nil {
		return err
	}

	profiling.ResetFrame()
	start := time.Now()
	if err := m.RenderFrame(nil); err != nil {
		return fmt.Errorf("initial frame: %w", err)
	}
	st := m.Stats()
	logger.Info("initial mesh",
		"took", time.Since(start),
		"chunks", st.Chunks,
		"faces", st.Faces,
		"avg_set_count", st.AvgSetCount,
		"workers", config.GetMeshWorkers(),
		"top", profiling.TopN(5))

	keys := m.Keys()
	r := rand.New(rand.NewSource(opts.seed))
	var total time.Duration
	meshed := 0
	for i := 0; i < opts.frames && len(keys) > 0; i++ {
		for j := 0; j < opts.edits; j++ {
			k := keys[r.Intn(len(keys))]
			p := voxel.JoinWorldPos(k, [3]int{r.Intn(voxel.ChunkSize), r.Intn(voxel.ChunkSize), r.Intn(voxel.ChunkSize)})
			bt := voxel.Air
			if r.Intn(2) == 0 {
				bt = voxel.Stone
			}
			m.Edit(p[0], p[1], p[2], bt)
		}
		start := time.Now()
		if err := m.RenderFrame(nil); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		total += time.Since(start)
		meshed += m.Stats().Meshed
	}
	if opts.frames > 0 {
		st = m.Stats()
		logger.Info("edit frames",
			"frames", opts.frames,
			"avg_frame", total/time.Duration(opts.frames),
			"remeshed", meshed,
			"faces", st.Faces,
			"draw_bytes", len(sink.WireRecords()),
			"uploads", sink.Uploads)
	}

	var key voxel.ChunkKey
	if _, err := fmt.Sscanf(opts.chunk, "%d,%d,%d", &key.X, &key.Y, &key.Z); err != nil {
		return fmt.Errorf("parse -chunk %q: %w", opts.chunk, err)
	}
	if c := m.Chunk(key); c != nil {
		// flip the centre voxel and time a synchronous remesh of that chunk alone
		const mid = voxel.ChunkSize / 2
		bt := voxel.Stone
		if c.Get(mid, mid, mid).IsSolid() {
			bt = voxel.Air
		}
		c.Set([3]int{mid, mid, mid}, bt, false)
		start := time.Now()
		if m.UpdateChunk(key) {
			logger.Info("single chunk remesh", "chunk", key, "took", time.Since(start), "faces", c.FaceCount())
		}
	}

	if opts.dump != "" {
		ps, ok := m.Planes(key)
		if !ok {
			return fmt.Errorf("dump: chunk %v is not loaded", key)
		}
		files, err := dumpPlanes(opts.dump, key, ps, opts.scale)
		if err != nil {
			return err
		}
		logger.Info("planes written", "chunk", key, "files", len(files), "dir", opts.dump)
	}
	return nil
}
