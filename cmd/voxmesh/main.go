// Command voxmesh is an interactive viewer for the chunk mesher.
package main

import (
	"flag"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"

	"voxmesh/internal/config"
	"voxmesh/internal/graphics"
	"voxmesh/internal/scene"
	"voxmesh/internal/world"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()

	sceneName := flag.String("scene", string(scene.KindTerrain), "scene to load (single, cube, checkerboard, terrain)")
	radius := flag.Int("radius", 0, "scene radius in chunks (0 uses the render distance)")
	height := flag.Int("height", 3, "scene height in chunks")
	seed := flag.Int64("seed", 1, "terrain seed")
	workers := flag.Int("workers", runtime.NumCPU(), "mesh workers")
	distance := flag.Int("distance", config.GetRenderDistance(), "render distance in chunks")
	greedy := flag.Bool("greedy", true, "greedy meshing")
	fps := flag.Int("fps", 240, "frame rate cap (0 disables it)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	kind, err := scene.ParseKind(*sceneName)
	if err != nil {
		logger.Error("bad flags", "error", err)
		closer.Exit(2)
	}
	config.SetMeshWorkers(*workers)
	config.SetRenderDistance(*distance)
	config.SetGreedy(*greedy)
	if *radius == 0 {
		*radius = config.GetRenderDistance()
	}

	if err := glfw.Init(); err != nil {
		logger.Error("glfw init", "error", err)
		closer.Exit(1)
	}
	closer.Bind(glfw.Terminate)

	window, err := setupWindow()
	if err != nil {
		logger.Error("window setup", "error", err)
		closer.Exit(1)
	}

	sink, err := graphics.NewGLSink()
	if err != nil {
		logger.Error("gl sink", "error", err)
		closer.Exit(1)
	}
	closer.Bind(sink.Delete)

	chunks := world.NewChunkManager(sink, config.Snapshot(), logger)
	closer.Bind(chunks.Close)

	if _, err := scene.Load(chunks, scene.Options{Kind: kind, Radius: *radius, Height: *height, Seed: *seed}, logger); err != nil {
		logger.Error("scene", "error", err)
		closer.Exit(1)
	}

	w, h := window.GetSize()
	cam := graphics.NewCamera(w, h)
	cam.FarPlane = config.GetMaxRenderRadius() * 2
	cam.Position[1] = float32(*height*32) + 8

	v := newViewer(window, cam, chunks, *fps, logger)
	setupInputHandlers(window, v)
	v.run()
}
