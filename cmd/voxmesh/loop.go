package main

import (
	"log/slog"
	"time"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"voxmesh/internal/graphics"
	"voxmesh/internal/input"
	"voxmesh/internal/physics"
	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"
	"voxmesh/internal/world"
)

const flySpeed = 24

type viewer struct {
	window *glfw.Window
	cam    *graphics.Camera
	chunks *world.ChunkManager
	logger *slog.Logger
	in     *input.Manager
	pacer  *fpsLimiter

	paused    bool
	wireframe bool
	selected  voxel.BlockType

	frames           int
	lastFPSCheckTime time.Time
	lastTime         time.Time
}

func newViewer(window *glfw.Window, cam *graphics.Camera, chunks *world.ChunkManager, fps int, logger *slog.Logger) *viewer {
	now := time.Now()
	return &viewer{
		window:           window,
		cam:              cam,
		chunks:           chunks,
		logger:           logger,
		in:               input.NewManager(),
		pacer:            &fpsLimiter{limit: fps},
		selected:         voxel.Stone,
		lastFPSCheckTime: now,
		lastTime:         now,
	}
}

func (v *viewer) run() {
	for !v.window.ShouldClose() {
		v.tick()
	}
}

func (v *viewer) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(v.lastTime).Seconds()
	v.lastTime = now

	v.handleActions()
	if !v.paused {
		v.fly(dt)
	}
	v.in.PostUpdate()

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if v.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	func() {
		defer profiling.Track("world.RenderView")()
		if err := v.chunks.RenderView(v.cam.GetViewMatrix(), v.cam.GetProjectionMatrix()); err != nil {
			v.logger.Debug("frame dropped", "error", err)
		}
	}()
	v.frames++

	if time.Since(v.lastFPSCheckTime) >= time.Second {
		st := v.chunks.Stats()
		v.logger.Info("frame stats",
			"fps", v.frames,
			"chunks", st.Chunks,
			"faces", st.Faces,
			"drawn", st.Drawn,
			"culled", st.Culled,
			"avg_set_count", st.AvgSetCount,
			"top", profiling.TopN(3))
		v.frames = 0
		v.lastFPSCheckTime = time.Now()
	}

	func() { defer profiling.Track("glfw.SwapBuffers")(); v.window.SwapBuffers() }()
	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()
	v.pacer.Wait()
}

func (v *viewer) fly(dt float64) {
	speed := float32(flySpeed)
	if v.in.IsActive(input.ActionBoost) {
		speed *= 4
	}
	v.cam.Move(
		v.in.Axis(input.ActionMoveForward, input.ActionMoveBackward),
		v.in.Axis(input.ActionMoveRight, input.ActionMoveLeft),
		v.in.Axis(input.ActionMoveUp, input.ActionMoveDown),
		speed, dt)
}

func (v *viewer) lookedAt() physics.RaycastResult {
	return physics.Raycast(v.cam.Position, v.cam.Front(), physics.MinReachDistance, physics.MaxReachDistance, v.chunks)
}

func (v *viewer) breakBlock() {
	hit := v.lookedAt()
	if !hit.Hit {
		return
	}
	p := hit.HitPosition
	if v.chunks.Edit(p[0], p[1], p[2], voxel.Air) {
		v.logger.Debug("block broken", "pos", p, "face", hit.Face)
	}
}

func (v *viewer) placeBlock() {
	hit := v.lookedAt()
	if !hit.Hit {
		return
	}
	p := hit.AdjacentPosition
	if v.chunks.Edit(p[0], p[1], p[2], v.selected) {
		v.logger.Debug("block placed", "pos", p, "block", v.selected)
	}
}
