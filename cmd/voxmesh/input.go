package main

import (
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"voxmesh/internal/config"
	"voxmesh/internal/input"
	"voxmesh/internal/voxel"
)

var blockActions = [...]struct {
	action input.Action
	block  voxel.BlockType
}{
	{input.ActionBlock1, voxel.Grass},
	{input.ActionBlock2, voxel.Stone},
	{input.ActionBlock3, voxel.Snow},
	{input.ActionBlock4, voxel.Dirt},
	{input.ActionBlock5, voxel.Sand},
	{input.ActionBlock6, voxel.Water},
}

func setupInputHandlers(window *glfw.Window, v *viewer) {
	v.in.Attach(window)

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !v.paused {
			v.cam.HandleMouseMovement(xpos, ypos)
		}
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		if fbHeight > 0 {
			v.cam.AspectRatio = float32(fbWidth) / float32(fbHeight)
		}
	})
}

// handleActions applies this frame's discrete actions.
func (v *viewer) handleActions() {
	in := v.in
	if in.JustPressed(input.ActionPause) {
		v.paused = !v.paused
		if v.paused {
			v.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		} else {
			v.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
			v.cam.ResetMouse()
		}
	}
	if v.paused {
		return
	}

	for _, b := range blockActions {
		if in.JustPressed(b.action) {
			v.selected = b.block
		}
	}
	if in.JustPressed(input.ActionToggleGreedy) {
		config.SetGreedy(!config.GetGreedy())
		v.chunks.SetGreedy(config.GetGreedy())
		v.logger.Info("greedy meshing", "enabled", config.GetGreedy())
	}
	if in.JustPressed(input.ActionToggleFrustum) {
		config.SetFrustumCulling(!config.GetFrustumCulling())
		v.chunks.SetFrustumCulling(config.GetFrustumCulling())
		v.logger.Info("frustum culling", "enabled", config.GetFrustumCulling())
	}
	if in.JustPressed(input.ActionToggleCombined) {
		config.SetCombined(!config.GetCombined())
		v.chunks.SetCombined(config.GetCombined())
		v.logger.Info("combined draw", "enabled", config.GetCombined())
	}
	if in.JustPressed(input.ActionToggleWireframe) {
		v.wireframe = !v.wireframe
	}
	if in.JustPressed(input.ActionBreak) {
		v.breakBlock()
	}
	if in.JustPressed(input.ActionPlace) {
		v.placeBlock()
	}
}
