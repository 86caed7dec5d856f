package graphics

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"
	"voxmesh/internal/world"
)

// palette returns the per-block-type colours uploaded to the face program.
func palette() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, voxel.NumBlockTypes)
	for i := range out {
		out[i] = voxel.BlockType(i).Color()
	}
	return out
}

// GLSink draws packed faces with one indirect multi-draw per submission. It
// must be used from the goroutine that owns the GL context.
type GLSink struct {
	shader *Shader

	vao         uint32
	faceVBO     uint32
	originSSBO  uint32
	indirectBuf uint32

	faceCount int
	scratch   []int32
}

var _ world.DrawSink = (*GLSink)(nil)

// NewGLSink compiles the face program and allocates its buffers. A GL 4.3
// context with ARB_shader_draw_parameters must be current.
func NewGLSink() (*GLSink, error) {
	shader, err := NewShader(faceVertexShader, faceFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("face program: %w", err)
	}
	s := &GLSink{shader: shader}

	gl.GenVertexArrays(1, &s.vao)
	gl.GenBuffers(1, &s.faceVBO)
	gl.GenBuffers(1, &s.originSSBO)
	gl.GenBuffers(1, &s.indirectBuf)

	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.faceVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribIPointer(0, 1, gl.UNSIGNED_INT, 4, gl.PtrOffset(0))
	gl.VertexAttribDivisor(0, 1)
	gl.BindVertexArray(0)

	shader.Use()
	shader.SetVector3Array("palette", palette())
	glCheckError("NewGLSink")
	return s, nil
}

// UploadFaces replaces the instanced face buffer.
func (s *GLSink) UploadFaces(faces []voxel.PackedFace) error {
	defer profiling.Track("graphics.UploadFaces")()
	gl.BindBuffer(gl.ARRAY_BUFFER, s.faceVBO)
	if len(faces) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(faces)*4, gl.Ptr(faces), gl.DYNAMIC_DRAW)
	}
	s.faceCount = len(faces)
	return glError("upload faces")
}

// UploadChunkOrigins writes one ivec4 per draw into the origins buffer.
func (s *GLSink) UploadChunkOrigins(origins [][3]int32) error {
	s.scratch = s.scratch[:0]
	for _, o := range origins {
		s.scratch = append(s.scratch, o[0], o[1], o[2], 0)
	}
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, s.originSSBO)
	if len(s.scratch) == 0 {
		gl.BufferData(gl.SHADER_STORAGE_BUFFER, 16, nil, gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.SHADER_STORAGE_BUFFER, len(s.scratch)*4, gl.Ptr(s.scratch), gl.DYNAMIC_DRAW)
	}
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, s.originSSBO)
	return glError("upload origins")
}

// Submit issues the records as a single MultiDrawArraysIndirect.
func (s *GLSink) Submit(records []world.DrawRecord) error {
	defer profiling.Track("graphics.Submit")()
	if len(records) == 0 {
		return nil
	}
	buf := world.EncodeDrawRecords(records)
	gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, s.indirectBuf)
	gl.BufferData(gl.DRAW_INDIRECT_BUFFER, len(buf), gl.Ptr(buf), gl.STREAM_DRAW)

	s.shader.Use()
	gl.BindVertexArray(s.vao)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, s.originSSBO)
	gl.MultiDrawArraysIndirect(gl.TRIANGLE_STRIP, gl.PtrOffset(0), int32(len(records)), world.DrawRecordSize)
	gl.BindVertexArray(0)
	profiling.Count("graphics.Draws", len(records))
	return glError("submit")
}

func (s *GLSink) BindCameraUniforms(view, proj mgl32.Mat4) error {
	s.shader.Use()
	s.shader.SetMatrix4("view", view)
	s.shader.SetMatrix4("proj", proj)
	return glError("camera uniforms")
}

// Delete releases the GL objects.
func (s *GLSink) Delete() {
	gl.DeleteVertexArrays(1, &s.vao)
	gl.DeleteBuffers(1, &s.faceVBO)
	gl.DeleteBuffers(1, &s.originSSBO)
	gl.DeleteBuffers(1, &s.indirectBuf)
	s.shader.Delete()
}

func glError(label string) error {
	if err := gl.GetError(); err != gl.NO_ERROR {
		return fmt.Errorf("%w: gl error %s: 0x%x", world.ErrSinkUnavailable, label, err)
	}
	return nil
}

func glCheckError(label string) {
	if err := gl.GetError(); err != gl.NO_ERROR {
		log.Printf("gl error %s: 0x%x", label, err)
	}
}
