package world

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/voxel"
)

// DrawSink consumes packed faces and draw commands. It is written from one
// goroutine per frame.
type DrawSink interface {
	// UploadFaces replaces the face buffer.
	UploadFaces(faces []voxel.PackedFace) error
	// UploadChunkOrigins sets one world origin per following draw record.
	UploadChunkOrigins(origins [][3]int32) error
	// Submit issues the indirect draws.
	Submit(records []DrawRecord) error
	// BindCameraUniforms sets the view and projection used by the face program.
	BindCameraUniforms(view, proj mgl32.Mat4) error
}

// DrawRecord is one indirect draw: a 4-vertex quad instanced InstanceCount
// times starting at BaseInstance in the face buffer.
type DrawRecord struct {
	VertexCount   uint32
	InstanceCount uint32
	First         uint32
	BaseInstance  uint32
}

// DrawRecordSize is the wire size of a DrawRecord.
const DrawRecordSize = 16

// AppendLE appends the record as four little-endian uint32s.
func (r DrawRecord) AppendLE(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, r.VertexCount)
	dst = binary.LittleEndian.AppendUint32(dst, r.InstanceCount)
	dst = binary.LittleEndian.AppendUint32(dst, r.First)
	return binary.LittleEndian.AppendUint32(dst, r.BaseInstance)
}

// EncodeDrawRecords serialises records back to back.
func EncodeDrawRecords(records []DrawRecord) []byte {
	buf := make([]byte, 0, len(records)*DrawRecordSize)
	for _, r := range records {
		buf = r.AppendLE(buf)
	}
	return buf
}

// DecodeDrawRecords parses a buffer written by EncodeDrawRecords.
func DecodeDrawRecords(buf []byte) ([]DrawRecord, error) {
	if len(buf)%DrawRecordSize != 0 {
		return nil, fmt.Errorf("decode draw records: %d bytes is not a multiple of %d", len(buf), DrawRecordSize)
	}
	out := make([]DrawRecord, 0, len(buf)/DrawRecordSize)
	for off := 0; off < len(buf); off += DrawRecordSize {
		b := buf[off : off+DrawRecordSize]
		out = append(out, DrawRecord{
			VertexCount:   binary.LittleEndian.Uint32(b[0:]),
			InstanceCount: binary.LittleEndian.Uint32(b[4:]),
			First:         binary.LittleEndian.Uint32(b[8:]),
			BaseInstance:  binary.LittleEndian.Uint32(b[12:]),
		})
	}
	return out, nil
}

// ErrSinkUnavailable is what MemorySink returns for injected failures.
var ErrSinkUnavailable = errors.New("world: draw sink unavailable")

// MemorySink is a DrawSink that keeps the last upload and submission in
// memory. It backs tests and the headless benchmark.
type MemorySink struct {
	mu sync.Mutex

	Faces   []voxel.PackedFace
	Origins [][3]int32
	Records []DrawRecord
	View    mgl32.Mat4
	Proj    mgl32.Mat4

	Uploads     int
	Submissions int

	// FailUploads makes the next n UploadFaces calls fail.
	FailUploads int
}

// NewMemorySink returns an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) UploadFaces(faces []voxel.PackedFace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUploads > 0 {
		s.FailUploads--
		return ErrSinkUnavailable
	}
	s.Faces = append(s.Faces[:0], faces...)
	s.Uploads++
	return nil
}

func (s *MemorySink) UploadChunkOrigins(origins [][3]int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Origins = append(s.Origins[:0], origins...)
	return nil
}

func (s *MemorySink) Submit(records []DrawRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Records = append(s.Records[:0], records...)
	s.Submissions++
	return nil
}

func (s *MemorySink) BindCameraUniforms(view, proj mgl32.Mat4) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.View, s.Proj = view, proj
	return nil
}

// FailNextUploads makes the next n face uploads fail.
func (s *MemorySink) FailNextUploads(n int) {
	s.mu.Lock()
	s.FailUploads = n
	s.mu.Unlock()
}

// Snapshot returns copies of the face buffer and the last submission.
func (s *MemorySink) Snapshot() (faces []voxel.PackedFace, origins [][3]int32, records []DrawRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.Faces), slices.Clone(s.Origins), slices.Clone(s.Records)
}

// WireRecords returns the last submission in its little-endian wire form.
func (s *MemorySink) WireRecords() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return EncodeDrawRecords(s.Records)
}
