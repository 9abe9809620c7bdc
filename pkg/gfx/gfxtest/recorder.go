// Package gfxtest provides a gfx.Context that records calls instead of
// talking to a GPU.
package gfxtest

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kjkrol/gokdraw/pkg/gfx"
)

// Call is one recorded context call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Recorder implements gfx.Context. Handles are allocated from one counter
// starting at 1. Failures are injected per stage or for linking; uniform
// lookups return sequential locations unless listed in MissingUniforms.
type Recorder struct {
	Calls []Call

	FailStage       map[gfx.ShaderStage]string
	FailLink        string
	MissingUniforms []string

	Buffers      map[gfx.Buffer][]float32
	IndexBuffers map[gfx.Buffer][]uint16

	next         uint32
	nextLocation gfx.UniformLocation
	shaderStage  map[gfx.Shader]gfx.ShaderStage
	bound        map[gfx.BufferTarget]gfx.Buffer
	liveShaders  map[gfx.Shader]bool
	livePrograms map[gfx.Program]bool
	liveBuffers  map[gfx.Buffer]bool
}

var _ gfx.Context = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{
		FailStage:    make(map[gfx.ShaderStage]string),
		Buffers:      make(map[gfx.Buffer][]float32),
		IndexBuffers: make(map[gfx.Buffer][]uint16),
		shaderStage:  make(map[gfx.Shader]gfx.ShaderStage),
		bound:        make(map[gfx.BufferTarget]gfx.Buffer),
		liveShaders:  make(map[gfx.Shader]bool),
		livePrograms: make(map[gfx.Program]bool),
		liveBuffers:  make(map[gfx.Buffer]bool),
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) handle() uint32 {
	r.next++
	return r.next
}

// Count returns how many times the named call was recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls with the given name, in order.
func (r *Recorder) Filter(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the names of all recorded calls, in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

func (r *Recorder) Reset() {
	r.Calls = nil
}

// Live reports the GPU objects created and not yet deleted.
func (r *Recorder) Live() (shaders, programs, buffers int) {
	return len(r.liveShaders), len(r.livePrograms), len(r.liveBuffers)
}

func (r *Recorder) CreateBuffer() gfx.Buffer {
	b := gfx.Buffer(r.handle())
	r.liveBuffers[b] = true
	r.record("CreateBuffer", b)
	return b
}

func (r *Recorder) BindBuffer(target gfx.BufferTarget, b gfx.Buffer) {
	r.bound[target] = b
	r.record("BindBuffer", target, b)
}

func (r *Recorder) BufferFloat32Data(target gfx.BufferTarget, data []float32) {
	r.Buffers[r.bound[target]] = slices.Clone(data)
	r.record("BufferFloat32Data", target, len(data))
}

func (r *Recorder) BufferUint16Data(target gfx.BufferTarget, data []uint16) {
	r.IndexBuffers[r.bound[target]] = slices.Clone(data)
	r.record("BufferUint16Data", target, len(data))
}

func (r *Recorder) DeleteBuffer(b gfx.Buffer) {
	delete(r.liveBuffers, b)
	r.record("DeleteBuffer", b)
}

func (r *Recorder) CreateShader(stage gfx.ShaderStage) gfx.Shader {
	s := gfx.Shader(r.handle())
	r.shaderStage[s] = stage
	r.liveShaders[s] = true
	r.record("CreateShader", stage, s)
	return s
}

func (r *Recorder) ShaderSource(s gfx.Shader, source string) {
	r.record("ShaderSource", s, source)
}

func (r *Recorder) CompileShader(s gfx.Shader) {
	r.record("CompileShader", s)
}

func (r *Recorder) ShaderCompiled(s gfx.Shader) bool {
	_, failed := r.FailStage[r.shaderStage[s]]
	return !failed
}

func (r *Recorder) ShaderInfoLog(s gfx.Shader) string {
	return r.FailStage[r.shaderStage[s]]
}

func (r *Recorder) DeleteShader(s gfx.Shader) {
	delete(r.liveShaders, s)
	r.record("DeleteShader", s)
}

func (r *Recorder) CreateProgram() gfx.Program {
	p := gfx.Program(r.handle())
	r.livePrograms[p] = true
	r.record("CreateProgram", p)
	return p
}

func (r *Recorder) AttachShader(p gfx.Program, s gfx.Shader) {
	r.record("AttachShader", p, s)
}

func (r *Recorder) BindAttribLocation(p gfx.Program, index uint32, name string) {
	r.record("BindAttribLocation", p, index, name)
}

func (r *Recorder) LinkProgram(p gfx.Program) {
	r.record("LinkProgram", p)
}

func (r *Recorder) ProgramLinked(gfx.Program) bool {
	return r.FailLink == ""
}

func (r *Recorder) ProgramInfoLog(gfx.Program) string {
	return r.FailLink
}

func (r *Recorder) UseProgram(p gfx.Program) {
	r.record("UseProgram", p)
}

func (r *Recorder) DeleteProgram(p gfx.Program) {
	delete(r.livePrograms, p)
	r.record("DeleteProgram", p)
}

func (r *Recorder) GetUniformLocation(p gfx.Program, name string) gfx.UniformLocation {
	loc := gfx.NoLocation
	if !slices.Contains(r.MissingUniforms, name) {
		loc = r.nextLocation
		r.nextLocation++
	}
	r.record("GetUniformLocation", p, name)
	return loc
}

func (r *Recorder) Uniform1i(loc gfx.UniformLocation, v int32) {
	r.record("Uniform1i", loc, v)
}

func (r *Recorder) Uniform4f(loc gfx.UniformLocation, x, y, z, w float32) {
	r.record("Uniform4f", loc, x, y, z, w)
}

func (r *Recorder) UniformMatrix4fv(loc gfx.UniformLocation, m mgl32.Mat4) {
	r.record("UniformMatrix4fv", loc, m)
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, typ gfx.DataType, normalized bool, stride int32, offset int) {
	r.record("VertexAttribPointer", index, size, typ, normalized, stride, offset)
}

func (r *Recorder) DrawArrays(mode gfx.Primitive, first, count int32) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawElements(mode gfx.Primitive, count int32, typ gfx.DataType, offset int) {
	r.record("DrawElements", mode, count, typ, offset)
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) Clear(mask gfx.ClearMask) {
	r.record("Clear", mask)
}
