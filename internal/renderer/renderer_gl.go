//go:build !js

package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/kjkrol/gokdraw/pkg/gfx"
)

// glContext implements gfx.Context on the OpenGL 3.3 core context current on
// the calling thread.
type glContext struct {
	vao uint32
}

var _ gfx.Context = (*glContext)(nil)

// NewContext loads the GL entry points for the context current on this
// thread; native is unused on desktop. Core profiles refuse to draw without a
// vertex array object, so one is created and left bound until release.
func NewContext(_ any) (gfx.Context, func(), error) {
	if err := gl.Init(); err != nil {
		return nil, nil, fmt.Errorf("gl init: %w", err)
	}
	c := &glContext{}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	gfx.Logger().Info("opengl context ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	release := func() {
		if c.vao != 0 {
			gl.DeleteVertexArrays(1, &c.vao)
			c.vao = 0
		}
	}
	return c, release, nil
}

func glBufferTarget(t gfx.BufferTarget) uint32 {
	if t == gfx.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glShaderType(s gfx.ShaderStage) uint32 {
	if s == gfx.FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func glDataType(t gfx.DataType) uint32 {
	if t == gfx.UnsignedShort {
		return gl.UNSIGNED_SHORT
	}
	return gl.FLOAT
}

func glPrimitive(p gfx.Primitive) uint32 {
	switch p {
	case gfx.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case gfx.TriangleFan:
		return gl.TRIANGLE_FAN
	default:
		return gl.TRIANGLES
	}
}

func glClearMask(m gfx.ClearMask) uint32 {
	var mask uint32
	if m&gfx.ColorBufferBit != 0 {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if m&gfx.DepthBufferBit != 0 {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	return mask
}

func (c *glContext) CreateBuffer() gfx.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return gfx.Buffer(b)
}

func (c *glContext) BindBuffer(target gfx.BufferTarget, b gfx.Buffer) {
	gl.BindBuffer(glBufferTarget(target), uint32(b))
}

func (c *glContext) BufferFloat32Data(target gfx.BufferTarget, data []float32) {
	if len(data) == 0 {
		gl.BufferData(glBufferTarget(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(glBufferTarget(target), len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (c *glContext) BufferUint16Data(target gfx.BufferTarget, data []uint16) {
	if len(data) == 0 {
		gl.BufferData(glBufferTarget(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(glBufferTarget(target), len(data)*2, gl.Ptr(data), gl.STATIC_DRAW)
}

func (c *glContext) DeleteBuffer(b gfx.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (c *glContext) CreateShader(stage gfx.ShaderStage) gfx.Shader {
	return gfx.Shader(gl.CreateShader(glShaderType(stage)))
}

func (c *glContext) ShaderSource(s gfx.Shader, source string) {
	csources, free := gl.Strs(buildShaderSource(desktopPreamble, source) + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (c *glContext) CompileShader(s gfx.Shader) {
	gl.CompileShader(uint32(s))
}

func (c *glContext) ShaderCompiled(s gfx.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (c *glContext) ShaderInfoLog(s gfx.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(s), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *glContext) DeleteShader(s gfx.Shader) {
	gl.DeleteShader(uint32(s))
}

func (c *glContext) CreateProgram() gfx.Program {
	return gfx.Program(gl.CreateProgram())
}

func (c *glContext) AttachShader(p gfx.Program, s gfx.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (c *glContext) BindAttribLocation(p gfx.Program, index uint32, name string) {
	gl.BindAttribLocation(uint32(p), index, gl.Str(name+"\x00"))
}

func (c *glContext) LinkProgram(p gfx.Program) {
	gl.LinkProgram(uint32(p))
}

func (c *glContext) ProgramLinked(p gfx.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (c *glContext) ProgramInfoLog(p gfx.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(p), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *glContext) UseProgram(p gfx.Program) {
	gl.UseProgram(uint32(p))
}

func (c *glContext) DeleteProgram(p gfx.Program) {
	gl.DeleteProgram(uint32(p))
}

func (c *glContext) GetUniformLocation(p gfx.Program, name string) gfx.UniformLocation {
	return gfx.UniformLocation(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (c *glContext) Uniform1i(loc gfx.UniformLocation, v int32) {
	gl.Uniform1i(int32(loc), v)
}

func (c *glContext) Uniform4f(loc gfx.UniformLocation, x, y, z, w float32) {
	gl.Uniform4f(int32(loc), x, y, z, w)
}

func (c *glContext) UniformMatrix4fv(loc gfx.UniformLocation, m mgl32.Mat4) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

func (c *glContext) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (c *glContext) VertexAttribPointer(index uint32, size int32, typ gfx.DataType, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, glDataType(typ), normalized, stride, gl.PtrOffset(offset))
}

func (c *glContext) DrawArrays(mode gfx.Primitive, first, count int32) {
	gl.DrawArrays(glPrimitive(mode), first, count)
}

func (c *glContext) DrawElements(mode gfx.Primitive, count int32, typ gfx.DataType, offset int) {
	gl.DrawElements(glPrimitive(mode), count, glDataType(typ), gl.PtrOffset(offset))
}

func (c *glContext) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (c *glContext) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *glContext) Clear(mask gfx.ClearMask) {
	gl.Clear(glClearMask(mask))
}
