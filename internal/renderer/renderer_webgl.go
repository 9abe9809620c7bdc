//go:build js && wasm

package renderer

import (
	"errors"
	"syscall/js"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kjkrol/gokdraw/pkg/gfx"
)

type glConsts struct {
	arrayBuffer        int
	elementArrayBuffer int
	staticDraw         int
	floatType          int
	unsignedShort      int
	triangles          int
	triangleStrip      int
	triangleFan        int
	colorBufferBit     int
	depthBufferBit     int
	compileStatus      int
	linkStatus         int
	vertexShader       int
	fragmentShader     int
}

// webglContext implements gfx.Context on a WebGL2RenderingContext. WebGL
// objects are JS references, so they are kept in handle tables and handed
// out as integers.
type webglContext struct {
	gl     js.Value
	consts glConsts

	buffers  *handleTable[js.Value]
	shaders  *handleTable[js.Value]
	programs *handleTable[js.Value]
	uniforms *uniformTable[js.Value]
	vao      js.Value
}

var _ gfx.Context = (*webglContext)(nil)

// NewContext wraps the webgl2 context passed as native (a js.Value).
func NewContext(native any) (gfx.Context, func(), error) {
	gl, ok := native.(js.Value)
	if !ok || gl.IsUndefined() || gl.IsNull() {
		return nil, nil, errors.New("webgl2 context is required")
	}
	c := &webglContext{
		gl:       gl,
		buffers:  newHandleTable[js.Value](),
		shaders:  newHandleTable[js.Value](),
		programs: newHandleTable[js.Value](),
		uniforms: newUniformTable[js.Value](),
	}
	c.initConsts()
	c.vao = gl.Call("createVertexArray")
	gl.Call("bindVertexArray", c.vao)
	gfx.Logger().Info("webgl context ready", "version", gl.Call("getParameter", gl.Get("VERSION")).String())
	release := func() {
		if !c.vao.IsNull() && !c.vao.IsUndefined() {
			c.gl.Call("deleteVertexArray", c.vao)
			c.vao = js.Null()
		}
	}
	return c, release, nil
}

func (c *webglContext) initConsts() {
	c.consts = glConsts{
		arrayBuffer:        c.gl.Get("ARRAY_BUFFER").Int(),
		elementArrayBuffer: c.gl.Get("ELEMENT_ARRAY_BUFFER").Int(),
		staticDraw:         c.gl.Get("STATIC_DRAW").Int(),
		floatType:          c.gl.Get("FLOAT").Int(),
		unsignedShort:      c.gl.Get("UNSIGNED_SHORT").Int(),
		triangles:          c.gl.Get("TRIANGLES").Int(),
		triangleStrip:      c.gl.Get("TRIANGLE_STRIP").Int(),
		triangleFan:        c.gl.Get("TRIANGLE_FAN").Int(),
		colorBufferBit:     c.gl.Get("COLOR_BUFFER_BIT").Int(),
		depthBufferBit:     c.gl.Get("DEPTH_BUFFER_BIT").Int(),
		compileStatus:      c.gl.Get("COMPILE_STATUS").Int(),
		linkStatus:         c.gl.Get("LINK_STATUS").Int(),
		vertexShader:       c.gl.Get("VERTEX_SHADER").Int(),
		fragmentShader:     c.gl.Get("FRAGMENT_SHADER").Int(),
	}
}

func (c *webglContext) bufferTarget(t gfx.BufferTarget) int {
	if t == gfx.ElementArrayBuffer {
		return c.consts.elementArrayBuffer
	}
	return c.consts.arrayBuffer
}

func (c *webglContext) dataType(t gfx.DataType) int {
	if t == gfx.UnsignedShort {
		return c.consts.unsignedShort
	}
	return c.consts.floatType
}

func (c *webglContext) primitive(p gfx.Primitive) int {
	switch p {
	case gfx.TriangleStrip:
		return c.consts.triangleStrip
	case gfx.TriangleFan:
		return c.consts.triangleFan
	default:
		return c.consts.triangles
	}
}

// object returns the JS object for h, or null for unknown handles so that
// calls such as bindBuffer(target, null) unbind as in GL.
func object(t *handleTable[js.Value], h uint32) js.Value {
	if obj, ok := t.get(h); ok {
		return obj
	}
	return js.Null()
}

func (c *webglContext) CreateBuffer() gfx.Buffer {
	return gfx.Buffer(c.buffers.add(c.gl.Call("createBuffer")))
}

func (c *webglContext) BindBuffer(target gfx.BufferTarget, b gfx.Buffer) {
	c.gl.Call("bindBuffer", c.bufferTarget(target), object(c.buffers, uint32(b)))
}

func (c *webglContext) BufferFloat32Data(target gfx.BufferTarget, data []float32) {
	c.gl.Call("bufferData", c.bufferTarget(target), float32Array(data), c.consts.staticDraw)
}

func (c *webglContext) BufferUint16Data(target gfx.BufferTarget, data []uint16) {
	c.gl.Call("bufferData", c.bufferTarget(target), uint16Array(data), c.consts.staticDraw)
}

func (c *webglContext) DeleteBuffer(b gfx.Buffer) {
	if obj, ok := c.buffers.remove(uint32(b)); ok {
		c.gl.Call("deleteBuffer", obj)
	}
}

func (c *webglContext) CreateShader(stage gfx.ShaderStage) gfx.Shader {
	typ := c.consts.vertexShader
	if stage == gfx.FragmentStage {
		typ = c.consts.fragmentShader
	}
	return gfx.Shader(c.shaders.add(c.gl.Call("createShader", typ)))
}

func (c *webglContext) ShaderSource(s gfx.Shader, source string) {
	c.gl.Call("shaderSource", object(c.shaders, uint32(s)), buildShaderSource(webglPreamble, source))
}

func (c *webglContext) CompileShader(s gfx.Shader) {
	c.gl.Call("compileShader", object(c.shaders, uint32(s)))
}

func (c *webglContext) ShaderCompiled(s gfx.Shader) bool {
	return c.gl.Call("getShaderParameter", object(c.shaders, uint32(s)), c.consts.compileStatus).Bool()
}

func (c *webglContext) ShaderInfoLog(s gfx.Shader) string {
	return c.gl.Call("getShaderInfoLog", object(c.shaders, uint32(s))).String()
}

func (c *webglContext) DeleteShader(s gfx.Shader) {
	if obj, ok := c.shaders.remove(uint32(s)); ok {
		c.gl.Call("deleteShader", obj)
	}
}

func (c *webglContext) CreateProgram() gfx.Program {
	return gfx.Program(c.programs.add(c.gl.Call("createProgram")))
}

func (c *webglContext) AttachShader(p gfx.Program, s gfx.Shader) {
	c.gl.Call("attachShader", object(c.programs, uint32(p)), object(c.shaders, uint32(s)))
}

func (c *webglContext) BindAttribLocation(p gfx.Program, index uint32, name string) {
	c.gl.Call("bindAttribLocation", object(c.programs, uint32(p)), index, name)
}

func (c *webglContext) LinkProgram(p gfx.Program) {
	c.gl.Call("linkProgram", object(c.programs, uint32(p)))
}

func (c *webglContext) ProgramLinked(p gfx.Program) bool {
	return c.gl.Call("getProgramParameter", object(c.programs, uint32(p)), c.consts.linkStatus).Bool()
}

func (c *webglContext) ProgramInfoLog(p gfx.Program) string {
	return c.gl.Call("getProgramInfoLog", object(c.programs, uint32(p))).String()
}

func (c *webglContext) UseProgram(p gfx.Program) {
	c.gl.Call("useProgram", object(c.programs, uint32(p)))
}

func (c *webglContext) DeleteProgram(p gfx.Program) {
	if obj, ok := c.programs.remove(uint32(p)); ok {
		c.gl.Call("deleteProgram", obj)
	}
}

func (c *webglContext) GetUniformLocation(p gfx.Program, name string) gfx.UniformLocation {
	loc := c.gl.Call("getUniformLocation", object(c.programs, uint32(p)), name)
	if loc.IsNull() || loc.IsUndefined() {
		return gfx.NoLocation
	}
	return c.uniforms.add(loc)
}

func (c *webglContext) uniform(loc gfx.UniformLocation) (js.Value, bool) {
	return c.uniforms.get(loc)
}

func (c *webglContext) Uniform1i(loc gfx.UniformLocation, v int32) {
	if u, ok := c.uniform(loc); ok {
		c.gl.Call("uniform1i", u, v)
	}
}

func (c *webglContext) Uniform4f(loc gfx.UniformLocation, x, y, z, w float32) {
	if u, ok := c.uniform(loc); ok {
		c.gl.Call("uniform4f", u, x, y, z, w)
	}
}

func (c *webglContext) UniformMatrix4fv(loc gfx.UniformLocation, m mgl32.Mat4) {
	if u, ok := c.uniform(loc); ok {
		c.gl.Call("uniformMatrix4fv", u, false, float32Array(m[:]))
	}
}

func (c *webglContext) EnableVertexAttribArray(index uint32) {
	c.gl.Call("enableVertexAttribArray", index)
}

func (c *webglContext) VertexAttribPointer(index uint32, size int32, typ gfx.DataType, normalized bool, stride int32, offset int) {
	c.gl.Call("vertexAttribPointer", index, size, c.dataType(typ), normalized, stride, offset)
}

func (c *webglContext) DrawArrays(mode gfx.Primitive, first, count int32) {
	c.gl.Call("drawArrays", c.primitive(mode), first, count)
}

func (c *webglContext) DrawElements(mode gfx.Primitive, count int32, typ gfx.DataType, offset int) {
	c.gl.Call("drawElements", c.primitive(mode), count, c.dataType(typ), offset)
}

func (c *webglContext) Viewport(x, y, width, height int32) {
	c.gl.Call("viewport", x, y, width, height)
}

func (c *webglContext) ClearColor(r, g, b, a float32) {
	c.gl.Call("clearColor", r, g, b, a)
}

func (c *webglContext) Clear(mask gfx.ClearMask) {
	bits := 0
	if mask&gfx.ColorBufferBit != 0 {
		bits |= c.consts.colorBufferBit
	}
	if mask&gfx.DepthBufferBit != 0 {
		bits |= c.consts.depthBufferBit
	}
	c.gl.Call("clear", bits)
}
