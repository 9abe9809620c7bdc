package gfx

import "github.com/go-gl/mathgl/mgl32"

// Buffer, Shader and Program are opaque GPU object handles. Zero is never a
// valid object.
type (
	Buffer  uint32
	Shader  uint32
	Program uint32
)

// UniformLocation is a resolved uniform slot. NoLocation means the program
// has no active uniform of that name; uploads to it are ignored by the GPU.
type UniformLocation int32

const NoLocation UniformLocation = -1

type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

type DataType int

const (
	Float DataType = iota
	UnsignedShort
)

// Size returns the byte size of one element.
func (t DataType) Size() int {
	switch t {
	case Float:
		return 4
	case UnsignedShort:
		return 2
	default:
		return 0
	}
}

type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
	TriangleFan
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle-strip"
	case TriangleFan:
		return "triangle-fan"
	default:
		return "unknown"
	}
}

type ClearMask int

const (
	ColorBufferBit ClearMask = 1 << iota
	DepthBufferBit
)

// Context is the set of GPU calls the shader registry and the draw surface
// need. Implementations wrap a context acquired elsewhere and must be used
// from the thread that owns it.
type Context interface {
	CreateBuffer() Buffer
	BindBuffer(target BufferTarget, b Buffer)
	BufferFloat32Data(target BufferTarget, data []float32)
	BufferUint16Data(target BufferTarget, data []uint16)
	DeleteBuffer(b Buffer)

	CreateShader(stage ShaderStage) Shader
	ShaderSource(s Shader, source string)
	CompileShader(s Shader)
	ShaderCompiled(s Shader) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	BindAttribLocation(p Program, index uint32, name string)
	LinkProgram(p Program)
	ProgramLinked(p Program) bool
	ProgramInfoLog(p Program) string
	UseProgram(p Program)
	DeleteProgram(p Program)

	GetUniformLocation(p Program, name string) UniformLocation
	Uniform1i(loc UniformLocation, v int32)
	Uniform4f(loc UniformLocation, x, y, z, w float32)
	UniformMatrix4fv(loc UniformLocation, m mgl32.Mat4)

	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, typ DataType, normalized bool, stride int32, offset int)
	DrawArrays(mode Primitive, first, count int32)
	DrawElements(mode Primitive, count int32, typ DataType, offset int)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
}
