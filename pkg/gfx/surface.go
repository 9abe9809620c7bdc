package gfx

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Surface owns the buffers of one shape and issues the draw sequence for a
// frame. It borrows the registry; the caller destroys both.
type Surface struct {
	ctx     Context
	shaders *ShaderRegistry
	conf    SurfaceConfig

	shaderName   string
	geometry     Geometry
	vertexBuffer Buffer
	indexBuffer  Buffer
	projection   mgl32.Mat4
	flatColor    [4]float32
	initialized  bool
}

var _ Renderer = (*Surface)(nil)

func NewSurface(ctx Context, shaders *ShaderRegistry, conf SurfaceConfig) *Surface {
	return &Surface{
		ctx:     ctx,
		shaders: shaders,
		conf:    conf,
	}
}

// Geometry returns the data uploaded by Init.
func (s *Surface) Geometry() Geometry {
	return s.geometry
}

func (s *Surface) Init() error {
	if s.initialized {
		return nil
	}
	var desc ShaderDescriptor
	switch s.conf.Shape {
	case ShapeFan:
		points := s.conf.Points
		if points < 3 {
			return fmt.Errorf("gfx: fan needs at least 3 points, got %d", points)
		}
		rng := rand.New(rand.NewPCG(s.conf.Seed, s.conf.Seed^0x9e3779b97f4a7c15))
		s.geometry = FanGeometry(points, rng)
		desc = VertexColorDescriptor()
	case ShapeIndexedQuad:
		s.geometry = IndexedQuadGeometry()
		desc = VertexColorDescriptor()
	case ShapeFlatQuad:
		s.geometry = FlatQuadGeometry()
		desc = FlatColorDescriptor()
	default:
		return fmt.Errorf("gfx: unsupported shape %v", s.conf.Shape)
	}

	if !s.shaders.Registered(desc.Name) {
		if err := s.shaders.Register(desc); err != nil {
			return fmt.Errorf("register shader: %w", err)
		}
	}
	s.shaderName = desc.Name

	s.vertexBuffer = s.ctx.CreateBuffer()
	s.ctx.BindBuffer(ArrayBuffer, s.vertexBuffer)
	s.ctx.BufferFloat32Data(ArrayBuffer, s.geometry.Vertices)
	if len(s.geometry.Indices) > 0 {
		s.indexBuffer = s.ctx.CreateBuffer()
		s.ctx.BindBuffer(ElementArrayBuffer, s.indexBuffer)
		s.ctx.BufferUint16Data(ElementArrayBuffer, s.geometry.Indices)
	}

	bg := colorToFloat(s.conf.ClearColor)
	s.ctx.ClearColor(bg[0], bg[1], bg[2], bg[3])
	s.flatColor = colorToFloat(s.conf.FlatColor)
	s.projection = mgl32.Ortho(-1, 1, -1, 1, 1, -1)

	s.initialized = true
	Logger().Debug("surface initialized", "shape", s.conf.Shape, "vertices", s.geometry.Layout.Count,
		"indices", len(s.geometry.Indices), "shader", s.shaderName)
	return nil
}

// DrawFrame clears the target and draws the shape once. Bound buffers and
// the active program are left in place. Non-positive sizes draw nothing.
func (s *Surface) DrawFrame(width, height int) error {
	if !s.initialized {
		return ErrSurfaceNotReady
	}
	if width <= 0 || height <= 0 {
		return nil
	}

	s.ctx.Clear(ColorBufferBit | DepthBufferBit)
	s.ctx.Viewport(0, 0, int32(width), int32(height))

	shader, err := s.shaders.GetShader(s.shaderName)
	if err != nil {
		return err
	}
	s.ctx.UseProgram(shader.Program)
	if loc, ok := shader.Uniform(uniformMVP); ok {
		s.ctx.UniformMatrix4fv(loc, s.projection)
	}
	if loc, ok := shader.Uniform(uniformColor); ok {
		s.ctx.Uniform4f(loc, s.flatColor[0], s.flatColor[1], s.flatColor[2], s.flatColor[3])
	}

	layout := s.geometry.Layout
	s.ctx.BindBuffer(ArrayBuffer, s.vertexBuffer)
	for _, attr := range layout.Attributes {
		index, ok := shader.AttributeIndex(attr.Name)
		if !ok {
			continue
		}
		s.ctx.EnableVertexAttribArray(index)
		s.ctx.VertexAttribPointer(index, attr.Components, Float, false, layout.Stride, attr.Offset)
	}

	if s.indexBuffer != 0 {
		s.ctx.BindBuffer(ElementArrayBuffer, s.indexBuffer)
		s.ctx.DrawElements(s.geometry.Primitive, int32(len(s.geometry.Indices)), UnsignedShort, 0)
		return nil
	}
	s.ctx.DrawArrays(s.geometry.Primitive, 0, layout.Count)
	return nil
}

func (s *Surface) Destroy() {
	if !s.initialized {
		return
	}
	if s.vertexBuffer != 0 {
		s.ctx.DeleteBuffer(s.vertexBuffer)
	}
	if s.indexBuffer != 0 {
		s.ctx.DeleteBuffer(s.indexBuffer)
	}
	s.vertexBuffer = 0
	s.indexBuffer = 0
	s.initialized = false
	Logger().Debug("surface destroyed", "shape", s.conf.Shape)
}
