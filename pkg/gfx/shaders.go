package gfx

import _ "embed"

// Shader names registered by Surface.
const (
	VertexColorShader = "vertexColor"
	FlatColorShader   = "flatColor"
)

const (
	attrPosition = "aVertexPosition"
	attrColor    = "aVertexColor"
	uniformMVP   = "uMVP"
	uniformColor = "uColor"
)

// Sources carry no #version line; backends prepend the one their context
// accepts.
var (
	//go:embed shaders/vertex_color.vert
	vertexColorVert string
	//go:embed shaders/vertex_color.frag
	vertexColorFrag string
	//go:embed shaders/flat_color.vert
	flatColorVert string
	//go:embed shaders/flat_color.frag
	flatColorFrag string
)

// VertexColorDescriptor interpolates a per-vertex color under the uMVP
// projection.
func VertexColorDescriptor() ShaderDescriptor {
	return ShaderDescriptor{
		Name:           VertexColorShader,
		VertexSource:   vertexColorVert,
		FragmentSource: vertexColorFrag,
		Attributes:     []string{attrPosition, attrColor},
		Uniforms:       []string{uniformMVP},
	}
}

// FlatColorDescriptor fills with the uColor uniform.
func FlatColorDescriptor() ShaderDescriptor {
	return ShaderDescriptor{
		Name:           FlatColorShader,
		VertexSource:   flatColorVert,
		FragmentSource: flatColorFrag,
		Attributes:     []string{attrPosition},
		Uniforms:       []string{uniformColor},
	}
}
