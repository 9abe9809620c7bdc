package gfx

import (
	"fmt"
	"math"
	"math/rand/v2"
)

type Shape int

const (
	ShapeFan Shape = iota
	ShapeIndexedQuad
	ShapeFlatQuad
)

var shapeNames = map[Shape]string{
	ShapeFan:         "fan",
	ShapeIndexedQuad: "indexed-quad",
	ShapeFlatQuad:    "flat-quad",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

func ParseShape(name string) (Shape, error) {
	for shape, n := range shapeNames {
		if n == name {
			return shape, nil
		}
	}
	return 0, fmt.Errorf("gfx: unknown shape %q", name)
}

// VertexAttribute places one named attribute inside an interleaved vertex.
type VertexAttribute struct {
	Name       string
	Components int32
	Offset     int
}

// VertexLayout describes interleaved float32 vertex data.
type VertexLayout struct {
	Stride     int32
	Attributes []VertexAttribute
	Count      int32
}

// Geometry is the CPU-side content of the buffers a surface uploads.
type Geometry struct {
	Vertices  []float32
	Indices   []uint16
	Layout    VertexLayout
	Primitive Primitive
}

const (
	positionComponents = 2
	colorComponents    = 3
	floatSize          = 4
)

func positionColorLayout(count int) VertexLayout {
	return VertexLayout{
		Stride: (positionComponents + colorComponents) * floatSize,
		Attributes: []VertexAttribute{
			{Name: attrPosition, Components: positionComponents, Offset: 0},
			{Name: attrColor, Components: colorComponents, Offset: positionComponents * floatSize},
		},
		Count: int32(count),
	}
}

// FanGeometry builds a regular polygon drawn as a triangle fan: a center
// vertex followed by points+1 perimeter vertices, the last closing the loop
// at angle 2π. Every vertex gets a random color from rng.
func FanGeometry(points int, rng *rand.Rand) Geometry {
	count := points + 2
	vertices := make([]float32, 0, count*(positionComponents+colorComponents))
	vertices = append(vertices, 0, 0, rng.Float32(), rng.Float32(), rng.Float32())

	delta := 2 * math.Pi / float64(points)
	for i := 0; i <= points; i++ {
		angle := float64(i) * delta
		vertices = append(vertices,
			float32(math.Cos(angle)), float32(math.Sin(angle)),
			rng.Float32(), rng.Float32(), rng.Float32(),
		)
	}
	return Geometry{
		Vertices:  vertices,
		Layout:    positionColorLayout(count),
		Primitive: TriangleFan,
	}
}

var quadCorners = [4][2]float32{
	{-0.5, 0.5},
	{-0.5, -0.5},
	{0.5, 0.5},
	{0.5, -0.5},
}

var quadColors = [4][3]float32{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 1, 1},
}

// IndexedQuadGeometry builds a colored quad from four vertices and the two
// triangles (0,1,2) and (2,1,3).
func IndexedQuadGeometry() Geometry {
	vertices := make([]float32, 0, len(quadCorners)*(positionComponents+colorComponents))
	for i, c := range quadCorners {
		vertices = append(vertices, c[0], c[1], quadColors[i][0], quadColors[i][1], quadColors[i][2])
	}
	return Geometry{
		Vertices:  vertices,
		Indices:   []uint16{0, 1, 2, 2, 1, 3},
		Layout:    positionColorLayout(len(quadCorners)),
		Primitive: Triangles,
	}
}

// FlatQuadGeometry builds a position-only quad drawn as a triangle strip.
func FlatQuadGeometry() Geometry {
	vertices := make([]float32, 0, len(quadCorners)*positionComponents)
	for _, c := range quadCorners {
		vertices = append(vertices, c[0], c[1])
	}
	return Geometry{
		Vertices: vertices,
		Layout: VertexLayout{
			Stride:     positionComponents * floatSize,
			Attributes: []VertexAttribute{{Name: attrPosition, Components: positionComponents}},
			Count:      int32(len(quadCorners)),
		},
		Primitive: TriangleStrip,
	}
}
