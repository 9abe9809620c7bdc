package gfx_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/kjkrol/gokdraw/pkg/gfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanGeometry(t *testing.T) {
	const points = 8
	geom := gfx.FanGeometry(points, rand.New(rand.NewPCG(1, 2)))

	const perVertex = 5
	require.Equal(t, int32(points+2), geom.Layout.Count)
	require.Len(t, geom.Vertices, (points+2)*perVertex)
	assert.Equal(t, gfx.TriangleFan, geom.Primitive)
	assert.Empty(t, geom.Indices)

	assert.Equal(t, float32(0), geom.Vertices[0])
	assert.Equal(t, float32(0), geom.Vertices[1])

	for i := 0; i <= points; i++ {
		angle := float64(i) * 2 * math.Pi / points
		v := geom.Vertices[(i+1)*perVertex:]
		assert.InDelta(t, math.Cos(angle), v[0], 1e-6, "x of vertex %d", i+1)
		assert.InDelta(t, math.Sin(angle), v[1], 1e-6, "y of vertex %d", i+1)
	}

	first := geom.Vertices[perVertex:]
	last := geom.Vertices[(points+1)*perVertex:]
	assert.InDelta(t, first[0], last[0], 1e-6, "closing vertex repeats the first")
	assert.InDelta(t, first[1], last[1], 1e-6)

	for i := 0; i < len(geom.Vertices); i += perVertex {
		for _, c := range geom.Vertices[i+2 : i+5] {
			assert.GreaterOrEqual(t, c, float32(0))
			assert.Less(t, c, float32(1))
		}
	}
}

func TestFanGeometry_Layout(t *testing.T) {
	geom := gfx.FanGeometry(6, rand.New(rand.NewPCG(0, 0)))
	assert.Equal(t, int32(20), geom.Layout.Stride)
	require.Len(t, geom.Layout.Attributes, 2)
	assert.Equal(t, gfx.VertexAttribute{Name: "aVertexPosition", Components: 2, Offset: 0}, geom.Layout.Attributes[0])
	assert.Equal(t, gfx.VertexAttribute{Name: "aVertexColor", Components: 3, Offset: 8}, geom.Layout.Attributes[1])
}

func TestFanGeometry_SeedIsDeterministic(t *testing.T) {
	a := gfx.FanGeometry(8, rand.New(rand.NewPCG(7, 7)))
	b := gfx.FanGeometry(8, rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, a.Vertices, b.Vertices)
}

func TestIndexedQuadGeometry(t *testing.T) {
	geom := gfx.IndexedQuadGeometry()

	assert.Equal(t, int32(4), geom.Layout.Count)
	assert.Len(t, geom.Vertices, 4*5)
	assert.Equal(t, []uint16{0, 1, 2, 2, 1, 3}, geom.Indices)
	assert.Equal(t, gfx.Triangles, geom.Primitive)
	assert.Equal(t, int32(20), geom.Layout.Stride)
}

func TestFlatQuadGeometry(t *testing.T) {
	geom := gfx.FlatQuadGeometry()

	assert.Equal(t, int32(4), geom.Layout.Count)
	assert.Equal(t, []float32{-0.5, 0.5, -0.5, -0.5, 0.5, 0.5, 0.5, -0.5}, geom.Vertices)
	assert.Empty(t, geom.Indices)
	assert.Equal(t, gfx.TriangleStrip, geom.Primitive)
	require.Len(t, geom.Layout.Attributes, 1)
	assert.Equal(t, int32(8), geom.Layout.Stride)
}

func TestParseShape(t *testing.T) {
	for _, shape := range []gfx.Shape{gfx.ShapeFan, gfx.ShapeIndexedQuad, gfx.ShapeFlatQuad} {
		parsed, err := gfx.ParseShape(shape.String())
		require.NoError(t, err)
		assert.Equal(t, shape, parsed)
	}
	_, err := gfx.ParseShape("hexagon")
	assert.Error(t, err)
	assert.Equal(t, "Shape(9)", gfx.Shape(9).String())
}
