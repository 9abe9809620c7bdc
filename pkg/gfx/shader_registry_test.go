package gfx_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/kjkrol/gokdraw/pkg/gfx"
	"github.com/kjkrol/gokdraw/pkg/gfx/gfxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texturedDescriptor() gfx.ShaderDescriptor {
	return gfx.ShaderDescriptor{
		Name:           "textured",
		VertexSource:   "void main() {}",
		FragmentSource: "void main() {}",
		Attributes:     []string{"aPosition", "aColor", "aTexCoord"},
		Samplers:       []string{"uDiffuse", "uNormal", "uMask"},
		Uniforms:       []string{"uMVP", "uTint"},
	}
}

func TestShaderRegistry_RegisterDuplicateKeepsFirst(t *testing.T) {
	rec := gfxtest.NewRecorder()
	reg := gfx.NewShaderRegistry(rec)

	first := texturedDescriptor()
	require.NoError(t, reg.Register(first))

	second := texturedDescriptor()
	second.VertexSource = "broken"
	second.Attributes = []string{"aOther"}
	err := reg.Register(second)

	var dup *gfx.DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "textured", dup.Name)
	assert.Empty(t, rec.Calls, "registration must not touch the GPU")

	compiled, err := reg.GetShader("textured")
	require.NoError(t, err)
	idx, ok := compiled.AttributeIndex("aTexCoord")
	assert.True(t, ok)
	assert.Equal(t, uint32(2), idx)
	_, ok = compiled.AttributeIndex("aOther")
	assert.False(t, ok)
	sources := rec.Filter("ShaderSource")
	require.Len(t, sources, 2)
	assert.Equal(t, first.VertexSource, sources[0].Args[1])
}

func TestShaderRegistry_RegisterCopiesSlices(t *testing.T) {
	reg := gfx.NewShaderRegistry(gfxtest.NewRecorder())
	desc := texturedDescriptor()
	require.NoError(t, reg.Register(desc))
	desc.Attributes[0] = "mutated"

	compiled, err := reg.GetShader("textured")
	require.NoError(t, err)
	idx, ok := compiled.AttributeIndex("aPosition")
	assert.True(t, ok)
	assert.Equal(t, uint32(0), idx)
}

func TestShaderRegistry_RegisterEmptyName(t *testing.T) {
	reg := gfx.NewShaderRegistry(gfxtest.NewRecorder())
	err := reg.Register(gfx.ShaderDescriptor{})
	assert.ErrorIs(t, err, gfx.ErrInvalidDescriptor)
}

func TestShaderRegistry_UnknownShader(t *testing.T) {
	rec := gfxtest.NewRecorder()
	reg := gfx.NewShaderRegistry(rec)
	require.NoError(t, reg.Register(texturedDescriptor()))

	compiled, err := reg.GetShader("missing")
	assert.Nil(t, compiled)
	var unknown *gfx.UnknownShaderError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing", unknown.Name)
	assert.Empty(t, rec.Calls)
}

func TestShaderRegistry_CompilesOnce(t *testing.T) {
	rec := gfxtest.NewRecorder()
	reg := gfx.NewShaderRegistry(rec)
	require.NoError(t, reg.Register(texturedDescriptor()))

	first, err := reg.GetShader("textured")
	require.NoError(t, err)
	callsAfterFirst := len(rec.Calls)

	second, err := reg.GetShader("textured")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 2, rec.Count("CompileShader"))
	assert.Equal(t, 1, rec.Count("LinkProgram"))
	assert.Len(t, rec.Calls, callsAfterFirst, "cached lookup must not touch the GPU")
}

func TestShaderRegistry_AttributeIndicesFollowDeclarationOrder(t *testing.T) {
	rec := gfxtest.NewRecorder()
	reg := gfx.NewShaderRegistry(rec)
	desc := texturedDescriptor()
	require.NoError(t, reg.Register(desc))

	compiled, err := reg.GetShader("textured")
	require.NoError(t, err)

	binds := rec.Filter("BindAttribLocation")
	require.Len(t, binds, len(desc.Attributes))
	for i, name := range desc.Attributes {
		assert.Equal(t, compiled.Program, binds[i].Args[0])
		assert.Equal(t, uint32(i), binds[i].Args[1])
		assert.Equal(t, name, binds[i].Args[2])

		idx, ok := compiled.AttributeIndex(name)
		assert.True(t, ok)
		assert.Equal(t, uint32(i), idx)
	}

	link := slices.Index(rec.Names(), "LinkProgram")
	lastBind := lastIndex(rec.Names(), "BindAttribLocation")
	assert.Less(t, lastBind, link, "attributes must be bound before linking")
}

func TestShaderRegistry_SamplerUnitsFollowDeclarationOrder(t *testing.T) {
	rec := gfxtest.NewRecorder()
	reg := gfx.NewShaderRegistry(rec)
	desc := texturedDescriptor()
	require.NoError(t, reg.Register(desc))

	compiled, err := reg.GetShader("textured")
	require.NoError(t, err)

	sets := rec.Filter("Uniform1i")
	require.Len(t, sets, len(desc.Samplers))
	for i, name := range desc.Samplers {
		loc, unit, ok := compiled.Sampler(name)
		require.True(t, ok)
		assert.Equal(t, int32(i), unit)
		assert.Equal(t, loc, sets[i].Args[0])
		assert.Equal(t, int32(i), sets[i].Args[1])
	}

	use := slices.Index(rec.Names(), "UseProgram")
	firstSet := slices.Index(rec.Names(), "Uniform1i")
	assert.GreaterOrEqual(t, use, 0)
	assert.Less(t, use, firstSet, "samplers are set on the bound program")

	_, err = reg.GetShader("textured")
	require.NoError(t, err)
	assert.Len(t, rec.Filter("Uniform1i"), len(desc.Samplers), "sampler units are set once")
}

func TestShaderRegistry_ResolvesUniforms(t *testing.T) {
	rec := gfxtest.NewRecorder()
	rec.MissingUniforms = []string{"uTint"}
	reg := gfx.NewShaderRegistry(rec)
	require.NoError(t, reg.Register(texturedDescriptor()))

	compiled, err := reg.GetShader("textured")
	require.NoError(t, err)

	loc, ok := compiled.Uniform("uMVP")
	assert.True(t, ok)
	assert.NotEqual(t, gfx.NoLocation, loc)

	loc, ok = compiled.Uniform("uTint")
	assert.True(t, ok, "inactive uniforms are still cached")
	assert.Equal(t, gfx.NoLocation, loc)

	_, ok = compiled.Uniform("uUndeclared")
	assert.False(t, ok)
}

func TestShaderRegistry_NoSamplersSkipsProgramBind(t *testing.T) {
	rec := gfxtest.NewRecorder()
	reg := gfx.NewShaderRegistry(rec)
	require.NoError(t, reg.Register(gfx.VertexColorDescriptor()))

	_, err := reg.GetShader(gfx.VertexColorShader)
	require.NoError(t, err)
	assert.Zero(t, rec.Count("UseProgram"))
	assert.Zero(t, rec.Count("Uniform1i"))
}

func TestShaderRegistry_ReleasesStagesAfterLink(t *testing.T) {
	rec := gfxtest.NewRecorder()
	reg := gfx.NewShaderRegistry(rec)
	require.NoError(t, reg.Register(texturedDescriptor()))

	_, err := reg.GetShader("textured")
	require.NoError(t, err)

	shaders, programs, _ := rec.Live()
	assert.Zero(t, shaders)
	assert.Equal(t, 1, programs)
	assert.Greater(t, slices.Index(rec.Names(), "DeleteShader"), slices.Index(rec.Names(), "LinkProgram"))
}

func TestShaderRegistry_CompileFailure(t *testing.T) {
	tests := []struct {
		name     string
		stage    gfx.ShaderStage
		compiles int
	}{
		{name: "vertex", stage: gfx.VertexStage, compiles: 1},
		{name: "fragment", stage: gfx.FragmentStage, compiles: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := gfxtest.NewRecorder()
			rec.FailStage[tt.stage] = "0:1: syntax error"
			reg := gfx.NewShaderRegistry(rec)
			require.NoError(t, reg.Register(texturedDescriptor()))

			compiled, err := reg.GetShader("textured")
			assert.Nil(t, compiled)

			var compileErr *gfx.ShaderCompileError
			require.ErrorAs(t, err, &compileErr)
			assert.Equal(t, "textured", compileErr.Name)
			assert.Equal(t, tt.stage, compileErr.Stage)
			assert.Equal(t, "0:1: syntax error", compileErr.Log)

			assert.Equal(t, tt.compiles, rec.Count("CompileShader"))
			assert.Zero(t, rec.Count("CreateProgram"))
			assert.Zero(t, rec.Count("LinkProgram"))
			shaders, programs, _ := rec.Live()
			assert.Zero(t, shaders, "failed stages must be released")
			assert.Zero(t, programs)
		})
	}
}

func TestShaderRegistry_LinkFailure(t *testing.T) {
	rec := gfxtest.NewRecorder()
	rec.FailLink = "varying mismatch"
	reg := gfx.NewShaderRegistry(rec)
	require.NoError(t, reg.Register(texturedDescriptor()))

	_, err := reg.GetShader("textured")
	var linkErr *gfx.ShaderLinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Equal(t, "textured", linkErr.Name)
	assert.Equal(t, "varying mismatch", linkErr.Log)

	shaders, programs, _ := rec.Live()
	assert.Zero(t, shaders)
	assert.Zero(t, programs)
	assert.Zero(t, rec.Count("GetUniformLocation"))
}

func TestShaderRegistry_RetriesAfterFailure(t *testing.T) {
	rec := gfxtest.NewRecorder()
	rec.FailLink = "boom"
	reg := gfx.NewShaderRegistry(rec)
	require.NoError(t, reg.Register(texturedDescriptor()))

	_, err := reg.GetShader("textured")
	require.Error(t, err)

	rec.FailLink = ""
	compiled, err := reg.GetShader("textured")
	require.NoError(t, err)
	assert.NotZero(t, compiled.Program)
	assert.Equal(t, 2, rec.Count("LinkProgram"))
}

func TestShaderRegistry_DestroyDeletesOwnPrograms(t *testing.T) {
	rec := gfxtest.NewRecorder()
	reg := gfx.NewShaderRegistry(rec)
	require.NoError(t, reg.Register(gfx.VertexColorDescriptor()))
	require.NoError(t, reg.Register(gfx.FlatColorDescriptor()))
	require.NoError(t, reg.Register(texturedDescriptor()))

	a, err := reg.GetShader(gfx.VertexColorShader)
	require.NoError(t, err)
	b, err := reg.GetShader("textured")
	require.NoError(t, err)
	rec.Reset()

	reg.Destroy()

	deletes := rec.Filter("DeleteProgram")
	require.Len(t, deletes, 2, "only compiled entries own a program")
	assert.ElementsMatch(t, []any{a.Program, b.Program}, []any{deletes[0].Args[0], deletes[1].Args[0]})
	_, programs, _ := rec.Live()
	assert.Zero(t, programs)

	_, err = reg.GetShader(gfx.VertexColorShader)
	assert.ErrorIs(t, err, gfx.ErrRegistryDestroyed)
	assert.ErrorIs(t, reg.Register(texturedDescriptor()), gfx.ErrRegistryDestroyed)
	assert.False(t, reg.Registered(gfx.VertexColorShader))

	rec.Reset()
	reg.Destroy()
	assert.Empty(t, rec.Calls)
}

func TestShaderRegistry_ErrorMessages(t *testing.T) {
	err := error(&gfx.ShaderCompileError{Name: "fan", Stage: gfx.FragmentStage, Log: "bad"})
	assert.Equal(t, `gfx: compile fragment stage of "fan": bad`, err.Error())
	assert.False(t, errors.Is(err, gfx.ErrRegistryDestroyed))
}

func lastIndex(names []string, name string) int {
	for i := len(names) - 1; i >= 0; i-- {
		if names[i] == name {
			return i
		}
	}
	return -1
}
