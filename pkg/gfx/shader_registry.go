package gfx

import (
	"fmt"
	"slices"
)

// ShaderDescriptor is the source side of a shader program. The position of
// a name in Attributes is its binding index; the position of a name in
// Samplers is the texture unit it is bound to.
type ShaderDescriptor struct {
	Name           string
	VertexSource   string
	FragmentSource string
	Attributes     []string
	Samplers       []string
	Uniforms       []string
}

type samplerBinding struct {
	location UniformLocation
	unit     int32
}

// CompiledShader is a linked program with its resolved locations.
type CompiledShader struct {
	Program Program

	attributes map[string]uint32
	uniforms   map[string]UniformLocation
	samplers   map[string]samplerBinding
}

func (c *CompiledShader) Uniform(name string) (UniformLocation, bool) {
	loc, ok := c.uniforms[name]
	return loc, ok
}

// Sampler returns the location of a sampler and the texture unit it was
// bound to at link time.
func (c *CompiledShader) Sampler(name string) (UniformLocation, int32, bool) {
	b, ok := c.samplers[name]
	return b.location, b.unit, ok
}

func (c *CompiledShader) AttributeIndex(name string) (uint32, bool) {
	idx, ok := c.attributes[name]
	return idx, ok
}

type shaderState int

const (
	shaderRegistered shaderState = iota
	shaderCompiled
	shaderDestroyed
)

type shaderEntry struct {
	desc     ShaderDescriptor
	state    shaderState
	compiled *CompiledShader
}

// ShaderRegistry owns shader programs from registration to teardown.
// Programs are compiled on first use and cached until Destroy.
type ShaderRegistry struct {
	ctx       Context
	entries   map[string]*shaderEntry
	order     []string
	destroyed bool
}

func NewShaderRegistry(ctx Context) *ShaderRegistry {
	return &ShaderRegistry{
		ctx:     ctx,
		entries: make(map[string]*shaderEntry),
	}
}

// Register stores desc under desc.Name. It does not touch the GPU.
func (r *ShaderRegistry) Register(desc ShaderDescriptor) error {
	if r.destroyed {
		return ErrRegistryDestroyed
	}
	if desc.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidDescriptor)
	}
	if _, ok := r.entries[desc.Name]; ok {
		return &DuplicateNameError{Name: desc.Name}
	}
	desc.Attributes = slices.Clone(desc.Attributes)
	desc.Samplers = slices.Clone(desc.Samplers)
	desc.Uniforms = slices.Clone(desc.Uniforms)
	r.entries[desc.Name] = &shaderEntry{desc: desc}
	r.order = append(r.order, desc.Name)
	return nil
}

func (r *ShaderRegistry) Registered(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// GetShader returns the compiled program for name, compiling and linking it
// on the first successful call. A failed build leaves the entry registered,
// so a later call builds again.
func (r *ShaderRegistry) GetShader(name string) (*CompiledShader, error) {
	if r.destroyed {
		return nil, ErrRegistryDestroyed
	}
	entry, ok := r.entries[name]
	if !ok {
		return nil, &UnknownShaderError{Name: name}
	}
	if entry.state == shaderCompiled {
		return entry.compiled, nil
	}

	compiled, err := r.build(entry.desc)
	if err != nil {
		Logger().Warn("shader build failed", "shader", name, "err", err)
		return nil, err
	}
	entry.compiled = compiled
	entry.state = shaderCompiled
	Logger().Debug("shader compiled", "shader", name, "program", compiled.Program,
		"uniforms", len(compiled.uniforms), "samplers", len(compiled.samplers))
	return compiled, nil
}

// Destroy deletes every compiled program and drops all cached locations.
// The registry cannot be used afterwards.
func (r *ShaderRegistry) Destroy() {
	if r.destroyed {
		return
	}
	for _, name := range r.order {
		entry := r.entries[name]
		if entry.compiled != nil && entry.compiled.Program != 0 {
			r.ctx.DeleteProgram(entry.compiled.Program)
			Logger().Debug("shader program deleted", "shader", name, "program", entry.compiled.Program)
		}
		entry.compiled = nil
		entry.desc.Attributes = nil
		entry.desc.Samplers = nil
		entry.desc.Uniforms = nil
		entry.state = shaderDestroyed
	}
	r.entries = nil
	r.order = nil
	r.destroyed = true
}

func (r *ShaderRegistry) build(desc ShaderDescriptor) (*CompiledShader, error) {
	vertex, err := r.compileStage(desc.Name, VertexStage, desc.VertexSource)
	if err != nil {
		return nil, err
	}
	fragment, err := r.compileStage(desc.Name, FragmentStage, desc.FragmentSource)
	if err != nil {
		r.ctx.DeleteShader(vertex)
		return nil, err
	}

	program := r.ctx.CreateProgram()
	r.ctx.AttachShader(program, vertex)
	r.ctx.AttachShader(program, fragment)

	attributes := make(map[string]uint32, len(desc.Attributes))
	for i, attr := range desc.Attributes {
		r.ctx.BindAttribLocation(program, uint32(i), attr)
		attributes[attr] = uint32(i)
	}

	r.ctx.LinkProgram(program)
	if !r.ctx.ProgramLinked(program) {
		log := r.ctx.ProgramInfoLog(program)
		r.ctx.DeleteProgram(program)
		r.ctx.DeleteShader(vertex)
		r.ctx.DeleteShader(fragment)
		return nil, &ShaderLinkError{Name: desc.Name, Log: log}
	}

	r.ctx.DeleteShader(vertex)
	r.ctx.DeleteShader(fragment)

	compiled := &CompiledShader{
		Program:    program,
		attributes: attributes,
		uniforms:   make(map[string]UniformLocation, len(desc.Uniforms)),
		samplers:   make(map[string]samplerBinding, len(desc.Samplers)),
	}
	for _, name := range desc.Uniforms {
		compiled.uniforms[name] = r.ctx.GetUniformLocation(program, name)
	}
	if len(desc.Samplers) > 0 {
		// Uniform1i applies to the bound program.
		r.ctx.UseProgram(program)
		for i, name := range desc.Samplers {
			loc := r.ctx.GetUniformLocation(program, name)
			r.ctx.Uniform1i(loc, int32(i))
			compiled.samplers[name] = samplerBinding{location: loc, unit: int32(i)}
		}
	}
	return compiled, nil
}

func (r *ShaderRegistry) compileStage(name string, stage ShaderStage, source string) (Shader, error) {
	shader := r.ctx.CreateShader(stage)
	r.ctx.ShaderSource(shader, source)
	r.ctx.CompileShader(shader)
	if !r.ctx.ShaderCompiled(shader) {
		log := r.ctx.ShaderInfoLog(shader)
		r.ctx.DeleteShader(shader)
		return 0, &ShaderCompileError{Name: name, Stage: stage, Log: log}
	}
	return shader, nil
}
