package gfx

// Renderer is what a frame driver runs: Init once the context is current,
// DrawFrame for every frame with the drawable size in pixels, Destroy before
// the context goes away.
type Renderer interface {
	Init() error
	DrawFrame(width, height int) error
	Destroy()
}

type RendererFactory func(ctx Context) Renderer

// NewSurfaceFactory returns a factory building a Surface with its own shader
// registry. Destroying the renderer releases the buffers, then the programs.
func NewSurfaceFactory(conf SurfaceConfig) RendererFactory {
	return func(ctx Context) Renderer {
		shaders := NewShaderRegistry(ctx)
		return &ownedSurface{
			Surface: NewSurface(ctx, shaders, conf),
			shaders: shaders,
		}
	}
}

type ownedSurface struct {
	*Surface
	shaders *ShaderRegistry
}

func (o *ownedSurface) Destroy() {
	o.Surface.Destroy()
	o.shaders.Destroy()
}
