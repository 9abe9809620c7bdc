package renderer

import (
	"fmt"

	"github.com/kjkrol/gokdraw/pkg/gfx"
)

// Attach wraps native in a gfx.Context, builds the renderer and initializes
// it. The returned release destroys the renderer before the context.
func Attach(native any, factory gfx.RendererFactory) (gfx.Renderer, func(), error) {
	ctx, releaseCtx, err := NewContext(native)
	if err != nil {
		return nil, nil, err
	}
	r := factory(ctx)
	if err := r.Init(); err != nil {
		r.Destroy()
		releaseCtx()
		return nil, nil, fmt.Errorf("init renderer: %w", err)
	}
	release := func() {
		r.Destroy()
		releaseCtx()
	}
	return r, release, nil
}
