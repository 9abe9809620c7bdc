//go:build js && wasm

package platform

import (
	"context"
	"errors"
	"syscall/js"
	"time"

	"github.com/kjkrol/gokdraw/internal/renderer"
	"github.com/kjkrol/gokdraw/pkg/gfx"
)

var requestFrameNames = []string{
	"requestAnimationFrame",
	"webkitRequestAnimationFrame",
	"mozRequestAnimationFrame",
	"msRequestAnimationFrame",
}

// frameScheduler returns the browser's display-synced frame request, or a
// setTimeout at FallbackFrameInterval when none exists.
func frameScheduler() func(js.Func) {
	win := js.Global()
	for _, name := range requestFrameNames {
		if win.Get(name).Type() == js.TypeFunction {
			return func(cb js.Func) { win.Call(name, cb) }
		}
	}
	gfx.Logger().Warn("requestAnimationFrame unavailable, using timer")
	interval := int(FallbackFrameInterval.Milliseconds())
	return func(cb js.Func) { win.Call("setTimeout", cb, interval) }
}

// Run creates a canvas with a WebGL2 context, attaches the renderer built by
// factory and draws a frame per browser frame until ctx is cancelled or a
// frame fails.
func Run(ctx context.Context, conf WindowConfig, factory gfx.RendererFactory) error {
	doc := js.Global().Get("document")
	doc.Set("title", conf.Title)

	canvas := doc.Call("getElementById", "glcanvas")
	if canvas.IsNull() {
		canvas = doc.Call("createElement", "canvas")
		canvas.Set("id", "glcanvas")
		doc.Get("body").Call("appendChild", canvas)
	}
	canvas.Set("width", conf.Width)
	canvas.Set("height", conf.Height)

	glctx := canvas.Call("getContext", "webgl2")
	if glctx.IsNull() || glctx.IsUndefined() {
		return errors.New("unable to initialize WebGL2, the browser may not support it")
	}

	r, release, err := renderer.Attach(glctx, factory)
	if err != nil {
		return err
	}
	defer release()

	loop := newFrameLoop(r, func() (int, int) {
		return canvas.Get("width").Int(), canvas.Get("height").Int()
	})
	schedule := frameScheduler()
	done := make(chan error, 1)

	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		if ctx.Err() != nil {
			done <- nil
			return nil
		}
		if err := loop.tick(time.Now()); err != nil {
			done <- err
			return nil
		}
		schedule(cb)
		return nil
	})
	defer cb.Release()

	schedule(cb)
	return <-done
}
