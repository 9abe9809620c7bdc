//go:build !js

package platform

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/kjkrol/gokdraw/internal/renderer"
	"github.com/kjkrol/gokdraw/pkg/gfx"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

// Run opens a window with an OpenGL 3.3 core context, attaches the renderer
// built by factory and draws frames until the window is closed, ctx is
// cancelled or a frame fails. Run must be called from the main goroutine.
func Run(ctx context.Context, conf WindowConfig, factory gfx.RendererFactory) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)

	window, err := glfw.CreateWindow(conf.Width, conf.Height, conf.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	if conf.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	r, release, err := renderer.Attach(nil, factory)
	if err != nil {
		return err
	}
	defer release()

	loop := newFrameLoop(r, window.GetFramebufferSize)
	frame := func(now time.Time) (bool, error) {
		if window.ShouldClose() {
			return false, nil
		}
		if err := loop.tick(now); err != nil {
			return false, err
		}
		window.SwapBuffers()
		glfw.PollEvents()
		return true, nil
	}

	gfx.Logger().Debug("frame loop started", "title", conf.Title, "vsync", conf.VSync)
	defer func() { gfx.Logger().Debug("frame loop stopped", "frames", loop.frames) }()
	if conf.VSync {
		return runContinuous(ctx, frame)
	}
	return runTicker(ctx, FallbackFrameInterval, frame)
}
