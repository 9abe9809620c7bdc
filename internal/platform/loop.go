package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/kjkrol/gokdraw/pkg/gfx"
)

// frameFunc runs one frame. Returning false ends the loop without error.
type frameFunc func(now time.Time) (bool, error)

type frameLoop struct {
	renderer gfx.Renderer
	size     func() (int, int)
	counter  *gfx.FrameCounter
	frames   uint64
}

func newFrameLoop(r gfx.Renderer, size func() (int, int)) *frameLoop {
	return &frameLoop{
		renderer: r,
		size:     size,
		counter:  gfx.NewFrameCounter(),
	}
}

func (l *frameLoop) tick(now time.Time) error {
	width, height := l.size()
	if err := l.renderer.DrawFrame(width, height); err != nil {
		return fmt.Errorf("frame %d: %w", l.frames, err)
	}
	l.frames++
	l.counter.Tick(now)
	return nil
}

// runContinuous calls frame back to back; pacing comes from the frame itself
// (a vsync'd buffer swap).
func runContinuous(ctx context.Context, frame frameFunc) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			ok, err := frame(time.Now())
			if err != nil || !ok {
				return err
			}
		}
	}
}

// runTicker calls frame once per interval.
func runTicker(ctx context.Context, interval time.Duration, frame frameFunc) error {
	if interval <= 0 {
		interval = FallbackFrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			ok, err := frame(now)
			if err != nil || !ok {
				return err
			}
		}
	}
}
