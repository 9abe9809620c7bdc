package platform

import "time"

type WindowConfig struct {
	Title  string
	Width  int
	Height int
	// VSync paces frames with buffer swaps; without it a fixed ticker at
	// FallbackFrameInterval is used.
	VSync bool
}

// FallbackFrameInterval paces frames when the host offers no display-synced
// frame timing.
const FallbackFrameInterval = time.Second / 60
