package gfx

import (
	"errors"
	"fmt"
)

var (
	ErrRegistryDestroyed = errors.New("gfx: shader registry destroyed")
	ErrSurfaceNotReady   = errors.New("gfx: surface not initialized")
	ErrInvalidDescriptor = errors.New("gfx: invalid shader descriptor")
)

type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("gfx: shader %q already registered", e.Name)
}

type UnknownShaderError struct {
	Name string
}

func (e *UnknownShaderError) Error() string {
	return fmt.Sprintf("gfx: unknown shader %q", e.Name)
}

// ShaderCompileError carries the compiler diagnostic for one stage.
type ShaderCompileError struct {
	Name  string
	Stage ShaderStage
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("gfx: compile %s stage of %q: %s", e.Stage, e.Name, e.Log)
}

// ShaderLinkError carries the linker diagnostic.
type ShaderLinkError struct {
	Name string
	Log  string
}

func (e *ShaderLinkError) Error() string {
	return fmt.Sprintf("gfx: link %q: %s", e.Name, e.Log)
}
