package renderer

import "github.com/kjkrol/gokdraw/pkg/gfx"

// handleTable maps small integer handles to backend objects that have no
// integer identity of their own (WebGL objects are JS references). Handle 0
// is never issued.
type handleTable[T any] struct {
	next    uint32
	objects map[uint32]T
}

func newHandleTable[T any]() *handleTable[T] {
	return &handleTable[T]{objects: make(map[uint32]T)}
}

func (t *handleTable[T]) add(obj T) uint32 {
	t.next++
	t.objects[t.next] = obj
	return t.next
}

func (t *handleTable[T]) get(h uint32) (T, bool) {
	obj, ok := t.objects[h]
	return obj, ok
}

// remove drops h and returns the object it named.
func (t *handleTable[T]) remove(h uint32) (T, bool) {
	obj, ok := t.objects[h]
	if ok {
		delete(t.objects, h)
	}
	return obj, ok
}

func (t *handleTable[T]) len() int {
	return len(t.objects)
}

// uniformTable hands out uniform locations for backend location objects.
// Locations are indices, so they start at 0 like GL locations do.
type uniformTable[T any] struct {
	objects []T
}

func newUniformTable[T any]() *uniformTable[T] {
	return &uniformTable[T]{}
}

func (t *uniformTable[T]) add(obj T) gfx.UniformLocation {
	t.objects = append(t.objects, obj)
	return gfx.UniformLocation(len(t.objects) - 1)
}

func (t *uniformTable[T]) get(loc gfx.UniformLocation) (T, bool) {
	var zero T
	if loc < 0 || int(loc) >= len(t.objects) {
		return zero, false
	}
	return t.objects[loc], true
}
