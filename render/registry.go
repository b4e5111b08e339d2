// Package render turns slide specifications into slides. A Registry maps
// each slide kind to its renderer; an Engine walks a deck through the
// registry, isolating failures per slide.
package render

import (
	"errors"
	"fmt"
	"sort"

	"github.com/VantageDataChat/brandeck/spec"
)

// ErrUnknownSlideType is matched by *UnknownSlideTypeError.
var ErrUnknownSlideType = errors.New("unknown slide type")

// UnknownSlideTypeError names a kind with no registered renderer.
type UnknownSlideTypeError struct {
	Kind spec.Kind
}

func (e *UnknownSlideTypeError) Error() string {
	return fmt.Sprintf("unknown slide type %q", string(e.Kind))
}

func (e *UnknownSlideTypeError) Is(target error) bool {
	return target == ErrUnknownSlideType
}

// RenderFunc draws one slide through the frame's builder.
type RenderFunc func(*Frame, spec.Slide) error

// Registry maps slide kinds to renderers.
type Registry struct {
	renderers map[spec.Kind]RenderFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[spec.Kind]RenderFunc)}
}

// DefaultRegistry returns a registry holding a renderer for every kind in
// spec.Kinds.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	register(r, renderCover)
	register(r, renderSectionDivider)
	register(r, renderAgenda)
	register(r, renderContent)
	register(r, renderTwoColumn)
	register(r, renderQuote)
	register(r, renderMetrics)
	register(r, renderTeam)
	register(r, renderCaseStudy)
	register(r, renderClosing)
	register(r, renderBlank)
	return r
}

// Register binds kind to fn, replacing any previous renderer.
func (r *Registry) Register(kind spec.Kind, fn RenderFunc) {
	r.renderers[kind] = fn
}

// register adapts a renderer for one concrete slide type.
func register[T spec.Slide](r *Registry, fn func(*Frame, T) error) {
	var zero T
	r.Register(zero.Kind(), func(f *Frame, s spec.Slide) error {
		t, ok := s.(T)
		if !ok {
			return fmt.Errorf("renderer for %s got %T", zero.Kind(), s)
		}
		return fn(f, t)
	})
}

// Lookup returns the renderer for kind.
func (r *Registry) Lookup(kind spec.Kind) (RenderFunc, error) {
	fn, ok := r.renderers[kind]
	if !ok {
		return nil, &UnknownSlideTypeError{Kind: kind}
	}
	return fn, nil
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []spec.Kind {
	kinds := make([]spec.Kind, 0, len(r.renderers))
	for k := range r.renderers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
