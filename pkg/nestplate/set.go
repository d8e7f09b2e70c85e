package nestplate

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Set is a concurrency-safe collection of templates indexed by name.
//
// Example:
//
//	set := nestplate.NewSet()
//	set.Register("greeting", nestplate.MustNew("Hello {:name:user}", nil))
//	msg, err := set.Render("greeting", map[string]any{"user": "ops"})
//	// msg: "Hello ops"
type Set struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{
		templates: make(map[string]*Template),
	}
}

// Register adds or replaces the template under name.
func (s *Set) Register(name string, t *Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[name] = t
}

// Add builds a template from message and registers it under name.
func (s *Set) Add(name, message string, values map[string]any, opts ...Option) error {
	t, err := New(message, values, opts...)
	if err != nil {
		return fmt.Errorf("template %q: %w", name, err)
	}
	s.Register(name, t)
	return nil
}

// Get returns the template registered under name and whether it exists.
func (s *Set) Get(name string) (*Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[name]
	return t, ok
}

// Has returns true if a template is registered under name.
func (s *Set) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.templates[name]
	return ok
}

// Delete removes the template registered under name.
func (s *Set) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.templates, name)
}

// Names returns the registered names in sorted order.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.templates))
}

// Len returns the number of registered templates.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.templates)
}

// Range calls fn for each template over a snapshot of the set, so fn may
// Register or Delete. Iteration stops when fn returns false.
func (s *Set) Range(fn func(name string, t *Template) bool) {
	s.mu.RLock()
	snapshot := maps.Clone(s.templates)
	s.mu.RUnlock()

	for name, t := range snapshot {
		if !fn(name, t) {
			return
		}
	}
}

// Render resolves the template registered under name.
// Returns ErrTemplateNotFound if there is none.
func (s *Set) Render(name string, perCall map[string]any) (string, error) {
	return s.RenderContext(context.Background(), name, perCall)
}

// RenderContext is Render with a context for tracing and metrics.
func (s *Set) RenderContext(ctx context.Context, name string, perCall map[string]any) (string, error) {
	t, ok := s.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return t.ResolveContext(ctx, perCall), nil
}
