package schema

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Kind distinguishes the settings models an addon may register.
type Kind string

const (
	KindSettings     Kind = "settings"
	KindSiteSettings Kind = "site"
)

// Registry holds the settings models and enum resolvers of all loaded
// addons, keyed by addon name and kind. The host's settings UI reads
// rendered models from here.
type Registry struct {
	mu        sync.RWMutex
	models    map[string]*ModelDef
	resolvers map[string]EnumResolver
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		models:    make(map[string]*ModelDef),
		resolvers: make(map[string]EnumResolver),
	}
}

func modelKey(addon string, kind Kind) string {
	return addon + "/" + string(kind)
}

// RegisterResolver adds a named enum resolver. Resolver names are namespaced
// by convention ("<addon>.<name>") and must be unique.
func (r *Registry) RegisterResolver(name string, fn EnumResolver) error {
	if name == "" {
		return fmt.Errorf("resolver name is required")
	}
	if fn == nil {
		return fmt.Errorf("resolver %q is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.resolvers[name]; exists {
		return fmt.Errorf("resolver %q already registered", name)
	}
	r.resolvers[name] = fn
	return nil
}

// RegisterModel validates and stores a settings model for an addon. Every
// resolver the model references must already be registered.
func (r *Registry) RegisterModel(addon string, kind Kind, m *ModelDef) error {
	if addon == "" {
		return fmt.Errorf("addon name is required")
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("model for %s/%s: %w", addon, kind, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	key := modelKey(addon, kind)
	if _, exists := r.models[key]; exists {
		return fmt.Errorf("model %s already registered", key)
	}
	for _, name := range m.ResolverNames() {
		if _, ok := r.resolvers[name]; !ok {
			return fmt.Errorf("model %s references unknown resolver %q", key, name)
		}
	}
	r.models[key] = m
	return nil
}

// Model returns the registered model for an addon and kind.
func (r *Registry) Model(addon string, kind Kind) (*ModelDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[modelKey(addon, kind)]
	return m, ok
}

// Addons returns the sorted names of addons with at least one model.
func (r *Registry) Addons() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := make(map[string]bool)
	for key := range r.models {
		for i := range key {
			if key[i] == '/' {
				set[key[:i]] = true
				break
			}
		}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RenderedField is a field with dynamic enum choices materialized, ready for
// the UI renderer. Scope shadows the definition's scope and is always
// emitted: a rendered empty list means hidden everywhere, which the
// omitempty on FieldDef.Scope would otherwise make indistinguishable from
// an undeclared scope.
type RenderedField struct {
	FieldDef
	Scope        []string       `json:"scope"`
	ResolvedEnum []Option       `json:"resolvedEnum,omitempty"`
	NestedModel  *RenderedModel `json:"nestedModel,omitempty"`
}

// RenderedModel is a fully resolved model document.
type RenderedModel struct {
	Name        string          `json:"name"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	IsGroup     bool            `json:"isGroup,omitempty"`
	Layout      string          `json:"layout,omitempty"`
	Fields      []RenderedField `json:"fields"`
}

// Resolve renders the model for an addon/kind with every enum resolver
// evaluated against the given context. A failing resolver degrades to an
// empty choice list; callers needing strict behaviour use ResolveStrict.
func (r *Registry) Resolve(ctx context.Context, addon string, kind Kind, rc ResolveContext) (*RenderedModel, error) {
	return r.resolve(ctx, addon, kind, rc, false)
}

// ResolveStrict renders the model, failing on the first resolver error.
func (r *Registry) ResolveStrict(ctx context.Context, addon string, kind Kind, rc ResolveContext) (*RenderedModel, error) {
	return r.resolve(ctx, addon, kind, rc, true)
}

func (r *Registry) resolve(ctx context.Context, addon string, kind Kind, rc ResolveContext, strict bool) (*RenderedModel, error) {
	m, ok := r.Model(addon, kind)
	if !ok {
		return nil, fmt.Errorf("no %s model registered for addon %q", kind, addon)
	}
	r.mu.RLock()
	resolvers := make(map[string]EnumResolver, len(r.resolvers))
	for name, fn := range r.resolvers {
		resolvers[name] = fn
	}
	r.mu.RUnlock()
	return renderModel(ctx, m, rc, resolvers, strict)
}

func renderModel(ctx context.Context, m *ModelDef, rc ResolveContext, resolvers map[string]EnumResolver, strict bool) (*RenderedModel, error) {
	out := &RenderedModel{
		Name:        m.Name,
		Title:       m.Title,
		Description: m.Description,
		IsGroup:     m.IsGroup,
		Layout:      m.Layout,
		Fields:      make([]RenderedField, 0, len(m.Fields)),
	}
	for i := range m.Fields {
		f := m.Fields[i]
		rf := RenderedField{FieldDef: f}
		rf.Scope = f.EffectiveScope()

		switch {
		case len(f.Enum) > 0:
			rf.ResolvedEnum = f.Enum
		case f.EnumResolver != "":
			fn := resolvers[f.EnumResolver]
			opts, err := fn(ctx, rc)
			if err != nil {
				if strict {
					return nil, fmt.Errorf("field %s.%s: resolver %q: %w", m.Name, f.Key, f.EnumResolver, err)
				}
				opts = nil
			}
			rf.ResolvedEnum = opts
		}

		if f.Model != nil {
			nested, err := renderModel(ctx, f.Model, rc, resolvers, strict)
			if err != nil {
				return nil, err
			}
			rf.NestedModel = nested
			rf.Model = nil
		}
		out.Fields = append(out.Fields, rf)
	}
	return out, nil
}
