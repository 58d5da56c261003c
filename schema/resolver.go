package schema

import (
	"context"
	"encoding/json"
)

// ResolveContext carries the rendering context enum resolvers may consult.
type ResolveContext struct {
	// Project is empty when rendering studio-scope settings.
	Project string

	// Variant is the settings variant being rendered.
	Variant string

	// Settings holds the current raw settings document for the model being
	// rendered. Resolvers that derive choices from other fields (recursive
	// enums) decode what they need from it.
	Settings json.RawMessage
}

// EnumResolver produces the choices for a dynamic select field. Resolvers
// may hit the database or other services, so they take a context and may
// fail; the renderer degrades a failing resolver to an empty option list
// rather than failing the whole schema.
type EnumResolver func(ctx context.Context, rc ResolveContext) ([]Option, error)

// StaticOptions builds an option list where each label equals its value.
func StaticOptions(values ...string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v, Label: v}
	}
	return opts
}

// OptionValues extracts the stored values from an option list.
func OptionValues(opts []Option) []string {
	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return values
}

// StaticResolver wraps a fixed option list as a resolver.
func StaticResolver(opts []Option) EnumResolver {
	return func(context.Context, ResolveContext) ([]Option, error) {
		return opts, nil
	}
}
