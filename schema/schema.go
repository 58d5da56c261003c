// Package schema implements the declarative settings-schema model addons
// register with the host. A ModelDef describes configurable fields, their
// defaults, and enum choices; the host's settings UI renders the resolved
// form, so nothing here draws anything; it is configuration metadata.
package schema

import (
	"fmt"
	"sort"
)

// FieldType represents the type of a settings field.
type FieldType string

const (
	FieldTypeString      FieldType = "string"
	FieldTypeText        FieldType = "text"
	FieldTypeInteger     FieldType = "integer"
	FieldTypeNumber      FieldType = "number"
	FieldTypeBool        FieldType = "boolean"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiselect FieldType = "multiselect"
	FieldTypeColor       FieldType = "color"
	FieldTypeList        FieldType = "list"
	FieldTypeObject      FieldType = "object"
	FieldTypeObjectList  FieldType = "objectList"
)

// Settings scopes a field may be shown in. A nil scope list means the
// default (studio and project); an empty, non-nil list hides the field in
// every context.
const (
	ScopeStudio  = "studio"
	ScopeProject = "project"
	ScopeSite    = "site"
)

// DefaultScope is applied when a field declares no scope.
var DefaultScope = []string{ScopeStudio, ScopeProject}

// Layouts for object fields.
const (
	LayoutCompact  = "compact"
	LayoutExpanded = "expanded"
)

// Option is one enum choice: a stored value plus the label the UI shows.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldDef describes a single settings field.
type FieldDef struct {
	Key         string    `json:"key"`
	Title       string    `json:"title,omitempty"`
	Type        FieldType `json:"type"`
	Description string    `json:"description,omitempty"`
	Default     any       `json:"default,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Widget      string    `json:"widget,omitempty"`

	// Section draws a labelled horizontal separator above the field.
	Section string `json:"section,omitempty"`

	// Scope lists the contexts the field is shown in. See DefaultScope.
	Scope []string `json:"scope,omitempty"`

	// Enum holds static choices for select/multiselect fields. EnumResolver
	// names a registered resolver for dynamic choices; at most one of the
	// two may be set.
	Enum         []Option `json:"enum,omitempty"`
	EnumResolver string   `json:"enumResolver,omitempty"`

	// ConditionalEnum marks a select whose value switches which sibling
	// object field the UI shows. Sibling object fields keyed by the enum
	// values act as the conditional models.
	ConditionalEnum bool `json:"conditionalEnum,omitempty"`

	// Numeric bounds for integer/number fields.
	GreaterThan *float64 `json:"gt,omitempty"`
	LessOrEqual *float64 `json:"le,omitempty"`

	// RequiredItems lists item names that must be present in an objectList
	// value.
	RequiredItems []string `json:"requiredItems,omitempty"`

	// Model describes the nested model for object and objectList fields.
	Model *ModelDef `json:"model,omitempty"`
}

// ModelDef describes a settings model: an ordered set of fields, possibly
// nested through object fields.
type ModelDef struct {
	Name        string     `json:"name"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	IsGroup     bool       `json:"isGroup,omitempty"`
	Layout      string     `json:"layout,omitempty"`
	Fields      []FieldDef `json:"fields"`
}

// Field returns the field with the given key, or nil.
func (m *ModelDef) Field(key string) *FieldDef {
	for i := range m.Fields {
		if m.Fields[i].Key == key {
			return &m.Fields[i]
		}
	}
	return nil
}

// Validate checks structural consistency of the model definition: unique
// keys, enum configuration, conditional-enum wiring, and nested models.
func (m *ModelDef) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("model: name is required")
	}
	return m.validateFields(m.Name)
}

func (m *ModelDef) validateFields(path string) error {
	seen := make(map[string]bool, len(m.Fields))
	for i := range m.Fields {
		f := &m.Fields[i]
		fpath := path + "." + f.Key
		if f.Key == "" {
			return fmt.Errorf("%s: field %d has no key", path, i)
		}
		if seen[f.Key] {
			return fmt.Errorf("%s: duplicate field key", fpath)
		}
		seen[f.Key] = true

		if f.Type == "" {
			return fmt.Errorf("%s: field type is required", fpath)
		}
		if len(f.Enum) > 0 && f.EnumResolver != "" {
			return fmt.Errorf("%s: enum and enumResolver are mutually exclusive", fpath)
		}
		switch f.Type {
		case FieldTypeSelect, FieldTypeMultiselect:
			if len(f.Enum) == 0 && f.EnumResolver == "" {
				return fmt.Errorf("%s: select field needs enum options or a resolver", fpath)
			}
		case FieldTypeObject, FieldTypeObjectList:
			if f.Model == nil {
				return fmt.Errorf("%s: object field needs a nested model", fpath)
			}
		}
		if f.ConditionalEnum {
			if f.Type != FieldTypeSelect {
				return fmt.Errorf("%s: conditionalEnum requires a select field", fpath)
			}
			for _, opt := range f.Enum {
				target := m.Field(opt.Value)
				if target == nil || target.Type != FieldTypeObject {
					return fmt.Errorf("%s: conditional value %q has no sibling object field", fpath, opt.Value)
				}
			}
		}
		if f.GreaterThan != nil && f.LessOrEqual != nil && *f.GreaterThan >= *f.LessOrEqual {
			return fmt.Errorf("%s: bound gt=%v must be below le=%v", fpath, *f.GreaterThan, *f.LessOrEqual)
		}
		if f.Model != nil {
			if err := f.Model.validateFields(fpath); err != nil {
				return err
			}
		}
	}
	return nil
}

// EffectiveScope returns the contexts the field is shown in, applying the
// default when none is declared.
func (f *FieldDef) EffectiveScope() []string {
	if f.Scope == nil {
		return DefaultScope
	}
	return f.Scope
}

// ResolverNames returns the sorted set of resolver names the model (and its
// nested models) reference. Registries use this to detect missing resolvers
// at registration time instead of at render time.
func (m *ModelDef) ResolverNames() []string {
	set := make(map[string]bool)
	m.collectResolvers(set)
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (m *ModelDef) collectResolvers(set map[string]bool) {
	for i := range m.Fields {
		f := &m.Fields[i]
		if f.EnumResolver != "" {
			set[f.EnumResolver] = true
		}
		if f.Model != nil {
			f.Model.collectResolvers(set)
		}
	}
}

// Float returns a pointer to v, for bound fields.
func Float(v float64) *float64 { return &v }
