package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ValidationError represents a single validation failure with the path to
// the offending field and a human-readable message.
type ValidationError struct {
	Path    string // dot-separated path (e.g. "list_of_submodels[0].name")
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationErrors collects multiple validation failures.
type ValidationErrors []*ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("settings validation failed with %d error(s):\n  - %s",
		len(ve), strings.Join(msgs, "\n  - "))
}

// ErrorOrNil returns the collection as an error, or nil when empty.
func (ve ValidationErrors) ErrorOrNil() error {
	if len(ve) == 0 {
		return nil
	}
	return ve
}

var nameRe = regexp.MustCompile(`^[a-zA-Z0-9_]([a-zA-Z0-9_.\-]*[a-zA-Z0-9_])?$`)

// NormalizeName trims a user-supplied item name and verifies it contains
// only safe characters. Named items in settings lists double as lookup keys,
// so the character set is restricted.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name must not be empty")
	}
	if !nameRe.MatchString(name) {
		return "", fmt.Errorf("name %q contains invalid characters", name)
	}
	return name, nil
}

// EnsureUniqueNames verifies no name appears twice. Used for dict-like
// submodel lists where names act as keys.
func EnsureUniqueNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return fmt.Errorf("duplicate name %q", n)
		}
		seen[n] = true
	}
	return nil
}

// CheckBounds verifies a numeric value against the field's declared bounds.
func (f *FieldDef) CheckBounds(v float64) error {
	if f.GreaterThan != nil && v <= *f.GreaterThan {
		return fmt.Errorf("value %v must be greater than %v", v, *f.GreaterThan)
	}
	if f.LessOrEqual != nil && v > *f.LessOrEqual {
		return fmt.Errorf("value %v must be at most %v", v, *f.LessOrEqual)
	}
	return nil
}

// ValidateValue checks a decoded settings document against the model:
// numeric bounds, required objectList items, and unique item names. Unknown
// keys are ignored since the host may store values for older model revisions.
func (m *ModelDef) ValidateValue(value map[string]any) ValidationErrors {
	var errs ValidationErrors
	m.validateValue("", value, &errs)
	return errs
}

func (m *ModelDef) validateValue(path string, value map[string]any, errs *ValidationErrors) {
	for i := range m.Fields {
		f := &m.Fields[i]
		fpath := f.Key
		if path != "" {
			fpath = path + "." + f.Key
		}
		raw, ok := value[f.Key]
		if !ok || raw == nil {
			continue
		}

		switch f.Type {
		case FieldTypeInteger, FieldTypeNumber:
			if num, ok := asFloat(raw); ok {
				if err := f.CheckBounds(num); err != nil {
					*errs = append(*errs, &ValidationError{Path: fpath, Message: err.Error()})
				}
			}
		case FieldTypeObject:
			if nested, ok := raw.(map[string]any); ok && f.Model != nil {
				f.Model.validateValue(fpath, nested, errs)
			}
		case FieldTypeObjectList:
			items, ok := raw.([]any)
			if !ok {
				continue
			}
			names := make([]string, 0, len(items))
			for j, item := range items {
				obj, ok := item.(map[string]any)
				if !ok {
					continue
				}
				if f.Model != nil {
					f.Model.validateValue(fmt.Sprintf("%s[%d]", fpath, j), obj, errs)
				}
				if name, ok := obj["name"].(string); ok {
					normalized, err := NormalizeName(name)
					if err != nil {
						*errs = append(*errs, &ValidationError{
							Path:    fmt.Sprintf("%s[%d].name", fpath, j),
							Message: err.Error(),
						})
						continue
					}
					names = append(names, normalized)
				}
			}
			if err := EnsureUniqueNames(names); err != nil {
				*errs = append(*errs, &ValidationError{Path: fpath, Message: err.Error()})
			}
			for _, required := range f.RequiredItems {
				found := false
				for _, n := range names {
					if n == required {
						found = true
						break
					}
				}
				if !found {
					*errs = append(*errs, &ValidationError{
						Path:    fpath,
						Message: fmt.Sprintf("required item %q is missing", required),
					})
				}
			}
		}
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
