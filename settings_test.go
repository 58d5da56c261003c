package exampleaddon

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/GoCodeAlone/prodtrack-example-addon/host"
	"github.com/GoCodeAlone/prodtrack-example-addon/schema"
)

func TestSettingsModelIsValid(t *testing.T) {
	if err := SettingsModel().Validate(); err != nil {
		t.Fatalf("settings model invalid: %v", err)
	}
	if err := SiteSettingsModel().Validate(); err != nil {
		t.Fatalf("site settings model invalid: %v", err)
	}
}

func TestDecodeExampleSettingsDefaults(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage("null")} {
		s, err := DecodeExampleSettings(raw)
		if err != nil {
			t.Fatalf("DecodeExampleSettings(%q): %v", raw, err)
		}
		if s.SimpleString != "default value" {
			t.Errorf("SimpleString = %q", s.SimpleString)
		}
		if s.FolderType != "Asset" {
			t.Errorf("FolderType = %q", s.FolderType)
		}
		if s.GroupedSettings.FavoriteColor != "red" {
			t.Errorf("FavoriteColor = %q", s.GroupedSettings.FavoriteColor)
		}
	}
}

func TestDecodeExampleSettingsOverlay(t *testing.T) {
	raw := json.RawMessage(`{"folder_type": "Shot", "number": 7}`)
	s, err := DecodeExampleSettings(raw)
	if err != nil {
		t.Fatalf("DecodeExampleSettings: %v", err)
	}
	if s.FolderType != "Shot" {
		t.Errorf("FolderType = %q, want Shot", s.FolderType)
	}
	if s.Number != 7 {
		t.Errorf("Number = %d, want 7", s.Number)
	}
	// Untouched fields keep their defaults.
	if s.AnatomyPreset != "__primary__" {
		t.Errorf("AnatomyPreset = %q", s.AnatomyPreset)
	}
}

func TestDecodeExampleSettingsErrors(t *testing.T) {
	if _, err := DecodeExampleSettings(json.RawMessage(`{not json`)); err == nil {
		t.Error("malformed JSON accepted")
	}
	if _, err := DecodeExampleSettings(json.RawMessage(`{"number": 999}`)); err == nil {
		t.Error("out-of-bounds number accepted")
	}
	if _, err := DecodeExampleSettings(json.RawMessage(`{"number": 0}`)); err == nil {
		t.Error("zero number accepted despite greater-than bound")
	}
}

func TestSettingsValidateNormalizesListNames(t *testing.T) {
	s := DefaultExampleSettings()
	s.ListOfSubmodels = []CompactListSubmodel{
		{Name: "  spaced  ", IntValue: 1},
		{Name: "other", IntValue: 2},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if s.ListOfSubmodels[0].Name != "spaced" {
		t.Errorf("name not normalized: %q", s.ListOfSubmodels[0].Name)
	}

	s.DictLikeList = []DictLikeSubmodel{{Name: "dup"}, {Name: "dup"}}
	if err := s.Validate(); err == nil {
		t.Error("duplicate dict-like names accepted")
	}
}

func TestRegisteredResolvers(t *testing.T) {
	_, h, app, _ := newTestAddon(t)
	seedProject(h)

	var registry *schema.Registry
	if err := app.GetService(host.ServiceSchemas, &registry); err != nil {
		t.Fatalf("GetService: %v", err)
	}

	ctx := context.Background()

	t.Run("folder types from store", func(t *testing.T) {
		rendered, err := registry.Resolve(ctx, AddonName, schema.KindSettings, schema.ResolveContext{
			Project: "demo",
			Variant: host.VariantProduction,
		})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		opts := resolvedEnum(t, rendered, "folder_type")
		if got := schema.OptionValues(opts); len(got) != 2 || got[0] != "Asset" || got[1] != "Shot" {
			t.Errorf("folder types = %v", got)
		}
	})

	t.Run("folder types fallback without project", func(t *testing.T) {
		rendered, err := registry.Resolve(ctx, AddonName, schema.KindSettings, schema.ResolveContext{
			Variant: host.VariantProduction,
		})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		opts := resolvedEnum(t, rendered, "folder_type")
		if got := schema.OptionValues(opts); len(got) != len(defaultFolderTypes) {
			t.Errorf("fallback folder types = %v", got)
		}
	})

	t.Run("labels", func(t *testing.T) {
		rendered, err := registry.Resolve(ctx, AddonName, schema.KindSettings, schema.ResolveContext{})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		opts := resolvedEnum(t, rendered, "enum_with_labels")
		if len(opts) != 10 {
			t.Fatalf("got %d labelled options", len(opts))
		}
		if opts[3].Value != "value3" || opts[3].Label != "Label 3" {
			t.Errorf("option 3 = %+v", opts[3])
		}
	})

	t.Run("recursive list", func(t *testing.T) {
		rendered, err := registry.Resolve(ctx, AddonName, schema.KindSettings, schema.ResolveContext{
			Settings: json.RawMessage(`{"list_of_strings": ["alpha", "beta"]}`),
		})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		opts := resolvedEnum(t, rendered, "recursive_enum")
		if got := schema.OptionValues(opts); len(got) != 2 || got[0] != "alpha" {
			t.Errorf("recursive enum = %v", got)
		}
	})
}

func resolvedEnum(t *testing.T, m *schema.RenderedModel, key string) []schema.Option {
	t.Helper()
	for _, f := range m.Fields {
		if f.Key == key {
			return f.ResolvedEnum
		}
	}
	t.Fatalf("field %q not in rendered model", key)
	return nil
}

func TestDecodeExampleSiteSettings(t *testing.T) {
	s, err := DecodeExampleSiteSettings(nil)
	if err != nil {
		t.Fatalf("DecodeExampleSiteSettings: %v", err)
	}
	if s.ChairOrientation != "north" || s.FloorMaterial != "wood" {
		t.Errorf("defaults = %+v", s)
	}

	s, err = DecodeExampleSiteSettings(json.RawMessage(`{"chair_orientation": "west"}`))
	if err != nil {
		t.Fatalf("DecodeExampleSiteSettings: %v", err)
	}
	if s.ChairOrientation != "west" {
		t.Errorf("ChairOrientation = %q", s.ChairOrientation)
	}
	if s.FloorMaterial != "wood" {
		t.Errorf("FloorMaterial lost its default: %q", s.FloorMaterial)
	}
}
