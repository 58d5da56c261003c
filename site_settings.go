package exampleaddon

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/GoCodeAlone/prodtrack-example-addon/schema"
)

// ExampleSiteSettings is the per-machine settings document. Site settings
// are scoped to one user on one workstation, so they hold local
// preferences rather than studio policy.
type ExampleSiteSettings struct {
	ChairOrientation string `json:"chair_orientation"`
	FloorMaterial    string `json:"floor_material"`
}

// DefaultExampleSiteSettings returns the site settings used before the
// user stores any.
func DefaultExampleSiteSettings() ExampleSiteSettings {
	return ExampleSiteSettings{
		ChairOrientation: "north",
		FloorMaterial:    "wood",
	}
}

// DecodeExampleSiteSettings overlays a stored site settings document on
// the defaults.
func DecodeExampleSiteSettings(raw json.RawMessage) (ExampleSiteSettings, error) {
	s := DefaultExampleSiteSettings()
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return ExampleSiteSettings{}, fmt.Errorf("decoding example site settings: %w", err)
	}
	return s, nil
}

// SiteSettingsModel returns the declarative schema for the per-machine
// settings.
func SiteSettingsModel() *schema.ModelDef {
	return &schema.ModelDef{
		Name:        AddonName,
		Title:       "Example addon site settings",
		Description: "Site settings are workstation-local user preferences.",
		Fields: []schema.FieldDef{
			{Key: "chair_orientation", Title: "Chair orientation", Type: schema.FieldTypeSelect,
				Description: "Which way the user's chair faces",
				Default:     "north",
				Enum:        schema.StaticOptions("north", "south", "east", "west")},
			{Key: "floor_material", Title: "Floor material", Type: schema.FieldTypeString,
				Description: "What the floor under the workstation is made of",
				Default:     "wood"},
		},
	}
}
