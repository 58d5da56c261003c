package exampleaddon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/GoCodeAlone/prodtrack-example-addon/schema"
)

// Enum resolver names the settings model references. Registered by the
// addon during Init.
const (
	ResolverFolderTypes      = "example.folder_types"
	ResolverProjects         = "example.projects"
	ResolverAnatomyPresets   = "example.anatomy_presets"
	ResolverAppHostNames     = "example.app_host_names"
	ResolverValuesWithLabels = "example.values_with_labels"
	ResolverRecursiveList    = "example.recursive_list"
)

// defaultFolderTypes is used when no store is wired or no project is in
// scope.
var defaultFolderTypes = []string{"Asset", "Episode", "Sequence", "Shot"}

// ExampleSettings is the addon's studio/project settings document. The
// structure mirrors SettingsModel; the host persists it as JSON.
type ExampleSettings struct {
	SimpleString  string `json:"simple_string"`
	FolderType    string `json:"folder_type"`
	AnatomyPreset string `json:"anatomy_preset"`
	Textarea      string `json:"textarea"`
	Number        int    `json:"number"`

	HiddenSetting      string `json:"hidden_setting"`
	AllScopesSetting   string `json:"all_scopes_setting"`
	StudioSetting      string `json:"studio_setting"`
	ProjectSetting     string `json:"project_setting"`
	ProjectSiteSetting string `json:"project_site_setting"`

	AllScopesListOfSubmodels []DictLikeSubmodel `json:"all_scopes_list_of_submodels"`

	SimpleEnum     string   `json:"simple_enum"`
	Project        string   `json:"project,omitempty"`
	Multiselect    []string `json:"multiselect"`
	AppHostNames   []string `json:"app_host_names"`
	EnumWithLabels string   `json:"enum_with_labels"`
	ListOfStrings  []string `json:"list_of_strings"`
	RecursiveEnum  string   `json:"recursive_enum"`

	Colors          Colors                `json:"colors"`
	NestedSettings  NestedSettings        `json:"nested_settings"`
	GroupedSettings GroupedSettings       `json:"grouped_settings"`
	ListOfSubmodels []CompactListSubmodel `json:"list_of_submodels"`
	DictLikeList    []DictLikeSubmodel    `json:"dict_like_list"`
}

// Colors shows every colour representation the settings UI supports.
// Default is blue.
type Colors struct {
	RGBHex    string     `json:"rgb_hex"`
	RGBAHex   string     `json:"rgba_hex"`
	RGBFloat  [3]float64 `json:"rgb_float"`
	RGBAFloat [4]float64 `json:"rgba_float"`
	RGBUint8  [3]uint8   `json:"rgb_uint8"`
	RGBAUint8 [4]uint8   `json:"rgba_uint8"`
}

// ConditionalModel1 is shown when the model switcher selects "model1".
type ConditionalModel1 struct {
	Something string `json:"something"`
}

// ConditionalModel2 is shown when the model switcher selects "model2".
type ConditionalModel2 struct {
	SomethingElse       string `json:"something_else"`
	SomethingElseNumber int    `json:"something_else_number"`
}

// ConditionalModel3 is shown when the model switcher selects "model3".
type ConditionalModel3 struct {
	Key1 string `json:"key1"`
	Key2 string `json:"key2"`
	Key3 string `json:"key3"`
}

// NestedSettings demonstrates nesting and the pseudo-dynamic model switcher.
type NestedSettings struct {
	Spam  bool `json:"spam"`
	Eggs  bool `json:"eggs"`
	Bacon bool `json:"bacon"`

	ModelSwitcher string            `json:"model_switcher"`
	Model1        ConditionalModel1 `json:"model1"`
	Model2        ConditionalModel2 `json:"model2"`
	Model3        ConditionalModel3 `json:"model3"`

	NestedListOfSubmodels []CompactListSubmodel `json:"nested_list_of_submodels"`
}

// GroupedSettings is a submodel rendered as a group.
type GroupedSettings struct {
	YourName      string `json:"your_name"`
	YourQuest     string `json:"your_quest"`
	FavoriteColor string `json:"favorite_color"`
}

// CompactListSubmodel is a small named item rendered on a single row.
type CompactListSubmodel struct {
	Name     string   `json:"name"`
	IntValue int      `json:"int_value"`
	Enum     []string `json:"enum"`
}

// DictLikeSubmodel is a named item whose name acts as a dictionary key.
type DictLikeSubmodel struct {
	Name   string `json:"name"`
	Value1 string `json:"value1"`
	Value2 string `json:"value2"`
	Value3 string `json:"value3"`
	Value4 string `json:"value4"`
}

// DefaultExampleSettings returns the settings document used before any
// overrides are stored.
func DefaultExampleSettings() ExampleSettings {
	return ExampleSettings{
		SimpleString:     "default value",
		FolderType:       "Asset",
		AnatomyPreset:    "__primary__",
		Number:           1,
		HiddenSetting:    "you can't see me",
		AllScopesSetting: "You see me all the time",
		SimpleEnum:       "red",
		EnumWithLabels:   "value1",
		Colors: Colors{
			RGBHex:    "#0000ff",
			RGBAHex:   "#0000ff",
			RGBFloat:  [3]float64{0, 0, 1},
			RGBAFloat: [4]float64{0, 0, 1, 1},
			RGBUint8:  [3]uint8{0, 0, 255},
			RGBAUint8: [4]uint8{0, 0, 255, 0},
		},
		NestedSettings: NestedSettings{
			NestedListOfSubmodels: []CompactListSubmodel{
				{Name: "default", IntValue: 42, Enum: []string{"foo", "bar"}},
			},
		},
		GroupedSettings: GroupedSettings{
			FavoriteColor: "red",
		},
		ListOfSubmodels: []CompactListSubmodel{
			{Name: "default", IntValue: 42, Enum: []string{"foo", "bar"}},
		},
	}
}

// DecodeExampleSettings overlays a stored settings document on the
// defaults and validates the result. A nil or empty document yields the
// defaults.
func DecodeExampleSettings(raw json.RawMessage) (ExampleSettings, error) {
	s := DefaultExampleSettings()
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return s, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&s); err != nil {
		return ExampleSettings{}, fmt.Errorf("decoding example settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return ExampleSettings{}, err
	}
	return s, nil
}

// Validate normalizes named list items and checks the model's value
// constraints.
func (s *ExampleSettings) Validate() error {
	var errs schema.ValidationErrors

	for path, list := range map[string][]DictLikeSubmodel{
		"all_scopes_list_of_submodels": s.AllScopesListOfSubmodels,
		"dict_like_list":               s.DictLikeList,
	} {
		names := make([]string, 0, len(list))
		for i := range list {
			name, err := schema.NormalizeName(list[i].Name)
			if err != nil {
				errs = append(errs, &schema.ValidationError{
					Path:    fmt.Sprintf("%s[%d].name", path, i),
					Message: err.Error(),
				})
				continue
			}
			list[i].Name = name
			names = append(names, name)
		}
		if err := schema.EnsureUniqueNames(names); err != nil {
			errs = append(errs, &schema.ValidationError{Path: path, Message: err.Error()})
		}
	}

	names := make([]string, 0, len(s.ListOfSubmodels))
	for i := range s.ListOfSubmodels {
		name, err := schema.NormalizeName(s.ListOfSubmodels[i].Name)
		if err != nil {
			errs = append(errs, &schema.ValidationError{
				Path:    fmt.Sprintf("list_of_submodels[%d].name", i),
				Message: err.Error(),
			})
			continue
		}
		s.ListOfSubmodels[i].Name = name
		names = append(names, name)
	}
	if err := schema.EnsureUniqueNames(names); err != nil {
		errs = append(errs, &schema.ValidationError{Path: "list_of_submodels", Message: err.Error()})
	}

	if f := SettingsModel().Field("number"); f != nil {
		if err := f.CheckBounds(float64(s.Number)); err != nil {
			errs = append(errs, &schema.ValidationError{Path: "number", Message: err.Error()})
		}
	}

	return errs.ErrorOrNil()
}

var modelSwitcherEnum = []schema.Option{
	{Value: "model1", Label: "Something"},
	{Value: "model2", Label: "Something else"},
	{Value: "model3", Label: "Something completely different"},
}

func compactListModel() *schema.ModelDef {
	return &schema.ModelDef{
		Name:   "compact_list_submodel",
		Layout: schema.LayoutCompact,
		Fields: []schema.FieldDef{
			{Key: "name", Title: "Name", Type: schema.FieldTypeString},
			{Key: "int_value", Title: "Integer", Type: schema.FieldTypeInteger},
			{Key: "enum", Title: "Enum", Type: schema.FieldTypeMultiselect,
				Enum: schema.StaticOptions("foo", "bar", "baz")},
		},
	}
}

func dictLikeModel(scope []string) *schema.ModelDef {
	return &schema.ModelDef{
		Name:   "dict_like_submodel",
		Layout: schema.LayoutExpanded,
		Fields: []schema.FieldDef{
			{Key: "name", Title: "Name", Type: schema.FieldTypeString, Scope: scope},
			{Key: "value1", Title: "Value 1", Type: schema.FieldTypeString, Scope: scope},
			{Key: "value2", Title: "Value 2", Type: schema.FieldTypeString, Scope: scope},
			{Key: "value3", Title: "Value 3", Type: schema.FieldTypeString, Scope: scope},
			{Key: "value4", Title: "Value 4", Type: schema.FieldTypeString},
		},
	}
}

func colorsModel() *schema.ModelDef {
	return &schema.ModelDef{
		Name:        "colors",
		Description: "Default is blue",
		Fields: []schema.FieldDef{
			{Key: "rgb_hex", Title: "RGB Hex", Type: schema.FieldTypeColor, Widget: "rgb_hex", Default: "#0000ff"},
			{Key: "rgba_hex", Title: "RGBA Hex", Type: schema.FieldTypeColor, Widget: "rgba_hex", Default: "#0000ff"},
			{Key: "rgb_float", Title: "RGB Float", Type: schema.FieldTypeColor, Widget: "rgb_float", Default: []float64{0, 0, 1}},
			{Key: "rgba_float", Title: "RGBA Float", Type: schema.FieldTypeColor, Widget: "rgba_float", Default: []float64{0, 0, 1, 1}},
			{Key: "rgb_uint8", Title: "RGB Uint8", Type: schema.FieldTypeColor, Widget: "rgb_uint8", Default: []int{0, 0, 255}},
			{Key: "rgba_uint8", Title: "RGBA Uint8", Type: schema.FieldTypeColor, Widget: "rgba_uint8", Default: []int{0, 0, 255, 0}},
		},
	}
}

func nestedSettingsModel() *schema.ModelDef {
	return &schema.ModelDef{
		Name:  "nested_settings",
		Title: "Nested settings",
		Description: "Nested settings without grouping.\n\n" +
			"Submodel descriptions are propagated to the frontend and " +
			"rendered as markdown.",
		Fields: []schema.FieldDef{
			{Key: "spam", Title: "Spam", Type: schema.FieldTypeBool, Default: false},
			{Key: "eggs", Title: "Eggs", Type: schema.FieldTypeBool, Default: false},
			{Key: "bacon", Title: "Bacon", Type: schema.FieldTypeBool, Default: false},

			{Key: "model_switcher", Title: "Model switcher", Type: schema.FieldTypeSelect,
				Description:     "Switch between the conditional models",
				Section:         "Pseudo-dynamic models",
				Enum:            modelSwitcherEnum,
				ConditionalEnum: true},
			{Key: "model1", Type: schema.FieldTypeObject, Model: &schema.ModelDef{
				Name:   "model1",
				Layout: schema.LayoutCompact,
				Fields: []schema.FieldDef{
					{Key: "something", Type: schema.FieldTypeString, Description: "Something"},
				},
			}},
			{Key: "model2", Type: schema.FieldTypeObject, Model: &schema.ModelDef{
				Name:   "model2",
				Layout: schema.LayoutCompact,
				Fields: []schema.FieldDef{
					{Key: "something_else", Type: schema.FieldTypeString, Description: "Something else"},
					{Key: "something_else_number", Type: schema.FieldTypeInteger, Description: "Something else's number"},
				},
			}},
			{Key: "model3", Type: schema.FieldTypeObject, Model: &schema.ModelDef{
				Name:  "model3",
				Title: "Something completely different",
				Fields: []schema.FieldDef{
					{Key: "key1", Type: schema.FieldTypeString, Description: "Key 1"},
					{Key: "key2", Type: schema.FieldTypeString, Description: "Key 2"},
					{Key: "key3", Type: schema.FieldTypeString, Description: "Key 3"},
				},
			}},

			{Key: "nested_list_of_submodels", Title: "A list of compact objects",
				Type:          schema.FieldTypeObjectList,
				Model:         compactListModel(),
				RequiredItems: []string{"default"}},
		},
	}
}

// SettingsModel returns the declarative schema for ExampleSettings. The
// host's settings UI renders it; the addon never draws anything itself.
func SettingsModel() *schema.ModelDef {
	allScopes := []string{schema.ScopeStudio, schema.ScopeProject, schema.ScopeSite}
	return &schema.ModelDef{
		Name:  AddonName,
		Title: "Example addon settings",
		Description: "Settings used to exercise every feature of the " +
			"settings system. Descriptions are rendered as markdown in the " +
			"frontend, so **bold**, *italic* and `code` work.",
		Fields: []schema.FieldDef{
			{Key: "simple_string", Title: "Simple string", Type: schema.FieldTypeString,
				Description: "This is a simple string",
				Default:     "default value"},
			{Key: "folder_type", Title: "Folder type", Type: schema.FieldTypeSelect,
				Description:  "Type of the folder the addon operates on",
				Placeholder:  "Select folder type",
				Default:      "Asset",
				EnumResolver: ResolverFolderTypes},
			{Key: "anatomy_preset", Title: "Anatomy preset", Type: schema.FieldTypeSelect,
				Description:  "Anatomy preset to use",
				Default:      "__primary__",
				EnumResolver: ResolverAnatomyPresets},
			{Key: "textarea", Title: "Textarea", Type: schema.FieldTypeText,
				Placeholder: "Placeholder of the textarea field"},
			{Key: "number", Title: "Number", Type: schema.FieldTypeInteger,
				Description: "Positive integer 1-10",
				Default:     1,
				GreaterThan: schema.Float(0),
				LessOrEqual: schema.Float(10),
				Placeholder: "Placeholder of the number field"},

			// Scoped fields are shown only in specific contexts; the
			// default is studio and project.
			{Key: "hidden_setting", Title: "Hidden setting", Type: schema.FieldTypeString,
				Description: "This setting is hidden in all contexts",
				Default:     "you can't see me",
				Scope:       []string{}},
			{Key: "all_scopes_setting", Title: "All scopes", Type: schema.FieldTypeString,
				Description: "This setting is shown in all contexts",
				Default:     "You see me all the time",
				Section:     "Scoped fields",
				Scope:       allScopes},
			{Key: "studio_setting", Title: "Studio setting", Type: schema.FieldTypeString,
				Description: "This setting is only visible in studio scope",
				Scope:       []string{schema.ScopeStudio}},
			{Key: "project_setting", Title: "Project setting", Type: schema.FieldTypeString,
				Description: "This setting is only visible in project scope",
				Scope:       []string{schema.ScopeProject}},
			{Key: "project_site_setting", Title: "Project site setting", Type: schema.FieldTypeString,
				Description: "This setting is only visible in the site scope",
				Scope:       []string{schema.ScopeSite}},
			{Key: "all_scopes_list_of_submodels", Title: "Dict-like list",
				Type:  schema.FieldTypeObjectList,
				Model: dictLikeModel(allScopes),
				Scope: allScopes},

			{Key: "simple_enum", Title: "Simple enum", Type: schema.FieldTypeSelect,
				Section: "Enumerators",
				Default: "red",
				Enum:    schema.StaticOptions("red", "green", "blue")},
			{Key: "project", Title: "Dynamic enum", Type: schema.FieldTypeSelect,
				EnumResolver: ResolverProjects},
			{Key: "multiselect", Title: "Multiselect", Type: schema.FieldTypeMultiselect,
				Enum: schema.StaticOptions("foo", "bar", "baz")},
			{Key: "app_host_names", Title: "App host names", Type: schema.FieldTypeMultiselect,
				EnumResolver: ResolverAppHostNames},
			{Key: "enum_with_labels", Title: "Enum with labels", Type: schema.FieldTypeSelect,
				Default:      "value1",
				EnumResolver: ResolverValuesWithLabels},

			{Key: "list_of_strings", Title: "List of strings", Type: schema.FieldTypeList,
				Section: "List"},
			{Key: "recursive_enum", Title: "Recursive enum", Type: schema.FieldTypeSelect,
				Section:      "Pick a value from the list above",
				EnumResolver: ResolverRecursiveList},

			{Key: "colors", Title: "Colors", Type: schema.FieldTypeObject,
				Model: colorsModel()},
			{Key: "nested_settings", Title: "Nested settings", Type: schema.FieldTypeObject,
				Model: nestedSettingsModel()},
			{Key: "grouped_settings", Title: "Grouped settings", Type: schema.FieldTypeObject,
				Description: "Nested settings submodel with grouping",
				Model: &schema.ModelDef{
					Name:    "grouped_settings",
					IsGroup: true,
					Fields: []schema.FieldDef{
						{Key: "your_name", Title: "Name", Type: schema.FieldTypeString},
						{Key: "your_quest", Title: "Your quest", Type: schema.FieldTypeString},
						{Key: "favorite_color", Title: "Favorite color", Type: schema.FieldTypeSelect,
							Default: "red",
							Enum:    schema.StaticOptions("red", "green", "blue")},
					},
				}},
			{Key: "list_of_submodels", Title: "A list of compact objects",
				Type:          schema.FieldTypeObjectList,
				Model:         compactListModel(),
				RequiredItems: []string{"default"}},
			{Key: "dict_like_list", Title: "Dict-like list",
				Type:  schema.FieldTypeObjectList,
				Model: dictLikeModel(nil)},
		},
	}
}

// registerResolvers wires the dynamic enum resolvers into the host's schema
// registry. Store-backed resolvers degrade to static fallbacks when no
// store service is available.
func (a *Addon) registerResolvers() error {
	resolvers := map[string]schema.EnumResolver{
		ResolverFolderTypes: func(ctx context.Context, rc schema.ResolveContext) ([]schema.Option, error) {
			if a.folders != nil && rc.Project != "" {
				types, err := a.folders.FolderTypes(ctx, rc.Project)
				if err == nil && len(types) > 0 {
					return schema.StaticOptions(types...), nil
				}
			}
			return schema.StaticOptions(defaultFolderTypes...), nil
		},
		ResolverProjects: func(ctx context.Context, _ schema.ResolveContext) ([]schema.Option, error) {
			if a.projects == nil {
				return nil, nil
			}
			names, err := a.projects.ProjectNames(ctx)
			if err != nil {
				return nil, err
			}
			return schema.StaticOptions(names...), nil
		},
		ResolverAnatomyPresets: schema.StaticResolver([]schema.Option{
			{Value: "__primary__", Label: "Primary"},
			{Value: "__builtin__", Label: "Built-in"},
		}),
		ResolverAppHostNames: schema.StaticResolver(
			schema.StaticOptions("blender", "houdini", "maya", "nuke", "photoshop"),
		),
		ResolverValuesWithLabels: func(_ context.Context, _ schema.ResolveContext) ([]schema.Option, error) {
			opts := make([]schema.Option, 10)
			for i := range opts {
				opts[i] = schema.Option{
					Value: fmt.Sprintf("value%d", i),
					Label: fmt.Sprintf("Label %d", i),
				}
			}
			return opts, nil
		},
		ResolverRecursiveList: func(_ context.Context, rc schema.ResolveContext) ([]schema.Option, error) {
			s, err := DecodeExampleSettings(rc.Settings)
			if err != nil {
				return nil, err
			}
			return schema.StaticOptions(s.ListOfStrings...), nil
		},
	}
	for name, fn := range resolvers {
		if err := a.schemas.RegisterResolver(name, fn); err != nil {
			return err
		}
	}
	return nil
}
