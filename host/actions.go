package host

import (
	"context"
	"fmt"
)

// Action categories the host UI groups manifests under.
const (
	ActionCategoryServer      = "server"
	ActionCategoryAdmin       = "admin"
	ActionCategoryApplication = "application"
)

// Icon types understood by the host UI.
const (
	IconTypeMaterialSymbols = "material-symbols"
	IconTypeURL             = "url"
)

// Icon describes how the UI renders an action's icon. Either a named glyph
// from the material-symbols set or a URL; URL icons may reference
// "{addon_url}" which the host expands to the addon's mount point.
type Icon struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// ActionManifest is a UI-invokable operation descriptor. The host shows the
// action for entities matching EntityType and, when set, EntitySubtypes.
type ActionManifest struct {
	Identifier          string     `json:"identifier"`
	Label               string     `json:"label"`
	Category            string     `json:"category"`
	Order               int        `json:"order"`
	Icon                *Icon      `json:"icon,omitempty"`
	EntityType          EntityType `json:"entityType"`
	EntitySubtypes      []string   `json:"entitySubtypes,omitempty"`
	AllowMultiselection bool       `json:"allowMultiselection"`
}

// ActionContext captures the UI selection an action was invoked on.
type ActionContext struct {
	ProjectName string     `json:"projectName"`
	EntityType  EntityType `json:"entityType"`
	EntityIDs   []string   `json:"entityIds"`
}

// Response types for executed actions.
const (
	ResponseServer   = "server"
	ResponseLauncher = "launcher"
)

// ExecuteResponse is the host-defined result of an action execution. Server
// responses carry a message shown in the UI; launcher responses carry the
// argument vector the user's local launcher runs.
type ExecuteResponse struct {
	Type    string   `json:"type"`
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Args    []string `json:"args,omitempty"`
}

// ActionExecutor bundles everything the host knows about one action
// invocation and provides the response constructors addons must use.
type ActionExecutor struct {
	Identifier string
	Context    ActionContext
	User       User
	Variant    string

	// AddonURL is the addon's mount point, used to expand icon templates.
	AddonURL string
}

// ServerResponse builds a server-side execute response with the given
// UI message.
func (e *ActionExecutor) ServerResponse(format string, args ...any) (*ExecuteResponse, error) {
	return &ExecuteResponse{
		Type:    ResponseServer,
		Success: true,
		Message: fmt.Sprintf(format, args...),
	}, nil
}

// LauncherResponse builds a response instructing the user's launcher to run
// the given argument vector.
func (e *ActionExecutor) LauncherResponse(args ...string) (*ExecuteResponse, error) {
	return &ExecuteResponse{
		Type:    ResponseLauncher,
		Success: true,
		Args:    args,
	}, nil
}

// FirstEntityID returns the first selected entity id, or an error when the
// selection is empty. Single-selection actions use this.
func (e *ActionExecutor) FirstEntityID() (string, error) {
	if len(e.Context.EntityIDs) == 0 {
		return "", BadRequest("action %q invoked without a selection", e.Identifier)
	}
	return e.Context.EntityIDs[0], nil
}

// ActionProvider is implemented by addons that contribute UI actions. The
// host aggregates manifests from all loaded addons and routes executions
// back by identifier.
type ActionProvider interface {
	// SimpleActions lists the manifests the addon offers for the given
	// project (empty for studio scope) and settings variant.
	SimpleActions(ctx context.Context, project, variant string) ([]ActionManifest, error)

	// ExecuteAction runs one action invocation.
	ExecuteAction(ctx context.Context, executor *ActionExecutor) (*ExecuteResponse, error)
}
