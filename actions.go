package exampleaddon

import (
	"context"
	"strings"

	"github.com/GoCodeAlone/prodtrack-example-addon/host"
)

// Action identifiers the addon contributes.
const (
	ActionFolder1         = "example-folder-action-1"
	ActionFolder2         = "example-folder-action-2"
	ActionTask            = "example-task-action"
	ActionLaunchNuke      = "launch-nuke"
	ActionLaunchPhotoshop = "launch-photoshop"
	ActionLaunchHoudini   = "launch-houdini"
	ActionLaunchMaya      = "launch-maya"
)

// actionCatalog is the static manifest set. The launcher actions carry URL
// icons with an "{addon_url}" template the host expands per deployment.
var actionCatalog = []host.ActionManifest{
	{
		Identifier: ActionFolder1,
		Label:      "Example folder action 1",
		Category:   host.ActionCategoryServer,
		Order:      100,
		Icon:       &host.Icon{Type: host.IconTypeMaterialSymbols, Name: "folder"},
		EntityType: host.EntityFolder,
	},
	{
		Identifier: ActionFolder2,
		Label:      "Example folder action 2",
		Category:   host.ActionCategoryAdmin,
		Order:      100,
		Icon:       &host.Icon{Type: host.IconTypeMaterialSymbols, Name: "delete"},
		EntityType: host.EntityFolder,
	},
	{
		Identifier: ActionTask,
		Label:      "Task Action",
		Category:   host.ActionCategoryServer,
		Order:      100,
		Icon:       &host.Icon{Type: host.IconTypeMaterialSymbols, Name: "task"},
		EntityType: host.EntityTask,
	},
	{
		Identifier:          ActionLaunchNuke,
		Label:               "Launch Nuke",
		Category:            host.ActionCategoryApplication,
		Order:               100,
		Icon:                &host.Icon{Type: host.IconTypeURL, URL: "{addon_url}/public/icons/nuke.png"},
		EntityType:          host.EntityTask,
		EntitySubtypes:      []string{"Compositing", "Roto", "Matchmove"},
		AllowMultiselection: true,
	},
	{
		Identifier:          ActionLaunchPhotoshop,
		Label:               "Launch Photoshop",
		Category:            host.ActionCategoryApplication,
		Order:               100,
		Icon:                &host.Icon{Type: host.IconTypeURL, URL: "{addon_url}/public/icons/photoshop.png"},
		EntityType:          host.EntityTask,
		EntitySubtypes:      []string{"Compositing", "Texture"},
		AllowMultiselection: true,
	},
	{
		Identifier:          ActionLaunchHoudini,
		Label:               "Launch Houdini",
		Category:            host.ActionCategoryApplication,
		Order:               100,
		Icon:                &host.Icon{Type: host.IconTypeURL, URL: "{addon_url}/public/icons/houdini.png"},
		EntityType:          host.EntityTask,
		EntitySubtypes:      []string{"FX", "Modeling"},
		AllowMultiselection: true,
	},
	{
		Identifier:     ActionLaunchMaya,
		Label:          "Launch Maya",
		Category:       host.ActionCategoryApplication,
		Order:          100,
		Icon:           &host.Icon{Type: host.IconTypeURL, URL: "{addon_url}/public/icons/maya.png"},
		EntityType:     host.EntityTask,
		EntitySubtypes: []string{"FX", "Modeling", "Lighting", "Animation", "Rigging", "Lookdev"},
	},
}

// SimpleActions returns the addon's manifest catalog. The catalog is
// static; the host filters it by the UI selection. Implements
// host.ActionProvider.
func (a *Addon) SimpleActions(_ context.Context, project, variant string) ([]host.ActionManifest, error) {
	a.logger.Debug("listing actions", "project", project, "variant", variant)
	out := make([]host.ActionManifest, len(actionCatalog))
	copy(out, actionCatalog)
	return out, nil
}

// ExecuteAction dispatches an action invocation by identifier. Implements
// host.ActionProvider.
func (a *Addon) ExecuteAction(ctx context.Context, executor *host.ActionExecutor) (*host.ExecuteResponse, error) {
	a.metrics.RecordAction(executor.Identifier)
	a.logger.Info("executing action",
		"action", executor.Identifier,
		"user", executor.User.Name,
		"project", executor.Context.ProjectName,
	)

	switch {
	case strings.HasPrefix(executor.Identifier, "example-"):
		id, err := executor.FirstEntityID()
		if err != nil {
			return nil, err
		}
		entity, err := host.LoadEntity(ctx, a.entities, executor.Context.EntityType, executor.Context.ProjectName, id)
		if err != nil {
			return nil, err
		}
		return executor.ServerResponse("%s performed on %s %s", executor.Identifier, entity.Type(), entity.Name())

	case strings.HasPrefix(executor.Identifier, "launch-"):
		return a.executeLauncher(ctx, executor)

	default:
		return nil, host.NotImplemented("action %q is not implemented", executor.Identifier)
	}
}

// executeLauncher builds the launcher argument vector for the launch-*
// actions. The application name is derived from the identifier.
func (a *Addon) executeLauncher(ctx context.Context, executor *host.ActionExecutor) (*host.ExecuteResponse, error) {
	taskID, err := executor.FirstEntityID()
	if err != nil {
		return nil, err
	}
	task, err := a.entities.LoadTask(ctx, executor.Context.ProjectName, taskID)
	if err != nil {
		return nil, err
	}

	app := strings.TrimPrefix(executor.Identifier, "launch-")
	return executor.LauncherResponse(
		app,
		"--project", executor.Context.ProjectName,
		"--task", task.TaskID,
	)
}
