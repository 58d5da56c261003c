package exampleaddon

import (
	"errors"
	"net/http"

	"github.com/GoCodeAlone/prodtrack-example-addon/host"
	"github.com/GoCodeAlone/prodtrack-example-addon/store"
)

// registerRoutes mounts the addon's REST endpoints on the host router.
func (a *Addon) registerRoutes(router host.Router) {
	router.Handle(http.MethodGet, "get-random-folder/{project}", http.HandlerFunc(a.handleGetRandomFolder))
}

// handleGetRandomFolder picks a random folder of the configured type from
// the project and returns it as the requesting user sees it.
func (a *Addon) handleGetRandomFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	project := r.PathValue("project")
	a.metrics.RecordEndpointRequest("get-random-folder")

	user, ok := host.UserFromContext(ctx)
	if !ok {
		host.WriteError(w, host.Unauthorized("authentication required"))
		return
	}

	settings, err := a.projectSettings(ctx, project, variantFromRequest(r))
	if err != nil {
		a.logger.Error("loading settings", "project", project, "error", err)
		host.WriteError(w, err)
		return
	}

	if a.folders == nil {
		host.WriteError(w, host.NotImplemented("no folder store configured"))
		return
	}

	folderID, err := a.folders.RandomFolderID(ctx, project, settings.FolderType)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrProjectNotFound):
			host.WriteError(w, host.NotFound("project %q not found", project))
		case errors.Is(err, store.ErrNoFolder):
			host.WriteError(w, host.NotFound("no folder of type %q in project %q", settings.FolderType, project))
		default:
			a.logger.Error("picking random folder", "project", project, "error", err)
			host.WriteError(w, err)
		}
		return
	}

	folder, err := a.entities.LoadFolder(ctx, project, folderID)
	if err != nil {
		host.WriteError(w, err)
		return
	}
	if err := a.entities.EnsureReadAccess(ctx, user, project, folder); err != nil {
		host.WriteError(w, err)
		return
	}

	host.WriteJSON(w, http.StatusOK, folder.Payload(user))
}
