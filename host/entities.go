// Package host declares the addon-side view of the production-tracking
// platform: the entity, action, event, and settings contracts an addon
// consumes. The host owns the implementations; addons only hold interfaces
// and plain data types from this package.
package host

import "context"

// EntityType identifies the kind of project entity an action or endpoint
// operates on.
type EntityType string

const (
	EntityFolder EntityType = "folder"
	EntityTask   EntityType = "task"
)

// User is the authenticated platform user a request or action runs as.
type User struct {
	Name      string `json:"name"`
	FullName  string `json:"fullName,omitempty"`
	IsAdmin   bool   `json:"isAdmin,omitempty"`
	IsService bool   `json:"isService,omitempty"`
}

// Entity is the common surface of project entities the host hands to addons.
type Entity interface {
	Type() EntityType
	ID() string
	Name() string

	// Payload returns the entity as the given user is allowed to see it.
	Payload(user User) map[string]any
}

// Folder is a hierarchy node within a project.
type Folder struct {
	FolderID   string         `json:"id"`
	FolderName string         `json:"name"`
	Label      string         `json:"label,omitempty"`
	FolderType string         `json:"folderType"`
	ParentID   string         `json:"parentId,omitempty"`
	Attrib     map[string]any `json:"attrib,omitempty"`

	// Data holds free-form entity data visible to privileged users only.
	Data map[string]any `json:"data,omitempty"`
}

func (f *Folder) Type() EntityType { return EntityFolder }
func (f *Folder) ID() string       { return f.FolderID }
func (f *Folder) Name() string     { return f.FolderName }

// Payload returns the folder respecting the user's access level. Free-form
// entity data is stripped for regular users.
func (f *Folder) Payload(user User) map[string]any {
	out := map[string]any{
		"id":         f.FolderID,
		"name":       f.FolderName,
		"folderType": f.FolderType,
	}
	if f.Label != "" {
		out["label"] = f.Label
	}
	if f.ParentID != "" {
		out["parentId"] = f.ParentID
	}
	if len(f.Attrib) > 0 {
		out["attrib"] = f.Attrib
	}
	if len(f.Data) > 0 && (user.IsAdmin || user.IsService) {
		out["data"] = f.Data
	}
	return out
}

// Task is a unit of work attached to a folder.
type Task struct {
	TaskID    string         `json:"id"`
	TaskName  string         `json:"name"`
	Label     string         `json:"label,omitempty"`
	TaskType  string         `json:"taskType"`
	FolderID  string         `json:"folderId"`
	Status    string         `json:"status,omitempty"`
	Assignees []string       `json:"assignees,omitempty"`
	Attrib    map[string]any `json:"attrib,omitempty"`
}

func (t *Task) Type() EntityType { return EntityTask }
func (t *Task) ID() string       { return t.TaskID }
func (t *Task) Name() string     { return t.TaskName }

// Payload returns the task respecting the user's access level. Assignees are
// only exposed to admins, services, or the assignees themselves.
func (t *Task) Payload(user User) map[string]any {
	out := map[string]any{
		"id":       t.TaskID,
		"name":     t.TaskName,
		"taskType": t.TaskType,
		"folderId": t.FolderID,
	}
	if t.Label != "" {
		out["label"] = t.Label
	}
	if t.Status != "" {
		out["status"] = t.Status
	}
	if len(t.Attrib) > 0 {
		out["attrib"] = t.Attrib
	}
	if len(t.Assignees) > 0 {
		if user.IsAdmin || user.IsService {
			out["assignees"] = t.Assignees
		} else {
			for _, a := range t.Assignees {
				if a == user.Name {
					out["assignees"] = t.Assignees
					break
				}
			}
		}
	}
	return out
}

// EntityService loads project entities and enforces access rules. Implemented
// by the host; addons never load entities directly from storage.
type EntityService interface {
	LoadFolder(ctx context.Context, project, folderID string) (*Folder, error)
	LoadTask(ctx context.Context, project, taskID string) (*Task, error)

	// EnsureReadAccess returns ErrForbidden-wrapped errors when the user may
	// not view the entity.
	EnsureReadAccess(ctx context.Context, user User, project string, entity Entity) error
}

// LoadEntity loads an entity of the given type. It is the generic dispatch
// used by action executors that receive the entity type as data.
func LoadEntity(ctx context.Context, svc EntityService, entityType EntityType, project, id string) (Entity, error) {
	switch entityType {
	case EntityFolder:
		return svc.LoadFolder(ctx, project, id)
	case EntityTask:
		return svc.LoadTask(ctx, project, id)
	default:
		return nil, BadRequest("unknown entity type %q", entityType)
	}
}

type userContextKey struct{}

// ContextWithUser attaches the authenticated user to a request context. The
// host's authentication middleware calls this before handing requests to
// addon endpoints.
func ContextWithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userContextKey{}).(User)
	return u, ok
}
