package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/GoCodeAlone/prodtrack-example-addon/host"
	"github.com/GoCodeAlone/prodtrack-example-addon/store"
)

// Host is an in-memory stand-in for the platform's entity, access, and
// settings services. It also implements the addon's store interfaces so the
// dev harness can run without PostgreSQL.
type Host struct {
	mu sync.RWMutex

	// folders[project][folderID]
	folders map[string]map[string]*host.Folder
	tasks   map[string]map[string]*host.Task

	// settings["<addon>/<version>/<variant>"] for studio scope,
	// with "<project>/" prefixed for project scope.
	settings map[string]json.RawMessage

	// denied users, by name, refused read access to everything.
	denied map[string]bool

	rng *rand.Rand
}

// NewHost creates an empty in-memory host.
func NewHost() *Host {
	return &Host{
		folders:  make(map[string]map[string]*host.Folder),
		tasks:    make(map[string]map[string]*host.Task),
		settings: make(map[string]json.RawMessage),
		denied:   make(map[string]bool),
		rng:      rand.New(rand.NewSource(1)),
	}
}

// AddFolder stores a folder under a project.
func (h *Host) AddFolder(project string, f *host.Folder) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.folders[project] == nil {
		h.folders[project] = make(map[string]*host.Folder)
	}
	h.folders[project][f.FolderID] = f
}

// AddTask stores a task under a project.
func (h *Host) AddTask(project string, t *host.Task) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.tasks[project] == nil {
		h.tasks[project] = make(map[string]*host.Task)
	}
	h.tasks[project][t.TaskID] = t
}

// DenyUser makes EnsureReadAccess fail for the named user.
func (h *Host) DenyUser(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.denied[name] = true
}

// --- host.EntityService ---

func (h *Host) LoadFolder(_ context.Context, project, folderID string) (*host.Folder, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	f, ok := h.folders[project][folderID]
	if !ok {
		return nil, host.NotFound("folder %q not found in project %q", folderID, project)
	}
	return f, nil
}

func (h *Host) LoadTask(_ context.Context, project, taskID string) (*host.Task, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	t, ok := h.tasks[project][taskID]
	if !ok {
		return nil, host.NotFound("task %q not found in project %q", taskID, project)
	}
	return t, nil
}

func (h *Host) EnsureReadAccess(_ context.Context, user host.User, project string, entity host.Entity) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.denied[user.Name] {
		return host.Forbidden("user %q may not view %s %q in %q", user.Name, entity.Type(), entity.ID(), project)
	}
	return nil
}

// --- host.SettingsService ---

func settingsKey(addon, version, variant string) string {
	return addon + "/" + version + "/" + variant
}

// SetStudioSettings stores a studio settings document.
func (h *Host) SetStudioSettings(addon, version, variant string, doc json.RawMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.settings[settingsKey(addon, version, variant)] = doc
}

// SetProjectSettings stores a project settings document.
func (h *Host) SetProjectSettings(addon, version, project, variant string, doc json.RawMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.settings[project+"/"+settingsKey(addon, version, variant)] = doc
}

func (h *Host) StudioSettings(_ context.Context, addon, version, variant string) (json.RawMessage, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.settings[settingsKey(addon, version, variant)], nil
}

func (h *Host) ProjectSettings(ctx context.Context, addon, version, project, variant string) (json.RawMessage, error) {
	h.mu.RLock()
	doc, ok := h.settings[project+"/"+settingsKey(addon, version, variant)]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}
	// No project override stored; fall back to studio scope.
	return h.StudioSettings(ctx, addon, version, variant)
}

// --- store.FolderStore / store.ProjectStore ---

func (h *Host) RandomFolderID(_ context.Context, project, folderType string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	folders, ok := h.folders[project]
	if !ok {
		return "", fmt.Errorf("project %q: %w", project, store.ErrProjectNotFound)
	}
	var ids []string
	for id, f := range folders {
		if f.FolderType == folderType {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("folder type %q in project %q: %w", folderType, project, store.ErrNoFolder)
	}
	sort.Strings(ids)
	return ids[h.rng.Intn(len(ids))], nil
}

func (h *Host) FolderTypes(_ context.Context, project string) ([]string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	folders, ok := h.folders[project]
	if !ok {
		return nil, fmt.Errorf("project %q: %w", project, store.ErrProjectNotFound)
	}
	set := make(map[string]bool)
	for _, f := range folders {
		set[f.FolderType] = true
	}
	types := make([]string, 0, len(set))
	for t := range set {
		types = append(types, t)
	}
	sort.Strings(types)
	return types, nil
}

func (h *Host) ProjectNames(_ context.Context) ([]string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.folders))
	for p := range h.folders {
		names = append(names, p)
	}
	sort.Strings(names)
	return names, nil
}
