package exampleaddon

import (
	"net/http"
	"testing"

	"github.com/GoCodeAlone/prodtrack-example-addon/host"
	"github.com/GoCodeAlone/prodtrack-example-addon/mock"
	"github.com/GoCodeAlone/prodtrack-example-addon/schema"
	"github.com/GoCodeAlone/prodtrack-example-addon/store"
)

// newTestAddon wires an initialized addon against in-memory host services.
// The returned mux carries the addon's routes under the standard prefix.
func newTestAddon(t *testing.T) (*Addon, *mock.Host, *mock.Application, *http.ServeMux) {
	t.Helper()

	app := mock.NewApplication()
	h := mock.NewHost()
	mux := http.NewServeMux()
	prefix := "/addons/" + AddonName + "/" + AddonVersion

	if err := app.RegisterService(host.ServiceSchemas, schema.NewRegistry()); err != nil {
		t.Fatalf("registering schemas: %v", err)
	}
	if err := app.RegisterService(host.ServiceEntities, host.EntityService(h)); err != nil {
		t.Fatalf("registering entities: %v", err)
	}
	if err := app.RegisterService(host.ServiceSettings, host.SettingsService(h)); err != nil {
		t.Fatalf("registering settings: %v", err)
	}
	if err := app.RegisterService(host.ServiceRouter, host.Router(host.NewMuxRouter(mux, prefix))); err != nil {
		t.Fatalf("registering router: %v", err)
	}
	if err := app.RegisterService(store.ServiceFolders, store.FolderStore(h)); err != nil {
		t.Fatalf("registering folder store: %v", err)
	}
	if err := app.RegisterService(store.ServiceProjects, store.ProjectStore(h)); err != nil {
		t.Fatalf("registering project store: %v", err)
	}

	a := New()
	if err := a.Init(app); err != nil {
		t.Fatalf("Init: %v", err)
	}
	// The framework registers provided services after Init; the mock
	// application leaves that to the caller.
	for _, sp := range a.ProvidesServices() {
		if err := app.RegisterService(sp.Name, sp.Instance); err != nil {
			t.Fatalf("registering %s: %v", sp.Name, err)
		}
	}
	return a, h, app, mux
}

func seedProject(h *mock.Host) {
	h.AddFolder("demo", &host.Folder{
		FolderID:   "f1",
		FolderName: "assets",
		FolderType: "Asset",
		Data:       map[string]any{"secret": true},
	})
	h.AddFolder("demo", &host.Folder{
		FolderID:   "f2",
		FolderName: "sh010",
		FolderType: "Shot",
	})
	h.AddTask("demo", &host.Task{
		TaskID:    "t1",
		TaskName:  "comp",
		TaskType:  "Compositing",
		FolderID:  "f2",
		Status:    "In progress",
		Assignees: []string{"artist1"},
	})
}

func TestAddonInitRegistersModels(t *testing.T) {
	a, _, app, _ := newTestAddon(t)

	if a.Name() != ModuleName {
		t.Errorf("Name() = %q, want %q", a.Name(), ModuleName)
	}

	var registry *schema.Registry
	if err := app.GetService(host.ServiceSchemas, &registry); err != nil {
		t.Fatalf("GetService: %v", err)
	}
	if _, ok := registry.Model(AddonName, schema.KindSettings); !ok {
		t.Error("settings model not registered")
	}
	if _, ok := registry.Model(AddonName, schema.KindSiteSettings); !ok {
		t.Error("site settings model not registered")
	}

	var provider host.ActionProvider
	if err := app.GetService(ServiceActions, &provider); err != nil {
		t.Fatalf("action provider not registered: %v", err)
	}
}

func TestAddonInitFailsWithoutRouter(t *testing.T) {
	app := mock.NewApplication()
	h := mock.NewHost()
	if err := app.RegisterService(host.ServiceSchemas, schema.NewRegistry()); err != nil {
		t.Fatal(err)
	}
	if err := app.RegisterService(host.ServiceEntities, host.EntityService(h)); err != nil {
		t.Fatal(err)
	}
	if err := app.RegisterService(host.ServiceSettings, host.SettingsService(h)); err != nil {
		t.Fatal(err)
	}

	if err := New().Init(app); err == nil {
		t.Fatal("Init succeeded without a router service")
	}
}

func TestManifestIsValid(t *testing.T) {
	m := New().Manifest()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if m.Name != AddonName || m.Version != AddonVersion {
		t.Errorf("manifest identity = %s/%s, want %s/%s", m.Name, m.Version, AddonName, AddonVersion)
	}
	if m.AddonType != "server" {
		t.Errorf("addon type = %q, want server", m.AddonType)
	}
}
