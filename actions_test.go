package exampleaddon

import (
	"context"
	"strings"
	"testing"

	"github.com/GoCodeAlone/prodtrack-example-addon/host"
)

func TestSimpleActionsCatalog(t *testing.T) {
	a, _, _, _ := newTestAddon(t)

	actions, err := a.SimpleActions(context.Background(), "demo", host.VariantProduction)
	if err != nil {
		t.Fatalf("SimpleActions: %v", err)
	}
	if len(actions) != 7 {
		t.Fatalf("got %d actions, want 7", len(actions))
	}

	byID := make(map[string]host.ActionManifest, len(actions))
	for _, m := range actions {
		if m.Identifier == "" || m.Label == "" || m.Category == "" {
			t.Errorf("incomplete manifest: %+v", m)
		}
		byID[m.Identifier] = m
	}

	if m := byID[ActionFolder2]; m.Category != host.ActionCategoryAdmin || m.EntityType != host.EntityFolder {
		t.Errorf("folder action 2 manifest = %+v", m)
	}
	if m := byID[ActionLaunchNuke]; m.Category != host.ActionCategoryApplication || !m.AllowMultiselection {
		t.Errorf("launch-nuke manifest = %+v", m)
	}
	if m := byID[ActionLaunchNuke]; m.Icon == nil || !strings.Contains(m.Icon.URL, "{addon_url}") {
		t.Errorf("launch-nuke icon missing addon_url template: %+v", m.Icon)
	}
	if m := byID[ActionLaunchMaya]; len(m.EntitySubtypes) != 6 || m.AllowMultiselection {
		t.Errorf("launch-maya manifest = %+v", m)
	}
}

func TestExecuteFolderAction(t *testing.T) {
	a, h, _, _ := newTestAddon(t)
	seedProject(h)

	resp, err := a.ExecuteAction(context.Background(), &host.ActionExecutor{
		Identifier: ActionFolder1,
		Context: host.ActionContext{
			ProjectName: "demo",
			EntityType:  host.EntityFolder,
			EntityIDs:   []string{"f1"},
		},
		User: host.User{Name: "artist1"},
	})
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}
	if resp.Type != host.ResponseServer || !resp.Success {
		t.Errorf("response = %+v", resp)
	}
	if resp.Message != "example-folder-action-1 performed on folder assets" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestExecuteTaskAction(t *testing.T) {
	a, h, _, _ := newTestAddon(t)
	seedProject(h)

	resp, err := a.ExecuteAction(context.Background(), &host.ActionExecutor{
		Identifier: ActionTask,
		Context: host.ActionContext{
			ProjectName: "demo",
			EntityType:  host.EntityTask,
			EntityIDs:   []string{"t1"},
		},
		User: host.User{Name: "artist1"},
	})
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}
	if resp.Message != "example-task-action performed on task comp" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestExecuteLauncherAction(t *testing.T) {
	a, h, _, _ := newTestAddon(t)
	seedProject(h)

	resp, err := a.ExecuteAction(context.Background(), &host.ActionExecutor{
		Identifier: ActionLaunchNuke,
		Context: host.ActionContext{
			ProjectName: "demo",
			EntityType:  host.EntityTask,
			EntityIDs:   []string{"t1"},
		},
		User: host.User{Name: "artist1"},
	})
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}
	if resp.Type != host.ResponseLauncher {
		t.Fatalf("response type = %q", resp.Type)
	}
	want := []string{"nuke", "--project", "demo", "--task", "t1"}
	if len(resp.Args) != len(want) {
		t.Fatalf("args = %v", resp.Args)
	}
	for i, arg := range want {
		if resp.Args[i] != arg {
			t.Errorf("args[%d] = %q, want %q", i, resp.Args[i], arg)
		}
	}
}

func TestExecuteActionErrors(t *testing.T) {
	a, h, _, _ := newTestAddon(t)
	seedProject(h)
	ctx := context.Background()

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := a.ExecuteAction(ctx, &host.ActionExecutor{Identifier: "nope"})
		if host.StatusOf(err) != 501 {
			t.Errorf("status = %d, err = %v", host.StatusOf(err), err)
		}
	})

	t.Run("empty selection", func(t *testing.T) {
		_, err := a.ExecuteAction(ctx, &host.ActionExecutor{
			Identifier: ActionFolder1,
			Context:    host.ActionContext{ProjectName: "demo", EntityType: host.EntityFolder},
		})
		if host.StatusOf(err) != 400 {
			t.Errorf("status = %d, err = %v", host.StatusOf(err), err)
		}
	})

	t.Run("unknown entity type", func(t *testing.T) {
		_, err := a.ExecuteAction(ctx, &host.ActionExecutor{
			Identifier: ActionFolder1,
			Context: host.ActionContext{
				ProjectName: "demo",
				EntityType:  "version",
				EntityIDs:   []string{"v1"},
			},
		})
		if host.StatusOf(err) != 400 {
			t.Errorf("status = %d, err = %v", host.StatusOf(err), err)
		}
	})

	t.Run("missing entity", func(t *testing.T) {
		_, err := a.ExecuteAction(ctx, &host.ActionExecutor{
			Identifier: ActionTask,
			Context: host.ActionContext{
				ProjectName: "demo",
				EntityType:  host.EntityTask,
				EntityIDs:   []string{"missing"},
			},
		})
		if host.StatusOf(err) != 404 {
			t.Errorf("status = %d, err = %v", host.StatusOf(err), err)
		}
	})
}
