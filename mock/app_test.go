package mock

import (
	"context"
	"strings"
	"testing"

	"github.com/GoCodeAlone/prodtrack-example-addon/host"
)

func TestApplicationGetService(t *testing.T) {
	app := NewApplication()
	h := NewHost()
	if err := app.RegisterService("host.entities", host.EntityService(h)); err != nil {
		t.Fatalf("RegisterService: %v", err)
	}

	var svc host.EntityService
	if err := app.GetService("host.entities", &svc); err != nil {
		t.Fatalf("GetService: %v", err)
	}
	if svc == nil {
		t.Fatal("service not assigned")
	}

	if err := app.GetService("missing", &svc); err == nil {
		t.Error("unknown service resolved")
	}

	var wrongType *Logger
	if err := app.GetService("host.entities", &wrongType); err == nil {
		t.Error("incompatible target accepted")
	}

	if err := app.GetService("host.entities", svc); err == nil {
		t.Error("non-pointer target accepted")
	}
}

func TestHostDenyUser(t *testing.T) {
	h := NewHost()
	h.AddFolder("p", &host.Folder{FolderID: "f1", FolderName: "a", FolderType: "Asset"})
	h.DenyUser("pariah")

	f, err := h.LoadFolder(context.Background(), "p", "f1")
	if err != nil {
		t.Fatalf("LoadFolder: %v", err)
	}

	err = h.EnsureReadAccess(context.Background(), host.User{Name: "pariah"}, "p", f)
	if host.StatusOf(err) != 403 {
		t.Errorf("denied user error = %v", err)
	}
	if err := h.EnsureReadAccess(context.Background(), host.User{Name: "ok"}, "p", f); err != nil {
		t.Errorf("allowed user rejected: %v", err)
	}
}

func TestLoggerRecords(t *testing.T) {
	l := NewLogger()
	l.Info("hello", "k", "v")
	l.Error("boom")

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if !strings.HasPrefix(entries[0], "INFO") || !strings.Contains(entries[0], "hello") {
		t.Errorf("entry = %q", entries[0])
	}
}
