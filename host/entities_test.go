package host

import (
	"context"
	"testing"
)

func TestFolderPayloadFiltersData(t *testing.T) {
	f := &Folder{
		FolderID:   "f1",
		FolderName: "assets",
		FolderType: "Asset",
		Data:       map[string]any{"note": "internal"},
	}

	regular := f.Payload(User{Name: "artist"})
	if _, ok := regular["data"]; ok {
		t.Error("regular user received entity data")
	}

	admin := f.Payload(User{Name: "boss", IsAdmin: true})
	if _, ok := admin["data"]; !ok {
		t.Error("admin did not receive entity data")
	}

	service := f.Payload(User{Name: "svc", IsService: true})
	if _, ok := service["data"]; !ok {
		t.Error("service user did not receive entity data")
	}
}

func TestTaskPayloadFiltersAssignees(t *testing.T) {
	task := &Task{
		TaskID:    "t1",
		TaskName:  "comp",
		TaskType:  "Compositing",
		FolderID:  "f1",
		Assignees: []string{"artist1", "artist2"},
	}

	if _, ok := task.Payload(User{Name: "outsider"})["assignees"]; ok {
		t.Error("non-assignee saw the assignee list")
	}
	if _, ok := task.Payload(User{Name: "artist1"})["assignees"]; !ok {
		t.Error("assignee did not see the assignee list")
	}
	if _, ok := task.Payload(User{Name: "boss", IsAdmin: true})["assignees"]; !ok {
		t.Error("admin did not see the assignee list")
	}
}

func TestEntityInterface(t *testing.T) {
	var _ Entity = &Folder{}
	var _ Entity = &Task{}

	f := &Folder{FolderID: "f1", FolderName: "assets"}
	if f.Type() != EntityFolder || f.ID() != "f1" || f.Name() != "assets" {
		t.Errorf("folder identity = %s/%s/%s", f.Type(), f.ID(), f.Name())
	}
}

type stubEntityService struct {
	folder *Folder
	task   *Task
}

func (s *stubEntityService) LoadFolder(context.Context, string, string) (*Folder, error) {
	return s.folder, nil
}
func (s *stubEntityService) LoadTask(context.Context, string, string) (*Task, error) {
	return s.task, nil
}
func (s *stubEntityService) EnsureReadAccess(context.Context, User, string, Entity) error {
	return nil
}

func TestLoadEntityDispatch(t *testing.T) {
	svc := &stubEntityService{
		folder: &Folder{FolderID: "f1"},
		task:   &Task{TaskID: "t1"},
	}
	ctx := context.Background()

	e, err := LoadEntity(ctx, svc, EntityFolder, "p", "f1")
	if err != nil || e.ID() != "f1" {
		t.Errorf("folder dispatch: %v, %v", e, err)
	}
	e, err = LoadEntity(ctx, svc, EntityTask, "p", "t1")
	if err != nil || e.ID() != "t1" {
		t.Errorf("task dispatch: %v, %v", e, err)
	}
	if _, err := LoadEntity(ctx, svc, "version", "p", "v1"); StatusOf(err) != 400 {
		t.Errorf("unknown type error = %v", err)
	}
}

func TestUserContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := UserFromContext(ctx); ok {
		t.Error("empty context yielded a user")
	}

	ctx = ContextWithUser(ctx, User{Name: "artist"})
	u, ok := UserFromContext(ctx)
	if !ok || u.Name != "artist" {
		t.Errorf("UserFromContext = %+v, %v", u, ok)
	}
}
