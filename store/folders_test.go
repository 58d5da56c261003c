package store

import (
	"context"
	"errors"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	valid := []string{"demo", "demo_2024", "_internal", "Project", "a"}
	for _, name := range valid {
		if err := validateIdentifier(name); err != nil {
			t.Errorf("validateIdentifier(%q): %v", name, err)
		}
	}

	invalid := []string{
		"",
		"2024demo",
		"demo-project",
		"demo project",
		"demo;drop table",
		`demo"`,
		"demo.folders",
	}
	for _, name := range invalid {
		if err := validateIdentifier(name); err == nil {
			t.Errorf("validateIdentifier(%q) accepted an unsafe identifier", name)
		}
	}
}

func TestRandomFolderIDRejectsUnsafeProject(t *testing.T) {
	// The identifier check must fire before any query is built, so a nil
	// pool never gets touched.
	s := NewPGFolderStore(nil)
	_, err := s.RandomFolderID(context.Background(), "demo;--", "Asset")
	if err == nil {
		t.Fatal("unsafe project name accepted")
	}
	if errors.Is(err, ErrProjectNotFound) || errors.Is(err, ErrNoFolder) {
		t.Errorf("unsafe identifier mapped to a data error: %v", err)
	}
}

func TestFolderTypesRejectsUnsafeProject(t *testing.T) {
	s := NewPGFolderStore(nil)
	if _, err := s.FolderTypes(context.Background(), `x" or 1=1`); err == nil {
		t.Fatal("unsafe project name accepted")
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	if errors.Is(ErrProjectNotFound, ErrNoFolder) {
		t.Error("sentinel errors must be distinguishable")
	}
}
