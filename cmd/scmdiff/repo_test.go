package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRepository_FromRepoRoot(t *testing.T) {
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	defer os.Chdir(origDir)

	th := NewTestHelper(t)
	th.InitRepo()
	th.Chdir()

	repo, err := findRepository()
	if err != nil {
		t.Fatalf("findRepository failed: %v", err)
	}
	if repo == nil {
		t.Fatal("expected a non-nil repository")
	}
}

func TestFindRepository_FromNestedSubdirectory(t *testing.T) {
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	defer os.Chdir(origDir)

	th := NewTestHelper(t)
	th.InitRepo()

	nested := filepath.Join(th.TempDir(), "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("failed to chdir to %s: %v", nested, err)
	}

	repo, err := findRepository()
	if err != nil {
		t.Fatalf("findRepository failed from nested subdirectory: %v", err)
	}
	if repo == nil {
		t.Fatal("expected a non-nil repository")
	}
}

func TestFindRepository_NoRepositoryReturnsError(t *testing.T) {
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	defer os.Chdir(origDir)

	th := NewTestHelper(t)
	th.Chdir()

	if _, err := findRepository(); err == nil {
		t.Error("expected an error when no repository is present, got nil")
	}
}
