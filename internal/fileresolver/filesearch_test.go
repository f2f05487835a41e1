package fileresolver

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSearchRoots_SkipsMissingFolders(t *testing.T) {
	home := t.TempDir()
	if err := os.Mkdir(filepath.Join(home, "Desktop"), 0o755); err != nil {
		t.Fatal(err)
	}
	roots := SearchRoots(home)
	if len(roots) != 1 || roots[0] != filepath.Join(home, "Desktop") {
		t.Fatalf("SearchRoots() = %v, want only Desktop", roots)
	}
}

func TestSearchRoots_FindsUpToThreeOneDriveRoots(t *testing.T) {
	home := t.TempDir()
	for _, name := range []string{"OneDrive", "OneDrive - Work", "OneDrive - Personal", "OneDrive - Extra"} {
		if err := os.Mkdir(filepath.Join(home, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	roots := SearchRoots(home)
	count := 0
	for _, r := range roots {
		if filepath.Dir(r) == home {
			count++
		}
	}
	if count != 3 {
		t.Fatalf("expected exactly 3 OneDrive roots, got %d (%v)", count, roots)
	}
}

func TestResolveBySearch_ExactlyOneMatch(t *testing.T) {
	home := t.TempDir()
	docs := filepath.Join(home, "Documents")
	if err := os.MkdirAll(filepath.Join(docs, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(docs, "sub", "notes.txt")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, ok := ResolveBySearch(home, "notes.txt")
	if !ok || path != target {
		t.Fatalf("ResolveBySearch() = (%q, %v), want (%q, true)", path, ok, target)
	}
}

func TestResolveBySearch_AmbiguousMatchDiscarded(t *testing.T) {
	home := t.TempDir()
	docs := filepath.Join(home, "Documents")
	desktop := filepath.Join(home, "Desktop")
	if err := os.MkdirAll(docs, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(desktop, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{docs, desktop} {
		if err := os.WriteFile(filepath.Join(dir, "dup.txt"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	_, ok := ResolveBySearch(home, "dup.txt")
	if ok {
		t.Fatalf("ResolveBySearch() should discard ambiguous matches")
	}
}
