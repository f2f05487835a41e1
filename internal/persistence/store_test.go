package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marvintrvl/windowanchor/internal/model"
)

func TestSanitizeName_StripsForbiddenChars(t *testing.T) {
	got := SanitizeName(`we:ird/na*me?`)
	if got != "weirdname" {
		t.Fatalf("SanitizeName() = %q", got)
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	snap := model.WorkspaceSnapshot{
		Name:               "solo",
		MonitorFingerprint: "abcd1234",
		SavedAt:            time.Now().UTC().Truncate(time.Second),
		SavedWithFiles:     false,
		Monitors:           []model.Monitor{},
		Entries: []model.WorkspaceEntry{
			{Position: model.WindowRecord{ExecutablePath: `C:\notepad.exe`}, Source: model.SourceNone},
		},
	}
	if err := store.Save(snap); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load("solo")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != snap.Name || loaded.MonitorFingerprint != snap.MonitorFingerprint {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
	if len(loaded.Entries) != 1 || loaded.Entries[0].Position.ExecutablePath != `C:\notepad.exe` {
		t.Fatalf("entries mismatch: %+v", loaded.Entries)
	}
}

func TestStore_ListRenameDelete(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	snap := model.WorkspaceSnapshot{Name: "work", Monitors: []model.Monitor{}}
	if err := store.Save(snap); err != nil {
		t.Fatal(err)
	}

	names, err := store.List()
	if err != nil || len(names) != 1 || names[0] != "work" {
		t.Fatalf("List() = %v, %v", names, err)
	}

	if err := store.Rename("work", "renamed"); err != nil {
		t.Fatal(err)
	}
	names, _ = store.List()
	if len(names) != 1 || names[0] != "renamed" {
		t.Fatalf("after rename, List() = %v", names)
	}

	if err := store.Delete("renamed"); err != nil {
		t.Fatal(err)
	}
	names, _ = store.List()
	if len(names) != 0 {
		t.Fatalf("after delete, List() = %v", names)
	}
}

func TestStore_LastFingerprint(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if got := store.LastFingerprint(); got != "" {
		t.Fatalf("LastFingerprint() before write = %q, want empty", got)
	}
	if err := store.SetLastFingerprint("deadbeef"); err != nil {
		t.Fatal(err)
	}
	if got := store.LastFingerprint(); got != "deadbeef" {
		t.Fatalf("LastFingerprint() = %q", got)
	}
}

func TestMigrateLegacyProfiles(t *testing.T) {
	root := t.TempDir()
	legacyDir := filepath.Join(root, legacyProfileDirName)
	if err := os.MkdirAll(legacyDir, 0o755); err != nil {
		t.Fatal(err)
	}

	legacyJSON := `{
		"name": "Old Layout",
		"fingerprint": "ffeeddcc",
		"lastSaved": "2024-01-02T03:04:05Z",
		"windows": [{"executablePath": "C:\\a.exe"}]
	}`
	if err := os.WriteFile(filepath.Join(legacyDir, "layout1.profile.json"), []byte(legacyJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(root, migrationSentinel)); err != nil {
		t.Fatalf("expected migration sentinel to exist: %v", err)
	}

	names, err := store.List()
	if err != nil || len(names) != 1 {
		t.Fatalf("List() after migration = %v, %v", names, err)
	}

	snap, err := store.Load(names[0])
	if err != nil {
		t.Fatal(err)
	}
	if snap.SavedWithFiles {
		t.Fatalf("migrated snapshot must have savedWithFiles == false")
	}
	if len(snap.Monitors) != 0 {
		t.Fatalf("migrated snapshot must have an empty monitor list, got %v", snap.Monitors)
	}
	if len(snap.Entries) != 1 || snap.Entries[0].Position.ExecutablePath != `C:\a.exe` {
		t.Fatalf("migrated entries mismatch: %+v", snap.Entries)
	}

	// Re-opening must not re-run migration (idempotent, spec invariant 5).
	store2, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	defer store2.Close()
	names2, _ := store2.List()
	if len(names2) != 1 {
		t.Fatalf("re-open must not duplicate migrated snapshots, got %v", names2)
	}
}
