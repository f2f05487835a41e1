// Package persistence implements the on-disk layout of workspace
// snapshots described in spec §4.6: one JSON file per snapshot, a last
// fingerprint marker, an externally-owned settings blob, a rolling log,
// and a one-time legacy migration guarded by a sentinel file.
package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/marvintrvl/windowanchor/internal/model"
)

const (
	workspacesDirName    = "workspaces"
	fingerprintFileName  = "last_fingerprint.txt"
	settingsFileName     = "settings.json"
	migrationSentinel    = ".migrated_v2"
	appLogFileName       = "app.log"
	workspaceFileSuffix  = ".workspace.json"
	legacyProfileDirName = "profiles"
	legacyProfileSuffix  = ".profile.json"
)

// forbiddenFilenameChars are stripped (not replaced) during sanitization
// (spec §4.6: "Replace each forbidden-in-filename character with empty").
const forbiddenFilenameChars = `<>:"/\|?*`

// Store is the Persistence component. All reads parse straight from
// disk and every write fully overwrites its target file — there is no
// in-memory cache (spec §5).
type Store struct {
	rootDir string
	Logger  *Logger
}

// Open constructs a Store rooted at rootDir (normally the per-user
// WindowAnchor application-data directory), running the legacy migration
// exactly once if needed, and opens the rolling app.log.
func Open(rootDir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(rootDir, workspacesDirName), 0o755); err != nil {
		return nil, fmt.Errorf("creating workspaces directory: %w", err)
	}

	logger, err := NewLogger(filepath.Join(rootDir, appLogFileName))
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}

	s := &Store{rootDir: rootDir, Logger: logger}
	if err := s.migrateLegacyProfiles(); err != nil {
		logger.Log("ERROR", fmt.Sprintf("legacy migration failed: %v", err))
	}
	return s, nil
}

// SanitizeName strips every character in forbiddenFilenameChars from
// name.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(forbiddenFilenameChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) workspacePath(name string) string {
	return filepath.Join(s.rootDir, workspacesDirName, SanitizeName(name)+workspaceFileSuffix)
}

// Save writes snapshot to disk under its sanitized name, fully
// overwriting any existing file.
func (s *Store) Save(snapshot model.WorkspaceSnapshot) error {
	data, err := sonic.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	path := s.workspacePath(snapshot.Name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Load reads the snapshot saved under name.
func (s *Store) Load(name string) (model.WorkspaceSnapshot, error) {
	var snap model.WorkspaceSnapshot
	data, err := os.ReadFile(s.workspacePath(name))
	if err != nil {
		return snap, fmt.Errorf("reading workspace %q: %w", name, err)
	}
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("parsing workspace %q: %w", name, err)
	}
	return snap, nil
}

// List returns every saved workspace's display name, derived from its
// sanitized filename, sorted alphabetically.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.rootDir, workspacesDirName))
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), workspaceFileSuffix) {
			names = append(names, strings.TrimSuffix(e.Name(), workspaceFileSuffix))
		}
	}
	return names, nil
}

// Rename moves the workspace file for oldName to newName's sanitized
// path.
func (s *Store) Rename(oldName, newName string) error {
	oldPath := s.workspacePath(oldName)
	newPath := s.workspacePath(newName)
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("renaming workspace %q to %q: %w", oldName, newName, err)
	}
	return nil
}

// Delete removes the workspace file for name.
func (s *Store) Delete(name string) error {
	if err := os.Remove(s.workspacePath(name)); err != nil {
		return fmt.Errorf("deleting workspace %q: %w", name, err)
	}
	return nil
}

// LastFingerprint reads the trimmed contents of last_fingerprint.txt, or
// "" if it does not exist yet.
func (s *Store) LastFingerprint() string {
	data, err := os.ReadFile(filepath.Join(s.rootDir, fingerprintFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetLastFingerprint overwrites last_fingerprint.txt.
func (s *Store) SetLastFingerprint(fingerprint string) error {
	path := filepath.Join(s.rootDir, fingerprintFileName)
	if err := os.WriteFile(path, []byte(fingerprint+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing last fingerprint: %w", err)
	}
	return nil
}

// SettingsBlob reads the raw settings.json bytes, unparsed — its schema
// is owned by external configuration, not core (spec §4.6).
func (s *Store) SettingsBlob() ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.rootDir, settingsFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return data, nil
}

// SetSettingsBlob overwrites settings.json with raw bytes.
func (s *Store) SetSettingsBlob(data []byte) error {
	path := filepath.Join(s.rootDir, settingsFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// legacyProfile mirrors the pre-v2 on-disk profile shape closely enough
// to migrate it: a display name, a monitor fingerprint, a last-saved
// timestamp, and a flat list of window records.
type legacyProfile struct {
	Name       string              `json:"name"`
	Fingerprint string             `json:"fingerprint"`
	LastSaved  time.Time           `json:"lastSaved"`
	Windows    []model.WindowRecord `json:"windows"`
}

// migrateLegacyProfiles runs the one-time conversion of legacy
// profiles/*.profile.json files into snapshots, writing the sentinel
// afterward so subsequent launches skip it (spec §4.6, invariant 5).
func (s *Store) migrateLegacyProfiles() error {
	sentinelPath := filepath.Join(s.rootDir, migrationSentinel)
	if _, err := os.Stat(sentinelPath); err == nil {
		return nil
	}

	legacyDir := filepath.Join(s.rootDir, legacyProfileDirName)
	entries, err := os.ReadDir(legacyDir)
	if os.IsNotExist(err) {
		return s.writeMigrationSentinel(sentinelPath)
	}
	if err != nil {
		return fmt.Errorf("reading legacy profiles directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), legacyProfileSuffix) {
			continue
		}
		if err := s.migrateOneLegacyProfile(filepath.Join(legacyDir, e.Name())); err != nil {
			s.Logger.Log("ERROR", fmt.Sprintf("migrating %s: %v", e.Name(), err))
		}
	}

	return s.writeMigrationSentinel(sentinelPath)
}

func (s *Store) migrateOneLegacyProfile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var legacy legacyProfile
	if err := sonic.Unmarshal(data, &legacy); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	name := legacy.Name
	if name == "" {
		prefix := legacy.Fingerprint
		if len(prefix) > 6 {
			prefix = prefix[:6]
		}
		name = "Monitor Config " + prefix
	}

	entries := make([]model.WorkspaceEntry, 0, len(legacy.Windows))
	for _, w := range legacy.Windows {
		entries = append(entries, model.WorkspaceEntry{
			Position: w,
			Source:   model.SourceNone,
		})
	}

	snapshot := model.WorkspaceSnapshot{
		Name:               name,
		MonitorFingerprint: legacy.Fingerprint,
		SavedAt:            legacy.LastSaved,
		SavedWithFiles:     false,
		Monitors:           []model.Monitor{},
		Entries:            entries,
	}

	return s.Save(snapshot)
}

func (s *Store) writeMigrationSentinel(path string) error {
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return fmt.Errorf("writing migration sentinel: %w", err)
	}
	return nil
}

// Close releases the store's open resources.
func (s *Store) Close() error {
	return s.Logger.Close()
}
