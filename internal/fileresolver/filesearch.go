package fileresolver

import (
	"os"
	"path/filepath"
	"strings"
)

// SearchRoots returns the directories Tier 3 searches, in order: the
// user's Documents, Desktop, and Downloads folders, followed by up to
// three OneDrive roots discovered under the user's home directory (spec
// §4.3 Tier 3). Folders that do not exist are silently omitted rather
// than treated as an error — placeholder/offline OneDrive folders are a
// normal configuration, not a fault.
func SearchRoots(homeDir string) []string {
	var roots []string
	for _, name := range []string{"Documents", "Desktop", "Downloads"} {
		p := filepath.Join(homeDir, name)
		if dirExists(p) {
			roots = append(roots, p)
		}
	}

	entries, err := os.ReadDir(homeDir)
	if err != nil {
		return roots
	}
	found := 0
	for _, e := range entries {
		if found >= 3 {
			break
		}
		if !e.IsDir() {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name()), "onedrive") {
			p := filepath.Join(homeDir, e.Name())
			roots = append(roots, p)
			found++
		}
	}
	return roots
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// SearchByBaseName walks every root directory-by-directory looking for
// files named baseName, tolerating directories it cannot read (permission
// errors, offline placeholder folders), and returns every match found.
// Tier 3 only accepts a result when there is exactly one match across all
// roots (spec §4.3: "ambiguous matches are discarded, not guessed at").
func SearchByBaseName(roots []string, baseName string) []string {
	var matches []string
	target := strings.ToLower(baseName)
	for _, root := range roots {
		walkTolerant(root, target, &matches)
	}
	return matches
}

func walkTolerant(dir, target string, matches *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		if e.IsDir() {
			walkTolerant(full, target, matches)
			continue
		}
		if strings.ToLower(e.Name()) == target {
			*matches = append(*matches, full)
		}
	}
}

// ResolveBySearch runs Tier 3 for baseName and returns (path, true) only
// when exactly one match exists across every search root; otherwise it
// returns ("", false).
func ResolveBySearch(homeDir, baseName string) (string, bool) {
	roots := SearchRoots(homeDir)
	matches := SearchByBaseName(roots, baseName)
	if len(matches) != 1 {
		return "", false
	}
	return matches[0], true
}
