package fileresolver

import (
	"path/filepath"
	"strings"

	"github.com/marvintrvl/windowanchor/internal/model"
)

// confidenceShortCircuit is the threshold at which the pipeline stops
// trying lower tiers (spec §4.3: "a high-confidence hit from an earlier
// tier is never second-guessed by a later one").
const confidenceShortCircuit = 80

// explorerFolderLookup is swappable so non-Windows builds and tests can
// run the pipeline without a live COM server.
var explorerFolderLookup func(hwnd uintptr) (string, error)

// Resolution is the outcome of running the full FileResolver pipeline
// against one window.
type Resolution struct {
	FilePath   string
	Confidence int
	Source     model.FileSource
}

// Resolve runs the three-tier FileResolver pipeline against a single
// window: Explorer fast path, title-regex parsing, jump-list lookup, then
// filesystem search, stopping as soon as a tier clears
// confidenceShortCircuit (spec §4.3/§4.4).
func Resolve(hwnd uintptr, isExplorer bool, processName, executablePath, title, homeDir string, jumplist *Index) Resolution {
	if isExplorer && explorerFolderLookup != nil {
		if path, err := explorerFolderLookup(hwnd); err == nil && path != "" {
			return Resolution{FilePath: path, Confidence: 95, Source: model.SourceExplorerFolder}
		}
	}

	if result, ok := ParseTitle(processName, title); ok {
		if result.Confidence >= confidenceShortCircuit {
			return Resolution{FilePath: result.Path, Confidence: result.Confidence, Source: model.SourceTitleParse}
		}
		if jumplist != nil && result.IsBareName {
			if resolved := resolveBareNameViaJumplist(jumplist, executablePath, result.Path); resolved != "" {
				return Resolution{FilePath: resolved, Confidence: 90, Source: model.SourceJumplistExact}
			}
		}
	}

	if jumplist != nil {
		recent := jumplist.GetRecentFilesForApp(executablePath, 30)
		if match := bestTitleMatch(recent, title); match != "" {
			return Resolution{FilePath: match, Confidence: 80, Source: model.SourceJumplist}
		}
	}

	if homeDir != "" {
		candidates := titleCandidateBaseNames(title)
		for _, name := range candidates {
			if path, ok := ResolveBySearch(homeDir, name); ok {
				return Resolution{FilePath: path, Confidence: 85, Source: model.SourceFileSearch}
			}
		}
	}

	return Resolution{Source: model.SourceNone}
}

// resolveBareNameViaJumplist looks for a jump-list candidate whose base
// name matches a Tier 1 bare-filename hit, promoting its confidence
// because the jump list confirms the file actually exists and was
// recently opened by this exact executable.
func resolveBareNameViaJumplist(idx *Index, executablePath, bareName string) string {
	candidates := idx.GetRecentFilesForApp(executablePath, 50)
	target := strings.ToLower(bareName)
	for _, c := range candidates {
		if strings.ToLower(filepath.Base(c)) == target {
			return c
		}
	}
	return ""
}

// bestTitleMatch keeps the jump-list candidates whose file name or file
// stem (without extension, length >= 3) appears as a case-insensitive
// substring of the window title, and returns the one with the longest
// matching stem, preferring a more specific match over an ambiguous one
// when a jump list holds several documents of the same kind (spec §4.3
// Tier 2).
func bestTitleMatch(candidates []string, title string) string {
	lowerTitle := strings.ToLower(title)
	best, bestLen := "", 0
	for _, c := range candidates {
		base := filepath.Base(c)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		lowerStem := strings.ToLower(stem)
		if len(lowerStem) < 3 {
			continue
		}
		if !strings.Contains(lowerTitle, strings.ToLower(base)) && !strings.Contains(lowerTitle, lowerStem) {
			continue
		}
		if len(lowerStem) > bestLen {
			best, bestLen = c, len(lowerStem)
		}
	}
	return best
}

// titleCandidateBaseNames extracts plausible bare file names from a
// window title for Tier 3's last-resort search, stripping the same
// decoration Tier 1 strips plus a trailing " - <app name>" suffix when
// present.
func titleCandidateBaseNames(title string) []string {
	trimmed := strings.Trim(title, decorationCutset)
	if trimmed == "" {
		return nil
	}
	if idx := strings.LastIndex(trimmed, " - "); idx > 0 {
		trimmed = trimmed[:idx]
	}
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" {
		return nil
	}
	return []string{trimmed}
}

// SetExplorerFolderLookup installs the platform-specific Explorer COM
// lookup. Windows builds call this during bootstrap; tests may install a
// fake.
func SetExplorerFolderLookup(fn func(hwnd uintptr) (string, error)) {
	explorerFolderLookup = fn
}
