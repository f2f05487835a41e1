// Package restore implements the RestoreEngine's five-phase
// match/launch/reposition state machine and its context-switch variant
// (spec §4.5).
package restore

import (
	"path/filepath"
	"strings"

	"github.com/marvintrvl/windowanchor/internal/model"
)

// LiveWindowView is the subset of a live window RestoreEngine needs to
// match against saved entries, decoupled from any concrete window handle
// type so this file has no platform build tag.
type LiveWindowView struct {
	Handle          uintptr
	ExecutablePath  string
	WindowClassName string
	Title           string
}

// titlePrefixLen is the number of bytes of a saved title snippet used by
// the exe+title-prefix matching tier (spec §4.5).
const titlePrefixLen = 10

// matchResult pairs a matched entry index with the live handle it
// consumed.
type matchResult struct {
	entryIndex int
	handle     uintptr
	documentAware bool
}

// matchPass runs the three-tier matching algorithm across entries against
// live, honoring the invariant that a live handle is consumed by at most
// one entry and an entry is matched at most once (spec §5, §8 invariant
// 4). alreadyMatched holds entry indices matched in a previous pass and
// is not reconsidered. Returns matches found in this pass.
func matchPass(entries []model.WorkspaceEntry, live []LiveWindowView, alreadyMatched map[int]bool) []matchResult {
	usedHandles := make(map[uintptr]bool)
	var results []matchResult

	for i, entry := range entries {
		if alreadyMatched[i] {
			continue
		}
		if entry.Position.ExecutablePath == "" {
			continue
		}

		if h, ok := matchDocumentAware(entry, live, usedHandles); ok {
			usedHandles[h] = true
			results = append(results, matchResult{entryIndex: i, handle: h, documentAware: true})
			continue
		}
		if h, ok := matchExeAndClass(entry, live, usedHandles); ok {
			usedHandles[h] = true
			results = append(results, matchResult{entryIndex: i, handle: h})
			continue
		}
		if h, ok := matchExeAndTitlePrefix(entry, live, usedHandles); ok {
			usedHandles[h] = true
			results = append(results, matchResult{entryIndex: i, handle: h})
			continue
		}
	}

	return results
}

func matchDocumentAware(entry model.WorkspaceEntry, live []LiveWindowView, used map[uintptr]bool) (uintptr, bool) {
	if entry.LaunchArg == "" {
		return 0, false
	}
	stem := strings.ToLower(fileStem(entry.LaunchArg))
	if stem == "" {
		return 0, false
	}
	for _, w := range live {
		if used[w.Handle] {
			continue
		}
		if !strings.EqualFold(w.ExecutablePath, entry.Position.ExecutablePath) {
			continue
		}
		if strings.Contains(strings.ToLower(w.Title), stem) {
			return w.Handle, true
		}
	}
	return 0, false
}

func matchExeAndClass(entry model.WorkspaceEntry, live []LiveWindowView, used map[uintptr]bool) (uintptr, bool) {
	for _, w := range live {
		if used[w.Handle] {
			continue
		}
		if strings.EqualFold(w.ExecutablePath, entry.Position.ExecutablePath) &&
			w.WindowClassName == entry.Position.WindowClassName {
			return w.Handle, true
		}
	}
	return 0, false
}

func matchExeAndTitlePrefix(entry model.WorkspaceEntry, live []LiveWindowView, used map[uintptr]bool) (uintptr, bool) {
	prefix := entry.Position.TitleSnippet
	if len(prefix) > titlePrefixLen {
		prefix = prefix[:titlePrefixLen]
	}
	prefix = strings.ToLower(prefix)
	if prefix == "" {
		return 0, false
	}
	for _, w := range live {
		if used[w.Handle] {
			continue
		}
		if !strings.EqualFold(w.ExecutablePath, entry.Position.ExecutablePath) {
			continue
		}
		title := w.Title
		if len(title) > len(prefix) {
			title = title[:len(prefix)]
		}
		if strings.ToLower(title) == prefix {
			return w.Handle, true
		}
	}
	return 0, false
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
