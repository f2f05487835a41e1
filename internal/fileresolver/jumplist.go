package fileresolver

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// jumplistDir is overridable in tests.
var jumplistDir = func() string {
	appData := os.Getenv("APPDATA")
	return filepath.Join(appData, `Microsoft\Windows\Recent\AutomaticDestinations`)
}

// extensionToProcessName is the static table spec §4.3.1's process-name
// index is keyed from: "a static table covering Office apps, Acrobat,
// Notepad, Notepad++". It maps a document extension to the canonical
// process name of the application that owns it, independent of whatever
// executable actually wrote the jump list (the click-to-run case: Office
// registers its jump lists under a wrapper AppID, not winword.exe's own).
var extensionToProcessName = map[string]string{
	".doc":  "winword",
	".docx": "winword",
	".docm": "winword",
	".dotx": "winword",
	".rtf":  "winword",
	".xls":  "excel",
	".xlsx": "excel",
	".xlsm": "excel",
	".csv":  "excel",
	".ppt":  "powerpnt",
	".pptx": "powerpnt",
	".pptm": "powerpnt",
	".pdf":  "acrord32",
	".txt":  "notepad",
	".log":  "notepad++",
	".ini":  "notepad++",
	".cfg":  "notepad++",
}

// Index is the in-memory jump-list lookup built once per snapshot (spec
// §4.3.1: "built once and reused across every window in a snapshot, not
// rebuilt per window"). It holds three parallel maps keyed by the ways a
// caller might identify an application: its AppID hash computed directly
// from the executable path, its AppID hash computed from a handler's
// executable path (for apps that register jump lists under a different
// binary than the one the user launches, e.g. click-to-run Office), and
// its bare process name as a last-resort key.
type Index struct {
	byDirectHash  map[string][]LnkStream
	byHandlerHash map[string][]LnkStream
	byProcessName map[string][]LnkStream
}

// BuildIndex scans every *.automaticDestinations-ms file in the jump-list
// directory and extracts its Shell Link streams, then registers each
// file's streams under all three keys so GetRecentFilesForApp can resolve
// regardless of which AppID an application actually used.
func BuildIndex(executables []string, handlerExecutables map[string]string) (*Index, error) {
	idx := &Index{
		byDirectHash:  make(map[string][]LnkStream),
		byHandlerHash: make(map[string][]LnkStream),
		byProcessName: make(map[string][]LnkStream),
	}

	entries, err := os.ReadDir(jumplistDir())
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, err
	}

	hashToStreams := make(map[string][]LnkStream, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".automaticdestinations-ms") {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		stem = strings.ToLower(stem)
		full := filepath.Join(jumplistDir(), name)
		streams, err := ExtractJumplistStreams(full)
		if err != nil {
			continue
		}
		hashToStreams[stem] = streams
	}

	for _, exe := range executables {
		hash := ComputeAppIDHash(DefaultAppID(exe))
		if streams, ok := hashToStreams[hash]; ok {
			idx.byDirectHash[strings.ToLower(exe)] = streams
		}
	}

	for exe, handlerExe := range handlerExecutables {
		hash := ComputeAppIDHash(DefaultAppID(handlerExe))
		if streams, ok := hashToStreams[hash]; ok {
			idx.byHandlerHash[strings.ToLower(exe)] = streams
		}
	}

	// Process-name index: derived from the documents actually found inside
	// each jump-list file, not from any known executable. This is what lets
	// a click-to-run Office jump list (stored under a wrapper AppID) still
	// resolve to "winword" from winword.exe's own process name.
	stems := make([]string, 0, len(hashToStreams))
	for stem := range hashToStreams {
		stems = append(stems, stem)
	}
	sort.Strings(stems)
	for _, stem := range stems {
		streams := hashToStreams[stem]
		proc := canonicalProcessNameForStreams(streams)
		if proc == "" {
			continue
		}
		if _, exists := idx.byProcessName[proc]; !exists {
			idx.byProcessName[proc] = streams
		}
	}

	return idx, nil
}

func processNameFromPath(exe string) string {
	base := filepath.Base(exe)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base)
}

// canonicalProcessNameForStreams parses every stream's Shell Link target,
// maps its extension through extensionToProcessName, and returns the
// process name whose documents are most common in this jump-list file. An
// empty string means no stream's extension appears in the table.
func canonicalProcessNameForStreams(streams []LnkStream) string {
	counts := make(map[string]int)
	var order []string
	for _, s := range streams {
		path, err := ParseLnk(s.Data)
		if err != nil || path == "" {
			continue
		}
		proc, ok := extensionToProcessName[strings.ToLower(filepath.Ext(path))]
		if !ok {
			continue
		}
		if _, seen := counts[proc]; !seen {
			order = append(order, proc)
		}
		counts[proc]++
	}
	best, bestCount := "", 0
	for _, proc := range order {
		if counts[proc] > bestCount {
			best, bestCount = proc, counts[proc]
		}
	}
	return best
}

// GetRecentFilesForApp resolves recent documents for the executable at
// exe, trying direct AppID hash, then handler AppID hash, then bare
// process name, in that order (spec §4.3.1), and returns at most max
// candidate paths parsed from the matched streams' Shell Link payloads,
// most-recently-used first.
func (idx *Index) GetRecentFilesForApp(exe string, max int) []string {
	key := strings.ToLower(exe)
	streams, ok := idx.byDirectHash[key]
	if !ok {
		streams, ok = idx.byHandlerHash[key]
	}
	if !ok {
		streams, ok = idx.byProcessName[processNameFromPath(exe)]
	}
	if !ok {
		return nil
	}

	type candidate struct {
		path string
		name string
	}
	var candidates []candidate
	for _, s := range streams {
		path, err := ParseLnk(s.Data)
		if err != nil || path == "" {
			continue
		}
		candidates = append(candidates, candidate{path: path, name: s.Name})
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].name > candidates[j].name })

	if max > 0 && len(candidates) > max {
		candidates = candidates[:max]
	}
	paths := make([]string, len(candidates))
	for i, c := range candidates {
		paths[i] = c.path
	}
	return paths
}
