// Package fileresolver implements the three-tier FileResolver pipeline:
// title-regex parsing, jump-list binary parsing with AppID hashing, and a
// filesystem search fallback.
package fileresolver

import (
	"os"
	"regexp"
	"strings"
)

// TitleRegexes maps a lowercased process name (no extension) to a regex
// carrying a named "file" capture group, spec §4.3 Tier 1's static
// registry.
var TitleRegexes = map[string]*regexp.Regexp{
	"notepad":  regexp.MustCompile(`^(?P<file>.+) - Notepad$`),
	"winword":  regexp.MustCompile(`^(?P<file>.+) - Word$`),
	"excel":    regexp.MustCompile(`^(?P<file>.+) - Excel$`),
	"powerpnt": regexp.MustCompile(`^(?P<file>.+) - PowerPoint$`),
	"code":     regexp.MustCompile(`^(?P<file>.+) - Visual Studio Code$`),
	"cursor":   regexp.MustCompile(`^(?P<file>.+) - Cursor$`),
	"acrord32": regexp.MustCompile(`^(?P<file>.+) - Adobe Acrobat Reader.*$`),
	"notepad++": regexp.MustCompile(`^(?P<file>.+) - Notepad\+\+.*$`),
}

// decorationCutset is the set of surrounding decoration characters stripped
// from a title-regex capture before it is treated as a candidate path
// (spec §4.3: "*", "•", "●", whitespace).
const decorationCutset = " \t*•●"

// TitleParseResult is the outcome of Tier 1.
type TitleParseResult struct {
	Path       string
	Confidence int
	Source     string
	IsBareName bool
}

// statFn is overridable in tests.
var statFn = os.Stat

// ParseTitle runs Tier 1 against processName/title. It returns
// (result, true) on any match (even a zero-confidence one is reported as
// "no match" per spec: "otherwise return (null, 0, NONE)" is represented
// here as ok=false).
func ParseTitle(processName, title string) (TitleParseResult, bool) {
	re, ok := TitleRegexes[strings.ToLower(processName)]
	if !ok {
		return TitleParseResult{}, false
	}
	m := re.FindStringSubmatch(title)
	if m == nil {
		return TitleParseResult{}, false
	}
	idx := re.SubexpIndex("file")
	if idx < 0 || idx >= len(m) {
		return TitleParseResult{}, false
	}
	captured := strings.Trim(m[idx], decorationCutset)
	if captured == "" {
		return TitleParseResult{}, false
	}

	if isAbsolutePath(captured) {
		if info, err := statFn(captured); err == nil && !info.IsDir() {
			return TitleParseResult{Path: captured, Confidence: 90, Source: "TITLE_PARSE"}, true
		}
		return TitleParseResult{}, false
	}

	if !strings.ContainsAny(captured, `\/`) {
		return TitleParseResult{Path: captured, Confidence: 40, Source: "TITLE_PARSE", IsBareName: true}, true
	}

	return TitleParseResult{}, false
}

func isAbsolutePath(p string) bool {
	if len(p) >= 3 && p[1] == ':' && (p[2] == '\\' || p[2] == '/') {
		return true
	}
	return strings.HasPrefix(p, `\\`)
}
