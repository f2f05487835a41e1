package fileresolver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marvintrvl/windowanchor/internal/model"
)

func TestResolve_TitleParseHighConfidenceShortCircuits(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "report.docx")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	statFn = os.Stat
	defer func() { statFn = os.Stat }()

	got := Resolve(0, false, "winword", `C:\Office\WINWORD.EXE`, target+" - Word", "", nil)
	if got.Source != model.SourceTitleParse || got.Confidence != 90 {
		t.Fatalf("got %+v, want a high-confidence title parse hit", got)
	}
}

func TestResolve_NoMatchReturnsSourceNone(t *testing.T) {
	got := Resolve(0, false, "unknownapp", `C:\x\unknownapp.exe`, "Some Random Title", "", nil)
	if got.Source != model.SourceNone {
		t.Fatalf("got %+v, want SourceNone", got)
	}
}

func TestResolve_BareNameJumplistExactHit(t *testing.T) {
	idx := &Index{
		byDirectHash: map[string][]LnkStream{
			strings.ToLower(`C:\Office\WINWORD.EXE`): {
				{Name: "1", Data: buildLnk(t, false, `C:\Docs\report.docx`, `C:\Docs\report.docx`)},
			},
		},
		byHandlerHash: map[string][]LnkStream{},
		byProcessName: map[string][]LnkStream{},
	}

	got := Resolve(0, false, "winword", `C:\Office\WINWORD.EXE`, "report.docx - Word", "", idx)
	if got.Source != model.SourceJumplistExact || got.Confidence != 90 {
		t.Fatalf("got %+v, want a confidence-90 JUMPLIST_EXACT hit", got)
	}
	if got.FilePath != `C:\Docs\report.docx` {
		t.Fatalf("got %+v, want the jump-list-resolved path", got)
	}
}

func TestResolve_JumplistTitleMatchPrefersLongestStem(t *testing.T) {
	idx := &Index{
		byDirectHash:  map[string][]LnkStream{},
		byHandlerHash: map[string][]LnkStream{},
		byProcessName: map[string][]LnkStream{
			"winword": {
				{Name: "1", Data: buildLnk(t, false, `C:\Docs\Diplomarbeit.docx`, `C:\Docs\Diplomarbeit.docx`)},
				{Name: "2", Data: buildLnk(t, false, `C:\Docs\Arbeit.docx`, `C:\Docs\Arbeit.docx`)},
			},
		},
	}

	got := Resolve(0, false, "winword", `C:\Office\WINWORD.EXE`, "Diplomarbeit.docx - Word", "", idx)
	if got.Source != model.SourceJumplist || got.Confidence != 80 {
		t.Fatalf("got %+v, want a confidence-80 jump-list hit", got)
	}
	if got.FilePath != `C:\Docs\Diplomarbeit.docx` {
		t.Fatalf("got %+v, want the longer stem to win over the shorter substring match", got)
	}
}

func TestResolve_JumplistNoTitleMatchFallsThrough(t *testing.T) {
	idx := &Index{
		byDirectHash:  map[string][]LnkStream{},
		byHandlerHash: map[string][]LnkStream{},
		byProcessName: map[string][]LnkStream{
			"winword": {
				{Name: "1", Data: buildLnk(t, false, `C:\Docs\Unrelated.docx`, `C:\Docs\Unrelated.docx`)},
			},
		},
	}

	got := Resolve(0, false, "winword", `C:\Office\WINWORD.EXE`, "Something Else - Word", "", idx)
	if got.Source != model.SourceNone {
		t.Fatalf("got %+v, want SourceNone when no jump-list candidate matches the title", got)
	}
}

func TestBestTitleMatch_RejectsShortStems(t *testing.T) {
	candidates := []string{`C:\x\a.txt`}
	if got := bestTitleMatch(candidates, "this title contains a.txt"); got != "" {
		t.Fatalf("bestTitleMatch() = %q, want empty for a stem shorter than 3 characters", got)
	}
}

func TestTitleCandidateBaseNames(t *testing.T) {
	got := titleCandidateBaseNames("report.docx - Word")
	if len(got) != 1 || got[0] != "report.docx" {
		t.Fatalf("titleCandidateBaseNames() = %v", got)
	}
}
