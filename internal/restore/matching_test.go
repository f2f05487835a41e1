package restore

import (
	"testing"

	"github.com/marvintrvl/windowanchor/internal/model"
)

func TestMatchPass_DocumentAwareTakesPriority(t *testing.T) {
	entries := []model.WorkspaceEntry{
		{
			Position:  model.WindowRecord{ExecutablePath: `C:\Word\winword.exe`, WindowClassName: "OpusApp", TitleSnippet: "a.docx - Word"},
			LaunchArg: `C:\a.docx`,
		},
	}
	live := []LiveWindowView{
		{Handle: 1, ExecutablePath: `C:\Word\winword.exe`, WindowClassName: "OpusApp", Title: "a.docx - Word"},
	}
	results := matchPass(entries, live, nil)
	if len(results) != 1 || results[0].handle != 1 || !results[0].documentAware {
		t.Fatalf("expected one document-aware match, got %+v", results)
	}
}

func TestMatchPass_HandleConsumedByAtMostOneEntry(t *testing.T) {
	entries := []model.WorkspaceEntry{
		{Position: model.WindowRecord{ExecutablePath: `C:\a.exe`, WindowClassName: "X"}},
		{Position: model.WindowRecord{ExecutablePath: `C:\a.exe`, WindowClassName: "X"}},
	}
	live := []LiveWindowView{
		{Handle: 1, ExecutablePath: `C:\a.exe`, WindowClassName: "X"},
	}
	results := matchPass(entries, live, nil)
	if len(results) != 1 {
		t.Fatalf("expected exactly one match when only one live window exists, got %+v", results)
	}
}

func TestMatchPass_ExeAndTitlePrefix(t *testing.T) {
	entries := []model.WorkspaceEntry{
		{Position: model.WindowRecord{ExecutablePath: `C:\np.exe`, WindowClassName: "Notepad", TitleSnippet: "notes.txt - Notepad"}},
	}
	live := []LiveWindowView{
		{Handle: 5, ExecutablePath: `C:\np.exe`, WindowClassName: "DifferentClass", Title: "notes.txt - Notepad (modified)"},
	}
	results := matchPass(entries, live, nil)
	if len(results) != 1 || results[0].handle != 5 {
		t.Fatalf("expected title-prefix match, got %+v", results)
	}
}

func TestMatchPass_SkipsAlreadyMatchedEntries(t *testing.T) {
	entries := []model.WorkspaceEntry{
		{Position: model.WindowRecord{ExecutablePath: `C:\a.exe`, WindowClassName: "X"}},
	}
	live := []LiveWindowView{
		{Handle: 1, ExecutablePath: `C:\a.exe`, WindowClassName: "X"},
	}
	results := matchPass(entries, live, map[int]bool{0: true})
	if len(results) != 0 {
		t.Fatalf("expected no matches when entry already matched, got %+v", results)
	}
}
