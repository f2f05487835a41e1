package model

import "testing"

func TestTruncateTitle(t *testing.T) {
	short := "Untitled - Notepad"
	if got := TruncateTitle(short); got != short {
		t.Fatalf("expected short title unchanged, got %q", got)
	}

	long := make([]byte, MaxTitleSnippetBytes+50)
	for i := range long {
		long[i] = 'a'
	}
	got := TruncateTitle(string(long))
	if len(got) != MaxTitleSnippetBytes {
		t.Fatalf("expected truncation to %d bytes, got %d", MaxTitleSnippetBytes, len(got))
	}
}

func TestTruncateTitle_DoesNotSplitRune(t *testing.T) {
	// Build a title whose 200th byte lands mid multi-byte rune.
	prefix := make([]byte, MaxTitleSnippetBytes-1)
	for i := range prefix {
		prefix[i] = 'x'
	}
	title := string(prefix) + "é" // 'é' is 2 bytes in UTF-8
	got := TruncateTitle(title)
	for i := 0; i < len(got); {
		r := got[i]
		switch {
		case r&0x80 == 0:
			i++
		case r&0xE0 == 0xC0:
			if i+1 >= len(got) {
				t.Fatalf("truncated string ends mid rune: %q", got)
			}
			i += 2
		default:
			i++
		}
	}
}

func TestWorkspaceEntry_Validate(t *testing.T) {
	cases := []struct {
		name    string
		entry   WorkspaceEntry
		wantErr bool
	}{
		{"neutral", WorkspaceEntry{Source: SourceNone}, false},
		{"launch arg with high confidence", WorkspaceEntry{LaunchArg: "a.txt", Confidence: 90}, false},
		{"launch arg with low confidence", WorkspaceEntry{LaunchArg: "a.txt", Confidence: 40}, true},
		{"explorer folder correct confidence", WorkspaceEntry{Source: SourceExplorerFolder, Confidence: 95}, false},
		{"explorer folder wrong confidence", WorkspaceEntry{Source: SourceExplorerFolder, Confidence: 80}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.entry.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestWorkspaceSnapshot_ClearFileFields(t *testing.T) {
	snap := WorkspaceSnapshot{
		Entries: []WorkspaceEntry{
			{FilePath: "a.txt", Confidence: 90, Source: SourceTitleParse, LaunchArg: "a.txt"},
		},
	}
	snap.ClearFileFields()
	e := snap.Entries[0]
	if e.FilePath != "" || e.Confidence != 0 || e.Source != SourceNone || e.LaunchArg != "" {
		t.Fatalf("expected neutral fields, got %+v", e)
	}
}
