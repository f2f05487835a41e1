package fileresolver

import "testing"

func TestCanonicalProcessNameForStreams_PicksMostCommonExtension(t *testing.T) {
	streams := []LnkStream{
		{Name: "1", Data: buildLnk(t, false, `C:\Docs\Diplomarbeit.docx`, `C:\Docs\Diplomarbeit.docx`)},
		{Name: "2", Data: buildLnk(t, false, `C:\Docs\Letter.doc`, `C:\Docs\Letter.doc`)},
		{Name: "3", Data: buildLnk(t, false, `C:\Sheets\Budget.xlsx`, `C:\Sheets\Budget.xlsx`)},
	}
	got := canonicalProcessNameForStreams(streams)
	if got != "winword" {
		t.Fatalf("canonicalProcessNameForStreams() = %q, want winword", got)
	}
}

func TestCanonicalProcessNameForStreams_UnknownExtensionYieldsEmpty(t *testing.T) {
	streams := []LnkStream{
		{Name: "1", Data: buildLnk(t, false, `C:\x\file.unknownext`, `C:\x\file.unknownext`)},
	}
	if got := canonicalProcessNameForStreams(streams); got != "" {
		t.Fatalf("canonicalProcessNameForStreams() = %q, want empty", got)
	}
}

func TestGetRecentFilesForApp_FallsBackToProcessNameIndex(t *testing.T) {
	idx := &Index{
		byDirectHash:  map[string][]LnkStream{},
		byHandlerHash: map[string][]LnkStream{},
		byProcessName: map[string][]LnkStream{
			"winword": {
				{Name: "1", Data: buildLnk(t, false, `C:\Docs\Diplomarbeit.docx`, `C:\Docs\Diplomarbeit.docx`)},
				{Name: "2", Data: buildLnk(t, false, `C:\Docs\Thesis.docx`, `C:\Docs\Thesis.docx`)},
			},
		},
	}

	// winword.exe has no direct or handler hit; this is exactly the
	// click-to-run case the process-name index exists for, where the
	// jump list was registered under Office's wrapper AppID instead of
	// winword.exe's own.
	got := idx.GetRecentFilesForApp(`C:\Office\WINWORD.EXE`, 30)
	if len(got) != 2 {
		t.Fatalf("GetRecentFilesForApp() = %v, want 2 candidates from the process-name index", got)
	}
}
