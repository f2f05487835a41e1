// Package model holds the data types shared by every core component:
// monitors, window records, workspace entries and the persisted snapshot
// they compose into. Nothing here talks to the OS or to disk.
package model

import (
	"time"
	"unicode/utf8"
)

// ShowCommand is the window state captured at save time and reapplied on
// restore.
type ShowCommand string

const (
	ShowNormal    ShowCommand = "NORMAL"
	ShowMaximized ShowCommand = "MAXIMIZED"
	ShowMinimized ShowCommand = "MINIMIZED"
)

// FileSource identifies which tier of the FileResolver pipeline produced a
// WorkspaceEntry's file detection, or that none did.
type FileSource string

const (
	SourceNone            FileSource = "NONE"
	SourceTitleParse      FileSource = "TITLE_PARSE"
	SourceJumplistExact   FileSource = "JUMPLIST_EXACT"
	SourceJumplist        FileSource = "JUMPLIST"
	SourceFileSearch      FileSource = "FILE_SEARCH"
	SourceExplorerFolder  FileSource = "EXPLORER_FOLDER"
)

// Rect is a virtual-desktop-coordinate rectangle. Left/Top/Right/Bottom
// mirror the Win32 RECT layout so placement code can round-trip it without
// translation.
type Rect struct {
	Left   int32 `json:"left"`
	Top    int32 `json:"top"`
	Right  int32 `json:"right"`
	Bottom int32 `json:"bottom"`
}

func (r Rect) Width() int32  { return r.Right - r.Left }
func (r Rect) Height() int32 { return r.Bottom - r.Top }

// Monitor describes one physical display at the moment it was enumerated.
// Monitor values are never mutated after construction and are never
// persisted independently of a WorkspaceSnapshot.
type Monitor struct {
	ID          string `json:"monitorId"`
	FriendlyName string `json:"friendlyName"`
	DeviceName  string `json:"deviceName"`
	Index       int    `json:"index"`
	Left        int32  `json:"left"`
	Top         int32  `json:"top"`
	WidthPixels int32  `json:"widthPixels"`
	HeightPixels int32 `json:"heightPixels"`
	IsPrimary   bool   `json:"isPrimary"`
}

// WindowRecord captures one top-level window's identity, placement and DPI
// context at the moment of capture.
type WindowRecord struct {
	ExecutablePath  string      `json:"executablePath"`
	ProcessName     string      `json:"processName"`
	WindowClassName string      `json:"windowClassName"`
	TitleSnippet    string      `json:"titleSnippet"`
	ShowCmd         ShowCommand `json:"showCommand"`
	Rect            Rect        `json:"position"`
	DPI             uint32      `json:"dpi"`
	FolderPath      string      `json:"folderPath,omitempty"`

	MonitorID    string `json:"monitorId"`
	MonitorIndex int    `json:"monitorIndex"`
	MonitorName  string `json:"monitorName"`
}

// MaxTitleSnippetBytes is the storage cap for WindowRecord.TitleSnippet
// (spec's "GetWindowText truncation is 256 code units at the OS boundary
// but the record stores only the first 200 bytes").
const MaxTitleSnippetBytes = 200

// TruncateTitle enforces MaxTitleSnippetBytes without splitting a UTF-8
// rune in the middle.
func TruncateTitle(title string) string {
	if len(title) <= MaxTitleSnippetBytes {
		return title
	}
	cut := MaxTitleSnippetBytes
	for cut > 0 && !utf8.RuneStart(title[cut]) {
		cut--
	}
	return title[:cut]
}

// WorkspaceEntry is one captured window plus everything the FileResolver
// learned about the document it has open.
type WorkspaceEntry struct {
	Position   WindowRecord `json:"position"`
	FilePath   string       `json:"filePath,omitempty"`
	Confidence int          `json:"fileConfidence"`
	Source     FileSource   `json:"fileSource"`
	LaunchArg  string       `json:"launchArg,omitempty"`

	MonitorID    string `json:"monitorId"`
	MonitorIndex int    `json:"monitorIndex"`
	MonitorName  string `json:"monitorName"`

	// WasRestored is runtime-only bookkeeping for a single restore pass; it
	// is never marshaled.
	WasRestored bool `json:"-"`
}

// Validate enforces the two cross-field invariants spec §3 places on a
// WorkspaceEntry.
func (e *WorkspaceEntry) Validate() error {
	if e.LaunchArg != "" && e.Confidence < 80 {
		return errInvalidLaunchArgConfidence
	}
	if e.Source == SourceExplorerFolder && e.Confidence != 95 {
		return errInvalidExplorerConfidence
	}
	return nil
}

// WorkspaceSnapshot is the top-level persisted unit: a named, timestamped
// capture of a monitor set and the windows on it.
type WorkspaceSnapshot struct {
	Name              string            `json:"name"`
	MonitorFingerprint string           `json:"monitorFingerprint"`
	SavedAt           time.Time         `json:"savedAt"`
	SavedWithFiles    bool              `json:"savedWithFiles"`
	Monitors          []Monitor         `json:"monitors"`
	Entries           []WorkspaceEntry  `json:"entries"`
}

// ClearFileFields resets every entry's file-detection fields to neutral,
// used when SavedWithFiles is false (spec §3: "forces every entry's
// file-detection fields to neutral").
func (s *WorkspaceSnapshot) ClearFileFields() {
	for i := range s.Entries {
		s.Entries[i].FilePath = ""
		s.Entries[i].Confidence = 0
		s.Entries[i].Source = SourceNone
		s.Entries[i].LaunchArg = ""
	}
}
