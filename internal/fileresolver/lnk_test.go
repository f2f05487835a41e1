package fileresolver

import (
	"bytes"
	"encoding/binary"
	"testing"
	"unicode/utf16"
)

// buildLnk assembles a minimal Shell Link blob with the given flags and
// ANSI/Unicode target paths, for exercising ParseLnk without a real .lnk
// fixture file.
func buildLnk(t *testing.T, includeIDList bool, ansiPath, unicodePath string) []byte {
	t.Helper()

	var flags uint32
	if includeIDList {
		flags |= lnkFlagHasIDList
	}
	flags |= lnkFlagHasLinkInfo

	header := make([]byte, lnkHeaderSize)
	header[0] = lnkMagicByte
	binary.LittleEndian.PutUint32(header[lnkFlagsOffset:], flags)

	buf := bytes.NewBuffer(header)

	if includeIDList {
		idList := []byte{0xAA, 0xBB, 0xCC, 0xDD}
		idListSize := make([]byte, 2)
		binary.LittleEndian.PutUint16(idListSize, uint16(len(idList)))
		buf.Write(idListSize)
		buf.Write(idList)
	}

	ansiBytes := append([]byte(ansiPath), 0)
	unicodeUnits := utf16.Encode([]rune(unicodePath))
	unicodeBytes := make([]byte, 0, len(unicodeUnits)*2+2)
	for _, u := range unicodeUnits {
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, u)
		unicodeBytes = append(unicodeBytes, b...)
	}
	unicodeBytes = append(unicodeBytes, 0, 0)

	const linkInfoHeaderLen = 32
	ansiOffset := uint32(linkInfoHeaderLen)
	unicodeOffset := ansiOffset + uint32(len(ansiBytes))

	linkInfo := make([]byte, linkInfoHeaderLen)
	linkInfoSize := linkInfoHeaderLen + len(ansiBytes) + len(unicodeBytes)
	binary.LittleEndian.PutUint32(linkInfo[0:4], uint32(linkInfoSize))
	binary.LittleEndian.PutUint32(linkInfo[4:8], linkInfoHeaderSizeMin)
	binary.LittleEndian.PutUint32(linkInfo[16:20], ansiOffset)
	binary.LittleEndian.PutUint32(linkInfo[28:32], unicodeOffset)

	buf.Write(linkInfo)
	buf.Write(ansiBytes)
	buf.Write(unicodeBytes)

	return buf.Bytes()
}

func TestParseLnk_PrefersUnicodeOverAnsi(t *testing.T) {
	data := buildLnk(t, true, `C:\ANSI\path.txt`, `C:\Unicode\Überpfad.txt`)
	got, err := ParseLnk(data)
	if err != nil {
		t.Fatalf("ParseLnk() error = %v", err)
	}
	if got != `C:\Unicode\Überpfad.txt` {
		t.Fatalf("ParseLnk() = %q, want the Unicode path", got)
	}
}

func TestParseLnk_FallsBackToAnsiWhenNoUnicode(t *testing.T) {
	flags := uint32(lnkFlagHasLinkInfo)
	header := make([]byte, lnkHeaderSize)
	header[0] = lnkMagicByte
	binary.LittleEndian.PutUint32(header[lnkFlagsOffset:], flags)

	ansiBytes := append([]byte(`C:\ANSI\only.txt`), 0)
	const linkInfoHeaderLen = 20
	linkInfo := make([]byte, linkInfoHeaderLen)
	binary.LittleEndian.PutUint32(linkInfo[0:4], uint32(linkInfoHeaderLen+len(ansiBytes)))
	// headerSize below linkInfoHeaderSizeMin: no Unicode offset field present.
	binary.LittleEndian.PutUint32(linkInfo[4:8], 0x1C)
	binary.LittleEndian.PutUint32(linkInfo[16:20], uint32(linkInfoHeaderLen))

	data := append(append([]byte{}, header...), linkInfo...)
	data = append(data, ansiBytes...)

	got, err := ParseLnk(data)
	if err != nil {
		t.Fatalf("ParseLnk() error = %v", err)
	}
	if got != `C:\ANSI\only.txt` {
		t.Fatalf("ParseLnk() = %q, want ansi path", got)
	}
}

func TestParseLnk_RejectsBadMagic(t *testing.T) {
	data := buildLnk(t, false, `C:\a.txt`, `C:\a.txt`)
	data[0] = 0x00
	if _, err := ParseLnk(data); err == nil {
		t.Fatalf("expected error for bad magic byte")
	}
}

func TestParseLnk_RejectsTruncatedHeader(t *testing.T) {
	if _, err := ParseLnk(make([]byte, 10)); err == nil {
		t.Fatalf("expected error for truncated header")
	}
}

func TestParseLnk_RejectsMissingLinkInfo(t *testing.T) {
	header := make([]byte, lnkHeaderSize)
	header[0] = lnkMagicByte
	if _, err := ParseLnk(header); err == nil {
		t.Fatalf("expected error when has-link-info flag is unset")
	}
}
