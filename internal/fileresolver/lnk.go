package fileresolver

import (
	"bytes"
	"encoding/binary"
	"errors"
	"unicode/utf16"
)

// ErrLnkMalformed is the spec §7 LnkMalformed error kind: an individual
// Shell Link stream is corrupt and must be skipped, not abort the file.
var ErrLnkMalformed = errors.New("lnk: malformed shell link")

const (
	lnkHeaderSize        = 76
	lnkMagicByte         = 0x4C
	lnkFlagHasIDList     = 1 << 0
	lnkFlagHasLinkInfo   = 1 << 1
	lnkFlagsOffset       = 20
	linkInfoHeaderSizeMin = 0x24
)

// ParseLnk parses a Shell Link binary blob per spec §6/§4.3.1 and returns
// the target path it carries, preferring the Unicode local-base-path when
// present and non-zero over the ANSI one.
func ParseLnk(data []byte) (string, error) {
	if len(data) < lnkHeaderSize {
		return "", ErrLnkMalformed
	}
	if data[0] != lnkMagicByte {
		return "", ErrLnkMalformed
	}
	flags := binary.LittleEndian.Uint32(data[lnkFlagsOffset : lnkFlagsOffset+4])

	offset := lnkHeaderSize
	if flags&lnkFlagHasIDList != 0 {
		if offset+2 > len(data) {
			return "", ErrLnkMalformed
		}
		idListSize := int(binary.LittleEndian.Uint16(data[offset : offset+2]))
		offset += 2 + idListSize
		if offset > len(data) {
			return "", ErrLnkMalformed
		}
	}

	if flags&lnkFlagHasLinkInfo == 0 {
		return "", ErrLnkMalformed
	}
	if offset+32 > len(data) {
		return "", ErrLnkMalformed
	}
	linkInfo := data[offset:]

	headerSize := binary.LittleEndian.Uint32(linkInfo[4:8])
	ansiOffset := binary.LittleEndian.Uint32(linkInfo[16:20])

	var unicodeOffset uint32
	if headerSize >= linkInfoHeaderSizeMin && len(linkInfo) >= 32 {
		unicodeOffset = binary.LittleEndian.Uint32(linkInfo[28:32])
	}

	if unicodeOffset != 0 {
		if path, ok := readUTF16ZString(linkInfo, int(unicodeOffset)); ok {
			return path, nil
		}
	}
	if ansiOffset != 0 {
		if path, ok := readASCIIZString(linkInfo, int(ansiOffset)); ok {
			return path, nil
		}
	}
	return "", ErrLnkMalformed
}

// readUTF16ZString reads a UTF-16LE string terminated by two consecutive
// zero bytes, starting at offset within buf.
func readUTF16ZString(buf []byte, offset int) (string, bool) {
	if offset < 0 || offset >= len(buf) {
		return "", false
	}
	rest := buf[offset:]
	end := -1
	for i := 0; i+1 < len(rest); i += 2 {
		if rest[i] == 0 && rest[i+1] == 0 {
			end = i
			break
		}
	}
	if end < 0 {
		return "", false
	}
	units := make([]uint16, 0, end/2)
	for i := 0; i < end; i += 2 {
		units = append(units, binary.LittleEndian.Uint16(rest[i:i+2]))
	}
	return string(utf16.Decode(units)), true
}

// readASCIIZString reads an ANSI string terminated by a single zero byte.
func readASCIIZString(buf []byte, offset int) (string, bool) {
	if offset < 0 || offset >= len(buf) {
		return "", false
	}
	rest := buf[offset:]
	idx := bytes.IndexByte(rest, 0)
	if idx < 0 {
		return "", false
	}
	return string(rest[:idx]), true
}
