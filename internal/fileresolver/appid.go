package fileresolver

import (
	"fmt"
	"hash/crc64"
	"strings"
	"unicode/utf16"
)

// jonesPolynomial is the CRC-64/Jones polynomial spec §4.3.1 specifies for
// AppID hashing.
const jonesPolynomial = 0xAD93D23594C935A9

var jonesTable = crc64.MakeTable(jonesPolynomial)

// DefaultAppID returns the default AppID for an application without an
// explicit manifest: its lowercased full executable path (spec Glossary).
func DefaultAppID(executablePath string) string {
	return strings.ToLower(executablePath)
}

// ComputeAppIDHash hashes appID with CRC-64/Jones over its UTF-16LE
// encoding, each code unit fed low-byte-first, and formats the result as
// 16 lowercase hex digits — the jump-list filename stem (spec §4.3.1).
func ComputeAppIDHash(appID string) string {
	units := utf16.Encode([]rune(appID))
	buf := make([]byte, 0, len(units)*2)
	for _, u := range units {
		buf = append(buf, byte(u&0xFF), byte(u>>8))
	}
	sum := crc64.Checksum(buf, jonesTable)
	return fmt.Sprintf("%016x", sum)
}
