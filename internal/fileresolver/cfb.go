package fileresolver

import (
	"fmt"
	"io"
	"os"

	"github.com/richardlehane/mscfb"
)

// destListStreamName is the jump-list metadata stream that carries no
// Shell Link payload and must be skipped (spec §4.3.1).
const destListStreamName = "DestList"

// LnkStream is a single Shell Link extracted from a jump-list's OLE
// compound file, tagged with the stream name it came from (its CRC-64
// slot, used to order "most recent" entries).
type LnkStream struct {
	Name string
	Data []byte
}

// ExtractJumplistStreams opens the *.automaticDestinations-ms / *.customDestinations-ms
// file at path, copies it to a temp file first (mscfb requires io.ReaderAt
// and the source is frequently locked for writing by Explorer), and
// returns every non-DestList stream's raw bytes. A stream that fails to
// read is skipped rather than aborting the whole file (spec §7).
func ExtractJumplistStreams(path string) ([]LnkStream, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening jumplist file: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "windowanchor-jumplist-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp copy: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("copying jumplist file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("rewinding temp copy: %w", err)
	}

	doc, err := mscfb.New(tmp)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("opening compound document: %w", err)
	}

	var streams []LnkStream
	for entry, entryErr := doc.Next(); entryErr == nil; entry, entryErr = doc.Next() {
		if entry == nil || entry.Name == destListStreamName {
			continue
		}
		data := make([]byte, entry.Size)
		if _, err := entry.Read(data); err != nil && err != io.EOF {
			continue
		}
		streams = append(streams, LnkStream{Name: entry.Name, Data: data})
	}

	tmp.Close()
	return streams, nil
}
