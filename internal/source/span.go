package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span points at a line of a documented source file. Tag tokenization only
// yields lines, so there is no column.
type Span struct {
	File FileID
	Line uint32 // 1-based, 0 = unknown
}

// At builds a span from an int line as produced by decoders. Negative or
// overflowing lines collapse to 0.
func At(file FileID, line int) Span {
	l, err := safecast.Conv[uint32](line)
	if err != nil {
		l = 0
	}
	return Span{File: file, Line: l}
}

func (s Span) Known() bool {
	return s.Line != 0
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.File, s.Line)
}

// Less orders spans by file, then line.
func (s Span) Less(other Span) bool {
	if s.File != other.File {
		return s.File < other.File
	}
	return s.Line < other.Line
}
