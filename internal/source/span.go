package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside a file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether the offset lies inside the span of the given file.
// An empty span at offset 0 covers the whole file.
func (s Span) Contains(file FileID, offset uint32) bool {
	if s.File != file {
		return false
	}
	if s.Start == 0 && s.End == 0 {
		return true
	}
	return offset >= s.Start && offset < s.End
}

// Encloses reports whether other lies completely inside s.
func (s Span) Encloses(other Span) bool {
	if s.File != other.File {
		return false
	}
	if s.Start == 0 && s.End == 0 {
		return true
	}
	return other.Start >= s.Start && other.End <= s.End
}

func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
