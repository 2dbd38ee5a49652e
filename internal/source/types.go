package source

// FileID identifies a source document that scopes are attached to.
type FileID uint32

// Pos is a byte offset inside a file.
type Pos struct {
	File   FileID
	Offset uint32
}

func (p Pos) In(s Span) bool {
	return s.Contains(p.File, p.Offset)
}
