package source

import "testing"

func TestSpanContains(t *testing.T) {
	tests := []struct {
		name   string
		span   Span
		file   FileID
		offset uint32
		want   bool
	}{
		{"inside", Span{File: 1, Start: 10, End: 20}, 1, 15, true},
		{"start inclusive", Span{File: 1, Start: 10, End: 20}, 1, 10, true},
		{"end exclusive", Span{File: 1, Start: 10, End: 20}, 1, 20, false},
		{"other file", Span{File: 1, Start: 10, End: 20}, 2, 15, false},
		{"whole file", Span{File: 3}, 3, 9000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Contains(tt.file, tt.offset); got != tt.want {
				t.Fatalf("Contains(%d, %d) = %v, want %v", tt.file, tt.offset, got, tt.want)
			}
		})
	}
}

func TestSpanEncloses(t *testing.T) {
	outer := Span{File: 1, Start: 0, End: 100}
	if !outer.Encloses(Span{File: 1, Start: 10, End: 20}) {
		t.Fatalf("outer should enclose inner")
	}
	if outer.Encloses(Span{File: 1, Start: 90, End: 120}) {
		t.Fatalf("overlapping span is not enclosed")
	}
	if got := outer.Cover(Span{File: 1, Start: 50, End: 150}); got.End != 150 {
		t.Fatalf("Cover: want end 150, got %d", got.End)
	}
}
