package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"sante-rag/internal/domain"
)

func TestNewWindowChunker_Validation(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr bool
	}{
		{"valid", 800, 200, false},
		{"zero_overlap", 100, 0, false},
		{"zero_size", 0, 0, true},
		{"negative_overlap", 100, -1, true},
		{"overlap_equals_size", 100, 100, true},
		{"overlap_exceeds_size", 100, 150, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWindowChunker(tt.size, tt.overlap)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewWindowChunker(%d, %d) error = %v, wantErr %v", tt.size, tt.overlap, err, tt.wantErr)
			}
		})
	}
}

func TestChunk_CoverageAndOverlap(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		size    int
		overlap int
	}{
		{"brochure_defaults", 1000, 800, 200},
		{"several_windows", 2500, 800, 200},
		{"no_overlap", 1000, 100, 0},
		{"tiny_windows", 37, 10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("abcdefghij", (tt.length+9)/10)[:tt.length]
			c, err := NewWindowChunker(tt.size, tt.overlap)
			if err != nil {
				t.Fatal(err)
			}
			chunks := c.Chunk(domain.Document{Path: "doc.txt", Text: text})
			if len(chunks) == 0 {
				t.Fatal("expected at least one chunk")
			}
			if chunks[0].Start != 0 {
				t.Errorf("first chunk starts at %d, want 0", chunks[0].Start)
			}
			if last := chunks[len(chunks)-1]; last.End != tt.length {
				t.Errorf("last chunk ends at %d, want %d", last.End, tt.length)
			}
			for i, ch := range chunks {
				if ch.Index != i {
					t.Errorf("chunk %d has index %d", i, ch.Index)
				}
				if ch.Text == "" {
					t.Errorf("chunk %d is empty", i)
				}
				if got := utf8.RuneCountInString(ch.Text); got != ch.End-ch.Start {
					t.Errorf("chunk %d text length %d does not match offsets [%d,%d)", i, got, ch.Start, ch.End)
				}
				if i > 0 {
					prev := chunks[i-1]
					if gap := ch.Start - prev.End; gap > 0 {
						t.Errorf("gap of %d runes between chunk %d and %d", gap, i-1, i)
					}
					if i < len(chunks)-1 && prev.End-ch.Start != tt.overlap {
						t.Errorf("chunks %d and %d overlap by %d runes, want %d", i-1, i, prev.End-ch.Start, tt.overlap)
					}
				}
			}
		})
	}
}

func TestChunk_ShortDocument(t *testing.T) {
	c, err := NewWindowChunker(800, 200)
	if err != nil {
		t.Fatal(err)
	}
	text := "Une brochure très courte sur la fièvre de l'enfant."
	chunks := c.Chunk(domain.Document{Path: "fievre.txt", Text: text})
	if len(chunks) != 1 {
		t.Fatalf("expected exactly one chunk, got %d", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("chunk text = %q, want the whole document", chunks[0].Text)
	}
	if chunks[0].Index != 0 || chunks[0].Start != 0 {
		t.Errorf("unexpected chunk metadata: %+v", chunks[0])
	}
}

func TestChunk_EmptyDocument(t *testing.T) {
	c, err := NewWindowChunker(800, 200)
	if err != nil {
		t.Fatal(err)
	}
	if chunks := c.Chunk(domain.Document{Path: "vide.txt", Text: ""}); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty text, got %d", len(chunks))
	}
}

func TestChunk_MultibyteRunes(t *testing.T) {
	c, err := NewWindowChunker(10, 2)
	if err != nil {
		t.Fatal(err)
	}
	text := strings.Repeat("é", 25)
	chunks := c.Chunk(domain.Document{Path: "accents.txt", Text: text})
	for i, ch := range chunks {
		got := utf8.RuneCountInString(ch.Text)
		if got > 10 {
			t.Errorf("chunk %d has %d runes, want at most 10", i, got)
		}
		if got != ch.End-ch.Start {
			t.Errorf("chunk %d counts bytes, not runes: %d runes for offsets [%d,%d)", i, got, ch.Start, ch.End)
		}
	}
	if first := chunks[0]; utf8.RuneCountInString(first.Text) != 10 {
		t.Errorf("first chunk has %d runes, want 10", utf8.RuneCountInString(first.Text))
	}
	if last := chunks[len(chunks)-1]; last.End != 25 {
		t.Errorf("last chunk ends at %d, want 25", last.End)
	}
}
