package chunker

import (
	"fmt"

	"sante-rag/internal/domain"
)

// WindowChunker splits document text into fixed-size rune windows that
// overlap by a constant amount.
type WindowChunker struct {
	size    int
	overlap int
}

// NewWindowChunker validates the window parameters: 0 <= overlap < size.
func NewWindowChunker(size, overlap int) (*WindowChunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must satisfy 0 <= overlap < size, got overlap=%d size=%d", overlap, size)
	}
	return &WindowChunker{size: size, overlap: overlap}, nil
}

// Chunk slides a window of size runes across the document text, advancing
// by size-overlap each step. The final window is truncated to whatever text
// remains and the loop stops once the window start reaches the text length.
// Empty text yields no chunks; no chunk is ever empty.
func (c *WindowChunker) Chunk(doc domain.Document) []domain.Chunk {
	runes := []rune(doc.Text)
	if len(runes) == 0 {
		return nil
	}
	step := c.size - c.overlap
	var chunks []domain.Chunk
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, domain.Chunk{
			DocumentID: doc.Path,
			Index:      len(chunks),
			Text:       string(runes[start:end]),
			Start:      start,
			End:        end,
		})
	}
	return chunks
}
