package index

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"sante-rag/internal/chunker"
	"sante-rag/internal/domain"
	"sante-rag/internal/embedding"
)

// embedWorkers bounds concurrent embedding calls during a build.
const embedWorkers = 8

// Build chunks every document in input order, embeds each chunk and
// assembles the index. Cross-document order follows document input order
// and chunk order is preserved within a document, so vector row i and
// metadata record i always describe the same chunk. Embedding runs in
// parallel across chunks; results are written by index, keeping the output
// deterministic. Any embedding failure or dimension disagreement aborts
// the build with an error wrapping domain.ErrEmbedding.
func Build(docs []domain.Document, ch *chunker.WindowChunker, emb embedding.Embedder) (*Index, error) {
	var chunks []domain.Chunk
	var texts []string
	for _, doc := range docs {
		doc.Text = strings.TrimSpace(doc.Text)
		for _, c := range ch.Chunk(doc) {
			chunks = append(chunks, c)
			texts = append(texts, c.Text)
		}
	}
	if len(chunks) == 0 {
		return nil, errors.New("no chunks produced from input documents")
	}
	if err := emb.Prepare(texts); err != nil {
		return nil, fmt.Errorf("%w: prepare: %v", domain.ErrEmbedding, err)
	}

	vectors := make([][]float32, len(chunks))
	sem := make(chan struct{}, embedWorkers)
	errCh := make(chan error, len(chunks))
	for i := range chunks {
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem }()
			vec, err := emb.Embed(chunks[i].Text)
			if err != nil {
				errCh <- fmt.Errorf("chunk %d of %s: %w", chunks[i].Index, chunks[i].DocumentID, err)
				return
			}
			vectors[i] = vec
			errCh <- nil
		}(i)
	}
	var embedErr error
	for range chunks {
		if err := <-errCh; err != nil && embedErr == nil {
			embedErr = err
		}
	}
	if embedErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbedding, embedErr)
	}

	// All vectors must share one dimension.
	dim := len(vectors[0])
	for i, vec := range vectors {
		if len(vec) != dim {
			return nil, fmt.Errorf("%w: chunk %d of %s has dimension %d, want %d",
				domain.ErrEmbedding, chunks[i].Index, chunks[i].DocumentID, len(vec), dim)
		}
	}

	records := make([]domain.Record, len(chunks))
	for i, c := range chunks {
		records[i] = domain.Record{
			Filename:   filepath.Base(c.DocumentID),
			ChunkIndex: c.Index,
			Text:       c.Text,
		}
	}
	return &Index{Vectors: vectors, Records: records, Dim: dim}, nil
}
