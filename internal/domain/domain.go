package domain

import "errors"

// ErrEmbedding reports a failed or dimensionally inconsistent embedding.
// It aborts the request that triggered it and nothing else.
var ErrEmbedding = errors.New("embedding failed")

// Document is a single brochure file with its extracted text.
type Document struct {
	Path string
	Text string
}

// Chunk is a fixed-size window of one document's text, the unit of indexing.
// Start and End are rune offsets into the document text.
type Chunk struct {
	DocumentID string
	Index      int
	Text       string
	Start      int
	End        int
}

// Record is the persisted metadata for one indexed chunk. Record i always
// pairs with vector row i; the two must never be reordered independently.
type Record struct {
	Filename   string `json:"filename"`
	ChunkIndex int    `json:"chunk_index"`
	Text       string `json:"text"`
}

// QueryResult is one retrieved chunk with its cosine similarity score.
type QueryResult struct {
	Filename   string
	Score      float64
	ChunkIndex int
	Text       string
}

// Source is a display-ready attribution for one retrieved chunk.
// Snippet may be empty.
type Source struct {
	Filename   string
	Score      float64
	ChunkIndex int
	Snippet    string
}

// AnswerResult is the final composed answer for one query. It is created
// fresh per request and never persisted.
type AnswerResult struct {
	Question string
	Answer   string
	Sources  []Source
}
