package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sante-rag/internal/domain"
)

// File names of the persisted vector store. Both are written by every build
// and both must be present and consistent for a load to succeed.
const (
	VectorsFile  = "embeddings.npy"
	MetadataFile = "metadata.json"
)

var (
	// ErrUnavailable reports a vector store that cannot be used: a file is
	// missing, unreadable or malformed, or the embedder does not match the
	// stored dimension. Queries are impossible until the offline build is
	// re-run.
	ErrUnavailable = errors.New("index unavailable")

	// ErrConsistency reports a vector file and metadata file whose entry
	// counts differ. The pairing of row i with record i is the core index
	// invariant; a mismatch is rejected outright rather than truncated.
	ErrConsistency = errors.New("index vector and metadata counts differ")
)

// Index is the loaded vector store: one float32 row per indexed chunk and
// the parallel metadata records. Row i always describes record i. An Index
// is immutable once loaded; a rebuild replaces the whole value.
type Index struct {
	Vectors [][]float32
	Records []domain.Record
	Dim     int
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int { return len(ix.Records) }

// Filenames returns the distinct source filenames in first-seen order.
func (ix *Index) Filenames() []string {
	seen := make(map[string]struct{}, len(ix.Records))
	var names []string
	for _, rec := range ix.Records {
		if _, ok := seen[rec.Filename]; ok {
			continue
		}
		seen[rec.Filename] = struct{}{}
		names = append(names, rec.Filename)
	}
	return names
}

// Load reads the two index files from dir and verifies they agree. Loading
// fails as a unit: any missing, unreadable or malformed file yields
// ErrUnavailable, and a row-count mismatch yields ErrConsistency.
func Load(dir string) (*Index, error) {
	vectors, dim, err := readNPY(filepath.Join(dir, VectorsFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: malformed metadata: %v", ErrUnavailable, err)
	}
	if len(vectors) != len(records) {
		return nil, fmt.Errorf("%w: %d vectors, %d metadata records", ErrConsistency, len(vectors), len(records))
	}
	return &Index{Vectors: vectors, Records: records, Dim: dim}, nil
}

// Save writes the two index files to dir, creating it if absent.
func Save(ix *Index, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeNPY(filepath.Join(dir, VectorsFile), ix.Vectors, ix.Dim); err != nil {
		return err
	}
	data, err := json.MarshalIndent(ix.Records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, MetadataFile), data, 0o644)
}
