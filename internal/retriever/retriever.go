package retriever

import (
	"fmt"
	"math"
	"sort"

	"sante-rag/internal/domain"
	"sante-rag/internal/index"
)

// TopK ranks every indexed chunk by cosine similarity to the query vector
// and returns the best k, highest score first. Ties keep ascending row
// order. An empty index yields an empty result, not an error. The scan is
// a full linear pass over the corpus: the brochures are small and exact
// ranking matters more than speed.
func TopK(query []float32, ix *index.Index, k int) ([]domain.QueryResult, error) {
	if ix.Len() == 0 || k <= 0 {
		return nil, nil
	}
	if len(query) != ix.Dim {
		return nil, fmt.Errorf("%w: query dimension %d, index dimension %d", domain.ErrEmbedding, len(query), ix.Dim)
	}
	scores := make([]float64, len(ix.Vectors))
	for i, row := range ix.Vectors {
		scores[i] = Cosine(query, row)
	}
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	// Stable sort keeps ascending row order among equal scores.
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if k > len(order) {
		k = len(order)
	}
	results := make([]domain.QueryResult, 0, k)
	for _, row := range order[:k] {
		rec := ix.Records[row]
		results = append(results, domain.QueryResult{
			Filename:   rec.Filename,
			Score:      scores[row],
			ChunkIndex: rec.ChunkIndex,
			Text:       rec.Text,
		})
	}
	return results, nil
}

// Cosine is the dot product of the unit-normalized operands, in [-1, 1].
// A zero-magnitude operand scores 0.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		na += va * va
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
