package service

import (
	"fmt"
	"path/filepath"

	"sante-rag/internal/domain"
	"sante-rag/internal/embedding"
	"sante-rag/internal/index"
	"sante-rag/internal/retriever"
	"sante-rag/internal/textproc"
	"sante-rag/internal/topic"
)

// Budgets of the composed answer. The merge budget caps the body at a
// readable length; each source snippet keeps at most three sentences.
const (
	answerBudgetChars   = 900
	snippetMaxSentences = 3
)

const (
	noResultsAnswer = "Je n’ai trouvé aucune information pertinente sur ce sujet dans les documents chargés. " +
		"Merci de vérifier que les brochures PDF contiennent bien des informations sur cette question."

	notReformulatedAnswer = "Les documents contiennent des informations, mais elles n’ont pas pu être " +
		"reformulées correctement. Merci de reformuler votre question ou de consulter " +
		"un professionnel de santé."

	answerIntro = "Voici une réponse basée sur les brochures disponibles concernant votre question :"

	answerDisclaimer = "Ce résumé est directement élaboré à partir des brochures. " +
		"Il fournit une information générale et ne remplace en aucun cas l’avis d’un professionnel de santé."
)

// Composer turns a natural-language question into an extractive answer with
// attributable sources: retrieve the nearest chunks, disambiguate by topic,
// summarize each chunk and merge the extracts. Each call is a pure function
// of the query given the loaded index and a deterministic embedder.
type Composer struct {
	embedder      embedding.Embedder
	index         *index.Index
	topK          int
	maxChunkChars int
}

// NewComposer wires a composer over a loaded index. topK and maxChunkChars
// fall back to the serving defaults (3 and 600) when non-positive.
func NewComposer(emb embedding.Embedder, ix *index.Index, topK, maxChunkChars int) *Composer {
	if topK <= 0 {
		topK = 3
	}
	if maxChunkChars <= 0 {
		maxChunkChars = 600
	}
	return &Composer{embedder: emb, index: ix, topK: topK, maxChunkChars: maxChunkChars}
}

// Answer processes one query through the full extractive pipeline. An
// embedding failure aborts only this request and wraps domain.ErrEmbedding;
// an empty retrieval is not an error and yields a canned answer with no
// sources.
func (c *Composer) Answer(query string) (domain.AnswerResult, error) {
	vec, err := c.embedder.Embed(query)
	if err != nil {
		return domain.AnswerResult{}, fmt.Errorf("%w: query: %v", domain.ErrEmbedding, err)
	}
	results, err := retriever.TopK(vec, c.index, c.topK)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	if len(results) == 0 {
		return domain.AnswerResult{
			Question: query,
			Answer:   noResultsAnswer,
			Sources:  []domain.Source{},
		}, nil
	}

	results = topic.Filter(results, topic.Detect(query))

	var snippets []string
	sources := make([]domain.Source, 0, len(results))
	for _, r := range results {
		raw := firstRunes(r.Text, c.maxChunkChars)
		snippet := textproc.Summarize(raw, snippetMaxSentences)
		if snippet == "" {
			// The sentence filter removed everything; a cleaned chunk
			// still beats a blank source.
			snippet = textproc.Clean(raw)
		}
		if snippet != "" {
			snippets = append(snippets, snippet)
		}
		sources = append(sources, domain.Source{
			Filename:   filepath.Base(r.Filename),
			Score:      r.Score,
			ChunkIndex: r.ChunkIndex,
			Snippet:    snippet,
		})
	}

	combined := textproc.Merge(snippets, answerBudgetChars)
	if combined == "" {
		combined = notReformulatedAnswer
	}
	answer := answerIntro + "\n\n" + combined + "\n\n" + answerDisclaimer

	return domain.AnswerResult{Question: query, Answer: answer, Sources: sources}, nil
}

// firstRunes returns the first n runes of s.
func firstRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
