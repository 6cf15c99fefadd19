package tfidf

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"
)

// ModelFile is the conventional name of the persisted model, written next
// to the index files by the offline build.
const ModelFile = "tfidf_model.json"

// Embedder implements a simple TF-IDF vectorizer. It builds a vocabulary
// from the corpus at index-build time and persists it next to the index so
// queries are embedded against the exact same model.
type Embedder struct {
	vocabulary   map[string]int
	terms        []string
	idf          []float64
	prepared     bool
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewEmbedder creates an unprepared TF-IDF embedder.
func NewEmbedder() *Embedder {
	return &Embedder{
		vocabulary:   make(map[string]int),
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "tfidf" }

// Prepare builds the vocabulary and IDF values from the provided corpus.
func (e *Embedder) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for TF-IDF prepare")
	}
	// Build vocabulary and document frequencies
	df := make(map[string]int)
	for _, text := range corpus {
		tokens := e.tokenize(text)
		seen := make(map[string]struct{})
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return errors.New("no tokens found in corpus; ensure tokenizer supports your language")
	}
	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	N := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		// Smoothed IDF
		e.idf[i] = math.Log((1+N)/(1+float64(df[term]))) + 1.0
	}
	e.terms = terms
	e.prepared = true
	return nil
}

// Dimension returns the dimensionality of the produced embedding vectors.
func (e *Embedder) Dimension() int { return len(e.terms) }

// Embed computes the L2-normalized TF-IDF embedding for the given text.
func (e *Embedder) Embed(text string) ([]float32, error) {
	if !e.prepared {
		return nil, errors.New("tfidf embedder not prepared")
	}
	vec := make([]float64, len(e.terms))
	tf := make(map[int]int)
	total := 0
	for _, tok := range e.tokenize(text) {
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return toFloat32(vec), nil
	}
	for idx, count := range tf {
		tfv := float64(count) / float64(total)
		vec[idx] = tfv * e.idf[idx]
	}
	// L2 normalize
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return toFloat32(vec), nil
}

// model is the persisted form of a prepared embedder.
type model struct {
	Terms []string  `json:"terms"`
	IDF   []float64 `json:"idf"`
}

// Save writes the prepared vocabulary and IDF values to path so the query
// side can reconstruct an identical embedder.
func (e *Embedder) Save(path string) error {
	if !e.prepared {
		return errors.New("tfidf embedder not prepared")
	}
	data, err := json.Marshal(model{Terms: e.terms, IDF: e.idf})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a model written by Save and returns a prepared embedder.
func Load(path string) (*Embedder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("malformed tfidf model %s: %w", path, err)
	}
	if len(m.Terms) == 0 || len(m.Terms) != len(m.IDF) {
		return nil, fmt.Errorf("malformed tfidf model %s: %d terms, %d idf values", path, len(m.Terms), len(m.IDF))
	}
	e := NewEmbedder()
	e.terms = m.Terms
	e.idf = m.IDF
	e.vocabulary = make(map[string]int, len(m.Terms))
	for i, term := range m.Terms {
		e.vocabulary[term] = i
	}
	e.prepared = true
	return e, nil
}

func (e *Embedder) tokenize(text string) []string {
	lower := strings.ToLower(text)
	raw := e.tokenPattern.FindAllString(lower, -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := e.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i := range v {
		out[i] = float32(v[i])
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"le", "la", "les", "un", "une", "des", "du", "de", "d", "l", "et", "ou", "mais", "donc", "or", "ni", "car", "que", "qui", "quoi", "dont", "ce", "cet", "cette", "ces", "se", "sa", "son", "ses", "leur", "leurs", "il", "elle", "ils", "elles", "on", "nous", "vous", "je", "tu", "en", "y", "au", "aux", "dans", "sur", "sous", "avec", "sans", "pour", "par", "plus", "moins", "très", "pas", "ne", "est", "sont", "être", "avoir", "a", "ont", "si", "comme",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
