package tfidf

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

var corpus = []string{
	"l'otite est une infection de l'oreille fréquente chez l'enfant",
	"la fièvre accompagne souvent une infection virale chez l'enfant",
	"le diabète demande une surveillance régulière de la glycémie",
}

func TestPrepareAndEmbed(t *testing.T) {
	e := NewEmbedder()
	if err := e.Prepare(corpus); err != nil {
		t.Fatal(err)
	}
	if e.Dimension() == 0 {
		t.Fatal("vocabulary is empty after prepare")
	}
	vec, err := e.Embed("une infection de l'oreille")
	if err != nil {
		t.Fatal(err)
	}
	if len(vec) != e.Dimension() {
		t.Fatalf("vector length %d, want %d", len(vec), e.Dimension())
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(norm)-1.0) > 1e-5 {
		t.Errorf("embedding is not unit length: %v", math.Sqrt(norm))
	}
}

func TestEmbed_Deterministic(t *testing.T) {
	e := NewEmbedder()
	if err := e.Prepare(corpus); err != nil {
		t.Fatal(err)
	}
	a, err := e.Embed("infection de l'oreille chez l'enfant")
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Embed("infection de l'oreille chez l'enfant")
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embeddings differ at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestEmbed_UnknownTokensOnly(t *testing.T) {
	e := NewEmbedder()
	if err := e.Prepare(corpus); err != nil {
		t.Fatal(err)
	}
	vec, err := e.Embed("zzz qqq www")
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range vec {
		if v != 0 {
			t.Fatalf("component %d = %v, want all-zero vector for unknown tokens", i, v)
		}
	}
}

func TestEmbed_Unprepared(t *testing.T) {
	e := NewEmbedder()
	if _, err := e.Embed("otite"); err == nil {
		t.Error("expected an error from an unprepared embedder")
	}
}

func TestPrepare_EmptyCorpus(t *testing.T) {
	e := NewEmbedder()
	if err := e.Prepare(nil); err == nil {
		t.Error("expected an error for an empty corpus")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	e := NewEmbedder()
	if err := e.Prepare(corpus); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), ModelFile)
	if err := e.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Dimension() != e.Dimension() {
		t.Fatalf("loaded dimension %d, want %d", loaded.Dimension(), e.Dimension())
	}
	query := "surveillance de la glycémie"
	a, err := e.Embed(query)
	if err != nil {
		t.Fatal(err)
	}
	b, err := loaded.Embed(query)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("loaded model embeds differently at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSave_Unprepared(t *testing.T) {
	e := NewEmbedder()
	if err := e.Save(filepath.Join(t.TempDir(), ModelFile)); err == nil {
		t.Error("expected an error saving an unprepared embedder")
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing model file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"terms":["a","b"],"idf":[1.0]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected an error for mismatched terms and idf lengths")
	}
}

func TestTokenize_StopwordsAndElisions(t *testing.T) {
	e := NewEmbedder()
	tokens := e.tokenize("La fièvre de l'enfant")
	for _, tok := range tokens {
		if tok == "la" || tok == "de" {
			t.Errorf("stopword %q survived tokenization", tok)
		}
	}
	found := false
	for _, tok := range tokens {
		if tok == "l'enfant" {
			found = true
		}
	}
	if !found {
		t.Errorf("elided token lost: %v", tokens)
	}
}
