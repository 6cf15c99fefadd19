package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chunker.ChunkSize != 800 || cfg.Chunker.ChunkOverlap != 200 {
		t.Errorf("chunker defaults = %+v", cfg.Chunker)
	}
	if cfg.Embedder.Type != "tfidf" {
		t.Errorf("embedder default = %q, want tfidf", cfg.Embedder.Type)
	}
	if cfg.Answer.TopK != 3 || cfg.Answer.MaxChunkChars != 600 {
		t.Errorf("answer defaults = %+v", cfg.Answer)
	}
	if cfg.Paths.BrochuresDir == "" || cfg.Paths.VectorStoreDir == "" {
		t.Errorf("path defaults = %+v", cfg.Paths)
	}
}

func TestLoad_PartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `paths:
  brochures_dir: /srv/brochures
chunker:
  chunk_size: 400
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Paths.BrochuresDir != "/srv/brochures" {
		t.Errorf("brochures_dir = %q", cfg.Paths.BrochuresDir)
	}
	if cfg.Chunker.ChunkSize != 400 {
		t.Errorf("chunk_size = %d, want 400", cfg.Chunker.ChunkSize)
	}
	if cfg.Chunker.ChunkOverlap != 200 {
		t.Errorf("chunk_overlap defaulted to %d, want 200", cfg.Chunker.ChunkOverlap)
	}
	if cfg.Paths.VectorStoreDir != "vector_store" {
		t.Errorf("vector_store_dir defaulted to %q", cfg.Paths.VectorStoreDir)
	}
}

func TestLoad_OpenAIModelDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `embedder:
  type: openai
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Embedder.OpenAI == nil || cfg.Embedder.OpenAI.Model != "text-embedding-3-small" {
		t.Errorf("openai model not defaulted: %+v", cfg.Embedder.OpenAI)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("paths: [not: a: mapping"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := defaultConfig()
	in.Paths.BrochuresDir = "/srv/brochures"
	in.Answer.TopK = 5
	if err := Save(path, in); err != nil {
		t.Fatal(err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if out.Paths.BrochuresDir != in.Paths.BrochuresDir || out.Answer.TopK != 5 {
		t.Errorf("round trip lost values: %+v", out)
	}
}
