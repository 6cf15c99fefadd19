package main

import (
	"flag"
	"log"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"sante-rag/internal/config"
	"sante-rag/internal/embedding"
	"sante-rag/internal/embedding/openai"
	"sante-rag/internal/embedding/tfidf"
	"sante-rag/internal/index"
	"sante-rag/internal/service"
	"sante-rag/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/sante-rag/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The index and the embedder model are read-only for the lifetime of
	// the process; a rebuild requires a restart.
	ix, err := index.Load(cfg.Paths.VectorStoreDir)
	if err != nil {
		log.Fatalf("%v (run build-index to pre-compute the vector store)", err)
	}

	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb, err = tfidf.Load(filepath.Join(cfg.Paths.VectorStoreDir, tfidf.ModelFile))
		if err != nil {
			log.Fatalf("%v: tfidf model: %v (run build-index to pre-compute the vector store)", index.ErrUnavailable, err)
		}
	case "openai":
		emb, err = openai.New(cfg.Embedder.OpenAI.Model)
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	if emb.Dimension() != ix.Dim {
		log.Fatalf("%v: embedder %s has dimension %d, index has dimension %d",
			index.ErrUnavailable, emb.Name(), emb.Dimension(), ix.Dim)
	}

	svc := service.NewComposer(emb, ix, cfg.Answer.TopK, cfg.Answer.MaxChunkChars)
	m := tui.New(svc, ix.Filenames())
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
