package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"sante-rag/internal/chunker"
	"sante-rag/internal/config"
	"sante-rag/internal/domain"
	"sante-rag/internal/embedding"
	"sante-rag/internal/embedding/openai"
	"sante-rag/internal/embedding/tfidf"
	"sante-rag/internal/extract"
	"sante-rag/internal/index"
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

	paths, err := extract.ListBrochures(cfg.Paths.BrochuresDir)
	if err != nil {
		log.Fatalf("brochures folder not found: %v (create %s and add some PDF/TXT files)", err, cfg.Paths.BrochuresDir)
	}
	if len(paths) == 0 {
		log.Fatalf("no PDF/TXT files found in %s; add some brochures before building the index", cfg.Paths.BrochuresDir)
	}

	fmt.Printf("Found %d brochure file(s):\n", len(paths))
	for _, p := range paths {
		fmt.Println(" -", filepath.Base(p))
	}

	fmt.Println("\nExtracting text from documents...")
	var docs []domain.Document
	for _, p := range paths {
		text, err := extract.FromFile(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  skipping %s: %v\n", filepath.Base(p), err)
			continue
		}
		docs = append(docs, domain.Document{Path: p, Text: text})
	}
	if len(docs) == 0 {
		log.Fatalf("text extraction failed for every brochure in %s", cfg.Paths.BrochuresDir)
	}
	fmt.Printf("Done text extraction (%d document(s)).\n", len(docs))

	var emb embedding.Embedder
	var tfidfEmb *tfidf.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		tfidfEmb = tfidf.NewEmbedder()
		emb = tfidfEmb
	case "openai":
		client, err := openai.New(cfg.Embedder.OpenAI.Model)
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	ch, err := chunker.NewWindowChunker(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap)
	if err != nil {
		log.Fatalf("invalid chunker config: %v", err)
	}

	fmt.Println("Chunking and computing embeddings...")
	ix, err := index.Build(docs, ch, emb)
	if err != nil {
		log.Fatalf("index build failed: %v", err)
	}
	fmt.Printf("Done embeddings computation (%d chunks, dimension %d).\n", ix.Len(), ix.Dim)

	if err := index.Save(ix, cfg.Paths.VectorStoreDir); err != nil {
		log.Fatalf("saving vector store failed: %v", err)
	}
	if tfidfEmb != nil {
		modelPath := filepath.Join(cfg.Paths.VectorStoreDir, tfidf.ModelFile)
		if err := tfidfEmb.Save(modelPath); err != nil {
			log.Fatalf("saving tfidf model failed: %v", err)
		}
		fmt.Printf("Saved tfidf model to: %s\n", modelPath)
	}

	fmt.Printf("\nSaved embeddings to: %s\n", filepath.Join(cfg.Paths.VectorStoreDir, index.VectorsFile))
	fmt.Printf("Saved metadata to:   %s\n", filepath.Join(cfg.Paths.VectorStoreDir, index.MetadataFile))
	fmt.Println("\nVector store built successfully.")
}
