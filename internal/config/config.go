package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PathsConfig locates the brochure corpus and the persisted vector store.
type PathsConfig struct {
	BrochuresDir   string `yaml:"brochures_dir"`
	VectorStoreDir string `yaml:"vector_store_dir"`
}

// ChunkerConfig configures the sliding-window document chunker.
type ChunkerConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// OpenAIEmbedderConfig configures the remote embedder. The API key is read
// from the OPENAI_API_KEY environment variable, never from the file.
type OpenAIEmbedderConfig struct {
	Model string `yaml:"model"`
}

// EmbedderConfig selects and configures the text embedder implementation.
// The same embedder must be used to build the index and to serve queries.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// AnswerConfig configures the query-time pipeline.
type AnswerConfig struct {
	TopK          int `yaml:"top_k"`
	MaxChunkChars int `yaml:"max_chunk_chars"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Paths    PathsConfig    `yaml:"paths"`
	Chunker  ChunkerConfig  `yaml:"chunker"`
	Embedder EmbedderConfig `yaml:"embedder"`
	Answer   AnswerConfig   `yaml:"answer"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/sante-rag/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sante-rag", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Paths:    PathsConfig{BrochuresDir: filepath.Join("data", "brochures"), VectorStoreDir: "vector_store"},
		Chunker:  ChunkerConfig{ChunkSize: 800, ChunkOverlap: 200},
		Embedder: EmbedderConfig{Type: "tfidf"},
		Answer:   AnswerConfig{TopK: 3, MaxChunkChars: 600},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Paths.BrochuresDir == "" {
		cfg.Paths.BrochuresDir = def.Paths.BrochuresDir
	}
	if cfg.Paths.VectorStoreDir == "" {
		cfg.Paths.VectorStoreDir = def.Paths.VectorStoreDir
	}
	if cfg.Chunker.ChunkSize == 0 {
		cfg.Chunker.ChunkSize = def.Chunker.ChunkSize
	}
	if cfg.Chunker.ChunkOverlap == 0 {
		cfg.Chunker.ChunkOverlap = def.Chunker.ChunkOverlap
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = def.Embedder.Type
	}
	if cfg.Embedder.Type == "openai" {
		if cfg.Embedder.OpenAI == nil {
			cfg.Embedder.OpenAI = &OpenAIEmbedderConfig{}
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
	}
	if cfg.Answer.TopK == 0 {
		cfg.Answer.TopK = def.Answer.TopK
	}
	if cfg.Answer.MaxChunkChars == 0 {
		cfg.Answer.MaxChunkChars = def.Answer.MaxChunkChars
	}
}
