package configs

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Ingest  IngestConfig  `yaml:"ingest"`
	LLM     LLMConfig     `yaml:"llm"`
	Qdrant  QdrantConfig  `yaml:"qdrant"`
	Storage StorageConfig `yaml:"storage"`
	Discord DiscordConfig `yaml:"discord,omitempty"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

type IngestConfig struct {
	TempFolder   string `yaml:"temp_folder" validate:"required"`
	ChunkSize    int    `yaml:"chunk_size" validate:"gt=0"`
	ChunkOverlap int    `yaml:"chunk_overlap" validate:"gte=0"`
}

type LLMConfig struct {
	BaseURL        string `yaml:"base_url" validate:"required,url"`
	Model          string `yaml:"model" validate:"required"`
	EmbeddingModel string `yaml:"embedding_model" validate:"required"`
}

type QdrantConfig struct {
	Host       string `yaml:"host" validate:"required"`
	Port       int    `yaml:"port" validate:"gt=0"`
	Collection string `yaml:"collection" validate:"required"`
	VectorSize int    `yaml:"vector_size" validate:"gt=0"`
	TopK       int    `yaml:"top_k" validate:"gt=0"`
}

type StorageConfig struct {
	DBPath string `yaml:"db_path" validate:"required"`
}

type DiscordConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Token     string `yaml:"token,omitempty"`
	ChannelID string `yaml:"channel_id,omitempty"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Ingest: IngestConfig{
			TempFolder:   "./data",
			ChunkSize:    1024,
			ChunkOverlap: 100,
		},
		LLM: LLMConfig{
			BaseURL:        "http://localhost:11434",
			Model:          "llama3.2",
			EmbeddingModel: "llama3.2",
		},
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "local-rag",
			VectorSize: 3072,
			TopK:       4,
		},
		Storage: StorageConfig{DBPath: "./data/ragserver.db"},
	}
}

// LoadConfig reads a YAML file over the defaults. Values may reference
// environment variables ($VAR), expanded before parsing.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configs file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configs: %w", err)
	}

	// Validated once at startup, not per split call.
	if c.Ingest.ChunkOverlap >= c.Ingest.ChunkSize {
		return fmt.Errorf("chunk_overlap (%d) must be smaller than chunk_size (%d)",
			c.Ingest.ChunkOverlap, c.Ingest.ChunkSize)
	}

	if c.Discord.Enabled && c.Discord.Token == "" {
		return fmt.Errorf("discord client enabled but no token configured")
	}

	return nil
}
