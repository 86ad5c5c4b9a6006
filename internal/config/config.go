package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Vector   VectorConfig   `yaml:"vector"`
	EmbedLLM LLMConfig      `yaml:"embed_llm"`
	ChatLLM  LLMConfig      `yaml:"chat_llm"`
	RAG      RAGConfig      `yaml:"rag"`
}

type ServerConfig struct {
	Addr              string   `yaml:"addr"`
	AuthToken         string   `yaml:"auth_token"`
	MaxUploadBytes    int64    `yaml:"max_upload_bytes"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

type DatabaseConfig struct {
	URL   string `yaml:"url"`
	Key   string `yaml:"key"`
	Debug bool   `yaml:"debug"`
}

type StorageConfig struct {
	Dir string `yaml:"dir"`
}

type VectorConfig struct {
	Path       string `yaml:"path"`
	Collection string `yaml:"collection"`
	InMemory   bool   `yaml:"in_memory"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // openai or ollama
	BaseURL  string `yaml:"base_url"`
	Key      string `yaml:"key"`
	Model    string `yaml:"model"`
}

type RAGConfig struct {
	ChunkMinSize     int `yaml:"chunk_min_size"`
	ChunkMaxSize     int `yaml:"chunk_max_size"`
	TopK             int `yaml:"top_k"`
	FetchFactor      int `yaml:"fetch_factor"`
	MaxContextChars  int `yaml:"max_context_chars"`
	TimeoutSeconds   int `yaml:"timeout_seconds"`
	IndexRetries     int `yaml:"index_retries"`
	IndexConcurrency int `yaml:"index_concurrency"`
}

const (
	defaultAddr             = ":8080"
	defaultMaxUploadBytes   = 10 << 20
	defaultChunkMinSize     = 500
	defaultChunkMaxSize     = 800
	defaultTopK             = 10
	defaultFetchFactor      = 3
	defaultMaxContextChars  = 12000
	defaultTimeoutSeconds   = 60
	defaultIndexRetries     = 3
	defaultIndexConcurrency = 4
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

// applyEnv lets secrets come from the environment instead of the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("OGNI_DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("OGNI_DATABASE_KEY"); v != "" {
		c.Database.Key = v
	}
	if v := os.Getenv("OGNI_EMBED_LLM_KEY"); v != "" {
		c.EmbedLLM.Key = v
	}
	if v := os.Getenv("OGNI_CHAT_LLM_KEY"); v != "" {
		c.ChatLLM.Key = v
	}
	if v := os.Getenv("OGNI_AUTH_TOKEN"); v != "" {
		c.Server.AuthToken = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = defaultMaxUploadBytes
	}
	if len(c.Server.AllowedExtensions) == 0 {
		c.Server.AllowedExtensions = []string{"pdf", "docx", "txt"}
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "./data/resumes"
	}
	if c.Vector.Path == "" {
		c.Vector.Path = "./data/chromemdb"
	}
	if c.Vector.Collection == "" {
		c.Vector.Collection = "resume_chunks"
	}
	if c.RAG.ChunkMinSize == 0 {
		c.RAG.ChunkMinSize = defaultChunkMinSize
	}
	if c.RAG.ChunkMaxSize == 0 {
		c.RAG.ChunkMaxSize = defaultChunkMaxSize
	}
	if c.RAG.TopK == 0 {
		c.RAG.TopK = defaultTopK
	}
	if c.RAG.FetchFactor == 0 {
		c.RAG.FetchFactor = defaultFetchFactor
	}
	if c.RAG.MaxContextChars == 0 {
		c.RAG.MaxContextChars = defaultMaxContextChars
	}
	if c.RAG.TimeoutSeconds == 0 {
		c.RAG.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.RAG.IndexRetries == 0 {
		c.RAG.IndexRetries = defaultIndexRetries
	}
	if c.RAG.IndexConcurrency == 0 {
		c.RAG.IndexConcurrency = defaultIndexConcurrency
	}
}

// Timeout is the per-call deadline for external vector and LLM requests.
func (c *RAGConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
