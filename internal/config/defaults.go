package config

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".codevec.yml"

// DefaultModels maps each provider to the embedding model used when none
// is configured.
var DefaultModels = map[ProviderType]string{
	ProviderFastEmbed: "all-MiniLM-L6-v2",
	ProviderOpenAI:    "text-embedding-3-small",
	ProviderOllama:    "nomic-embed-text",
	ProviderGoogle:    "gemini-embedding-001",
}

// DefaultExcludes are glob patterns skipped in addition to the crawler's
// built-in directory exclusions.
var DefaultExcludes = []string{
	"*.min.js",
	"*.min.css",
	"package-lock.json",
	"yarn.lock",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingProvider: ProviderFastEmbed,
		EmbeddingModel:    DefaultModels[ProviderFastEmbed],
		OllamaURL:         "http://localhost:11434",
		Store:             StoreFlat,
		OutputDir:         ".codevec",
		Exclude:           append([]string(nil), DefaultExcludes...),
		MaxFileSize:       10 << 20,
		MaxConcurrency:    4,
		BatchSize:         64,
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ModelFor returns the configured embedding model, falling back to the
// provider's default.
func (c *Config) Model() string {
	if c.EmbeddingModel != "" {
		return c.EmbeddingModel
	}
	return DefaultModels[c.EmbeddingProvider]
}
