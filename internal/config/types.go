package config

// ProviderType identifies an embedding provider.
type ProviderType string

const (
	ProviderFastEmbed ProviderType = "fastembed"
	ProviderOpenAI    ProviderType = "openai"
	ProviderOllama    ProviderType = "ollama"
	ProviderGoogle    ProviderType = "google"
)

// StoreType identifies a vector store backend.
type StoreType string

const (
	StoreFlat    StoreType = "flat"
	StoreChromem StoreType = "chromem"
)

// Config is the top-level codevec configuration, corresponding to .codevec.yml.
type Config struct {
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	OllamaURL         string       `yaml:"ollama_url" koanf:"ollama_url"`
	Store             StoreType    `yaml:"store" koanf:"store"`
	OutputDir         string       `yaml:"output_dir" koanf:"output_dir"`
	Exclude           []string     `yaml:"exclude" koanf:"exclude"`
	MaxFileSize       int64        `yaml:"max_file_size" koanf:"max_file_size"`
	MaxConcurrency    int          `yaml:"max_concurrency" koanf:"max_concurrency"`
	BatchSize         int          `yaml:"batch_size" koanf:"batch_size"`
	Server            ServerConfig `yaml:"server" koanf:"server"`
	Log               LogConfig    `yaml:"log" koanf:"log"`
}

// ServerConfig holds settings for the HTTP search API.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
