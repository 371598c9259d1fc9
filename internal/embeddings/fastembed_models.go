package embeddings

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFastEmbedModel is used when no model name is configured.
const DefaultFastEmbedModel = "all-MiniLM-L6-v2"

type fastEmbedModel struct {
	id   string // fastembed model identifier
	dims int
}

var fastEmbedModels = map[string]fastEmbedModel{
	"all-MiniLM-L6-v2":                       {"fast-all-MiniLM-L6-v2", 384},
	"sentence-transformers/all-MiniLM-L6-v2": {"fast-all-MiniLM-L6-v2", 384},
	"bge-small-en-v1.5":                      {"fast-bge-small-en-v1.5", 384},
	"BAAI/bge-small-en-v1.5":                 {"fast-bge-small-en-v1.5", 384},
	"bge-small-en":                           {"fast-bge-small-en", 384},
	"BAAI/bge-small-en":                      {"fast-bge-small-en", 384},
	"bge-base-en-v1.5":                       {"fast-bge-base-en-v1.5", 768},
	"BAAI/bge-base-en-v1.5":                  {"fast-bge-base-en-v1.5", 768},
	"bge-base-en":                            {"fast-bge-base-en", 768},
	"BAAI/bge-base-en":                       {"fast-bge-base-en", 768},
}

// resolveFastEmbedModel maps a friendly or fastembed-native name to the
// model identifier and its output dimension.
func resolveFastEmbedModel(name string) (fastEmbedModel, error) {
	if name == "" {
		name = DefaultFastEmbedModel
	}
	if m, ok := fastEmbedModels[name]; ok {
		return m, nil
	}
	for _, m := range fastEmbedModels {
		if m.id == name {
			return m, nil
		}
	}
	return fastEmbedModel{}, fmt.Errorf("fastembed: %w: %q", ErrUnsupportedModel, name)
}

// fastEmbedCacheDir is where ONNX model files are downloaded.
func fastEmbedCacheDir() string {
	if dir := os.Getenv("CODEVEC_MODEL_CACHE"); dir != "" {
		return dir
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "codevec", "models")
	}
	return filepath.Join(".", "local_cache")
}
