package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// projectTypePatterns maps marker files to human-readable project types and
// the extra globs worth excluding for that ecosystem.
var projectTypePatterns = []struct {
	Marker  string
	Name    string
	Exclude []string
}{
	{Marker: "go.mod", Name: "Go", Exclude: []string{"vendor/**"}},
	{Marker: "Cargo.toml", Name: "Rust"},
	{Marker: "Move.toml", Name: "Move"},
	{Marker: "package.json", Name: "Node.js/TypeScript", Exclude: []string{"dist/**", "coverage/**"}},
	{Marker: "pyproject.toml", Name: "Python", Exclude: []string{".venv/**", "venv/**", "*.egg-info/**"}},
	{Marker: "requirements.txt", Name: "Python", Exclude: []string{".venv/**", "venv/**"}},
	{Marker: "setup.py", Name: "Python", Exclude: []string{".venv/**", "venv/**"}},
}

// detectProjectType checks dir for well-known project markers.
func detectProjectType(dir string) (name string, exclude []string) {
	for _, p := range projectTypePatterns {
		if _, err := os.Stat(filepath.Join(dir, p.Marker)); err == nil {
			return p.Name, p.Exclude
		}
	}
	return "", nil
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to codevec! Let's configure your project.")
	fmt.Println()

	projType, projExclude := detectProjectType(".")
	if projType != "" {
		fmt.Printf("Detected project type: %s\n\n", projType)
	}

	providerPrompt := promptui.Select{
		Label: "Select embedding provider",
		Items: []string{
			"fastembed (local, no API key)",
			"openai",
			"ollama",
			"google",
		},
	}
	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	providers := []ProviderType{ProviderFastEmbed, ProviderOpenAI, ProviderOllama, ProviderGoogle}
	provider := providers[providerIdx]

	modelPrompt := promptui.Prompt{
		Label:   "Embedding model",
		Default: DefaultModels[provider],
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	cfg := DefaultConfig()
	cfg.EmbeddingProvider = provider
	cfg.EmbeddingModel = strings.TrimSpace(model)

	if provider == ProviderOllama {
		urlPrompt := promptui.Prompt{
			Label:   "Ollama URL",
			Default: cfg.OllamaURL,
		}
		if cfg.OllamaURL, err = urlPrompt.Run(); err != nil {
			return nil, fmt.Errorf("ollama url: %w", err)
		}
	}

	storePrompt := promptui.Select{
		Label: "Select vector store",
		Items: []string{
			"flat    (exact search, sqlite file)",
			"chromem (chromem-go collection)",
		},
	}
	storeIdx, _, err := storePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("store selection: %w", err)
	}
	cfg.Store = []StoreType{StoreFlat, StoreChromem}[storeIdx]

	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the index",
		Default: cfg.OutputDir,
	}
	if cfg.OutputDir, err = outputPrompt.Run(); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: strings.Join(projExclude, ","),
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	cfg.Exclude = append(cfg.Exclude, splitAndTrim(excludeStr)...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if envVar := APIKeyEnvVar(provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running codevec index.\n", envVar)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and drops empty tokens.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
