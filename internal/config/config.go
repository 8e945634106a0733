package config

import (
	"log"
	"os"
	"strconv"
)

const (
	papersURLEnv      = "PAPERS_URL"
	outputDirEnv      = "OUTPUT_DIR"
	topNEnv           = "TOP_N"
	indexDBEnv        = "PAPER_INDEX_DB"
	logLevelEnv       = "LOG_LEVEL"
	openAIKeyEnv      = "OPENAI_API_KEY"
	openAIModelEnv    = "OPENAI_MODEL"
	openAIEndpointEnv = "OPENAI_ENDPOINT"
	hfKeyEnv          = "HF_API_KEY"
	hfModelEnv        = "HF_MODEL"
	hfEndpointEnv     = "HF_ENDPOINT"
)

// Config holds all settings, resolved once at process start and passed
// explicitly into the components that need them.
type Config struct {
	PapersURL string
	OutputDir string
	TopN      int
	IndexDB   string
	OpenAI    OpenAIConfig
	HF        HFConfig
	Logging   LoggingConfig
}

// OpenAIConfig defines how to contact an OpenAI-compatible chat API.
type OpenAIConfig struct {
	Endpoint     string
	Model        string
	APIKey       string
	SystemPrompt string
}

// HFConfig defines how to contact the Hugging Face Inference API.
type HFConfig struct {
	Endpoint string
	Model    string
	APIKey   string
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying documented
// defaults for anything unset.
func Load() Config {
	cfg := defaultConfig()

	if v := os.Getenv(papersURLEnv); v != "" {
		cfg.PapersURL = v
	}
	if v := os.Getenv(outputDirEnv); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv(topNEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TopN = n
		} else {
			log.Printf("config: invalid %s=%q, keeping %d", topNEnv, v, cfg.TopN)
		}
	}
	if v := os.Getenv(indexDBEnv); v != "" {
		cfg.IndexDB = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv(openAIKeyEnv); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv(openAIModelEnv); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := os.Getenv(openAIEndpointEnv); v != "" {
		cfg.OpenAI.Endpoint = v
	}

	if v := os.Getenv(hfKeyEnv); v != "" {
		cfg.HF.APIKey = v
	}
	if v := os.Getenv(hfModelEnv); v != "" {
		cfg.HF.Model = v
	}
	if v := os.Getenv(hfEndpointEnv); v != "" {
		cfg.HF.Endpoint = v
	}

	return cfg
}

func defaultConfig() Config {
	return Config{
		PapersURL: "https://huggingface.co/papers",
		OutputDir: "content/papers",
		TopN:      10,
		OpenAI: OpenAIConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			APIKey:       "",
			SystemPrompt: "You are a helpful AI researcher writing brief paper summaries for a technical blog.",
		},
		HF: HFConfig{
			Endpoint: "https://api-inference.huggingface.co/models",
			Model:    "facebook/bart-large-cnn",
			APIKey:   "",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
