package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds everything the process needs, loaded once at startup and
// passed down by injection. Business logic never reads the environment.
type Config struct {
	ServerAddr   string `json:"server_addr,omitempty"`
	DataDir      string `json:"data_dir,omitempty"`
	PersonasPath string `json:"personas_path,omitempty"`
	LLM          *LLM   `json:"llm,omitempty"`
}

// LLM configures the model backend. BlueprintModel may differ from the chat
// model; it falls back to Model when unset.
type LLM struct {
	Provider       string  `json:"provider,omitempty"`
	Model          string  `json:"model,omitempty"`
	BlueprintModel string  `json:"blueprint_model,omitempty"`
	APIKey         string  `json:"api_key,omitempty"`
	APIKeyEnv      string  `json:"api_key_env,omitempty"`
	BaseURL        string  `json:"base_url,omitempty"`
	Temperature    float64 `json:"temperature,omitempty"`
}

// Load reads JSON config from disk and backfills defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.backfill()
	return cfg, nil
}

func (c *Config) backfill() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.LLM != nil {
		if c.LLM.BlueprintModel == "" {
			c.LLM.BlueprintModel = c.LLM.Model
		}
		if c.LLM.Temperature == 0 {
			c.LLM.Temperature = 0.7
		}
	}
}

// ResolveAPIKey returns the literal key when set, otherwise the value of the
// configured env var, otherwise OPENAI_API_KEY.
func (l *LLM) ResolveAPIKey() string {
	if l.APIKey != "" {
		return l.APIKey
	}
	if l.APIKeyEnv != "" {
		if v := os.Getenv(l.APIKeyEnv); v != "" {
			return v
		}
	}
	return os.Getenv("OPENAI_API_KEY")
}
