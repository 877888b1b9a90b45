package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Analysis struct {
		FormBaseType    string   `yaml:"form_base_type"`
		ControlPrefixes []string `yaml:"control_prefixes"`
		NoisePrefixes   []string `yaml:"noise_prefixes"` // appended to the built-in taxonomy
		SetterLookahead int      `yaml:"setter_lookahead"`
	} `yaml:"analysis"`
	Neo4j struct {
		URI      string `yaml:"uri"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
	} `yaml:"neo4j"`
	AI struct {
		Model  string `yaml:"model"` // LLM model for report narration
		APIKey string `yaml:"api_key"`
	} `yaml:"ai"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Neo4j.URI = "bolt://localhost:7687"
	cfg.Neo4j.User = "neo4j"
	cfg.AI.Model = "gemini-2.0-flash"
	applyEnv(cfg)
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	applyEnv(cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if apiKey := os.Getenv("ASMLENS_API_KEY"); apiKey != "" {
		cfg.AI.APIKey = apiKey
	}
	if model := os.Getenv("ASMLENS_AI_MODEL"); model != "" {
		cfg.AI.Model = model
	}
	if uri := os.Getenv("ASMLENS_NEO4J_URI"); uri != "" {
		cfg.Neo4j.URI = uri
	}
	if user := os.Getenv("ASMLENS_NEO4J_USER"); user != "" {
		cfg.Neo4j.User = user
	}
	if pass := os.Getenv("ASMLENS_NEO4J_PASS"); pass != "" {
		cfg.Neo4j.Password = pass
	}
}
