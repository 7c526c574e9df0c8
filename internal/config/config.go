package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	OpenAI    OpenAIConfig    `koanf:"openai"`
	Anthropic AnthropicConfig `koanf:"anthropic"`
	Storage   StorageConfig   `koanf:"storage"`
	Chat      ChatConfig      `koanf:"chat"`
	Auth      AuthConfig      `koanf:"auth"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type OpenAIConfig struct {
	APIKey string `koanf:"api_key"`
}

type AnthropicConfig struct {
	APIKey string `koanf:"api_key"`
}

type StorageConfig struct {
	Type   string       `koanf:"type"` // sqlite, memory
	SQLite SQLiteConfig `koanf:"sqlite"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

type ChatConfig struct {
	// WordDelayMS is the pacing delay between streamed message words.
	// UI effect only, not a correctness knob.
	WordDelayMS int `koanf:"word_delay_ms"`
}

type AuthConfig struct {
	// APIKeyHashes are SHA-256 hex digests of accepted API keys. Empty means
	// the API is open.
	APIKeyHashes []string `koanf:"api_key_hashes"`
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads config.yaml if present, then layers FLEXOS_-prefixed environment
// variables on top. Double underscores map to nesting, so
// FLEXOS_ANTHROPIC__API_KEY sets anthropic.api_key.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider("config.yaml"), yaml.Parser()); err != nil {
		// File not found is OK, we'll use env vars
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("FLEXOS_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "FLEXOS_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	// Default values
	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}
	if !k.Exists("storage.type") {
		k.Set("storage.type", "memory")
	}
	if !k.Exists("chat.word_delay_ms") {
		k.Set("chat.word_delay_ms", 50)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	// Substitute environment variables in API keys so config.yaml can carry
	// ${OPENAI_API_KEY} style references instead of secrets.
	cfg.OpenAI.APIKey = substituteEnvVars(cfg.OpenAI.APIKey)
	cfg.Anthropic.APIKey = substituteEnvVars(cfg.Anthropic.APIKey)

	return &cfg, nil
}

func substituteEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
