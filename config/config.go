package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BaSui01/agentchat/types"
)

// Config is the complete agentchat configuration.
type Config struct {
	// Log configures the logger.
	Log LogConfig `yaml:"log"`
	// Provider configures the reply backend.
	Provider ProviderConfig `yaml:"provider"`
	// Chat configures the orchestrator.
	Chat ChatConfig `yaml:"chat"`
	// Agents is the conversation roster; order seeds the walk.
	Agents []AgentConfig `yaml:"agents"`
	// Metrics configures the Prometheus listener.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is json or console.
	Format string `yaml:"format"`
	// Output is the log destination: stderr, stdout, or a file path.
	Output string `yaml:"output"`
}

// ProviderConfig configures the reply backend.
type ProviderConfig struct {
	Name    string        `yaml:"name"`
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// ChatConfig configures the orchestrator.
type ChatConfig struct {
	// MaxTurns is a safety cap on conversation length; 0 disables it.
	MaxTurns int `yaml:"max_turns"`
	// TokenBudget terminates once the history exceeds it; 0 disables it.
	TokenBudget int `yaml:"token_budget"`
	// SendIntroduction synthesizes a roster introduction before the first
	// turn. Leave false for self-directed routing.
	SendIntroduction bool `yaml:"send_introduction"`
	// Seed seeds recipient election for reproducible walks; 0 means
	// time-seeded.
	Seed int64 `yaml:"seed"`
}

// AgentConfig declares one conversation participant.
type AgentConfig struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	SystemPrompt string   `yaml:"system_prompt"`
	Neighbors    []string `yaml:"neighbors"`
}

// MetricsConfig configures the Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "console", Output: "stderr"},
		Provider: ProviderConfig{
			Name:    "openai",
			BaseURL: "https://api.openai.com",
			Model:   "gpt-4o-mini",
			Timeout: 30 * time.Second,
		},
		Chat:    ChatConfig{MaxTurns: 50},
		Metrics: MetricsConfig{Addr: ":9102"},
	}
}

// Load reads the config file at path over the defaults and applies
// environment overrides. An empty path skips the file stage.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from AGENTCHAT_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("AGENTCHAT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("AGENTCHAT_PROVIDER_API_KEY"); v != "" {
		c.Provider.APIKey = v
	}
	if v := os.Getenv("AGENTCHAT_PROVIDER_BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv("AGENTCHAT_PROVIDER_MODEL"); v != "" {
		c.Provider.Model = v
	}
	if v := os.Getenv("AGENTCHAT_CHAT_MAX_TURNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Chat.MaxTurns = n
		}
	}
	if v := os.Getenv("AGENTCHAT_CHAT_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Chat.Seed = n
		}
	}
	if v := os.Getenv("AGENTCHAT_METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
}

// Validate checks the roster and topology for consistency: at least one
// agent, unique names, and neighbor names that resolve to roster members.
func (c *Config) Validate() error {
	if len(c.Agents) == 0 {
		return types.NewError(types.ErrCodeInvalidConfig, "at least one agent is required")
	}
	names := make(map[string]struct{}, len(c.Agents))
	for _, a := range c.Agents {
		if a.Name == "" {
			return types.NewError(types.ErrCodeInvalidConfig, "agent name must not be empty")
		}
		if _, dup := names[a.Name]; dup {
			return types.NewError(types.ErrCodeInvalidConfig, fmt.Sprintf("duplicate agent name: %s", a.Name))
		}
		names[a.Name] = struct{}{}
	}
	for _, a := range c.Agents {
		for _, n := range a.Neighbors {
			if _, ok := names[n]; !ok {
				return types.NewError(types.ErrCodeInvalidConfig,
					fmt.Sprintf("agent %q lists unknown neighbor %q", a.Name, n))
			}
		}
	}
	return nil
}

// Neighbors returns the adjacency map declared by the roster.
func (c *Config) Neighbors() map[string][]string {
	adj := make(map[string][]string, len(c.Agents))
	for _, a := range c.Agents {
		adj[a.Name] = append([]string(nil), a.Neighbors...)
	}
	return adj
}
