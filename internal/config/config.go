package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults applied when the config file leaves a field zero.
const (
	DefaultListenAddr      = ":8080"
	DefaultWorkerCount     = 1
	DefaultClarifyTimeout  = 10 * time.Second
	DefaultPopTimeout      = 5 * time.Second
	DefaultClarifierURL    = "https://api.openai.com/v1"
	DefaultClarifierModel  = "gpt-4"
	DefaultShutdownTimeout = 10 * time.Second
)

// Config represents the flat hivemind configuration.
// Secrets (API keys, auth tokens) are never stored in the file; they are
// taken from the environment so the file can be committed to dotfiles.
type Config struct {
	Version               string `json:"version"`
	ListenAddr            string `json:"listen_addr,omitempty"`
	DBPath                string `json:"db_path,omitempty"`
	WorkerCount           int    `json:"worker_count,omitempty"`
	ClarifierBaseURL      string `json:"clarifier_base_url,omitempty"`
	ClarifierModel        string `json:"clarifier_model,omitempty"`
	ClarifyTimeoutSeconds int    `json:"clarify_timeout_seconds,omitempty"`
	TwilioFromNumber      string `json:"twilio_from_number,omitempty"`

	// Populated from the environment, not the file.
	ClarifierAPIKey  string `json:"-"`
	TwilioAccountSID string `json:"-"`
	TwilioAuthToken  string `json:"-"`
}

// LoadConfig reads .hivemind/config.json from the specified directory and
// overlays environment variables for secrets.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".hivemind", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	hiveDir := filepath.Join(dir, ".hivemind")
	if err := os.MkdirAll(hiveDir, 0755); err != nil {
		return fmt.Errorf("failed to create .hivemind dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(hiveDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.WorkerCount <= 0 {
		c.WorkerCount = DefaultWorkerCount
	}
	if c.ClarifierBaseURL == "" {
		c.ClarifierBaseURL = DefaultClarifierURL
	}
	if c.ClarifierModel == "" {
		c.ClarifierModel = DefaultClarifierModel
	}
	if c.DBPath == "" {
		if p, err := DefaultDBPath(); err == nil {
			c.DBPath = p
		}
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.ClarifierAPIKey = v
	}
	if v := os.Getenv("TWILIO_ACCOUNT_SID"); v != "" {
		c.TwilioAccountSID = v
	}
	if v := os.Getenv("TWILIO_AUTH_TOKEN"); v != "" {
		c.TwilioAuthToken = v
	}
	if v := os.Getenv("TWILIO_FROM_NUMBER"); v != "" {
		c.TwilioFromNumber = v
	}
}

// ClarifyTimeout returns the clarifier timeout as a duration. The clarifier
// sits on the webhook's critical path, so it must stay well under the SMS
// provider's callback budget.
func (c *Config) ClarifyTimeout() time.Duration {
	if c.ClarifyTimeoutSeconds > 0 {
		return time.Duration(c.ClarifyTimeoutSeconds) * time.Second
	}
	return DefaultClarifyTimeout
}

// DefaultDBPath returns the default database path under the user's home.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".hivemind", "hivemind.db"), nil
}
