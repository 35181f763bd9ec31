package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "STOREPULSE_CONFIG"
	outputDirEnv   = "STOREPULSE_OUT_DIR"
	logLevelEnv    = "STOREPULSE_LOG_LEVEL"
	geminiKeyEnv   = "GEMINI_API_KEY"
	geminiModelEnv = "GEMINI_MODEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig   `yaml:"logging"`
	Store      StoreConfig     `yaml:"store"`
	Gemini     GeminiConfig    `yaml:"gemini"`
	Thresholds ThresholdConfig `yaml:"thresholds"`
	Output     OutputConfig    `yaml:"output"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// StoreConfig describes the app-store web endpoints and locale.
type StoreConfig struct {
	BaseURL string `yaml:"baseUrl"`
	Lang    string `yaml:"lang"`
	Country string `yaml:"country"`
}

// GeminiConfig defines how to contact the Gemini API.
type GeminiConfig struct {
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"apiKey"`
}

// ThresholdConfig bounds the update-recency gate in whole days.
type ThresholdConfig struct {
	MinDays int `yaml:"minDays"`
	MaxDays int `yaml:"maxDays"`
}

// OutputConfig locates the artifact directory.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(geminiKeyEnv); v != "" {
		c.Gemini.APIKey = v
	}

	if v := os.Getenv(geminiModelEnv); v != "" {
		c.Gemini.Model = v
	}

	if v := os.Getenv(outputDirEnv); v != "" {
		c.Output.Dir = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Store.BaseURL != "" {
		base.Store.BaseURL = override.Store.BaseURL
	}
	if override.Store.Lang != "" {
		base.Store.Lang = override.Store.Lang
	}
	if override.Store.Country != "" {
		base.Store.Country = override.Store.Country
	}

	if override.Gemini.BaseURL != "" {
		base.Gemini.BaseURL = override.Gemini.BaseURL
	}
	if override.Gemini.Model != "" {
		base.Gemini.Model = override.Gemini.Model
	}
	if override.Gemini.APIKey != "" {
		base.Gemini.APIKey = override.Gemini.APIKey
	}

	if override.Thresholds.MinDays > 0 {
		base.Thresholds.MinDays = override.Thresholds.MinDays
	}
	if override.Thresholds.MaxDays > 0 {
		base.Thresholds.MaxDays = override.Thresholds.MaxDays
	}

	if override.Output.Dir != "" {
		base.Output.Dir = override.Output.Dir
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Store: StoreConfig{
			BaseURL: "https://play.google.com",
			Lang:    "en",
			Country: "us",
		},
		Gemini: GeminiConfig{
			BaseURL: "https://generativelanguage.googleapis.com",
			Model:   "gemini-2.5-flash",
			APIKey:  "",
		},
		Thresholds: ThresholdConfig{MinDays: 7, MaxDays: 30},
		Output:     OutputConfig{Dir: "."},
	}
}
