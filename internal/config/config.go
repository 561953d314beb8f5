package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv   = "PUBROOT_REVIEW_CONFIG"
	databaseDSNEnv  = "DATABASE_DSN"
	geminiAPIKeyEnv = "GEMINI_API_KEY"
	geminiModelEnv  = "GEMINI_MODEL"
	githubTokenEnv  = "GITHUB_TOKEN"
	githubRepoEnv   = "GITHUB_REPOSITORY"
	s2APIKeyEnv     = "SEMANTIC_SCHOLAR_API_KEY"
	logLevelEnv     = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Database   DatabaseConfig   `yaml:"database"`
	Journal    JournalConfig    `yaml:"journal"`
	Review     ReviewConfig     `yaml:"review"`
	Literature LiteratureConfig `yaml:"literature"`
	GitHub     GitHubConfig     `yaml:"github"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Payment    PaymentConfig    `yaml:"payment"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig describes Postgres connection details. An empty DSN
// switches the application to in-memory storage.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// JournalConfig locates the journal catalogue.
type JournalConfig struct {
	JournalsPath string `yaml:"journalsPath"`
}

// ReviewConfig defines how to contact the Gemini API and when to accept.
type ReviewConfig struct {
	Model           string  `yaml:"model"`
	APIKey          string  `yaml:"apiKey"`
	AcceptThreshold float64 `yaml:"acceptThreshold"`
}

// LiteratureConfig wires the external academic search sources.
type LiteratureConfig struct {
	ArxivURL           string `yaml:"arxivUrl"`
	SemanticScholarURL string `yaml:"semanticScholarUrl"`
	SemanticScholarKey string `yaml:"semanticScholarKey"`
}

// GitHubConfig wires decision comments back to the submission issue.
type GitHubConfig struct {
	APIURL     string `yaml:"apiUrl"`
	Repository string `yaml:"repository"`
	Token      string `yaml:"token"`
}

// SchedulerConfig defines how often reputation maintenance runs.
type SchedulerConfig struct {
	RefreshIntervalHours int `yaml:"refreshIntervalHours"`
}

// RefreshInterval resolves the configured hours to a duration.
func (s SchedulerConfig) RefreshInterval() time.Duration {
	if s.RefreshIntervalHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.RefreshIntervalHours) * time.Hour
}

// PaymentConfig lists codes that unlock the premium tier.
type PaymentConfig struct {
	PremiumCodes []string `yaml:"premiumCodes"`
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
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.Review.APIKey = v
	}

	if v := os.Getenv(geminiModelEnv); v != "" {
		c.Review.Model = v
	}

	if v := os.Getenv(githubTokenEnv); v != "" {
		c.GitHub.Token = v
	}

	if v := os.Getenv(githubRepoEnv); v != "" {
		c.GitHub.Repository = v
	}

	if v := os.Getenv(s2APIKeyEnv); v != "" {
		c.Literature.SemanticScholarKey = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Journal.JournalsPath != "" {
		base.Journal = override.Journal
	}

	if override.Review.Model != "" {
		base.Review.Model = override.Review.Model
	}
	if override.Review.APIKey != "" {
		base.Review.APIKey = override.Review.APIKey
	}
	if override.Review.AcceptThreshold > 0 {
		base.Review.AcceptThreshold = override.Review.AcceptThreshold
	}

	if override.Literature.ArxivURL != "" {
		base.Literature.ArxivURL = override.Literature.ArxivURL
	}
	if override.Literature.SemanticScholarURL != "" {
		base.Literature.SemanticScholarURL = override.Literature.SemanticScholarURL
	}
	if override.Literature.SemanticScholarKey != "" {
		base.Literature.SemanticScholarKey = override.Literature.SemanticScholarKey
	}

	if override.GitHub.APIURL != "" {
		base.GitHub.APIURL = override.GitHub.APIURL
	}
	if override.GitHub.Repository != "" {
		base.GitHub.Repository = override.GitHub.Repository
	}
	if override.GitHub.Token != "" {
		base.GitHub.Token = override.GitHub.Token
	}

	if override.Scheduler.RefreshIntervalHours > 0 {
		base.Scheduler.RefreshIntervalHours = override.Scheduler.RefreshIntervalHours
	}

	if len(override.Payment.PremiumCodes) > 0 {
		base.Payment.PremiumCodes = override.Payment.PremiumCodes
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:  LoggingConfig{Level: "info"},
		Database: DatabaseConfig{DSN: ""},
		Journal:  JournalConfig{JournalsPath: "journals.json"},
		Review: ReviewConfig{
			Model:           "gemini-2.5-flash-lite",
			AcceptThreshold: 6.0,
		},
		Literature: LiteratureConfig{
			ArxivURL:           "https://arxiv.org/search/",
			SemanticScholarURL: "https://api.semanticscholar.org/graph/v1/paper/search",
		},
		GitHub: GitHubConfig{
			APIURL: "https://api.github.com",
		},
		Scheduler: SchedulerConfig{RefreshIntervalHours: 24},
	}
}
