package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "UTC"

	configPathEnv = "CONTENTFORGE_CONFIG"

	anthropicKeyEnv   = "ANTHROPIC_API_KEY"
	anthropicModelEnv = "ANTHROPIC_MODEL"
	wpAPIURLEnv       = "WP_API_URL"
	wpUserEnv         = "WP_USER"
	wpAppPasswordEnv  = "WP_APP_PASSWORD"
	wpSEOPluginEnv    = "WORDPRESS_SEO_PLUGIN"
	publishStatusEnv  = "PUBLISH_STATUS"
	unsplashKeyEnv    = "UNSPLASH_ACCESS_KEY"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	githubTokenEnv    = "GH_PAT"
	githubTokenAltEnv = "GITHUB_TOKEN"
	githubOrgEnv      = "GH_ORG"
	selfRepoEnv       = "GITHUB_REPOSITORY"
	minScoreEnv       = "MIN_WORTHINESS_SCORE"
	databaseDSNEnv    = "DATABASE_DSN"

	commitMessageEnv = "COMMIT_MESSAGE"
	commitDiffEnv    = "COMMIT_DIFF"
	commitAuthorEnv  = "COMMIT_AUTHOR"
	screenshotURLEnv = "SCREENSHOT_URLS"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	WordPress WordPressConfig `yaml:"wordpress"`
	Unsplash  UnsplashConfig  `yaml:"unsplash"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	GitHub    GitHubConfig    `yaml:"github"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Database  DatabaseConfig  `yaml:"database"`
}

// LoggingConfig controls the slog console handler.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// AnthropicConfig defines how to contact the completion service.
type AnthropicConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// WordPressConfig wires the content-management REST surface.
type WordPressConfig struct {
	APIURL      string `yaml:"apiUrl"`
	User        string `yaml:"user"`
	AppPassword string `yaml:"appPassword"`
	SEOPlugin   string `yaml:"seoPlugin"`     // "yoast", "rankmath", or "both"
	Status      string `yaml:"publishStatus"` // defaults to "draft"
}

// UnsplashConfig describes the stock-photo search service.
type UnsplashConfig struct {
	AccessKey   string `yaml:"accessKey"`
	ReferralTag string `yaml:"referralTag"`
}

// TelegramConfig wires all data required to send notifications.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// GitHubConfig describes the source-hosting API access.
type GitHubConfig struct {
	Token    string `yaml:"token"`
	Owner    string `yaml:"owner"`
	SelfRepo string `yaml:"selfRepo"`
	// WatchRepo is the single repository tracked by the watch pipeline.
	WatchRepo string `yaml:"watchRepo"`
}

// PipelineConfig groups orchestration knobs shared by all pipelines.
type PipelineConfig struct {
	WorthinessThreshold int      `yaml:"worthinessThreshold"`
	ScreenshotURLs      []string `yaml:"screenshotUrls"`
	StockPhotoCount     int      `yaml:"stockPhotoCount"`
	MaxTrackedSHAs      int      `yaml:"maxTrackedSHAs"`
	StateFile           string   `yaml:"stateFile"`
	ShaLogFile          string   `yaml:"shaLogFile"`
}

// SchedulerConfig defines when serve-mode pipelines run.
type SchedulerConfig struct {
	WeeklyCron string         `yaml:"weeklyCron"`
	PollCron   string         `yaml:"pollCron"`
	Timezone   string         `yaml:"timezone"`
	location   *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// DatabaseConfig describes the optional publish-log Postgres connection.
// An empty DSN disables audit logging entirely.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// CommitInput is the env-sourced payload of the commit pipeline.
type CommitInput struct {
	Message     string
	Diff        string
	AuthorLogin string
}

// Load builds the configuration from defaults, an optional YAML file pointed
// to by CONTENTFORGE_CONFIG, and environment overrides, in that order.
func Load() Config {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

// Validate enforces the per-mode required credentials. It must run before
// any remote call: configuration errors are fatal at startup.
func (c Config) Validate(mode string) error {
	if c.Anthropic.APIKey == "" {
		return fmt.Errorf("%s is required", anthropicKeyEnv)
	}
	if c.WordPress.APIURL == "" || c.WordPress.User == "" || c.WordPress.AppPassword == "" {
		return fmt.Errorf("%s, %s and %s are required", wpAPIURLEnv, wpUserEnv, wpAppPasswordEnv)
	}

	switch mode {
	case "poll", "watch":
		if c.GitHub.Token == "" {
			return fmt.Errorf("%s is required for cross-repo access", githubTokenEnv)
		}
		if c.GitHub.Owner == "" {
			return fmt.Errorf("%s is required (your GitHub org or username)", githubOrgEnv)
		}
		if mode == "watch" && c.GitHub.WatchRepo == "" {
			return fmt.Errorf("github.watchRepo is required for watch mode")
		}
	}

	switch c.WordPress.SEOPlugin {
	case "yoast", "rankmath", "both":
	default:
		return fmt.Errorf("wordpress.seoPlugin must be yoast, rankmath or both, got %q", c.WordPress.SEOPlugin)
	}

	return nil
}

// CommitInput reads the commit pipeline payload from the environment.
func (c Config) CommitInput() (CommitInput, error) {
	in := CommitInput{
		Message:     os.Getenv(commitMessageEnv),
		Diff:        os.Getenv(commitDiffEnv),
		AuthorLogin: os.Getenv(commitAuthorEnv),
	}
	if in.Message == "" || in.Diff == "" {
		return CommitInput{}, fmt.Errorf("%s and %s environment variables are required", commitMessageEnv, commitDiffEnv)
	}
	return in, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(anthropicKeyEnv); v != "" {
		c.Anthropic.APIKey = v
	}
	if v := os.Getenv(anthropicModelEnv); v != "" {
		c.Anthropic.Model = v
	}

	if v := os.Getenv(wpAPIURLEnv); v != "" {
		c.WordPress.APIURL = v
	}
	if v := os.Getenv(wpUserEnv); v != "" {
		c.WordPress.User = v
	}
	if v := os.Getenv(wpAppPasswordEnv); v != "" {
		c.WordPress.AppPassword = v
	}
	if v := os.Getenv(wpSEOPluginEnv); v != "" {
		c.WordPress.SEOPlugin = v
	}
	if v := os.Getenv(publishStatusEnv); v != "" {
		c.WordPress.Status = v
	}

	if v := os.Getenv(unsplashKeyEnv); v != "" {
		c.Unsplash.AccessKey = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Telegram.ChatID = v
	}

	if v := os.Getenv(githubTokenEnv); v != "" {
		c.GitHub.Token = v
	} else if v := os.Getenv(githubTokenAltEnv); v != "" {
		c.GitHub.Token = v
	}
	if v := os.Getenv(githubOrgEnv); v != "" {
		c.GitHub.Owner = v
	}
	if v := os.Getenv(selfRepoEnv); v != "" {
		c.GitHub.SelfRepo = v
	}

	if v := os.Getenv(minScoreEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Pipeline.WorthinessThreshold = n
		} else {
			log.Printf("config: invalid %s=%q, keeping %d", minScoreEnv, v, c.Pipeline.WorthinessThreshold)
		}
	}

	if v := os.Getenv(screenshotURLEnv); v != "" {
		c.Pipeline.ScreenshotURLs = splitURLList(v)
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
}

func splitURLList(raw string) []string {
	var urls []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet-4-5",
		},
		WordPress: WordPressConfig{
			SEOPlugin: "both",
			Status:    "draft",
		},
		Unsplash: UnsplashConfig{
			ReferralTag: "parkk_blog",
		},
		Pipeline: PipelineConfig{
			WorthinessThreshold: 7,
			StockPhotoCount:     3,
			MaxTrackedSHAs:      500,
			StateFile:           ".poll-state.json",
			ShaLogFile:          ".processed-shas.json",
		},
		Scheduler: SchedulerConfig{
			WeeklyCron: "0 9 * * 1",
			PollCron:   "0 6 * * *",
			Timezone:   defaultTimezone,
			location:   tz,
		},
	}
}
