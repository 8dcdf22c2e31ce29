package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dyluth/dexteam/internal/draft"
	"github.com/dyluth/dexteam/internal/pokedb"
	"github.com/dyluth/dexteam/internal/timespec"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "dexteam.yml"

// Defaults applied by Validate when a field is omitted
const (
	DefaultBaseURL              = pokedb.DefaultBaseURL
	DefaultCatalogPath          = pokedb.DefaultCatalogPath
	DefaultUserAgent            = pokedb.DefaultUserAgent
	DefaultTimeout              = "30s"
	DefaultMaxRetries           = pokedb.DefaultMaxRetries
	DefaultMaxSelectionAttempts = draft.DefaultMaxSelectionAttempts
	DefaultMaxDraftAttempts     = draft.DefaultMaxDraftAttempts
	DefaultMaxRounds            = draft.DefaultMaxRounds
	DefaultNamespace            = "default"
	DefaultTTL                  = "7d"
	DefaultOutputPath           = "team.html"
)

// DexteamConfig represents the top-level dexteam.yml configuration
type DexteamConfig struct {
	Version string        `yaml:"version"`
	Source  *SourceConfig `yaml:"source,omitempty"`
	Draft   *DraftConfig  `yaml:"draft,omitempty"`
	Cache   *CacheConfig  `yaml:"cache,omitempty"`
	Output  *OutputConfig `yaml:"output,omitempty"`
}

// SourceConfig specifies where and how the catalog is fetched
type SourceConfig struct {
	BaseURL     string `yaml:"base_url,omitempty"`
	CatalogPath string `yaml:"catalog_path,omitempty"`
	UserAgent   string `yaml:"user_agent,omitempty"`
	Timeout     string `yaml:"timeout,omitempty"`     // Per-request timeout, e.g. "30s"
	MaxRetries  *int   `yaml:"max_retries,omitempty"` // Retries after the first try (0 = no retries, default = 3)

	timeout time.Duration
}

// DraftConfig specifies the attempt ceilings of the team search
type DraftConfig struct {
	MaxSelectionAttempts int `yaml:"max_selection_attempts,omitempty"` // Random restarts per pair selection
	MaxDraftAttempts     int `yaml:"max_draft_attempts,omitempty"`     // Redrafts per pair selection
	MaxRounds            int `yaml:"max_rounds,omitempty"`             // Pair selections before giving up
}

// CacheConfig specifies the optional Redis cache
type CacheConfig struct {
	RedisURL  string `yaml:"redis_url,omitempty"` // Empty disables caching
	Namespace string `yaml:"namespace,omitempty"`
	TTL       string `yaml:"ttl,omitempty"` // e.g. "7d", "0s" keeps entries forever

	ttl time.Duration
}

// OutputConfig specifies where the rendered team page is written
type OutputConfig struct {
	Path string `yaml:"path,omitempty"`
}

// TimeoutDuration returns the parsed request timeout. Valid after Validate.
func (s *SourceConfig) TimeoutDuration() time.Duration {
	return s.timeout
}

// TTLDuration returns the parsed cache TTL. Valid after Validate.
func (c *CacheConfig) TTLDuration() time.Duration {
	return c.ttl
}

// ClientOptions converts the section into catalog client options.
func (s *SourceConfig) ClientOptions() pokedb.Options {
	return pokedb.Options{
		BaseURL:     s.BaseURL,
		CatalogPath: s.CatalogPath,
		UserAgent:   s.UserAgent,
		Timeout:     s.timeout,
		MaxRetries:  *s.MaxRetries,
	}
}

// Limits converts the section into search limits.
func (d *DraftConfig) Limits() draft.Limits {
	return draft.Limits{
		MaxSelectionAttempts: d.MaxSelectionAttempts,
		MaxDraftAttempts:     d.MaxDraftAttempts,
		MaxRounds:            d.MaxRounds,
	}
}

// Enabled reports whether a Redis cache is configured.
func (c *CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}

// Default returns a validated configuration with every default applied.
func Default() *DexteamConfig {
	c := &DexteamConfig{Version: "1.0"}
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return c
}

// Validate performs strict validation on the configuration and fills in
// defaults for omitted sections and fields
func (c *DexteamConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Source == nil {
		c.Source = &SourceConfig{}
	}
	if err := c.Source.validate(); err != nil {
		return err
	}

	if c.Draft == nil {
		c.Draft = &DraftConfig{}
	}
	if err := c.Draft.validate(); err != nil {
		return err
	}

	if c.Cache == nil {
		c.Cache = &CacheConfig{}
	}
	if err := c.Cache.validate(); err != nil {
		return err
	}

	if c.Output == nil {
		c.Output = &OutputConfig{}
	}
	if c.Output.Path == "" {
		c.Output.Path = DefaultOutputPath
	}

	return nil
}

func (s *SourceConfig) validate() error {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("source.base_url must be an absolute http(s) URL, got %q", s.BaseURL)
	}

	if s.CatalogPath == "" {
		s.CatalogPath = DefaultCatalogPath
	}
	if !strings.HasPrefix(s.CatalogPath, "/") {
		return fmt.Errorf("source.catalog_path must start with '/', got %q", s.CatalogPath)
	}

	if s.UserAgent == "" {
		s.UserAgent = DefaultUserAgent
	}

	if s.Timeout == "" {
		s.Timeout = DefaultTimeout
	}
	s.timeout, err = timespec.ParseDuration(s.Timeout)
	if err != nil {
		return fmt.Errorf("source.timeout: %w", err)
	}
	if s.timeout == 0 {
		return fmt.Errorf("source.timeout must be greater than zero")
	}

	if s.MaxRetries == nil {
		defaultRetries := DefaultMaxRetries
		s.MaxRetries = &defaultRetries
	}
	if *s.MaxRetries < 0 {
		return fmt.Errorf("source.max_retries must be >= 0, got %d", *s.MaxRetries)
	}

	return nil
}

func (d *DraftConfig) validate() error {
	if d.MaxSelectionAttempts == 0 {
		d.MaxSelectionAttempts = DefaultMaxSelectionAttempts
	}
	if d.MaxDraftAttempts == 0 {
		d.MaxDraftAttempts = DefaultMaxDraftAttempts
	}
	if d.MaxRounds == 0 {
		d.MaxRounds = DefaultMaxRounds
	}

	if d.MaxSelectionAttempts < 0 {
		return fmt.Errorf("draft.max_selection_attempts must be positive, got %d", d.MaxSelectionAttempts)
	}
	if d.MaxDraftAttempts < 0 {
		return fmt.Errorf("draft.max_draft_attempts must be positive, got %d", d.MaxDraftAttempts)
	}
	if d.MaxRounds < 0 {
		return fmt.Errorf("draft.max_rounds must be positive, got %d", d.MaxRounds)
	}

	return nil
}

func (c *CacheConfig) validate() error {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if strings.ContainsAny(c.Namespace, ":*? ") {
		return fmt.Errorf("cache.namespace must not contain ':', '*', '?' or spaces, got %q", c.Namespace)
	}

	if c.TTL == "" {
		c.TTL = DefaultTTL
	}
	ttl, err := timespec.ParseDuration(c.TTL)
	if err != nil {
		return fmt.Errorf("cache.ttl: %w", err)
	}
	c.ttl = ttl

	if c.RedisURL != "" {
		if !strings.HasPrefix(c.RedisURL, "redis://") && !strings.HasPrefix(c.RedisURL, "rediss://") {
			return fmt.Errorf("cache.redis_url must start with redis:// or rediss://, got %q", c.RedisURL)
		}
	}

	return nil
}

// Load reads and validates dexteam.yml from the specified path
func Load(path string) (*DexteamConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config DexteamConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not
// exist and the caller did not ask for it explicitly.
func LoadOrDefault(path string, explicit bool) (*DexteamConfig, error) {
	config, err := Load(path)
	if err == nil {
		return config, nil
	}
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return nil, err
}
