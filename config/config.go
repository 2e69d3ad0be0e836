package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCacheTTL       = 10 * time.Second
	DefaultCooldownWindow = 60 * time.Second
	DefaultMinMessageXP   = 15
	DefaultMaxMessageXP   = 25
	DefaultPrefix         = "~"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	Redis         RedisConfig         `yaml:"redis"`
	Cache         CacheConfig         `yaml:"cache"`
	Cooldown      CooldownConfig      `yaml:"cooldown"`
	XP            XPConfig            `yaml:"xp"`
	Guild         GuildConfig         `yaml:"guild"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// RedisConfig holds the TTL cache endpoint. An empty URL selects the
// in-process backend.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// CacheConfig holds per-entity cache lifetimes.
type CacheConfig struct {
	GuildTTL Duration `yaml:"guild_ttl"`
	UserTTL  Duration `yaml:"user_ttl"`
}

// CooldownConfig bounds the XP cooldown tracker. MaxKeys of 0 means unbounded.
type CooldownConfig struct {
	Window  Duration `yaml:"window"`
	MaxKeys int      `yaml:"max_keys"`
}

// XPConfig holds the inclusive range of XP granted per message.
type XPConfig struct {
	MinMessageXP int `yaml:"min_message_xp"`
	MaxMessageXP int `yaml:"max_message_xp"`
}

// GuildConfig holds guild defaults.
type GuildConfig struct {
	DefaultPrefix string `yaml:"default_prefix"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
}

// Duration decodes either a Go duration string ("10s") or a bare number of seconds.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := parseDuration(value.Value)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("GUILD_DEFAULT_PREFIX"); v != "" {
		cfg.Guild.DefaultPrefix = v
	}

	durations := []struct {
		env string
		dst *Duration
	}{
		{"CACHE_GUILD_TTL", &cfg.Cache.GuildTTL},
		{"CACHE_USER_TTL", &cfg.Cache.UserTTL},
		{"XP_COOLDOWN", &cfg.Cooldown.Window},
	}
	for _, d := range durations {
		v := os.Getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", d.env, err)
		}
		*d.dst = Duration(parsed)
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"XP_COOLDOWN_MAX_KEYS", &cfg.Cooldown.MaxKeys},
		{"MIN_MESSAGE_XP", &cfg.XP.MinMessageXP},
		{"MAX_MESSAGE_XP", &cfg.XP.MaxMessageXP},
	}
	for _, i := range ints {
		v := os.Getenv(i.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %v", i.env, err)
		}
		*i.dst = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Cache.GuildTTL == 0 {
		c.Cache.GuildTTL = Duration(DefaultCacheTTL)
	}
	if c.Cache.UserTTL == 0 {
		c.Cache.UserTTL = Duration(DefaultCacheTTL)
	}
	if c.Cooldown.Window == 0 {
		c.Cooldown.Window = Duration(DefaultCooldownWindow)
	}
	if c.XP.MinMessageXP == 0 && c.XP.MaxMessageXP == 0 {
		c.XP.MinMessageXP = DefaultMinMessageXP
		c.XP.MaxMessageXP = DefaultMaxMessageXP
	}
	if strings.TrimSpace(c.Guild.DefaultPrefix) == "" {
		c.Guild.DefaultPrefix = DefaultPrefix
	}
}

// Validate reports configuration values the core cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Postgres.DSN) == "" {
		errs = append(errs, errors.New("postgres.dsn (DATABASE_URL) must be set"))
	}
	if c.Cache.GuildTTL.Std() <= 0 {
		errs = append(errs, errors.New("cache.guild_ttl must be positive"))
	}
	if c.Cache.UserTTL.Std() <= 0 {
		errs = append(errs, errors.New("cache.user_ttl must be positive"))
	}
	if c.Cooldown.Window.Std() <= 0 {
		errs = append(errs, errors.New("cooldown.window must be positive"))
	}
	if c.Cooldown.MaxKeys < 0 {
		errs = append(errs, errors.New("cooldown.max_keys must not be negative"))
	}
	if c.XP.MinMessageXP < 0 || c.XP.MinMessageXP > c.XP.MaxMessageXP {
		errs = append(errs, fmt.Errorf("xp range [%d, %d] is invalid", c.XP.MinMessageXP, c.XP.MaxMessageXP))
	}
	return errors.Join(errs...)
}
