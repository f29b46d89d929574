// Package config provides configuration management for the Byteik site using
// Viper for loading from files, environment variables, and command-line flags.
//
// Files are YAML, environment variables use the BYTEIK_ prefix with
// underscores for nesting (BYTEIK_CONTACT_BACKEND), and every value is
// validated before the server starts.
package config

import (
	"fmt"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/byteik/site/internal/errors"
	"github.com/byteik/site/internal/logging"
	"github.com/byteik/site/internal/store"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Site    SiteConfig    `mapstructure:"site" yaml:"site"`
	Contact ContactConfig `mapstructure:"contact" yaml:"contact"`
	Notion  NotionConfig  `mapstructure:"notion" yaml:"notion"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

type ServerConfig struct {
	Host           string   `mapstructure:"host" yaml:"host"`
	Port           int      `mapstructure:"port" yaml:"port"`
	Environment    string   `mapstructure:"environment" yaml:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins,omitempty"`
	// TrustedProxies are the addresses or CIDR ranges whose X-Forwarded-For
	// and X-Real-IP headers name the client. Empty trusts nobody.
	TrustedProxies []string `mapstructure:"trusted_proxies" yaml:"trusted_proxies,omitempty"`
}

type SiteConfig struct {
	Locales       []string `mapstructure:"locales" yaml:"locales"`
	DefaultLocale string   `mapstructure:"default_locale" yaml:"default_locale"`
	ScheduleURL   string   `mapstructure:"schedule_url" yaml:"schedule_url"`
}

type ContactConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	// Endpoint is where `byteik contact send` posts; the server itself
	// writes to the backend directly.
	Endpoint      string        `mapstructure:"endpoint" yaml:"endpoint"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
	RatePerMinute int           `mapstructure:"rate_per_minute" yaml:"rate_per_minute"`
	Burst         int           `mapstructure:"burst" yaml:"burst"`
}

type NotionConfig struct {
	Token      string `mapstructure:"token" yaml:"token"`
	DatabaseID string `mapstructure:"database_id" yaml:"database_id"`
	BaseURL    string `mapstructure:"base_url" yaml:"base_url"`
	Version    string `mapstructure:"version" yaml:"version"`
}

type StorageConfig struct {
	Dir        string `mapstructure:"dir" yaml:"dir"`
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Defaults.
const (
	DefaultHost          = "localhost"
	DefaultPort          = 8080
	DefaultEnvironment   = "development"
	DefaultLocale        = "en"
	DefaultScheduleURL   = "https://calendly.com/info-byteik/schedule-a-consultation"
	DefaultTimeout       = 10 * time.Second
	DefaultRatePerMinute = 5
	DefaultBurst         = 3
)

// DefaultLocales are the locales served when none are configured.
var DefaultLocales = []string{"en", "id"}

// Load reads the configuration from viper, applies defaults and validates it.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, errors.ErrCodeConfigInvalid, "decode configuration")
	}

	// Env-only keys are invisible to Unmarshal unless read explicitly.
	if config.Notion.Token == "" {
		config.Notion.Token = viper.GetString("notion.token")
	}
	if config.Notion.DatabaseID == "" {
		config.Notion.DatabaseID = viper.GetString("notion.database_id")
	}

	// Workaround for slices given as comma separated env values.
	config.Site.Locales = splitList(config.Site.Locales...)
	config.Server.AllowedOrigins = splitList(config.Server.AllowedOrigins...)
	config.Server.TrustedProxies = splitList(config.Server.TrustedProxies...)
	for i, l := range config.Site.Locales {
		config.Site.Locales[i] = strings.ToLower(l)
	}
	config.Site.DefaultLocale = strings.ToLower(strings.TrimSpace(config.Site.DefaultLocale))

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

func applyDefaults(config *Config) {
	if config.Server.Host == "" {
		config.Server.Host = DefaultHost
	}
	if config.Server.Port == 0 && !viper.IsSet("server.port") {
		config.Server.Port = DefaultPort
	}
	if config.Server.Environment == "" {
		config.Server.Environment = DefaultEnvironment
	}

	if len(config.Site.Locales) == 0 {
		config.Site.Locales = append([]string(nil), DefaultLocales...)
	}
	if config.Site.DefaultLocale == "" {
		config.Site.DefaultLocale = config.Site.Locales[0]
	}
	if config.Site.ScheduleURL == "" && !viper.IsSet("site.schedule_url") {
		config.Site.ScheduleURL = DefaultScheduleURL
	}

	if config.Contact.Backend == "" {
		if config.Notion.Token != "" && config.Notion.DatabaseID != "" {
			config.Contact.Backend = store.BackendNotion
		} else {
			config.Contact.Backend = store.BackendDiskv
		}
	}
	if config.Contact.Endpoint == "" {
		config.Contact.Endpoint = fmt.Sprintf("http://%s:%d/api/contact", config.Server.Host, config.Server.Port)
	}
	if config.Contact.Timeout == 0 {
		config.Contact.Timeout = DefaultTimeout
	}
	if config.Contact.RatePerMinute == 0 {
		config.Contact.RatePerMinute = DefaultRatePerMinute
	}
	if config.Contact.Burst == 0 {
		config.Contact.Burst = DefaultBurst
	}

	if config.Notion.BaseURL == "" {
		config.Notion.BaseURL = store.DefaultNotionBaseURL
	}
	if config.Notion.Version == "" {
		config.Notion.Version = store.DefaultNotionVersion
	}

	if config.Storage.Dir == "" {
		config.Storage.Dir = store.DefaultDir
	}
	if config.Storage.SQLitePath == "" {
		config.Storage.SQLitePath = store.DefaultSQLitePath
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}
}

func splitList(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Address is the server's listen address.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// StoreOptions maps the contact and storage sections onto store options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:    c.Contact.Backend,
		Dir:        c.Storage.Dir,
		SQLitePath: c.Storage.SQLitePath,
		Notion: store.NotionOptions{
			Token:      c.Notion.Token,
			DatabaseID: c.Notion.DatabaseID,
			BaseURL:    c.Notion.BaseURL,
			Version:    c.Notion.Version,
		},
	}
}

// LoggerConfig maps the log section onto logger options.
func (c *Config) LoggerConfig() *logging.LoggerConfig {
	cfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(c.Log.Level); err == nil {
		cfg.Level = level
	}
	cfg.Format = c.Log.Format
	return cfg
}

// YAML renders the configuration with secrets masked.
func (c *Config) YAML() ([]byte, error) {
	masked := *c
	if masked.Notion.Token != "" {
		masked.Notion.Token = "********"
	}
	return yaml.Marshal(&masked)
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	validators := []struct {
		section string
		fn      func(*Config) error
	}{
		{"server", func(c *Config) error { return validateServerConfig(&c.Server) }},
		{"site", func(c *Config) error { return validateSiteConfig(&c.Site) }},
		{"contact", func(c *Config) error { return validateContactConfig(&c.Contact, &c.Notion) }},
		{"log", func(c *Config) error { return validateLogConfig(&c.Log) }},
	}

	for _, v := range validators {
		if err := v.fn(config); err != nil {
			return errors.Wrap(err, errors.ErrorTypeConfig, errors.ErrCodeConfigInvalid,
				fmt.Sprintf("%s config", v.section)).WithContext("section", v.section)
		}
	}
	return nil
}

// validateServerConfig validates server configuration values
func validateServerConfig(config *ServerConfig) error {
	// Allow 0 for system-assigned ports in testing
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}

	if config.Host != "" {
		dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\", " "}
		for _, char := range dangerousChars {
			if strings.Contains(config.Host, char) {
				return fmt.Errorf("host contains dangerous character: %q", char)
			}
		}
	}

	switch config.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("unknown environment %q", config.Environment)
	}

	for _, origin := range config.AllowedOrigins {
		if strings.Contains(origin, "://") || strings.ContainsAny(origin, "/ ") {
			return fmt.Errorf("allowed origin %q must be host[:port]", origin)
		}
	}

	for _, proxy := range config.TrustedProxies {
		if _, err := ParseProxy(proxy); err != nil {
			return err
		}
	}

	return nil
}

// ParseProxy parses a trusted proxy entry. A bare address is a single-host
// prefix.
func ParseProxy(raw string) (netip.Prefix, error) {
	if strings.Contains(raw, "/") {
		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("trusted proxy %q: %w", raw, err)
		}
		return prefix.Masked(), nil
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("trusted proxy %q: %w", raw, err)
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

func validateSiteConfig(config *SiteConfig) error {
	if len(config.Locales) == 0 {
		return fmt.Errorf("at least one locale is required")
	}
	found := false
	for _, l := range config.Locales {
		if l == config.DefaultLocale {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("default locale %q is not in locales %v", config.DefaultLocale, config.Locales)
	}
	if config.ScheduleURL != "" {
		if err := validateURL(config.ScheduleURL); err != nil {
			return fmt.Errorf("schedule_url: %w", err)
		}
	}
	return nil
}

func validateContactConfig(config *ContactConfig, notion *NotionConfig) error {
	known := false
	for _, b := range store.Backends() {
		if config.Backend == b {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("unknown backend %q (want one of %v)", config.Backend, store.Backends())
	}
	if config.Backend == store.BackendNotion && (notion.Token == "" || notion.DatabaseID == "") {
		return fmt.Errorf("notion backend needs notion.token and notion.database_id")
	}
	if err := validateURL(config.Endpoint); err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	if config.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if config.RatePerMinute < 0 || config.Burst < 0 {
		return fmt.Errorf("rate_per_minute and burst must not be negative")
	}
	return nil
}

func validateLogConfig(config *LogConfig) error {
	if _, err := logging.ParseLevel(config.Level); err != nil {
		return err
	}
	if config.Format != "text" && config.Format != "json" {
		return fmt.Errorf("log format %q must be text or json", config.Format)
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must be an http or https URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}
