package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/byteik/site/internal/errors"
	"github.com/byteik/site/internal/store"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setup       func()
		expectError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:  "defaults",
			setup: func() { viper.Reset() },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost:8080", cfg.Address())
				assert.Equal(t, []string{"en", "id"}, cfg.Site.Locales)
				assert.Equal(t, "en", cfg.Site.DefaultLocale)
				assert.Equal(t, DefaultScheduleURL, cfg.Site.ScheduleURL)
				assert.Equal(t, store.BackendDiskv, cfg.Contact.Backend)
				assert.Equal(t, "http://localhost:8080/api/contact", cfg.Contact.Endpoint)
				assert.Equal(t, DefaultTimeout, cfg.Contact.Timeout)
				assert.Equal(t, DefaultRatePerMinute, cfg.Contact.RatePerMinute)
				assert.Equal(t, "info", cfg.Log.Level)
			},
		},
		{
			name: "notion credentials select notion backend",
			setup: func() {
				viper.Reset()
				viper.Set("notion.token", "secret")
				viper.Set("notion.database_id", "db")
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, store.BackendNotion, cfg.Contact.Backend)
				assert.Equal(t, store.DefaultNotionVersion, cfg.Notion.Version)
			},
		},
		{
			name: "explicit values",
			setup: func() {
				viper.Reset()
				viper.Set("server.host", "0.0.0.0")
				viper.Set("server.port", 3000)
				viper.Set("server.environment", "production")
				viper.Set("site.locales", []string{"id", "en"})
				viper.Set("contact.backend", "sqlite")
				viper.Set("contact.timeout", "3s")
				viper.Set("log.format", "json")
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0:3000", cfg.Address())
				assert.True(t, cfg.IsProduction())
				assert.Equal(t, "id", cfg.Site.DefaultLocale)
				assert.Equal(t, store.BackendSQLite, cfg.Contact.Backend)
				assert.Equal(t, 3*time.Second, cfg.Contact.Timeout)
				assert.Equal(t, "json", cfg.LoggerConfig().Format)
			},
		},
		{
			name: "comma separated locales",
			setup: func() {
				viper.Reset()
				viper.Set("site.locales", "en, id")
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"en", "id"}, cfg.Site.Locales)
			},
		},
		{
			name: "locales are case insensitive",
			setup: func() {
				viper.Reset()
				viper.Set("site.locales", "EN, id")
				viper.Set("site.default_locale", "EN")
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"en", "id"}, cfg.Site.Locales)
				assert.Equal(t, "en", cfg.Site.DefaultLocale)
			},
		},
		{
			name: "trusted proxies",
			setup: func() {
				viper.Reset()
				viper.Set("server.trusted_proxies", "10.0.0.0/8, 192.0.2.1")
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, cfg.Server.TrustedProxies)
			},
		},
		{
			name: "invalid trusted proxy",
			setup: func() {
				viper.Reset()
				viper.Set("server.trusted_proxies", "proxy.internal")
			},
			expectError: true,
		},
		{
			name: "invalid port type",
			setup: func() {
				viper.Reset()
				viper.Set("server.port", "invalid_port")
			},
			expectError: true,
		},
		{
			name: "unknown backend",
			setup: func() {
				viper.Reset()
				viper.Set("contact.backend", "postgres")
			},
			expectError: true,
		},
		{
			name: "notion without credentials",
			setup: func() {
				viper.Reset()
				viper.Set("contact.backend", "notion")
			},
			expectError: true,
		},
		{
			name: "default locale not served",
			setup: func() {
				viper.Reset()
				viper.Set("site.default_locale", "fr")
			},
			expectError: true,
		},
		{
			name: "bad log level",
			setup: func() {
				viper.Reset()
				viper.Set("log.level", "loud")
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer viper.Reset()

			cfg, err := Load()

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				assert.Equal(t, errors.ErrCodeConfigInvalid, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.check(t, cfg)
		})
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, ".byteik.yml")
	content := `
server:
  port: 9090
contact:
  backend: memory
  rate_per_minute: 10
site:
  schedule_url: https://example.com/book
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("BYTEIK_CONTACT_BACKEND", "sqlite")

	viper.SetConfigFile(path)
	viper.SetEnvPrefix("BYTEIK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, store.BackendSQLite, cfg.Contact.Backend, "environment wins over file")
	assert.Equal(t, 10, cfg.Contact.RatePerMinute)
	assert.Equal(t, "https://example.com/book", cfg.Site.ScheduleURL)
}

func TestYAMLMasksToken(t *testing.T) {
	cfg := Default()
	cfg.Notion.Token = "secret"

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "secret")
	assert.NotContains(t, string(out), "allowed_origins", "unset lists are left out")

	var back Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, cfg.Server, back.Server)
	assert.Equal(t, cfg.Contact.Timeout, back.Contact.Timeout)
	assert.Equal(t, "secret", cfg.Notion.Token, "the original is untouched")
}

func TestParseProxy(t *testing.T) {
	prefix, err := ParseProxy("10.1.2.3/8")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/8", prefix.String())

	prefix, err = ParseProxy("::ffff:192.0.2.1")
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.1/32", prefix.String())

	_, err = ParseProxy("10.0.0.0/40")
	assert.Error(t, err)
}

func TestStoreOptions(t *testing.T) {
	cfg := Default()
	cfg.Contact.Backend = store.BackendSQLite
	cfg.Storage.SQLitePath = "/tmp/x.db"

	opts := cfg.StoreOptions()
	assert.Equal(t, store.BackendSQLite, opts.Backend)
	assert.Equal(t, "/tmp/x.db", opts.SQLitePath)
}

func TestValidateServerConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  ServerConfig
		wantErr bool
	}{
		{"valid", ServerConfig{Host: "localhost", Port: 8080, Environment: "development"}, false},
		{"port zero", ServerConfig{Port: 0, Environment: "test"}, false},
		{"port too high", ServerConfig{Port: 70000, Environment: "development"}, true},
		{"shell in host", ServerConfig{Host: "localhost;rm", Port: 80, Environment: "development"}, true},
		{"unknown environment", ServerConfig{Port: 80, Environment: "staging"}, true},
		{"origin with scheme", ServerConfig{Port: 80, Environment: "development", AllowedOrigins: []string{"https://x.com"}}, true},
		{"origin host", ServerConfig{Port: 80, Environment: "development", AllowedOrigins: []string{"x.com:443"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateServerConfig(&tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	viper.Reset()
	cfg := Default()
	result := Check(cfg)
	assert.True(t, result.Valid)
	assert.False(t, result.HasWarnings())

	cfg.Server.Environment = "production"
	cfg.Contact.Backend = store.BackendMemory
	result = Check(cfg)
	assert.True(t, result.Valid)
	require.True(t, result.HasWarnings())
	assert.Contains(t, result.String(), "contact.backend")
	assert.Contains(t, result.String(), "server.host")

	cfg.Server.Host = "bad host!"
	result = Check(cfg)
	assert.False(t, result.Valid)
}
