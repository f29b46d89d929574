// Package cmd provides the command-line interface for the Byteik site with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --port, etc.) - highest priority
//	2. BYTEIK_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (BYTEIK_SERVER_PORT, etc.)
//	4. Configuration files (.byteik.yml) - lowest priority
//
// Environment Variables:
//
//	BYTEIK_CONFIG_FILE: Path to custom configuration file
//	BYTEIK_SERVER_PORT: Override server port
//	BYTEIK_CONTACT_BACKEND: Select the contact backend (notion, diskv, sqlite, memory)
//	BYTEIK_NOTION_TOKEN, BYTEIK_NOTION_DATABASE_ID: Notion credentials
//	And many more following the BYTEIK_<SECTION>_<OPTION> pattern
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/byteik/site/internal/config"
	"github.com/byteik/site/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "byteik",
	Short: "The Byteik software house landing page",
	Long: `byteik serves the Byteik landing page: a single page with a navigation bar
that follows the section in view, a localized (en, id) layout and a contact
form that saves submissions to Notion, SQLite or the local disk.

Quick Start:
  byteik serve                     Start the site on localhost:8080
  byteik preview                   Browse the page in the terminal
  byteik contact send ...          Submit the contact form from the shell
  byteik sections                  List the page sections
  byteik config                    Show the effective configuration`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .byteik.yml, can also use BYTEIK_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	bindFlags(rootCmd.PersistentFlags(), map[string]string{"log-level": "log.level"})
}

// bindFlags binds each named flag to its viper key so flags override the
// config file and the environment.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

// initConfig initializes the configuration system with support for multiple config sources.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. BYTEIK_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .byteik.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("BYTEIK_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".byteik")
	}

	// BYTEIK_SERVER_PORT, BYTEIK_CONTACT_BACKEND, ...
	viper.SetEnvPrefix("BYTEIK")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing config file is fine; defaults and the environment apply.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig loads the configuration and builds the logger it describes.
func loadConfig() (*config.Config, *logging.SiteLogger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, logging.NewLogger(cfg.LoggerConfig()), nil
}
