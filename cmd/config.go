package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/byteik/site/internal/config"
)

var configCheckOnly bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration after merging defaults, the config file, BYTEIK_*
environment variables and flags. Secrets are masked. Deployment warnings
are listed below the configuration.

Examples:
  byteik config
  byteik config --check
  BYTEIK_SERVER_ENVIRONMENT=production byteik config --check`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVar(&configCheckOnly, "check", false, "Only report validation problems")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	return printConfig(cmd.OutOrStdout(), cfg, configCheckOnly)
}

func printConfig(w io.Writer, cfg *config.Config, checkOnly bool) error {
	if !checkOnly {
		out, err := cfg.YAML()
		if err != nil {
			return fmt.Errorf("failed to render configuration: %w", err)
		}
		fmt.Fprint(w, string(out))
	}

	result := config.Check(cfg)
	switch {
	case result.HasErrors():
		color.New(color.FgRed).Fprint(w, result.String())
		return fmt.Errorf("configuration is invalid")
	case result.HasWarnings():
		color.New(color.FgYellow).Fprint(w, result.String())
	case checkOnly:
		color.New(color.FgGreen).Fprintln(w, "Configuration OK")
	}
	return nil
}
