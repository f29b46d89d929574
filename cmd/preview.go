package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/i18n"
	"github.com/byteik/site/internal/logging"
	"github.com/byteik/site/internal/sections"
	"github.com/byteik/site/internal/store"
	"github.com/byteik/site/internal/terminal"
)

var (
	previewLocale   string
	previewEndpoint string
	previewLogFile  string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Browse the landing page in the terminal",
	Long: `Render the landing page in the terminal. Scrolling updates the navigation
bar and the URL fragment the same way the browser does, and the contact form
submits to the configured backend, or to a running site with --endpoint.

Keys:
  ↑/↓ pgup/pgdn   scroll
  n/p, 1-5        jump between sections
  c, tab          open the contact form
  ctrl+s          send the form
  q               quit`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewLocale, "locale", "", "Locale to render (default site.default_locale)")
	previewCmd.Flags().StringVar(&previewEndpoint, "endpoint", "", "Post the contact form to this endpoint instead of the local backend")
	previewCmd.Flags().StringVar(&previewLogFile, "log-file", "", "Write logs to this file (the screen is owned by the preview)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.NewNopLogger()
	if previewLogFile != "" {
		f, err := os.OpenFile(previewLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logCfg := cfg.LoggerConfig()
		logCfg.Output = f
		logger = logging.NewLogger(logCfg)
	}

	bundle, err := i18n.New(cfg.Site.Locales, cfg.Site.DefaultLocale)
	if err != nil {
		return err
	}
	if previewLocale != "" && !bundle.Has(previewLocale) {
		return fmt.Errorf("unknown locale %q (have %v)", previewLocale, bundle.Locales())
	}

	var submitter contact.Submitter
	if previewEndpoint != "" {
		submitter = contact.NewHTTPSubmitter(previewEndpoint, nil)
	} else {
		st, err := store.New(cfg.StoreOptions())
		if err != nil {
			return fmt.Errorf("failed to open contact store: %w", err)
		}
		defer st.Close()
		submitter = store.Submitter(st)
	}

	model := terminal.New(terminal.Config{
		Registry:   sections.Default(),
		Translator: bundle.Translator(previewLocale),
		Submitter:  submitter,
		Timeout:    cfg.Contact.Timeout,
		Logger:     logger.WithComponent("preview"),
	})
	defer model.Close()

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}
	return nil
}
