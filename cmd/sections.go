package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/byteik/site/internal/i18n"
	"github.com/byteik/site/internal/sections"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the page sections in navigation order",
	Long: `List the sections of the landing page in the order they appear, with the
URL fragment and the navigation label of every configured locale.`,
	RunE: runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	bundle, err := i18n.New(cfg.Site.Locales, cfg.Site.DefaultLocale)
	if err != nil {
		return err
	}
	printSections(cmd.OutOrStdout(), sections.Default(), bundle)
	return nil
}

func printSections(w io.Writer, registry *sections.Registry, bundle *i18n.Bundle) {
	bold := color.New(color.Bold)
	locales := bundle.Locales()

	header := []interface{}{bold.Sprint("#"), bold.Sprint("ID"), bold.Sprint("FRAGMENT")}
	for _, locale := range locales {
		header = append(header, bold.Sprint(i18n.Label(locale)))
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(header...)
	for i, entry := range registry.Entries() {
		row := []interface{}{i + 1, color.CyanString(entry.ID), sections.Fragment(entry.ID)}
		for _, locale := range locales {
			row = append(row, bundle.Translator(locale).T(entry.LabelKey))
		}
		tbl.AddRow(row...)
	}
	fmt.Fprintln(w, tbl)
}
