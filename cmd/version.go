package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/byteik/site/internal/version"
)

var (
	versionFormat string
	versionShort  bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Show the version, commit and build details of this binary.

Examples:
  byteik version            # version and commit
  byteik version --short    # version only
  byteik version -f json    # machine readable`,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "Output format (text, json)")
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version")
}

func runVersion(cmd *cobra.Command, args []string) error {
	return printVersion(cmd.OutOrStdout(), version.Get(), versionFormat, versionShort)
}

func printVersion(w io.Writer, info version.BuildInfo, format string, short bool) error {
	switch {
	case format == "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case format != "text":
		return fmt.Errorf("unknown format %q (want text or json)", format)
	case short:
		fmt.Fprintln(w, info.Short())
	default:
		fmt.Fprintf(w, "%s %s\n", color.New(color.Bold).Sprint("byteik"), info.Short())
		fmt.Fprintln(w, info.String())
	}
	return nil
}
