package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/byteik/site/internal/store"
)

// Issue is one problem found by Check.
type Issue struct {
	Field   string
	Value   interface{}
	Message string
	// Hints suggest a fix, one per line.
	Hints []string
}

// Report collects the issues found by Check. Errors stop the server from
// starting; warnings do not.
type Report struct {
	Valid    bool
	Errors   []Issue
	Warnings []Issue
}

func (r *Report) HasErrors() bool   { return len(r.Errors) > 0 }
func (r *Report) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *Report) String() string {
	var b strings.Builder
	section := func(title string, issues []Issue) {
		if len(issues) == 0 {
			return
		}
		b.WriteString(title + ":\n")
		for _, is := range issues {
			fmt.Fprintf(&b, "  - %s: %s\n", is.Field, is.Message)
			for _, hint := range is.Hints {
				fmt.Fprintf(&b, "      %s\n", hint)
			}
		}
	}
	section("Validation errors", r.Errors)
	if r.HasErrors() && r.HasWarnings() {
		b.WriteString("\n")
	}
	section("Validation warnings", r.Warnings)
	return b.String()
}

func (r *Report) warn(is Issue) { r.Warnings = append(r.Warnings, is) }
func (r *Report) fail(is Issue) { r.Errors = append(r.Errors, is) }

// Check reviews an already loaded configuration for deployment problems that
// do not stop the server from starting, on top of the errors Load reports.
func Check(config *Config) *Report {
	report := &Report{}
	if err := validateConfig(config); err != nil {
		report.fail(Issue{Field: "config", Message: err.Error()})
	}
	checkServer(config, report)
	checkContact(config, report)
	report.Valid = !report.HasErrors()
	return report
}

func checkServer(config *Config, report *Report) {
	if config.Server.Host != "" {
		if err := validateHostname(config.Server.Host); err != nil {
			report.fail(Issue{
				Field:   "server.host",
				Value:   config.Server.Host,
				Message: err.Error(),
				Hints:   []string{
					"Use 'localhost' for local development",
					"Use '0.0.0.0' to bind to all interfaces",
				},
			})
		}
	}

	if config.Server.Port > 0 && config.Server.Port < 1024 {
		report.warn(Issue{
			Field:   "server.port",
			Value:   config.Server.Port,
			Message: "port below 1024 requires elevated privileges",
			Hints:   []string{
				"Run behind a reverse proxy and bind to 8080",
			},
		})
	}

	if config.IsProduction() && (config.Server.Host == "localhost" || config.Server.Host == "127.0.0.1") {
		report.warn(Issue{
			Field:   "server.host",
			Value:   config.Server.Host,
			Message: "production server only listens on the loopback interface",
			Hints:   []string{
				"Set BYTEIK_SERVER_HOST=0.0.0.0 when running in a container",
			},
		})
	}
}

func checkContact(config *Config, report *Report) {
	if config.IsProduction() && config.Contact.Backend == store.BackendMemory {
		report.warn(Issue{
			Field:   "contact.backend",
			Value:   config.Contact.Backend,
			Message: "submissions are lost on restart",
			Hints:   []string{
				"Use the notion, sqlite or diskv backend",
			},
		})
	}

	if config.Contact.RatePerMinute > 60 {
		report.warn(Issue{
			Field:   "contact.rate_per_minute",
			Value:   config.Contact.RatePerMinute,
			Message: "more than one submission per second per visitor invites spam",
		})
	}

	if config.Contact.Backend != store.BackendNotion && config.Notion.Token != "" {
		report.warn(Issue{
			Field:   "notion.token",
			Message: fmt.Sprintf("notion credentials are set but the %s backend is selected", config.Contact.Backend),
		})
	}
}

var hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

func validateHostname(host string) error {
	if net.ParseIP(host) != nil {
		return nil
	}
	if host == "localhost" {
		return nil
	}
	if !hostnamePattern.MatchString(host) {
		return fmt.Errorf("invalid hostname format")
	}
	return nil
}
