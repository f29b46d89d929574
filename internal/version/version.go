// Package version reports the build the binary came from. Values are set at
// link time:
//
//	go build -ldflags "-X github.com/byteik/site/internal/version.Version=v1.2.0 \
//	  -X github.com/byteik/site/internal/version.GitCommit=$(git rev-parse HEAD)"
//
// and fall back to the VCS stamps in runtime/debug build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	// BuildTime is RFC3339.
	BuildTime = "unknown"
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	BuildTime time.Time `json:"build_time"`
	GoVersion string    `json:"go_version"`
	Platform  string    `json:"platform"`
	Release   bool      `json:"is_release"`
	Dirty     bool      `json:"is_dirty"`
}

// Get collects the build information.
func Get() BuildInfo {
	settings := vcsSettings()
	v := resolveVersion(settings)
	return BuildInfo{
		Version:   v,
		GitCommit: resolveCommit(settings),
		BuildTime: parseBuildTime(BuildTime),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Release:   v != "dev" && !strings.HasPrefix(v, "dev-"),
		Dirty:     settings["vcs.modified"] == "true",
	}
}

// Short returns "v1.2.0 (abc1234)", "dev-abc1234" or "dev".
func Short() string {
	return Get().Short()
}

// Short formats the version with an abbreviated commit.
func (b BuildInfo) Short() string {
	if len(b.GitCommit) < 7 || b.GitCommit == "unknown" {
		return b.Version
	}
	commit := b.GitCommit[:7]
	if b.Release {
		return fmt.Sprintf("%s (%s)", b.Version, commit)
	}
	if b.Version == "dev" {
		return "dev-" + commit
	}
	return b.Version
}

// String returns one "Key: value" line per known field.
func (b BuildInfo) String() string {
	lines := []string{"Version: " + b.Version}
	if b.GitCommit != "unknown" {
		lines = append(lines, "Commit: "+b.GitCommit)
	}
	if !b.BuildTime.IsZero() {
		lines = append(lines, "Built: "+b.BuildTime.Format(time.RFC3339))
	}
	lines = append(lines, "Go: "+b.GoVersion, "Platform: "+b.Platform)
	if b.Dirty {
		lines = append(lines, "Working directory: dirty")
	}
	return strings.Join(lines, "\n")
}

func vcsSettings() map[string]string {
	out := map[string]string{}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			out[s.Key] = s.Value
		}
		if v := info.Main.Version; v != "" && v != "(devel)" {
			out["main.version"] = v
		}
	}
	return out
}

func resolveVersion(settings map[string]string) string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if v := settings["main.version"]; v != "" {
		return v
	}
	if rev := settings["vcs.revision"]; len(rev) >= 7 {
		return "dev-" + rev[:7]
	}
	return "dev"
}

func resolveCommit(settings map[string]string) string {
	if GitCommit != "" && GitCommit != "unknown" {
		return GitCommit
	}
	if rev := settings["vcs.revision"]; rev != "" {
		return rev
	}
	return "unknown"
}

// parseBuildTime returns the zero time for anything that is not RFC3339.
func parseBuildTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
