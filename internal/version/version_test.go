package version

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withBuild(t *testing.T, version, commit, buildTime string) {
	t.Helper()
	oldVersion, oldCommit, oldTime := Version, GitCommit, BuildTime
	Version, GitCommit, BuildTime = version, commit, buildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldVersion, oldCommit, oldTime })
}

func TestGetUsesLinkerValues(t *testing.T) {
	withBuild(t, "v1.2.0", "0123456789abcdef", "2026-01-02T03:04:05Z")

	info := Get()
	assert.Equal(t, "v1.2.0", info.Version)
	assert.Equal(t, "0123456789abcdef", info.GitCommit)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), info.BuildTime)
	assert.True(t, info.Release)
	assert.Equal(t, "v1.2.0 (0123456)", info.Short())
	assert.Contains(t, info.String(), "Built: 2026-01-02T03:04:05Z")
}

func TestShort(t *testing.T) {
	tests := []struct {
		name string
		info BuildInfo
		want string
	}{
		{"dev without commit", BuildInfo{Version: "dev", GitCommit: "unknown"}, "dev"},
		{"dev with commit", BuildInfo{Version: "dev", GitCommit: "abcdef123"}, "dev-abcdef1"},
		{"dev revision", BuildInfo{Version: "dev-abcdef1", GitCommit: "abcdef123"}, "dev-abcdef1"},
		{"release", BuildInfo{Version: "v1.0.0", GitCommit: "abcdef123", Release: true}, "v1.0.0 (abcdef1)"},
		{"short commit", BuildInfo{Version: "v1.0.0", GitCommit: "abc", Release: true}, "v1.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Short())
		})
	}
}

func TestParseBuildTime(t *testing.T) {
	assert.True(t, parseBuildTime("unknown").IsZero())
	assert.True(t, parseBuildTime("2026-01-02 03:04:05").IsZero())
	assert.False(t, parseBuildTime("2026-01-02T03:04:05+07:00").IsZero())
}

func TestResolveVersionFallbacks(t *testing.T) {
	withBuild(t, "dev", "unknown", "unknown")

	assert.Equal(t, "v0.3.0", resolveVersion(map[string]string{"main.version": "v0.3.0"}))
	assert.Equal(t, "dev-abcdef1", resolveVersion(map[string]string{"vcs.revision": "abcdef1234"}))
	assert.Equal(t, "dev", resolveVersion(map[string]string{}))
	assert.Equal(t, "abcdef1234", resolveCommit(map[string]string{"vcs.revision": "abcdef1234"}))
	assert.Equal(t, "unknown", resolveCommit(map[string]string{}))
}
