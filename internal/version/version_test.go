package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setBuild(t *testing.T, v, built, commit string, settings ...debug.BuildSetting) {
	t.Helper()
	oldVersion, oldBuilt, oldCommit, oldRead := Version, BuildTime, GitCommit, readBuildInfo
	Version, BuildTime, GitCommit = v, built, commit
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: settings}, true
	}
	t.Cleanup(func() {
		Version, BuildTime, GitCommit, readBuildInfo = oldVersion, oldBuilt, oldCommit, oldRead
	})
}

func TestInfo(t *testing.T) {
	stamp := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "fedcba9876543210"},
		{Key: "vcs.modified", Value: "true"},
	}

	tests := []struct {
		name     string
		built    string
		commit   string
		settings []debug.BuildSetting
		want     string
	}{
		{"development", "unknown", "unknown", nil, "v1.2.0 (development build)"},
		{"development from checkout", "unknown", "unknown", stamp, "v1.2.0 (development build, commit fedcba98-dirty)"},
		{"unparsable time", "yesterday", "abc", nil, "v1.2.0 (built yesterday)"},
		{"release", "2024-03-01T13:02:03Z", "0123456789abcdef", stamp, "v1.2.0 (built 2024-03-01 13:02:03 UTC, commit 01234567)"},
		{"short commit", "2024-03-01T13:02:03Z", "abc", nil, "v1.2.0 (built 2024-03-01 13:02:03 UTC, commit abc)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBuild(t, "v1.2.0", tt.built, tt.commit, tt.settings...)
			assert.Equal(t, tt.want, Info())
		})
	}
}

func TestGetBuildInfo(t *testing.T) {
	setBuild(t, "v1.2.0", "unknown", "abc")
	info := GetBuildInfo()
	assert.Equal(t, "v1.2.0", info.Version)
	assert.Equal(t, "abc", info.GitCommit)
	assert.False(t, info.Modified)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

func TestGetBuildInfoWithoutStamp(t *testing.T) {
	setBuild(t, "dev", "unknown", "unknown")
	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

	assert.Equal(t, "unknown", GetBuildInfo().GitCommit)
}
