package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// These variables are set at build time via -ldflags
var (
	Version   = "dev"     // Set via: -ldflags "-X github.com/osa911/teamchat/internal/version.Version=v1.0.0"
	BuildTime = "unknown" // Set via: -ldflags "-X github.com/osa911/teamchat/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
	GitCommit = "unknown" // Set via: -ldflags "-X github.com/osa911/teamchat/internal/version.GitCommit=$(git rev-parse HEAD)"
)

var readBuildInfo = debug.ReadBuildInfo

// BuildInfo is served by GET /version
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"buildTime"`
	GitCommit string `json:"gitCommit"`
	// Modified reports uncommitted changes in the checkout the binary was built from
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetBuildInfo returns the ldflags values, falling back to the VCS stamp the Go
// toolchain embeds when the commit was not set explicitly.
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info.GitCommit == "unknown" {
		if revision, modified, ok := vcsStamp(); ok {
			info.GitCommit = revision
			info.Modified = modified
		}
	}
	return info
}

func vcsStamp() (revision string, modified bool, ok bool) {
	build, ok := readBuildInfo()
	if !ok {
		return "", false, false
	}
	for _, s := range build.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	return revision, modified, revision != ""
}

// Info returns a formatted version info string for CLI output
func Info() string {
	buildInfo := GetBuildInfo()
	commit := shortCommit(buildInfo.GitCommit)
	if buildInfo.Modified {
		commit += "-dirty"
	}

	if buildInfo.BuildTime == "unknown" {
		if buildInfo.GitCommit == "unknown" {
			return fmt.Sprintf("%s (development build)", buildInfo.Version)
		}
		return fmt.Sprintf("%s (development build, commit %s)", buildInfo.Version, commit)
	}

	buildTime, err := time.Parse(time.RFC3339, buildInfo.BuildTime)
	if err != nil {
		return fmt.Sprintf("%s (built %s)", buildInfo.Version, buildInfo.BuildTime)
	}

	return fmt.Sprintf("%s (built %s, commit %s)",
		buildInfo.Version,
		buildTime.UTC().Format("2006-01-02 15:04:05 UTC"),
		commit)
}

func shortCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
