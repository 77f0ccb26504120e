// Package version carries the build identity stamped into release
// binaries and shown by the version command.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Version and Commit are stamped at release time:
//
//	go build -ldflags="-X github.com/sunfkny/network-watchdog/internal/version.Version=v1.2.3 \
//	                   -X github.com/sunfkny/network-watchdog/internal/version.Commit=abc123"
//
// Unstamped builds fall back to the module's VCS metadata, then to a
// dev placeholder.
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		v, c := fromBuildInfo()
		if Version == "" {
			Version = v
		}
		if Commit == "" {
			Commit = c
		}
	}
	if Version == "" {
		Version = "dev-" + time.Now().Format("20060102-150405")
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromBuildInfo derives a version and commit from the VCS settings that
// the Go toolchain embeds when building inside a git checkout. Either
// return value may be empty.
func fromBuildInfo() (version, commit string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}

	var revision, modified, stamp string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		case "vcs.time":
			stamp = s.Value
		}
	}

	if revision != "" {
		commit = revision
		if len(commit) > 7 {
			commit = commit[:7]
		}
		if modified == "true" {
			commit += "-dirty"
		}
	}

	// Build info has no tags, so untagged builds get a date-based dev
	// version from the commit time.
	if stamp != "" {
		if t, err := time.Parse(time.RFC3339, stamp); err == nil {
			version = "dev-" + t.Format("20060102")
		}
	}
	return version, commit
}

// Full returns the version and commit in the form shown to users,
// e.g. "v1.2.3 (commit: abc1234)".
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
