// Package version reports build information for the rewire binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   string // Set via ldflags.
	Branch    string
	BuildUser string
	BuildDate string

	Revision  = getRevision(readBuildSettings())
	GoVersion = runtime.Version()
	GoOS      = runtime.GOOS
	GoArch    = runtime.GOARCH
)

// GetVersion returns the release version, or the VCS revision for
// development builds.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	return Revision
}

// String describes the build on one line.
func String() string {
	s := fmt.Sprintf("rewire %s (%s, %s/%s)", GetVersion(), GoVersion, GoOS, GoArch)
	if BuildDate != "" {
		s += " built " + BuildDate
	}

	return s
}

func readBuildSettings() map[string]string {
	settings := map[string]string{}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return settings
	}

	for _, v := range buildInfo.Settings {
		settings[v.Key] = v.Value
	}

	return settings
}

func getRevision(settings map[string]string) string {
	rev, ok := settings["vcs.revision"]
	if !ok || rev == "" {
		return "unknown"
	}

	if len(rev) > 7 {
		rev = rev[:7]
	}

	if settings["vcs.modified"] == "true" {
		return rev + "-dirty"
	}

	return rev
}
