package pngme

import (
	"runtime"
	"runtime/debug"
)

// Version is the semantic version of the pngme module.
const Version = "0.1.0"

// VersionInfo describes the running build.
type VersionInfo struct {
	Version   string
	GitCommit string // "unknown" when no VCS data was stamped
	BuildTime string // commit time, "unknown" when not stamped
	GoVersion string
	Modified  bool // built from a dirty work tree
}

// GetVersionInfo returns build details read from the binary's embedded
// build information. The go command stamps VCS data automatically when
// building inside a git checkout.
func GetVersionInfo() VersionInfo {
	v := VersionInfo{
		Version:   Version,
		GitCommit: "unknown",
		BuildTime: "unknown",
		GoVersion: runtime.Version(),
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	if info.GoVersion != "" {
		v.GoVersion = info.GoVersion
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			v.GitCommit = s.Value
			if len(v.GitCommit) > 12 {
				v.GitCommit = v.GitCommit[:12]
			}
		case "vcs.time":
			v.BuildTime = s.Value
		case "vcs.modified":
			v.Modified = s.Value == "true"
		}
	}
	return v
}
