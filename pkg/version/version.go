package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build-time variables (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	Commit    = "unknown"
)

// Info contains version information
type Info struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// Get returns the current version info
func Get() Info {
	return Info{
		Version:   Version,
		BuildTime: BuildTime,
		Commit:    Commit,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Tagline is printed under the version line of Full
const Tagline = "Flattens zip archives and GitHub repositories into one text document."

// String returns the one-line form used in logs
func (i Info) String() string {
	return fmt.Sprintf("codecollector %s (commit: %s, built: %s, %s %s/%s)",
		i.Version, i.Commit, i.BuildTime, i.GoVersion, i.OS, i.Arch)
}

// Short returns the bare version, as shown by --version
func Short() string {
	return Version
}

// Full returns the multi-line text printed by the version command
func Full() string {
	i := Get()
	var b strings.Builder
	fmt.Fprintf(&b, "codecollector %s\n", i.Version)
	b.WriteString(Tagline + "\n\n")
	fmt.Fprintf(&b, "  commit:   %s\n", i.Commit)
	fmt.Fprintf(&b, "  built:    %s\n", i.BuildTime)
	fmt.Fprintf(&b, "  runtime:  %s %s/%s\n", i.GoVersion, i.OS, i.Arch)
	return b.String()
}
