package version

import (
	"runtime/debug"
	"strings"
	"sync"
)

// Set at build time with -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
)

// Info describes the running build.
type Info struct {
	Version   string
	GitCommit string
	GitBranch string
	BuildTime string
	GoVersion string
	Dirty     bool
}

var (
	once sync.Once
	info Info
)

// Get returns the build information. VCS settings embedded by the Go
// toolchain fill in whatever -ldflags left empty.
func Get() Info {
	once.Do(func() {
		info = read(Version, GitCommit, GitBranch, BuildTime)
	})
	return info
}

func read(version, commit, branch, built string) Info {
	in := Info{Version: version, GitCommit: commit, GitBranch: branch, BuildTime: built}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return in
	}
	in.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if in.GitCommit == "" {
				in.GitCommit = s.Value
			}
		case "vcs.time":
			if in.BuildTime == "" {
				in.BuildTime = s.Value
			}
		case "vcs.modified":
			in.Dirty = s.Value == "true"
		}
	}
	if len(in.GitCommit) > 7 {
		in.GitCommit = in.GitCommit[:7]
	}
	return in
}

// Short returns "<version>[-<commit>][-dirty]".
func (i Info) Short() string {
	parts := []string{i.Version}
	if i.GitCommit != "" {
		parts = append(parts, i.GitCommit)
	}
	if i.Dirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}

// IsRelease reports whether the build carries a real, clean version.
func (i Info) IsRelease() bool {
	return i.Version != "dev" && !i.Dirty
}
