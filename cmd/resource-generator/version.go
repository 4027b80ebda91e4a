package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version returns the module version when installed with go install, and
// devel-<version>+<revision> for local builds.
func Version() string {
	base := strings.TrimSpace(embeddedVersion)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return base
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var vcsRev string
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			vcsRev = s.Value[:7]
			break
		}
	}

	if vcsRev != "" {
		return "devel-" + base + "+" + vcsRev
	}

	return "devel-" + base
}
