// SPDX-License-Identifier: MIT
//
// Package build carries build metadata injected via -ldflags. Development
// builds without flags fall back to usable defaults.
package build

type ldFlags struct {
	Name    string
	Commit  string
	Version string
}

// Populated by -ldflags at compile time.
var (
	buildName    string
	buildCommit  string
	buildVersion string
)

var buildFlags = &ldFlags{
	Name:    "sdrspect",
	Commit:  "dev",
	Version: "dev",
}

// Initialize copies any ldflags-provided values over the defaults. Call
// once early in startup.
func Initialize() {
	if buildName != "" {
		buildFlags.Name = buildName
	}
	if buildCommit != "" {
		buildFlags.Commit = buildCommit
	}
	if buildVersion != "" {
		buildFlags.Version = buildVersion
	}
}

// GetBuildFlags returns the current build information.
func GetBuildFlags() *ldFlags {
	return buildFlags
}
