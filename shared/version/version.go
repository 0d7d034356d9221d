// Package version provides version information for the application.
package version

import "fmt"

// Version is set at build time via ldflags.
var Version = "dev"

// BuildDate is set at build time via ldflags.
var BuildDate = "unknown"

// GitURL is the repository URL.
const GitURL = "https://github.com/forgeops/backport-action"

// String returns the version string with build date.
func String() string {
	return fmt.Sprintf("%s (%s)", Version, BuildDate)
}

// Full returns the full version string with git URL.
func Full() string {
	return fmt.Sprintf("backport-action %s (%s)", Version, GitURL)
}

// Credit returns the footer appended to created pull request bodies.
func Credit() string {
	return fmt.Sprintf("*This PR was automatically created by [backport-action](%s).*", GitURL)
}
