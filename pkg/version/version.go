// Package version holds the build version string, overridable at link time.
package version

// Version is set via -ldflags "-X github.com/futureCreator/polyhello/pkg/version.Version=...".
var Version = "dev"
