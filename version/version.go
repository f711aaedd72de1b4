// Package version exposes build metadata injected at link time.
package version

import "runtime"

// Populated via -ldflags at build time.
var (
	GitCommit     = "unknown"
	GitCommitDate = "unknown"
	GitRelease    = "dev"
)

// GoInfo reports the Go toolchain and platform the binary was built with.
var GoInfo = runtime.Version() + " " + runtime.GOOS + "/" + runtime.GOARCH
