// Package version reports the build of the groupchain binary.
//
// Version, GitCommit and BuildTime are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/groupchain/version.Version=1.0.0"
//
// Values left empty are filled from the module build info when available.
package version
