// Package version provides build-time version information for the merchant binary.
//
// Variables are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/rickgao/merchant-guide/internal/version.Version=1.0.0 \
//	                   -X github.com/rickgao/merchant-guide/internal/version.Commit=$(git rev-parse --short HEAD)" \
//	    ./cmd/merchant
package version

import "fmt"

// Name is the program name printed with the version.
const Name = "merchant"

// Set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

// String returns "merchant <version> (<commit>)".
func String() string {
	return fmt.Sprintf("%s %s (%s)", Name, Version, Commit)
}
