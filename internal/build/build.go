// Package build holds build-time information for the nourish binary.
package build

// These default to placeholders and are overwritten by linker flags, e.g.
//
//	-ldflags "-X go.trai.ch/nourish/internal/build.Version=v0.3.1"
var (
	// Version is the release version.
	Version = "dev"
	// Commit is the source revision the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
