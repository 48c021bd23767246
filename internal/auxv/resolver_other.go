//go:build !linux || !(amd64 || arm64)

package auxv

// DefaultResolver returns the resolver Query uses for a native layout with
// LibcHWCap set.
// Dynamic lookup is only wired up on linux/amd64 and linux/arm64; elsewhere
// Query goes straight to the file.
func DefaultResolver() Resolver {
	return noResolver{}
}
