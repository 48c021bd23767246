package auxv

import "github.com/pkg/errors"

// Resolver reads one key of the running process's auxiliary vector without
// going through the file system.
type Resolver interface {
	// Getauxval returns the value stored under key. A zero value is returned
	// as is; deciding whether zero can be trusted is up to the caller. An
	// error means the lookup mechanism itself is unavailable.
	Getauxval(key uint64) (uint64, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(key uint64) (uint64, error)

// Getauxval calls f(key).
func (f ResolverFunc) Getauxval(key uint64) (uint64, error) {
	return f(key)
}

// NoResolver returns a Resolver that always fails, which makes Query read
// the file straight away.
func NoResolver() Resolver {
	return noResolver{}
}

type noResolver struct{}

func (noResolver) Getauxval(uint64) (uint64, error) {
	return 0, errors.Wrap(ErrNotFound, "getauxval lookup not supported on this platform")
}
