//go:build linux && (amd64 || arm64)

package auxv

import (
	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
)

const getauxvalSymbol = "getauxval"

// dlsymResolver finds getauxval among the symbols already loaded into the
// process. No library is opened: a static binary, or one linked against a
// libc without getauxval, simply reports ErrNotFound.
type dlsymResolver struct{}

// DefaultResolver returns the resolver Query uses for a native layout with
// LibcHWCap set.
func DefaultResolver() Resolver {
	return dlsymResolver{}
}

// Getauxval looks the symbol up on every call and invokes it with key.
//
// This is the only unchecked call in the package. It relies on one
// precondition: a symbol named getauxval visible in the default scope is
// libc's unsigned long getauxval(unsigned long). The signature cannot be
// verified at run time.
func (dlsymResolver) Getauxval(key uint64) (uint64, error) {
	fn, err := purego.Dlsym(purego.RTLD_DEFAULT, getauxvalSymbol)
	if err != nil {
		return 0, errors.Wrapf(ErrNotFound, "dlsym %s: %v", getauxvalSymbol, err)
	}
	if fn == 0 {
		return 0, errors.Wrapf(ErrNotFound, "dlsym %s: nil address", getauxvalSymbol)
	}
	r1, _, _ := purego.SyscallN(fn, uintptr(key))
	return uint64(r1), nil
}
