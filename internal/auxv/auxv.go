// Package auxv reads the hardware capability words (AT_HWCAP and, where the
// architecture has one, AT_HWCAP2) from the Linux auxiliary vector.
//
// Two sources are tried in order: libc's getauxval, when the process can
// reach it, and then /proc/self/auxv. The package does not interpret
// individual bits and does not cache anything; every Query starts from
// scratch. A failed Query means "capabilities unknown", not "no
// capabilities", and callers are expected to fall back to another
// detection method.
package auxv

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Auxiliary vector keys, see include/uapi/linux/auxvec.h.
const (
	KeyHWCap  = 16 // AT_HWCAP
	KeyHWCap2 = 26 // AT_HWCAP2
)

// ErrNotFound is the only error Query returns. The kernel and libc both use
// zero for "not present", so a zero capability word also ends up here.
var ErrNotFound = errors.New("auxv: hardware capabilities not found")

// Bitmask holds the capability words of one CPU.
type Bitmask struct {
	// HWCap is the AT_HWCAP word. Always nonzero.
	HWCap uint64

	hwcap2 uint64
	dual   bool
}

func newDualBitmask(hwcap, hwcap2 uint64) Bitmask {
	return Bitmask{HWCap: hwcap, hwcap2: hwcap2, dual: true}
}

// HWCap2 returns the AT_HWCAP2 word. ok is false on layouts that only use
// AT_HWCAP.
func (b Bitmask) HWCap2() (v uint64, ok bool) {
	return b.hwcap2, b.dual
}

// Option configures a Query.
type Option func(*query)

type query struct {
	path     string
	layout   Layout
	resolver Resolver
	logger   log.Logger
}

// WithPath reads the vector from path instead of DefaultPath.
func WithPath(path string) Option {
	return func(q *query) { q.path = path }
}

// WithLayout overrides the native layout. When l belongs to another
// architecture, or its LibcHWCap is false, the default resolver is not
// consulted; pass WithResolver to force one.
func WithLayout(l Layout) Option {
	return func(q *query) { q.layout = l }
}

// WithResolver replaces DefaultResolver.
func WithResolver(r Resolver) Option {
	return func(q *query) { q.resolver = r }
}

// WithLogger sets a logger for per-tier debug output.
func WithLogger(l log.Logger) Option {
	return func(q *query) { q.logger = l }
}

// Query returns the capability words of the running CPU.
//
// Detection priority:
//  1. getauxval, accepted only when every required word is nonzero and
//     the layout's LibcHWCap is set
//  2. the auxiliary vector file (DefaultPath unless overridden)
//
// Any failure is reported as ErrNotFound.
func Query(opts ...Option) (Bitmask, error) {
	q := query{
		path:   DefaultPath,
		layout: NativeLayout(),
		logger: log.NewNopLogger(),
	}
	for _, o := range opts {
		o(&q)
	}
	if q.resolver == nil {
		if q.layout.Native() && q.layout.LibcHWCap {
			q.resolver = DefaultResolver()
		} else {
			q.resolver = noResolver{}
		}
	}
	logger := log.With(q.logger, "arch", q.layout.Arch)

	b, err := q.fromResolver()
	if err == nil {
		level.Debug(logger).Log("msg", "hardware capabilities read via getauxval", "hwcap", b.HWCap)
		return b, nil
	}
	level.Debug(logger).Log("msg", "getauxval unusable, falling back to file", "path", q.path, "err", err)

	b, err = FromFile(q.path, q.layout)
	if err != nil {
		level.Debug(logger).Log("msg", "hardware capabilities not found", "err", err)
		return Bitmask{}, ErrNotFound
	}
	level.Debug(logger).Log("msg", "hardware capabilities read from file", "path", q.path, "hwcap", b.HWCap)
	return b, nil
}

func (q *query) fromResolver() (Bitmask, error) {
	hwcap, err := q.resolver.Getauxval(KeyHWCap)
	if err != nil {
		return Bitmask{}, err
	}
	if !q.layout.DualKey {
		if hwcap == 0 {
			return Bitmask{}, errors.Wrap(ErrNotFound, "getauxval(AT_HWCAP) returned 0")
		}
		return Bitmask{HWCap: hwcap}, nil
	}

	hwcap2, err := q.resolver.Getauxval(KeyHWCap2)
	if err != nil {
		return Bitmask{}, err
	}
	if hwcap == 0 || hwcap2 == 0 {
		return Bitmask{}, errors.Wrapf(ErrNotFound, "getauxval returned a zero word (hwcap=%#x hwcap2=%#x)", hwcap, hwcap2)
	}
	return newDualBitmask(hwcap, hwcap2), nil
}
