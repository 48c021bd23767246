// Package cpu turns the hardware capability words of the auxiliary vector
// into named CPU features.
// Detection is best-effort: if a feature cannot be confirmed it is
// reported as absent, so callers degrade gracefully on hardware or
// kernels that expose less than expected.
package cpu

import (
	"runtime"
	"sort"
	"strings"
	"sync"

	set "github.com/deckarep/golang-set/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/hartyporpoise/hwcap/internal/auxv"
)

// Source names the tier a Features value was built from.
type Source string

const (
	// SourceAuxv means AT_HWCAP (and AT_HWCAP2) were found.
	SourceAuxv Source = "auxv"
	// SourceCPUInfo means the flags line of /proc/cpuinfo was used.
	SourceCPUInfo Source = "cpuinfo"
	// SourceRuntime means only the golang.org/x/sys/cpu probe answered.
	SourceRuntime Source = "runtime"
	// SourceNone means nothing answered; every feature is treated as absent.
	SourceNone Source = "none"
)

// Features describes the CPU feature set of one machine.
type Features struct {
	// Arch is the GOARCH the features were decoded for.
	Arch string

	// Source is the first tier that produced an answer.
	Source Source

	// HWCap holds the raw capability words when Source is SourceAuxv.
	HWCap *auxv.Bitmask

	// Flags holds feature names in /proc/cpuinfo spelling.
	// A name is only present when it was confirmed by some tier.
	Flags set.Set[string]
}

// flagState is one runtime-probed feature.
type flagState struct {
	name    string
	present bool
}

// Option configures Detect.
type Option func(*detectConfig)

type detectConfig struct {
	arch          string
	cpuinfoPath   string
	cpuinfoForced bool
	captured      bool
	auxvOpts      []auxv.Option
	logger        log.Logger
}

// WithArch decodes for another architecture, e.g. when inspecting a
// captured auxv dump. Probes that can only describe the running CPU are
// skipped.
func WithArch(arch string) Option {
	return func(c *detectConfig) { c.arch = arch }
}

// WithCPUInfoPath reads the textual fallback from path.
func WithCPUInfoPath(path string) Option {
	return func(c *detectConfig) {
		c.cpuinfoPath = path
		c.cpuinfoForced = true
	}
}

// WithCapturedVector decodes a saved auxiliary vector from path instead of
// the running process. getauxval, /proc/cpuinfo and the runtime probe all
// describe the host, so they are not consulted; WithCPUInfoPath can still
// supply a matching textual dump.
func WithCapturedVector(path string) Option {
	return func(c *detectConfig) {
		c.captured = true
		c.auxvOpts = append(c.auxvOpts, auxv.WithPath(path), auxv.WithResolver(auxv.NoResolver()))
	}
}

// WithAuxvOptions passes options through to auxv.Query.
func WithAuxvOptions(opts ...auxv.Option) Option {
	return func(c *detectConfig) { c.auxvOpts = append(c.auxvOpts, opts...) }
}

// WithLogger sets the logger for detection and for the auxv query.
func WithLogger(l log.Logger) Option {
	return func(c *detectConfig) { c.logger = l }
}

// Detect reads the CPU feature flags.
//
// Detection priority:
//  1. auxiliary vector (getauxval, then /proc/self/auxv)
//  2. /proc/cpuinfo flags line
//  3. golang.org/x/sys/cpu, merged on top of whatever 1 or 2 found
//
// It only fails for an unknown arch. When no tier answers the result has
// Source SourceNone and an empty flag set.
func Detect(opts ...Option) (*Features, error) {
	cfg := detectConfig{
		arch:        runtime.GOARCH,
		cpuinfoPath: DefaultCPUInfoPath,
		logger:      log.NewNopLogger(),
	}
	for _, o := range opts {
		o(&cfg)
	}

	native := cfg.arch == runtime.GOARCH
	host := native && !cfg.captured
	layout := auxv.NativeLayout()
	if !native {
		l, err := auxv.LookupLayout(cfg.arch)
		if err != nil {
			return nil, err
		}
		layout = l
	}
	logger := log.With(cfg.logger, "arch", cfg.arch)

	f := &Features{
		Arch:   cfg.arch,
		Source: SourceNone,
		Flags:  set.NewSet[string](),
	}

	auxvOpts := append([]auxv.Option{auxv.WithLayout(layout), auxv.WithLogger(cfg.logger)}, cfg.auxvOpts...)
	if b, err := auxv.Query(auxvOpts...); err == nil {
		f.Source = SourceAuxv
		f.HWCap = &b
		f.Flags.Append(DecodeHWCap(cfg.arch, b)...)
	} else if host || cfg.cpuinfoForced {
		names, err := readCPUInfoFlags(cfg.cpuinfoPath)
		if err != nil {
			level.Debug(logger).Log("msg", "cpuinfo fallback failed", "path", cfg.cpuinfoPath, "err", err)
		} else {
			f.Source = SourceCPUInfo
			f.Flags.Append(names...)
		}
	}

	if host {
		for _, fl := range runtimeFlags() {
			if fl.present {
				f.Flags.Add(fl.name)
			}
		}
		if f.Source == SourceNone && f.Flags.Cardinality() > 0 {
			f.Source = SourceRuntime
		}
	}

	if f.Source == SourceNone {
		level.Warn(logger).Log("msg", "no CPU feature source answered, treating all features as absent")
	} else {
		level.Debug(logger).Log("msg", "CPU features detected", "source", f.Source, "count", f.Flags.Cardinality())
	}
	return f, nil
}

var (
	cachedOnce sync.Once
	cached     *Features
)

// Cached runs Detect for the running CPU once per process and returns the
// shared result. Callers must not modify it.
func Cached() *Features {
	cachedOnce.Do(func() {
		// Detect cannot fail for the native arch.
		cached, _ = Detect()
	})
	return cached
}

// Has reports whether the named feature was confirmed.
func (f *Features) Has(name string) bool {
	return f.Flags.Contains(strings.ToLower(name))
}

// Names returns the confirmed features, sorted.
func (f *Features) Names() []string {
	names := f.Flags.ToSlice()
	sort.Strings(names)
	return names
}

// Missing returns the required features that were not confirmed, sorted.
func (f *Features) Missing(required ...string) []string {
	want := set.NewSet[string]()
	for _, r := range required {
		want.Add(strings.ToLower(r))
	}
	missing := want.Difference(f.Flags).ToSlice()
	sort.Strings(missing)
	return missing
}

// FeatureSummary returns a short human-readable string of detected features.
func FeatureSummary(f *Features) string {
	if f.Flags.Cardinality() == 0 {
		return "none detected"
	}
	return strings.Join(f.Names(), " ")
}
