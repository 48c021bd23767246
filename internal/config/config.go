// Package config defines runtime configuration for hwcap.
package config

import (
	"fmt"
	"runtime"

	"github.com/hartyporpoise/hwcap/internal/auxv"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds all settings passed in via CLI flags or environment variables.
type Config struct {
	// AuxvPath reads a captured auxiliary vector dump instead of querying the
	// running process. Empty means the live process.
	AuxvPath string

	// Arch is the GOARCH to decode the vector for. Empty means the running arch.
	// Any other arch requires AuxvPath.
	Arch string

	// CPUInfoPath overrides the /proc/cpuinfo fallback. Empty means the default.
	CPUInfoPath string

	// Format is the output format, "text" or "json".
	Format string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Validate checks the values a user can get wrong on the command line.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid format %q (want %s or %s)", c.Format, FormatText, FormatJSON)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.Arch != "" {
		if _, err := auxv.LookupLayout(c.Arch); err != nil {
			return fmt.Errorf("%w (known: %v)", err, auxv.KnownArchs())
		}
		// The live vector is always in the running arch's layout.
		if c.Arch != runtime.GOARCH && c.AuxvPath == "" {
			return fmt.Errorf("arch %q differs from the running arch %q and needs a captured auxv dump", c.Arch, runtime.GOARCH)
		}
	}
	return nil
}
