package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/hartyporpoise/hwcap/internal/auxv"
	"github.com/hartyporpoise/hwcap/internal/config"
	"github.com/hartyporpoise/hwcap/internal/cpu"
)

// report is what every subcommand prints.
type report struct {
	Arch     string           `json:"arch"`
	Source   cpu.Source       `json:"source,omitempty"`
	Machine  *cpu.MachineInfo `json:"machine,omitempty"`
	HWCap    string           `json:"hwcap,omitempty"`
	HWCap2   string           `json:"hwcap2,omitempty"`
	Features []string         `json:"features,omitempty"`
	Missing  []string         `json:"missing,omitempty"`

	checked bool
}

func (a *app) layout() auxv.Layout {
	if a.cfg.Arch == "" {
		return auxv.NativeLayout()
	}
	// Arch was checked by config.Validate.
	l, _ := auxv.LookupLayout(a.cfg.Arch)
	return l
}

func (a *app) detect() (*cpu.Features, error) {
	opts := []cpu.Option{cpu.WithLogger(a.logger)}
	if a.cfg.Arch != "" {
		opts = append(opts, cpu.WithArch(a.cfg.Arch))
	}
	if a.cfg.AuxvPath != "" {
		opts = append(opts, cpu.WithCapturedVector(a.cfg.AuxvPath))
	}
	if a.cfg.CPUInfoPath != "" {
		opts = append(opts, cpu.WithCPUInfoPath(a.cfg.CPUInfoPath))
	}
	return cpu.Detect(opts...)
}

func (a *app) runShow(cmd *cobra.Command) error {
	f, err := a.detect()
	if err != nil {
		return err
	}
	r := report{
		Arch:     f.Arch,
		Source:   f.Source,
		Features: f.Names(),
	}
	if f.HWCap != nil {
		setWords(&r, *f.HWCap)
	}
	if a.cfg.AuxvPath == "" {
		m, err := cpu.Machine()
		if err != nil {
			level.Warn(a.logger).Log("msg", "cannot identify host", "err", err)
		} else {
			r.Machine = &m
		}
	}
	return a.write(cmd.OutOrStdout(), r)
}

func (a *app) runRaw(cmd *cobra.Command) error {
	l := a.layout()

	var (
		b   auxv.Bitmask
		err error
	)
	if a.cfg.AuxvPath != "" {
		b, err = auxv.FromFile(a.cfg.AuxvPath, l)
	} else {
		b, err = auxv.Query(auxv.WithLayout(l), auxv.WithLogger(a.logger))
	}
	if err != nil {
		return fmt.Errorf("%s: capabilities unknown: %w", l.Arch, err)
	}

	r := report{Arch: l.Arch}
	setWords(&r, b)
	return a.write(cmd.OutOrStdout(), r)
}

func (a *app) runCheck(cmd *cobra.Command, required []string) error {
	f, err := a.detect()
	if err != nil {
		return err
	}
	r := report{
		Arch:    f.Arch,
		Source:  f.Source,
		Missing: f.Missing(required...),
		checked: true,
	}
	if err := a.write(cmd.OutOrStdout(), r); err != nil {
		return err
	}
	if len(r.Missing) > 0 {
		return fmt.Errorf("missing CPU features: %s", strings.Join(r.Missing, ", "))
	}
	return nil
}

func setWords(r *report, b auxv.Bitmask) {
	r.HWCap = fmt.Sprintf("%#x", b.HWCap)
	if v, ok := b.HWCap2(); ok {
		r.HWCap2 = fmt.Sprintf("%#x", v)
	}
}

func (a *app) write(w io.Writer, r report) error {
	if a.cfg.Format == config.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-9s %s\n", label, value)
		}
	}
	line("arch", r.Arch)
	line("source", string(r.Source))
	if r.Machine != nil {
		line("machine", strings.TrimSpace(strings.Join([]string{r.Machine.Sysname, r.Machine.Release, r.Machine.Machine}, " ")))
	}
	line("hwcap", r.HWCap)
	line("hwcap2", r.HWCap2)
	if r.Source != "" && !r.checked {
		features := strings.Join(r.Features, " ")
		if features == "" {
			features = "none detected"
		}
		line("features", features)
	}
	if len(r.Missing) > 0 {
		line("missing", strings.Join(r.Missing, " "))
	} else if r.checked {
		line("check", "ok")
	}
	return nil
}
