// hwcap reports the hardware capability bits of the running CPU.
//
// Usage:
//
//	hwcap show
//	hwcap raw --auxv-path testdata/linux-rpi3.auxv --arch arm
//	hwcap check neon vfpv4
package main

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/spf13/cobra"

	"github.com/hartyporpoise/hwcap/internal/config"
	"github.com/hartyporpoise/hwcap/internal/cpu"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries the parsed configuration into every subcommand.
type app struct {
	cfg    config.Config
	logger log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: log.NewNopLogger()}

	root := &cobra.Command{
		Use:   "hwcap",
		Short: "Report CPU hardware capabilities from the Linux auxiliary vector",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			a.logger = newLogger(cmd.ErrOrStderr(), a.cfg.LogLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfg.AuxvPath, "auxv-path", envOrDefault("HWCAP_AUXV_PATH", ""),
		"Read a captured auxiliary vector instead of the running process")
	f.StringVar(&a.cfg.Arch, "arch", envOrDefault("HWCAP_ARCH", ""),
		"GOARCH to decode for (default: the running architecture)")
	f.StringVar(&a.cfg.CPUInfoPath, "cpuinfo-path", envOrDefault("HWCAP_CPUINFO_PATH", ""),
		"Textual fallback file (default: "+cpu.DefaultCPUInfoPath+")")
	f.StringVarP(&a.cfg.Format, "format", "o", envOrDefault("HWCAP_FORMAT", config.FormatText),
		"Output format: text or json")
	f.StringVar(&a.cfg.LogLevel, "log.level", envOrDefault("HWCAP_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error")

	root.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show capability words and decoded feature names",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runShow(cmd)
			},
		},
		&cobra.Command{
			Use:   "raw",
			Short: "Print only the AT_HWCAP/AT_HWCAP2 words",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runRaw(cmd)
			},
		},
		&cobra.Command{
			Use:   "check FEATURE...",
			Short: "Exit non-zero unless every named feature is present",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runCheck(cmd, args)
			},
		},
	)
	return root
}

// envOrDefault returns the value of an env var, or fallback if unset.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
