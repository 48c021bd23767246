//go:build !linux && !darwin && !freebsd

package cpu

import (
	"errors"
	"runtime"
)

// Machine is not supported here; only the OS and arch names are known.
func Machine() (MachineInfo, error) {
	return MachineInfo{Sysname: runtime.GOOS, Machine: runtime.GOARCH}, errors.New("uname not supported on " + runtime.GOOS)
}
