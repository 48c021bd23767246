// Kernel identity via uname(2).

//go:build linux || darwin || freebsd

package cpu

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Machine reports the kernel name, release and hardware name of the host.
func Machine() (MachineInfo, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return MachineInfo{}, fmt.Errorf("uname: %w", err)
	}
	return MachineInfo{
		Sysname: unix.ByteSliceToString(u.Sysname[:]),
		Release: unix.ByteSliceToString(u.Release[:]),
		Machine: unix.ByteSliceToString(u.Machine[:]),
	}, nil
}
