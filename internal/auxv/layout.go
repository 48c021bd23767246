package auxv

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"sort"
	"unsafe"
)

// Layout describes how an auxiliary vector is laid out for one architecture
// and which capability keys that architecture publishes.
type Layout struct {
	// Arch is the GOARCH name the layout belongs to.
	Arch string

	// WordSize is the width of one key or value in bytes (4 or 8).
	WordSize int

	// ByteOrder is the byte order the kernel writes words in.
	ByteOrder binary.ByteOrder

	// DualKey is true on architectures whose capabilities span AT_HWCAP and
	// AT_HWCAP2 (32-bit arm and the ppc64 family).
	DualKey bool

	// LibcHWCap is true where libc's getauxval(AT_HWCAP) hands back the
	// kernel word unchanged. glibc on x86 substitutes its own dl_hwcap bits,
	// so there only the vector file is trusted.
	LibcHWCap bool
}

// layouts lists every Linux GOARCH. Only arm and ppc64x need AT_HWCAP2;
// the rest are read through AT_HWCAP alone. getauxval is only trusted on
// arm, arm64, mips and ppc64.
var layouts = map[string]Layout{
	"386":      {WordSize: 4, ByteOrder: binary.LittleEndian},
	"amd64":    {WordSize: 8, ByteOrder: binary.LittleEndian},
	"arm":      {WordSize: 4, ByteOrder: binary.LittleEndian, DualKey: true, LibcHWCap: true},
	"arm64":    {WordSize: 8, ByteOrder: binary.LittleEndian, LibcHWCap: true},
	"loong64":  {WordSize: 8, ByteOrder: binary.LittleEndian},
	"mips":     {WordSize: 4, ByteOrder: binary.BigEndian, LibcHWCap: true},
	"mipsle":   {WordSize: 4, ByteOrder: binary.LittleEndian, LibcHWCap: true},
	"mips64":   {WordSize: 8, ByteOrder: binary.BigEndian, LibcHWCap: true},
	"mips64le": {WordSize: 8, ByteOrder: binary.LittleEndian, LibcHWCap: true},
	"ppc64":    {WordSize: 8, ByteOrder: binary.BigEndian, DualKey: true, LibcHWCap: true},
	"ppc64le":  {WordSize: 8, ByteOrder: binary.LittleEndian, DualKey: true, LibcHWCap: true},
	"riscv64":  {WordSize: 8, ByteOrder: binary.LittleEndian},
	"s390x":    {WordSize: 8, ByteOrder: binary.BigEndian},
}

// LookupLayout returns the layout for a GOARCH name.
func LookupLayout(arch string) (Layout, error) {
	l, ok := layouts[arch]
	if !ok {
		return Layout{}, fmt.Errorf("auxv: unknown architecture %q", arch)
	}
	l.Arch = arch
	return l, nil
}

// KnownArchs returns the architectures LookupLayout accepts, sorted.
func KnownArchs() []string {
	archs := make([]string, 0, len(layouts))
	for a := range layouts {
		archs = append(archs, a)
	}
	sort.Strings(archs)
	return archs
}

// NativeLayout describes the running binary. Word size and byte order come
// from the process itself, so an architecture missing from the table still
// gets a usable single-key layout.
func NativeLayout() Layout {
	l, err := LookupLayout(runtime.GOARCH)
	if err != nil {
		l = Layout{Arch: runtime.GOARCH}
	}
	l.WordSize = int(unsafe.Sizeof(uintptr(0)))
	l.ByteOrder = binary.NativeEndian
	return l
}

// Native reports whether l describes the running process.
func (l Layout) Native() bool {
	return l.Arch == runtime.GOARCH
}

func (l Layout) validate() error {
	if l.WordSize != 4 && l.WordSize != 8 {
		return fmt.Errorf("word size %d not supported", l.WordSize)
	}
	if l.ByteOrder == nil {
		return fmt.Errorf("no byte order")
	}
	return nil
}
