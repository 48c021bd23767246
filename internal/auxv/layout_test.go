package auxv

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupLayout(t *testing.T) {
	for arch, dual := range map[string]bool{
		"arm":     true,
		"ppc64":   true,
		"ppc64le": true,
		"arm64":   false,
		"mips":    false,
		"mips64":  false,
		"amd64":   false,
	} {
		l, err := LookupLayout(arch)
		require.NoError(t, err, arch)
		assert.Equal(t, arch, l.Arch)
		assert.Equal(t, dual, l.DualKey, arch)
		assert.NoError(t, l.validate())
	}

	for arch, trusted := range map[string]bool{
		"arm":      true,
		"arm64":    true,
		"mips64le": true,
		"ppc64le":  true,
		"386":      false,
		"amd64":    false,
	} {
		l, err := LookupLayout(arch)
		require.NoError(t, err, arch)
		assert.Equal(t, trusted, l.LibcHWCap, arch)
	}

	_, err := LookupLayout("wasm")
	assert.Error(t, err)
}

func TestKnownArchs(t *testing.T) {
	archs := KnownArchs()
	assert.Len(t, archs, len(layouts))
	assert.IsIncreasing(t, archs)
	assert.Contains(t, archs, "arm")
}

func TestNativeLayout(t *testing.T) {
	l := NativeLayout()
	assert.Equal(t, runtime.GOARCH, l.Arch)
	assert.Equal(t, int(unsafe.Sizeof(uintptr(0))), l.WordSize)
	assert.True(t, l.Native())
	assert.NoError(t, l.validate())
}
