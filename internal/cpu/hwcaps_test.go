package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hartyporpoise/hwcap/internal/auxv"
)

func TestDecodeHWCapFixtures(t *testing.T) {
	arm, err := auxv.LookupLayout("arm")
	require.NoError(t, err)
	b, err := auxv.FromFile("../auxv/testdata/linux-rpi3.auxv", arm)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"half", "thumb", "fastmult", "vfp", "edsp", "neon", "vfpv3", "tls",
		"vfpv4", "idiva", "idivt", "vfpd32", "lpae", "evtstrm", "crc32",
	}, DecodeHWCap("arm", b))

	amd64, err := auxv.LookupLayout("amd64")
	require.NoError(t, err)
	b, err = auxv.FromFile("../auxv/testdata/linux-x64-i7-6850k.auxv", amd64)
	require.NoError(t, err)

	names := DecodeHWCap("amd64", b)
	assert.Len(t, names, 28)
	assert.Contains(t, names, "sse2")
	assert.Contains(t, names, "clflush")
	assert.NotContains(t, names, "pn")
	assert.NotContains(t, names, "ia64")
}

func TestDecodeHWCapSecondaryWordIgnoredWithoutHWCap2(t *testing.T) {
	b := auxv.Bitmask{HWCap: 1}
	// Bit 0 of AT_HWCAP2 would be "aes" on arm; the bitmask has no second word.
	assert.Equal(t, []string{"swp"}, DecodeHWCap("arm", b))
	assert.Equal(t, []string{"fp"}, DecodeHWCap("arm64", b))
	assert.Nil(t, DecodeHWCap("riscv64", b))
}

func TestHWCapTablesHaveNoDuplicateBits(t *testing.T) {
	for arch, bits := range hwcapTables {
		seen := map[[2]uint64]string{}
		names := map[string]bool{}
		for _, bit := range bits {
			key := [2]uint64{uint64(bit.word), bit.mask}
			if prev, ok := seen[key]; ok {
				t.Errorf("%s: %s and %s share a bit", arch, prev, bit.name)
			}
			seen[key] = bit.name
			assert.False(t, names[bit.name], "%s: duplicate name %s", arch, bit.name)
			names[bit.name] = true
		}
	}
}
