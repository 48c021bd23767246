package cpu

import "github.com/hartyporpoise/hwcap/internal/auxv"

// hwcapBit names one bit of AT_HWCAP (word 1) or AT_HWCAP2 (word 2).
type hwcapBit struct {
	name string
	word int
	mask uint64
}

// Bit tables follow the kernel uapi headers. Names match the ones the
// kernel prints in /proc/cpuinfo so every detection tier speaks the same
// vocabulary.
var hwcapTables = map[string][]hwcapBit{
	"arm":      armBits,
	"arm64":    arm64Bits,
	"ppc64":    ppc64Bits,
	"ppc64le":  ppc64Bits,
	"mips":     mipsBits,
	"mipsle":   mipsBits,
	"mips64":   mipsBits,
	"mips64le": mipsBits,
	"386":      x86Bits,
	"amd64":    x86Bits,
}

// arch/arm/include/uapi/asm/hwcap.h
var armBits = []hwcapBit{
	{"swp", 1, 1 << 0},
	{"half", 1, 1 << 1},
	{"thumb", 1, 1 << 2},
	{"26bit", 1, 1 << 3},
	{"fastmult", 1, 1 << 4},
	{"fpa", 1, 1 << 5},
	{"vfp", 1, 1 << 6},
	{"edsp", 1, 1 << 7},
	{"java", 1, 1 << 8},
	{"iwmmxt", 1, 1 << 9},
	{"crunch", 1, 1 << 10},
	{"thumbee", 1, 1 << 11},
	{"neon", 1, 1 << 12},
	{"vfpv3", 1, 1 << 13},
	{"vfpv3d16", 1, 1 << 14},
	{"tls", 1, 1 << 15},
	{"vfpv4", 1, 1 << 16},
	{"idiva", 1, 1 << 17},
	{"idivt", 1, 1 << 18},
	{"vfpd32", 1, 1 << 19},
	{"lpae", 1, 1 << 20},
	{"evtstrm", 1, 1 << 21},
	{"aes", 2, 1 << 0},
	{"pmull", 2, 1 << 1},
	{"sha1", 2, 1 << 2},
	{"sha2", 2, 1 << 3},
	{"crc32", 2, 1 << 4},
}

// arch/arm64/include/uapi/asm/hwcap.h. Only AT_HWCAP is read on arm64.
var arm64Bits = []hwcapBit{
	{"fp", 1, 1 << 0},
	{"asimd", 1, 1 << 1},
	{"evtstrm", 1, 1 << 2},
	{"aes", 1, 1 << 3},
	{"pmull", 1, 1 << 4},
	{"sha1", 1, 1 << 5},
	{"sha2", 1, 1 << 6},
	{"crc32", 1, 1 << 7},
	{"atomics", 1, 1 << 8},
	{"fphp", 1, 1 << 9},
	{"asimdhp", 1, 1 << 10},
	{"cpuid", 1, 1 << 11},
	{"asimdrdm", 1, 1 << 12},
	{"jscvt", 1, 1 << 13},
	{"fcma", 1, 1 << 14},
	{"lrcpc", 1, 1 << 15},
	{"dcpop", 1, 1 << 16},
	{"sha3", 1, 1 << 17},
	{"sm3", 1, 1 << 18},
	{"sm4", 1, 1 << 19},
	{"asimddp", 1, 1 << 20},
	{"sha512", 1, 1 << 21},
	{"sve", 1, 1 << 22},
	{"asimdfhm", 1, 1 << 23},
	{"dit", 1, 1 << 24},
	{"uscat", 1, 1 << 25},
	{"ilrcpc", 1, 1 << 26},
	{"flagm", 1, 1 << 27},
	{"ssbs", 1, 1 << 28},
	{"sb", 1, 1 << 29},
	{"paca", 1, 1 << 30},
	{"pacg", 1, 1 << 31},
}

// arch/powerpc/include/uapi/asm/cputable.h
var ppc64Bits = []hwcapBit{
	{"ppc32", 1, 0x80000000},
	{"ppc64", 1, 0x40000000},
	{"ppc601", 1, 0x20000000},
	{"altivec", 1, 0x10000000},
	{"fpu", 1, 0x08000000},
	{"mmu", 1, 0x04000000},
	{"4xxmac", 1, 0x02000000},
	{"ucache", 1, 0x01000000},
	{"spe", 1, 0x00800000},
	{"efpsingle", 1, 0x00400000},
	{"efpdouble", 1, 0x00200000},
	{"notb", 1, 0x00100000},
	{"power4", 1, 0x00080000},
	{"power5", 1, 0x00040000},
	{"power5+", 1, 0x00020000},
	{"cellbe", 1, 0x00010000},
	{"booke", 1, 0x00008000},
	{"smt", 1, 0x00004000},
	{"ic_snoop", 1, 0x00002000},
	{"arch_2_05", 1, 0x00001000},
	{"pa6t", 1, 0x00000800},
	{"dfp", 1, 0x00000400},
	{"power6x", 1, 0x00000200},
	{"arch_2_06", 1, 0x00000100},
	{"vsx", 1, 0x00000080},
	{"archpmu", 1, 0x00000040},
	{"true_le", 1, 0x00000002},
	{"ppcle", 1, 0x00000001},
	{"arch_2_07", 2, 0x80000000},
	{"htm", 2, 0x40000000},
	{"dscr", 2, 0x20000000},
	{"ebb", 2, 0x10000000},
	{"isel", 2, 0x08000000},
	{"tar", 2, 0x04000000},
	{"vcrypto", 2, 0x02000000},
	{"htm-nosc", 2, 0x01000000},
	{"arch_3_00", 2, 0x00800000},
	{"ieee128", 2, 0x00400000},
	{"darn", 2, 0x00200000},
	{"scv", 2, 0x00100000},
	{"htm-no-suspend", 2, 0x00080000},
	{"arch_3_1", 2, 0x00040000},
	{"mma", 2, 0x00020000},
}

// arch/mips/include/uapi/asm/hwcap.h
var mipsBits = []hwcapBit{
	{"r6", 1, 1 << 0},
	{"msa", 1, 1 << 1},
	{"crc32", 1, 1 << 2},
	{"mips16", 1, 1 << 3},
	{"mdmx", 1, 1 << 4},
	{"mips3d", 1, 1 << 5},
	{"smartmips", 1, 1 << 6},
	{"dsp", 1, 1 << 7},
	{"dsp2", 1, 1 << 8},
	{"dsp3", 1, 1 << 9},
	{"mips16e2", 1, 1 << 10},
	{"loongson-mmi", 1, 1 << 11},
	{"loongson-ext", 1, 1 << 12},
	{"loongson-ext2", 1, 1 << 13},
}

// On x86 AT_HWCAP is CPUID.1:EDX.
var x86Bits = []hwcapBit{
	{"fpu", 1, 1 << 0},
	{"vme", 1, 1 << 1},
	{"de", 1, 1 << 2},
	{"pse", 1, 1 << 3},
	{"tsc", 1, 1 << 4},
	{"msr", 1, 1 << 5},
	{"pae", 1, 1 << 6},
	{"mce", 1, 1 << 7},
	{"cx8", 1, 1 << 8},
	{"apic", 1, 1 << 9},
	{"sep", 1, 1 << 11},
	{"mtrr", 1, 1 << 12},
	{"pge", 1, 1 << 13},
	{"mca", 1, 1 << 14},
	{"cmov", 1, 1 << 15},
	{"pat", 1, 1 << 16},
	{"pse36", 1, 1 << 17},
	{"pn", 1, 1 << 18},
	{"clflush", 1, 1 << 19},
	{"dts", 1, 1 << 21},
	{"acpi", 1, 1 << 22},
	{"mmx", 1, 1 << 23},
	{"fxsr", 1, 1 << 24},
	{"sse", 1, 1 << 25},
	{"sse2", 1, 1 << 26},
	{"ss", 1, 1 << 27},
	{"ht", 1, 1 << 28},
	{"tm", 1, 1 << 29},
	{"ia64", 1, 1 << 30},
	{"pbe", 1, 1 << 31},
}

// DecodeHWCap returns the names of the bits set in b, using the table for
// arch. Bits the table does not know are skipped; an unknown arch yields nil.
func DecodeHWCap(arch string, b auxv.Bitmask) []string {
	var names []string
	hwcap2, hasHWCap2 := b.HWCap2()
	for _, bit := range hwcapTables[arch] {
		word := b.HWCap
		if bit.word == 2 {
			if !hasHWCap2 {
				continue
			}
			word = hwcap2
		}
		if word&bit.mask != 0 {
			names = append(names, bit.name)
		}
	}
	return names
}
