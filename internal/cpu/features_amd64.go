// CPU feature detection for x86-64 using the CPUID instruction.
// AT_HWCAP on x86 only mirrors CPUID leaf 1 EDX, so everything from SSE3
// onwards (AVX, AVX2, AVX-512, AMX) has to come from here.
package cpu

import "golang.org/x/sys/cpu"

// runtimeFlags reports x86-64 flags as probed by golang.org/x/sys/cpu,
// named the way /proc/cpuinfo names them.
func runtimeFlags() []flagState {
	return []flagState{
		{"sse2", cpu.X86.HasSSE2},
		{"pni", cpu.X86.HasSSE3},
		{"ssse3", cpu.X86.HasSSSE3},
		{"sse4_1", cpu.X86.HasSSE41},
		{"sse4_2", cpu.X86.HasSSE42},
		{"popcnt", cpu.X86.HasPOPCNT},
		{"aes", cpu.X86.HasAES},
		{"pclmulqdq", cpu.X86.HasPCLMULQDQ},
		{"osxsave", cpu.X86.HasOSXSAVE},
		{"avx", cpu.X86.HasAVX},
		{"avx2", cpu.X86.HasAVX2},
		{"fma", cpu.X86.HasFMA},
		{"bmi1", cpu.X86.HasBMI1},
		{"bmi2", cpu.X86.HasBMI2},
		{"erms", cpu.X86.HasERMS},
		{"adx", cpu.X86.HasADX},
		{"rdrand", cpu.X86.HasRDRAND},
		{"rdseed", cpu.X86.HasRDSEED},
		// AVX-512 is absent on most consumer parts; each subset is probed on its own.
		{"avx512f", cpu.X86.HasAVX512F},
		{"avx512bw", cpu.X86.HasAVX512BW},
		{"avx512vl", cpu.X86.HasAVX512VL},
		{"amx_bf16", cpu.X86.HasAMXBF16},
	}
}
