// CPU feature detection for ARM64 (AWS Graviton, Ampere, Apple Silicon under Linux, etc.).
package cpu

import "golang.org/x/sys/cpu"

// runtimeFlags reports ARM64 flags from golang.org/x/sys/cpu. On Linux the
// library reads the same AT_HWCAP word; on other systems it is the only source.
func runtimeFlags() []flagState {
	return []flagState{
		{"fp", cpu.ARM64.HasFP},
		{"asimd", cpu.ARM64.HasASIMD},
		{"evtstrm", cpu.ARM64.HasEVTSTRM},
		{"aes", cpu.ARM64.HasAES},
		{"pmull", cpu.ARM64.HasPMULL},
		{"sha1", cpu.ARM64.HasSHA1},
		{"sha2", cpu.ARM64.HasSHA2},
		{"crc32", cpu.ARM64.HasCRC32},
		{"atomics", cpu.ARM64.HasATOMICS},
		{"fphp", cpu.ARM64.HasFPHP},
		{"asimdhp", cpu.ARM64.HasASIMDHP},
		{"cpuid", cpu.ARM64.HasCPUID},
		{"asimdrdm", cpu.ARM64.HasASIMDRDM},
		{"jscvt", cpu.ARM64.HasJSCVT},
		{"fcma", cpu.ARM64.HasFCMA},
		{"lrcpc", cpu.ARM64.HasLRCPC},
		{"dcpop", cpu.ARM64.HasDCPOP},
		{"sha3", cpu.ARM64.HasSHA3},
		{"sm3", cpu.ARM64.HasSM3},
		{"sm4", cpu.ARM64.HasSM4},
		{"asimddp", cpu.ARM64.HasASIMDDP},
		{"sha512", cpu.ARM64.HasSHA512},
		{"sve", cpu.ARM64.HasSVE},
		{"asimdfhm", cpu.ARM64.HasASIMDFHM},
	}
}
