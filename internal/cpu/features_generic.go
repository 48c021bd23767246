// Fallback for architectures without a runtime probe.
// Detection there relies on the auxiliary vector and /proc/cpuinfo alone.

//go:build !amd64 && !arm64

package cpu

func runtimeFlags() []flagState {
	return nil
}
