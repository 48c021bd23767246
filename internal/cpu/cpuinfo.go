package cpu

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultCPUInfoPath is the textual fallback read when the auxiliary vector
// yields nothing.
const DefaultCPUInfoPath = "/proc/cpuinfo"

// readCPUInfoFlags returns the feature names of the first processor in a
// cpuinfo file. x86 calls the line "flags", arm and arm64 call it "Features".
func readCPUInfoFlags(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, val, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "flags", "Features":
			names := strings.Fields(strings.ToLower(val))
			if len(names) == 0 {
				return nil, fmt.Errorf("%s: empty feature line", path)
			}
			return names, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return nil, fmt.Errorf("%s: no feature line", path)
}
