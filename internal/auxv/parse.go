package auxv

import (
	"github.com/pkg/errors"
)

// MaxWords is the size of the buffer the vector is read into. Linux defines
// at most 32 (key, value) pairs, from AT_NULL (0) to AT_EXECFN (31), so 64
// words hold the whole vector. Anything past that is dropped.
const MaxWords = 64

// decodeWords turns raw vector bytes into words using l's word size and
// byte order. buf shorter than MaxWords*l.WordSize leaves the tail zero.
func decodeWords(buf []byte, l Layout) [MaxWords]uint64 {
	var words [MaxWords]uint64
	for i := range words {
		off := i * l.WordSize
		if off+l.WordSize > len(buf) {
			break
		}
		switch l.WordSize {
		case 4:
			words[i] = uint64(l.ByteOrder.Uint32(buf[off:]))
		case 8:
			words[i] = l.ByteOrder.Uint64(buf[off:])
		}
	}
	return words
}

// ParseWords extracts the capability values from a buffer of (key, value)
// pairs.
//
// Single-key layouts stop at the first AT_HWCAP pair. Dual-key layouts scan
// the whole buffer, keep the last value seen for each key, and only succeed
// when both keys were present. A zero value is treated as a missing key in
// both cases.
func ParseWords(words *[MaxWords]uint64, l Layout) (Bitmask, error) {
	if !l.DualKey {
		for i := 0; i+1 < MaxWords; i += 2 {
			if words[i] != KeyHWCap {
				continue
			}
			if words[i+1] == 0 {
				return Bitmask{}, errors.Wrap(ErrNotFound, "AT_HWCAP is zero")
			}
			return Bitmask{HWCap: words[i+1]}, nil
		}
		return Bitmask{}, errors.Wrap(ErrNotFound, "AT_HWCAP not in vector")
	}

	var (
		hwcap, hwcap2         uint64
		seenHWCap, seenHWCap2 bool
	)
	for i := 0; i+1 < MaxWords; i += 2 {
		switch words[i] {
		case KeyHWCap:
			hwcap, seenHWCap = words[i+1], true
		case KeyHWCap2:
			hwcap2, seenHWCap2 = words[i+1], true
		}
	}
	switch {
	case !seenHWCap:
		return Bitmask{}, errors.Wrap(ErrNotFound, "AT_HWCAP not in vector")
	case !seenHWCap2:
		return Bitmask{}, errors.Wrap(ErrNotFound, "AT_HWCAP2 not in vector")
	case hwcap == 0 || hwcap2 == 0:
		return Bitmask{}, errors.Wrapf(ErrNotFound, "zero capability word (hwcap=%#x hwcap2=%#x)", hwcap, hwcap2)
	}
	return newDualBitmask(hwcap, hwcap2), nil
}
