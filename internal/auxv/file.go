package auxv

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// DefaultPath is the kernel's copy of the calling process's auxiliary vector.
const DefaultPath = "/proc/self/auxv"

// FromFile reads an auxiliary vector dump from path and parses it with l.
//
// At most MaxWords words are read, in a single read call. A short read is
// fine: the unread tail stays zero and key 0 never matches a capability key.
func FromFile(path string, l Layout) (Bitmask, error) {
	if err := l.validate(); err != nil {
		return Bitmask{}, errors.Wrapf(ErrNotFound, "layout %q: %v", l.Arch, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return Bitmask{}, errors.Wrapf(ErrNotFound, "open %s: %v", path, err)
	}
	defer f.Close()

	buf := make([]byte, MaxWords*l.WordSize)
	if _, err := f.Read(buf); err != nil && err != io.EOF {
		return Bitmask{}, errors.Wrapf(ErrNotFound, "read %s: %v", path, err)
	}

	words := decodeWords(buf, l)
	return ParseWords(&words, l)
}
