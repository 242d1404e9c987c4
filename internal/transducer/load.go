package transducer

import (
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// LoadFile memory-maps path and decodes it as a transducer image without
// copying the file into a heap-allocated buffer first. The returned
// Transducer's tables point into the mapping, which LoadFile never
// unmaps; callers that need to release the mapping explicitly should use
// LoadFileHandle instead.
func LoadFile(path string) (*Transducer, error) {
	t, _, err := LoadFileHandle(path)
	return t, err
}

// LoadFileHandle is LoadFile but also returns the memory mapping so the
// caller can Unmap it once the transducer (and anything derived from it,
// e.g. a Speller) is no longer needed.
func LoadFileHandle(path string) (*Transducer, mmap.MMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening transducer file %q", path)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "memory-mapping transducer file %q", path)
	}

	t, err := Load(m)
	if err != nil {
		m.Unmap()
		return nil, nil, errors.Wrapf(err, "decoding transducer file %q", path)
	}
	return t, m, nil
}
