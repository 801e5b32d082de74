package ramdump

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"gitlab.com/markorv.net/isaharness/internal/core/ports/secondary"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
)

// signalWidth is the number of bytes of the tohost word that carry the result
const signalWidth = 2

var _ secondary.DumpReader = (*Reader)(nil)

// Reader decodes the signal word from a raw RAM dump
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// ReadSignal reads the little endian word at offset. Any failure, including
// a dump too short to hold the word, wraps errs.ErrArtifactRead.
func (r *Reader) ReadSignal(path string, offset int64) (uint16, error) {
	if offset < 0 {
		return 0, fmt.Errorf("%w: negative offset %d", errs.ErrArtifactRead, offset)
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrArtifactRead, err)
	}
	defer file.Close()

	buf := make([]byte, signalWidth)
	if _, err := file.ReadAt(buf, offset); err != nil {
		if err == io.EOF {
			return 0, fmt.Errorf("%w: %s is too short for offset 0x%x", errs.ErrArtifactRead, path, offset)
		}
		return 0, fmt.Errorf("%w: %v", errs.ErrArtifactRead, err)
	}

	return binary.LittleEndian.Uint16(buf), nil
}
