package codec

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

var _ Codec = Gzip{}

// Gzip implements gzip compression.
type Gzip struct{}

// Reader wraps r to decompress gzip data.
func (Gzip) Reader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

// Writer wraps w to compress data with gzip.
func (Gzip) Writer(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}

// Extension returns "gz".
func (Gzip) Extension() string {
	return "gz"
}
