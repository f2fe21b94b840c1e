// Package codec compresses report files according to their extension.
package codec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Codec provides compression and decompression functionality.
type Codec interface {
	// Reader wraps r to decompress data read from it.
	Reader(r io.Reader) (io.ReadCloser, error)
	// Writer wraps w to compress data written to it.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Extension returns the file extension without dot (e.g., "zst", "gz").
	// Returns empty string for no compression.
	Extension() string
}

var codecs = []Codec{Zstd{}, Gzip{}}

// ForPath returns the codec matching the extension of path, or Plain.
func ForPath(path string) Codec {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, c := range codecs {
		if c.Extension() == ext {
			return c
		}
	}
	return Plain{}
}

// Create creates the file at path and returns a writer that compresses by
// extension. Closing the writer flushes the codec and closes the file.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	w, err := ForPath(path).Writer(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("compressing %s: %w", path, err)
	}
	return &fileWriter{WriteCloser: w, file: f}, nil
}

// Open opens the file at path and returns a reader that decompresses by
// extension.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	r, err := ForPath(path).Reader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	return &fileReader{ReadCloser: r, file: f}, nil
}

type fileWriter struct {
	io.WriteCloser
	file *os.File
}

func (w *fileWriter) Close() error {
	return errors.Join(w.WriteCloser.Close(), w.file.Close())
}

type fileReader struct {
	io.ReadCloser
	file *os.File
}

func (r *fileReader) Close() error {
	return errors.Join(r.ReadCloser.Close(), r.file.Close())
}
