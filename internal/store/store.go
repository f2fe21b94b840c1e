// Package store defines where benchmark reports are published.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/discochess/gsea/internal/codec"
)

// ErrNotFound is returned when a report does not exist in the store.
var ErrNotFound = errors.New("store: report not found")

// Store defines the interface for storage backends.
// Implementations handle key formats and compression internally.
type Store interface {
	// WriteReport stores data under name, replacing any previous report.
	WriteReport(ctx context.Context, name string, data []byte) error

	// ReadReport returns the decompressed report stored under name.
	ReadReport(ctx context.Context, name string) ([]byte, error)

	// Close releases any resources held by the store.
	Close() error
}

// ObjectName returns the key of a report relative to a store's root:
// reports/<name>, with the codec extension appended.
func ObjectName(name string, c codec.Codec) string {
	key := "reports/" + name
	if ext := c.Extension(); ext != "" {
		key += "." + ext
	}
	return key
}

// Compress encodes data with c.
func Compress(c codec.Codec, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := c.Writer(&buf)
	if err != nil {
		return nil, fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("compressing report: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compressing report: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress reads all of r and decodes it with c.
func Decompress(c codec.Codec, r io.Reader) ([]byte, error) {
	dec, err := c.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decompressing report: %w", err)
	}
	return data, nil
}
