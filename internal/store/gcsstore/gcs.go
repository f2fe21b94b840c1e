// Package gcsstore implements a Google Cloud Storage backend.
package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/discochess/gsea/internal/codec"
	"github.com/discochess/gsea/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is a Google Cloud Storage backend.
type Store struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
	codec  codec.Codec
}

// New creates a new GCS store.
// The bucket must already exist.
// The codec handles compression/decompression.
func New(ctx context.Context, bucketName string, c codec.Codec, opts ...Option) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	s := &Store{
		client: client,
		bucket: client.Bucket(bucketName),
		codec:  c,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets a key prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
	}
}

// WriteReport compresses data and uploads it.
func (s *Store) WriteReport(ctx context.Context, name string, data []byte) error {
	compressed, err := store.Compress(s.codec, data)
	if err != nil {
		return err
	}

	w := s.bucket.Object(s.reportKey(name)).NewWriter(ctx)
	if _, err := w.Write(compressed); err != nil {
		w.Close()
		return fmt.Errorf("uploading report: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("uploading report: %w", err)
	}
	return nil
}

// ReadReport downloads and decompresses the named report.
func (s *Store) ReadReport(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := s.bucket.Object(s.reportKey(name)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	defer reader.Close()

	return store.Decompress(s.codec, reader)
}

// Close releases resources.
func (s *Store) Close() error {
	return s.client.Close()
}

// reportKey returns the full object key for a report.
func (s *Store) reportKey(name string) string {
	return s.prefix + store.ObjectName(name, s.codec)
}
