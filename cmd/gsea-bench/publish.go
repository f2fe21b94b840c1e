package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/discochess/gsea/internal/codec"
	"github.com/discochess/gsea/internal/store"
	"github.com/discochess/gsea/internal/store/diskstore"
	"github.com/discochess/gsea/internal/store/gcsstore"
	"github.com/discochess/gsea/internal/store/s3store"
)

// openStore opens the report store named by target:
//
//	s3://bucket/prefix
//	gs://bucket/prefix
//	a local directory, optionally as file:///dir
func openStore(ctx context.Context, target, compression string) (store.Store, error) {
	c, err := codecByName(compression)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasPrefix(target, "s3://"):
		bucket, prefix := splitBucket(strings.TrimPrefix(target, "s3://"))
		return s3store.New(ctx, bucket, c, s3store.WithPrefix(prefix))
	case strings.HasPrefix(target, "gs://"):
		bucket, prefix := splitBucket(strings.TrimPrefix(target, "gs://"))
		return gcsstore.New(ctx, bucket, c, gcsstore.WithPrefix(prefix))
	default:
		return diskstore.New(strings.TrimPrefix(target, "file://"), c)
	}
}

func splitBucket(path string) (bucket, prefix string) {
	bucket, prefix, _ = strings.Cut(path, "/")
	return bucket, prefix
}

func codecByName(name string) (codec.Codec, error) {
	switch name {
	case "zst", "zstd":
		return codec.Zstd{}, nil
	case "gz", "gzip":
		return codec.Gzip{}, nil
	case "", "none":
		return codec.Plain{}, nil
	default:
		return nil, fmt.Errorf("unknown compression %q", name)
	}
}
