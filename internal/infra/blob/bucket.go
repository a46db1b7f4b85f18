// Package blob stores binary content in a gocloud.dev bucket. The bucket
// URL in config selects the backend (file://, s3://, mem:// in tests).
package blob

import (
	"context"
	"io"
	"log/slog"

	"pocketlib/config"
	"pocketlib/internal/domain/service"
	"pocketlib/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers selectable via the configured URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"
)

type bucketService struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// Params holds the dependencies for the blob service, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and registers its shutdown hook.
func New(params Params) (service.BlobService, error) {
	bucket, err := blob.OpenBucket(params.Ctx, params.Config.Blob.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", params.Config.Blob.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return NewWithBucket(bucket, params.Logger), nil
}

// NewWithBucket wraps an already opened bucket; tests pass a memblob
// bucket here.
func NewWithBucket(bucket *blob.Bucket, logger *slog.Logger) service.BlobService {
	return &bucketService{bucket: bucket, logger: logger}
}

func (s *bucketService) Put(ctx context.Context, key string, item *service.Blob) error {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: item.ContentType,
	})
	if err != nil {
		return errors.Wrap(err, "open blob writer")
	}
	if _, err := writer.Write(item.Data); err != nil {
		writer.Close()

		return errors.Wrap(err, "write blob")
	}

	return errors.Wrap(writer.Close(), "close blob writer")
}

func (s *bucketService) Get(ctx context.Context, key string) (*service.Blob, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open blob reader")
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "read blob")
	}

	return &service.Blob{Data: data, ContentType: reader.ContentType()}, nil
}

func (s *bucketService) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		s.logger.Warn("blob delete failed", slog.String("key", key), slog.Any("error", err))

		return errors.Wrap(err, "delete blob")
	}

	return nil
}
