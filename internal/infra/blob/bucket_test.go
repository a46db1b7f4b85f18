package blob

import (
	"context"
	"log/slog"
	"testing"

	"pocketlib/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBucketService_RoundTrip(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { bucket.Close() })

	svc := NewWithBucket(bucket, slog.New(slog.DiscardHandler))
	ctx := context.Background()

	err := svc.Put(ctx, "cover-1", &service.Blob{
		Data:        []byte("png-bytes"),
		ContentType: "image/png",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "cover-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), got.Data)
	assert.Equal(t, "image/png", got.ContentType)

	require.NoError(t, svc.Delete(ctx, "cover-1"))
	_, err = svc.Get(ctx, "cover-1")
	assert.Error(t, err)
}
