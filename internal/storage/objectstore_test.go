package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newBucketStores(t *testing.T, bucket string) map[string]ObjectStore {
	t.Helper()
	ctx := context.Background()

	s3Cfg := testBucketConfig
	s3Cfg.Driver = "s3"
	s3Cfg.Bucket = bucket + "-s3"
	s3Store, err := New(ctx, s3Cfg)
	require.NoError(t, err)

	minioCfg := testBucketConfig
	minioCfg.Driver = "minio"
	minioCfg.Bucket = bucket + "-minio"
	minioStore, err := New(ctx, minioCfg)
	require.NoError(t, err)

	return map[string]ObjectStore{"s3": s3Store, "minio": minioStore}
}

func TestBucketStores_EnsureBucket(t *testing.T) {
	ctx := context.Background()

	for name, store := range newBucketStores(t, "ensure") {
		t.Run(name, func(t *testing.T) {
			require.Error(t, store.Ping(ctx), "bucket should not exist yet")

			ensurer, ok := store.(BucketEnsurer)
			require.True(t, ok)
			require.NoError(t, ensurer.EnsureBucket(ctx))
			require.NoError(t, ensurer.EnsureBucket(ctx), "EnsureBucket must be idempotent")

			require.NoError(t, store.Ping(ctx))
		})
	}
}

func TestBucketStores_PutAndDelete(t *testing.T) {
	ctx := context.Background()

	for name, store := range newBucketStores(t, "objects") {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.(BucketEnsurer).EnsureBucket(ctx))

			content := []byte("object body")
			key := UploadKey("item1", "note.txt", time.Now())

			url, err := store.Put(ctx, key, bytes.NewReader(content), int64(len(content)), "text/plain")
			require.NoError(t, err)
			require.Contains(t, url, key)

			resp, err := http.Get(url)
			require.NoError(t, err)
			defer resp.Body.Close()
			// Buckets are private by default; reaching the endpoint is enough.
			require.Contains(t, []int{http.StatusOK, http.StatusForbidden}, resp.StatusCode)
			_, _ = io.Copy(io.Discard, resp.Body)

			require.NoError(t, store.Delete(ctx, key))
			require.NoError(t, store.Delete(ctx, key), "deleting a missing object is not an error")

			_, err = store.Put(ctx, "../bad", bytes.NewReader(content), int64(len(content)), "")
			require.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := testBucketConfig
	cfg.Driver = "ftp"
	_, err := New(context.Background(), cfg)
	require.Error(t, err)
}

func TestNormaliseEndpoint(t *testing.T) {
	endpoint, secure, err := normaliseEndpoint("minio:9000", false)
	require.NoError(t, err)
	require.Equal(t, "minio:9000", endpoint)
	require.False(t, secure)

	endpoint, secure, err = normaliseEndpoint("https://s3.example.com", false)
	require.NoError(t, err)
	require.Equal(t, "s3.example.com", endpoint)
	require.True(t, secure)

	_, secure, err = normaliseEndpoint("minio:9000", true)
	require.NoError(t, err)
	require.True(t, secure)

	_, _, err = normaliseEndpoint("http://minio:9000/bucket", false)
	require.Error(t, err)

	_, _, err = normaliseEndpoint("  ", false)
	require.Error(t, err)
}
