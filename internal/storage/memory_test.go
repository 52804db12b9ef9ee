package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorageRoundTrip(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	body := "hello blob"
	require.NoError(t, s.Upload(ctx, "uploads/a.txt", strings.NewReader(body), int64(len(body)), "text/plain"))

	rc, meta, err := s.Download(ctx, "uploads/a.txt")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
	assert.Equal(t, "text/plain", meta.ContentType)
	assert.Equal(t, int64(len(body)), meta.Size)
}

func TestMemoryStorageListPrefix(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	for _, key := range []string{"uploads/b.png", "uploads/a.png", "other/c.png"} {
		require.NoError(t, s.Upload(ctx, key, strings.NewReader("x"), 1, "image/png"))
	}

	objs, err := s.List(ctx, "uploads/")
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "uploads/a.png", objs[0].Key)
	assert.Equal(t, "uploads/b.png", objs[1].Key)
}

func TestMemoryStorageDeleteAndMissing(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "k", strings.NewReader("x"), 1, ""))
	require.NoError(t, s.Delete(ctx, "k"))

	_, _, err := s.Download(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting a missing key is fine
	assert.NoError(t, s.Delete(ctx, "k"))
}
