package bdgr

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"testing"

	"github.com/oneconcern/localvcs/pkg/storage"
	"github.com/oneconcern/localvcs/pkg/storage/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func setupStore(t testing.TB) *Store {
	t.Helper()
	s, err := New("", InMemory(true), Logger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "sixteentons", bytes.NewBufferString("this is the text"), storage.NoOverWrite))
	require.NoError(t, s.Put(ctx, "repo/seventeentons", bytes.NewBufferString("this is the text for another thing"), storage.NoOverWrite))
	return s
}

func readString(t testing.TB, s storage.Store, key string) string {
	rdr, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	b, err := io.ReadAll(rdr)
	require.NoError(t, err)
	require.NoError(t, rdr.Close())
	return string(b)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	assert.Equal(t, "badger@memory", s.String())

	has, err := s.Has(ctx, "sixteentons")
	require.NoError(t, err)
	assert.True(t, has)
	has, err = s.Has(ctx, "fifteentons")
	require.NoError(t, err)
	assert.False(t, has)

	assert.Equal(t, "this is the text", readString(t, s, "sixteentons"))
	_, err = s.Get(ctx, "fifteentons")
	assert.True(t, errors.Is(err, status.ErrNotExists))

	size, updated, err := s.Meta(ctx, "sixteentons")
	require.NoError(t, err)
	assert.Equal(t, int64(len("this is the text")), size)
	assert.False(t, updated.IsZero())

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"repo/seventeentons", "sixteentons"}, keys)

	err = s.Put(ctx, "sixteentons", bytes.NewBufferString("again"), storage.NoOverWrite)
	assert.True(t, errors.Is(err, status.ErrExists))
	require.NoError(t, s.Put(ctx, "sixteentons", bytes.NewBufferString("again"), storage.OverWrite))
	assert.Equal(t, "again", readString(t, s, "sixteentons"))

	require.NoError(t, s.Delete(ctx, "repo/seventeentons"))
	require.NoError(t, s.Delete(ctx, "nowhere"))
	keys, err = s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"sixteentons"}, keys)
	_, _, err = s.Meta(ctx, "repo/seventeentons")
	assert.True(t, errors.Is(err, status.ErrNotExists))

	require.NoError(t, s.Clear(ctx))
	keys, err = s.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMaxObjectSize(t *testing.T) {
	s, err := New("", InMemory(true), MaxObjectSize(8))
	require.NoError(t, err)
	defer func() {
		_ = s.Close()
	}()

	err = s.Put(context.Background(), "big", bytes.NewBufferString("more than eight bytes"), storage.OverWrite)
	assert.True(t, errors.Is(err, status.ErrObjectTooBig))
	require.NoError(t, s.Put(context.Background(), "small", bytes.NewBufferString("tiny"), storage.OverWrite))
}

func TestPersistentStore(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := New(dir, SyncWrites(false))
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "content", bytes.NewBufferString("persisted"), storage.OverWrite))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	reopened, err := New(dir)
	require.NoError(t, err)
	defer func() {
		_ = reopened.Close()
	}()
	assert.Equal(t, "persisted", readString(t, reopened, "content"))
}

func TestNewRequiresPath(t *testing.T) {
	_, err := New("")
	assert.True(t, errors.Is(err, status.ErrInvalidResource))
}
