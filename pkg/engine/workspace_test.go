package engine

import (
	"context"
	"testing"

	"github.com/oneconcern/localvcs/pkg/config"
	"github.com/oneconcern/localvcs/pkg/core"
	"github.com/oneconcern/localvcs/pkg/errors"
	"github.com/oneconcern/localvcs/pkg/model"
	"github.com/oneconcern/localvcs/pkg/storage/localfs"
	storagestatus "github.com/oneconcern/localvcs/pkg/storage/status"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig(backend, path string) *config.Config {
	cfg := config.Default()
	cfg.Backend = backend
	cfg.Path = path
	cfg.Repo = "testrepo"
	return cfg
}

func editAndSave(t *testing.T, ctx context.Context, ws *Workspace) {
	t.Helper()
	repo := ws.Repository()
	repo.CreateDirectory(model.NewPath("src"))
	repo.CreateFile(model.NewPath("src", "main.go"), []byte("package main"))
	require.NoError(t, repo.Commit())
	require.NoError(t, repo.PutLabel("v1"))
	repo.ChangeContent(model.NewPath("src", "main.go"), []byte("package main\n\nfunc main() {}"))
	require.NoError(t, repo.Commit())
	require.NoError(t, ws.Save(ctx))
}

func assertRestored(t *testing.T, ws *Workspace) {
	t.Helper()
	repo := ws.Repository()
	assert.Equal(t, 2, repo.Revision())
	e, err := repo.Entry(model.NewPath("src", "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "package main\n\nfunc main() {}", string(e.(*model.File).Content()))

	snapshot, err := repo.Snapshot("v1")
	require.NoError(t, err)
	f, ok := snapshot.Entry(model.NewPath("src", "main.go"))
	require.True(t, ok)
	assert.Equal(t, "package main", string(f.(*model.File).Content()))
}

func TestOpenMemory(t *testing.T) {
	ctx := context.Background()
	ws, err := Open(ctx, testConfig(config.BackendMemory, ""), Logger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	defer func() { require.NoError(t, ws.Close()) }()

	assert.Equal(t, "testrepo", ws.Repository().Name())
	assert.Equal(t, 0, ws.Repository().Revision())
	assert.Nil(t, ws.Metrics())

	editAndSave(t, ctx, ws)
	has, err := ws.Store().Has(ctx, model.GetArchivePathToContent("testrepo"))
	require.NoError(t, err)
	assert.True(t, has)
}

func TestOpenLocalFS(t *testing.T) {
	for _, atomic := range []bool{true, false} {
		fs := afero.NewMemMapFs()
		cfg := testConfig(config.BackendLocalFS, "/data/vcs")
		cfg.Atomic = atomic
		cfg.Verify = true
		ctx := context.Background()

		ws, err := Open(ctx, cfg, Fs(fs), Logger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		editAndSave(t, ctx, ws)
		require.NoError(t, ws.Close())

		exists, err := afero.Exists(fs, "/data/vcs/testrepo/content")
		require.NoError(t, err)
		require.True(t, exists, "atomic=%v", atomic)

		reopened, err := Open(ctx, cfg, Fs(fs), Logger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assertRestored(t, reopened)
		assert.Equal(t, ws.Repository().Generation(), reopened.Repository().Generation())
		require.NoError(t, reopened.Close())
	}
}

func TestOpenBadger(t *testing.T) {
	cfg := testConfig(config.BackendBadger, t.TempDir())
	cfg.SyncWrites = false
	ctx := context.Background()

	ws, err := Open(ctx, cfg, Logger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	editAndSave(t, ctx, ws)
	require.NoError(t, ws.Close())

	reopened, err := Open(ctx, cfg, Logger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	assertRestored(t, reopened)
	require.NoError(t, reopened.Close())
}

func TestOpenMetrics(t *testing.T) {
	cfg := testConfig(config.BackendMemory, "")
	cfg.Metrics = true
	ctx := context.Background()

	ws, err := Open(ctx, cfg, Logger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	defer func() { require.NoError(t, ws.Close()) }()
	require.NotNil(t, ws.Metrics())

	editAndSave(t, ctx, ws)
	assert.Equal(t, float64(2), testutil.ToFloat64(ws.Metrics().Revision))
	assert.Positive(t, testutil.CollectAndCount(ws.Metrics().StorageOps))
}

func TestOpenInvalidConfig(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, testConfig("s3", "bucket"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))

	_, err = Open(ctx, testConfig(config.BackendLocalFS, ""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))

	cfg := testConfig(config.BackendMemory, "")
	cfg.MaxObjectSize = "lots"
	_, err = Open(ctx, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))
}

func TestOpenTooBig(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := testConfig(config.BackendLocalFS, "/vcs")
	ctx := context.Background()

	ws, err := Open(ctx, cfg, Fs(fs), Logger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	editAndSave(t, ctx, ws)
	require.NoError(t, ws.Close())

	cfg.MaxObjectSize = "16B"
	_, err = Open(ctx, cfg, Fs(fs), Logger(zaptest.NewLogger(t)))
	require.Error(t, err)
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	ws, err := Open(ctx, testConfig(config.BackendMemory, ""), Logger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	defer func() { require.NoError(t, ws.Close()) }()

	st, err := ws.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "testrepo", st.Repo)
	assert.False(t, st.Saved)
	assert.Zero(t, st.Revision)

	editAndSave(t, ctx, ws)
	ws.Repository().CreateFile(model.NewPath("pending.txt"), nil)

	st, err = ws.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.Saved)
	assert.Positive(t, st.SavedSize)
	assert.False(t, st.SavedAt.IsZero())
	assert.Equal(t, 2, st.Revision)
	assert.Equal(t, 1, st.Pending)
	assert.Empty(t, st.Label)
	assert.Equal(t, ws.Repository().Generation(), st.Generation)
}

func TestBackup(t *testing.T) {
	ctx := context.Background()
	ws, err := Open(ctx, testConfig(config.BackendMemory, ""), Logger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	defer func() { require.NoError(t, ws.Close()) }()

	destination := localfs.New(afero.NewMemMapFs())
	err = ws.Backup(ctx, destination)
	assert.True(t, errors.Is(err, storagestatus.ErrNotExists), "nothing saved yet")

	editAndSave(t, ctx, ws)
	require.NoError(t, ws.Backup(ctx, destination))

	keys, err := destination.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		model.GetArchivePathToContent("testrepo"),
		model.GetArchivePathToRepoDescriptor("testrepo"),
	}, keys)

	restored, err := core.Load(ctx, destination, core.Name("testrepo"), core.Logger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	assert.True(t, model.Equal(ws.Repository().Root(), restored.Root()))
	assert.Equal(t, ws.Repository().Generation(), restored.Generation())
}
