// Package engine opens workspaces: a repository bound to the store it is loaded from and saved to.
package engine

import (
	"context"
	"io"

	"github.com/docker/go-units"
	"github.com/oneconcern/localvcs/pkg/config"
	"github.com/oneconcern/localvcs/pkg/core"
	"github.com/oneconcern/localvcs/pkg/dlogger"
	"github.com/oneconcern/localvcs/pkg/errors"
	"github.com/oneconcern/localvcs/pkg/metrics"
	"github.com/oneconcern/localvcs/pkg/model"
	"github.com/oneconcern/localvcs/pkg/storage"
	"github.com/oneconcern/localvcs/pkg/storage/bdgr"
	"github.com/oneconcern/localvcs/pkg/storage/localfs"
	storagestatus "github.com/oneconcern/localvcs/pkg/storage/status"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Workspace holds a repository and its store
type Workspace struct {
	cfg   *config.Config
	repo  *core.Repository
	store storage.Store
	fs    afero.Fs
	l     *zap.Logger
	m     *metrics.Metrics
}

// Open a workspace: the repository is loaded from the configured store, or created empty
// when the store does not hold it yet.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Workspace, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	maxSize, err := cfg.MaxObjectSizeBytes()
	if err != nil {
		return nil, err
	}

	w := &Workspace{cfg: cfg}
	for _, apply := range opts {
		apply(w)
	}
	if w.l == nil {
		if w.l, err = dlogger.GetLogger(cfg.LogLevel); err != nil {
			return nil, err
		}
	}
	w.l = w.l.With(zap.String("repo", cfg.Repo), zap.String("backend", cfg.Backend))
	if cfg.Metrics {
		w.m = metrics.New(metrics.WithConstLabels(map[string]string{"repo": cfg.Repo}))
	}

	backend, err := w.openStore(maxSize)
	if err != nil {
		return nil, err
	}
	w.store = storage.Instrument(w.l, w.m, backend)

	repoOpts := []core.Option{
		core.Name(cfg.Repo),
		core.Logger(w.l),
		core.Metrics(w.m),
		core.VerifyOnLoad(cfg.Verify),
		core.MaxObjectSize(maxSize),
	}
	exists, err := w.store.Has(ctx, model.GetArchivePathToContent(cfg.Repo))
	if err != nil {
		return nil, multierr.Append(err, w.closeStore())
	}
	if exists {
		w.repo, err = core.Load(ctx, w.store, repoOpts...)
	} else {
		w.l.Info("no stored repository: starting from an empty one")
		w.repo, err = core.New(repoOpts...)
	}
	if err != nil {
		return nil, multierr.Append(err, w.closeStore())
	}
	return w, nil
}

func (w *Workspace) openStore(maxSize int64) (storage.Store, error) {
	switch w.cfg.Backend {
	case config.BackendBadger:
		return bdgr.New(w.cfg.Path,
			bdgr.Logger(w.l.Named("badger")),
			bdgr.SyncWrites(w.cfg.SyncWrites),
			bdgr.MaxObjectSize(maxSize),
		)
	case config.BackendMemory:
		return localfs.New(afero.NewMemMapFs()), nil
	default:
		fs := w.fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		if err := fs.MkdirAll(w.cfg.Path, 0700); err != nil {
			return nil, err
		}
		fs = afero.NewBasePathFs(fs, w.cfg.Path)
		if w.cfg.Atomic {
			return localfs.NewAtomic(fs)
		}
		return localfs.New(fs), nil
	}
}

// Repository of the workspace
func (w *Workspace) Repository() *core.Repository {
	return w.repo
}

// Store of the workspace
func (w *Workspace) Store() storage.Store {
	return w.store
}

// Metrics of the workspace. Nil unless enabled by the configuration.
func (w *Workspace) Metrics() *metrics.Metrics {
	return w.m
}

// Save the committed state of the repository to the store
func (w *Workspace) Save(ctx context.Context) error {
	return w.repo.Store(ctx, w.store)
}

// Backup copies the stored repository to another store. Unsaved commits are not part of the copy.
func (w *Workspace) Backup(ctx context.Context, destination storage.Store) error {
	name := w.repo.Name()
	content, err := storage.ReadTee(ctx, w.store, model.GetArchivePathToContent(name), destination, model.GetArchivePathToContent(name))
	if err != nil {
		return err
	}
	descriptorKey := model.GetArchivePathToRepoDescriptor(name)
	if _, err := storage.ReadTee(ctx, w.store, descriptorKey, destination, descriptorKey); err != nil {
		if !errors.Is(err, storagestatus.ErrNotExists) {
			return err
		}
		w.l.Warn("no repository descriptor to back up")
	}
	w.l.Info("backed up",
		zap.String("destination", destination.String()),
		zap.String("size", units.HumanSize(float64(len(content)))),
	)
	return nil
}

// Close the store. The repository is not saved.
func (w *Workspace) Close() error {
	err := w.closeStore()
	_ = w.l.Sync()
	return err
}

func (w *Workspace) closeStore() error {
	if closer, ok := w.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
