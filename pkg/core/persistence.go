package core

import (
	"bytes"
	"context"

	units "github.com/docker/go-units"
	"github.com/oneconcern/localvcs/pkg/codec"
	codecstatus "github.com/oneconcern/localvcs/pkg/codec/status"
	"github.com/oneconcern/localvcs/pkg/errors"
	"github.com/oneconcern/localvcs/pkg/model"
	"github.com/oneconcern/localvcs/pkg/storage"
	storagestatus "github.com/oneconcern/localvcs/pkg/storage/status"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

const (
	opLoad  = "load"
	opStore = "store"
)

// Load restores a repository from a store.
//
// Either the whole repository is restored, or an error is returned: decoding failures,
// a current snapshot which cannot be reverted down to the empty root, and inconsistencies
// with the stored descriptor wrap codec/status.ErrCorruptStore.
func Load(ctx context.Context, store storage.Store, opts ...Option) (*Repository, error) {
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}
	size, err := r.load(ctx, store)
	r.m.Persist(opLoad, size, err)
	if err != nil {
		r.l.Error("load failed", zap.String("store", store.String()), zap.Error(err))
		return nil, err
	}
	r.m.State(r.Revision(), 0)
	r.l.Info("loaded",
		zap.String("store", store.String()),
		zap.String("size", units.HumanSize(float64(size))),
		zap.Int("revision", r.Revision()),
		zap.Int("revisions", r.changes.Len()),
		zap.String("generation", r.generation),
	)
	return r, nil
}

func (r *Repository) load(ctx context.Context, store storage.Store) (int, error) {
	data, err := storage.ReadAll(ctx, store, model.GetArchivePathToContent(r.name), r.maxObjectSize)
	if err != nil {
		return 0, err
	}
	archive, err := codec.Decode(bytes.NewReader(data))
	if err != nil {
		return len(data), err
	}

	entries := make([]logEntry, 0, len(archive.Revisions))
	for _, rev := range archive.Revisions {
		entries = append(entries, logEntry{parent: rev.Parent, changes: rev.Changes, label: rev.Label})
	}
	r.changes.reset(entries)
	r.ids.Observe(archive.MaxID())
	r.root = archive.Root
	if err := r.rewind(); err != nil {
		return len(data), codecstatus.ErrCorruptStore.Wrap(err)
	}

	descriptor, err := r.loadDescriptor(ctx, store)
	if err != nil {
		return len(data), err
	}
	if descriptor != nil {
		if err := r.checkDescriptor(descriptor); err != nil {
			return len(data), err
		}
		r.generation = descriptor.Generation
	}

	if r.verifyOnLoad {
		if err := r.Verify(); err != nil {
			return len(data), codecstatus.ErrCorruptStore.Wrap(err)
		}
	}
	return len(data), nil
}

func (r *Repository) loadDescriptor(ctx context.Context, store storage.Store) (*model.RepoDescriptor, error) {
	data, err := storage.ReadAll(ctx, store, model.GetArchivePathToRepoDescriptor(r.name), r.maxObjectSize)
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			r.l.Warn("repository descriptor not found: skipping consistency check")
			return nil, nil
		}
		return nil, err
	}
	var descriptor model.RepoDescriptor
	if err := yaml.Unmarshal(data, &descriptor); err != nil {
		return nil, codecstatus.ErrCorruptStore.Wrap(err)
	}
	return &descriptor, nil
}

func (r *Repository) checkDescriptor(descriptor *model.RepoDescriptor) error {
	actual := r.describeRepo()
	switch {
	case descriptor.Version > model.CurrentRepoVersion:
		return codecstatus.ErrCorruptStore.WrapMessage("unsupported repository version %d, expected at most %d", descriptor.Version, model.CurrentRepoVersion)
	case descriptor.Name != actual.Name:
		return codecstatus.ErrCorruptStore.WrapMessage("descriptor is for repository %q, not %q", descriptor.Name, actual.Name)
	case descriptor.Revisions != actual.Revisions:
		return codecstatus.ErrCorruptStore.WrapMessage("descriptor records %d revisions, content has %d", descriptor.Revisions, actual.Revisions)
	case descriptor.Revision != actual.Revision:
		return codecstatus.ErrCorruptStore.WrapMessage("descriptor records revision %d, content is at revision %d", descriptor.Revision, actual.Revision)
	case descriptor.Fingerprint != actual.Fingerprint:
		return codecstatus.ErrCorruptStore.WrapMessage("descriptor fingerprint %s does not match content %s", descriptor.Fingerprint, actual.Fingerprint)
	}
	if _, err := ksuid.Parse(descriptor.Generation); err != nil {
		return codecstatus.ErrCorruptStore.WrapMessage("invalid generation %q: %v", descriptor.Generation, err)
	}
	return nil
}

// Store persists the committed state of the repository. Pending changes are not stored.
//
// The content is written first, then the descriptor.
func (r *Repository) Store(ctx context.Context, store storage.Store) error {
	size, err := r.store(ctx, store)
	r.m.Persist(opStore, size, err)
	if err != nil {
		r.l.Error("store failed", zap.String("store", store.String()), zap.Error(err))
		return err
	}
	r.l.Info("stored",
		zap.String("store", store.String()),
		zap.String("size", units.HumanSize(float64(size))),
		zap.Int("revision", r.Revision()),
		zap.String("generation", r.generation),
	)
	return nil
}

func (r *Repository) store(ctx context.Context, store storage.Store) (int, error) {
	archive := &codec.Archive{
		Revisions: make([]codec.Revision, 0, len(r.changes.entries)),
		Root:      r.root,
	}
	for _, e := range r.changes.entries {
		archive.Revisions = append(archive.Revisions, codec.Revision{Parent: e.parent, Changes: e.changes, Label: e.label})
	}
	var buf bytes.Buffer
	if err := codec.Encode(&buf, archive); err != nil {
		return 0, err
	}
	size := buf.Len()

	descriptor := r.describeRepo()
	descriptor.Generation = ksuid.New().String()
	descriptor.Timestamp = model.GetTimeStamp()
	data, err := yaml.Marshal(descriptor)
	if err != nil {
		return size, err
	}

	if err := store.Put(ctx, model.GetArchivePathToContent(r.name), &buf, storage.OverWrite); err != nil {
		return size, err
	}
	if err := store.Put(ctx, model.GetArchivePathToRepoDescriptor(r.name), bytes.NewReader(data), storage.OverWrite); err != nil {
		return size, err
	}
	r.generation = descriptor.Generation
	return size, nil
}

// Generation identifies the last state loaded from or stored to a store
func (r *Repository) Generation() string {
	return r.generation
}
