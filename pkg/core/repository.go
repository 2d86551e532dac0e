package core

import (
	"github.com/oneconcern/localvcs/pkg/change"
	"github.com/oneconcern/localvcs/pkg/core/status"
	"github.com/oneconcern/localvcs/pkg/errors"
	"github.com/oneconcern/localvcs/pkg/model"
	modelstatus "github.com/oneconcern/localvcs/pkg/model/status"
	"go.uber.org/zap"
)

// Repository tracks a versioned tree of entries.
//
// Edits are queued as pending changes and only validated when committed.
// A repository is not safe for concurrent use.
type Repository struct {
	Settings

	root    *model.Root
	changes *ChangeList
	ids     *model.IDAllocator
	pending change.ChangeSet

	// generation of the last loaded or stored state
	generation string
}

// New builds an empty repository
func New(opts ...Option) (*Repository, error) {
	settings := defaultSettings()
	for _, apply := range opts {
		apply(&settings)
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}
	ids := model.NewIDAllocator(model.RootID)
	r := &Repository{
		Settings: settings,
		root:     model.NewRoot(),
		ids:      ids,
		changes:  NewChangeList(ids, settings.l),
	}
	r.l = r.l.With(zap.String("repo", r.name))
	return r, nil
}

// Name of the repository
func (r *Repository) Name() string {
	return r.name
}

// Root is the current snapshot
func (r *Repository) Root() *model.Root {
	return r.root
}

// Revision of the current snapshot
func (r *Repository) Revision() int {
	return r.root.Revision()
}

// HasEntry tells if a path exists in the current snapshot
func (r *Repository) HasEntry(p model.Path) bool {
	return r.root.Has(p)
}

// Entry at some path in the current snapshot
func (r *Repository) Entry(p model.Path) (model.Entry, error) {
	e, ok := r.root.Entry(p)
	if !ok {
		return nil, modelstatus.ErrNotFound.WrapMessage("%q at revision %d", p, r.Revision())
	}
	return e, nil
}

// CreateFile queues the creation of a file
func (r *Repository) CreateFile(p model.Path, content []byte) {
	r.queue(change.NewCreateFile(p, content))
}

// CreateDirectory queues the creation of an empty directory
func (r *Repository) CreateDirectory(p model.Path) {
	r.queue(change.NewCreateDirectory(p))
}

// ChangeContent queues the replacement of the content of a file
func (r *Repository) ChangeContent(p model.Path, content []byte) {
	r.queue(change.NewModify(p, content))
}

// Rename queues the renaming of an entry, within its directory
func (r *Repository) Rename(p model.Path, newName string) {
	r.queue(change.NewRename(p, newName))
}

// Delete queues the removal of an entry and its subtree
func (r *Repository) Delete(p model.Path) {
	r.queue(change.NewDelete(p))
}

func (r *Repository) queue(c change.Change) {
	r.pending = append(r.pending, c)
	r.l.Debug("change queued", zap.Stringer("change", c), zap.Int("pending", len(r.pending)))
	r.m.State(r.Revision(), len(r.pending))
}

// IsClean tells if no change is pending
func (r *Repository) IsClean() bool {
	return len(r.pending) == 0
}

// Pending changes, in order
func (r *Repository) Pending() []change.Change {
	pending := make([]change.Change, len(r.pending))
	copy(pending, r.pending)
	return pending
}

// Commit applies all pending changes at once, as a new revision.
//
// On failure, the current snapshot and the pending changes are left untouched.
// The error wraps status.ErrCommit as well as the cause of the failing change.
func (r *Repository) Commit() error {
	kinds := make([]string, 0, len(r.pending))
	for _, c := range r.pending {
		kinds = append(kinds, c.Kind().String())
	}

	root, err := r.changes.ApplyChangeSetOn(r.root, r.pending)
	r.m.Commit(kinds, err)
	if err != nil {
		return status.ErrCommit.WrapWithLog(r.l, err, zap.Int("revision", r.Revision()), zap.Int("pending", len(r.pending)))
	}

	r.root = root
	r.pending = nil
	r.l.Info("committed", zap.Int("revision", root.Revision()), zap.Int("changes", len(kinds)))
	r.m.State(r.Revision(), 0)
	return nil
}

// Revert drops pending changes and moves back to the parent of the current revision.
//
// Reverting the empty root is a no-op.
func (r *Repository) Revert() error {
	r.pending = nil
	defer func() { r.m.State(r.Revision(), 0) }()

	previous, err := r.changes.RevertOn(r.root)
	if err != nil {
		if errors.Is(err, status.ErrEmptyHistory) {
			r.l.Debug("nothing to revert")
			return nil
		}
		return err
	}

	r.l.Info("reverted", zap.Int("from", r.Revision()), zap.Int("revision", previous.Revision()))
	r.root = previous
	r.m.Revert()
	return nil
}

// PutLabel labels the current revision
func (r *Repository) PutLabel(label string) error {
	if err := r.changes.SetLabel(r.root, label); err != nil {
		return err
	}
	r.l.Info("labeled", zap.String("label", label), zap.Int("revision", r.Revision()))
	return nil
}

// Label of the current revision, if any
func (r *Repository) Label() (string, bool) {
	return r.changes.Label(r.root)
}

// Labels lists all labeled revisions, newest first
func (r *Repository) Labels() model.LabelDescriptors {
	return r.changes.Labels()
}
