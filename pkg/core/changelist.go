package core

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/oneconcern/localvcs/pkg/change"
	"github.com/oneconcern/localvcs/pkg/core/status"
	"github.com/oneconcern/localvcs/pkg/model"
	"go.uber.org/zap"
)

// logEntry records how a revision was produced
type logEntry struct {
	parent  int
	changes change.ChangeSet
	label   string
}

// ChangeList is the append-only log of applied change sets.
//
// Revision 0 is the empty root. Log entry i produces revision i+1 from its parent revision.
// Entries are never removed: after a revert, the next change set is recorded with the reverted
// revision as its parent, and the abandoned revisions drop out of the current ancestry.
type ChangeList struct {
	entries []logEntry
	ids     *model.IDAllocator
	l       *zap.Logger

	// replayed roots, by revision
	replayed *lru.Cache
}

const replayCacheSize = 64

// NewChangeList builds an empty change list, allocating object ids from ids
func NewChangeList(ids *model.IDAllocator, l *zap.Logger) *ChangeList {
	if ids == nil {
		ids = model.NewIDAllocator(model.RootID)
	}
	if l == nil {
		l = zap.NewNop()
	}
	replayed, _ := lru.New(replayCacheSize) // only fails on a non-positive size
	return &ChangeList{ids: ids, l: l, replayed: replayed}
}

// reset replaces the whole log
func (cl *ChangeList) reset(entries []logEntry) {
	cl.entries = entries
	cl.replayed.Purge()
}

// Len is the number of recorded revisions, revision 0 excluded
func (cl *ChangeList) Len() int {
	return len(cl.entries)
}

func (cl *ChangeList) checkRevision(revision int) error {
	if revision < 0 || revision > len(cl.entries) {
		return status.ErrUnknownRevision.WrapMessage("revision %d (known revisions: %d)", revision, len(cl.entries))
	}
	return nil
}

func (cl *ChangeList) entry(revision int) *logEntry {
	return &cl.entries[revision-1]
}

// ApplyChangeSetOn applies a change set to a root and records it as a new revision.
//
// The returned root is stamped with the new revision. On failure, nothing is recorded.
func (cl *ChangeList) ApplyChangeSetOn(root *model.Root, changes change.ChangeSet) (*model.Root, error) {
	if err := cl.checkRevision(root.Revision()); err != nil {
		return nil, err
	}
	result, applied, err := changes.Apply(root, cl.ids)
	if err != nil {
		return nil, err
	}
	cl.entries = append(cl.entries, logEntry{parent: root.Revision(), changes: applied})
	revision := len(cl.entries)

	cl.l.Debug("change set applied",
		zap.Int("revision", revision),
		zap.Int("parent", root.Revision()),
		zap.Int("changes", len(applied)),
	)
	return result.WithRevision(revision), nil
}

// RevertOn yields the parent revision of a root, by reverting the change set which produced it.
//
// The log is left untouched. It fails with status.ErrEmptyHistory on the empty root.
func (cl *ChangeList) RevertOn(root *model.Root) (*model.Root, error) {
	revision := root.Revision()
	if revision == 0 {
		return nil, status.ErrEmptyHistory
	}
	if err := cl.checkRevision(revision); err != nil {
		return nil, err
	}
	e := cl.entry(revision)
	previous, err := e.changes.Revert(root)
	if err != nil {
		return nil, status.ErrRevert.Wrap(err)
	}
	return previous.WithRevision(e.parent), nil
}

// Parent revision of a revision. The empty root has no parent.
func (cl *ChangeList) Parent(revision int) (int, error) {
	if revision == 0 {
		return 0, status.ErrEmptyHistory
	}
	if err := cl.checkRevision(revision); err != nil {
		return 0, err
	}
	return cl.entry(revision).parent, nil
}

// Ancestry lists a revision and its ancestors, newest first, revision 0 excluded
func (cl *ChangeList) Ancestry(revision int) ([]int, error) {
	if err := cl.checkRevision(revision); err != nil {
		return nil, err
	}
	var revisions []int
	for r := revision; r > 0; r = cl.entry(r).parent {
		revisions = append(revisions, r)
	}
	return revisions, nil
}

// SetLabel puts a label on the revision of a root, replacing any previous label of that revision
func (cl *ChangeList) SetLabel(root *model.Root, label string) error {
	if err := model.ValidateLabel(label); err != nil {
		return err
	}
	revision := root.Revision()
	if revision == 0 {
		return status.ErrEmptyHistory.WrapMessage("cannot label the empty root")
	}
	if err := cl.checkRevision(revision); err != nil {
		return err
	}
	cl.entry(revision).label = label
	return nil
}

// Label of the revision of a root
func (cl *ChangeList) Label(root *model.Root) (string, bool) {
	revision := root.Revision()
	if revision == 0 || cl.checkRevision(revision) != nil {
		return "", false
	}
	label := cl.entry(revision).label
	return label, label != ""
}

// Labels lists all labeled revisions, newest revision first
func (cl *ChangeList) Labels() model.LabelDescriptors {
	var labels model.LabelDescriptors
	for i := len(cl.entries) - 1; i >= 0; i-- {
		if label := cl.entries[i].label; label != "" {
			labels = append(labels, model.LabelDescriptor{Name: label, Revision: i + 1})
		}
	}
	return labels
}

// Replay rebuilds a revision from the empty root, applying the recorded change sets of its
// ancestry in order. Recorded object ids are reused.
//
// Replayed roots are cached: a replay starts from the closest cached ancestor.
func (cl *ChangeList) Replay(revision int) (*model.Root, error) {
	ancestry, err := cl.Ancestry(revision)
	if err != nil {
		return nil, err
	}
	root := model.NewRoot()
	start := len(ancestry)
	for i, r := range ancestry {
		if cached, ok := cl.replayed.Get(r); ok {
			root, start = cached.(*model.Root), i
			break
		}
	}
	for i := start - 1; i >= 0; i-- {
		r := ancestry[i]
		next, _, err := cl.entry(r).changes.Apply(root, cl.ids)
		if err != nil {
			return nil, status.ErrHistoryMismatch.Wrap(err)
		}
		root = next.WithRevision(r)
	}
	if start > 0 {
		cl.replayed.Add(revision, root)
	}
	return root, nil
}
