package core

import (
	"github.com/oneconcern/localvcs/pkg/core/status"
	"github.com/oneconcern/localvcs/pkg/model"
	"go.uber.org/zap"
)

// History lists the snapshots of the current ancestry, the current snapshot first.
//
// The empty root is never part of the history.
func (r *Repository) History() []*model.Root {
	var history []*model.Root
	for root := r.root; root.Revision() > 0; {
		history = append(history, root)
		previous, err := r.changes.RevertOn(root)
		if err != nil {
			r.l.Error("history interrupted", zap.Int("revision", root.Revision()), zap.Error(err))
			break
		}
		root = previous
	}
	return history
}

// EntryHistory lists the successive versions of the entry currently found at some path, newest first.
//
// The entry is followed by object id, across renames. The history stops at the first snapshot
// where the entry does not exist: an earlier, disjoint lifetime of the id is not reported.
func (r *Repository) EntryHistory(p model.Path) []model.Entry {
	e, ok := r.root.Entry(p)
	if !ok {
		return nil
	}
	id := e.ID()

	var versions []model.Entry
	for _, root := range r.History() {
		version, ok := root.EntryByID(id)
		if !ok {
			break
		}
		versions = append(versions, version)
	}
	return versions
}

// Snapshot yields the snapshot carrying some label.
//
// The current ancestry is searched first. Otherwise, the newest labeled revision is rebuilt from the change list.
func (r *Repository) Snapshot(label string) (*model.Root, error) {
	for _, root := range r.History() {
		if l, ok := r.changes.Label(root); ok && l == label {
			return root, nil
		}
	}
	found, ok := r.changes.Labels().Find(label)
	if !ok {
		return nil, status.ErrLabelNotFound.WrapMessage("%q", label)
	}
	return r.changes.Replay(found.Revision)
}

// SnapshotAt yields the snapshot of any recorded revision
func (r *Repository) SnapshotAt(revision int) (*model.Root, error) {
	if revision == r.Revision() {
		return r.root, nil
	}
	return r.changes.Replay(revision)
}
