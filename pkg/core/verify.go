package core

import (
	"github.com/oneconcern/localvcs/pkg/core/status"
	"github.com/oneconcern/localvcs/pkg/model"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Verify replays the change list for every snapshot of the current history and checks
// that it reproduces the snapshot obtained by reverting from the current one.
//
// All mismatches are reported.
func (r *Repository) Verify() error {
	var err error
	for _, root := range r.History() {
		err = multierr.Append(err, r.verify(root))
	}
	if err != nil {
		r.l.Warn("verification failed", zap.Int("revision", r.Revision()), zap.Error(err))
	}
	return err
}

// rewind reverts the current snapshot down to the empty root, which must be reached exactly.
// It checks that the whole history can be listed, without replaying it.
func (r *Repository) rewind() error {
	root := r.root
	for root.Revision() > 0 {
		previous, err := r.changes.RevertOn(root)
		if err != nil {
			return err
		}
		root = previous
	}
	if root.Len() > 0 {
		return status.ErrHistoryMismatch.WrapMessage("reverting to revision 0 leaves %d entries", root.Len())
	}
	return nil
}

func (r *Repository) verify(root *model.Root) error {
	replayed, err := r.changes.Replay(root.Revision())
	if err != nil {
		return err
	}
	if !model.Equal(root, replayed) {
		return status.ErrHistoryMismatch.WrapMessage("revision %d: fingerprint %s, replayed %s",
			root.Revision(), model.Fingerprint(root), model.Fingerprint(replayed))
	}
	return nil
}
