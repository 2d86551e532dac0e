package change

import (
	"github.com/oneconcern/localvcs/pkg/model"
)

// ChangeSet is an ordered batch of changes, applied atomically
type ChangeSet []Change

// NewChangeSet builds a change set from a copy of some changes
func NewChangeSet(changes ...Change) ChangeSet {
	return append(ChangeSet(nil), changes...)
}

// Apply all changes in order, each on the root produced by the previous one.
//
// The first failure aborts the whole set: the error is a *Error pointing at
// the failing change, and the original root is left untouched.
// On success, the applied change set is returned.
func (cs ChangeSet) Apply(root *model.Root, ids model.IDSource) (*model.Root, ChangeSet, error) {
	applied := make(ChangeSet, 0, len(cs))
	current := root
	for i, c := range cs {
		next, done, err := c.Apply(current, ids)
		if err != nil {
			return root, nil, &Error{Index: i, Change: c, Err: err}
		}
		current = next
		applied = append(applied, done)
	}
	return current, applied, nil
}

// Revert an applied change set, in reverse order, on the root it produced
func (cs ChangeSet) Revert(root *model.Root) (*model.Root, error) {
	current := root
	for i := len(cs) - 1; i >= 0; i-- {
		previous, err := cs[i].Revert(current)
		if err != nil {
			return nil, &Error{Index: i, Change: cs[i], Err: err}
		}
		current = previous
	}
	return current, nil
}

// Applied tells if all changes carry their revert data
func (cs ChangeSet) Applied() bool {
	for _, c := range cs {
		if !c.Applied() {
			return false
		}
	}
	return true
}

// AffectedIDs lists all object ids recorded by the applied changes of the set
func (cs ChangeSet) AffectedIDs() []model.ID {
	var ids []model.ID
	for _, c := range cs {
		ids = append(ids, AffectedIDs(c)...)
	}
	return ids
}
