package change

import (
	"fmt"

	"github.com/oneconcern/localvcs/pkg/errors"
	"github.com/oneconcern/localvcs/pkg/model"
	"github.com/oneconcern/localvcs/pkg/model/status"
)

var (
	// ErrNotApplied is returned when reverting a change which carries no revert data
	ErrNotApplied = errors.New("change was never applied")

	// ErrRevertMismatch is returned when the tree does not match the state produced by an applied change
	ErrRevertMismatch = errors.New("tree does not match the applied change")
)

// Error reports the change which made a change set fail
type Error struct {
	Index  int
	Change Change
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("change #%d (%v): %v", e.Index, e.Change, e.Err)
}

// Unwrap the cause
func (e *Error) Unwrap() error {
	return e.Err
}

func notApplied(c Change) error {
	return ErrNotApplied.WrapMessage("%v", c)
}

func idMismatch(c Change, expected, actual model.ID) error {
	return ErrRevertMismatch.WrapMessage("%v: expected object id %d, found %d", c, expected, actual)
}

func invalidRootTarget(c Change) error {
	return status.ErrInvalidPath.WrapMessage("%v: cannot target the root", c)
}
