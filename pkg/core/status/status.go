// Package status exports errors produced by the core package.
package status

import (
	"github.com/oneconcern/localvcs/pkg/errors"
)

var (
	// ErrEmptyHistory indicates an operation which needs at least one revision, such as a revert from the empty root
	ErrEmptyHistory = errors.New("no history")

	// ErrLabelNotFound indicates that no revision carries the requested label
	ErrLabelNotFound = errors.New("label not found")

	// ErrUnknownRevision indicates a root which claims a revision the change list does not know about
	ErrUnknownRevision = errors.New("unknown revision")

	// ErrCommit indicates that the pending changes could not be committed
	ErrCommit = errors.New("commit failed")

	// ErrHistoryMismatch indicates that replaying the change list does not reproduce a snapshot
	ErrHistoryMismatch = errors.New("history does not reproduce the snapshot")

	// ErrRevert indicates that the recorded changes could not be reverted on a root
	ErrRevert = errors.New("revert failed")
)
