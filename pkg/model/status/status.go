// Package status declares error constants returned by the model package.
//
// NOTE: such constants are located in a separate package so packages
// building on the model may match them without importing the tree itself.
package status

import "github.com/oneconcern/localvcs/pkg/errors"

var (
	// ErrNotFound indicates that a path or an object id does not resolve to an entry
	ErrNotFound = errors.New("entry not found")

	// ErrPathConflict indicates that the target name is already taken in the parent directory
	ErrPathConflict = errors.New("path conflict")

	// ErrNotAFile indicates that a content operation targets something else than a file
	ErrNotAFile = errors.New("not a file")

	// ErrNotADirectory indicates that a path traverses or targets something else than a directory
	ErrNotADirectory = errors.New("not a directory")

	// ErrInvalidName indicates an entry name which cannot be used as a path segment
	ErrInvalidName = errors.New("invalid entry name")

	// ErrInvalidPath indicates an operation which cannot target that path (e.g. renaming the root)
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidLabel indicates a label name with unsupported characters
	ErrInvalidLabel = errors.New("invalid label")

	// ErrInvalidRepo indicates a repository name with unsupported characters
	ErrInvalidRepo = errors.New("invalid repository name")
)
