// Package status declares error constants returned by the codec package.
package status

import (
	stderr "errors"

	"github.com/oneconcern/localvcs/pkg/errors"
)

var (
	// ErrCorruptStore indicates that a stored repository cannot be decoded.
	//
	// Every decoding failure wraps this error. The cause may be matched
	// more precisely with one of the refinements below.
	ErrCorruptStore = errors.New("corrupt store")

	// ErrUnexpectedEOF indicates a truncated stream
	ErrUnexpectedEOF = stderr.New("unexpected end of stream")

	// ErrTrailingData indicates extra bytes after a complete repository
	ErrTrailingData = stderr.New("trailing data after repository")

	// ErrUnknownTag indicates an unknown change or entry tag
	ErrUnknownTag = stderr.New("unknown tag")

	// ErrUnexpectedRoot indicates a root entry found anywhere else than at the top of the tree,
	// or a top-level entry which is not a root
	ErrUnexpectedRoot = stderr.New("unexpected root entry")

	// ErrInconsistent indicates a well-formed stream with inconsistent content,
	// such as duplicate names or ids, invalid names or revisions
	ErrInconsistent = stderr.New("inconsistent content")
)
