// Package model describes the base objects manipulated by localvcs.
//
// The object model for localvcs is composed of:
//
//	Paths:
//	  A normalized, slash-separated sequence of names. The empty path designates the root.
//
//	Entries:
//	  Files and directories forming an immutable tree. Every entry has a numeric object id
//	  which is assigned once, survives renames and is never reused.
//
//	Roots:
//	  The top-level directory of a tree. A root is a snapshot of the repository at some revision.
//	  Edits never alter a root: they return a new root which shares every untouched subtree with
//	  the original one.
//
//	Labels:
//	  A name given to a revision, analogous to tags in git.
//
//	Descriptors:
//	  Serializable views of roots, labels and repositories, used by hosts to display the content
//	  of a repository and by stores to keep repository metadata.
package model
