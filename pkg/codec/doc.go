/*
Package codec reads and writes the persisted form of a repository.

A stream holds the change list followed by the current root:

	revision count
	for each revision: parent revision, change count, changes, label flag [, label]
	root entry

Integers are unsigned varints. Strings and byte slices are prefixed by their
length. Changes start with their kind tag, entries with their id and name
followed by their kind tag.

The format carries no version tag.
*/
package codec
