// Package change describes the structural changes which can be applied to a tree.
//
// A Change is a pure value: applying it to a root yields a new root and leaves
// the original one untouched. Applying a change also yields an "applied" copy
// of the change, which records what is needed to revert it (the allocated id
// of a created entry, the previous content of a modified file, the subtree of
// a deleted entry). Applied changes are what a change list keeps and persists.
//
// Changes are grouped into change sets, which apply atomically.
package change
