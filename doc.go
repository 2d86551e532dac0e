/*
Package localvcs provides a local version control engine for a single repository.

A repository holds an immutable tree of files and directories. Edits are queued as changes and
committed atomically as new revisions of a linear history. Revisions can be reverted, labeled and
restored, and the whole repository is persisted to a store through a compact binary codec.

The engine lives under pkg/: pkg/core exposes the repository, pkg/engine opens it from a configured store.
*/
package localvcs
