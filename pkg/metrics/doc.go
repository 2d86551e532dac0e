// Package metrics exposes prometheus collectors for repository and storage operations.
//
// Collectors are registered on a registry owned by each Metrics instance: nothing is
// registered globally. A nil *Metrics is valid and records nothing.
package metrics
