package model

import (
	units "github.com/docker/go-units"
)

// EntryDescriptor is a flat, serializable view of an entry in a snapshot
type EntryDescriptor struct {
	ID   ID     `json:"id" yaml:"id"`
	Path string `json:"path" yaml:"path"`
	Kind string `json:"kind" yaml:"kind"`
	Size int    `json:"size,omitempty" yaml:"size,omitempty"`
	// Human-readable size
	HumanSize string `json:"humanSize,omitempty" yaml:"humanSize,omitempty"`
	_         struct{}
}

// SnapshotDescriptor is a serializable view of a root
type SnapshotDescriptor struct {
	Revision    int               `json:"revision" yaml:"revision"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Fingerprint string            `json:"fingerprint" yaml:"fingerprint"`
	Entries     []EntryDescriptor `json:"entries,omitempty" yaml:"entries,omitempty"`
	_           struct{}
}

// DescribeEntry builds the descriptor of an entry found at some path
func DescribeEntry(p Path, e Entry) EntryDescriptor {
	desc := EntryDescriptor{
		ID:   e.ID(),
		Path: p.String(),
		Kind: e.Kind().String(),
	}
	if f, ok := e.(*File); ok {
		desc.Size = f.Size()
		desc.HumanSize = units.HumanSize(float64(f.Size()))
	}
	return desc
}

// DescribeSnapshot builds the descriptor of a root, listing all entries in canonical order
func DescribeSnapshot(root *Root) SnapshotDescriptor {
	desc := SnapshotDescriptor{
		Revision:    root.Revision(),
		Fingerprint: Fingerprint(root),
	}
	root.Walk(func(p Path, e Entry) bool {
		desc.Entries = append(desc.Entries, DescribeEntry(p, e))
		return true
	})
	return desc
}
