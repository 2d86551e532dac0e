package model

import (
	"path"
	"strings"

	"github.com/oneconcern/localvcs/pkg/model/status"
)

const separator = "/"

// RootPath is the empty path, which resolves to the root itself
const RootPath Path = ""

// Path identifies an entry by the names of its ancestors.
//
// A Path built with NewPath is normalized: it has no leading, trailing or
// duplicate separators, no "." segment and no ".." segment.
// Normalized paths may be compared with ==.
type Path string

// NewPath joins and normalizes path elements.
//
// ".." segments are resolved lexically and never escape the root.
func NewPath(elems ...string) Path {
	cleaned := path.Clean(separator + strings.Join(elems, separator))
	return Path(strings.TrimPrefix(cleaned, separator))
}

// IsNormalized tells if the path is in the form yielded by NewPath
func (p Path) IsNormalized() bool {
	return NewPath(string(p)) == p
}

// ValidatePath checks that a path is normalized
func ValidatePath(p Path) error {
	if !p.IsNormalized() {
		return status.ErrInvalidPath.WrapMessage("path %q is not normalized, expected %q", p, NewPath(string(p)))
	}
	return nil
}

// String representation of the path
func (p Path) String() string {
	return string(p)
}

// IsRoot tells if this path designates the root
func (p Path) IsRoot() bool {
	return p == RootPath
}

// Segments of the path. The root has no segment.
func (p Path) Segments() []string {
	if p.IsRoot() {
		return nil
	}
	return strings.Split(string(p), separator)
}

// Name of the last segment. The root has an empty name.
func (p Path) Name() string {
	return string(p[strings.LastIndex(string(p), separator)+1:])
}

// Parent path. The parent of the root is the root.
func (p Path) Parent() Path {
	idx := strings.LastIndex(string(p), separator)
	if idx < 0 {
		return RootPath
	}
	return p[:idx]
}

// Child derives the path to a named child of this path
func (p Path) Child(name string) Path {
	return NewPath(string(p), name)
}

// ValidateName checks that a name can be used as a single path segment
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return status.ErrInvalidName.WrapMessage("%q is reserved", name)
	case strings.Contains(name, separator):
		return status.ErrInvalidName.WrapMessage("%q contains a path separator", name)
	}
	return nil
}
