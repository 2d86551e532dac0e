package model

import (
	iradix "github.com/hashicorp/go-immutable-radix"

	"github.com/oneconcern/localvcs/pkg/convert"
	"github.com/oneconcern/localvcs/pkg/model/status"
)

// Kind of entry
type Kind uint8

// Entry kinds
const (
	KindFile Kind = iota + 1
	KindDirectory
	KindRoot
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindRoot:
		return "root"
	default:
		return "unknown"
	}
}

// Entry is a node in a tree: a *File, a *Directory or a *Root.
//
// Entries are immutable.
type Entry interface {
	ID() ID
	Name() string
	Kind() Kind
}

var (
	_ Entry = &File{}
	_ Entry = &Directory{}
	_ Entry = &Root{}

	emptyChildren = iradix.New()
)

// File holds some opaque content
type File struct {
	id      ID
	name    string
	content []byte
}

// NewFile builds a file entry. The content is copied.
func NewFile(id ID, name string, content []byte) *File {
	return &File{
		id:      id,
		name:    name,
		content: append([]byte(nil), content...),
	}
}

// ID of the file
func (f *File) ID() ID { return f.id }

// Name of the file
func (f *File) Name() string { return f.name }

// Kind is KindFile
func (f *File) Kind() Kind { return KindFile }

// Content of the file. The returned slice must not be modified.
func (f *File) Content() []byte { return f.content }

// Size of the content in bytes
func (f *File) Size() int { return len(f.content) }

func (f *File) withName(name string) *File {
	return &File{id: f.id, name: name, content: f.content}
}

func (f *File) withContent(content []byte) *File {
	return NewFile(f.id, f.name, content)
}

// Directory holds child entries, ordered by name.
//
// Children are kept in an immutable radix tree: adding or removing a child
// yields a new directory sharing all other children with the original one.
type Directory struct {
	id       ID
	name     string
	children *iradix.Tree
}

// NewDirectory builds a directory entry with some children.
//
// Children must be files or directories with valid, unique names.
func NewDirectory(id ID, name string, children ...Entry) (*Directory, error) {
	d := &Directory{id: id, name: name, children: emptyChildren}
	txn := d.children.Txn()
	for _, child := range children {
		if err := validateChild(child); err != nil {
			return nil, err
		}
		if _, exists := txn.Insert(childKey(child.Name()), child); exists {
			return nil, status.ErrPathConflict.WrapMessage("duplicate child %q in directory %q", child.Name(), name)
		}
	}
	d.children = txn.Commit()
	return d, nil
}

func validateChild(child Entry) error {
	switch child.(type) {
	case *File, *Directory:
	default:
		return status.ErrInvalidPath.WrapMessage("%s %q cannot be a child", child.Kind(), child.Name())
	}
	return ValidateName(child.Name())
}

func childKey(name string) []byte {
	return convert.UnsafeStringToBytes(name)
}

// ID of the directory
func (d *Directory) ID() ID { return d.id }

// Name of the directory
func (d *Directory) Name() string { return d.name }

// Kind is KindDirectory
func (d *Directory) Kind() Kind { return KindDirectory }

// Len is the number of children
func (d *Directory) Len() int { return d.children.Len() }

// Child looks up a child by name
func (d *Directory) Child(name string) (Entry, bool) {
	v, ok := d.children.Get(childKey(name))
	if !ok {
		return nil, false
	}
	return v.(Entry), true
}

// ForEach iterates over children, ordered by name, until fn returns false
func (d *Directory) ForEach(fn func(Entry) bool) {
	d.children.Root().Walk(func(_ []byte, v interface{}) bool {
		return !fn(v.(Entry))
	})
}

// Children ordered by name
func (d *Directory) Children() []Entry {
	result := make([]Entry, 0, d.Len())
	d.ForEach(func(e Entry) bool {
		result = append(result, e)
		return true
	})
	return result
}

func (d *Directory) with(child Entry) *Directory {
	children, _, _ := d.children.Insert(childKey(child.Name()), child)
	return &Directory{id: d.id, name: d.name, children: children}
}

func (d *Directory) without(name string) *Directory {
	children, _, _ := d.children.Delete(childKey(name))
	return &Directory{id: d.id, name: d.name, children: children}
}

func (d *Directory) withName(name string) *Directory {
	return &Directory{id: d.id, name: name, children: d.children}
}

// Root is the top-level directory of a snapshot.
//
// A root knows the revision it was produced at. Revision 0 is the empty root.
type Root struct {
	Directory
	revision int
}

// NewRoot builds an empty root at revision 0
func NewRoot() *Root {
	return &Root{
		Directory: Directory{id: RootID, children: emptyChildren},
	}
}

// NewRootAt builds a root at some revision, with children
func NewRootAt(revision int, id ID, name string, children ...Entry) (*Root, error) {
	d, err := NewDirectory(id, name, children...)
	if err != nil {
		return nil, err
	}
	return &Root{Directory: *d, revision: revision}, nil
}

// Kind is KindRoot
func (r *Root) Kind() Kind { return KindRoot }

// Revision this root was produced at
func (r *Root) Revision() int { return r.revision }

// WithRevision yields the same tree, stamped with another revision
func (r *Root) WithRevision(revision int) *Root {
	return &Root{Directory: r.Directory, revision: revision}
}

// AsDirectory yields the directory view of a *Directory or a *Root
func AsDirectory(e Entry) (*Directory, bool) {
	switch v := e.(type) {
	case *Directory:
		return v, true
	case *Root:
		return &v.Directory, true
	default:
		return nil, false
	}
}
