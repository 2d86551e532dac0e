package model

import (
	"github.com/oneconcern/localvcs/pkg/model/status"
)

// Entry resolves a path from this root. The path is normalized first.
//
// Resolution stops as soon as a segment is missing or traverses a file.
func (r *Root) Entry(p Path) (Entry, bool) {
	var current Entry = r
	for _, name := range NewPath(string(p)).Segments() {
		d, ok := AsDirectory(current)
		if !ok {
			return nil, false
		}
		child, ok := d.Child(name)
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}

// Has tells if a path resolves from this root
func (r *Root) Has(p Path) bool {
	_, ok := r.Entry(p)
	return ok
}

// EntryByID looks up an entry by object id anywhere in the tree
func (r *Root) EntryByID(id ID) (Entry, bool) {
	e, _, ok := find(r, RootPath, id)
	return e, ok
}

// HasID tells if an object id exists in the tree
func (r *Root) HasID(id ID) bool {
	_, ok := r.EntryByID(id)
	return ok
}

// PathOf yields the current path of an object id
func (r *Root) PathOf(id ID) (Path, bool) {
	_, p, ok := find(r, RootPath, id)
	return p, ok
}

func find(e Entry, at Path, id ID) (found Entry, where Path, ok bool) {
	if e.ID() == id {
		return e, at, true
	}
	d, isDir := AsDirectory(e)
	if !isDir {
		return nil, RootPath, false
	}
	d.ForEach(func(child Entry) bool {
		found, where, ok = find(child, at.Child(child.Name()), id)
		return !ok
	})
	return
}

// Walk visits every entry below the root in canonical order (parents first,
// siblings by name) until fn returns false.
func (r *Root) Walk(fn func(Path, Entry) bool) {
	walk(&r.Directory, RootPath, fn)
}

func walk(d *Directory, at Path, fn func(Path, Entry) bool) bool {
	proceed := true
	d.ForEach(func(child Entry) bool {
		p := at.Child(child.Name())
		if !fn(p, child) {
			proceed = false
			return false
		}
		if sub, ok := child.(*Directory); ok {
			proceed = walk(sub, p, fn)
		}
		return proceed
	})
	return proceed
}

// Insert adds an entry under the directory at parent
func (r *Root) Insert(parent Path, e Entry) (*Root, error) {
	if err := ValidatePath(parent); err != nil {
		return nil, err
	}
	if err := validateChild(e); err != nil {
		return nil, err
	}
	return r.rebuild(parent, func(d *Directory) (*Directory, error) {
		if _, exists := d.Child(e.Name()); exists {
			return nil, status.ErrPathConflict.WrapMessage("%q already exists", parent.Child(e.Name()))
		}
		return d.with(e), nil
	})
}

// Remove detaches the entry at p, along with its whole subtree.
//
// The removed entry is returned.
func (r *Root) Remove(p Path) (*Root, Entry, error) {
	if err := ValidatePath(p); err != nil {
		return nil, nil, err
	}
	if p.IsRoot() {
		return nil, nil, status.ErrInvalidPath.WrapMessage("cannot remove the root")
	}
	var removed Entry
	result, err := r.rebuild(p.Parent(), func(d *Directory) (*Directory, error) {
		e, ok := d.Child(p.Name())
		if !ok {
			return nil, status.ErrNotFound.WrapMessage("%q", p)
		}
		removed = e
		return d.without(p.Name()), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, removed, nil
}

// Rename changes the name of the entry at p, keeping it in the same directory
func (r *Root) Rename(p Path, newName string) (*Root, error) {
	if err := ValidatePath(p); err != nil {
		return nil, err
	}
	if p.IsRoot() {
		return nil, status.ErrInvalidPath.WrapMessage("cannot rename the root")
	}
	if err := ValidateName(newName); err != nil {
		return nil, err
	}
	return r.rebuild(p.Parent(), func(d *Directory) (*Directory, error) {
		e, ok := d.Child(p.Name())
		if !ok {
			return nil, status.ErrNotFound.WrapMessage("%q", p)
		}
		if _, exists := d.Child(newName); exists {
			return nil, status.ErrPathConflict.WrapMessage("%q already exists", p.Parent().Child(newName))
		}
		var renamed Entry
		switch v := e.(type) {
		case *File:
			renamed = v.withName(newName)
		case *Directory:
			renamed = v.withName(newName)
		}
		return d.without(p.Name()).with(renamed), nil
	})
}

// ReplaceContent sets the content of the file at p.
//
// The previous content is returned.
func (r *Root) ReplaceContent(p Path, content []byte) (*Root, []byte, error) {
	if err := ValidatePath(p); err != nil {
		return nil, nil, err
	}
	if p.IsRoot() {
		return nil, nil, status.ErrNotAFile.WrapMessage("the root is not a file")
	}
	var previous []byte
	result, err := r.rebuild(p.Parent(), func(d *Directory) (*Directory, error) {
		e, ok := d.Child(p.Name())
		if !ok {
			return nil, status.ErrNotFound.WrapMessage("%q", p)
		}
		f, ok := e.(*File)
		if !ok {
			return nil, status.ErrNotAFile.WrapMessage("%q is a %s", p, e.Kind())
		}
		previous = f.Content()
		return d.with(f.withContent(content)), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, previous, nil
}

// rebuild applies an edit to the directory at dir, then rebuilds every
// ancestor up to a new root. Subtrees off that path are shared.
func (r *Root) rebuild(dir Path, edit func(*Directory) (*Directory, error)) (*Root, error) {
	d, err := rebuildDirectory(&r.Directory, dir.Segments(), RootPath, edit)
	if err != nil {
		return nil, err
	}
	return &Root{Directory: *d, revision: r.revision}, nil
}

func rebuildDirectory(d *Directory, segments []string, at Path, edit func(*Directory) (*Directory, error)) (*Directory, error) {
	if len(segments) == 0 {
		return edit(d)
	}
	next := at.Child(segments[0])
	child, ok := d.Child(segments[0])
	if !ok {
		return nil, status.ErrNotFound.WrapMessage("%q", next)
	}
	sub, ok := child.(*Directory)
	if !ok {
		return nil, status.ErrNotADirectory.WrapMessage("%q is a %s", next, child.Kind())
	}
	edited, err := rebuildDirectory(sub, segments[1:], next, edit)
	if err != nil {
		return nil, err
	}
	return d.with(edited), nil
}
