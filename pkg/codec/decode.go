package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/oneconcern/localvcs/pkg/change"
	"github.com/oneconcern/localvcs/pkg/codec/status"
	"github.com/oneconcern/localvcs/pkg/model"
)

const (
	// upper bound on preallocated slices, whatever the count announced by the stream
	maxPrealloc = 1024

	maxRevision = 1 << 31
)

type decoder struct {
	r      *bufio.Reader
	offset int64
}

// Decode reads an archive from r.
//
// Any failure wraps status.ErrCorruptStore: no partially decoded archive is ever returned.
func Decode(r io.Reader) (*Archive, error) {
	d := &decoder{r: bufio.NewReader(r)}

	count, err := d.count()
	if err != nil {
		return nil, err
	}
	a := &Archive{Revisions: make([]Revision, 0, min(count, maxPrealloc))}
	created := make(map[model.ID]struct{})
	for i := 0; i < count; i++ {
		rev, err := d.revision(i+1, created)
		if err != nil {
			return nil, err
		}
		a.Revisions = append(a.Revisions, rev)
	}

	root, err := d.root(len(a.Revisions))
	if err != nil {
		return nil, err
	}
	a.Root = root

	if _, err := d.r.ReadByte(); err != io.EOF {
		if err != nil {
			return nil, d.corrupt(err)
		}
		return nil, d.corrupt(status.ErrTrailingData)
	}
	return a, nil
}

func (d *decoder) revision(revision int, created map[model.ID]struct{}) (Revision, error) {
	var rev Revision
	parent, err := d.int()
	if err != nil {
		return rev, err
	}
	if parent >= revision {
		return rev, d.inconsistent("revision %d cannot descend from revision %d", revision, parent)
	}
	rev.Parent = parent

	count, err := d.count()
	if err != nil {
		return rev, err
	}
	rev.Changes = make(change.ChangeSet, 0, min(count, maxPrealloc))
	for i := 0; i < count; i++ {
		c, err := d.change()
		if err != nil {
			return rev, err
		}
		for _, id := range createdID(c) {
			if _, dup := created[id]; dup || id == model.RootID {
				return rev, d.inconsistent("object id %d is created more than once", id)
			}
			created[id] = struct{}{}
		}
		rev.Changes = append(rev.Changes, c)
	}

	hasLabel, err := d.uvarint()
	if err != nil {
		return rev, err
	}
	switch hasLabel {
	case 0:
	case 1:
		label, err := d.string()
		if err != nil {
			return rev, err
		}
		if err := model.ValidateLabel(label); err != nil {
			return rev, d.corrupt(fmt.Errorf("%w: %v", status.ErrInconsistent, err))
		}
		rev.Label = label
	default:
		return rev, d.inconsistent("invalid label flag %d", hasLabel)
	}
	return rev, nil
}

func createdID(c change.Change) []model.ID {
	switch v := c.(type) {
	case *change.CreateFile:
		return []model.ID{v.ID}
	case *change.CreateDirectory:
		return []model.ID{v.ID}
	default:
		return nil
	}
}

func (d *decoder) change() (change.Change, error) {
	tag, err := d.uvarint()
	if err != nil {
		return nil, err
	}
	p, err := d.path()
	if err != nil {
		return nil, err
	}

	switch change.Kind(tag) {
	case change.KindCreateFile:
		content, err := d.bytes()
		if err != nil {
			return nil, err
		}
		id, err := d.id()
		if err != nil {
			return nil, err
		}
		return &change.CreateFile{Target: p, Content: content, ID: id}, nil

	case change.KindCreateDirectory:
		id, err := d.id()
		if err != nil {
			return nil, err
		}
		return &change.CreateDirectory{Target: p, ID: id}, nil

	case change.KindModify:
		content, err := d.bytes()
		if err != nil {
			return nil, err
		}
		previous, err := d.bytes()
		if err != nil {
			return nil, err
		}
		return change.AppliedModify(p, content, previous), nil

	case change.KindRename:
		name, err := d.string()
		if err != nil {
			return nil, err
		}
		if err := model.ValidateName(name); err != nil {
			return nil, d.corrupt(fmt.Errorf("%w: %v", status.ErrInconsistent, err))
		}
		return change.NewRename(p, name), nil

	case change.KindDelete:
		removed, err := d.entry(make(map[model.ID]struct{}))
		if err != nil {
			return nil, err
		}
		return &change.Delete{Target: p, Removed: removed}, nil

	default:
		return nil, d.corrupt(fmt.Errorf("%w: change tag %d", status.ErrUnknownTag, tag))
	}
}

// root reads the top-level entry, which must be a root
func (d *decoder) root(revisions int) (*model.Root, error) {
	ids := make(map[model.ID]struct{})
	id, name, tag, err := d.header(ids)
	if err != nil {
		return nil, err
	}
	if model.Kind(tag) != model.KindRoot {
		return nil, d.corrupt(fmt.Errorf("%w: top-level entry is tagged %v", status.ErrUnexpectedRoot, model.Kind(tag)))
	}
	if id != model.RootID || name != "" {
		return nil, d.inconsistent("root must have id %d and no name, got id %d and name %q", model.RootID, id, name)
	}
	revision, err := d.int()
	if err != nil {
		return nil, err
	}
	if revision > revisions {
		return nil, d.inconsistent("root claims revision %d, but only %d revisions are recorded", revision, revisions)
	}
	children, err := d.children(ids)
	if err != nil {
		return nil, err
	}
	if revision == 0 && len(children) > 0 {
		return nil, d.inconsistent("root at revision 0 is not empty")
	}
	root, err := model.NewRootAt(revision, id, name, children...)
	if err != nil {
		return nil, d.corrupt(fmt.Errorf("%w: %v", status.ErrInconsistent, err))
	}
	return root, nil
}

// entry reads a file or a directory, with its subtree
func (d *decoder) entry(ids map[model.ID]struct{}) (model.Entry, error) {
	id, name, tag, err := d.header(ids)
	if err != nil {
		return nil, err
	}
	if model.Kind(tag) == model.KindRoot {
		return nil, d.corrupt(fmt.Errorf("%w: nested root %q", status.ErrUnexpectedRoot, name))
	}
	if err := model.ValidateName(name); err != nil {
		return nil, d.corrupt(fmt.Errorf("%w: %v", status.ErrInconsistent, err))
	}

	switch model.Kind(tag) {
	case model.KindFile:
		content, err := d.bytes()
		if err != nil {
			return nil, err
		}
		return model.NewFile(id, name, content), nil

	case model.KindDirectory:
		children, err := d.children(ids)
		if err != nil {
			return nil, err
		}
		dir, err := model.NewDirectory(id, name, children...)
		if err != nil {
			return nil, d.corrupt(fmt.Errorf("%w: %v", status.ErrInconsistent, err))
		}
		return dir, nil

	default:
		return nil, d.corrupt(fmt.Errorf("%w: entry tag %d", status.ErrUnknownTag, tag))
	}
}

func (d *decoder) header(ids map[model.ID]struct{}) (model.ID, string, uint64, error) {
	id, err := d.id()
	if err != nil {
		return 0, "", 0, err
	}
	if _, dup := ids[id]; dup {
		return 0, "", 0, d.inconsistent("duplicate object id %d", id)
	}
	ids[id] = struct{}{}

	name, err := d.string()
	if err != nil {
		return 0, "", 0, err
	}
	tag, err := d.uvarint()
	if err != nil {
		return 0, "", 0, err
	}
	return id, name, tag, nil
}

func (d *decoder) children(ids map[model.ID]struct{}) ([]model.Entry, error) {
	count, err := d.count()
	if err != nil {
		return nil, err
	}
	children := make([]model.Entry, 0, min(count, maxPrealloc))
	for i := 0; i < count; i++ {
		child, err := d.entry(ids)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func (d *decoder) path() (model.Path, error) {
	s, err := d.string()
	if err != nil {
		return model.RootPath, err
	}
	p := model.Path(s)
	if err := model.ValidatePath(p); err != nil {
		return model.RootPath, d.corrupt(fmt.Errorf("%w: %v", status.ErrInconsistent, err))
	}
	return p, nil
}

func (d *decoder) id() (model.ID, error) {
	v, err := d.uvarint()
	return model.ID(v), err
}

func (d *decoder) int() (int, error) {
	v, err := d.uvarint()
	if err != nil {
		return 0, err
	}
	if v >= maxRevision {
		return 0, d.inconsistent("value %d out of range", v)
	}
	return int(v), nil
}

func (d *decoder) count() (int, error) {
	return d.int()
}

func (d *decoder) uvarint() (uint64, error) {
	v, err := binary.ReadUvarint(d)
	if err != nil {
		return 0, d.corrupt(err)
	}
	return v, nil
}

func (d *decoder) bytes() ([]byte, error) {
	n, err := d.uvarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(1)<<62 {
		return nil, d.inconsistent("length %d out of range", n)
	}
	// copy rather than allocating n bytes upfront: a corrupt length must not exhaust memory
	var buf bytes.Buffer
	copied, err := io.CopyN(&buf, d.r, int64(n))
	d.offset += copied
	if err != nil {
		return nil, d.corrupt(err)
	}
	return buf.Bytes(), nil
}

func (d *decoder) string() (string, error) {
	b, err := d.bytes()
	return string(b), err
}

// ReadByte implements io.ByteReader, keeping track of the offset
func (d *decoder) ReadByte() (byte, error) {
	b, err := d.r.ReadByte()
	if err == nil {
		d.offset++
	}
	return b, err
}

func (d *decoder) inconsistent(format string, args ...interface{}) error {
	return d.corrupt(fmt.Errorf("%w: %s", status.ErrInconsistent, fmt.Sprintf(format, args...)))
}

func (d *decoder) corrupt(err error) error {
	switch err {
	case io.EOF, io.ErrUnexpectedEOF:
		err = status.ErrUnexpectedEOF
	}
	return status.ErrCorruptStore.Wrap(fmt.Errorf("at offset %d: %w", d.offset, err))
}
