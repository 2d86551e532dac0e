package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/oneconcern/localvcs/pkg/change"
	"github.com/oneconcern/localvcs/pkg/model"
)

type encoder struct {
	w       *bufio.Writer
	scratch [binary.MaxVarintLen64]byte
	err     error
}

// Encode writes an archive to w
func Encode(w io.Writer, a *Archive) error {
	if a == nil || a.Root == nil {
		return fmt.Errorf("cannot encode an archive without a root")
	}
	e := &encoder{w: bufio.NewWriter(w)}
	e.uvarint(uint64(len(a.Revisions)))
	for _, rev := range a.Revisions {
		e.revision(rev)
	}
	e.entry(a.Root)
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

func (e *encoder) revision(rev Revision) {
	e.uvarint(uint64(rev.Parent))
	e.uvarint(uint64(len(rev.Changes)))
	for _, c := range rev.Changes {
		e.change(c)
	}
	if rev.Label == "" {
		e.uvarint(0)
		return
	}
	e.uvarint(1)
	e.string(rev.Label)
}

func (e *encoder) change(c change.Change) {
	if e.err == nil && !c.Applied() {
		e.err = fmt.Errorf("cannot encode a change which was not applied: %v", c)
		return
	}
	e.uvarint(uint64(c.Kind()))
	e.string(c.Path().String())
	switch v := c.(type) {
	case *change.CreateFile:
		e.bytes(v.Content)
		e.uvarint(uint64(v.ID))
	case *change.CreateDirectory:
		e.uvarint(uint64(v.ID))
	case *change.Modify:
		e.bytes(v.Content)
		e.bytes(v.Previous)
	case *change.Rename:
		e.string(v.NewName)
	case *change.Delete:
		e.entry(v.Removed)
	default:
		if e.err == nil {
			e.err = fmt.Errorf("cannot encode change of type %T", c)
		}
	}
}

func (e *encoder) entry(entry model.Entry) {
	e.uvarint(uint64(entry.ID()))
	e.string(entry.Name())
	e.uvarint(uint64(entry.Kind()))
	switch v := entry.(type) {
	case *model.File:
		e.bytes(v.Content())
	case *model.Directory:
		e.children(v)
	case *model.Root:
		e.uvarint(uint64(v.Revision()))
		e.children(&v.Directory)
	}
}

func (e *encoder) children(d *model.Directory) {
	e.uvarint(uint64(d.Len()))
	d.ForEach(func(child model.Entry) bool {
		e.entry(child)
		return e.err == nil
	})
}

func (e *encoder) uvarint(v uint64) {
	if e.err != nil {
		return
	}
	n := binary.PutUvarint(e.scratch[:], v)
	_, e.err = e.w.Write(e.scratch[:n])
}

func (e *encoder) bytes(b []byte) {
	e.uvarint(uint64(len(b)))
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) string(s string) {
	e.uvarint(uint64(len(s)))
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}
