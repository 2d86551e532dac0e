// Copyright © 2018 One Concern

package storage

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/oneconcern/localvcs/pkg/storage/status"
)

// MaxObjectSizeInMemory is the default limit on objects read into memory
const MaxObjectSizeInMemory = 2 * 1024 * 1024 * 1024 // 2 gigs

// NewKey tells a Put operation whether it may overwrite an existing key
type NewKey bool

const (
	// OverWrite replaces any existing object
	OverWrite NewKey = false

	// NoOverWrite fails with status.ErrExists if the key exists
	NoOverWrite NewKey = true
)

// Store implementations know how to write objects to a K/V store.
//
// Typically this is something file system-like.
// Implementations of this interface are assumed to be fairly simple.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(context.Context, string, io.Reader, NewKey) error
	// Meta yields the size and the last update time of an object
	Meta(context.Context, string) (size int64, updated time.Time, err error)
	Delete(context.Context, string) error
	Keys(context.Context) ([]string, error)
	Clear(context.Context) error
}

// ReadAll fetches a whole object into memory, failing with status.ErrObjectTooBig
// when it exceeds limit. A limit <= 0 stands for MaxObjectSizeInMemory.
func ReadAll(ctx context.Context, store Store, key string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = MaxObjectSizeInMemory
	}
	reader, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = reader.Close()
	}()

	var buf bytes.Buffer
	n, err := io.CopyN(&buf, reader, limit+1)
	if err != nil && err != io.EOF {
		return nil, status.ErrStorageAPI.Wrap(err)
	}
	if n > limit {
		return nil, status.ErrObjectTooBig.WrapMessage("object %q exceeds %d bytes", key, limit)
	}
	return buf.Bytes(), nil
}

// ReadTee reads from a source and duplicates the output to another destination store.
// The object is returned.
func ReadTee(ctx context.Context, sStore Store, source string, dStore Store, destination string) ([]byte, error) {
	object, err := ReadAll(ctx, sStore, source, 0)
	if err != nil {
		return nil, err
	}
	if err = dStore.Put(ctx, destination, bytes.NewReader(object), OverWrite); err != nil {
		return nil, err
	}
	return object, nil
}
