// Package bdgr provides a storage.Store backed by a badger key/value database.
package bdgr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/localvcs/pkg/convert"
	"github.com/oneconcern/localvcs/pkg/storage"
	"github.com/oneconcern/localvcs/pkg/storage/status"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	objPref  = [4]byte{'o', 'b', 'j', ':'}
	metaPref = [5]byte{'m', 'e', 't', 'a', ':'}
)

// meta describes a stored object
type meta struct {
	Size    int64     `json:"size"`
	Updated time.Time `json:"updated"`
}

var (
	_ storage.Store = &Store{}
	_ io.Closer     = &Store{}
)

// Store objects in a badger database
type Store struct {
	path          string
	inMemory      bool
	syncWrites    bool
	maxObjectSize int64
	l             *zap.Logger

	db    *badger.DB
	close sync.Once
}

// New opens a badger database at path
func New(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:          path,
		syncWrites:    true,
		maxObjectSize: storage.MaxObjectSizeInMemory,
		l:             zap.NewNop(),
	}
	for _, apply := range opts {
		apply(s)
	}
	if !s.inMemory && s.path == "" {
		return nil, status.ErrInvalidResource.WrapMessage("a path is required for a persistent badger store")
	}

	var options badger.Options
	if s.inMemory {
		options = badger.DefaultOptions("").WithInMemory(true)
	} else {
		options = badger.DefaultOptions(s.path)
	}
	options = options.
		WithSyncWrites(s.syncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(&badgerLogger{l: s.l.Sugar()})

	db, err := badger.Open(options)
	if err != nil {
		return nil, status.ErrStorageAPI.Wrap(fmt.Errorf("open badger database: %w", err))
	}
	s.db = db
	return s, nil
}

func badgerRewriteError(err error) error {
	switch err {
	case nil:
		return nil
	case badger.ErrKeyNotFound:
		return status.ErrNotExists
	case badger.ErrEmptyKey, badger.ErrInvalidKey:
		return status.ErrInvalidResource.Wrap(err)
	case badger.ErrDBClosed:
		return status.ErrClosed
	default:
		return status.ErrStorageAPI.Wrap(err)
	}
}

func objKey(key string) []byte {
	return append(objPref[:], convert.UnsafeStringToBytes(key)...)
}

func metaKey(key string) []byte {
	return append(metaPref[:], convert.UnsafeStringToBytes(key)...)
}

// Has an object with this key
func (s *Store) Has(_ context.Context, key string) (bool, error) {
	var has bool
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(objKey(key))
		switch err {
		case nil:
			has = true
			return nil
		case badger.ErrKeyNotFound:
			return nil
		default:
			return err
		}
	})
	return has, badgerRewriteError(err)
}

// Get an object. The returned reader holds a copy of the value.
func (s *Store) Get(_ context.Context, key string) (io.ReadCloser, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(objKey(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, status.ErrNotExists.WrapMessage("%q", key)
		}
		return nil, badgerRewriteError(err)
	}
	return io.NopCloser(bytes.NewReader(value)), nil
}

// Meta yields the size and the last update time of an object
func (s *Store) Meta(_ context.Context, key string) (size int64, updated time.Time, err error) {
	var m meta
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey(key))
		if err != nil {
			return err
		}
		return item.Value(func(data []byte) error {
			return jsoniter.Unmarshal(data, &m)
		})
	})
	if err != nil {
		return 0, time.Time{}, badgerRewriteError(err)
	}
	return m.Size, m.Updated, nil
}

// Put an object. Objects are read into memory before being written in a single transaction.
func (s *Store) Put(_ context.Context, key string, source io.Reader, newKey storage.NewKey) error {
	var buf bytes.Buffer
	n, err := io.CopyN(&buf, source, s.maxObjectSize+1)
	if err != nil && err != io.EOF {
		return status.ErrStorageAPI.Wrap(fmt.Errorf("reading object %q: %w", key, err))
	}
	if n > s.maxObjectSize {
		return status.ErrObjectTooBig.WrapMessage("object %q exceeds %d bytes", key, s.maxObjectSize)
	}
	data, err := jsoniter.Marshal(meta{Size: n, Updated: time.Now().UTC()})
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		k := objKey(key)
		if newKey == storage.NoOverWrite {
			_, err := txn.Get(k)
			if err == nil {
				return status.ErrExists.WrapMessage("%q", key)
			}
			if err != badger.ErrKeyNotFound {
				return err
			}
		}
		if err := txn.Set(k, buf.Bytes()); err != nil {
			return err
		}
		return txn.Set(metaKey(key), data)
	})
	if status.ErrExists.Is(err) {
		return err
	}
	return badgerRewriteError(err)
}

// Delete an object. Deleting a missing object is not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	return badgerRewriteError(s.db.Update(func(txn *badger.Txn) error {
		return multierr.Append(txn.Delete(objKey(key)), txn.Delete(metaKey(key)))
	}))
}

// Keys of all objects
func (s *Store) Keys(_ context.Context) ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = objPref[:]
		iter := txn.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, string(iter.Item().Key()[len(objPref):]))
		}
		return nil
	})
	if err != nil {
		return nil, badgerRewriteError(err)
	}
	return keys, nil
}

// Clear all objects
func (s *Store) Clear(_ context.Context) error {
	return badgerRewriteError(s.db.DropPrefix(objPref[:], metaPref[:]))
}

func (s *Store) String() string {
	if s.inMemory {
		return "badger@memory"
	}
	return "badger@" + s.path
}

// Close the database. Closing several times is a no-op.
func (s *Store) Close() error {
	var err error
	s.close.Do(func() {
		err = s.db.Close()
	})
	return badgerRewriteError(err)
}

type badgerLogger struct {
	l *zap.SugaredLogger
}

func (b *badgerLogger) Errorf(format string, args ...interface{})   { b.l.Errorf(format, args...) }
func (b *badgerLogger) Warningf(format string, args ...interface{}) { b.l.Warnf(format, args...) }
func (b *badgerLogger) Infof(format string, args ...interface{})    { b.l.Debugf(format, args...) }
func (b *badgerLogger) Debugf(format string, args ...interface{})   { b.l.Debugf(format, args...) }
