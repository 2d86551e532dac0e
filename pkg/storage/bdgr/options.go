package bdgr

import (
	"go.uber.org/zap"
)

// Option for the badger store
type Option func(*Store)

// Logger forwards badger's own logs to a zap logger
func Logger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.l = l
		}
	}
}

// InMemory keeps the whole database in memory. The path is ignored.
func InMemory(enabled bool) Option {
	return func(s *Store) {
		s.inMemory = enabled
	}
}

// SyncWrites flushes every write to disk before returning. Enabled by default.
func SyncWrites(enabled bool) Option {
	return func(s *Store) {
		s.syncWrites = enabled
	}
}

// MaxObjectSize limits the size of objects accepted by Put
func MaxObjectSize(size int64) Option {
	return func(s *Store) {
		if size > 0 {
			s.maxObjectSize = size
		}
	}
}
