package core

import (
	"github.com/oneconcern/localvcs/pkg/metrics"
	"github.com/oneconcern/localvcs/pkg/model"
	"github.com/oneconcern/localvcs/pkg/storage"
	"go.uber.org/zap"
)

// Option sets options for a repository
type Option func(*Settings)

// Settings defines various settings for a repository
type Settings struct {
	name          string
	l             *zap.Logger
	m             *metrics.Metrics
	verifyOnLoad  bool
	maxObjectSize int64
}

func defaultSettings() Settings {
	return Settings{
		l:             zap.NewNop(),
		maxObjectSize: storage.MaxObjectSizeInMemory,
	}
}

// Name of the repository. Named repositories are stored under their name in a store.
func Name(name string) Option {
	return func(s *Settings) {
		s.name = name
	}
}

// Logger for the repository. The default logger discards everything.
func Logger(l *zap.Logger) Option {
	return func(s *Settings) {
		if l != nil {
			s.l = l
		}
	}
}

// Metrics collected by the repository. By default, no metrics are collected.
func Metrics(m *metrics.Metrics) Option {
	return func(s *Settings) {
		s.m = m
	}
}

// VerifyOnLoad replays the whole change list after a load and fails if it does not reproduce the stored snapshots
func VerifyOnLoad(enabled bool) Option {
	return func(s *Settings) {
		s.verifyOnLoad = enabled
	}
}

// MaxObjectSize limits the size of the stored content accepted by a load. It defaults to storage.MaxObjectSizeInMemory
func MaxObjectSize(size int64) Option {
	return func(s *Settings) {
		if size > 0 {
			s.maxObjectSize = size
		}
	}
}

func (s Settings) validate() error {
	return model.ValidateRepoName(s.name)
}
