package engine

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Option for a workspace
type Option func(*Workspace)

// Logger overrides the logger built from the configuration
func Logger(l *zap.Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.l = l
		}
	}
}

// Fs overrides the file system of the localfs backend. It defaults to the OS file system.
func Fs(fs afero.Fs) Option {
	return func(w *Workspace) {
		if fs != nil {
			w.fs = fs
		}
	}
}
