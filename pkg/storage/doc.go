// Copyright © 2018 One Concern

// Package storage provides interface to handle backend storage objects.
//
// This package supports the following backends:
//   - local file system (afero), with an atomic variant staging writes before renaming them
//   - badger key/value store
package storage
