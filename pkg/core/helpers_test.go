package core

import (
	"testing"

	"github.com/oneconcern/localvcs/pkg/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func p(s string) model.Path { return model.NewPath(s) }

func newRepo(t testing.TB, opts ...Option) *Repository {
	t.Helper()
	r, err := New(append([]Option{Logger(zaptest.NewLogger(t))}, opts...)...)
	require.NoError(t, err)
	return r
}

func commit(t testing.TB, r *Repository) {
	t.Helper()
	require.NoError(t, r.Commit())
}

func fileContent(t testing.TB, r *Repository, path string) string {
	t.Helper()
	e, err := r.Entry(p(path))
	require.NoError(t, err)
	require.IsType(t, &model.File{}, e)
	return string(e.(*model.File).Content())
}

// populate commits a small history:
//
//	1: create docs/, docs/readme.md
//	2: modify docs/readme.md
//	3: rename docs/readme.md to docs/README.md, create main.go
func populate(t testing.TB, r *Repository) {
	t.Helper()
	r.CreateDirectory(p("docs"))
	r.CreateFile(p("docs/readme.md"), []byte("hello"))
	commit(t, r)

	r.ChangeContent(p("docs/readme.md"), []byte("hello, world"))
	commit(t, r)

	r.Rename(p("docs/readme.md"), "README.md")
	r.CreateFile(p("main.go"), []byte("package main"))
	commit(t, r)
}
