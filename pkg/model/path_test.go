package model

import (
	"testing"

	"github.com/oneconcern/localvcs/pkg/errors"
	"github.com/oneconcern/localvcs/pkg/model/status"
	"github.com/stretchr/testify/assert"
)

func TestNewPath(t *testing.T) {
	tests := []struct {
		name  string
		elems []string
		want  Path
	}{
		{name: "empty", elems: nil, want: RootPath},
		{name: "slash", elems: []string{"/"}, want: RootPath},
		{name: "simple", elems: []string{"a/b/c"}, want: "a/b/c"},
		{name: "redundant separators", elems: []string{"/a//b/"}, want: "a/b"},
		{name: "dots", elems: []string{"./a/./b/../c"}, want: "a/c"},
		{name: "no escape", elems: []string{"../../x"}, want: "x"},
		{name: "joined", elems: []string{"a", "b", "c.txt"}, want: "a/b/c.txt"},
	}
	for _, tts := range tests {
		tt := tts
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewPath(tt.elems...))
		})
	}
}

func TestPathNavigation(t *testing.T) {
	p := NewPath("docs/api/readme.md")

	assert.Equal(t, []string{"docs", "api", "readme.md"}, p.Segments())
	assert.Equal(t, "readme.md", p.Name())
	assert.Equal(t, Path("docs/api"), p.Parent())
	assert.Equal(t, Path("docs"), p.Parent().Parent())
	assert.Equal(t, RootPath, p.Parent().Parent().Parent())
	assert.Equal(t, p, p.Parent().Child("readme.md"))

	assert.True(t, RootPath.IsRoot())
	assert.Nil(t, RootPath.Segments())
	assert.Equal(t, "", RootPath.Name())
	assert.Equal(t, RootPath, RootPath.Parent())
	assert.Equal(t, Path("a"), RootPath.Child("a"))
}

func TestValidatePath(t *testing.T) {
	for _, valid := range []Path{RootPath, "a", "a/b.txt", NewPath("/x//y/")} {
		assert.Truef(t, valid.IsNormalized(), "%q", valid)
		assert.NoErrorf(t, ValidatePath(valid), "%q", valid)
	}
	for _, invalid := range []Path{"/a.txt", "a/", "a//b", "./a", "a/../b", "/"} {
		assert.Falsef(t, invalid.IsNormalized(), "%q", invalid)
		err := ValidatePath(invalid)
		assert.Truef(t, errors.Is(err, status.ErrInvalidPath), "%q: %v", invalid, err)
	}
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"", ".", "..", "a/b"} {
		err := ValidateName(name)
		assert.Truef(t, errors.Is(err, status.ErrInvalidName), "expected %q to be invalid", name)
	}
	for _, name := range []string{"a", "a.txt", ".hidden", "with space"} {
		assert.NoError(t, ValidateName(name))
	}
}
