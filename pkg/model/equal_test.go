package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	left, right := fixtureRoot(t), fixtureRoot(t)
	assert.True(t, Equal(left, right))
	assert.Equal(t, Fingerprint(left), Fingerprint(right))

	assert.True(t, Equal(left, left.WithRevision(9)), "revisions are not part of the structure")

	edited, _, err := left.ReplaceContent(NewPath("main.go"), []byte("package other"))
	require.NoError(t, err)
	assert.False(t, Equal(left, edited))
	assert.NotEqual(t, Fingerprint(left), Fingerprint(edited))

	renamed, err := left.Rename(NewPath("main.go"), "cmd.go")
	require.NoError(t, err)
	assert.False(t, Equal(left, renamed))

	// same names and content, different ids
	a, _ := NewRootAt(0, RootID, "", NewFile(1, "f", []byte("x")))
	b, _ := NewRootAt(0, RootID, "", NewFile(2, "f", []byte("x")))
	assert.False(t, Equal(a, b))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))

	// a file and an empty directory with the same id and name
	assert.False(t, Equal(NewFile(1, "x", nil), mustDirectory(t, 1, "x")))

	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(left, nil))
}

func mustDirectory(t testing.TB, id ID, name string, children ...Entry) *Directory {
	d, err := NewDirectory(id, name, children...)
	require.NoError(t, err)
	return d
}
