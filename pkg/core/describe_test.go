package core

import (
	"bytes"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/localvcs/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestDescribe(t *testing.T) {
	r := newRepo(t)
	populate(t, r)
	require.NoError(t, r.PutLabel("v1.0"))

	desc := r.Describe()
	assert.Equal(t, 3, desc.Revision)
	assert.Equal(t, "v1.0", desc.Label)
	assert.Equal(t, model.Fingerprint(r.Root()), desc.Fingerprint)
	paths := make([]string, 0, len(desc.Entries))
	for _, e := range desc.Entries {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{"docs", "docs/README.md", "main.go"}, paths)
	assert.Equal(t, "12B", desc.Entries[1].HumanSize)

	repo := r.DescribeRepo()
	assert.Equal(t, 3, repo.Revisions)
	assert.Equal(t, 3, repo.Revision)
	assert.Equal(t, desc.Fingerprint, repo.Fingerprint)
	assert.Equal(t, model.LabelDescriptors{{Name: "v1.0", Revision: 3}}, repo.Labels)
}

func TestRender(t *testing.T) {
	r := newRepo(t)
	populate(t, r)
	desc := r.Describe()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, desc, FormatJSON))
	var fromJSON model.SnapshotDescriptor
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &fromJSON))
	assert.Equal(t, desc.Fingerprint, fromJSON.Fingerprint)
	assert.Len(t, fromJSON.Entries, 3)
	assert.Contains(t, buf.String(), `"humanSize": "12B"`)

	buf.Reset()
	require.NoError(t, Render(&buf, desc, FormatYAML))
	var fromYAML model.SnapshotDescriptor
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, desc.Revision, fromYAML.Revision)
	assert.Equal(t, desc.Entries[2].Path, fromYAML.Entries[2].Path)

	assert.Error(t, Render(&buf, desc, Format("xml")))
}
