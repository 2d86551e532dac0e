package core

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/localvcs/pkg/model"
	"gopkg.in/yaml.v2"
)

// Format of a rendered descriptor
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Describe the current snapshot
func (r *Repository) Describe() model.SnapshotDescriptor {
	desc := model.DescribeSnapshot(r.root)
	desc.Label, _ = r.changes.Label(r.root)
	return desc
}

// DescribeRepo yields the descriptor of the committed state of the repository
func (r *Repository) DescribeRepo() model.RepoDescriptor {
	desc := r.describeRepo()
	desc.Generation = r.generation
	return desc
}

func (r *Repository) describeRepo() model.RepoDescriptor {
	return model.RepoDescriptor{
		Name:        r.name,
		Version:     model.CurrentRepoVersion,
		Revisions:   r.changes.Len(),
		Revision:    r.Revision(),
		Fingerprint: model.Fingerprint(r.root),
		Labels:      r.changes.Labels(),
	}
}

// Render a descriptor for a host
func Render(w io.Writer, descriptor interface{}, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(descriptor, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case FormatYAML:
		data, err = yaml.Marshal(descriptor)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
