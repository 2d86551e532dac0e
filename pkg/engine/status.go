package engine

import (
	"context"
	"time"

	"github.com/oneconcern/localvcs/pkg/errors"
	"github.com/oneconcern/localvcs/pkg/model"
	storagestatus "github.com/oneconcern/localvcs/pkg/storage/status"
)

// Status of a workspace: the state of the repository and of its last save
type Status struct {
	Repo       string    `json:"repo,omitempty" yaml:"repo,omitempty"`
	Store      string    `json:"store" yaml:"store"`
	Revision   int       `json:"revision" yaml:"revision"`
	Label      string    `json:"label,omitempty" yaml:"label,omitempty"`
	Pending    int       `json:"pending" yaml:"pending"`
	Saved      bool      `json:"saved" yaml:"saved"`
	SavedSize  int64     `json:"savedSize,omitempty" yaml:"savedSize,omitempty"`
	SavedAt    time.Time `json:"savedAt,omitempty" yaml:"savedAt,omitempty"`
	Generation string    `json:"generation,omitempty" yaml:"generation,omitempty"`
}

// Status of the workspace. Saved is false until the repository is found in the store.
func (w *Workspace) Status(ctx context.Context) (Status, error) {
	repo := w.repo
	st := Status{
		Repo:       repo.Name(),
		Store:      w.store.String(),
		Revision:   repo.Revision(),
		Pending:    len(repo.Pending()),
		Generation: repo.Generation(),
	}
	st.Label, _ = repo.Label()

	size, updated, err := w.store.Meta(ctx, model.GetArchivePathToContent(repo.Name()))
	switch {
	case err == nil:
		st.Saved, st.SavedSize, st.SavedAt = true, size, updated
	case errors.Is(err, storagestatus.ErrNotExists):
	default:
		return Status{}, err
	}
	return st, nil
}
