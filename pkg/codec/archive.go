package codec

import (
	"github.com/oneconcern/localvcs/pkg/change"
	"github.com/oneconcern/localvcs/pkg/model"
)

// Revision is a persisted change list entry
type Revision struct {
	Parent  int
	Changes change.ChangeSet
	Label   string
}

// Archive is the persisted state of a repository
type Archive struct {
	Revisions []Revision
	Root      *model.Root
}

// MaxID yields the highest object id found in the archive, in the current tree
// as well as in the recorded changes
func (a *Archive) MaxID() model.ID {
	var highest model.ID
	observe := func(id model.ID) {
		if id > highest {
			highest = id
		}
	}
	if a.Root != nil {
		a.Root.Walk(func(_ model.Path, e model.Entry) bool {
			observe(e.ID())
			return true
		})
	}
	for _, rev := range a.Revisions {
		for _, id := range rev.Changes.AffectedIDs() {
			observe(id)
		}
	}
	return highest
}
