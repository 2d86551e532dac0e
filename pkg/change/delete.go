package change

import (
	"fmt"

	"github.com/oneconcern/localvcs/pkg/model"
)

// Delete removes an entry, with its whole subtree
type Delete struct {
	Target model.Path

	// Removed entry, recorded when applied
	Removed model.Entry
}

// NewDelete builds a change deleting an entry
func NewDelete(p model.Path) *Delete {
	return &Delete{Target: model.NewPath(string(p))}
}

// Kind is KindDelete
func (c *Delete) Kind() Kind { return KindDelete }

// Path of the deleted entry
func (c *Delete) Path() model.Path { return c.Target }

// Applied tells if the removed entry was recorded
func (c *Delete) Applied() bool { return c.Removed != nil }

func (c *Delete) String() string {
	return fmt.Sprintf("%s %s", c.Kind(), c.Target)
}

// Apply removes the entry
func (c *Delete) Apply(root *model.Root, _ model.IDSource) (*model.Root, Change, error) {
	result, removed, err := root.Remove(c.Target)
	if err != nil {
		return nil, nil, err
	}
	return result, &Delete{Target: c.Target, Removed: removed}, nil
}

// Revert inserts the removed entry back, with its original ids
func (c *Delete) Revert(root *model.Root) (*model.Root, error) {
	if !c.Applied() {
		return nil, notApplied(c)
	}
	return root.Insert(c.Target.Parent(), c.Removed)
}
