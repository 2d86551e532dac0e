package change

import (
	"fmt"

	"github.com/oneconcern/localvcs/pkg/model"
)

// Rename changes the name of an entry in place: it keeps its id, its parent and its content
type Rename struct {
	Target  model.Path
	NewName string
}

// NewRename builds a change renaming an entry
func NewRename(p model.Path, newName string) *Rename {
	return &Rename{Target: model.NewPath(string(p)), NewName: newName}
}

// Kind is KindRename
func (c *Rename) Kind() Kind { return KindRename }

// Path of the renamed entry, before renaming
func (c *Rename) Path() model.Path { return c.Target }

// Renamed is the path of the entry after renaming
func (c *Rename) Renamed() model.Path { return c.Target.Parent().Child(c.NewName) }

// Applied is always true: a rename needs no extra data to be reverted
func (c *Rename) Applied() bool { return true }

func (c *Rename) String() string {
	return fmt.Sprintf("%s %s -> %s", c.Kind(), c.Target, c.NewName)
}

// Apply renames the entry
func (c *Rename) Apply(root *model.Root, _ model.IDSource) (*model.Root, Change, error) {
	result, err := root.Rename(c.Target, c.NewName)
	if err != nil {
		return nil, nil, err
	}
	applied := *c
	return result, &applied, nil
}

// Revert restores the original name
func (c *Rename) Revert(root *model.Root) (*model.Root, error) {
	return root.Rename(c.Renamed(), c.Target.Name())
}
