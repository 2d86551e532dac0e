package change

import (
	"fmt"

	"github.com/oneconcern/localvcs/pkg/model"
)

// Modify replaces the content of a file
type Modify struct {
	Target  model.Path
	Content []byte

	// Previous content, recorded when applied
	Previous []byte
	applied  bool
}

// NewModify builds a change replacing the content of a file
func NewModify(p model.Path, content []byte) *Modify {
	return &Modify{Target: model.NewPath(string(p)), Content: append([]byte(nil), content...)}
}

// AppliedModify rebuilds an applied content change, e.g. when reading it back from a store
func AppliedModify(p model.Path, content, previous []byte) *Modify {
	return &Modify{Target: p, Content: content, Previous: previous, applied: true}
}

// Kind is KindModify
func (c *Modify) Kind() Kind { return KindModify }

// Path of the modified file
func (c *Modify) Path() model.Path { return c.Target }

// Applied tells if the previous content was recorded
func (c *Modify) Applied() bool { return c.applied }

func (c *Modify) String() string {
	return fmt.Sprintf("%s %s (%d bytes)", c.Kind(), c.Target, len(c.Content))
}

// Apply replaces the content of the file, keeping its id and position
func (c *Modify) Apply(root *model.Root, _ model.IDSource) (*model.Root, Change, error) {
	result, previous, err := root.ReplaceContent(c.Target, c.Content)
	if err != nil {
		return nil, nil, err
	}
	return result, AppliedModify(c.Target, c.Content, previous), nil
}

// Revert restores the previous content
func (c *Modify) Revert(root *model.Root) (*model.Root, error) {
	if !c.applied {
		return nil, notApplied(c)
	}
	result, _, err := root.ReplaceContent(c.Target, c.Previous)
	return result, err
}
