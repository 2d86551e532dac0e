package change

import (
	"fmt"

	"github.com/oneconcern/localvcs/pkg/model"
)

// CreateFile creates a new file with some content
type CreateFile struct {
	Target  model.Path
	Content []byte

	// ID allocated when applied. Zero if not applied yet.
	ID model.ID
}

// NewCreateFile builds a change creating a file
func NewCreateFile(p model.Path, content []byte) *CreateFile {
	return &CreateFile{Target: model.NewPath(string(p)), Content: append([]byte(nil), content...)}
}

// Kind is KindCreateFile
func (c *CreateFile) Kind() Kind { return KindCreateFile }

// Path of the created file
func (c *CreateFile) Path() model.Path { return c.Target }

// Applied tells if an id was allocated
func (c *CreateFile) Applied() bool { return c.ID != model.RootID }

func (c *CreateFile) String() string {
	return fmt.Sprintf("%s %s (%d bytes)", c.Kind(), c.Target, len(c.Content))
}

// Apply inserts a new file. A change which is already applied reuses its recorded id.
func (c *CreateFile) Apply(root *model.Root, ids model.IDSource) (*model.Root, Change, error) {
	if err := model.ValidatePath(c.Target); err != nil {
		return nil, nil, err
	}
	if c.Target.IsRoot() {
		return nil, nil, invalidRootTarget(c)
	}
	applied := *c
	if !applied.Applied() {
		applied.ID = ids.Next()
	}
	result, err := root.Insert(c.Target.Parent(), model.NewFile(applied.ID, c.Target.Name(), c.Content))
	if err != nil {
		return nil, nil, err
	}
	return result, &applied, nil
}

// Revert removes the created file
func (c *CreateFile) Revert(root *model.Root) (*model.Root, error) {
	return removeCreated(root, c, c.ID)
}

// CreateDirectory creates a new empty directory
type CreateDirectory struct {
	Target model.Path

	// ID allocated when applied. Zero if not applied yet.
	ID model.ID
}

// NewCreateDirectory builds a change creating a directory
func NewCreateDirectory(p model.Path) *CreateDirectory {
	return &CreateDirectory{Target: model.NewPath(string(p))}
}

// Kind is KindCreateDirectory
func (c *CreateDirectory) Kind() Kind { return KindCreateDirectory }

// Path of the created directory
func (c *CreateDirectory) Path() model.Path { return c.Target }

// Applied tells if an id was allocated
func (c *CreateDirectory) Applied() bool { return c.ID != model.RootID }

func (c *CreateDirectory) String() string {
	return fmt.Sprintf("%s %s", c.Kind(), c.Target)
}

// Apply inserts a new empty directory. A change which is already applied reuses its recorded id.
func (c *CreateDirectory) Apply(root *model.Root, ids model.IDSource) (*model.Root, Change, error) {
	if err := model.ValidatePath(c.Target); err != nil {
		return nil, nil, err
	}
	if c.Target.IsRoot() {
		return nil, nil, invalidRootTarget(c)
	}
	applied := *c
	if !applied.Applied() {
		applied.ID = ids.Next()
	}
	d, err := model.NewDirectory(applied.ID, c.Target.Name())
	if err != nil {
		return nil, nil, err
	}
	result, err := root.Insert(c.Target.Parent(), d)
	if err != nil {
		return nil, nil, err
	}
	return result, &applied, nil
}

// Revert removes the created directory
func (c *CreateDirectory) Revert(root *model.Root) (*model.Root, error) {
	return removeCreated(root, c, c.ID)
}

func removeCreated(root *model.Root, c Change, id model.ID) (*model.Root, error) {
	if !c.Applied() {
		return nil, notApplied(c)
	}
	result, removed, err := root.Remove(c.Path())
	if err != nil {
		return nil, err
	}
	if removed.ID() != id {
		return nil, idMismatch(c, id, removed.ID())
	}
	return result, nil
}
