package change

import (
	"fmt"

	"github.com/oneconcern/localvcs/pkg/model"
)

// Kind of change
type Kind uint8

// Change kinds. These values are part of the persisted format.
const (
	KindCreateFile Kind = iota + 1
	KindCreateDirectory
	KindModify
	KindRename
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindCreateFile:
		return "create-file"
	case KindCreateDirectory:
		return "create-directory"
	case KindModify:
		return "modify"
	case KindRename:
		return "rename"
	case KindDelete:
		return "delete"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Change is a structural change to a tree
type Change interface {
	Kind() Kind

	// Path targeted by the change
	Path() model.Path

	// Apply the change to a root.
	//
	// It returns the new root and the applied change, which knows how to revert itself.
	Apply(root *model.Root, ids model.IDSource) (*model.Root, Change, error)

	// Revert an applied change on the root it produced.
	Revert(root *model.Root) (*model.Root, error)

	// Applied tells if this change carries the data needed to revert it
	Applied() bool

	fmt.Stringer
}

// AffectedIDs lists the object ids recorded by an applied change
func AffectedIDs(c Change) []model.ID {
	switch v := c.(type) {
	case *CreateFile:
		return []model.ID{v.ID}
	case *CreateDirectory:
		return []model.ID{v.ID}
	case *Delete:
		if v.Removed == nil {
			return nil
		}
		var ids []model.ID
		collectIDs(v.Removed, &ids)
		return ids
	default:
		return nil
	}
}

func collectIDs(e model.Entry, ids *[]model.ID) {
	*ids = append(*ids, e.ID())
	if d, ok := model.AsDirectory(e); ok {
		d.ForEach(func(child model.Entry) bool {
			collectIDs(child, ids)
			return true
		})
	}
}
