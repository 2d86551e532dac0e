package model

import (
	"unicode"

	"github.com/oneconcern/localvcs/pkg/model/status"
)

// LabelDescriptor describes a label put on a revision
type LabelDescriptor struct {
	Name     string `json:"name" yaml:"name"`
	Revision int    `json:"revision" yaml:"revision"`
	_        struct{}
}

// LabelDescriptors is a collection of labels, newest revision first
type LabelDescriptors []LabelDescriptor

// Find a label by name
func (ls LabelDescriptors) Find(name string) (LabelDescriptor, bool) {
	for _, l := range ls {
		if l.Name == name {
			return l, true
		}
	}
	return LabelDescriptor{}, false
}

// ValidateLabel checks that a label name is not empty and only contains
// letters, digits, hyphens, connector punctuation and dots
func ValidateLabel(name string) error {
	if name == "" {
		return status.ErrInvalidLabel.WrapMessage("empty label name")
	}
	for _, c := range name {
		if !unicode.IsDigit(c) && !unicode.IsLetter(c) && !unicode.Is(unicode.Hyphen, c) && !unicode.Is(unicode.Pc, c) && c != '.' {
			return status.ErrInvalidLabel.WrapMessage("label name %q contains unsupported character %q", name, string(c))
		}
	}
	return nil
}
