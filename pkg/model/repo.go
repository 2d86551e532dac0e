package model

import (
	"time"
	"unicode"

	"github.com/oneconcern/localvcs/pkg/model/status"
)

const (
	// descriptor files (object metadata)
	repoDescriptorFile = "repo.yaml"
	contentFile        = "content"
)

// RepoDescriptor keeps metadata about a stored repository.
//
// It is stored next to the repository content and is cross-checked at load time.
type RepoDescriptor struct {
	Name        string           `json:"name,omitempty" yaml:"name,omitempty"`
	Version     uint64           `json:"version" yaml:"version"`
	Generation  string           `json:"generation" yaml:"generation"`
	Revisions   int              `json:"revisions" yaml:"revisions"`
	Revision    int              `json:"revision" yaml:"revision"`
	Fingerprint string           `json:"fingerprint" yaml:"fingerprint"`
	Labels      LabelDescriptors `json:"labels,omitempty" yaml:"labels,omitempty"`
	Timestamp   time.Time        `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	_           struct{}
}

// GetArchivePathToContent yields the store key of the repository content
func GetArchivePathToContent(repo string) string {
	return archivePath(repo, contentFile)
}

// GetArchivePathToRepoDescriptor yields the store key of the repository descriptor
func GetArchivePathToRepoDescriptor(repo string) string {
	return archivePath(repo, repoDescriptorFile)
}

func archivePath(repo, file string) string {
	if repo == "" {
		return file
	}
	return repo + "/" + file
}

// ValidateRepoName checks that a repository name is usable as a store prefix.
// The empty name designates the unnamed repository at the top of a store.
func ValidateRepoName(name string) error {
	for _, c := range name {
		if !unicode.IsDigit(c) && !unicode.IsLetter(c) && !unicode.Is(unicode.Hyphen, c) && !unicode.Is(unicode.Pc, c) {
			return status.ErrInvalidRepo.WrapMessage("repo name %q contains unsupported character %q", name, string(c))
		}
	}
	return nil
}

// GetTimeStamp yields the current UTC time
func GetTimeStamp() time.Time {
	return time.Now().UTC()
}
