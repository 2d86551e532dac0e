package model

const (
	// CurrentRepoVersion indicates the version of the stored repository format.
	//
	// Note that version numbering is an integer, not a semver string.
	// Loading rejects stores written with a newer version.
	CurrentRepoVersion uint64 = 1
)
