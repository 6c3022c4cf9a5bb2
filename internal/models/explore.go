package models

// DirEntry describes one file or directory found while exploring a tree.
// Size and Hash apply to files only; Hash stays nil with HashError set when
// the file content could not be decoded for hashing. Contents holds the
// children of a directory. Error reports a directory that could not be
// listed, typically for permission reasons.
type DirEntry struct {
	Name        string     `json:"name,omitempty"`
	Path        string     `json:"path,omitempty"`
	IsDirectory bool       `json:"is_directory"`
	Size        *int64     `json:"size"`
	Hash        *string    `json:"hash,omitempty"`
	HashError   string     `json:"hash_error,omitempty"`
	Contents    []DirEntry `json:"contents,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// ExploreResult is the outcome of exploring a directory tree.
type ExploreResult struct {
	Directory string     `json:"directory"`
	Contents  []DirEntry `json:"contents"`
}
