package models

// AppendedFile records one source file processed during a batch append.
// Error is set when the source could not be copied into the target.
type AppendedFile struct {
	Path          string `json:"path"`
	LinesAppended int    `json:"lines_appended,omitempty"`
	DateAppended  string `json:"date_appended,omitempty"`
	Error         string `json:"error,omitempty"`
}

// AppendBatchResult is the outcome of appending several source files to one
// target. Hash is the target file hash after the append, or the current
// on-disk hash after a precondition failure.
type AppendBatchResult struct {
	Result        string         `json:"result"`
	Hash          *string        `json:"hash"`
	TargetFile    string         `json:"target_file,omitempty"`
	FilesAppended []AppendedFile `json:"files_appended,omitempty"`
	Content       string         `json:"content,omitempty"`
	Reason        string         `json:"reason,omitempty"`
}
