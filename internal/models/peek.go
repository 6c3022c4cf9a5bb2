package models

// PeekResult is the outcome of reading the first lines of one file. Lines
// keeps the line terminators so the caller can reconstruct the exact peeked
// content. PeekHash fingerprints the peeked portion, FileHash the whole
// file.
type PeekResult struct {
	Result     string   `json:"result"`
	Filename   string   `json:"filename,omitempty"`
	Lines      []string `json:"lines,omitempty"`
	NumPeeked  int      `json:"num_lines_peeked,omitempty"`
	TotalLines int      `json:"total_lines,omitempty"`
	Size       int64    `json:"size,omitempty"`
	PeekHash   string   `json:"peek_hash,omitempty"`
	FileHash   string   `json:"file_hash,omitempty"`
	Reason     string   `json:"reason,omitempty"`
}
