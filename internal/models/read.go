package models

// FileRanges names a file together with the line ranges to read from it.
type FileRanges struct {
	FilePath string      `json:"file_path"`
	Ranges   []LineRange `json:"ranges"`
}

// RangeResult is the content of one requested line range. RangeHash
// fingerprints the returned range content so a later patch can prove the
// range is unchanged. ContentSize counts characters, not lines.
type RangeResult struct {
	Content     string `json:"content"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	RangeHash   string `json:"range_hash"`
	TotalLines  int    `json:"total_lines"`
	ContentSize int    `json:"content_size"`
}

// FileRangesResult groups the range results for one file together with the
// whole-file hash captured at read time. Error is set, and the other fields
// left empty, when this file could not be read; other files in the same
// request are unaffected.
type FileRangesResult struct {
	Ranges   []RangeResult `json:"ranges,omitempty"`
	FileHash string        `json:"file_hash,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// ReadResult is the outcome of reading a single file in full or by a single
// range. ContentSize here counts encoded bytes, unlike the character count
// in RangeResult.
type ReadResult struct {
	Content     string `json:"content"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Hash        string `json:"hash"`
	TotalLines  int    `json:"total_lines"`
	ContentSize int    `json:"content_size"`
}
