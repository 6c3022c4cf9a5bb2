package models

// EditPatch describes one modification to a contiguous line range of a file.
//
// Start and End are 1-based and inclusive. A nil End means "through the last
// line of the file". The interpretation of the patch depends on RangeHash:
//
//   - RangeHash set: the patch replaces the range Start..End, and the hash of
//     the current content of that range must match RangeHash.
//   - RangeHash empty and Start is past the last line: the patch appends
//     Contents at the end of the file.
//   - RangeHash empty and Start is within the file: the patch inserts
//     Contents before line Start without consuming any existing lines.
type EditPatch struct {
	Start     int    `json:"start"`
	End       *int   `json:"end,omitempty"`
	Contents  string `json:"contents"`
	RangeHash string `json:"range_hash"`
}

// LineRange identifies a 1-based inclusive range of lines. A nil End means
// "through the last line". RangeHash, when set, is the expected hash of the
// range content and is verified before a delete consumes the range.
type LineRange struct {
	Start     int    `json:"start"`
	End       *int   `json:"end,omitempty"`
	RangeHash string `json:"range_hash,omitempty"`
}

// EditResult is the uniform outcome of a mutating file operation. Result is
// "ok" or "error". Hash carries the file hash after a successful mutation, or
// the current on-disk hash after a conflict so the caller can re-read and
// retry. It is a pointer so that "no hash available" serializes as null.
type EditResult struct {
	Result     string  `json:"result"`
	Hash       *string `json:"hash"`
	Reason     string  `json:"reason,omitempty"`
	Suggestion string  `json:"suggestion,omitempty"`
	Hint       string  `json:"hint,omitempty"`
	Content    string  `json:"content,omitempty"`
}

// Result values for EditResult.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// OKResult builds a successful EditResult carrying the new file hash.
func OKResult(hash string) EditResult {
	return EditResult{Result: ResultOK, Hash: &hash}
}

// ConflictResult builds an error EditResult carrying the current on-disk
// hash, the failure reason, and recovery advice.
func ConflictResult(hash, reason, suggestion, hint string) EditResult {
	return EditResult{
		Result:     ResultError,
		Hash:       &hash,
		Reason:     reason,
		Suggestion: suggestion,
		Hint:       hint,
	}
}

// FailureResult builds an error EditResult with no hash, for failures where
// no current content hash is meaningful.
func FailureResult(reason string) EditResult {
	return EditResult{Result: ResultError, Reason: reason}
}
