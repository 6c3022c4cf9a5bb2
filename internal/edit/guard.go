package edit

// ConflictError reports a failed hash precondition. Actual carries the
// current fingerprint so the caller can re-read and retry.
type ConflictError struct {
	Actual string
}

func (e *ConflictError) Error() string {
	return "content hash does not match expected hash"
}

// CheckPrecondition compares the current fingerprint against the one the
// caller last saw. On mismatch it returns a ConflictError carrying the
// current fingerprint; the re-read-and-retry loop this enables is the whole
// recovery protocol.
func CheckPrecondition(current, expected string) error {
	if current != expected {
		return &ConflictError{Actual: current}
	}
	return nil
}
