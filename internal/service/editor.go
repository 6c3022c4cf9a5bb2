package service

import (
	stdErrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"text-editor-server/internal/config"
	"text-editor-server/internal/errors"
	"text-editor-server/internal/filesystem"
	"text-editor-server/internal/lock"
	"text-editor-server/internal/log"
	"text-editor-server/internal/models"
	"text-editor-server/internal/text"
)

const filePerm = 0644

// Recovery advice returned alongside conflict results.
const (
	hashMismatchReason       = "File hash mismatch - Please use get_text_file_contents tool to get current content and hash"
	targetHashMismatchReason = "Target file hash mismatch - Please use get_text_file_contents tool to get current content and hash"
	rereadSuggestion         = "get_text_file_contents"
	rereadHint               = "Run get_text_file_contents to get the current content and hashes, then retry"
)

// TextEditingService is the façade over every file operation the transports
// expose. Read operations never check a precondition hash; every mutating
// operation does, and recovers conflicts into its result instead of
// returning an ErrorDetail. ErrorDetail is reserved for structural failures
// (bad paths, bad parameters, I/O the caller cannot retry around).
type TextEditingService interface {
	ReadFileContents(filePath string, start int, end *int, encoding string) (*models.ReadResult, *models.ErrorDetail)
	ReadMultipleRanges(files []models.FileRanges, encoding string) (map[string]*models.FileRangesResult, *models.ErrorDetail)
	PatchFileContents(req models.PatchTextFileContentsRequest) (*models.EditResult, *models.ErrorDetail)
	CreateTextFile(req models.CreateTextFileRequest) (*models.EditResult, *models.ErrorDetail)
	AppendTextFileContents(req models.AppendTextFileContentsRequest) (*models.EditResult, *models.ErrorDetail)
	InsertTextFileContents(req models.InsertTextFileContentsRequest) (*models.EditResult, *models.ErrorDetail)
	DeleteTextFileContents(req models.DeleteTextFileContentsRequest) (*models.EditResult, *models.ErrorDetail)
	AppendTextFileFromPath(req models.AppendTextFileFromPathRequest) (*models.EditResult, *models.ErrorDetail)
	AppendTextFileFromPathBatch(req models.AppendTextFileFromPathBatchRequest) (*models.AppendBatchResult, *models.ErrorDetail)
	ExploreDirectoryContents(req models.ExploreDirectoryContentsRequest) (*models.ExploreResult, *models.ErrorDetail)
	PeekTextFileContents(req models.PeekTextFileContentsRequest) (map[string]*models.PeekResult, *models.ErrorDetail)
}

// Editor implements TextEditingService on top of the file system adapter,
// the lock manager and the configured limits.
type Editor struct {
	fs              filesystem.FileSystemAdapter
	locks           lock.Manager
	logger          log.Logger
	maxFileSize     int64
	maxContentChars int
	lockTimeout     time.Duration
	defaultEncoding string
}

var _ TextEditingService = (*Editor)(nil)

// NewEditor creates a new Editor.
func NewEditor(fs filesystem.FileSystemAdapter, locks lock.Manager, logger log.Logger, cfg *config.Config) (*Editor, error) {
	if fs == nil {
		return nil, fmt.Errorf("filesystem adapter is required")
	}
	if locks == nil {
		return nil, fmt.Errorf("lock manager is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	return &Editor{
		fs:              fs,
		locks:           locks,
		logger:          logger,
		maxFileSize:     int64(cfg.MaxFileSizeMB) * 1024 * 1024,
		maxContentChars: cfg.MaxContentChars,
		lockTimeout:     time.Duration(cfg.LockTimeoutSec) * time.Second,
		defaultEncoding: cfg.DefaultEncoding,
	}, nil
}

// validatePath rejects any path containing a parent directory reference.
// A blunt substring check by intent: it also rejects legitimate names that
// happen to contain "..", which keeps the check independent of path
// canonicalization.
func (e *Editor) validatePath(filePath string) *models.ErrorDetail {
	if strings.Contains(filePath, "..") {
		return errors.NewPathTraversalError(filePath)
	}
	return nil
}

// resolvePath follows symlinks so locks and atomic writes land on the real
// file; renaming over a symlink would otherwise replace the link itself
// instead of its target. A path that does not exist yet cannot be resolved
// and is used as given.
func (e *Editor) resolvePath(filePath string) string {
	if resolved, err := e.fs.EvalSymlinks(filePath); err == nil {
		return resolved
	}
	return filePath
}

func (e *Editor) encodingOrDefault(encoding string) string {
	if encoding == "" {
		return e.defaultEncoding
	}
	return encoding
}

// readAll reads and decodes the whole file. The returned content is never
// truncated; mutating operations must split and hash the real content.
func (e *Editor) readAll(filePath, encoding string) (string, *models.ErrorDetail) {
	stats, err := e.fs.GetFileStats(filePath)
	if err != nil {
		return "", e.mapFSError(err, filePath, "read")
	}
	if stats.IsDir {
		return "", errors.NewNotAFileError(filePath, "read")
	}
	if stats.Size > e.maxFileSize {
		return "", errors.NewFileTooLargeError(filePath, int(e.maxFileSize/(1024*1024)))
	}

	raw, err := e.fs.ReadFileBytes(filePath)
	if err != nil {
		return "", e.mapFSError(err, filePath, "read")
	}

	content, err := text.Decode(raw, encoding)
	if err != nil {
		var decodeErr *text.DecodeError
		if stdErrors.As(err, &decodeErr) {
			return "", errors.NewDecodeError(filePath, decodeErr.Encoding, decodeErr.Offset)
		}
		return "", errors.NewInvalidParamsError(err.Error(), "")
	}
	return content, nil
}

// mapFSError turns an adapter error into an ErrorDetail, unwrapping to
// detect not-found and permission cases.
func (e *Editor) mapFSError(err error, filePath, operation string) *models.ErrorDetail {
	underlying := err
	for unwrapped := stdErrors.Unwrap(underlying); unwrapped != nil; unwrapped = stdErrors.Unwrap(underlying) {
		underlying = unwrapped
	}
	if os.IsNotExist(underlying) {
		return errors.NewFileNotFoundError(filePath, operation)
	}
	if os.IsPermission(underlying) {
		return errors.NewPermissionDeniedError(filePath, operation)
	}
	return errors.NewIOError(filePath, operation, err.Error())
}

// truncate replaces oversized payloads with a short diagnostic instead of
// shipping the full content back over the wire. On-disk state is never
// affected.
func (e *Editor) truncate(content, fileName string, lineNumber int, operation string) string {
	if len(content) <= e.maxContentChars {
		return content
	}
	return fmt.Sprintf("====== TRUNCATED %s ======\n"+
		"= Content return length exceeded, content length: %d\n"+
		"= Line number: %d\n"+
		"= Please use more granular line specific searches! The files are too big for you!\n"+
		"= Tool: %s\n"+
		"====== END TRUNCATED ==========\n",
		fileName, len(content), lineNumber, operation)
}

// writeContent encodes and atomically writes the full new content.
func (e *Editor) writeContent(filePath, content, encoding string) *models.ErrorDetail {
	raw, err := text.Encode(content, encoding)
	if err != nil {
		return errors.NewInvalidParamsError(err.Error(), "")
	}
	if err := e.fs.WriteFileBytesAtomic(filePath, raw, filePerm); err != nil {
		return e.mapFSError(err, filePath, "write")
	}
	return nil
}

// acquireLock wraps the lock manager with the configured timeout.
func (e *Editor) acquireLock(filePath, operation string) (*lock.FileLock, *models.ErrorDetail) {
	fl, err := e.locks.AcquireLock(filePath, e.lockTimeout)
	if err != nil {
		return nil, errors.NewOperationLockFailedError(filePath, operation, err.Error())
	}
	return fl, nil
}

func (e *Editor) releaseLock(fl *lock.FileLock) {
	if err := e.locks.ReleaseLock(fl); err != nil {
		e.logger.Warn("failed to release file lock", "path", fl.FilePath, "error", err)
	}
}
