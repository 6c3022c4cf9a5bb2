package service

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"text-editor-server/internal/edit"
	"text-editor-server/internal/models"
	"text-editor-server/internal/text"
)

const (
	appendChunkSize = 8192
	appendDateFmt   = "2006-01-02 15:04:05"
)

// AppendTextFileFromPath appends the content of one file to another. The
// target hash precondition is checked first; the source is then streamed
// onto an append handle in fixed-size chunks, never held in memory whole,
// with a trailing newline forced so the appended content ends with a
// terminator.
func (e *Editor) AppendTextFileFromPath(req models.AppendTextFileFromPathRequest) (*models.EditResult, *models.ErrorDetail) {
	if errDetail := e.validatePath(req.SourceFilePath); errDetail != nil {
		return nil, errDetail
	}
	if errDetail := e.validatePath(req.TargetFilePath); errDetail != nil {
		return nil, errDetail
	}
	req.TargetFilePath = e.resolvePath(req.TargetFilePath)
	encoding := e.encodingOrDefault(req.Encoding)

	fl, errDetail := e.acquireLock(req.TargetFilePath, "append_from_path")
	if errDetail != nil {
		return nil, errDetail
	}
	defer e.releaseLock(fl)

	if ok, err := e.isRegularFile(req.SourceFilePath); err != nil {
		return nil, e.mapFSError(err, req.SourceFilePath, "append_from_path")
	} else if !ok {
		res := models.FailureResult(fmt.Sprintf("Source file not found: %s", req.SourceFilePath))
		return &res, nil
	}
	if ok, err := e.isRegularFile(req.TargetFilePath); err != nil {
		return nil, e.mapFSError(err, req.TargetFilePath, "append_from_path")
	} else if !ok {
		res := models.FailureResult(fmt.Sprintf("Target file not found: %s", req.TargetFilePath))
		return &res, nil
	}

	targetContent, errDetail := e.readAll(req.TargetFilePath, encoding)
	if errDetail != nil {
		return nil, errDetail
	}
	currentHash := text.Fingerprint(targetContent)
	if err := edit.CheckPrecondition(currentHash, req.TargetFileHash); err != nil {
		res := models.ConflictResult(currentHash, targetHashMismatchReason, rereadSuggestion, rereadHint)
		return &res, nil
	}

	out, err := e.fs.OpenAppend(req.TargetFilePath)
	if err != nil {
		return nil, e.mapFSError(err, req.TargetFilePath, "append_from_path")
	}
	defer out.Close()

	if _, err := e.streamAppend(out, req.SourceFilePath); err != nil {
		return nil, e.mapFSError(err, req.SourceFilePath, "append_from_path")
	}
	if err := out.Close(); err != nil {
		return nil, e.mapFSError(err, req.TargetFilePath, "append_from_path")
	}

	newContent, errDetail := e.readAll(req.TargetFilePath, encoding)
	if errDetail != nil {
		return nil, errDetail
	}

	res := models.OKResult(text.Fingerprint(newContent))
	res.Content = e.truncate(newContent, filepath.Base(req.TargetFilePath), 1, "append_text_file_from_path")
	return &res, nil
}

// AppendTextFileFromPathBatch appends several source files to one target in
// order. Sources are streamed in fixed-size chunks rather than loaded whole,
// and each one can be preceded by a templated header block. A source that is
// missing or fails to read is recorded in the per-file results and skipped;
// it does not abort the batch.
func (e *Editor) AppendTextFileFromPathBatch(req models.AppendTextFileFromPathBatchRequest) (*models.AppendBatchResult, *models.ErrorDetail) {
	if errDetail := e.validatePath(req.TargetFilePath); errDetail != nil {
		return nil, errDetail
	}
	req.TargetFilePath = e.resolvePath(req.TargetFilePath)
	encoding := e.encodingOrDefault(req.Encoding)

	useStructured := true
	if req.UseStructuredFormat != nil {
		useStructured = *req.UseStructuredFormat
	}
	template := req.StructureTemplate
	if template == "" {
		template = models.DefaultStructureTemplate
	}

	fl, errDetail := e.acquireLock(req.TargetFilePath, "append_from_path_batch")
	if errDetail != nil {
		return nil, errDetail
	}
	defer e.releaseLock(fl)

	if ok, err := e.isRegularFile(req.TargetFilePath); err != nil {
		return nil, e.mapFSError(err, req.TargetFilePath, "append_from_path_batch")
	} else if !ok {
		return &models.AppendBatchResult{
			Result: models.ResultError,
			Reason: fmt.Sprintf("Target file not found: %s", req.TargetFilePath),
		}, nil
	}

	targetContent, errDetail := e.readAll(req.TargetFilePath, encoding)
	if errDetail != nil {
		return nil, errDetail
	}
	currentHash := text.Fingerprint(targetContent)
	if err := edit.CheckPrecondition(currentHash, req.TargetFileHash); err != nil {
		return &models.AppendBatchResult{
			Result: models.ResultError,
			Hash:   &currentHash,
			Reason: targetHashMismatchReason,
		}, nil
	}

	out, err := e.fs.OpenAppend(req.TargetFilePath)
	if err != nil {
		return nil, e.mapFSError(err, req.TargetFilePath, "append_from_path_batch")
	}
	defer out.Close()

	appended := make([]models.AppendedFile, 0, len(req.SourceFilePaths))
	for _, sourcePath := range req.SourceFilePaths {
		if errDetail := e.validatePath(sourcePath); errDetail != nil {
			return nil, errDetail
		}
		if ok, err := e.isRegularFile(sourcePath); err != nil || !ok {
			appended = append(appended, models.AppendedFile{
				Path:  sourcePath,
				Error: "File does not exist or is not a file",
			})
			continue
		}

		now := time.Now().Format(appendDateFmt)
		if useStructured {
			header, err := e.renderHeader(template, sourcePath, req.BaseDirectory, now)
			if err != nil {
				// A source that cannot be read is reported in its own
				// entry; the rest of the batch continues.
				appended = append(appended, models.AppendedFile{
					Path:  sourcePath,
					Error: err.Error(),
				})
				continue
			}
			if _, err := io.WriteString(out, header); err != nil {
				return nil, e.mapFSError(err, req.TargetFilePath, "append_from_path_batch")
			}
		}

		lines, err := e.streamAppend(out, sourcePath)
		if err != nil {
			appended = append(appended, models.AppendedFile{
				Path:  sourcePath,
				Error: err.Error(),
			})
			continue
		}

		appended = append(appended, models.AppendedFile{
			Path:          sourcePath,
			LinesAppended: lines,
			DateAppended:  now,
		})
	}

	if err := out.Close(); err != nil {
		return nil, e.mapFSError(err, req.TargetFilePath, "append_from_path_batch")
	}

	newContent, errDetail := e.readAll(req.TargetFilePath, encoding)
	if errDetail != nil {
		return nil, errDetail
	}
	newHash := text.Fingerprint(newContent)

	return &models.AppendBatchResult{
		Result:        models.ResultOK,
		Hash:          &newHash,
		TargetFile:    req.TargetFilePath,
		FilesAppended: appended,
		Content:       e.truncate(newContent, filepath.Base(req.TargetFilePath), 1, "append_text_file_from_path_batch"),
	}, nil
}

// isRegularFile reports whether the path names an existing regular file.
// A not-found error counts as "no" rather than an error.
func (e *Editor) isRegularFile(filePath string) (bool, error) {
	exists, err := e.fs.FileExists(filePath)
	if err != nil || !exists {
		return false, err
	}
	stats, err := e.fs.GetFileStats(filePath)
	if err != nil {
		return false, err
	}
	return !stats.IsDir, nil
}

// renderHeader expands the structured header template for one source file.
// The relative path falls back to the plain source path when it cannot be
// expressed relative to the base directory.
func (e *Editor) renderHeader(template, sourcePath, baseDirectory, date string) (string, error) {
	fullPath, err := filepath.Abs(sourcePath)
	if err != nil {
		fullPath = sourcePath
	}

	relativePath := sourcePath
	if baseDirectory != "" {
		if rel, err := filepath.Rel(baseDirectory, fullPath); err == nil && !strings.HasPrefix(rel, "..") {
			relativePath = rel
		}
	}

	lineCount, err := e.countLines(sourcePath)
	if err != nil {
		return "", err
	}

	return strings.NewReplacer(
		"{fileName}", filepath.Base(sourcePath),
		"{relativePath}", relativePath,
		"{fullPath}", fullPath,
		"{numberOfLinesInserted}", strconv.Itoa(lineCount),
		"{dateInserted}", date,
	).Replace(template), nil
}

// streamAppend copies a source file onto the writer in fixed-size chunks,
// forcing a trailing newline, and returns the number of lines written.
func (e *Editor) streamAppend(out io.Writer, sourcePath string) (int, error) {
	in, err := e.fs.OpenRead(sourcePath)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	buf := make([]byte, appendChunkSize)
	lines := 0
	var lastByte byte
	total := 0
	for {
		n, err := in.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			for _, b := range chunk {
				if b == '\n' {
					lines++
				}
			}
			lastByte = chunk[n-1]
			total += n
			if _, werr := out.Write(chunk); werr != nil {
				return 0, werr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}

	if total > 0 && lastByte != '\n' {
		lines++
		if _, err := io.WriteString(out, "\n"); err != nil {
			return 0, err
		}
	}
	return lines, nil
}

// countLines counts the lines of a file the same way SplitLines would,
// without holding the whole file in memory.
func (e *Editor) countLines(filePath string) (int, error) {
	in, err := e.fs.OpenRead(filePath)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	buf := make([]byte, appendChunkSize)
	lines := 0
	var lastByte byte
	total := 0
	for {
		n, err := in.Read(buf)
		if n > 0 {
			for _, b := range buf[:n] {
				if b == '\n' {
					lines++
				}
			}
			lastByte = buf[n-1]
			total += n
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	if total > 0 && lastByte != '\n' {
		lines++
	}
	return lines, nil
}
