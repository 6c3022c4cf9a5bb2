package service

import (
	"fmt"
	"path/filepath"

	"text-editor-server/internal/edit"
	"text-editor-server/internal/errors"
	"text-editor-server/internal/models"
	"text-editor-server/internal/text"
)

// PatchFileContents applies hash-verified patches to one file. The whole
// call is all-or-nothing: every check runs against the content as read, and
// the single disk write happens only after all patches apply cleanly.
//
// A missing file with an empty expected hash switches to create mode:
// missing parent directories are created and the patches run against empty
// content.
func (e *Editor) PatchFileContents(req models.PatchTextFileContentsRequest) (*models.EditResult, *models.ErrorDetail) {
	if errDetail := e.validatePath(req.FilePath); errDetail != nil {
		return nil, errDetail
	}
	if len(req.Patches) == 0 {
		return nil, errors.NewInvalidParamsError("No patches specified", "")
	}
	req.FilePath = e.resolvePath(req.FilePath)
	encoding := e.encodingOrDefault(req.Encoding)

	exists, err := e.fs.FileExists(req.FilePath)
	if err != nil {
		return nil, e.mapFSError(err, req.FilePath, "patch")
	}
	if !exists {
		if req.FileHash != "" {
			res := models.FailureResult(fmt.Sprintf("File not found: %s", req.FilePath))
			return &res, nil
		}
		// The lock sidecar lives next to the target, so the parent
		// directory must exist before the lock can.
		if dir := filepath.Dir(req.FilePath); dir != "" && dir != "." {
			if err := e.fs.MkdirAll(dir, 0755); err != nil {
				res := models.FailureResult(fmt.Sprintf("Failed to create directory: %s", err))
				return &res, nil
			}
		}
	}

	fl, errDetail := e.acquireLock(req.FilePath, "patch")
	if errDetail != nil {
		return nil, errDetail
	}
	defer e.releaseLock(fl)

	var currentContent string
	if exists {
		currentContent, errDetail = e.readAll(req.FilePath, encoding)
		if errDetail != nil {
			return nil, errDetail
		}
	}

	currentHash := text.Fingerprint(currentContent)
	if exists {
		if err := edit.CheckPrecondition(currentHash, req.FileHash); err != nil {
			res := models.ConflictResult(currentHash, hashMismatchReason, rereadSuggestion, rereadHint)
			return &res, nil
		}
	}

	lines := text.SplitLines(currentContent)

	// Overlap validation covers only range-consuming patches. Insertion
	// mode patches consume nothing and may legally share a start line.
	var spans []edit.Span
	for _, p := range req.Patches {
		if p.RangeHash != "" {
			spans = append(spans, edit.Span{Start: p.Start, End: p.End})
		}
	}
	if !edit.ValidateSpans(spans, len(lines)) {
		res := models.ConflictResult(currentHash, "Invalid or overlapping patches", rereadSuggestion, rereadHint)
		return &res, nil
	}

	newLines, err := edit.ApplyPatches(lines, req.Patches)
	if err != nil {
		res := models.ConflictResult(currentHash, err.Error(), rereadSuggestion, rereadHint)
		return &res, nil
	}

	newContent := text.Join(newLines)
	if errDetail := e.writeContent(req.FilePath, newContent, encoding); errDetail != nil {
		return nil, errDetail
	}

	res := models.OKResult(text.Fingerprint(newContent))
	return &res, nil
}

// CreateTextFile creates a new file. The path must not already exist;
// creation itself is the patch path with the new-file sentinel hash.
func (e *Editor) CreateTextFile(req models.CreateTextFileRequest) (*models.EditResult, *models.ErrorDetail) {
	if errDetail := e.validatePath(req.FilePath); errDetail != nil {
		return nil, errDetail
	}
	exists, err := e.fs.FileExists(req.FilePath)
	if err != nil {
		return nil, e.mapFSError(err, req.FilePath, "create")
	}
	if exists {
		return nil, errors.NewInvalidParamsError(fmt.Sprintf("File already exists: %s", req.FilePath), "")
	}

	return e.PatchFileContents(models.PatchTextFileContentsRequest{
		FilePath: req.FilePath,
		FileHash: "",
		Patches: []models.EditPatch{
			{Start: 1, Contents: req.Contents},
		},
		Encoding: req.Encoding,
	})
}

// AppendTextFileContents appends content to an existing file after the
// hash precondition holds. The append itself is an append-mode patch
// anchored one line past EOF.
func (e *Editor) AppendTextFileContents(req models.AppendTextFileContentsRequest) (*models.EditResult, *models.ErrorDetail) {
	if errDetail := e.validatePath(req.FilePath); errDetail != nil {
		return nil, errDetail
	}
	req.FilePath = e.resolvePath(req.FilePath)
	encoding := e.encodingOrDefault(req.Encoding)

	fl, errDetail := e.acquireLock(req.FilePath, "append")
	if errDetail != nil {
		return nil, errDetail
	}
	defer e.releaseLock(fl)

	exists, err := e.fs.FileExists(req.FilePath)
	if err != nil {
		return nil, e.mapFSError(err, req.FilePath, "append")
	}
	if !exists {
		res := models.FailureResult(fmt.Sprintf("File not found: %s", req.FilePath))
		return &res, nil
	}

	currentContent, errDetail := e.readAll(req.FilePath, encoding)
	if errDetail != nil {
		return nil, errDetail
	}
	currentHash := text.Fingerprint(currentContent)
	if err := edit.CheckPrecondition(currentHash, req.FileHash); err != nil {
		res := models.ConflictResult(currentHash, hashMismatchReason, rereadSuggestion, rereadHint)
		return &res, nil
	}

	lines := text.SplitLines(currentContent)
	newLines, err := edit.ApplyPatches(lines, []models.EditPatch{
		{Start: len(lines) + 1, Contents: req.Contents},
	})
	if err != nil {
		res := models.ConflictResult(currentHash, err.Error(), rereadSuggestion, rereadHint)
		return &res, nil
	}

	newContent := text.Join(newLines)
	if errDetail := e.writeContent(req.FilePath, newContent, encoding); errDetail != nil {
		return nil, errDetail
	}

	res := models.OKResult(text.Fingerprint(newContent))
	return &res, nil
}

// InsertTextFileContents inserts content relative to a line anchor.
// Exactly one of After or Before must be set; Before may point one line
// past EOF to mean append.
func (e *Editor) InsertTextFileContents(req models.InsertTextFileContentsRequest) (*models.EditResult, *models.ErrorDetail) {
	if errDetail := e.validatePath(req.FilePath); errDetail != nil {
		return nil, errDetail
	}
	if (req.After == nil) == (req.Before == nil) {
		res := models.FailureResult("Exactly one of 'after' or 'before' must be specified")
		return &res, nil
	}
	req.FilePath = e.resolvePath(req.FilePath)
	encoding := e.encodingOrDefault(req.Encoding)

	fl, errDetail := e.acquireLock(req.FilePath, "insert")
	if errDetail != nil {
		return nil, errDetail
	}
	defer e.releaseLock(fl)

	exists, err := e.fs.FileExists(req.FilePath)
	if err != nil {
		return nil, e.mapFSError(err, req.FilePath, "insert")
	}
	if !exists {
		res := models.FailureResult(fmt.Sprintf("File not found: %s", req.FilePath))
		return &res, nil
	}

	currentContent, errDetail := e.readAll(req.FilePath, encoding)
	if errDetail != nil {
		return nil, errDetail
	}
	currentHash := text.Fingerprint(currentContent)
	if err := edit.CheckPrecondition(currentHash, req.FileHash); err != nil {
		res := models.ConflictResult(currentHash, hashMismatchReason, rereadSuggestion, rereadHint)
		return &res, nil
	}

	lines := text.SplitLines(currentContent)
	totalLines := len(lines)

	var pos int
	if req.After != nil {
		if *req.After > totalLines {
			res := models.FailureResult(fmt.Sprintf("Line number %d is beyond end of file (total lines: %d)", *req.After, totalLines))
			return &res, nil
		}
		pos = *req.After
	} else {
		if *req.Before > totalLines+1 {
			res := models.FailureResult(fmt.Sprintf("Line number %d is beyond end of file (total lines: %d)", *req.Before, totalLines))
			return &res, nil
		}
		pos = *req.Before - 1
	}

	newContent := text.Join(edit.InsertLines(lines, req.Contents, pos))
	if errDetail := e.writeContent(req.FilePath, newContent, encoding); errDetail != nil {
		return nil, errDetail
	}

	res := models.OKResult(text.Fingerprint(newContent))
	return &res, nil
}

// DeleteTextFileContents removes hash-verified line ranges from one file.
// Like patch, the call is all-or-nothing.
func (e *Editor) DeleteTextFileContents(req models.DeleteTextFileContentsRequest) (*models.EditResult, *models.ErrorDetail) {
	if errDetail := e.validatePath(req.FilePath); errDetail != nil {
		return nil, errDetail
	}
	req.FilePath = e.resolvePath(req.FilePath)
	encoding := e.encodingOrDefault(req.Encoding)

	fl, errDetail := e.acquireLock(req.FilePath, "delete")
	if errDetail != nil {
		return nil, errDetail
	}
	defer e.releaseLock(fl)

	exists, err := e.fs.FileExists(req.FilePath)
	if err != nil {
		return nil, e.mapFSError(err, req.FilePath, "delete")
	}
	if !exists {
		res := models.FailureResult(fmt.Sprintf("File not found: %s", req.FilePath))
		return &res, nil
	}

	currentContent, errDetail := e.readAll(req.FilePath, encoding)
	if errDetail != nil {
		return nil, errDetail
	}
	currentHash := text.Fingerprint(currentContent)
	if err := edit.CheckPrecondition(currentHash, req.FileHash); err != nil {
		res := models.ConflictResult(currentHash, hashMismatchReason, rereadSuggestion, rereadHint)
		return &res, nil
	}

	if len(req.Ranges) == 0 {
		res := models.ConflictResult(currentHash, "No ranges specified", "", "")
		return &res, nil
	}

	lines := text.SplitLines(currentContent)

	spans := make([]edit.Span, 0, len(req.Ranges))
	for _, r := range req.Ranges {
		spans = append(spans, edit.Span{Start: r.Start, End: r.End})
	}
	if !edit.ValidateSpans(spans, len(lines)) {
		res := models.ConflictResult(currentHash, "Invalid or overlapping ranges", "", "")
		return &res, nil
	}

	newLines, err := edit.DeleteRanges(lines, req.Ranges)
	if err != nil {
		res := models.ConflictResult(currentHash, err.Error(), "", "")
		return &res, nil
	}

	newContent := text.Join(newLines)
	if errDetail := e.writeContent(req.FilePath, newContent, encoding); errDetail != nil {
		return nil, errDetail
	}

	res := models.OKResult(text.Fingerprint(newContent))
	return &res, nil
}
