package service

import (
	stdErrors "errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"text-editor-server/internal/errors"
	"text-editor-server/internal/models"
	"text-editor-server/internal/text"
)

const defaultPeekLines = 10

// ReadFileContents reads a single line range from one file. start is
// 1-based; a nil end means through the last line. A start beyond the last
// line returns empty content with a (start, start) range instead of an
// error.
func (e *Editor) ReadFileContents(filePath string, start int, end *int, encoding string) (*models.ReadResult, *models.ErrorDetail) {
	if errDetail := e.validatePath(filePath); errDetail != nil {
		return nil, errDetail
	}
	encoding = e.encodingOrDefault(encoding)

	if end != nil && *end < start {
		return nil, errors.NewInvalidParamsError("End line must be greater than or equal to start line", "")
	}

	content, errDetail := e.readAll(filePath, encoding)
	if errDetail != nil {
		return nil, errDetail
	}

	lines := text.SplitLines(content)
	totalLines := len(lines)

	startIdx := start
	if startIdx < 1 {
		startIdx = 1
	}
	if startIdx > totalLines {
		return &models.ReadResult{
			Content:     "",
			Start:       startIdx,
			End:         startIdx,
			Hash:        text.Fingerprint(""),
			TotalLines:  totalLines,
			ContentSize: 0,
		}, nil
	}

	resolvedEnd := totalLines
	if end != nil && *end < totalLines {
		resolvedEnd = *end
	}

	selected := text.SelectRange(lines, startIdx, end)
	encoded, err := text.Encode(selected, encoding)
	if err != nil {
		return nil, errors.NewInvalidParamsError(err.Error(), "")
	}

	return &models.ReadResult{
		Content:     e.truncate(selected, filepath.Base(filePath), startIdx, "get_text_file_contents"),
		Start:       startIdx,
		End:         resolvedEnd,
		Hash:        text.Fingerprint(selected),
		TotalLines:  totalLines,
		ContentSize: len(encoded),
	}, nil
}

// ReadMultipleRanges reads several line ranges from several files. A file
// that cannot be read yields an error entry for that file only; the other
// files are still served. Nothing here checks a precondition hash, reads
// have nothing to guard.
func (e *Editor) ReadMultipleRanges(files []models.FileRanges, encoding string) (map[string]*models.FileRangesResult, *models.ErrorDetail) {
	encoding = e.encodingOrDefault(encoding)
	result := make(map[string]*models.FileRangesResult, len(files))

	for _, spec := range files {
		if errDetail := e.validatePath(spec.FilePath); errDetail != nil {
			return nil, errDetail
		}

		content, errDetail := e.readAll(spec.FilePath, encoding)
		if errDetail != nil {
			result[spec.FilePath] = &models.FileRangesResult{Error: errDetail.Message}
			continue
		}

		lines := text.SplitLines(content)
		totalLines := len(lines)
		fileName := filepath.Base(spec.FilePath)

		fileResult := &models.FileRangesResult{
			FileHash: text.Fingerprint(content),
			Ranges:   make([]models.RangeResult, 0, len(spec.Ranges)),
		}

		for _, r := range spec.Ranges {
			startIdx := r.Start
			if startIdx < 1 {
				startIdx = 1
			}
			if startIdx > totalLines {
				fileResult.Ranges = append(fileResult.Ranges, models.RangeResult{
					Content:     "",
					Start:       startIdx,
					End:         startIdx,
					RangeHash:   text.Fingerprint(""),
					TotalLines:  totalLines,
					ContentSize: 0,
				})
				continue
			}

			resolvedEnd := totalLines
			if r.End != nil && *r.End < totalLines {
				resolvedEnd = *r.End
			}

			selected := text.SelectRange(lines, startIdx, r.End)
			fileResult.Ranges = append(fileResult.Ranges, models.RangeResult{
				Content:     e.truncate(selected, fileName, startIdx, "get_text_file_contents"),
				Start:       startIdx,
				End:         resolvedEnd,
				RangeHash:   text.Fingerprint(selected),
				TotalLines:  totalLines,
				ContentSize: utf8.RuneCountInString(selected),
			})
		}

		result[spec.FilePath] = fileResult
	}

	return result, nil
}

// PeekTextFileContents reads the first lines of each file. Per-file
// failures land in that file's entry; the rest of the batch continues.
func (e *Editor) PeekTextFileContents(req models.PeekTextFileContentsRequest) (map[string]*models.PeekResult, *models.ErrorDetail) {
	if len(req.FilePaths) == 0 {
		return nil, errors.NewInvalidParamsError("At least one file path is required", "")
	}

	numLines := req.NumLines
	if numLines <= 0 {
		numLines = defaultPeekLines
	}
	encoding := e.encodingOrDefault(req.Encoding)

	results := make(map[string]*models.PeekResult, len(req.FilePaths))
	for _, filePath := range req.FilePaths {
		if errDetail := e.validatePath(filePath); errDetail != nil {
			return nil, errDetail
		}
		results[filePath] = e.peekOne(filePath, numLines, encoding)
	}
	return results, nil
}

func (e *Editor) peekOne(filePath string, numLines int, encoding string) *models.PeekResult {
	stats, err := e.fs.GetFileStats(filePath)
	if err != nil {
		return &models.PeekResult{
			Result: models.ResultError,
			Reason: fmt.Sprintf("File does not exist: %s", filePath),
		}
	}
	if stats.IsDir {
		return &models.PeekResult{
			Result: models.ResultError,
			Reason: fmt.Sprintf("Path is not a file: %s", filePath),
		}
	}

	raw, err := e.fs.ReadFileBytes(filePath)
	if err != nil {
		return &models.PeekResult{
			Result: models.ResultError,
			Reason: fmt.Sprintf("Error reading file: %s", err),
		}
	}
	content, err := text.Decode(raw, encoding)
	if err != nil {
		var decodeErr *text.DecodeError
		if stdErrors.As(err, &decodeErr) {
			return &models.PeekResult{
				Result: models.ResultError,
				Reason: fmt.Sprintf("Could not decode file with %s encoding. Possibly a binary file.", encoding),
			}
		}
		return &models.PeekResult{
			Result: models.ResultError,
			Reason: fmt.Sprintf("Error reading file: %s", err),
		}
	}

	lines := text.SplitLines(content)
	peeked := lines
	if len(peeked) > numLines {
		peeked = peeked[:numLines]
	}

	return &models.PeekResult{
		Result:     models.ResultOK,
		Filename:   filepath.Base(filePath),
		Lines:      peeked,
		NumPeeked:  len(peeked),
		TotalLines: len(lines),
		Size:       stats.Size,
		PeekHash:   text.Fingerprint(text.Join(peeked)),
		FileHash:   text.Fingerprint(content),
	}
}
