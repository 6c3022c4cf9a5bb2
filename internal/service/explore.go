package service

import (
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"text-editor-server/internal/errors"
	"text-editor-server/internal/filesystem"
	"text-editor-server/internal/models"
	"text-editor-server/internal/text"
)

// ExploreDirectoryContents walks a directory tree and reports every entry,
// directories first, names ordered case-insensitively. File hashes are
// computed over the decoded content so they match what the read operations
// report; a file that cannot be decoded gets a hash error instead of a
// hash. A subdirectory that cannot be listed contributes a single error
// entry and the walk continues.
func (e *Editor) ExploreDirectoryContents(req models.ExploreDirectoryContentsRequest) (*models.ExploreResult, *models.ErrorDetail) {
	if errDetail := e.validatePath(req.DirectoryPath); errDetail != nil {
		return nil, errDetail
	}
	encoding := e.encodingOrDefault(req.Encoding)

	stats, err := e.fs.GetFileStats(req.DirectoryPath)
	if err != nil {
		if stdErrors.Is(err, os.ErrNotExist) {
			return nil, errors.NewDirectoryNotFoundError(req.DirectoryPath)
		}
		return nil, e.mapFSError(err, req.DirectoryPath, "explore")
	}
	if !stats.IsDir {
		return nil, errors.NewNotADirectoryError(req.DirectoryPath)
	}

	includeSubdirs := true
	if req.IncludeSubdirectories != nil {
		includeSubdirs = *req.IncludeSubdirectories
	}
	includeHashes := true
	if req.IncludeFileHashes != nil {
		includeHashes = *req.IncludeFileHashes
	}

	return &models.ExploreResult{
		Directory: req.DirectoryPath,
		Contents:  e.exploreDir(req.DirectoryPath, encoding, includeSubdirs, includeHashes),
	}, nil
}

func (e *Editor) exploreDir(dir, encoding string, includeSubdirs, includeHashes bool) []models.DirEntry {
	entries, err := e.fs.ListDir(dir)
	if err != nil {
		return []models.DirEntry{
			{Error: fmt.Sprintf("Permission denied accessing %s", dir)},
		}
	}

	sortDirEntries(entries)

	out := make([]models.DirEntry, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name)
		if entry.IsDir {
			dirEntry := models.DirEntry{
				Name:        entry.Name,
				Path:        path,
				IsDirectory: true,
			}
			if includeSubdirs {
				dirEntry.Contents = e.exploreDir(path, encoding, includeSubdirs, includeHashes)
			}
			out = append(out, dirEntry)
			continue
		}

		size := entry.Size
		fileEntry := models.DirEntry{
			Name: entry.Name,
			Path: path,
			Size: &size,
		}
		if includeHashes {
			if hash, ok := e.hashFile(path, encoding); ok {
				fileEntry.Hash = &hash
			} else {
				fileEntry.HashError = "Could not calculate hash (possibly binary file or encoding error)"
			}
		}
		out = append(out, fileEntry)
	}
	return out
}

// hashFile fingerprints a file's decoded content. ok is false when the file
// cannot be read or decoded with the given encoding.
func (e *Editor) hashFile(filePath, encoding string) (string, bool) {
	raw, err := e.fs.ReadFileBytes(filePath)
	if err != nil {
		return "", false
	}
	content, err := text.Decode(raw, encoding)
	if err != nil {
		return "", false
	}
	return text.Fingerprint(content), true
}

// sortDirEntries orders directories before files, each group sorted by name
// without regard to case.
func sortDirEntries(entries []filesystem.DirEntryInfo) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
}
