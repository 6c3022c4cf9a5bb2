package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text-editor-server/internal/filesystem"
	"text-editor-server/internal/models"
)

// brokenReadFS fails OpenRead for one path and defers everything else.
type brokenReadFS struct {
	filesystem.FileSystemAdapter
	failPath string
}

func (f *brokenReadFS) OpenRead(path string) (io.ReadCloser, error) {
	if path == f.failPath {
		return nil, fmt.Errorf("input/output error")
	}
	return f.FileSystemAdapter.OpenRead(path)
}

func boolPtr(b bool) *bool { return &b }

func TestAppendTextFileFromPath(t *testing.T) {
	editor := newTestEditor(t)
	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", "target line\n")
	// An unterminated source still ends with a newline once appended.
	source := writeFile(t, dir, "source.txt", "source line")

	result, errDetail := editor.AppendTextFileFromPath(models.AppendTextFileFromPathRequest{
		SourceFilePath: source,
		TargetFilePath: target,
		TargetFileHash: fp("target line\n"),
	})
	require.Nil(t, errDetail)
	assert.Equal(t, models.ResultOK, result.Result)
	assert.Equal(t, "target line\nsource line\n", readFile(t, target))
	require.NotNil(t, result.Hash)
	assert.Equal(t, fp("target line\nsource line\n"), *result.Hash)
	assert.Equal(t, "target line\nsource line\n", result.Content)
	// The source file itself is untouched.
	assert.Equal(t, "source line", readFile(t, source))
}

func TestAppendTextFileFromPath_UnterminatedTarget(t *testing.T) {
	editor := newTestEditor(t)
	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", "target line")
	source := writeFile(t, dir, "source.txt", "src\n")

	result, errDetail := editor.AppendTextFileFromPath(models.AppendTextFileFromPathRequest{
		SourceFilePath: source,
		TargetFilePath: target,
		TargetFileHash: fp("target line"),
	})
	require.Nil(t, errDetail)
	assert.Equal(t, models.ResultOK, result.Result)
	// The source continues the unterminated last line; no separator is
	// inserted between them.
	assert.Equal(t, "target linesrc\n", readFile(t, target))
	require.NotNil(t, result.Hash)
	assert.Equal(t, fp("target linesrc\n"), *result.Hash)
}

func TestAppendTextFileFromPath_AppendsInPlace(t *testing.T) {
	editor := newTestEditor(t)
	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", "a\n")
	source := writeFile(t, dir, "source.txt", "b\n")

	before, err := os.Stat(target)
	require.NoError(t, err)

	_, errDetail := editor.AppendTextFileFromPath(models.AppendTextFileFromPathRequest{
		SourceFilePath: source,
		TargetFilePath: target,
		TargetFileHash: fp("a\n"),
	})
	require.Nil(t, errDetail)

	// The target is extended through an append handle, not rewritten.
	after, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, os.SameFile(before, after))
	assert.Equal(t, "a\nb\n", readFile(t, target))
}

func TestAppendTextFileFromPath_SourceMissing(t *testing.T) {
	editor := newTestEditor(t)
	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", "t\n")
	source := filepath.Join(dir, "missing.txt")

	result, errDetail := editor.AppendTextFileFromPath(models.AppendTextFileFromPathRequest{
		SourceFilePath: source,
		TargetFilePath: target,
		TargetFileHash: fp("t\n"),
	})
	require.Nil(t, errDetail)
	assert.Equal(t, models.ResultError, result.Result)
	assert.Equal(t, "Source file not found: "+source, result.Reason)
	assert.Equal(t, "t\n", readFile(t, target))
}

func TestAppendTextFileFromPath_TargetMissing(t *testing.T) {
	editor := newTestEditor(t)
	dir := t.TempDir()
	source := writeFile(t, dir, "source.txt", "s\n")
	target := filepath.Join(dir, "missing.txt")

	result, errDetail := editor.AppendTextFileFromPath(models.AppendTextFileFromPathRequest{
		SourceFilePath: source,
		TargetFilePath: target,
		TargetFileHash: "",
	})
	require.Nil(t, errDetail)
	assert.Equal(t, models.ResultError, result.Result)
	assert.Equal(t, "Target file not found: "+target, result.Reason)
}

func TestAppendTextFileFromPath_StaleTargetHash(t *testing.T) {
	editor := newTestEditor(t)
	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", "t\n")
	source := writeFile(t, dir, "source.txt", "s\n")

	result, errDetail := editor.AppendTextFileFromPath(models.AppendTextFileFromPathRequest{
		SourceFilePath: source,
		TargetFilePath: target,
		TargetFileHash: fp("stale"),
	})
	require.Nil(t, errDetail)
	assert.Equal(t, models.ResultError, result.Result)
	assert.Contains(t, result.Reason, "Target file hash mismatch")
	assert.Equal(t, "get_text_file_contents", result.Suggestion)
	require.NotNil(t, result.Hash)
	assert.Equal(t, fp("t\n"), *result.Hash)
	assert.Equal(t, "t\n", readFile(t, target))
}

func TestAppendTextFileFromPathBatch_Structured(t *testing.T) {
	editor := newTestEditor(t)
	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", "start\n")
	first := writeFile(t, dir, "first.txt", "one\ntwo\n")
	second := writeFile(t, dir, "second.txt", "three")

	result, errDetail := editor.AppendTextFileFromPathBatch(models.AppendTextFileFromPathBatchRequest{
		SourceFilePaths: []string{first, second},
		TargetFilePath:  target,
		TargetFileHash:  fp("start\n"),
		BaseDirectory:   dir,
	})
	require.Nil(t, errDetail)
	assert.Equal(t, models.ResultOK, result.Result)
	assert.Equal(t, target, result.TargetFile)

	require.Len(t, result.FilesAppended, 2)
	assert.Equal(t, first, result.FilesAppended[0].Path)
	assert.Equal(t, 2, result.FilesAppended[0].LinesAppended)
	assert.NotEmpty(t, result.FilesAppended[0].DateAppended)
	assert.Equal(t, second, result.FilesAppended[1].Path)
	assert.Equal(t, 1, result.FilesAppended[1].LinesAppended)

	content := readFile(t, target)
	assert.True(t, strings.HasPrefix(content, "start\n"))
	// Default header template, placeholders expanded per source file.
	assert.Contains(t, content, "== first.txt\n")
	assert.Contains(t, content, "== second.txt\n")
	assert.Contains(t, content, "== "+first+"\n")
	assert.Contains(t, content, "== 2\n")
	assert.Contains(t, content, "one\ntwo\n")
	// Unterminated source still ends on its own line.
	assert.Contains(t, content, "three\n")
	assert.NotContains(t, content, "{fileName}")

	require.NotNil(t, result.Hash)
	assert.Equal(t, fp(content), *result.Hash)
}

func TestAppendTextFileFromPathBatch_Raw(t *testing.T) {
	editor := newTestEditor(t)
	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", "a\n")
	source := writeFile(t, dir, "b.txt", "b\n")

	result, errDetail := editor.AppendTextFileFromPathBatch(models.AppendTextFileFromPathBatchRequest{
		SourceFilePaths:     []string{source},
		TargetFilePath:      target,
		TargetFileHash:      fp("a\n"),
		UseStructuredFormat: boolPtr(false),
	})
	require.Nil(t, errDetail)
	assert.Equal(t, models.ResultOK, result.Result)
	assert.Equal(t, "a\nb\n", readFile(t, target))
}

func TestAppendTextFileFromPathBatch_SkipsMissingSource(t *testing.T) {
	editor := newTestEditor(t)
	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", "a\n")
	good := writeFile(t, dir, "good.txt", "good\n")
	missing := filepath.Join(dir, "missing.txt")

	result, errDetail := editor.AppendTextFileFromPathBatch(models.AppendTextFileFromPathBatchRequest{
		SourceFilePaths:     []string{missing, good},
		TargetFilePath:      target,
		TargetFileHash:      fp("a\n"),
		UseStructuredFormat: boolPtr(false),
	})
	require.Nil(t, errDetail)
	assert.Equal(t, models.ResultOK, result.Result)

	require.Len(t, result.FilesAppended, 2)
	assert.Equal(t, missing, result.FilesAppended[0].Path)
	assert.Equal(t, "File does not exist or is not a file", result.FilesAppended[0].Error)
	assert.Equal(t, good, result.FilesAppended[1].Path)
	assert.Equal(t, 1, result.FilesAppended[1].LinesAppended)

	assert.Equal(t, "a\ngood\n", readFile(t, target))
}

func TestAppendTextFileFromPathBatch_CustomTemplate(t *testing.T) {
	editor := newTestEditor(t)
	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", "a\n")
	source := writeFile(t, dir, "b.txt", "b\n")

	result, errDetail := editor.AppendTextFileFromPathBatch(models.AppendTextFileFromPathBatchRequest{
		SourceFilePaths:   []string{source},
		TargetFilePath:    target,
		TargetFileHash:    fp("a\n"),
		StructureTemplate: ">>> {fileName} ({numberOfLinesInserted})\n",
	})
	require.Nil(t, errDetail)
	assert.Equal(t, models.ResultOK, result.Result)
	assert.Equal(t, "a\n>>> b.txt (1)\nb\n", readFile(t, target))
}

func TestAppendTextFileFromPathBatch_StaleTargetHash(t *testing.T) {
	editor := newTestEditor(t)
	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", "a\n")
	source := writeFile(t, dir, "b.txt", "b\n")

	result, errDetail := editor.AppendTextFileFromPathBatch(models.AppendTextFileFromPathBatchRequest{
		SourceFilePaths: []string{source},
		TargetFilePath:  target,
		TargetFileHash:  fp("stale"),
	})
	require.Nil(t, errDetail)
	assert.Equal(t, models.ResultError, result.Result)
	assert.Contains(t, result.Reason, "Target file hash mismatch")
	require.NotNil(t, result.Hash)
	assert.Equal(t, fp("a\n"), *result.Hash)
	assert.Equal(t, "a\n", readFile(t, target))
}

func TestAppendTextFileFromPathBatch_UnterminatedTarget(t *testing.T) {
	editor := newTestEditor(t)
	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", "start")
	source := writeFile(t, dir, "b.txt", "b\n")

	result, errDetail := editor.AppendTextFileFromPathBatch(models.AppendTextFileFromPathBatchRequest{
		SourceFilePaths:     []string{source},
		TargetFilePath:      target,
		TargetFileHash:      fp("start"),
		UseStructuredFormat: boolPtr(false),
	})
	require.Nil(t, errDetail)
	assert.Equal(t, models.ResultOK, result.Result)
	// No separator between the unterminated last line and the source.
	assert.Equal(t, "startb\n", readFile(t, target))
}

func TestAppendTextFileFromPathBatch_SourceReadFailureIsolated(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	require.NoError(t, os.WriteFile(target, []byte("a\n"), 0644))
	broken := filepath.Join(dir, "broken.txt")
	require.NoError(t, os.WriteFile(broken, []byte("x\n"), 0644))
	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("good\n"), 0644))

	editor := newTestEditorWithFS(t, &brokenReadFS{
		FileSystemAdapter: filesystem.NewDefaultFileSystemAdapter(),
		failPath:          broken,
	})

	result, errDetail := editor.AppendTextFileFromPathBatch(models.AppendTextFileFromPathBatchRequest{
		SourceFilePaths:     []string{broken, good},
		TargetFilePath:      target,
		TargetFileHash:      fp("a\n"),
		UseStructuredFormat: boolPtr(false),
	})
	require.Nil(t, errDetail)
	assert.Equal(t, models.ResultOK, result.Result)

	// The unreadable source gets its own error entry; the batch goes on.
	require.Len(t, result.FilesAppended, 2)
	assert.Equal(t, broken, result.FilesAppended[0].Path)
	assert.Contains(t, result.FilesAppended[0].Error, "input/output error")
	assert.Equal(t, good, result.FilesAppended[1].Path)
	assert.Equal(t, 1, result.FilesAppended[1].LinesAppended)

	assert.Equal(t, "a\ngood\n", readFile(t, target))
	require.NotNil(t, result.Hash)
	assert.Equal(t, fp("a\ngood\n"), *result.Hash)
}

func TestAppendTextFileFromPathBatch_TargetMissing(t *testing.T) {
	editor := newTestEditor(t)
	dir := t.TempDir()
	source := writeFile(t, dir, "b.txt", "b\n")
	target := filepath.Join(dir, "missing.txt")

	result, errDetail := editor.AppendTextFileFromPathBatch(models.AppendTextFileFromPathBatchRequest{
		SourceFilePaths: []string{source},
		TargetFilePath:  target,
		TargetFileHash:  "",
	})
	require.Nil(t, errDetail)
	assert.Equal(t, models.ResultError, result.Result)
	assert.Equal(t, "Target file not found: "+target, result.Reason)
}
