package transport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text-editor-server/internal/errors"
	"text-editor-server/internal/models"
)

func TestDispatcher_Methods(t *testing.T) {
	d := newTestDispatcher(t)

	names := d.Methods()
	assert.Len(t, names, 10)
	for _, want := range []string{
		"get_text_file_contents",
		"patch_text_file_contents",
		"create_text_file",
		"append_text_file_contents",
		"insert_text_file_contents",
		"delete_text_file_contents",
		"append_text_file_from_path",
		"append_text_file_from_path_batch",
		"explore_directory_contents",
		"peek_text_file_contents",
	} {
		assert.Contains(t, names, want)
	}
}

func TestDispatcher_GetTextFileContents(t *testing.T) {
	d := newTestDispatcher(t)
	path := writeTestFile(t, t.TempDir(), "f.txt", "a\nb\n")

	params := fmt.Sprintf(`{"files":[{"file_path":%q,"ranges":[{"start":1}]}]}`, path)
	result, errDetail := d.Dispatch("get_text_file_contents", json.RawMessage(params))
	require.Nil(t, errDetail)

	files, ok := result.(map[string]*models.FileRangesResult)
	require.True(t, ok)
	require.Contains(t, files, path)
	require.Len(t, files[path].Ranges, 1)
	assert.Equal(t, "a\nb\n", files[path].Ranges[0].Content)
}

func TestDispatcher_MissingFilesArgument(t *testing.T) {
	d := newTestDispatcher(t)

	_, errDetail := d.Dispatch("get_text_file_contents", json.RawMessage(`{}`))
	require.NotNil(t, errDetail)
	assert.Equal(t, errors.CodeInvalidParams, errDetail.Code)
	assert.Equal(t, "Missing required argument: files", errDetail.Message)
}

func TestDispatcher_UnknownMethod(t *testing.T) {
	d := newTestDispatcher(t)

	_, errDetail := d.Dispatch("no_such_method", json.RawMessage(`{}`))
	require.NotNil(t, errDetail)
	assert.Equal(t, errors.CodeMethodNotFound, errDetail.Code)
}

func TestDispatcher_EmptyParams(t *testing.T) {
	d := newTestDispatcher(t)

	_, errDetail := d.Dispatch("patch_text_file_contents", nil)
	require.NotNil(t, errDetail)
	assert.Equal(t, errors.CodeInvalidParams, errDetail.Code)
}

func TestDispatcher_MalformedParams(t *testing.T) {
	d := newTestDispatcher(t)

	_, errDetail := d.Dispatch("create_text_file", json.RawMessage(`{"file_path":123}`))
	require.NotNil(t, errDetail)
	assert.Equal(t, errors.CodeInvalidParams, errDetail.Code)
}

func TestDispatcher_CreateThenPatch(t *testing.T) {
	d := newTestDispatcher(t)
	path := filepath.Join(t.TempDir(), "f.txt")

	params := fmt.Sprintf(`{"file_path":%q,"contents":"a\nb\n"}`, path)
	result, errDetail := d.Dispatch("create_text_file", json.RawMessage(params))
	require.Nil(t, errDetail)

	created, ok := result.(*models.EditResult)
	require.True(t, ok)
	require.Equal(t, models.ResultOK, created.Result)
	require.NotNil(t, created.Hash)

	params = fmt.Sprintf(`{"file_path":%q,"file_hash":%q,"patches":[{"start":2,"contents":"mid\n"}]}`, path, *created.Hash)
	result, errDetail = d.Dispatch("patch_text_file_contents", json.RawMessage(params))
	require.Nil(t, errDetail)

	patched, ok := result.(*models.EditResult)
	require.True(t, ok)
	assert.Equal(t, models.ResultOK, patched.Result)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nmid\nb\n", string(raw))
}
