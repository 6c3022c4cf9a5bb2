package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"text-editor-server/internal/config"
	"text-editor-server/internal/filesystem"
	"text-editor-server/internal/lock"
	"text-editor-server/internal/log"
	"text-editor-server/internal/text"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	return newTestEditorWithFS(t, filesystem.NewDefaultFileSystemAdapter())
}

func newTestEditorWithFS(t *testing.T, fs filesystem.FileSystemAdapter) *Editor {
	t.Helper()
	cfg := &config.Config{
		Transport:       "mcp",
		Port:            8080,
		MaxFileSizeMB:   10,
		MaxContentChars: 1000,
		LockTimeoutSec:  5,
		DefaultEncoding: "utf-8",
		LogLevel:        "error",
	}
	editor, err := NewEditor(
		fs,
		lock.NewManager(),
		log.NewStdLogger("error"),
		cfg,
	)
	require.NoError(t, err)
	return editor
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func fp(content string) string { return text.Fingerprint(content) }

func intPtr(n int) *int { return &n }
