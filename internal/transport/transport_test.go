package transport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"text-editor-server/internal/config"
	"text-editor-server/internal/filesystem"
	"text-editor-server/internal/lock"
	"text-editor-server/internal/log"
	"text-editor-server/internal/service"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	cfg := &config.Config{
		Transport:       "stdio",
		Port:            8080,
		MaxFileSizeMB:   10,
		MaxContentChars: 1000,
		LockTimeoutSec:  5,
		DefaultEncoding: "utf-8",
		LogLevel:        "error",
	}
	editor, err := service.NewEditor(
		filesystem.NewDefaultFileSystemAdapter(),
		lock.NewManager(),
		log.NewStdLogger("error"),
		cfg,
	)
	require.NoError(t, err)
	return NewDispatcher(editor)
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
