package mcp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text-editor-server/internal/config"
	"text-editor-server/internal/filesystem"
	"text-editor-server/internal/lock"
	"text-editor-server/internal/log"
	"text-editor-server/internal/service"
)

func newTestService(t *testing.T) service.TextEditingService {
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
	editor, err := service.NewEditor(
		filesystem.NewDefaultFileSystemAdapter(),
		lock.NewManager(),
		log.NewStdLogger("error"),
		cfg,
	)
	require.NoError(t, err)
	return editor
}

func intPtr(v int) *int { return &v }

func TestParseLineRangeURI(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		wantPath string
		wantStart int
		wantEnd  *int
	}{
		{
			name:      "relative path",
			uri:       "text://path/to/file.txt?lines=5-10",
			wantPath:  "path/to/file.txt",
			wantStart: 5,
			wantEnd:   intPtr(10),
		},
		{
			name:      "absolute path",
			uri:       "text:///var/data/file.txt?lines=2-4",
			wantPath:  "/var/data/file.txt",
			wantStart: 2,
			wantEnd:   intPtr(4),
		},
		{
			name:      "open end",
			uri:       "text://file.txt?lines=3-",
			wantPath:  "file.txt",
			wantStart: 3,
			wantEnd:   nil,
		},
		{
			name:      "omitted start",
			uri:       "text://file.txt?lines=-7",
			wantPath:  "file.txt",
			wantStart: 1,
			wantEnd:   intPtr(7),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, start, end, err := ParseLineRangeURI(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantStart, start)
			if tt.wantEnd == nil {
				assert.Nil(t, end)
			} else {
				require.NotNil(t, end)
				assert.Equal(t, *tt.wantEnd, *end)
			}
		})
	}
}

func TestParseLineRangeURI_Errors(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		wantErr string
	}{
		{"wrong scheme", "file://f.txt?lines=1-2", "invalid URI scheme"},
		{"missing path", "text://?lines=1-2", "missing file path"},
		{"missing lines", "text://f.txt", "missing 'lines' parameter"},
		{"no dash", "text://f.txt?lines=5", "invalid line range format"},
		{"bad start", "text://f.txt?lines=x-3", "invalid start line"},
		{"bad end", "text://f.txt?lines=1-y", "invalid end line"},
		{"zero start", "text://f.txt?lines=0-3", "line numbers must be positive"},
		{"end before start", "text://f.txt?lines=5-2", "end line must be greater than or equal to start line"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := ParseLineRangeURI(tt.uri)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadLineRangeResource(t *testing.T) {
	svc := newTestService(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0644))

	resp, err := ReadLineRangeResource(svc, "text://"+path+"?lines=2-3")
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestReadLineRangeResource_BadURI(t *testing.T) {
	svc := newTestService(t)

	_, err := ReadLineRangeResource(svc, "text://f.txt?lines=bogus")
	require.Error(t, err)
}

func TestReadLineRangeResource_MissingFile(t *testing.T) {
	svc := newTestService(t)
	path := filepath.Join(t.TempDir(), "missing.txt")

	_, err := ReadLineRangeResource(svc, "text://"+path+"?lines=1-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "File not found")
}
