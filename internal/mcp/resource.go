package mcp

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	mcp "github.com/metoro-io/mcp-golang"

	"text-editor-server/internal/service"
)

const lineRangeUsage = `Access specific line ranges in text files.
Format: text://{path}?lines={start}-{end}
Parameters:
- path: Path to the text file
- start: Starting line number (1-based)
- end: Ending line number (optional, defaults to end of file)
Example: text://path/to/file.txt?lines=5-10`

// ParseLineRangeURI parses a text://{path}?lines={start}-{end} URI. The
// open form "start-" selects from start through the last line. An omitted
// start defaults to line 1.
func ParseLineRangeURI(uri string) (string, int, *int, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", 0, nil, fmt.Errorf("invalid URI format: %v", err)
	}
	if parsed.Scheme != "text" {
		return "", 0, nil, fmt.Errorf("invalid URI scheme: %s", parsed.Scheme)
	}

	filePath := parsed.Host + parsed.Path
	if filePath == "" {
		return "", 0, nil, fmt.Errorf("missing file path")
	}

	lineRange := parsed.Query().Get("lines")
	if lineRange == "" {
		return "", 0, nil, fmt.Errorf("missing 'lines' parameter")
	}
	if !strings.Contains(lineRange, "-") {
		return "", 0, nil, fmt.Errorf("invalid line range format: %s", lineRange)
	}

	parts := strings.SplitN(lineRange, "-", 2)
	start := 1
	if parts[0] != "" {
		start, err = strconv.Atoi(parts[0])
		if err != nil {
			return "", 0, nil, fmt.Errorf("invalid start line: %s", parts[0])
		}
	}
	var end *int
	if parts[1] != "" {
		e, err := strconv.Atoi(parts[1])
		if err != nil {
			return "", 0, nil, fmt.Errorf("invalid end line: %s", parts[1])
		}
		end = &e
	}

	if start < 1 {
		return "", 0, nil, fmt.Errorf("line numbers must be positive")
	}
	if end != nil && *end < start {
		return "", 0, nil, fmt.Errorf("end line must be greater than or equal to start line")
	}

	return filePath, start, end, nil
}

// ReadLineRangeResource resolves a text:// URI against the service and
// returns the selected lines with their range metadata.
func ReadLineRangeResource(svc service.TextEditingService, uri string) (*mcp.ResourceResponse, error) {
	filePath, start, end, err := ParseLineRangeURI(uri)
	if err != nil {
		return nil, err
	}

	result, errDetail := svc.ReadFileContents(filePath, start, end, "")
	if errDetail != nil {
		return nil, fmt.Errorf("%s", errDetail.Message)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource content: %w", err)
	}
	return mcp.NewResourceResponse(mcp.NewTextEmbeddedResource(uri, string(payload), "application/json")), nil
}

// registerResources registers the text:// line range surface. The protocol
// library resolves registered URIs only, so the scheme itself is published
// as a usage document; clients call get_text_file_contents for arbitrary
// paths and ReadLineRangeResource serves URI-based lookups.
func registerResources(srv *mcp.Server, svc service.TextEditingService) error {
	if err := srv.RegisterResource(
		"text://usage",
		"text",
		"Access text files with line-range precision through the text:// URI scheme.",
		"text/plain",
		func() (*mcp.ResourceResponse, error) {
			return mcp.NewResourceResponse(mcp.NewTextEmbeddedResource("text://usage", lineRangeUsage, "text/plain")), nil
		},
	); err != nil {
		return fmt.Errorf("failed to register text resource: %w", err)
	}
	return nil
}
