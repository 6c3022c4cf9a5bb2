package mcp

import (
	"encoding/json"
	"fmt"

	mcp "github.com/metoro-io/mcp-golang"

	"text-editor-server/internal/models"
	"text-editor-server/internal/service"
)

// registerTools registers one MCP tool per service operation. Tool results
// are JSON so callers get the same payload shape as the JSON-RPC and HTTP
// transports; conflict outcomes are results, not errors, so the caller can
// read the current hash and retry.
func registerTools(srv *mcp.Server, svc service.TextEditingService) error {
	if err := srv.RegisterTool(
		"get_text_file_contents",
		"Read text file contents from multiple files and line ranges. Returns the content with file and range hashes for concurrency control.",
		func(args models.GetTextFileContentsRequest) (*mcp.ToolResponse, error) {
			if len(args.Files) == 0 {
				return nil, fmt.Errorf("get_text_file_contents: at least one file is required")
			}
			result, errDetail := svc.ReadMultipleRanges(args.Files, args.Encoding)
			if errDetail != nil {
				return nil, fmt.Errorf("get_text_file_contents: %s", errDetail.Message)
			}
			return jsonToolResponse(result)
		},
	); err != nil {
		return fmt.Errorf("failed to register get_text_file_contents: %w", err)
	}

	if err := srv.RegisterTool(
		"patch_text_file_contents",
		"Apply patches to a text file. Requires the file hash and per-range hashes obtained from get_text_file_contents.",
		func(args models.PatchTextFileContentsRequest) (*mcp.ToolResponse, error) {
			result, errDetail := svc.PatchFileContents(args)
			if errDetail != nil {
				return nil, fmt.Errorf("patch_text_file_contents: %s", errDetail.Message)
			}
			return jsonToolResponse(result)
		},
	); err != nil {
		return fmt.Errorf("failed to register patch_text_file_contents: %w", err)
	}

	if err := srv.RegisterTool(
		"create_text_file",
		"Create a new text file with the given content. Fails if the file already exists.",
		func(args models.CreateTextFileRequest) (*mcp.ToolResponse, error) {
			result, errDetail := svc.CreateTextFile(args)
			if errDetail != nil {
				return nil, fmt.Errorf("create_text_file: %s", errDetail.Message)
			}
			return jsonToolResponse(result)
		},
	); err != nil {
		return fmt.Errorf("failed to register create_text_file: %w", err)
	}

	if err := srv.RegisterTool(
		"append_text_file_contents",
		"Append content to the end of an existing text file. Requires the current file hash.",
		func(args models.AppendTextFileContentsRequest) (*mcp.ToolResponse, error) {
			result, errDetail := svc.AppendTextFileContents(args)
			if errDetail != nil {
				return nil, fmt.Errorf("append_text_file_contents: %s", errDetail.Message)
			}
			return jsonToolResponse(result)
		},
	); err != nil {
		return fmt.Errorf("failed to register append_text_file_contents: %w", err)
	}

	if err := srv.RegisterTool(
		"insert_text_file_contents",
		"Insert content before or after a specific line in a text file. Requires the current file hash.",
		func(args models.InsertTextFileContentsRequest) (*mcp.ToolResponse, error) {
			result, errDetail := svc.InsertTextFileContents(args)
			if errDetail != nil {
				return nil, fmt.Errorf("insert_text_file_contents: %s", errDetail.Message)
			}
			return jsonToolResponse(result)
		},
	); err != nil {
		return fmt.Errorf("failed to register insert_text_file_contents: %w", err)
	}

	if err := srv.RegisterTool(
		"delete_text_file_contents",
		"Delete line ranges from a text file. Requires the file hash and per-range hashes.",
		func(args models.DeleteTextFileContentsRequest) (*mcp.ToolResponse, error) {
			result, errDetail := svc.DeleteTextFileContents(args)
			if errDetail != nil {
				return nil, fmt.Errorf("delete_text_file_contents: %s", errDetail.Message)
			}
			return jsonToolResponse(result)
		},
	); err != nil {
		return fmt.Errorf("failed to register delete_text_file_contents: %w", err)
	}

	if err := srv.RegisterTool(
		"append_text_file_from_path",
		"Append content from a source file to a target file without reading the source file content.",
		func(args models.AppendTextFileFromPathRequest) (*mcp.ToolResponse, error) {
			result, errDetail := svc.AppendTextFileFromPath(args)
			if errDetail != nil {
				return nil, fmt.Errorf("append_text_file_from_path: %s", errDetail.Message)
			}
			return jsonToolResponse(result)
		},
	); err != nil {
		return fmt.Errorf("failed to register append_text_file_from_path: %w", err)
	}

	if err := srv.RegisterTool(
		"append_text_file_from_path_batch",
		"Append content from multiple source files to a target file, each optionally preceded by a structured header.",
		func(args models.AppendTextFileFromPathBatchRequest) (*mcp.ToolResponse, error) {
			result, errDetail := svc.AppendTextFileFromPathBatch(args)
			if errDetail != nil {
				return nil, fmt.Errorf("append_text_file_from_path_batch: %s", errDetail.Message)
			}
			return jsonToolResponse(result)
		},
	); err != nil {
		return fmt.Errorf("failed to register append_text_file_from_path_batch: %w", err)
	}

	if err := srv.RegisterTool(
		"explore_directory_contents",
		"List files and subdirectories in a directory with file hashes.",
		func(args models.ExploreDirectoryContentsRequest) (*mcp.ToolResponse, error) {
			result, errDetail := svc.ExploreDirectoryContents(args)
			if errDetail != nil {
				return nil, fmt.Errorf("explore_directory_contents: %s", errDetail.Message)
			}
			return jsonToolResponse(result)
		},
	); err != nil {
		return fmt.Errorf("failed to register explore_directory_contents: %w", err)
	}

	if err := srv.RegisterTool(
		"peek_text_file_contents",
		"Read the first N lines of one or more text files.",
		func(args models.PeekTextFileContentsRequest) (*mcp.ToolResponse, error) {
			result, errDetail := svc.PeekTextFileContents(args)
			if errDetail != nil {
				return nil, fmt.Errorf("peek_text_file_contents: %s", errDetail.Message)
			}
			return jsonToolResponse(result)
		},
	); err != nil {
		return fmt.Errorf("failed to register peek_text_file_contents: %w", err)
	}

	return nil
}

func jsonToolResponse(v interface{}) (*mcp.ToolResponse, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResponse(mcp.NewTextContent(string(data))), nil
}
