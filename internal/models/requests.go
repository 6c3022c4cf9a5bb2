package models

// Request argument types shared by the JSON-RPC, HTTP, and MCP surfaces.
// The jsonschema tags drive the MCP tool input schemas.

// GetTextFileContentsRequest reads line ranges from one or more files.
type GetTextFileContentsRequest struct {
	Files    []FileRanges `json:"files" jsonschema:"required,description=List of files and line ranges to read"`
	Encoding string       `json:"encoding,omitempty" jsonschema:"description=Text encoding (default: utf-8)"`
}

// PatchTextFileContentsRequest applies hash-verified patches to a file.
type PatchTextFileContentsRequest struct {
	FilePath string      `json:"file_path" jsonschema:"required,description=Path to the text file"`
	FileHash string      `json:"file_hash" jsonschema:"required,description=Hash of the file contents when read"`
	Patches  []EditPatch `json:"patches" jsonschema:"required,description=List of patches to apply"`
	Encoding string      `json:"encoding,omitempty" jsonschema:"description=Text encoding (default: utf-8)"`
}

// CreateTextFileRequest creates a new file that must not already exist.
type CreateTextFileRequest struct {
	FilePath string `json:"file_path" jsonschema:"required,description=Path to the new text file"`
	Contents string `json:"contents" jsonschema:"required,description=Initial file content"`
	Encoding string `json:"encoding,omitempty" jsonschema:"description=Text encoding (default: utf-8)"`
}

// AppendTextFileContentsRequest appends content to an existing file.
type AppendTextFileContentsRequest struct {
	FilePath string `json:"file_path" jsonschema:"required,description=Path to the text file"`
	FileHash string `json:"file_hash" jsonschema:"required,description=Hash of the file contents when read"`
	Contents string `json:"contents" jsonschema:"required,description=Content to append"`
	Encoding string `json:"encoding,omitempty" jsonschema:"description=Text encoding (default: utf-8)"`
}

// InsertTextFileContentsRequest inserts content relative to a line number.
// Exactly one of After or Before must be set.
type InsertTextFileContentsRequest struct {
	FilePath string `json:"file_path" jsonschema:"required,description=Path to the text file"`
	FileHash string `json:"file_hash" jsonschema:"required,description=Hash of the file contents when read"`
	After    *int   `json:"after,omitempty" jsonschema:"description=Line number after which to insert"`
	Before   *int   `json:"before,omitempty" jsonschema:"description=Line number before which to insert"`
	Contents string `json:"contents" jsonschema:"required,description=Content to insert"`
	Encoding string `json:"encoding,omitempty" jsonschema:"description=Text encoding (default: utf-8)"`
}

// DeleteTextFileContentsRequest deletes hash-verified line ranges.
type DeleteTextFileContentsRequest struct {
	FilePath string      `json:"file_path" jsonschema:"required,description=Path to the text file"`
	FileHash string      `json:"file_hash" jsonschema:"required,description=Hash of the file contents when read"`
	Ranges   []LineRange `json:"ranges" jsonschema:"required,description=List of line ranges to delete"`
	Encoding string      `json:"encoding,omitempty" jsonschema:"description=Text encoding (default: utf-8)"`
}

// AppendTextFileFromPathRequest appends one file's content to another
// without routing the source content through the caller.
type AppendTextFileFromPathRequest struct {
	SourceFilePath string `json:"source_file_path" jsonschema:"required,description=Path to the source text file"`
	TargetFilePath string `json:"target_file_path" jsonschema:"required,description=Path to the target text file"`
	TargetFileHash string `json:"target_file_hash" jsonschema:"required,description=Hash of the target file contents"`
	Encoding       string `json:"encoding,omitempty" jsonschema:"description=Text encoding (default: utf-8)"`
}

// AppendTextFileFromPathBatchRequest appends several files to one target,
// optionally separated by a templated header per source file.
type AppendTextFileFromPathBatchRequest struct {
	SourceFilePaths     []string `json:"source_file_paths" jsonschema:"required,description=Paths to the source text files"`
	TargetFilePath      string   `json:"target_file_path" jsonschema:"required,description=Path to the target text file"`
	TargetFileHash      string   `json:"target_file_hash" jsonschema:"required,description=Hash of the target file contents"`
	Encoding            string   `json:"encoding,omitempty" jsonschema:"description=Text encoding (default: utf-8)"`
	UseStructuredFormat *bool    `json:"use_structured_format,omitempty" jsonschema:"description=Whether to write a header before each source file"`
	BaseDirectory       string   `json:"base_directory,omitempty" jsonschema:"description=Base directory for relative paths in headers"`
	StructureTemplate   string   `json:"structure_template,omitempty" jsonschema:"description=Header template with {fileName} {relativePath} {fullPath} {numberOfLinesInserted} {dateInserted} placeholders"`
}

// ExploreDirectoryContentsRequest lists a directory tree with file hashes.
type ExploreDirectoryContentsRequest struct {
	DirectoryPath         string `json:"directory_path" jsonschema:"required,description=Path to the directory to explore"`
	IncludeSubdirectories *bool  `json:"include_subdirectories,omitempty" jsonschema:"description=Whether to recurse into subdirectories"`
	IncludeFileHashes     *bool  `json:"include_file_hashes,omitempty" jsonschema:"description=Whether to include file hashes"`
	Encoding              string `json:"encoding,omitempty" jsonschema:"description=Text encoding for hashing (default: utf-8)"`
}

// PeekTextFileContentsRequest reads the first lines of one or more files.
type PeekTextFileContentsRequest struct {
	FilePaths []string `json:"file_paths" jsonschema:"required,description=Paths to the text files to peek at"`
	NumLines  int      `json:"num_lines,omitempty" jsonschema:"description=Number of lines to read from the top of each file (default: 10)"`
	Encoding  string   `json:"encoding,omitempty" jsonschema:"description=Text encoding (default: utf-8)"`
}

// DefaultStructureTemplate is the header written before each source file in
// a batch append when no template is supplied.
const DefaultStructureTemplate = "=================================\n" +
	"== {fileName}\n" +
	"== {relativePath}\n" +
	"== {fullPath}\n" +
	"== {numberOfLinesInserted}\n" +
	"== {dateInserted}\n" +
	"=================================\n"
