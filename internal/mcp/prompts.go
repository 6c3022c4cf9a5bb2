package mcp

import (
	"fmt"

	mcp "github.com/metoro-io/mcp-golang"
)

// SimpleEditArgs has no arguments; the prompt is a fixed walkthrough.
type SimpleEditArgs struct{}

// CodeImplementArgs parameterize the code-implement prompt.
type CodeImplementArgs struct {
	Task     string `json:"task" jsonschema:"required,description=Implementation task description"`
	FilePath string `json:"file_path" jsonschema:"description=Target file path (existing or new)"`
	Language string `json:"language" jsonschema:"description=Programming language"`
}

// FixBugArgs parameterize the fix-bug prompt.
type FixBugArgs struct {
	Issue        string `json:"issue" jsonschema:"required,description=Description of the bug or issue"`
	FilePath     string `json:"file_path" jsonschema:"required,description=Path to the file containing the bug"`
	ErrorMessage string `json:"error_message" jsonschema:"description=Error message or stack trace\\, if available"`
}

const simpleEditText = `I need help editing a text file using the MCP text editor tools.

To use these tools effectively, follow these steps:

1. First, use the "get_text_file_contents" tool to read the file content and obtain the file hash.
2. If you want to make changes, use the appropriate tool:
   - For creating new files: "create_text_file"
   - For replacing content: "patch_text_file_contents" (requires file hash)
   - For inserting at a position: "insert_text_file_contents"
   - For adding to the end: "append_text_file_contents"
   - For adding content from another file: "append_text_file_from_path"
   - For removing content: "delete_text_file_contents"
   - For exploring directories: "explore_directory_contents"
   - For peeking at file contents: "peek_text_file_contents"

Please help me edit a file of my choice.`

const codeImplementTemplate = `I need to implement the following%s%s:

%s

Please help me with this implementation. Follow these steps:

1. First, read the existing code if needed using the "get_text_file_contents" tool
2. Understand the requirements and plan the implementation
3. If creating a new file:
   - Use "create_text_file" with the complete implementation
4. If modifying an existing file:
   - Use "get_text_file_contents" to get the current content and file hash
   - Use one of these tools to make changes:
     - "patch_text_file_contents" to replace sections (requires file hash and range hash)
     - "insert_text_file_contents" to add content at specific positions
     - "append_text_file_contents" to add content at the end
     - "append_text_file_from_path" to append content from another file
5. Verify the changes meet the requirements

Remember that all file paths must be absolute, and when patching files, you need the file hash and range hash for concurrency control.`

const fixBugTemplate = `I need help fixing a bug in the file at %s.

The issue is: %s%s

Please help me diagnose and fix this issue. Follow these steps:

1. First, read the code using "get_text_file_contents" to understand the context
2. Analyze the code and identify the potential cause of the bug
3. Come up with a fix
4. Apply the fix using:
   - "patch_text_file_contents" to replace buggy sections
   - "insert_text_file_contents" to add missing code
   - "delete_text_file_contents" to remove problematic code
5. Explain the root cause and how the fix addresses it

Remember that file paths must be absolute, and when using patch_text_file_contents, you need the file hash and range hash for each section you're modifying.`

func registerPrompts(srv *mcp.Server) error {
	if err := srv.RegisterPrompt(
		"simple-edit",
		"Simple file editing without arguments",
		func(args SimpleEditArgs) (*mcp.PromptResponse, error) {
			return mcp.NewPromptResponse(
				"Simple file editing without arguments",
				mcp.NewPromptMessage(mcp.NewTextContent(simpleEditText), mcp.RoleUser),
			), nil
		},
	); err != nil {
		return fmt.Errorf("failed to register simple-edit: %w", err)
	}

	if err := srv.RegisterPrompt(
		"code-implement",
		"Implement or enhance code based on requirements",
		func(args CodeImplementArgs) (*mcp.PromptResponse, error) {
			task := args.Task
			if task == "" {
				task = "[TASK]"
			}
			filePathText := ""
			if args.FilePath != "" {
				filePathText = fmt.Sprintf(" in the file at %s", args.FilePath)
			}
			languageText := ""
			if args.Language != "" {
				languageText = fmt.Sprintf(" using %s", args.Language)
			}
			return mcp.NewPromptResponse(
				"Implement or enhance code based on requirements",
				mcp.NewPromptMessage(mcp.NewTextContent(fmt.Sprintf(codeImplementTemplate, languageText, filePathText, task)), mcp.RoleUser),
				mcp.NewPromptMessage(mcp.NewTextContent("I'll help you implement this code. Let me break this down into steps."), mcp.RoleAssistant),
			), nil
		},
	); err != nil {
		return fmt.Errorf("failed to register code-implement: %w", err)
	}

	if err := srv.RegisterPrompt(
		"fix-bug",
		"Help diagnose and fix bugs in code",
		func(args FixBugArgs) (*mcp.PromptResponse, error) {
			issue := args.Issue
			if issue == "" {
				issue = "[ISSUE]"
			}
			filePath := args.FilePath
			if filePath == "" {
				filePath = "[FILE_PATH]"
			}
			errorText := ""
			if args.ErrorMessage != "" {
				errorText = fmt.Sprintf("\nThe error message is:\n```\n%s\n```", args.ErrorMessage)
			}
			return mcp.NewPromptResponse(
				"Help diagnose and fix bugs in code",
				mcp.NewPromptMessage(mcp.NewTextContent(fmt.Sprintf(fixBugTemplate, filePath, issue, errorText)), mcp.RoleUser),
				mcp.NewPromptMessage(mcp.NewTextContent("I'll help you fix this bug. Let me start by examining the code to understand what's happening."), mcp.RoleAssistant),
			), nil
		},
	); err != nil {
		return fmt.Errorf("failed to register fix-bug: %w", err)
	}

	return nil
}
