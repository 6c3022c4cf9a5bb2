package errors

import (
	"fmt"
	"net/http"
	"time"

	"text-editor-server/internal/models"
)

// JSON-RPC error codes (JSON-RPC 2.0 specification).
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Application specific error codes. File system problems share
// CodeFileSystemError with a "type" discriminator in the data payload.
const (
	CodeFileSystemError     = -32001
	CodeOperationLockFailed = -32002
	CodeFileTooLarge        = -32003
	CodeDecodeError         = -32004
)

// Data payload "type" values used for HTTP status mapping.
const (
	typeFileNotFound     = "file_not_found"
	typePermissionDenied = "permission_denied"
	typePathTraversal    = "path_traversal"
	typeNotAFile         = "not_a_file"
	typeIOFailure        = "io_failure"
)

// NewErrorDetail creates a new ErrorDetail.
func NewErrorDetail(code int, message string, data interface{}) *models.ErrorDetail {
	return &models.ErrorDetail{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// NewParseError reports invalid JSON received by the server.
func NewParseError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeParseError, "Parse error", map[string]interface{}{"details": details})
}

// NewInvalidRequestError reports a malformed JSON-RPC request object.
func NewInvalidRequestError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeInvalidRequest, "Invalid Request", map[string]interface{}{"details": details})
}

// NewMethodNotFoundError reports an unknown method name.
func NewMethodNotFoundError(methodName string) *models.ErrorDetail {
	return NewErrorDetail(CodeMethodNotFound, "Method not found", map[string]interface{}{"method": methodName})
}

// NewInvalidParamsError reports invalid method parameters. The message is
// the caller-facing summary; details carries anything further.
func NewInvalidParamsError(message, details string) *models.ErrorDetail {
	if message == "" {
		message = "Invalid params"
	}
	data := map[string]interface{}{}
	if details != "" {
		data["details"] = details
	}
	return NewErrorDetail(CodeInvalidParams, message, data)
}

// NewInternalError reports an unexpected server failure.
func NewInternalError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeInternalError, "Internal error", map[string]interface{}{"details": details})
}

// NewFileNotFoundError reports a missing file.
func NewFileNotFoundError(filePath, operation string) *models.ErrorDetail {
	return NewErrorDetail(CodeFileSystemError, fmt.Sprintf("File not found: %s", filePath), map[string]interface{}{
		"file_path": filePath,
		"operation": operation,
		"type":      typeFileNotFound,
	})
}

// NewPermissionDeniedError reports a file the process may not touch.
func NewPermissionDeniedError(filePath, operation string) *models.ErrorDetail {
	return NewErrorDetail(CodeFileSystemError, fmt.Sprintf("Permission denied for file '%s'", filePath), map[string]interface{}{
		"file_path": filePath,
		"operation": operation,
		"type":      typePermissionDenied,
	})
}

// NewPathTraversalError rejects a path containing parent directory
// references.
func NewPathTraversalError(filePath string) *models.ErrorDetail {
	return NewErrorDetail(CodeFileSystemError, "Path traversal not allowed", map[string]interface{}{
		"file_path": filePath,
		"type":      typePathTraversal,
	})
}

// NewNotAFileError reports a path that exists but is not a regular file.
func NewNotAFileError(filePath, operation string) *models.ErrorDetail {
	return NewErrorDetail(CodeFileSystemError, fmt.Sprintf("Path is not a file: %s", filePath), map[string]interface{}{
		"file_path": filePath,
		"operation": operation,
		"type":      typeNotAFile,
	})
}

// NewDirectoryNotFoundError reports a missing directory.
func NewDirectoryNotFoundError(dirPath string) *models.ErrorDetail {
	return NewErrorDetail(CodeFileSystemError, fmt.Sprintf("Directory does not exist: %s", dirPath), map[string]interface{}{
		"file_path": dirPath,
		"type":      typeFileNotFound,
	})
}

// NewNotADirectoryError reports a path that exists but is not a directory.
func NewNotADirectoryError(dirPath string) *models.ErrorDetail {
	return NewErrorDetail(CodeFileSystemError, fmt.Sprintf("Path is not a directory: %s", dirPath), map[string]interface{}{
		"file_path": dirPath,
		"type":      typeNotAFile,
	})
}

// NewIOError reports a generic file system failure.
func NewIOError(filePath, operation, details string) *models.ErrorDetail {
	return NewErrorDetail(CodeFileSystemError, "File system error", map[string]interface{}{
		"file_path": filePath,
		"operation": operation,
		"details":   details,
		"type":      typeIOFailure,
	})
}

// NewDecodeError reports content that could not be decoded with the
// requested encoding. Offset is the byte position of the first invalid
// sequence.
func NewDecodeError(filePath, encoding string, offset int) *models.ErrorDetail {
	return NewErrorDetail(CodeDecodeError,
		fmt.Sprintf("Could not decode file with %s encoding. Possibly a binary file.", encoding),
		map[string]interface{}{
			"file_path": filePath,
			"encoding":  encoding,
			"offset":    offset,
		})
}

// NewFileTooLargeError reports a file exceeding the configured size limit.
func NewFileTooLargeError(filePath string, maxSizeMB int) *models.ErrorDetail {
	return NewErrorDetail(CodeFileTooLarge,
		fmt.Sprintf("File '%s' exceeds maximum allowed size of %d MB", filePath, maxSizeMB),
		map[string]interface{}{
			"file_path":   filePath,
			"max_size_mb": maxSizeMB,
		})
}

// NewOperationLockFailedError reports a lock that could not be acquired
// within the timeout.
func NewOperationLockFailedError(filePath, operation, details string) *models.ErrorDetail {
	return NewErrorDetail(CodeOperationLockFailed,
		fmt.Sprintf("Could not acquire lock for operation '%s' on file '%s'", operation, filePath),
		map[string]interface{}{
			"file_path": filePath,
			"operation": operation,
			"details":   details,
		})
}

// ToErrorResponse converts an ErrorDetail to an HTTP models.ErrorResponse.
func ToErrorResponse(errDetail *models.ErrorDetail) *models.ErrorResponse {
	if errDetail == nil {
		return nil
	}
	return &models.ErrorResponse{Error: *errDetail}
}

// ToJSONRPCError converts an ErrorDetail to a models.JSONRPCError, lifting
// the known data payload fields into the structured error data.
func ToJSONRPCError(errDetail *models.ErrorDetail) *models.JSONRPCError {
	if errDetail == nil {
		return nil
	}
	rpcErr := &models.JSONRPCError{
		Code:    errDetail.Code,
		Message: errDetail.Message,
	}
	if errDetail.Data == nil {
		return rpcErr
	}
	data := &models.JSONRPCErrorData{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if dataMap, ok := errDetail.Data.(map[string]interface{}); ok {
		if v, ok := dataMap["file_path"].(string); ok {
			data.FilePath = v
		}
		if v, ok := dataMap["operation"].(string); ok {
			data.Operation = v
		}
		if v, ok := dataMap["details"].(string); ok {
			data.Details = v
		}
	} else {
		data.Details = fmt.Sprintf("%v", errDetail.Data)
	}
	rpcErr.Data = data
	return rpcErr
}

// MapErrorToHTTPStatus maps an error code to an HTTP status code. File
// system errors are disambiguated through the "type" field of the data
// payload.
func MapErrorToHTTPStatus(errorCode int, errDetail *models.ErrorDetail) int {
	switch errorCode {
	case CodeParseError, CodeInvalidRequest, CodeInvalidParams:
		return http.StatusBadRequest
	case CodeMethodNotFound:
		return http.StatusNotFound
	case CodeInternalError:
		return http.StatusInternalServerError
	case CodeFileSystemError:
		if errDetail != nil {
			if dataMap, ok := errDetail.Data.(map[string]interface{}); ok {
				switch dataMap["type"] {
				case typeFileNotFound:
					return http.StatusNotFound
				case typePermissionDenied:
					return http.StatusForbidden
				case typePathTraversal, typeNotAFile:
					return http.StatusBadRequest
				}
			}
		}
		return http.StatusInternalServerError
	case CodeDecodeError:
		return http.StatusUnprocessableEntity
	case CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeOperationLockFailed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
